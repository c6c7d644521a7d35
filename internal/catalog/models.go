// Package catalog holds the in-memory record store for game systems,
// events and user settings. It is the single source of truth for a
// running session; durable persistence is layered on top by the storage
// package.
package catalog

// System represents a tabletop-RPG ruleset that events are tagged to.
type System struct {
	// ID is an opaque unique identifier assigned at creation. Immutable.
	ID string `json:"id"`

	// Name is the display name. Events join to systems through this
	// name (case-insensitive), not through ID.
	Name string `json:"name"`

	// Stats is an ordered list of user-defined attribute labels
	// (e.g., "Sanity"). Display-only.
	Stats []string `json:"stats"`
}

// Event represents a single narrative encounter card.
type Event struct {
	ID string `json:"id"`

	// Type is a free-form category label (e.g., "Combate", "Elite").
	// Any string is accepted; legacy English variants are normalized
	// only at display time.
	Type string `json:"type"`

	// Description is the narrative text. It may embed **bold** markup
	// spans that are interpreted at render time only.
	Description string `json:"description"`

	Reward     string `json:"reward"`
	Difficulty string `json:"difficulty"`

	// SystemTag is expected to equal some System's Name
	// (case-insensitive). This is a soft foreign key: no referential
	// integrity is enforced, and deleting a system orphans its events.
	SystemTag string `json:"systemTag"`
}

// Theme holds the four color values controlling card rendering.
// Values are free-form color strings; the renderer falls back to its
// defaults when a value does not parse.
type Theme struct {
	Background string `json:"background"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Border     string `json:"border"`
}

// Settings holds user preferences.
type Settings struct {
	// Language is a locale tag selecting a translation table.
	Language string `json:"language"`

	Theme Theme `json:"theme"`
}

// State aggregates the full session state. Only Systems, Events,
// Settings, SelectedSystemIDs and GenerationCount are durable;
// GeneratedEvents is recomputed per session and never persisted.
type State struct {
	Systems           []System
	Events            []Event
	Settings          Settings
	SelectedSystemIDs []string
	GenerationCount   int
	GeneratedEvents   []Event
}

// Clone returns a deep copy of the event. Drawn results are cloned so
// that later edits to the catalog entry do not mutate an already
// displayed card.
func (e Event) Clone() Event {
	return e // all fields are value types
}

// Clone returns a deep copy of the system.
func (s System) Clone() System {
	c := s
	if s.Stats != nil {
		c.Stats = make([]string, len(s.Stats))
		copy(c.Stats, s.Stats)
	}
	return c
}
