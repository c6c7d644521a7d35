package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dungeonarchitect/companion/internal/events"
)

// ErrValidation indicates a create or edit was rejected because a
// required field is missing. The edit is not committed.
var ErrValidation = errors.New("validation failed")

// ErrDuplicateID indicates an add would leave two records with the
// same id.
var ErrDuplicateID = errors.New("duplicate id")

// Store holds the canonical collections and provides mutation
// operations that preserve id uniqueness. Every accepted mutation is
// dispatched to registered observers so persistence can follow.
//
// Update operations on a missing id report not-found instead of
// failing; callers decide whether that is an error.
type Store struct {
	mu         sync.RWMutex
	state      State
	dispatcher *events.Dispatcher
}

// NewStore creates a store seeded with the given state. The dispatcher
// may be nil, in which case mutations are silent.
func NewStore(state State, dispatcher *events.Dispatcher) *Store {
	if state.GenerationCount < 1 {
		state.GenerationCount = 1
	}
	return &Store{state: state, dispatcher: dispatcher}
}

func (s *Store) notify(t events.Type, id string) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(events.Change{Type: t, ID: id})
	}
}

// --- Systems ---

// AddSystem adds a new system, assigning an id when none is given.
func (s *Store) AddSystem(sys System) (System, error) {
	if strings.TrimSpace(sys.Name) == "" {
		return System{}, fmt.Errorf("%w: system name is required", ErrValidation)
	}
	if sys.ID == "" {
		sys.ID = NewID("sys")
	}

	s.mu.Lock()
	for _, existing := range s.state.Systems {
		if existing.ID == sys.ID {
			s.mu.Unlock()
			return System{}, fmt.Errorf("%w: system %q", ErrDuplicateID, sys.ID)
		}
	}
	s.state.Systems = append(s.state.Systems, sys.Clone())
	s.mu.Unlock()

	s.notify(events.SystemAdded, sys.ID)
	return sys, nil
}

// UpdateSystem replaces the system with the same id. Returns false
// when no such system exists; the store is left unchanged.
func (s *Store) UpdateSystem(sys System) bool {
	s.mu.Lock()
	found := false
	for i, existing := range s.state.Systems {
		if existing.ID == sys.ID {
			s.state.Systems[i] = sys.Clone()
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(events.SystemUpdated, sys.ID)
	}
	return found
}

// RemoveSystem deletes a system and prunes its id from the active
// selection. Events tagged to the system are left untouched (orphaned,
// not deleted).
func (s *Store) RemoveSystem(id string) bool {
	s.mu.Lock()
	found := false
	for i, existing := range s.state.Systems {
		if existing.ID == id {
			s.state.Systems = append(s.state.Systems[:i], s.state.Systems[i+1:]...)
			found = true
			break
		}
	}
	if found {
		selected := s.state.SelectedSystemIDs[:0]
		for _, sid := range s.state.SelectedSystemIDs {
			if sid != id {
				selected = append(selected, sid)
			}
		}
		s.state.SelectedSystemIDs = selected
	}
	s.mu.Unlock()

	if found {
		s.notify(events.SystemRemoved, id)
	}
	return found
}

// SystemByID looks a system up by id.
func (s *Store) SystemByID(id string) (System, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sys := range s.state.Systems {
		if sys.ID == id {
			return sys.Clone(), true
		}
	}
	return System{}, false
}

// SystemByName looks a system up by display name, case-insensitively.
func (s *Store) SystemByName(name string) (System, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sys := range s.state.Systems {
		if strings.EqualFold(sys.Name, name) {
			return sys.Clone(), true
		}
	}
	return System{}, false
}

// Systems returns a copy of all systems.
func (s *Store) Systems() []System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]System, len(s.state.Systems))
	for i, sys := range s.state.Systems {
		out[i] = sys.Clone()
	}
	return out
}

// --- Events ---

// ValidateEvent checks the required fields of an event.
func ValidateEvent(ev Event) error {
	if strings.TrimSpace(ev.Description) == "" {
		return fmt.Errorf("%w: event description is required", ErrValidation)
	}
	if strings.TrimSpace(ev.SystemTag) == "" {
		return fmt.Errorf("%w: event system tag is required", ErrValidation)
	}
	return nil
}

// AddEvent adds a new event, assigning an id when none is given.
func (s *Store) AddEvent(ev Event) (Event, error) {
	if err := ValidateEvent(ev); err != nil {
		return Event{}, err
	}
	if ev.ID == "" {
		ev.ID = NewID("evt")
	}

	s.mu.Lock()
	for _, existing := range s.state.Events {
		if existing.ID == ev.ID {
			s.mu.Unlock()
			return Event{}, fmt.Errorf("%w: event %q", ErrDuplicateID, ev.ID)
		}
	}
	s.state.Events = append(s.state.Events, ev)
	s.mu.Unlock()

	s.notify(events.EventAdded, ev.ID)
	return ev, nil
}

// UpdateEvent replaces the event with the same id in place. Returns
// false when no such event exists.
func (s *Store) UpdateEvent(ev Event) (bool, error) {
	if err := ValidateEvent(ev); err != nil {
		return false, err
	}

	s.mu.Lock()
	found := false
	for i, existing := range s.state.Events {
		if existing.ID == ev.ID {
			s.state.Events[i] = ev
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(events.EventUpdated, ev.ID)
	}
	return found, nil
}

// RemoveEvent deletes an event by id.
func (s *Store) RemoveEvent(id string) bool {
	s.mu.Lock()
	found := false
	for i, existing := range s.state.Events {
		if existing.ID == id {
			s.state.Events = append(s.state.Events[:i], s.state.Events[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify(events.EventRemoved, id)
	}
	return found
}

// EventByID looks an event up by id.
func (s *Store) EventByID(id string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.state.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// Events returns a copy of all events.
func (s *Store) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.state.Events))
	copy(out, s.state.Events)
	return out
}

// AddImported appends pre-parsed events and synthesized systems in one
// step, dispatching a single import notification. Used by the bulk
// import bridge after a file has fully parsed; it must never be called
// with partially parsed data.
func (s *Store) AddImported(systems []System, evs []Event) {
	s.mu.Lock()
	for _, sys := range systems {
		s.state.Systems = append(s.state.Systems, sys.Clone())
	}
	s.state.Events = append(s.state.Events, evs...)
	s.mu.Unlock()

	s.notify(events.CatalogImported, "")
}

// --- Settings ---

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

// SetSettings replaces the settings.
func (s *Store) SetSettings(settings Settings) {
	s.mu.Lock()
	s.state.Settings = settings
	s.mu.Unlock()
	s.notify(events.SettingsChanged, "")
}

// --- Selection and generation state ---

// SelectedSystemIDs returns a copy of the active selection.
func (s *Store) SelectedSystemIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.state.SelectedSystemIDs))
	copy(out, s.state.SelectedSystemIDs)
	return out
}

// SelectSystem adds a system id to the active selection. The id must
// refer to an existing system.
func (s *Store) SelectSystem(id string) error {
	s.mu.Lock()
	exists := false
	for _, sys := range s.state.Systems {
		if sys.ID == id {
			exists = true
			break
		}
	}
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("unknown system id %q", id)
	}
	for _, sid := range s.state.SelectedSystemIDs {
		if sid == id {
			s.mu.Unlock()
			return nil // already selected
		}
	}
	s.state.SelectedSystemIDs = append(s.state.SelectedSystemIDs, id)
	s.mu.Unlock()

	s.notify(events.SelectionChanged, id)
	return nil
}

// DeselectSystem removes a system id from the active selection.
func (s *Store) DeselectSystem(id string) {
	s.mu.Lock()
	changed := false
	selected := s.state.SelectedSystemIDs[:0]
	for _, sid := range s.state.SelectedSystemIDs {
		if sid == id {
			changed = true
			continue
		}
		selected = append(selected, sid)
	}
	s.state.SelectedSystemIDs = selected
	s.mu.Unlock()

	if changed {
		s.notify(events.SelectionChanged, id)
	}
}

// GenerationCount returns the configured draw size.
func (s *Store) GenerationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.GenerationCount
}

// SetGenerationCount sets the draw size. Any positive integer is
// accepted.
func (s *Store) SetGenerationCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: generation count must be positive, got %d", ErrValidation, n)
	}
	s.mu.Lock()
	s.state.GenerationCount = n
	s.mu.Unlock()
	s.notify(events.CountChanged, "")
	return nil
}

// GeneratedEvents returns the last transient draw result.
func (s *Store) GeneratedEvents() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.state.GeneratedEvents))
	copy(out, s.state.GeneratedEvents)
	return out
}

// SetGeneratedEvents replaces the transient draw result. It is never
// persisted and carries no change notification.
func (s *Store) SetGeneratedEvents(evs []Event) {
	s.mu.Lock()
	s.state.GeneratedEvents = evs
	s.mu.Unlock()
}

// State returns a copy of the full session state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State{
		Settings:        s.state.Settings,
		GenerationCount: s.state.GenerationCount,
	}
	out.Systems = make([]System, len(s.state.Systems))
	for i, sys := range s.state.Systems {
		out.Systems[i] = sys.Clone()
	}
	out.Events = make([]Event, len(s.state.Events))
	copy(out.Events, s.state.Events)
	out.SelectedSystemIDs = make([]string, len(s.state.SelectedSystemIDs))
	copy(out.SelectedSystemIDs, s.state.SelectedSystemIDs)
	out.GeneratedEvents = make([]Event, len(s.state.GeneratedEvents))
	copy(out.GeneratedEvents, s.state.GeneratedEvents)
	return out
}
