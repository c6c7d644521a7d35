// Package generator implements the event draw: it computes the pool of
// events eligible under the active system selection and an optional
// type filter, then samples from it uniformly with replacement.
package generator

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/dungeonarchitect/companion/internal/catalog"
)

// TypeRandom is the sentinel type filter meaning "any type".
const TypeRandom = "Random"

// ErrNoSystemSelected indicates generation was requested with no
// active system. No state changes.
var ErrNoSystemSelected = errors.New("no game system selected")

// ErrEmptyPool indicates the filtered pool contains no events. No
// partial result is produced.
var ErrEmptyPool = errors.New("no events match the current selection")

// Request describes a single generation call.
type Request struct {
	// TypeFilter restricts the pool to events of one type
	// (case-insensitive). Empty or TypeRandom means no restriction.
	TypeFilter string

	// Count is the number of events to draw. When zero or negative,
	// the store's configured generation count is used.
	Count int
}

// Generator draws random event sets from a catalog.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded from crypto/rand.
func New() *Generator {
	return NewWithSeed(newSeed())
}

// NewWithSeed creates a generator with a fixed seed. Draws are
// deterministic with respect to the seed; used by tests.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate computes the eligible pool from the store and draws from
// it. On success the store's transient generated set is replaced with
// exactly the new result; on failure it is left unchanged.
//
// Draws are independent and with replacement: the same event may
// appear more than once in a batch, and Count may exceed the pool
// size. Each drawn event is value-copied so later catalog edits do not
// mutate an already displayed result.
func (g *Generator) Generate(store *catalog.Store, req Request) ([]catalog.Event, error) {
	selected := store.SelectedSystemIDs()
	if len(selected) == 0 {
		return nil, ErrNoSystemSelected
	}

	// Resolve the selection to lowercase system names. Stale ids from
	// systems deleted elsewhere simply resolve to nothing.
	activeNames := make(map[string]bool, len(selected))
	for _, id := range selected {
		if sys, ok := store.SystemByID(id); ok {
			activeNames[strings.ToLower(sys.Name)] = true
		}
	}
	if len(activeNames) == 0 {
		return nil, ErrNoSystemSelected
	}

	pool := Pool(store.Events(), activeNames, req.TypeFilter)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	count := req.Count
	if count < 1 {
		count = store.GenerationCount()
	}

	result := g.Draw(pool, count)
	store.SetGeneratedEvents(result)
	return result, nil
}

// Pool filters events down to those eligible for a draw: the event's
// system tag must match one of the active system names
// (case-insensitive), and, when a type filter other than TypeRandom is
// given, the event type must match it (case-insensitive).
func Pool(events []catalog.Event, activeNames map[string]bool, typeFilter string) []catalog.Event {
	wantType := ""
	if typeFilter != "" && !strings.EqualFold(typeFilter, TypeRandom) {
		wantType = strings.ToLower(typeFilter)
	}

	var pool []catalog.Event
	for _, ev := range events {
		if !activeNames[strings.ToLower(ev.SystemTag)] {
			continue
		}
		if wantType != "" && strings.ToLower(ev.Type) != wantType {
			continue
		}
		pool = append(pool, ev)
	}
	return pool
}

// Draw samples count events from the pool uniformly, independently and
// with replacement. The pool must be non-empty.
func (g *Generator) Draw(pool []catalog.Event, count int) []catalog.Event {
	result := make([]catalog.Event, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, pool[g.rng.Intn(len(pool))].Clone())
	}
	return result
}
