// Package events distributes catalog change notifications to observers
// such as the persistence adapter and the activity logger.
package events

import "sync"

// Type identifies the kind of catalog change that occurred.
type Type string

// Catalog change types.
const (
	SystemAdded      Type = "system:added"
	SystemUpdated    Type = "system:updated"
	SystemRemoved    Type = "system:removed"
	EventAdded       Type = "event:added"
	EventUpdated     Type = "event:updated"
	EventRemoved     Type = "event:removed"
	SettingsChanged  Type = "settings:changed"
	SelectionChanged Type = "selection:changed"
	CountChanged     Type = "count:changed"
	CatalogImported  Type = "catalog:imported"
)

// Change describes a single catalog mutation.
type Change struct {
	// Type is the kind of mutation.
	Type Type

	// ID identifies the affected record, when there is one.
	ID string
}

// Observer is notified after every accepted catalog mutation.
type Observer interface {
	// OnCatalogChange handles a single change notification.
	// Observers must not mutate the catalog from inside the callback.
	OnCatalogChange(change Change)

	// Name returns a human-readable observer name for logging.
	Name() string
}

// Dispatcher fans catalog changes out to registered observers.
// Safe for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds an observer. It will receive all future changes.
func (d *Dispatcher) Register(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observer)
}

// Unregister removes a previously registered observer.
func (d *Dispatcher) Unregister(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, obs := range d.observers {
		if obs == observer {
			d.observers[i] = d.observers[len(d.observers)-1]
			d.observers = d.observers[:len(d.observers)-1]
			return
		}
	}
}

// Dispatch notifies every registered observer, in registration order.
func (d *Dispatcher) Dispatch(change Change) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		observer.OnCatalogChange(change)
	}
}
