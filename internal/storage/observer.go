package storage

import (
	"context"

	"github.com/dungeonarchitect/companion/internal/catalog"
	"github.com/dungeonarchitect/companion/internal/events"
)

// PersistenceObserver re-serializes the durable subset of the store
// after every accepted mutation. Registered on the catalog dispatcher
// so persistence follows mutations without the mutation sites knowing
// about storage.
type PersistenceObserver struct {
	store   *catalog.Store
	adapter *Adapter
}

// NewPersistenceObserver creates the observer. Call Register on the
// dispatcher the store publishes to.
func NewPersistenceObserver(store *catalog.Store, adapter *Adapter) *PersistenceObserver {
	return &PersistenceObserver{store: store, adapter: adapter}
}

// Name implements events.Observer.
func (o *PersistenceObserver) Name() string {
	return "persistence"
}

// OnCatalogChange saves the full durable subset. Save failures are
// handled inside the adapter (logged, never propagated).
func (o *PersistenceObserver) OnCatalogChange(events.Change) {
	o.adapter.Save(context.Background(), PartialFromState(o.store.State()))
}
