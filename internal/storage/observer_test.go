package storage

import (
	"context"
	"testing"

	"github.com/dungeonarchitect/companion/internal/catalog"
	"github.com/dungeonarchitect/companion/internal/events"
)

// TestMutationsArePersisted wires a store, dispatcher and adapter the
// way the application does and checks that an accepted mutation lands
// in the slot without an explicit save call.
func TestMutationsArePersisted(t *testing.T) {
	adapter := NewAdapter(testDB(t), nil, nil)
	ctx := context.Background()

	dispatcher := events.NewDispatcher()
	store := catalog.NewStore(adapter.Load(ctx).State(), dispatcher)
	dispatcher.Register(NewPersistenceObserver(store, adapter))

	sys, err := store.AddSystem(catalog.System{Name: "Nova"})
	if err != nil {
		t.Fatalf("AddSystem failed: %v", err)
	}

	snap := adapter.Load(ctx)
	found := false
	for _, persisted := range snap.Systems {
		if persisted.ID == sys.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected system %s persisted after AddSystem", sys.ID)
	}
}

// TestGeneratedEventsNotPersisted confirms the transient draw result
// never reaches the slot.
func TestGeneratedEventsNotPersisted(t *testing.T) {
	adapter := NewAdapter(testDB(t), nil, nil)
	ctx := context.Background()

	dispatcher := events.NewDispatcher()
	store := catalog.NewStore(adapter.Load(ctx).State(), dispatcher)
	dispatcher.Register(NewPersistenceObserver(store, adapter))

	store.SetGeneratedEvents([]catalog.Event{{ID: "evt-drawn", Description: "x", SystemTag: "y"}})
	// Force a persisted write through a durable mutation.
	if err := store.SetGenerationCount(4); err != nil {
		t.Fatalf("SetGenerationCount failed: %v", err)
	}

	snap := adapter.Load(ctx)
	for _, ev := range snap.Events {
		if ev.ID == "evt-drawn" {
			t.Error("Transient draw results must never be persisted")
		}
	}
	if snap.GenerationCount != 4 {
		t.Errorf("Expected count 4 persisted, got %d", snap.GenerationCount)
	}
}
