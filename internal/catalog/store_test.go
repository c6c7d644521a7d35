package catalog

import (
	"errors"
	"testing"
)

func testState() State {
	return State{
		Systems: []System{
			{ID: "sys-a", Name: "Sistema A", Stats: []string{"Sanity"}},
			{ID: "sys-b", Name: "Sistema B"},
		},
		Events: []Event{
			{ID: "evt-1", Type: "Combate", Description: "Goblins attack", SystemTag: "Sistema A"},
			{ID: "evt-2", Type: "Tesouro", Description: "A hidden chest", SystemTag: "Sistema B"},
		},
		SelectedSystemIDs: []string{"sys-a"},
		GenerationCount:   2,
	}
}

func TestAddSystemAssignsUniqueID(t *testing.T) {
	store := NewStore(State{}, nil)

	first, err := store.AddSystem(System{Name: "Alpha"})
	if err != nil {
		t.Fatalf("AddSystem failed: %v", err)
	}
	second, err := store.AddSystem(System{Name: "Beta"})
	if err != nil {
		t.Fatalf("AddSystem failed: %v", err)
	}

	if first.ID == "" || second.ID == "" {
		t.Error("Expected generated ids to be non-empty")
	}
	if first.ID == second.ID {
		t.Errorf("Expected distinct ids, both were %q", first.ID)
	}
}

func TestAddSystemRequiresName(t *testing.T) {
	store := NewStore(State{}, nil)

	_, err := store.AddSystem(System{Name: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
	if len(store.Systems()) != 0 {
		t.Error("Rejected add should not change the store")
	}
}

func TestAddSystemRejectsDuplicateID(t *testing.T) {
	store := NewStore(testState(), nil)

	_, err := store.AddSystem(System{ID: "sys-a", Name: "Clone"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}
	if len(store.Systems()) != 2 {
		t.Errorf("Expected 2 systems after rejected add, got %d", len(store.Systems()))
	}
}

func TestUpdateSystemNotFound(t *testing.T) {
	store := NewStore(testState(), nil)

	if store.UpdateSystem(System{ID: "sys-missing", Name: "Ghost"}) {
		t.Error("Expected update of unknown id to report not found")
	}
	if len(store.Systems()) != 2 {
		t.Errorf("Expected store unchanged, got %d systems", len(store.Systems()))
	}
}

func TestRemoveSystemPrunesSelection(t *testing.T) {
	store := NewStore(testState(), nil)

	if !store.RemoveSystem("sys-a") {
		t.Fatal("Expected RemoveSystem to find sys-a")
	}

	for _, id := range store.SelectedSystemIDs() {
		if id == "sys-a" {
			t.Error("Expected sys-a pruned from the selection")
		}
	}
}

func TestRemoveSystemKeepsOrphanEvents(t *testing.T) {
	store := NewStore(testState(), nil)

	store.RemoveSystem("sys-a")

	if _, ok := store.EventByID("evt-1"); !ok {
		t.Error("Expected events tagged to a removed system to survive")
	}
}

func TestSystemByNameIsCaseInsensitive(t *testing.T) {
	store := NewStore(testState(), nil)

	sys, ok := store.SystemByName("sistema a")
	if !ok {
		t.Fatal("Expected lookup by lowercased name to succeed")
	}
	if sys.ID != "sys-a" {
		t.Errorf("Expected sys-a, got %s", sys.ID)
	}
}

func TestAddEventValidation(t *testing.T) {
	store := NewStore(State{}, nil)

	cases := []struct {
		name string
		ev   Event
	}{
		{"missing description", Event{SystemTag: "Sistema A"}},
		{"missing system tag", Event{Description: "Something happens"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.AddEvent(tc.ev); !errors.Is(err, ErrValidation) {
				t.Errorf("Expected ErrValidation, got %v", err)
			}
		})
	}
	if len(store.Events()) != 0 {
		t.Error("Rejected adds should not change the store")
	}
}

func TestUpdateEventInPlace(t *testing.T) {
	store := NewStore(testState(), nil)

	found, err := store.UpdateEvent(Event{ID: "evt-1", Type: "Elite", Description: "Goblin chief", SystemTag: "Sistema A"})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if !found {
		t.Fatal("Expected update to find evt-1")
	}

	ev, _ := store.EventByID("evt-1")
	if ev.Type != "Elite" {
		t.Errorf("Expected type Elite, got %s", ev.Type)
	}

	// Order must be preserved: the edit replaces in place.
	events := store.Events()
	if events[0].ID != "evt-1" {
		t.Errorf("Expected evt-1 to keep its position, got %s first", events[0].ID)
	}
}

func TestUpdateEventNotFound(t *testing.T) {
	store := NewStore(testState(), nil)

	found, err := store.UpdateEvent(Event{ID: "evt-missing", Description: "Ghost", SystemTag: "Sistema A"})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if found {
		t.Error("Expected update of unknown id to report not found")
	}
}

func TestSelectSystemRequiresExistingID(t *testing.T) {
	store := NewStore(testState(), nil)

	if err := store.SelectSystem("sys-missing"); err == nil {
		t.Error("Expected selecting an unknown system to fail")
	}
	if err := store.SelectSystem("sys-b"); err != nil {
		t.Fatalf("SelectSystem failed: %v", err)
	}
	// Selecting twice must not duplicate.
	if err := store.SelectSystem("sys-b"); err != nil {
		t.Fatalf("SelectSystem failed: %v", err)
	}

	count := 0
	for _, id := range store.SelectedSystemIDs() {
		if id == "sys-b" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected sys-b selected once, found %d entries", count)
	}
}

func TestSetGenerationCountRejectsNonPositive(t *testing.T) {
	store := NewStore(testState(), nil)

	for _, n := range []int{0, -3} {
		if err := store.SetGenerationCount(n); !errors.Is(err, ErrValidation) {
			t.Errorf("SetGenerationCount(%d): expected ErrValidation, got %v", n, err)
		}
	}
	if store.GenerationCount() != 2 {
		t.Errorf("Expected count unchanged at 2, got %d", store.GenerationCount())
	}
}

func TestNewStoreCoercesGenerationCount(t *testing.T) {
	store := NewStore(State{GenerationCount: 0}, nil)
	if store.GenerationCount() != 1 {
		t.Errorf("Expected count coerced to 1, got %d", store.GenerationCount())
	}
}

func TestStateReturnsCopy(t *testing.T) {
	store := NewStore(testState(), nil)

	st := store.State()
	st.Systems[0].Name = "mutated"
	st.Systems[0].Stats[0] = "mutated"
	st.Events[0].Description = "mutated"

	sys, _ := store.SystemByID("sys-a")
	if sys.Name != "Sistema A" || sys.Stats[0] != "Sanity" {
		t.Error("Mutating a State copy must not touch the store")
	}
	ev, _ := store.EventByID("evt-1")
	if ev.Description != "Goblins attack" {
		t.Error("Mutating a State copy must not touch stored events")
	}
}
