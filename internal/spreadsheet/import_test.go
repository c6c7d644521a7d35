package spreadsheet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dungeonarchitect/companion/internal/catalog"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test CSV: %v", err)
	}
	return path
}

func TestImportCSV(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"ID,Type,Description,Reward,Difficulty,System_Tag",
		"evt-10,Combate,Goblin ambush,10 gold,Fácil,Genérico",
		`evt-11,Tesouro,"A chest, locked",,Média,Genérico`,
	}, "\n"))

	imported, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(imported))
	}
	if imported[0].ID != "evt-10" || imported[0].Type != "Combate" {
		t.Errorf("Unexpected first event: %+v", imported[0])
	}
	if imported[1].Description != "A chest, locked" {
		t.Errorf("Expected quoted comma preserved, got %q", imported[1].Description)
	}
}

func TestImportUnsupportedExtension(t *testing.T) {
	_, err := ImportFile("events.pdf")
	if !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse for unsupported extension, got %v", err)
	}
}

func TestImportMissingColumn(t *testing.T) {
	path := writeCSV(t, strings.Join([]string{
		"ID,Type,Description,Reward,Difficulty", // no System_Tag
		"evt-10,Combate,Goblin ambush,,Fácil",
	}, "\n"))

	_, err := ImportFile(path)
	if !errors.Is(err, ErrParse) {
		t.Errorf("Expected ErrParse for missing column, got %v", err)
	}
}

func TestMapRowsBlankIDGetsGenerated(t *testing.T) {
	rows := [][]string{
		Header,
		{"", "Combate", "No id here", "", "", "Genérico"},
	}

	imported, err := MapRows(rows)
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}
	if len(imported) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(imported))
	}
	if imported[0].ID == "" {
		t.Error("Expected a generated id for the blank ID cell")
	}
}

func TestMapRowsSkipsBlankRows(t *testing.T) {
	rows := [][]string{
		Header,
		{"", "", "", "", "", ""},
		{"evt-1", "Evento", "kept", "", "", "Genérico"},
		{},
	}

	imported, err := MapRows(rows)
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}
	if len(imported) != 1 || imported[0].ID != "evt-1" {
		t.Errorf("Expected only the non-blank row, got %v", imported)
	}
}

func TestMapRowsShortRowPadsBlank(t *testing.T) {
	rows := [][]string{
		Header,
		{"evt-1", "Evento", "short row"},
	}

	imported, err := MapRows(rows)
	if err != nil {
		t.Fatalf("MapRows failed: %v", err)
	}
	if imported[0].SystemTag != "" {
		t.Errorf("Expected missing trailing cells read as blank, got %q", imported[0].SystemTag)
	}
}

func TestApplySynthesizesUnknownSystems(t *testing.T) {
	store := catalog.NewStore(catalog.State{
		Systems: []catalog.System{{ID: "sys-g", Name: "Genérico"}},
	}, nil)

	imported := []catalog.Event{
		{ID: "evt-1", Type: "Evento", Description: "a", SystemTag: "Genérico"},
		{ID: "evt-2", Type: "Evento", Description: "b", SystemTag: "Mundo Novo"},
		{ID: "evt-3", Type: "Evento", Description: "c", SystemTag: "mundo novo"},
		{ID: "evt-4", Type: "Evento", Description: "d", SystemTag: ""},
	}

	newSystems := Apply(store, imported)

	// "Genérico" exists, "Mundo Novo" appears twice differing only in
	// case, and a blank tag never synthesizes anything.
	if len(newSystems) != 1 || newSystems[0].Name != "Mundo Novo" {
		t.Fatalf("Expected exactly one synthesized system Mundo Novo, got %v", newSystems)
	}
	if newSystems[0].Stats == nil || len(newSystems[0].Stats) != 0 {
		t.Errorf("Expected synthesized system with empty stats, got %v", newSystems[0].Stats)
	}
	if len(store.Systems()) != 2 {
		t.Errorf("Expected 2 systems in the store, got %d", len(store.Systems()))
	}
	if len(store.Events()) != 4 {
		t.Errorf("Expected all 4 events added, got %d", len(store.Events()))
	}
}

func TestApplyRegeneratesCollidingIDs(t *testing.T) {
	store := catalog.NewStore(catalog.State{
		Systems: []catalog.System{{ID: "sys-g", Name: "Genérico"}},
		Events:  []catalog.Event{{ID: "evt-1", Type: "Evento", Description: "existing", SystemTag: "Genérico"}},
	}, nil)

	Apply(store, []catalog.Event{
		{ID: "evt-1", Type: "Evento", Description: "incoming", SystemTag: "Genérico"},
	})

	events := store.Events()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].ID == events[1].ID {
		t.Errorf("Expected the colliding import id regenerated, both are %q", events[0].ID)
	}
	if events[0].Description != "existing" {
		t.Error("Expected the existing event untouched")
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), TemplateFilename)
	if err := WriteTemplate(path); err != nil {
		t.Fatalf("WriteTemplate failed: %v", err)
	}

	imported, err := ImportFile(path)
	if err != nil {
		t.Fatalf("Importing the template failed: %v", err)
	}
	if len(imported) != len(sampleRows) {
		t.Fatalf("Expected %d sample events, got %d", len(sampleRows), len(imported))
	}
	for _, ev := range imported {
		if ev.ID == "" {
			t.Error("Expected generated ids for the blank sample ID cells")
		}
		if ev.SystemTag != "Genérico" {
			t.Errorf("Unexpected system tag %q", ev.SystemTag)
		}
	}
}
