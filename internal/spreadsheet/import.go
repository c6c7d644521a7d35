package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dungeonarchitect/companion/internal/catalog"
)

// ImportFile parses a tabular file into event records. Supported
// extensions are .xlsx and .csv; the first sheet only, first row
// treated as the header. Parse failures wrap ErrParse and produce no
// events.
func ImportFile(path string) ([]catalog.Event, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return importXLSX(path)
	case ".csv":
		return importCSV(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrParse, filepath.Ext(path))
	}
}

func importXLSX(path string) ([]catalog.Event, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrParse)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return MapRows(rows)
}

func importCSV(path string) ([]catalog.Event, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		rows = append(rows, row)
	}
	return MapRows(rows)
}

// MapRows converts header-plus-data rows into events using the
// template's column contract. Column names match case-sensitively; a
// blank ID cell gets a freshly generated id. Rows with every mapped
// cell blank are skipped.
func MapRows(rows [][]string) ([]catalog.Event, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrParse)
	}

	cols := make(map[string]int, len(Header))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrParse, name)
		}
	}

	cell := func(row []string, name string) string {
		idx := cols[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var imported []catalog.Event
	for _, row := range rows[1:] {
		ev := catalog.Event{
			ID:          cell(row, "ID"),
			Type:        cell(row, "Type"),
			Description: cell(row, "Description"),
			Reward:      cell(row, "Reward"),
			Difficulty:  cell(row, "Difficulty"),
			SystemTag:   cell(row, "System_Tag"),
		}
		if ev.ID == "" && ev.Type == "" && ev.Description == "" &&
			ev.Reward == "" && ev.Difficulty == "" && ev.SystemTag == "" {
			continue
		}
		if ev.ID == "" {
			ev.ID = catalog.NewID("evt")
		}
		imported = append(imported, ev)
	}

	return imported, nil
}

// Apply adds fully parsed events to the store. Every distinct
// non-blank system tag that matches no existing system name
// (case-insensitive) synthesizes a new system with that name and no
// stats, added before the events. Ids colliding with existing records
// are regenerated so the catalog's uniqueness invariant holds.
//
// Returns the synthesized systems.
func Apply(store *catalog.Store, imported []catalog.Event) []catalog.System {
	seen := make(map[string]bool)
	var newSystems []catalog.System
	for _, ev := range imported {
		tag := strings.TrimSpace(ev.SystemTag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := store.SystemByName(tag); ok {
			continue
		}
		newSystems = append(newSystems, catalog.System{
			ID:    catalog.NewID("sys"),
			Name:  tag,
			Stats: []string{},
		})
	}

	usedIDs := make(map[string]bool)
	for _, ev := range store.Events() {
		usedIDs[ev.ID] = true
	}
	for i := range imported {
		if usedIDs[imported[i].ID] {
			imported[i].ID = catalog.NewID("evt")
		}
		usedIDs[imported[i].ID] = true
	}

	store.AddImported(newSystems, imported)
	return newSystems
}
