package spreadsheet

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dungeonarchitect/companion/internal/catalog"
)

// Format represents a catalog export format.
type Format string

const (
	// FormatCSV exports the template columns as CSV.
	FormatCSV Format = "csv"
	// FormatJSON exports the raw event records as indented JSON.
	FormatJSON Format = "json"
	// FormatXLSX exports the template columns as a workbook.
	FormatXLSX Format = "xlsx"
)

// Options holds configuration for catalog exports.
type Options struct {
	Format    Format
	FilePath  string
	Overwrite bool
}

// ExportEvents writes the given events to the configured file using
// the template's column contract.
func ExportEvents(opts Options, events []catalog.Event) error {
	dir := filepath.Dir(opts.FilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if _, err := os.Stat(opts.FilePath); err == nil && !opts.Overwrite {
		return fmt.Errorf("file already exists: %s (use overwrite option to replace)", opts.FilePath)
	}

	switch opts.Format {
	case FormatCSV:
		return exportCSV(opts.FilePath, events)
	case FormatJSON:
		return exportJSON(opts.FilePath, events)
	case FormatXLSX:
		return exportXLSX(opts.FilePath, events)
	default:
		return fmt.Errorf("unsupported export format: %s", opts.Format)
	}
}

// ParseFormat resolves a format name or a file extension to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", name)
	}
}

func eventRow(ev catalog.Event) []string {
	return []string{ev.ID, ev.Type, ev.Description, ev.Reward, ev.Difficulty, ev.SystemTag}
}

func exportCSV(path string, events []catalog.Event) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, ev := range events {
		if err := writer.Write(eventRow(ev)); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	return nil
}

func exportJSON(path string, events []catalog.Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func exportXLSX(path string, events []catalog.Event) (err error) {
	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, ev := range events {
		row := eventRow(ev)
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
