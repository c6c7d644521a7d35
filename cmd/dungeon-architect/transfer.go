package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dungeonarchitect/companion/internal/spreadsheet"
)

func runImportCommand(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: dungeon-architect import <file.xlsx|file.csv>")
		os.Exit(1)
	}

	app := mustOpenApp()
	defer app.Close()

	imported, err := spreadsheet.ImportFile(args[0])
	if err != nil {
		if errors.Is(err, spreadsheet.ErrParse) {
			fmt.Fprintln(os.Stderr, app.tr.T("import.parse_failure"))
			fmt.Fprintf(os.Stderr, "  %v\n", err)
			os.Exit(1)
		}
		log.Fatalf("Error: %v", err)
	}

	newSystems := spreadsheet.Apply(app.store, imported)

	fmt.Printf("Imported %d events\n", len(imported))
	for _, sys := range newSystems {
		fmt.Printf("Created system %q for unknown tag\n", sys.Name)
	}
}

func runTemplateCommand(args []string) {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	out := fs.String("out", spreadsheet.TemplateFilename, "Output path for the template workbook")
	_ = fs.Parse(args)

	if err := spreadsheet.WriteTemplate(*out); err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func runExportCommand(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	formatName := fs.String("format", "csv", "Export format: csv, json or xlsx")
	out := fs.String("out", "", "Output file path (required)")
	overwrite := fs.Bool("overwrite", false, "Replace the output file if it exists")
	_ = fs.Parse(args)
	if *out == "" {
		log.Fatalf("Error: -out is required")
	}

	format, err := spreadsheet.ParseFormat(*formatName)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	app := mustOpenApp()
	defer app.Close()

	opts := spreadsheet.Options{Format: format, FilePath: *out, Overwrite: *overwrite}
	if err := spreadsheet.ExportEvents(opts, app.store.Events()); err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("Exported %d events to %s\n", len(app.store.Events()), *out)
}
