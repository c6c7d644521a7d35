package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dungeonarchitect/companion/internal/cardimage"
)

func runRenderCommand(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	id := fs.String("id", "", "Event id to render (required)")
	outDir := fs.String("out", "", "Output directory (default: configured render dir)")
	_ = fs.Parse(args)
	if *id == "" {
		log.Fatalf("Error: -id is required")
	}

	app := mustOpenApp()
	defer app.Close()

	ev, ok := app.store.EventByID(*id)
	if !ok {
		fmt.Printf("Event not found: %s\n", *id)
		os.Exit(1)
	}

	systemName := ""
	if sys, found := app.store.SystemByName(ev.SystemTag); found {
		systemName = sys.Name
	}

	dir := *outDir
	if dir == "" {
		dir = app.cfg.Render.OutputDir
	}

	renderer, err := cardimage.NewRenderer(app.store.Settings())
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	path, err := renderer.RenderToFile(ev, systemName, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.tr.T("export.failure"), err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
