package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dungeonarchitect/companion/internal/cardimage"
	"github.com/dungeonarchitect/companion/internal/generator"
)

func runSelectCommand(args []string) {
	if len(args) < 1 {
		printSelectUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		app := mustOpenApp()
		defer app.Close()
		displaySystems(app.store)
	case "add":
		if len(args) < 2 {
			log.Fatalf("Error: system id required")
		}
		app := mustOpenApp()
		defer app.Close()
		if err := app.store.SelectSystem(args[1]); err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("Selected system %s\n", args[1])
	case "remove":
		if len(args) < 2 {
			log.Fatalf("Error: system id required")
		}
		app := mustOpenApp()
		defer app.Close()
		app.store.DeselectSystem(args[1])
		fmt.Printf("Deselected system %s\n", args[1])
	case "count":
		if len(args) < 2 {
			log.Fatalf("Error: count required")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Error: invalid count %q", args[1])
		}
		app := mustOpenApp()
		defer app.Close()
		if err := app.store.SetGenerationCount(n); err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("Draw size set to %d\n", n)
	default:
		printSelectUsage()
		os.Exit(1)
	}
}

func printSelectUsage() {
	fmt.Println("Usage: dungeon-architect select <list|add|remove|count> [value]")
	fmt.Println()
	fmt.Println("  list        - Show systems and which are selected")
	fmt.Println("  add ID      - Add a system to the active selection")
	fmt.Println("  remove ID   - Remove a system from the active selection")
	fmt.Println("  count N     - Set how many events each draw produces")
}

func runGenerateCommand(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	typeFilter := fs.String("type", generator.TypeRandom, "Only draw events of this type (\"Random\" = any)")
	count := fs.Int("count", 0, "Number of events to draw (0 = configured draw size)")
	render := fs.Bool("render", false, "Also export each drawn event as a card image")
	outDir := fs.String("out", "", "Output directory for card images (default: configured render dir)")
	_ = fs.Parse(args)

	app := mustOpenApp()
	defer app.Close()

	gen := generator.New()
	drawn, err := gen.Generate(app.store, generator.Request{
		TypeFilter: *typeFilter,
		Count:      *count,
	})
	if err != nil {
		switch {
		case errors.Is(err, generator.ErrNoSystemSelected):
			fmt.Fprintln(os.Stderr, app.tr.T("generate.no_system"))
		case errors.Is(err, generator.ErrEmptyPool):
			fmt.Fprintln(os.Stderr, app.tr.T("generate.empty_pool"))
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	for i, ev := range drawn {
		fmt.Printf("\n--- Card %d of %d ---\n", i+1, len(drawn))
		displayCard(os.Stdout, ev, app.tr)
	}
	fmt.Println()

	if *render {
		dir := *outDir
		if dir == "" {
			dir = app.cfg.Render.OutputDir
		}
		renderer, err := cardimage.NewRenderer(app.store.Settings())
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		for _, ev := range drawn {
			systemName := ""
			if sys, ok := app.store.SystemByName(ev.SystemTag); ok {
				systemName = sys.Name
			}
			path, err := renderer.RenderToFile(ev, systemName, dir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", app.tr.T("export.failure"), err)
				continue
			}
			fmt.Printf("Wrote %s\n", path)
		}
	}
}
