package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dungeonarchitect/companion/internal/catalog"
)

func runSystemsCommand(args []string) {
	if len(args) < 1 {
		printSystemsUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		app := mustOpenApp()
		defer app.Close()
		displaySystems(app.store)
	case "add":
		fs := flag.NewFlagSet("systems add", flag.ExitOnError)
		name := fs.String("name", "", "Display name of the system (required)")
		stats := fs.String("stats", "", "Comma-separated attribute labels (e.g., \"Vida,Sanidade\")")
		_ = fs.Parse(args[1:])

		app := mustOpenApp()
		defer app.Close()

		sys := catalog.System{Name: *name, Stats: splitStats(*stats)}
		added, err := app.store.AddSystem(sys)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("Added system %q (%s)\n", added.Name, added.ID)
	case "remove":
		fs := flag.NewFlagSet("systems remove", flag.ExitOnError)
		id := fs.String("id", "", "System id (required)")
		_ = fs.Parse(args[1:])
		if *id == "" {
			log.Fatalf("Error: -id is required")
		}

		app := mustOpenApp()
		defer app.Close()

		if !app.store.RemoveSystem(*id) {
			fmt.Printf("System not found: %s\n", *id)
			os.Exit(1)
		}
		fmt.Printf("Removed system %s. Its events were kept.\n", *id)
	default:
		printSystemsUsage()
		os.Exit(1)
	}
}

func printSystemsUsage() {
	fmt.Println("Usage: dungeon-architect systems <list|add|remove> [options]")
	fmt.Println()
	fmt.Println("  list                          - Show all systems")
	fmt.Println("  add -name NAME [-stats A,B]   - Create a system")
	fmt.Println("  remove -id ID                 - Delete a system (events are kept)")
}

func splitStats(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	stats := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			stats = append(stats, trimmed)
		}
	}
	return stats
}
