package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dungeonarchitect/companion/internal/catalog"
)

func runEventsCommand(args []string) {
	if len(args) < 1 {
		printEventsUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("events list", flag.ExitOnError)
		system := fs.String("system", "", "Only events tagged to this system name")
		eventType := fs.String("type", "", "Only events of this type")
		_ = fs.Parse(args[1:])

		app := mustOpenApp()
		defer app.Close()
		displayEvents(app.store, *system, *eventType)
	case "add":
		fs := flag.NewFlagSet("events add", flag.ExitOnError)
		eventType := fs.String("type", "", "Category label (e.g., Combate, Elite)")
		description := fs.String("description", "", "Narrative text; **bold** markup allowed (required)")
		reward := fs.String("reward", "", "Reward text")
		difficulty := fs.String("difficulty", "", "Difficulty text")
		system := fs.String("system", "", "System name the event belongs to (required)")
		_ = fs.Parse(args[1:])

		app := mustOpenApp()
		defer app.Close()

		added, err := app.store.AddEvent(catalog.Event{
			Type:        *eventType,
			Description: *description,
			Reward:      *reward,
			Difficulty:  *difficulty,
			SystemTag:   *system,
		})
		if err != nil {
			if errors.Is(err, catalog.ErrValidation) {
				fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
				os.Exit(1)
			}
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("Added event %s\n", added.ID)
	case "edit":
		runEventsEdit(args[1:])
	case "remove":
		fs := flag.NewFlagSet("events remove", flag.ExitOnError)
		id := fs.String("id", "", "Event id (required)")
		_ = fs.Parse(args[1:])
		if *id == "" {
			log.Fatalf("Error: -id is required")
		}

		app := mustOpenApp()
		defer app.Close()

		if !app.store.RemoveEvent(*id) {
			fmt.Printf("Event not found: %s\n", *id)
			os.Exit(1)
		}
		fmt.Printf("Removed event %s\n", *id)
	default:
		printEventsUsage()
		os.Exit(1)
	}
}

// runEventsEdit updates only the fields whose flags were explicitly
// set, leaving the rest of the record as stored.
func runEventsEdit(args []string) {
	fs := flag.NewFlagSet("events edit", flag.ExitOnError)
	id := fs.String("id", "", "Event id (required)")
	eventType := fs.String("type", "", "New category label")
	description := fs.String("description", "", "New narrative text")
	reward := fs.String("reward", "", "New reward text")
	difficulty := fs.String("difficulty", "", "New difficulty text")
	system := fs.String("system", "", "New system name")
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

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "type":
			ev.Type = *eventType
		case "description":
			ev.Description = *description
		case "reward":
			ev.Reward = *reward
		case "difficulty":
			ev.Difficulty = *difficulty
		case "system":
			ev.SystemTag = *system
		}
	})

	found, err := app.store.UpdateEvent(ev)
	if err != nil {
		if errors.Is(err, catalog.ErrValidation) {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		log.Fatalf("Error: %v", err)
	}
	if !found {
		fmt.Printf("Event not found: %s\n", *id)
		os.Exit(1)
	}
	fmt.Printf("Updated event %s\n", *id)
}

func printEventsUsage() {
	fmt.Println("Usage: dungeon-architect events <list|add|edit|remove> [options]")
	fmt.Println()
	fmt.Println("  list [-system NAME] [-type TYPE]   - Show events")
	fmt.Println("  add -description D -system S ...   - Create an event")
	fmt.Println("  edit -id ID [field flags]          - Update fields of an event")
	fmt.Println("  remove -id ID                      - Delete an event")
}
