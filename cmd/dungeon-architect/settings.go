package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dungeonarchitect/companion/internal/i18n"
)

func runSettingsCommand(args []string) {
	if len(args) < 1 {
		printSettingsUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "show":
		app := mustOpenApp()
		defer app.Close()

		settings := app.store.Settings()
		fmt.Println("Settings")
		fmt.Println("========")
		fmt.Printf("Language:   %s (resolved: %s)\n", settings.Language, app.tr.Locale())
		fmt.Printf("Background: %s\n", settings.Theme.Background)
		fmt.Printf("Accent:     %s\n", settings.Theme.Accent)
		fmt.Printf("Text:       %s\n", settings.Theme.Text)
		fmt.Printf("Border:     %s\n", settings.Theme.Border)
	case "language":
		if len(args) < 2 {
			fmt.Printf("Supported languages: %s\n", strings.Join(i18n.Locales(), ", "))
			os.Exit(1)
		}
		app := mustOpenApp()
		defer app.Close()

		settings := app.store.Settings()
		settings.Language = args[1]
		app.store.SetSettings(settings)
		fmt.Printf("Language set to %s (resolved: %s)\n", args[1], i18n.New(args[1]).Locale())
	case "theme":
		fs := flag.NewFlagSet("settings theme", flag.ExitOnError)
		background := fs.String("background", "", "Card background color")
		accent := fs.String("accent", "", "Card accent color")
		text := fs.String("text", "", "Card text color")
		border := fs.String("border", "", "Card border color")
		_ = fs.Parse(args[1:])

		app := mustOpenApp()
		defer app.Close()

		settings := app.store.Settings()
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "background":
				settings.Theme.Background = *background
			case "accent":
				settings.Theme.Accent = *accent
			case "text":
				settings.Theme.Text = *text
			case "border":
				settings.Theme.Border = *border
			}
		})
		app.store.SetSettings(settings)
		fmt.Println("Theme updated")
	default:
		printSettingsUsage()
		os.Exit(1)
	}
}

func printSettingsUsage() {
	fmt.Println("Usage: dungeon-architect settings <show|language|theme> [options]")
	fmt.Println()
	fmt.Println("  show                         - Print current settings")
	fmt.Println("  language TAG                 - Set the interface language")
	fmt.Println("  theme [-background C] ...    - Set card theme colors")
}
