package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dungeonarchitect/companion/internal/catalog"
	"github.com/dungeonarchitect/companion/internal/i18n"
	"github.com/dungeonarchitect/companion/internal/markup"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

func displaySystems(store *catalog.Store) {
	systems := store.Systems()
	if len(systems) == 0 {
		fmt.Println("No systems in the catalog.")
		return
	}

	selected := make(map[string]bool)
	for _, id := range store.SelectedSystemIDs() {
		selected[id] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  \tID\tNAME\tSTATS")
	for _, sys := range systems {
		marker := " "
		if selected[sys.ID] {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, sys.ID, sys.Name, strings.Join(sys.Stats, ", "))
	}
	_ = w.Flush()
	fmt.Println()
	fmt.Printf("%d systems, %d selected. Draw size: %d\n", len(systems), len(store.SelectedSystemIDs()), store.GenerationCount())
}

func displayEvents(store *catalog.Store, systemFilter, typeFilter string) {
	events := store.Events()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDIFFICULTY\tSYSTEM\tDESCRIPTION")
	shown := 0
	for _, ev := range events {
		if systemFilter != "" && !strings.EqualFold(ev.SystemTag, systemFilter) {
			continue
		}
		if typeFilter != "" && !strings.EqualFold(ev.Type, typeFilter) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", ev.ID, ev.Type, ev.Difficulty, ev.SystemTag, truncate(markup.Strip(ev.Description), 60))
		shown++
	}
	_ = w.Flush()
	fmt.Println()
	fmt.Printf("%d of %d events shown\n", shown, len(events))
}

// displayCard prints one event the way it appears on a rendered card,
// with markup segments mapped to terminal bold.
func displayCard(w io.Writer, ev catalog.Event, tr *i18n.Translator) {
	fmt.Fprintf(w, "%s: %s\n", tr.T("card.type"), tr.NormalizeType(ev.Type))
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderMarkup(ev.Description))
	if ev.Reward != "" {
		fmt.Fprintf(w, "\n%s: %s\n", tr.T("card.reward"), renderMarkup(ev.Reward))
	}
	if ev.Difficulty != "" {
		fmt.Fprintf(w, "%s: %s\n", tr.T("card.difficulty"), ev.Difficulty)
	}
	fmt.Fprintf(w, "%s: %s\n", tr.T("card.system"), ev.SystemTag)
}

func renderMarkup(text string) string {
	var b strings.Builder
	for _, seg := range markup.Parse(text) {
		if seg.Bold {
			b.WriteString(ansiBold)
			b.WriteString(seg.Text)
			b.WriteString(ansiReset)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
