package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/wippyai/cocoa-bridge/alfred"
)

// envItems turns environment variables into script filter items sorted by
// name. Multiline values keep their line breaks in the arg.
func envItems(env map[string]string) []alfred.Item {
	names := make([]string, 0, len(env))
	for k := range env {
		names = append(names, k)
	}
	sort.Strings(names)

	items := make([]alfred.Item, 0, len(names))
	for _, k := range names {
		v := env[k]
		items = append(items, alfred.Item{
			UID:          "env." + k,
			Title:        k,
			Subtitle:     firstLine(v),
			Arg:          v,
			Autocomplete: k,
			Icon:         alfred.IconForType("public.plain-text"),
		})
	}
	return items
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// selectItems keeps items whose title contains query, case-insensitively,
// and that match where when it is set.
func selectItems(items []alfred.Item, query, where string) ([]alfred.Item, error) {
	var f *alfred.Filter
	if where != "" {
		var err error
		if f, err = alfred.CompileFilter(where); err != nil {
			return nil, err
		}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]alfred.Item, 0, len(items))
	for _, it := range items {
		if q != "" && !strings.Contains(strings.ToLower(it.Title), q) {
			continue
		}
		out = append(out, it)
	}
	return f.Apply(out)
}

// outputMode picks XML unless stdout is an interactive terminal.
type outputMode int

const (
	outputAuto outputMode = iota
	outputXML
	outputText
)

func (m outputMode) xml(w io.Writer) bool {
	switch m {
	case outputXML:
		return true
	case outputText:
		return false
	}
	f, ok := w.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

func (a *app) writeItems(w io.Writer, mode outputMode, items []alfred.Item) error {
	if mode.xml(w) {
		return alfred.NewRenderer(w).WithIndent(a.cfg.Render.Indent).Render(items)
	}
	_, err := io.WriteString(w, listItems(items, -1))
	return err
}

// listItems formats items for a terminal, highlighting selected.
func listItems(items []alfred.Item, selected int) string {
	if len(items) == 0 {
		return helpStyle.Render("no items") + "\n"
	}
	var b strings.Builder
	for i, it := range items {
		title := it.Title
		if !it.Valid() {
			title += " " + errorStyle.Render("(invalid)")
		}
		if i == selected {
			b.WriteString(selectedStyle.Render("> " + title))
		} else {
			b.WriteString("  " + titleTextStyle.Render(title))
		}
		if it.Subtitle != "" {
			fmt.Fprintf(&b, "  %s", subtitleStyle.Render(it.Subtitle))
		}
		b.WriteString("\n")
	}
	return b.String()
}
