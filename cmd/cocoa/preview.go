package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wippyai/cocoa-bridge/alfred"
)

func newPreviewCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse script filter items interactively",
		Long: `preview shows items in a terminal UI. Without -f it lists the process
environment. Press / to filter with an expression, enter to show the XML
for the selected item and x for the whole result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				items  []alfred.Item
				source string
				err    error
			)
			if file == "-" {
				return fmt.Errorf("preview reads keys from stdin; pass items with -f <file>")
			}
			if file != "" {
				items, err = readItems(cmd.InOrStdin(), file)
				source = file
			} else {
				items, err = a.envItems()
				source = "environment"
			}
			if err != nil {
				return err
			}

			m := newPreviewModel(source, items, a.cfg.Render.Indent)
			p := tea.NewProgram(m, tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML item file")
	return cmd
}

func (a *app) envItems() ([]alfred.Item, error) {
	s, err := a.open()
	if err != nil {
		return nil, err
	}
	env, err := s.Environment()
	if err != nil {
		return nil, err
	}
	return envItems(env), nil
}

type previewState int

const (
	stateBrowse previewState = iota
	stateFilter
	stateShowResult
)

type previewModel struct {
	err      error
	source   string
	indent   string
	where    string
	result   string
	items    []alfred.Item
	shown    []alfred.Item
	input    textinput.Model
	selected int
	state    previewState
}

func newPreviewModel(source string, items []alfred.Item, indent string) *previewModel {
	ti := textinput.New()
	ti.Prompt = "where: "
	ti.Placeholder = `title contains "PATH"`
	ti.Width = 50
	return &previewModel{
		source: source,
		indent: indent,
		items:  items,
		shown:  items,
		input:  ti,
		state:  stateBrowse,
	}
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateFilter {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.input.Blur()
			if m.applyFilter(m.input.Value()) {
				m.state = stateBrowse
			}
			return m, nil
		case "esc":
			m.input.SetValue(m.where)
			m.input.Blur()
			m.state = stateBrowse
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateBrowse && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateBrowse && m.selected < len(m.shown)-1 {
			m.selected++
		}

	case "/":
		if m.state == stateBrowse {
			m.state = stateFilter
			return m, m.input.Focus()
		}

	case "enter":
		switch m.state {
		case stateBrowse:
			if len(m.shown) > 0 {
				m.render(m.shown[m.selected : m.selected+1])
			}
		case stateShowResult:
			m.back()
		}

	case "x":
		if m.state == stateBrowse {
			m.render(m.shown)
		}

	case "esc":
		if m.state == stateShowResult {
			m.back()
		}
	}
	return m, nil
}

// applyFilter reports whether where compiled. On failure the error is
// shown and the previous filter stays in place.
func (m *previewModel) applyFilter(where string) bool {
	shown, err := selectItems(m.items, "", where)
	if err != nil {
		m.err = err
		m.result = ""
		m.state = stateShowResult
		return false
	}
	m.where = where
	m.shown = shown
	m.selected = 0
	m.err = nil
	return true
}

func (m *previewModel) render(items []alfred.Item) {
	var b strings.Builder
	m.err = alfred.NewRenderer(&b).WithIndent(m.indent).Render(items)
	m.result = b.String()
	m.state = stateShowResult
}

func (m *previewModel) back() {
	m.state = stateBrowse
	m.result = ""
	m.err = nil
}

func (m *previewModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Script Filter"))
	b.WriteString(" ")
	b.WriteString(m.source)
	if m.where != "" {
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("where " + m.where))
	}
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateFilter:
		fmt.Fprintf(&b, "%d of %d items\n\n", len(m.shown), len(m.items))
		b.WriteString(listItems(m.shown, m.selected))
		b.WriteString("\n")
		if m.state == stateFilter {
			b.WriteString(m.input.View())
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("enter apply • esc cancel"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter xml • x all • / filter • q quit"))
		}

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}
