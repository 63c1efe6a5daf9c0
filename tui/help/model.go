// Package help renders the full keybinding overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quinn/checkrun/tui/shared"
)

var groupNames = []string{
	"Navigation",
	"Verdicts",
	"Clipboard",
	"Export",
	"General",
}

type Model struct {
	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(shared.TitleStyle.Render("Keybindings") + "\n\n")

	groups := shared.Keys.FullHelp()
	for i, group := range groups {
		name := ""
		if i < len(groupNames) {
			name = groupNames[i]
		}
		b.WriteString(shared.SectionStyle.Render(name) + "\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("  " + shared.HelpKeyStyle.Render(padRight(h.Key, 8)))
			b.WriteString(" " + shared.HelpDescStyle.Render(h.Desc) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(shared.HelpDescStyle.Render("press ? or esc to close"))

	box := shared.HelpOverlayStyle.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
