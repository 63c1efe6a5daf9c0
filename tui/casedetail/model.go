// Package casedetail is the per-case editor: verdict, notes, actual
// result, defect link and evidence attachments for one case.
package casedetail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/session"
	"github.com/quinn/checkrun/tui/shared"
)

// Field identifies one editable widget in the pane.
type Field int

const (
	FieldNotes Field = iota
	FieldActual
	FieldBug
	FieldAttach
)

func (f Field) Label() string {
	switch f {
	case FieldNotes:
		return "Notes"
	case FieldActual:
		return "Actual result"
	case FieldBug:
		return "Bug link"
	default:
		return "Attach file"
	}
}

type Model struct {
	def    checklist.Case
	key    string
	sess   *session.Session
	focus  Field
	notes  textarea.Model
	actual textarea.Model
	bug    textinput.Model
	attach textinput.Model
	width  int
	height int
}

func New(sess *session.Session) Model {
	notes := textarea.New()
	notes.Placeholder = "Notes or evidence..."
	notes.SetHeight(4)

	actual := textarea.New()
	actual.Placeholder = "Actual result..."
	actual.SetHeight(4)

	bug := textinput.New()
	bug.Placeholder = "Paste bug link..."

	attach := textinput.New()
	attach.Placeholder = "Path to screenshot..."

	return Model{
		sess:   sess,
		notes:  notes,
		actual: actual,
		bug:    bug,
		attach: attach,
	}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	fieldWidth := w - 8
	if fieldWidth > 90 {
		fieldWidth = 90
	}
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	m.notes.SetWidth(fieldWidth)
	m.actual.SetWidth(fieldWidth)
	m.bug.Width = fieldWidth
	m.attach.Width = fieldWidth
}

// SetCase loads a case into the editor.
func (m *Model) SetCase(def checklist.Case, key string) {
	m.def = def
	m.key = key

	var cs session.CaseState
	if existing, ok := m.sess.CaseIfSet(key); ok {
		cs = *existing
	}
	m.notes.SetValue(cs.Notes)
	m.actual.SetValue(cs.ActualResult)
	m.bug.SetValue(cs.BugLink)
	m.attach.Reset()

	m.focus = FieldNotes
	m.applyFocus()
}

// Key returns the case key being edited.
func (m Model) Key() string {
	return m.key
}

// Case returns the definition being edited.
func (m Model) Case() checklist.Case {
	return m.def
}

// Focused returns the active field.
func (m Model) Focused() Field {
	return m.focus
}

// Value returns a field's current text.
func (m Model) Value(f Field) string {
	switch f {
	case FieldNotes:
		return m.notes.Value()
	case FieldActual:
		return m.actual.Value()
	case FieldBug:
		return m.bug.Value()
	default:
		return strings.TrimSpace(m.attach.Value())
	}
}

// CycleFocus moves focus to the next field and returns the field that
// was left, so the caller can commit it.
func (m *Model) CycleFocus() Field {
	prev := m.focus
	m.focus = (m.focus + 1) % 4
	m.applyFocus()
	return prev
}

// ResetAttach clears the attach-path input after a load.
func (m *Model) ResetAttach() {
	m.attach.Reset()
}

func (m *Model) applyFocus() {
	m.notes.Blur()
	m.actual.Blur()
	m.bug.Blur()
	m.attach.Blur()
	switch m.focus {
	case FieldNotes:
		m.notes.Focus()
	case FieldActual:
		m.actual.Focus()
	case FieldBug:
		m.bug.Focus()
	case FieldAttach:
		m.attach.Focus()
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldNotes:
		m.notes, cmd = m.notes.Update(msg)
	case FieldActual:
		m.actual, cmd = m.actual.Update(msg)
	case FieldBug:
		m.bug, cmd = m.bug.Update(msg)
	case FieldAttach:
		m.attach, cmd = m.attach.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	header := m.def.Title
	if m.def.ID != "" {
		header += " (" + m.def.ID + ")"
	}
	b.WriteString("\n  " + shared.TitleStyle.Render(header) + "\n")

	verdict := session.VerdictNotSet
	var attachments []session.Attachment
	checked := false
	if cs, ok := m.sess.CaseIfSet(m.key); ok {
		if cs.Verdict.Valid() {
			verdict = cs.Verdict
		}
		attachments = cs.Attachments
		checked = cs.Checked
	}
	mark := shared.PendingIndicator
	if checked {
		mark = shared.DoneIndicator
	}
	b.WriteString("  " + mark + " " + shared.VerdictStyles[verdict].Render(verdict.Label()) + "\n\n")

	if len(m.def.Steps) > 0 {
		b.WriteString("  " + shared.SectionStyle.Render("Steps") + "\n")
		for i, step := range m.def.Steps {
			b.WriteString(fmt.Sprintf("    %d. %s\n", i+1, step))
		}
	}
	if m.def.Expected != "" {
		b.WriteString("  " + shared.SectionStyle.Render("Expected") + " " + m.def.Expected + "\n")
	}
	if len(m.def.Tags) > 0 {
		b.WriteString("  " + shared.DimStyle.Render("Tags: "+strings.Join(m.def.Tags, ", ")) + "\n")
	}
	if len(m.def.Links) > 0 {
		b.WriteString("  " + shared.DimStyle.Render("Links: "+strings.Join(m.def.Links, ", ")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.fieldLabel(FieldNotes) + "\n")
	b.WriteString(indent(m.notes.View()) + "\n")
	b.WriteString(m.fieldLabel(FieldActual) + "\n")
	b.WriteString(indent(m.actual.View()) + "\n")
	b.WriteString(m.fieldLabel(FieldBug) + "\n")
	b.WriteString("    " + m.bug.View() + "\n")
	b.WriteString(m.fieldLabel(FieldAttach) + "\n")
	b.WriteString("    " + m.attach.View() + "\n")

	if len(attachments) > 0 {
		b.WriteString("\n  " + shared.SectionStyle.Render("Evidence") + "\n")
		for _, a := range attachments {
			b.WriteString("    - " + a.Name + " " + shared.DimStyle.Render(fmt.Sprintf("(%d bytes inline)", len(a.Payload))) + "\n")
		}
	}

	b.WriteString("\n" + shared.HelpDescStyle.Render("  tab: next field  p/f/b/s/n via list  enter: attach  esc: back"))

	return b.String()
}

func (m Model) fieldLabel(f Field) string {
	label := "  " + f.Label()
	if f == m.focus {
		return shared.SectionStyle.Render(label)
	}
	return shared.DimStyle.Render(label)
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = "    " + lines[i]
	}
	return strings.Join(lines, "\n")
}
