// Package envpane edits the run environment: collector, platform, OS,
// app version, revision, channel tags and environment templates.
package envpane

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quinn/checkrun/config"
	"github.com/quinn/checkrun/session"
	"github.com/quinn/checkrun/tui/shared"
)

// Field identifies one row of the pane.
type Field int

const (
	FieldCollector Field = iota
	FieldPlatform
	FieldOSVersion
	FieldAppVersion
	FieldRevision
	FieldChannels
	FieldTemplate
)

const fieldCount = 7

func (f Field) label() string {
	switch f {
	case FieldCollector:
		return "Collector"
	case FieldPlatform:
		return "Platform"
	case FieldOSVersion:
		return "OS version"
	case FieldAppVersion:
		return "App version"
	case FieldRevision:
		return "Revision"
	case FieldChannels:
		return "Channels"
	default:
		return "Template"
	}
}

// EnvField maps a text row to its session command field; ok is false
// for the non-text rows.
func (f Field) EnvField() (session.EnvField, bool) {
	switch f {
	case FieldPlatform:
		return session.EnvPlatform, true
	case FieldOSVersion:
		return session.EnvOSVersion, true
	case FieldAppVersion:
		return session.EnvAppVersion, true
	case FieldRevision:
		return session.EnvRevision, true
	default:
		return 0, false
	}
}

type Model struct {
	sess *session.Session

	users           []string
	userPlaceholder string
	channelOptions  []string
	templates       []config.EnvTemplate

	focus          Field
	collectorIdx   int // 0 means unset, 1..len(users) selects
	channelCursor  int
	templateCursor int

	platform   textinput.Model
	osVersion  textinput.Model
	appVersion textinput.Model
	revision   textinput.Model

	width int
}

func New(sess *session.Session, cfg *config.Config) Model {
	mk := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		return in
	}

	m := Model{
		sess:            sess,
		users:           cfg.Users.Names,
		userPlaceholder: cfg.ResolvedUserPlaceholder(),
		channelOptions:  cfg.ResolvedChannelOptions(),
		templates:       cfg.Templates,
		platform:        mk("Desktop, Mobile..."),
		osVersion:       mk("Windows 11, macOS 15..."),
		appVersion:      mk("1.81.9 (Chromium 139...)"),
		revision:        mk("build id"),
	}
	m.SyncFromSession()
	m.applyFocus()
	return m
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	fieldWidth := w - 20
	if fieldWidth > 60 {
		fieldWidth = 60
	}
	if fieldWidth < 16 {
		fieldWidth = 16
	}
	m.platform.Width = fieldWidth
	m.osVersion.Width = fieldWidth
	m.appVersion.Width = fieldWidth
	m.revision.Width = fieldWidth
}

// SyncFromSession reloads every widget from the session, for use after
// a template or parsed diagnostics rewrote the environment.
func (m *Model) SyncFromSession() {
	env := m.sess.Meta.Environment
	m.platform.SetValue(env.Platform)
	m.osVersion.SetValue(env.OSVersion)
	m.appVersion.SetValue(env.AppVersion)
	m.revision.SetValue(env.Revision)

	m.collectorIdx = 0
	for i, u := range m.users {
		if u == m.sess.Meta.Collector {
			m.collectorIdx = i + 1
			break
		}
	}
}

func (m Model) Focused() Field {
	return m.focus
}

// Value returns the current text of a text row.
func (m Model) Value(f Field) string {
	switch f {
	case FieldPlatform:
		return m.platform.Value()
	case FieldOSVersion:
		return m.osVersion.Value()
	case FieldAppVersion:
		return m.appVersion.Value()
	case FieldRevision:
		return m.revision.Value()
	default:
		return ""
	}
}

// CycleFocus advances to the next row and returns the one left behind.
func (m *Model) CycleFocus() Field {
	prev := m.focus
	m.focus = Field((int(m.focus) + 1) % fieldCount)
	if m.focus == FieldTemplate && len(m.templates) == 0 {
		m.focus = FieldCollector
	}
	m.applyFocus()
	return prev
}

// MoveOption moves the horizontal cursor on the focused option row.
func (m *Model) MoveOption(delta int) {
	switch m.focus {
	case FieldCollector:
		n := len(m.users) + 1 // slot 0 is "unset"
		m.collectorIdx = ((m.collectorIdx+delta)%n + n) % n
	case FieldChannels:
		if n := len(m.channelOptions); n > 0 {
			m.channelCursor = ((m.channelCursor+delta)%n + n) % n
		}
	case FieldTemplate:
		if n := len(m.templates); n > 0 {
			m.templateCursor = ((m.templateCursor+delta)%n + n) % n
		}
	}
}

// SelectedCollector returns the collector under the cursor; empty for
// the unset slot.
func (m Model) SelectedCollector() string {
	if m.collectorIdx == 0 {
		return ""
	}
	return m.users[m.collectorIdx-1]
}

// SelectedChannel returns the channel tag under the cursor.
func (m Model) SelectedChannel() string {
	if len(m.channelOptions) == 0 {
		return ""
	}
	return m.channelOptions[m.channelCursor]
}

// SelectedTemplate returns the template under the cursor.
func (m Model) SelectedTemplate() (config.EnvTemplate, bool) {
	if len(m.templates) == 0 {
		return config.EnvTemplate{}, false
	}
	return m.templates[m.templateCursor], true
}

func (m *Model) applyFocus() {
	m.platform.Blur()
	m.osVersion.Blur()
	m.appVersion.Blur()
	m.revision.Blur()
	switch m.focus {
	case FieldPlatform:
		m.platform.Focus()
	case FieldOSVersion:
		m.osVersion.Focus()
	case FieldAppVersion:
		m.appVersion.Focus()
	case FieldRevision:
		m.revision.Focus()
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldPlatform:
		m.platform, cmd = m.platform.Update(msg)
	case FieldOSVersion:
		m.osVersion, cmd = m.osVersion.Update(msg)
	case FieldAppVersion:
		m.appVersion, cmd = m.appVersion.Update(msg)
	case FieldRevision:
		m.revision, cmd = m.revision.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n  " + shared.TitleStyle.Render("Environment") + "\n\n")

	b.WriteString(m.rowLabel(FieldCollector) + " " + m.renderCollector() + "\n")
	b.WriteString(m.rowLabel(FieldPlatform) + " " + m.platform.View() + "\n")
	b.WriteString(m.rowLabel(FieldOSVersion) + " " + m.osVersion.View() + "\n")
	b.WriteString(m.rowLabel(FieldAppVersion) + " " + m.appVersion.View() + "\n")
	b.WriteString(m.rowLabel(FieldRevision) + " " + m.revision.View() + "\n")
	b.WriteString(m.rowLabel(FieldChannels) + " " + m.renderChannels() + "\n")
	if len(m.templates) > 0 {
		b.WriteString(m.rowLabel(FieldTemplate) + " " + m.renderTemplates() + "\n")
	}

	b.WriteString("\n" + shared.HelpDescStyle.Render(
		"  tab: next field  ←/→: pick  space: toggle/apply  ctrl+v: paste+parse  esc: back"))

	return b.String()
}

func (m Model) rowLabel(f Field) string {
	label := "  " + f.label() + strings.Repeat(" ", 12-len(f.label()))
	if f == m.focus {
		return shared.SectionStyle.Render(label)
	}
	return shared.DimStyle.Render(label)
}

func (m Model) renderCollector() string {
	if len(m.users) == 0 {
		return shared.DimStyle.Render("(no users configured)")
	}
	slots := make([]string, 0, len(m.users)+1)
	slots = append(slots, m.userPlaceholder)
	slots = append(slots, m.users...)

	var parts []string
	for i, name := range slots {
		selected := (i == 0 && m.sess.Meta.Collector == "") || (i > 0 && name == m.sess.Meta.Collector)
		cell := name
		if selected {
			cell = "●" + cell
		}
		if m.focus == FieldCollector && i == m.collectorIdx {
			parts = append(parts, shared.CursorStyle.Render(cell))
		} else if selected {
			parts = append(parts, shared.SectionStyle.Render(cell))
		} else {
			parts = append(parts, shared.DimStyle.Render(cell))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderChannels() string {
	if len(m.channelOptions) == 0 {
		return shared.DimStyle.Render("(none)")
	}
	var parts []string
	for i, ch := range m.channelOptions {
		mark := "[ ]"
		if m.sess.Meta.Environment.HasChannel(ch) {
			mark = "[x]"
		}
		cell := mark + " " + ch
		if m.focus == FieldChannels && i == m.channelCursor {
			parts = append(parts, shared.CursorStyle.Render(cell))
		} else {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTemplates() string {
	var parts []string
	for i, t := range m.templates {
		cell := t.Name
		if m.focus == FieldTemplate && i == m.templateCursor {
			parts = append(parts, shared.CursorStyle.Render(cell))
		} else {
			parts = append(parts, shared.DimStyle.Render(cell))
		}
	}
	return strings.Join(parts, "  ")
}
