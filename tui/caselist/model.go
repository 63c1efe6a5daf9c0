// Package caselist renders the checklist overview: one row per case
// with its completion mark and verdict, plus the live verdict
// distribution.
package caselist

import (
	"fmt"
	"strings"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/session"
	"github.com/quinn/checkrun/tui/shared"
)

type Model struct {
	plan *checklist.Plan
	sess *session.Session

	cursor int
	width  int
	height int
}

func New(plan *checklist.Plan, sess *session.Session) Model {
	return Model{plan: plan, sess: sess}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) MoveDown() {
	if m.cursor < len(m.plan.Cases)-1 {
		m.cursor++
	}
}

// SelectedKey returns the case key under the cursor.
func (m Model) SelectedKey() string {
	if len(m.plan.Cases) == 0 {
		return ""
	}
	return m.plan.Cases[m.cursor].Key(m.cursor)
}

// SelectedCase returns the case definition under the cursor.
func (m Model) SelectedCase() checklist.Case {
	if len(m.plan.Cases) == 0 {
		return checklist.Case{}
	}
	return m.plan.Cases[m.cursor]
}

// CaseKeys returns every case key in plan order.
func (m Model) CaseKeys() []string {
	keys := make([]string, len(m.plan.Cases))
	for i, c := range m.plan.Cases {
		keys[i] = c.Key(i)
	}
	return keys
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("  " + shared.TitleStyle.Render(m.plan.Title) + "\n")
	meta := "Run " + m.sess.RunID
	if m.sess.Meta.Collector != "" {
		meta += "  ·  " + m.sess.Meta.Collector
	}
	b.WriteString("  " + shared.MetaStyle.Render(meta) + "\n\n")

	rows := m.visibleRows()
	start, end := m.viewport(len(m.plan.Cases), rows)
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderSummary())

	return b.String()
}

func (m Model) renderRow(i int) string {
	def := m.plan.Cases[i]
	key := def.Key(i)

	indicator := shared.PendingIndicator
	verdict := session.VerdictNotSet
	extras := ""
	if cs, ok := m.sess.CaseIfSet(key); ok {
		if cs.Checked {
			indicator = shared.DoneIndicator
		}
		if cs.Verdict.Valid() {
			verdict = cs.Verdict
		}
		if cs.BugLink != "" {
			extras += " ⚑"
		}
		if n := len(cs.Attachments); n > 0 {
			extras += fmt.Sprintf(" (%d)", n)
		}
	}

	badge := shared.VerdictStyles[verdict].Render(fmt.Sprintf("%-8s", verdict.Label()))
	title := def.Title
	if def.ID != "" {
		title += " " + shared.DimStyle.Render("("+def.ID+")")
	}

	line := fmt.Sprintf("  %s %s %s%s", indicator, badge, title, shared.DimStyle.Render(extras))
	if i == m.cursor {
		return shared.CursorStyle.Render(line)
	}
	return line
}

func (m Model) renderSummary() string {
	sum := session.Summarize(m.sess, m.CaseKeys())
	total := sum.Total()
	if total == 0 {
		total = 1
	}

	barWidth := m.width - 4
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}

	var bar strings.Builder
	var counts []string
	for _, v := range session.VerdictOrder {
		n := sum[v]
		seg := n * barWidth / total
		if n > 0 && seg == 0 {
			seg = 1
		}
		bar.WriteString(shared.BarStyles[v].Render(strings.Repeat("█", seg)))
		counts = append(counts, shared.VerdictStyles[v].Render(fmt.Sprintf("%s %d", v.Label(), n)))
	}

	return "  " + bar.String() + "\n  " + strings.Join(counts, shared.DimStyle.Render("  ·  "))
}

// visibleRows is the space left for case rows after the header and
// summary.
func (m Model) visibleRows() int {
	rows := m.height - 8
	if rows < 3 {
		rows = 3
	}
	return rows
}

func (m Model) viewport(total, rows int) (int, int) {
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := start + rows
	if end > total {
		end = total
	}
	return start, end
}
