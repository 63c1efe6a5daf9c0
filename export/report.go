// Package export turns a live session into shareable artifacts: a
// machine-readable report, a re-editable working document, and a
// locked final document. Export reads session state and never mutates
// it.
package export

import (
	"encoding/json"
	"time"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/session"
)

// ReportCase is the fully-denormalized projection of one case.
type ReportCase struct {
	Key          string               `json:"key"`
	Title        string               `json:"title"`
	Checked      bool                 `json:"checked"`
	Status       session.Verdict      `json:"status"`
	Notes        string               `json:"notes"`
	ActualResult string               `json:"actual_result"`
	BugLink      string               `json:"bug_link"`
	Attachments  []session.Attachment `json:"attachments"`
}

// Report is the point-in-time projection of a whole session. It is the
// machine-readable boundary contract: downstream tooling consumes it
// without re-parsing markup.
type Report struct {
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generated_at"`
	RunID       string              `json:"run_id"`
	Collector   string              `json:"collector"`
	Environment session.Environment `json:"environment"`
	Logs        []session.LogEntry  `json:"logs"`
	Cases       []ReportCase        `json:"cases"`
}

// Snapshot projects the current session plus case definitions into a
// report. Pure read; cases keep plan order, and cases never touched in
// the session appear with their zero state.
func Snapshot(sess *session.Session, plan *checklist.Plan) Report {
	r := Report{
		Title:       plan.Title,
		GeneratedAt: time.Now().UTC(),
		RunID:       sess.RunID,
		Collector:   sess.Meta.Collector,
		Environment: sess.Meta.Environment,
		Logs:        sess.Logs,
		Cases:       make([]ReportCase, 0, len(plan.Cases)),
	}
	if r.Logs == nil {
		r.Logs = []session.LogEntry{}
	}

	for i, def := range plan.Cases {
		key := def.Key(i)
		rc := ReportCase{
			Key:         key,
			Title:       def.Title,
			Status:      session.VerdictNotSet,
			Attachments: []session.Attachment{},
		}
		if cs, ok := sess.CaseIfSet(key); ok {
			rc.Checked = cs.Checked
			if cs.Verdict.Valid() {
				rc.Status = cs.Verdict
			}
			rc.Notes = cs.Notes
			rc.ActualResult = cs.ActualResult
			rc.BugLink = cs.BugLink
			if len(cs.Attachments) > 0 {
				rc.Attachments = append(rc.Attachments, cs.Attachments...)
			}
		}
		r.Cases = append(r.Cases, rc)
	}

	return r
}

// JSON renders the report with the indentation downstream tooling
// expects.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// LogsJSON renders just the activity log.
func (r Report) LogsJSON() ([]byte, error) {
	return json.MarshalIndent(r.Logs, "", "  ")
}
