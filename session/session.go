// Package session is the checklist run state machine: per-case records,
// session metadata, the activity log, and the persistence port that
// keeps all of it durable across restarts.
package session

import (
	"fmt"
	"time"

	"github.com/quinn/checkrun/checklist"
)

// Verdict is the flat classification of a case outcome. Any value is
// reachable from any other; there is no lifecycle.
type Verdict string

const (
	VerdictNotSet  Verdict = "not_set"
	VerdictPass    Verdict = "pass"
	VerdictFail    Verdict = "fail"
	VerdictBlocked Verdict = "blocked"
	VerdictSkipped Verdict = "skipped"
)

// VerdictOrder is the display order used by summaries and exports.
var VerdictOrder = []Verdict{VerdictPass, VerdictFail, VerdictBlocked, VerdictSkipped, VerdictNotSet}

// Label returns the human-readable form of the verdict.
func (v Verdict) Label() string {
	switch v {
	case VerdictPass:
		return "Pass"
	case VerdictFail:
		return "Fail"
	case VerdictBlocked:
		return "Blocked"
	case VerdictSkipped:
		return "Skipped"
	default:
		return "Not set"
	}
}

// Valid reports whether v is one of the five known verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictNotSet, VerdictPass, VerdictFail, VerdictBlocked, VerdictSkipped:
		return true
	}
	return false
}

// Attachment is one piece of case evidence: a display name and an
// inline-encoded payload (a data: URI). Append-only.
type Attachment struct {
	Name    string `json:"name"`
	Payload string `json:"payload"`
}

// CaseState is the mutable record for one case. Created lazily on
// first interaction.
type CaseState struct {
	Checked      bool         `json:"checked"`
	Verdict      Verdict      `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	ActualResult string       `json:"actual_result,omitempty"`
	BugLink      string       `json:"bug_link,omitempty"`
	Attachments  []Attachment `json:"attachments,omitempty"`
}

// Environment is the session's environment metadata. Channels have set
// semantics; the slice preserves the vocabulary order they were
// toggled in.
type Environment struct {
	Platform   string   `json:"platform,omitempty"`
	OSVersion  string   `json:"os_version,omitempty"`
	AppVersion string   `json:"app_version,omitempty"`
	Revision   string   `json:"revision,omitempty"`
	Channels   []string `json:"channels,omitempty"`
}

// HasChannel reports set membership.
func (e *Environment) HasChannel(name string) bool {
	for _, c := range e.Channels {
		if c == name {
			return true
		}
	}
	return false
}

// SetChannel toggles a channel tag on or off.
func (e *Environment) SetChannel(name string, on bool) {
	if on {
		if !e.HasChannel(name) {
			e.Channels = append(e.Channels, name)
		}
		return
	}
	out := e.Channels[:0]
	for _, c := range e.Channels {
		if c != name {
			out = append(out, c)
		}
	}
	e.Channels = out
}

// Meta is the session-scoped metadata block.
type Meta struct {
	Collector   string      `json:"collector,omitempty"`
	Environment Environment `json:"environment"`
}

// LogEntry is one append-only activity log record.
type LogEntry struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
}

func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.At.Format(time.RFC3339), e.Action)
}

// Session is one checklist run, identified by title and run id. It
// exclusively owns its case states and activity log; case definitions
// are borrowed from the plan.
type Session struct {
	Title string                `json:"title"`
	RunID string                `json:"run_id"`
	Meta  Meta                  `json:"meta"`
	Cases map[string]*CaseState `json:"cases"`
	Logs  []LogEntry            `json:"logs"`
}

// Key derives the storage key for a (title, run id) pair. The same
// document resumed with the same run id maps to the same session; a
// new run id starts fresh.
func Key(title, runID string) string {
	return "checkrun:" + checklist.Slugify(title) + ":" + runID
}

// New returns an empty session for a run.
func New(title, runID string) *Session {
	return &Session{
		Title: title,
		RunID: runID,
		Cases: make(map[string]*CaseState),
	}
}

// Key returns the session's storage key.
func (s *Session) Key() string {
	return Key(s.Title, s.RunID)
}

// Case returns the state record for a case key, creating it on first
// use.
func (s *Session) Case(key string) *CaseState {
	if s.Cases == nil {
		s.Cases = make(map[string]*CaseState)
	}
	cs, ok := s.Cases[key]
	if !ok {
		cs = &CaseState{Verdict: VerdictNotSet}
		s.Cases[key] = cs
	}
	return cs
}

// CaseIfSet returns the state for a case key without creating one.
func (s *Session) CaseIfSet(key string) (*CaseState, bool) {
	cs, ok := s.Cases[key]
	return cs, ok
}

func (s *Session) appendLog(action string) {
	s.Logs = append(s.Logs, LogEntry{At: time.Now().UTC(), Action: action})
}
