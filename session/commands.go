package session

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/quinn/checkrun/config"
)

// Command is one user-visible state transition. Commands are applied
// through Runtime.Dispatch so every mutation follows the same
// update-persist-log discipline and the state machine stays testable
// without a live UI.
type Command interface {
	isCommand()
}

// SetCompletion toggles a case's completion checkbox.
type SetCompletion struct {
	Key  string
	Done bool
}

// SetVerdict classifies a case. Logged unconditionally, even when the
// verdict does not change.
type SetVerdict struct {
	Key     string
	Verdict Verdict
}

// SetNotes replaces a case's notes text. Saved silently; the log entry
// comes from CommitNotes when the user leaves the field.
type SetNotes struct {
	Key  string
	Text string
}

// CommitNotes records that a case's notes were edited.
type CommitNotes struct {
	Key string
}

// SetActualResult replaces a case's actual-result narrative. Saved
// silently, logged on CommitActualResult.
type SetActualResult struct {
	Key  string
	Text string
}

// CommitActualResult records that a case's actual result was edited.
type CommitActualResult struct {
	Key string
}

// SetBugLink replaces a case's defect link. Saved silently, logged on
// CommitBugLink.
type SetBugLink struct {
	Key string
	URL string
}

// CommitBugLink records a non-empty defect link.
type CommitBugLink struct {
	Key string
}

// AddEvidence appends one attachment to a case. There is no removal.
type AddEvidence struct {
	Key       string
	Name      string
	Payload   string // data: URI
	SizeBytes int
}

// SetCollector records who is running the session.
type SetCollector struct {
	Name string
}

// EnvField identifies one scalar environment field.
type EnvField int

const (
	EnvPlatform EnvField = iota
	EnvOSVersion
	EnvAppVersion
	EnvRevision
)

func (f EnvField) label() string {
	switch f {
	case EnvPlatform:
		return "Platform"
	case EnvOSVersion:
		return "OS version"
	case EnvAppVersion:
		return "App version"
	default:
		return "Revision"
	}
}

// SetEnvField replaces one environment field. Saved silently, logged
// on CommitEnvField.
type SetEnvField struct {
	Field EnvField
	Value string
}

// CommitEnvField records an environment field edit.
type CommitEnvField struct {
	Field EnvField
}

// ToggleChannel flips one channel tag.
type ToggleChannel struct {
	Name string
	On   bool
}

// ApplyTemplate overwrites the scalar environment fields wholesale
// from a named preset.
type ApplyTemplate struct {
	Template config.EnvTemplate
}

// ApplyDiagnostics merges a parse result into the environment:
// non-empty fields only, and channel tags toggled on by
// case-insensitive substring containment against the vocabulary.
// Matching never clears tags.
type ApplyDiagnostics struct {
	Parsed       Diagnostics
	EngineLabel  string
	ChannelVocab []string
}

func (SetCompletion) isCommand()      {}
func (SetVerdict) isCommand()         {}
func (SetNotes) isCommand()           {}
func (CommitNotes) isCommand()        {}
func (SetActualResult) isCommand()    {}
func (CommitActualResult) isCommand() {}
func (SetBugLink) isCommand()         {}
func (CommitBugLink) isCommand()      {}
func (AddEvidence) isCommand()        {}
func (SetCollector) isCommand()       {}
func (SetEnvField) isCommand()        {}
func (CommitEnvField) isCommand()     {}
func (ToggleChannel) isCommand()      {}
func (ApplyTemplate) isCommand()      {}
func (ApplyDiagnostics) isCommand()   {}

// Runtime binds a session to its persistence port. Every Dispatch
// applies one command atomically: mutate in memory, append any log
// entries, then save. A failed save is reported once; after that the
// in-memory state stays authoritative and later failures are silent.
type Runtime struct {
	sess         *Session
	store        Store
	saveReported bool
}

func NewRuntime(sess *Session, store Store) *Runtime {
	return &Runtime{sess: sess, store: store}
}

// Session exposes the live session for read-only consumers (summary,
// export, rendering).
func (r *Runtime) Session() *Session {
	return r.sess
}

// Dispatch applies a command. The returned error is always a
// persistence failure; the in-memory update has already happened.
func (r *Runtime) Dispatch(cmd Command) error {
	s := r.sess
	switch c := cmd.(type) {
	case SetCompletion:
		s.Case(c.Key).Checked = c.Done
		s.appendLog(fmt.Sprintf("Case %s checkbox set to %t", c.Key, c.Done))

	case SetVerdict:
		v := c.Verdict
		if !v.Valid() {
			v = VerdictNotSet
		}
		s.Case(c.Key).Verdict = v
		s.appendLog(fmt.Sprintf("Case %s status set to %s", c.Key, v))

	case SetNotes:
		s.Case(c.Key).Notes = c.Text

	case CommitNotes:
		s.appendLog(fmt.Sprintf("Case %s notes updated", c.Key))

	case SetActualResult:
		s.Case(c.Key).ActualResult = c.Text

	case CommitActualResult:
		s.appendLog(fmt.Sprintf("Case %s actual result updated", c.Key))

	case SetBugLink:
		s.Case(c.Key).BugLink = strings.TrimSpace(c.URL)

	case CommitBugLink:
		if link := s.Case(c.Key).BugLink; link != "" {
			s.appendLog(fmt.Sprintf("Case %s bug link set to %s", c.Key, link))
		}

	case AddEvidence:
		cs := s.Case(c.Key)
		cs.Attachments = append(cs.Attachments, Attachment{Name: c.Name, Payload: c.Payload})
		s.appendLog(fmt.Sprintf("Case %s evidence added: %s (%s)",
			c.Key, c.Name, humanize.Bytes(uint64(c.SizeBytes))))

	case SetCollector:
		s.Meta.Collector = c.Name
		s.appendLog(fmt.Sprintf("Collector set to %s", c.Name))

	case SetEnvField:
		r.setEnvField(c.Field, c.Value)

	case CommitEnvField:
		s.appendLog(fmt.Sprintf("%s set to %s", c.Field.label(), r.envField(c.Field)))

	case ToggleChannel:
		s.Meta.Environment.SetChannel(c.Name, c.On)
		s.appendLog("Channel selection: " + strings.Join(s.Meta.Environment.Channels, ", "))

	case ApplyTemplate:
		t := c.Template
		env := &s.Meta.Environment
		env.Platform = t.Platform
		env.OSVersion = t.OSVersion
		env.AppVersion = t.AppVersion
		env.Revision = t.Build
		s.appendLog("Template applied: " + t.Name)

	case ApplyDiagnostics:
		r.applyDiagnostics(c)
	}

	return r.persist()
}

func (r *Runtime) setEnvField(f EnvField, v string) {
	env := &r.sess.Meta.Environment
	switch f {
	case EnvPlatform:
		env.Platform = v
	case EnvOSVersion:
		env.OSVersion = v
	case EnvAppVersion:
		env.AppVersion = v
	case EnvRevision:
		env.Revision = v
	}
}

func (r *Runtime) envField(f EnvField) string {
	env := r.sess.Meta.Environment
	switch f {
	case EnvPlatform:
		return env.Platform
	case EnvOSVersion:
		return env.OSVersion
	case EnvAppVersion:
		return env.AppVersion
	default:
		return env.Revision
	}
}

func (r *Runtime) applyDiagnostics(c ApplyDiagnostics) {
	s := r.sess
	env := &s.Meta.Environment
	d := c.Parsed

	if d.AppVersion != "" {
		v := d.AppVersion
		if d.EngineVersion != "" {
			v = fmt.Sprintf("%s (%s %s)", v, c.EngineLabel, d.EngineVersion)
		}
		env.AppVersion = v
	}
	if d.OSVersion != "" {
		env.OSVersion = d.OSVersion
	}
	if d.Revision != "" {
		env.Revision = d.Revision
	}
	if d.Channel != "" {
		needle := strings.ToLower(d.Channel)
		for _, tag := range c.ChannelVocab {
			if strings.Contains(strings.ToLower(tag), needle) {
				env.SetChannel(tag, true)
			}
		}
	}

	if !d.Empty() {
		s.appendLog("Parsed diagnostics applied to environment")
	}
}

func (r *Runtime) persist() error {
	err := r.store.Save(r.sess.Key(), r.sess)
	if err == nil {
		return nil
	}
	if r.saveReported {
		return nil
	}
	r.saveReported = true
	return fmt.Errorf("saving session: %w", err)
}
