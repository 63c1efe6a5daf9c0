// Package tui wires the panes into the root bubbletea program. All
// session mutations flow through the runtime's command dispatch; panes
// only render and collect input.
package tui

import (
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/clipboard"
	"github.com/quinn/checkrun/config"
	"github.com/quinn/checkrun/export"
	"github.com/quinn/checkrun/issue"
	"github.com/quinn/checkrun/session"
	"github.com/quinn/checkrun/tui/casedetail"
	"github.com/quinn/checkrun/tui/caselist"
	"github.com/quinn/checkrun/tui/envpane"
	"github.com/quinn/checkrun/tui/help"
	"github.com/quinn/checkrun/tui/shared"
)

type view int

const (
	viewList view = iota
	viewDetail
	viewEnv
	viewHelp
)

type App struct {
	cfg     *config.Config
	plan    *checklist.Plan
	runtime *session.Runtime
	clipW   clipboard.Writer
	clipR   clipboard.Reader
	outDir  string

	view   view
	list   caselist.Model
	detail casedetail.Model
	env    envpane.Model
	help   help.Model

	// notice is a one-off warning surfaced on startup, e.g. a degraded
	// session store.
	notice string

	// baseline is the focused field's value when it gained focus, so
	// leaving an untouched field does not log a commit.
	baseline string

	feedback    *shared.Feedback
	feedbackSeq int

	width  int
	height int
}

func New(cfg *config.Config, plan *checklist.Plan, runtime *session.Runtime,
	clipW clipboard.Writer, clipR clipboard.Reader, outDir, notice string) App {
	sess := runtime.Session()
	return App{
		cfg:     cfg,
		plan:    plan,
		runtime: runtime,
		clipW:   clipW,
		clipR:   clipR,
		outDir:  outDir,
		notice:  notice,
		list:    caselist.New(plan, sess),
		detail:  casedetail.New(sess),
		env:     envpane.New(sess, cfg),
		help:    help.New(),
	}
}

func (a App) Init() tea.Cmd {
	if a.notice == "" {
		return nil
	}
	notice := a.notice
	return func() tea.Msg {
		return shared.FeedbackMsg{Feedback: shared.Feedback{
			Level:     shared.FeedbackWarning,
			Message:   notice,
			Timestamp: time.Now(),
		}}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height-2)
		a.detail.SetSize(msg.Width, msg.Height-2)
		a.env.SetSize(msg.Width, msg.Height-2)
		a.help.SetSize(msg.Width, msg.Height-2)
		return a, nil

	case shared.FeedbackMsg:
		return a.setFeedback(msg.Feedback.Level, msg.Feedback.Message)

	case shared.ClearFeedbackMsg:
		if msg.Seq == a.feedbackSeq {
			a.feedback = nil
		}
		return a, nil

	case shared.CopiedMsg:
		if msg.Err != nil {
			return a.setFeedback(shared.FeedbackError, "copy failed: "+msg.Err.Error())
		}
		return a.setFeedback(shared.FeedbackSuccess, msg.Label+" copied")

	case shared.ClipboardReadMsg:
		return a.handleClipboardRead(msg)

	case shared.EvidenceLoadedMsg:
		return a.handleEvidenceLoaded(msg)

	case shared.ExportDoneMsg:
		if msg.Err != nil {
			return a.setFeedback(shared.FeedbackError, msg.Label+" failed: "+msg.Err.Error())
		}
		return a.setFeedback(shared.FeedbackSuccess, msg.Label+" written to "+msg.Path)

	case tea.KeyMsg:
		switch a.view {
		case viewList:
			return a.updateList(msg)
		case viewDetail:
			return a.updateDetail(msg)
		case viewEnv:
			return a.updateEnv(msg)
		case viewHelp:
			if key.Matches(msg, shared.Keys.Help) || key.Matches(msg, shared.Keys.Escape) || key.Matches(msg, shared.Keys.Quit) {
				a.view = viewList
			}
			return a, nil
		}
	}

	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := a.runtime.Session()
	keys := shared.Keys

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Up):
		a.list.MoveUp()

	case key.Matches(msg, keys.Down):
		a.list.MoveDown()

	case key.Matches(msg, keys.ToggleDone):
		k := a.list.SelectedKey()
		if k == "" {
			return a, nil
		}
		done := false
		if cs, ok := sess.CaseIfSet(k); ok {
			done = cs.Checked
		}
		return a.dispatch(session.SetCompletion{Key: k, Done: !done})

	case key.Matches(msg, keys.Pass):
		return a.setVerdict(session.VerdictPass)
	case key.Matches(msg, keys.Fail):
		return a.setVerdict(session.VerdictFail)
	case key.Matches(msg, keys.Blocked):
		return a.setVerdict(session.VerdictBlocked)
	case key.Matches(msg, keys.Skipped):
		return a.setVerdict(session.VerdictSkipped)
	case key.Matches(msg, keys.ClearVerdict):
		return a.setVerdict(session.VerdictNotSet)

	case key.Matches(msg, keys.OpenCase):
		k := a.list.SelectedKey()
		if k == "" {
			return a, nil
		}
		a.detail.SetCase(a.list.SelectedCase(), k)
		a.baseline = a.detail.Value(a.detail.Focused())
		a.view = viewDetail

	case key.Matches(msg, keys.Environment):
		a.env.SyncFromSession()
		a.baseline = a.env.Value(a.env.Focused())
		a.view = viewEnv

	case key.Matches(msg, keys.CopySummary):
		k := a.list.SelectedKey()
		if k == "" {
			return a, nil
		}
		payloads := a.casePayloads(k, a.list.SelectedCase())
		return a, a.copyCmd("Case summary", payloads.Summary)

	case key.Matches(msg, keys.CopyEnv):
		return a, a.copyCmd("Environment", export.EnvText(sess.Meta.Environment))

	case key.Matches(msg, keys.IssueDraft):
		k := a.list.SelectedKey()
		if k == "" {
			return a, nil
		}
		cs, _ := sess.CaseIfSet(k)
		draft := issue.Build(cs, a.list.SelectedCase(), sess.Meta, a.cfg.ResolvedTitlePrefix())
		text := draft.Title + "\n\n" + draft.Body
		if u := issue.TrackerURL(a.cfg.Issue.RepoURL, draft); u != "" {
			text += "\n\n" + u
		}
		return a, a.copyCmd("Issue draft", text)

	case key.Matches(msg, keys.ExportJSON):
		return a, a.exportCmd("Report JSON", a.builder().ReportArtifact)
	case key.Matches(msg, keys.ExportLog):
		return a, a.exportCmd("Activity log", a.builder().LogArtifact)
	case key.Matches(msg, keys.ExportWorking):
		return a, a.exportCmd("Working document", a.builder().Working)
	case key.Matches(msg, keys.ExportFinal):
		return a, a.exportCmd("Final document", a.builder().Final)

	case key.Matches(msg, keys.Help):
		a.view = viewHelp
	}

	return a, nil
}

func (a App) setVerdict(v session.Verdict) (tea.Model, tea.Cmd) {
	k := a.list.SelectedKey()
	if k == "" {
		return a, nil
	}
	return a.dispatch(session.SetVerdict{Key: k, Verdict: v})
}

func (a App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := shared.Keys

	switch {
	case key.Matches(msg, keys.Escape):
		model, cmd := a.commitDetailField(a.detail.Focused())
		a = model
		a.view = viewList
		return a, cmd

	case msg.Type == tea.KeyTab:
		prev := a.detail.Focused()
		model, cmd := a.commitDetailField(prev)
		a = model
		a.detail.CycleFocus()
		a.baseline = a.detail.Value(a.detail.Focused())
		return a, cmd

	case msg.Type == tea.KeyEnter && a.detail.Focused() == casedetail.FieldAttach:
		path := a.detail.Value(casedetail.FieldAttach)
		if path == "" {
			return a, nil
		}
		a.detail.ResetAttach()
		return a, loadEvidenceCmd(a.detail.Key(), path)
	}

	var cmd tea.Cmd
	a.detail, cmd = a.detail.Update(msg)

	// Edits save silently on every keystroke; the log entry waits for
	// the field commit.
	var dispatchErr tea.Cmd
	k := a.detail.Key()
	switch a.detail.Focused() {
	case casedetail.FieldNotes:
		_, dispatchErr = a.quietDispatch(session.SetNotes{Key: k, Text: a.detail.Value(casedetail.FieldNotes)})
	case casedetail.FieldActual:
		_, dispatchErr = a.quietDispatch(session.SetActualResult{Key: k, Text: a.detail.Value(casedetail.FieldActual)})
	case casedetail.FieldBug:
		_, dispatchErr = a.quietDispatch(session.SetBugLink{Key: k, URL: a.detail.Value(casedetail.FieldBug)})
	}
	if dispatchErr != nil {
		return a, tea.Batch(cmd, dispatchErr)
	}
	return a, cmd
}

func (a App) commitDetailField(f casedetail.Field) (App, tea.Cmd) {
	if f == casedetail.FieldAttach {
		return a, nil
	}
	if a.detail.Value(f) == a.baseline {
		return a, nil
	}
	k := a.detail.Key()
	var cmd session.Command
	switch f {
	case casedetail.FieldNotes:
		cmd = session.CommitNotes{Key: k}
	case casedetail.FieldActual:
		cmd = session.CommitActualResult{Key: k}
	case casedetail.FieldBug:
		cmd = session.CommitBugLink{Key: k}
	}
	return a.quietDispatch(cmd)
}

func (a App) updateEnv(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := shared.Keys
	focused := a.env.Focused()
	_, isText := focused.EnvField()

	switch {
	case key.Matches(msg, keys.Escape):
		model, cmd := a.commitEnvField(focused)
		a = model
		a.view = viewList
		return a, cmd

	case msg.Type == tea.KeyTab:
		model, cmd := a.commitEnvField(focused)
		a = model
		a.env.CycleFocus()
		a.baseline = a.env.Value(a.env.Focused())
		return a, cmd

	case msg.Type == tea.KeyCtrlV:
		return a, a.readClipboardCmd()

	case !isText && (msg.Type == tea.KeyLeft || msg.String() == "h"):
		a.env.MoveOption(-1)
		return a, nil

	case !isText && (msg.Type == tea.KeyRight || msg.String() == "l"):
		a.env.MoveOption(1)
		return a, nil

	case !isText && msg.Type == tea.KeySpace:
		return a.applyEnvOption()
	}

	var cmd tea.Cmd
	a.env, cmd = a.env.Update(msg)

	if f, ok := a.env.Focused().EnvField(); ok {
		_, dispatchErr := a.quietDispatch(session.SetEnvField{Field: f, Value: a.env.Value(a.env.Focused())})
		if dispatchErr != nil {
			return a, tea.Batch(cmd, dispatchErr)
		}
	}
	return a, cmd
}

func (a App) commitEnvField(f envpane.Field) (App, tea.Cmd) {
	ef, ok := f.EnvField()
	if !ok || a.env.Value(f) == a.baseline {
		return a, nil
	}
	return a.quietDispatch(session.CommitEnvField{Field: ef})
}

func (a App) applyEnvOption() (tea.Model, tea.Cmd) {
	sess := a.runtime.Session()

	switch a.env.Focused() {
	case envpane.FieldCollector:
		model, cmd := a.quietDispatch(session.SetCollector{Name: a.env.SelectedCollector()})
		a = model
		a.env.SyncFromSession()
		return a, cmd

	case envpane.FieldChannels:
		ch := a.env.SelectedChannel()
		if ch == "" {
			return a, nil
		}
		on := !sess.Meta.Environment.HasChannel(ch)
		return a.dispatch(session.ToggleChannel{Name: ch, On: on})

	case envpane.FieldTemplate:
		t, ok := a.env.SelectedTemplate()
		if !ok {
			return a, nil
		}
		model, cmd := a.quietDispatch(session.ApplyTemplate{Template: t})
		a = model
		a.env.SyncFromSession()
		if cmd != nil {
			return a, cmd
		}
		return a.setFeedback(shared.FeedbackInfo, "Template applied: "+t.Name)
	}
	return a, nil
}

func (a App) handleClipboardRead(msg shared.ClipboardReadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return a.setFeedback(shared.FeedbackError, "clipboard read failed: "+msg.Err.Error())
	}
	parsed := session.ParseDiagnostics(msg.Text, a.cfg.ResolvedParser())
	if parsed.Empty() {
		return a.setFeedback(shared.FeedbackWarning, "no diagnostics recognized in clipboard text")
	}
	model, cmd := a.quietDispatch(session.ApplyDiagnostics{
		Parsed:       parsed,
		EngineLabel:  a.cfg.ResolvedParser().EngineToken,
		ChannelVocab: a.cfg.ResolvedChannelOptions(),
	})
	a = model
	a.env.SyncFromSession()
	if cmd != nil {
		return a, cmd
	}
	return a.setFeedback(shared.FeedbackSuccess, "diagnostics applied to environment")
}

func (a App) handleEvidenceLoaded(msg shared.EvidenceLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return a.setFeedback(shared.FeedbackError, "attach failed: "+msg.Err.Error())
	}
	model, cmd := a.quietDispatch(session.AddEvidence{
		Key:       msg.CaseKey,
		Name:      msg.Name,
		Payload:   msg.Payload,
		SizeBytes: msg.Size,
	})
	a = model
	if cmd != nil {
		return a, cmd
	}
	return a.setFeedback(shared.FeedbackSuccess, "evidence attached: "+msg.Name)
}

// dispatch applies a command and surfaces a persistence failure as
// feedback.
func (a App) dispatch(cmd session.Command) (tea.Model, tea.Cmd) {
	if err := a.runtime.Dispatch(cmd); err != nil {
		return a.setFeedback(shared.FeedbackWarning, err.Error()+" (changes kept in memory)")
	}
	return a, nil
}

// quietDispatch is dispatch for callers that keep composing the model
// afterwards.
func (a App) quietDispatch(cmd session.Command) (App, tea.Cmd) {
	if err := a.runtime.Dispatch(cmd); err != nil {
		model, c := a.setFeedback(shared.FeedbackWarning, err.Error()+" (changes kept in memory)")
		return model.(App), c
	}
	return a, nil
}

func (a App) setFeedback(level shared.FeedbackLevel, message string) (tea.Model, tea.Cmd) {
	a.feedbackSeq++
	seq := a.feedbackSeq
	a.feedback = &shared.Feedback{Level: level, Message: message, Timestamp: time.Now()}
	return a, tea.Tick(shared.FeedbackTTL(level), func(time.Time) tea.Msg {
		return shared.ClearFeedbackMsg{Seq: seq}
	})
}

func (a App) builder() export.Builder {
	return export.Builder{
		Plan:             a.plan,
		Session:          a.runtime.Session(),
		PlatformOptions:  a.cfg.ResolvedPlatformOptions(),
		OSOptions:        a.cfg.ResolvedOSOptions(),
		ChannelOptions:   a.cfg.ResolvedChannelOptions(),
		Users:            a.cfg.Users.Names,
		UserPlaceholder:  a.cfg.ResolvedUserPlaceholder(),
		IssueRepo:        a.cfg.Issue.RepoURL,
		IssueTitlePrefix: a.cfg.ResolvedTitlePrefix(),
		Templates:        a.cfg.Templates,
	}
}

func (a App) casePayloads(key string, def checklist.Case) export.CopyPayloads {
	report := export.Snapshot(a.runtime.Session(), a.plan)
	for _, rc := range report.Cases {
		if rc.Key == key {
			return export.PayloadsFor(rc, def.Steps)
		}
	}
	return export.CopyPayloads{}
}

func (a App) copyCmd(label, text string) tea.Cmd {
	return func() tea.Msg {
		return shared.CopiedMsg{Label: label, Err: a.clipW.Write(text)}
	}
}

func (a App) readClipboardCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := a.clipR.Read()
		return shared.ClipboardReadMsg{Text: text, Err: err}
	}
}

func loadEvidenceCmd(caseKey, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return shared.EvidenceLoadedMsg{CaseKey: caseKey, Err: err}
		}
		payload := "data:" + http.DetectContentType(data) + ";base64," +
			base64.StdEncoding.EncodeToString(data)
		return shared.EvidenceLoadedMsg{
			CaseKey: caseKey,
			Name:    filepath.Base(path),
			Payload: payload,
			Size:    len(data),
		}
	}
}

func (a App) exportCmd(label string, render func() ([]byte, string, error)) tea.Cmd {
	outDir := a.outDir
	return func() tea.Msg {
		data, name, err := render()
		if err != nil {
			return shared.ExportDoneMsg{Label: label, Err: err}
		}
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return shared.ExportDoneMsg{Label: label, Err: err}
		}
		return shared.ExportDoneMsg{Label: label, Path: path}
	}
}

func (a App) View() string {
	var body string
	switch a.view {
	case viewDetail:
		body = a.detail.View()
	case viewEnv:
		body = a.env.View()
	case viewHelp:
		return a.help.View()
	default:
		body = a.list.View()
	}
	return body + "\n" + a.statusBar()
}

func (a App) statusBar() string {
	if a.feedback != nil {
		style := shared.FeedbackStyles[a.feedback.Level]
		return style.Width(max(a.width, 1)).Render(" " + a.feedback.Message)
	}

	var parts []string
	for _, b := range shared.Keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, shared.HelpKeyStyle.Render(h.Key)+" "+shared.HelpDescStyle.Render(h.Desc))
	}
	line := " " + joinWithDot(parts)
	return shared.StatusBarStyle.Width(max(a.width, 1)).Render(line)
}

func joinWithDot(parts []string) string {
	sep := shared.DimStyle.Render(" · ")
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}
