package export

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/config"
	"github.com/quinn/checkrun/session"
)

func testPlan() *checklist.Plan {
	return &checklist.Plan{
		Title:           "Wallet Smoke",
		RunName:         "Wallet Smoke",
		DescriptionText: "quick pass over wallet flows",
		Cases: []checklist.Case{
			{ID: "wal-1", Title: "Create wallet", Steps: []string{"open settings", "click create"}, Expected: "wallet exists"},
			{Title: "Restore wallet", Tags: []string{"p2"}},
		},
	}
}

func testSession() *session.Session {
	s := session.New("Wallet Smoke", "2026-08-25T14:03:11-9f2c01aa")
	s.Meta.Collector = "dana"
	s.Meta.Environment = session.Environment{
		Platform:   "Desktop",
		OSVersion:  "Windows 11",
		AppVersion: "1.81.9",
		Revision:   "abc123",
		Channels:   []string{"Nightly"},
	}
	cs := s.Case("wal-1")
	cs.Checked = true
	cs.Verdict = session.VerdictFail
	cs.Notes = "only with sync <on>"
	cs.ActualResult = "spinner never resolves"
	cs.BugLink = "https://github.com/acme/app/issues/42"
	cs.Attachments = []session.Attachment{{Name: "shot.png", Payload: "data:image/png;base64,aGk="}}
	return s
}

func testBuilder() Builder {
	return Builder{
		Plan:             testPlan(),
		Session:          testSession(),
		PlatformOptions:  []string{"Desktop", "Mobile"},
		OSOptions:        []string{"Windows 11", "macOS 15"},
		ChannelOptions:   []string{"Nightly", "Beta", "Stable"},
		Users:            []string{"dana", "kim"},
		UserPlaceholder:  "Select QA Engineer",
		IssueRepo:        "https://github.com/acme/app",
		IssueTitlePrefix: "Bug",
		Templates: []config.EnvTemplate{{
			Name:       "Win Nightly",
			Platform:   "Desktop",
			OSVersion:  "Windows 11",
			AppVersion: "1.81.9",
			Build:      "abc123",
		}},
	}
}

func TestSnapshotPlanOrderAndZeroStates(t *testing.T) {
	r := Snapshot(testSession(), testPlan())

	require.Len(t, r.Cases, 2)
	assert.Equal(t, "wal-1", r.Cases[0].Key)
	assert.Equal(t, session.VerdictFail, r.Cases[0].Status)
	assert.Equal(t, "case-2", r.Cases[1].Key)
	assert.Equal(t, session.VerdictNotSet, r.Cases[1].Status, "untouched case reports its zero state")
	assert.NotNil(t, r.Cases[1].Attachments)
	assert.NotNil(t, r.Logs)
	assert.Equal(t, "dana", r.Collector)
}

func TestBuilderArtifactNames(t *testing.T) {
	b := testBuilder()

	_, name, err := b.Working()
	require.NoError(t, err)
	assert.Equal(t, "wallet-smoke-1-81-9-2026-08-25-14-working.html", name)

	_, name, err = b.Final()
	require.NoError(t, err)
	assert.Equal(t, "wallet-smoke-1-81-9-2026-08-25-14-final.html", name)

	_, name, err = b.ReportArtifact()
	require.NoError(t, err)
	assert.Equal(t, "wallet-smoke-report.json", name)

	_, name, err = b.LogArtifact()
	require.NoError(t, err)
	assert.Equal(t, "wallet-smoke-activity-log.json", name)
}

func TestWorkingDocument(t *testing.T) {
	out, _, err := testBuilder().Working()
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `data-run-id="2026-08-25T14:03:11-9f2c01aa"`)
	assert.Contains(t, doc, `id="export-json"`, "working keeps the export toolbar")
	assert.Contains(t, doc, `class="case-file"`, "working keeps file inputs")
	assert.Contains(t, doc, `class="env-clear"`, "working keeps clear buttons")
	assert.Contains(t, doc, `id="env-template"`)
	assert.Contains(t, doc, `id="version-raw"`, "working keeps the paste-and-parse box")
	assert.Contains(t, doc, "localStorage", "working keeps the behavior script")
	assert.Contains(t, doc, "quick pass over wallet flows")
	assert.Contains(t, doc, `<img src="data:image/png;base64,aGk="`)
}

func TestWorkingDocumentEmbeddedReportRoundTrip(t *testing.T) {
	out, _, err := testBuilder().Working()
	require.NoError(t, err)
	doc := string(out)

	const open = `<script type="application/json" id="qa-report-json">`
	start := strings.Index(doc, open)
	require.GreaterOrEqual(t, start, 0)
	rest := doc[start+len(open):]
	end := strings.Index(rest, "</script>")
	require.GreaterOrEqual(t, end, 0)

	var r Report
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), &r))
	assert.Equal(t, "Wallet Smoke", r.Title)
	assert.Equal(t, "only with sync <on>", r.Cases[0].Notes, "markup-significant characters survive the round trip")
	require.Len(t, r.Cases[0].Attachments, 1)
	assert.Equal(t, "shot.png", r.Cases[0].Attachments[0].Name)
}

func TestWorkingDocumentSessionKeyBaked(t *testing.T) {
	out, _, err := testBuilder().Working()
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `data-session-key="checkrun:wallet-smoke:2026-08-25T14:03:11-9f2c01aa"`,
		"the storage key is baked in rather than re-derived by the script")
	assert.Contains(t, doc, `document.body.getAttribute('data-session-key')`)
}

func TestWorkingDocumentTemplateValuesApplied(t *testing.T) {
	out, _, err := testBuilder().Working()
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "data-templates=", "template picker carries its value payload")
	assert.Contains(t, doc, "&#34;os_version&#34;:&#34;Windows 11&#34;")
	assert.Contains(t, doc, "&#34;revision&#34;:&#34;abc123&#34;")

	assert.Contains(t, doc, `JSON.parse(templateSelect.getAttribute('data-templates')`)
	assert.Contains(t, doc, `assign('env-platform', tpl.platform)`)
	assert.Contains(t, doc, `assign('env-revision', tpl.revision)`)
}

func TestWorkingDocumentRestoresSavedState(t *testing.T) {
	out, _, err := testBuilder().Working()
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "state.meta.environment.channels.indexOf(box.value)",
		"saved channel selections are restored on reload")
	assert.Contains(t, doc, "(saved.attachments || []).forEach",
		"saved evidence is re-rendered on reload")
}

func TestWorkingDocumentLiveCopyRecompute(t *testing.T) {
	out, _, err := testBuilder().Working()
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "if (kind === 'attachments') text = attachmentsText();")
	assert.Contains(t, doc, "'Status: ' + status.value",
		"summary copy recomputes from the live fields")
	assert.Contains(t, doc, "parts.push('Actual result:")
}

var controlTag = regexp.MustCompile(`<(input|select|textarea)\b[^>]*`)

func TestFinalDocumentIsLocked(t *testing.T) {
	out, _, err := testBuilder().Final()
	require.NoError(t, err)
	doc := string(out)

	for _, tag := range controlTag.FindAllString(doc, -1) {
		assert.True(t, strings.Contains(tag, "disabled") || strings.Contains(tag, "readonly"),
			"control is still editable: %s", tag)
	}

	assert.NotContains(t, doc, `type="file"`, "file inputs are removed")
	assert.NotContains(t, doc, `id="export-json"`, "export toolbar is removed")
	assert.NotContains(t, doc, `class="env-clear"`, "clear buttons are removed")
	assert.NotContains(t, doc, `id="env-template"`, "template picker is removed")
	assert.NotContains(t, doc, `id="version-raw"`, "paste-and-parse is removed")
	assert.NotContains(t, doc, "localStorage", "behavior script is stripped")

	assert.Contains(t, doc, "data-copy-text", "copy payloads stay baked in")
	assert.Contains(t, doc, `<img src="data:image/png;base64,aGk="`, "evidence survives finalization")
	assert.Contains(t, doc, "navigator.clipboard", "static copy handler remains")
}

func TestFinalCopyPayloadsBaked(t *testing.T) {
	out, _, err := testBuilder().Final()
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "1. open settings")
	assert.Contains(t, doc, `data-copy="summary"`)
	assert.Contains(t, doc, "Status: fail")
}

func TestPayloadsFor(t *testing.T) {
	rc := ReportCase{
		Key:          "wal-1",
		Title:        "Create wallet",
		Status:       session.VerdictFail,
		Notes:        "flaky",
		ActualResult: "hang",
		BugLink:      "https://x/1",
		Attachments:  []session.Attachment{{Payload: "data:,x"}},
	}

	p := PayloadsFor(rc, []string{"open settings", "click create"})

	assert.Equal(t, "1. open settings\n2. click create", p.Steps)
	assert.Equal(t, "flaky", p.Notes)
	assert.Equal(t, "screenshot-1: data:,x", p.Attachments, "unnamed attachments get positional names")
	assert.Contains(t, p.Summary, "Title: Create wallet")
	assert.Contains(t, p.Summary, "Status: fail")
	assert.Contains(t, p.Summary, "Bug: https://x/1")
	assert.Contains(t, p.Summary, "Steps:\n1. open settings")
}

func TestPayloadsForEmptyCase(t *testing.T) {
	p := PayloadsFor(ReportCase{Title: "X", Status: session.VerdictNotSet}, nil)
	assert.Equal(t, "Title: X\n\nStatus: not_set", p.Summary, "empty sections are dropped from the summary")
}

func TestEnvText(t *testing.T) {
	text := EnvText(session.Environment{
		Platform:   "Desktop",
		OSVersion:  "Windows 11",
		AppVersion: "1.81.9",
		Revision:   "abc123",
		Channels:   []string{"Nightly", "Beta"},
	})
	assert.Equal(t,
		"Platform: Desktop\nOS version: Windows 11\nApp version: 1.81.9\nRevision: abc123\nChannel: Nightly, Beta",
		text)
}
