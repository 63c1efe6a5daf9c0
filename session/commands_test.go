package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinn/checkrun/config"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	return NewRuntime(New("Wallet Smoke", "2026-08-25T14:03:11-9f2c01aa"), NewMemoryStore())
}

func lastLog(t *testing.T, s *Session) string {
	t.Helper()
	require.NotEmpty(t, s.Logs)
	return s.Logs[len(s.Logs)-1].Action
}

func TestSetVerdictLogsEveryDispatch(t *testing.T) {
	r := newTestRuntime(t)

	require.NoError(t, r.Dispatch(SetVerdict{Key: "wal-1", Verdict: VerdictPass}))
	require.NoError(t, r.Dispatch(SetVerdict{Key: "wal-1", Verdict: VerdictPass}))

	assert.Equal(t, VerdictPass, r.Session().Case("wal-1").Verdict)
	assert.Len(t, r.Session().Logs, 2, "re-setting the same verdict still logs")
	assert.Equal(t, "Case wal-1 status set to pass", lastLog(t, r.Session()))
}

func TestSetVerdictCoercesInvalid(t *testing.T) {
	r := newTestRuntime(t)
	require.NoError(t, r.Dispatch(SetVerdict{Key: "wal-1", Verdict: Verdict("banana")}))
	assert.Equal(t, VerdictNotSet, r.Session().Case("wal-1").Verdict)
}

func TestCompletionToggle(t *testing.T) {
	r := newTestRuntime(t)

	require.NoError(t, r.Dispatch(SetCompletion{Key: "wal-1", Done: true}))
	assert.True(t, r.Session().Case("wal-1").Checked)
	assert.Equal(t, "Case wal-1 checkbox set to true", lastLog(t, r.Session()))

	require.NoError(t, r.Dispatch(SetCompletion{Key: "wal-1", Done: false}))
	assert.False(t, r.Session().Case("wal-1").Checked)
}

func TestTextFieldsSaveSilentlyLogOnCommit(t *testing.T) {
	r := newTestRuntime(t)

	require.NoError(t, r.Dispatch(SetNotes{Key: "wal-1", Text: "flaky on first attempt"}))
	assert.Empty(t, r.Session().Logs, "typing does not log")
	assert.Equal(t, "flaky on first attempt", r.Session().Case("wal-1").Notes)

	require.NoError(t, r.Dispatch(CommitNotes{Key: "wal-1"}))
	assert.Equal(t, "Case wal-1 notes updated", lastLog(t, r.Session()))

	require.NoError(t, r.Dispatch(SetActualResult{Key: "wal-1", Text: "spinner never resolves"}))
	require.NoError(t, r.Dispatch(CommitActualResult{Key: "wal-1"}))
	assert.Equal(t, "Case wal-1 actual result updated", lastLog(t, r.Session()))
}

func TestBugLinkCommitSkipsEmpty(t *testing.T) {
	r := newTestRuntime(t)

	require.NoError(t, r.Dispatch(SetBugLink{Key: "wal-1", URL: "  "}))
	require.NoError(t, r.Dispatch(CommitBugLink{Key: "wal-1"}))
	assert.Empty(t, r.Session().Logs, "blank link is not logged")

	require.NoError(t, r.Dispatch(SetBugLink{Key: "wal-1", URL: "https://github.com/acme/app/issues/42"}))
	require.NoError(t, r.Dispatch(CommitBugLink{Key: "wal-1"}))
	assert.Equal(t, "Case wal-1 bug link set to https://github.com/acme/app/issues/42", lastLog(t, r.Session()))
}

func TestAddEvidenceAppendOnly(t *testing.T) {
	r := newTestRuntime(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Dispatch(AddEvidence{
			Key:       "wal-1",
			Name:      "shot.png",
			Payload:   "data:image/png;base64,aGk=",
			SizeBytes: 2048,
		}))
	}

	assert.Len(t, r.Session().Case("wal-1").Attachments, 3)
	assert.Contains(t, lastLog(t, r.Session()), "evidence added: shot.png")
	assert.Contains(t, lastLog(t, r.Session()), "2.0 kB")
}

func TestEnvFieldCommitLogsCurrentValue(t *testing.T) {
	r := newTestRuntime(t)

	require.NoError(t, r.Dispatch(SetEnvField{Field: EnvOSVersion, Value: "Windows 11"}))
	assert.Empty(t, r.Session().Logs)

	require.NoError(t, r.Dispatch(CommitEnvField{Field: EnvOSVersion}))
	assert.Equal(t, "OS version set to Windows 11", lastLog(t, r.Session()))
}

func TestToggleChannel(t *testing.T) {
	r := newTestRuntime(t)

	require.NoError(t, r.Dispatch(ToggleChannel{Name: "Nightly", On: true}))
	require.NoError(t, r.Dispatch(ToggleChannel{Name: "Beta", On: true}))
	assert.Equal(t, []string{"Nightly", "Beta"}, r.Session().Meta.Environment.Channels)
	assert.Equal(t, "Channel selection: Nightly, Beta", lastLog(t, r.Session()))

	require.NoError(t, r.Dispatch(ToggleChannel{Name: "Nightly", On: false}))
	assert.Equal(t, []string{"Beta"}, r.Session().Meta.Environment.Channels)
}

func TestApplyTemplateOverwritesScalars(t *testing.T) {
	r := newTestRuntime(t)
	require.NoError(t, r.Dispatch(SetEnvField{Field: EnvRevision, Value: "old-rev"}))

	require.NoError(t, r.Dispatch(ApplyTemplate{Template: config.EnvTemplate{
		Name:       "Win Nightly",
		Platform:   "Desktop",
		OSVersion:  "Windows 11",
		AppVersion: "1.81.9",
		Build:      "abc123",
	}}))

	env := r.Session().Meta.Environment
	assert.Equal(t, "Desktop", env.Platform)
	assert.Equal(t, "Windows 11", env.OSVersion)
	assert.Equal(t, "1.81.9", env.AppVersion)
	assert.Equal(t, "abc123", env.Revision, "build replaces even a previously set revision")
	assert.Equal(t, "Template applied: Win Nightly", lastLog(t, r.Session()))
}

func TestApplyDiagnostics(t *testing.T) {
	r := newTestRuntime(t)
	r.Session().Meta.Environment.OSVersion = "macOS 15"
	r.Session().Meta.Environment.Channels = []string{"Stable"}

	require.NoError(t, r.Dispatch(ApplyDiagnostics{
		Parsed: Diagnostics{
			AppVersion:    "1.81.9",
			EngineVersion: "139.0.7258.66",
			Channel:       "nightly",
			Revision:      "abc123",
		},
		EngineLabel:  "Chromium",
		ChannelVocab: []string{"Nightly", "Beta", "Stable"},
	}))

	env := r.Session().Meta.Environment
	assert.Equal(t, "1.81.9 (Chromium 139.0.7258.66)", env.AppVersion)
	assert.Equal(t, "macOS 15", env.OSVersion, "empty parsed fields leave existing values alone")
	assert.Equal(t, "abc123", env.Revision)
	assert.Equal(t, []string{"Stable", "Nightly"}, env.Channels,
		"matching toggles on, non-matching tags are never cleared")
	assert.Equal(t, "Parsed diagnostics applied to environment", lastLog(t, r.Session()))
}

func TestApplyDiagnosticsEmptyIsSilent(t *testing.T) {
	r := newTestRuntime(t)
	require.NoError(t, r.Dispatch(ApplyDiagnostics{EngineLabel: "Chromium"}))
	assert.Empty(t, r.Session().Logs)
}

func TestSaveFailureReportedOnce(t *testing.T) {
	store := NewMemoryStore()
	store.FailSave = errors.New("disk full")
	r := NewRuntime(New("T", "run-1"), store)

	err := r.Dispatch(SetCompletion{Key: "c1", Done: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving session")
	assert.Contains(t, err.Error(), "disk full")

	assert.NoError(t, r.Dispatch(SetCompletion{Key: "c1", Done: false}),
		"later failures are muted")

	assert.False(t, r.Session().Case("c1").Checked, "in-memory state stays authoritative")
}
