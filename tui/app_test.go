package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/clipboard"
	"github.com/quinn/checkrun/config"
	"github.com/quinn/checkrun/session"
	"github.com/quinn/checkrun/tui/shared"
)

func newTestApp(t *testing.T, notice string) App {
	t.Helper()
	shared.InitStyles(config.DefaultTheme())
	plan := &checklist.Plan{
		Title:   "Wallet Smoke",
		RunName: "Wallet Smoke",
		Cases:   []checklist.Case{{Title: "Create wallet"}},
	}
	sess := session.New(plan.Title, "run-1")
	runtime := session.NewRuntime(sess, session.NewMemoryStore())
	cfg := config.Config{}
	return New(&cfg, plan, runtime, &clipboard.Memory{}, &clipboard.Memory{}, t.TempDir(), notice)
}

func TestStartupNoticeSurfacedInStatusBar(t *testing.T) {
	app := newTestApp(t, "session store unavailable, changes will not be persisted: disk full")

	cmd := app.Init()
	require.NotNil(t, cmd, "a startup notice produces an init command")

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model, _ = model.Update(cmd())

	view := model.(App).View()
	assert.Contains(t, view, "session store unavailable")
}

func TestNoStartupNoticeNoInitCommand(t *testing.T) {
	app := newTestApp(t, "")
	assert.Nil(t, app.Init())
}
