package shared

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	ToggleDone    key.Binding
	Pass          key.Binding
	Fail          key.Binding
	Blocked       key.Binding
	Skipped       key.Binding
	ClearVerdict  key.Binding
	OpenCase      key.Binding
	Environment   key.Binding
	CopySummary   key.Binding
	CopyEnv       key.Binding
	IssueDraft    key.Binding
	ExportJSON    key.Binding
	ExportLog     key.Binding
	ExportWorking key.Binding
	ExportFinal   key.Binding
	Help          key.Binding
	Quit          key.Binding
	Escape        key.Binding
}

var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	ToggleDone: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle done"),
	),
	Pass: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "verdict: pass"),
	),
	Fail: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "verdict: fail"),
	),
	Blocked: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "verdict: blocked"),
	),
	Skipped: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "verdict: skipped"),
	),
	ClearVerdict: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "verdict: not set"),
	),
	OpenCase: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open case"),
	),
	Environment: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "environment"),
	),
	CopySummary: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy case summary"),
	),
	CopyEnv: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "copy environment"),
	),
	IssueDraft: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "copy issue draft"),
	),
	ExportJSON: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export report JSON"),
	),
	ExportLog: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "export activity log"),
	),
	ExportWorking: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "export working HTML"),
	),
	ExportFinal: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "export final HTML"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.ToggleDone, k.OpenCase, k.Environment, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.OpenCase, k.Environment},
		{k.ToggleDone, k.Pass, k.Fail, k.Blocked, k.Skipped, k.ClearVerdict},
		{k.CopySummary, k.CopyEnv, k.IssueDraft},
		{k.ExportJSON, k.ExportLog, k.ExportWorking, k.ExportFinal},
		{k.Help, k.Quit, k.Escape},
	}
}
