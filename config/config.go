package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Theme     ThemeConfig   `toml:"theme"`
	Vocab     VocabConfig   `toml:"vocab"`
	Users     UsersConfig   `toml:"users"`
	Issue     IssueConfig   `toml:"issue"`
	Parser    ParserConfig  `toml:"parser"`
	Store     StoreConfig   `toml:"store"`
	Templates []EnvTemplate `toml:"template"`
}

// VocabConfig holds the environment field vocabularies offered in the
// environment pane. Channels double as the tag set the diagnostic
// parser toggles against.
type VocabConfig struct {
	PlatformOptions []string `toml:"platform_options,omitempty"`
	OSOptions       []string `toml:"os_options,omitempty"`
	ChannelOptions  []string `toml:"channel_options,omitempty"`
}

type UsersConfig struct {
	Placeholder string   `toml:"placeholder,omitempty"`
	Names       []string `toml:"names,omitempty"`
}

type IssueConfig struct {
	RepoURL     string `toml:"repo_url,omitempty"`
	TitlePrefix string `toml:"title_prefix,omitempty"`
}

// ParserConfig names the line prefixes the diagnostic parser keys on.
type ParserConfig struct {
	ProductToken  string `toml:"product_token,omitempty"`
	EngineToken   string `toml:"engine_token,omitempty"`
	OSToken       string `toml:"os_token,omitempty"`
	RevisionToken string `toml:"revision_token,omitempty"`
}

type StoreConfig struct {
	Path string `toml:"path,omitempty"` // sessions database, default ~/.local/share/checkrun/sessions.db
}

// EnvTemplate is a named environment preset applied wholesale.
type EnvTemplate struct {
	Name       string `toml:"name"`
	Platform   string `toml:"platform,omitempty"`
	OSVersion  string `toml:"os_version,omitempty"`
	AppVersion string `toml:"app_version,omitempty"`
	Build      string `toml:"build,omitempty"`
}

type ThemeConfig struct {
	BG          string `toml:"bg,omitempty"`
	FG          string `toml:"fg,omitempty"`
	Accent      string `toml:"accent,omitempty"`
	Muted       string `toml:"muted,omitempty"`
	Dim         string `toml:"dim,omitempty"`
	CursorBG    string `toml:"cursor_bg,omitempty"`
	StatusBarBG string `toml:"status_bar_bg,omitempty"`
	StatusBarFG string `toml:"status_bar_fg,omitempty"`
	Error       string `toml:"error,omitempty"`

	Pass    string `toml:"pass,omitempty"`
	Fail    string `toml:"fail,omitempty"`
	Blocked string `toml:"blocked,omitempty"`
	Skipped string `toml:"skipped,omitempty"`
	NotSet  string `toml:"not_set,omitempty"`

	FeedbackSuccessFG string `toml:"feedback_success_fg,omitempty"`
	FeedbackSuccessBG string `toml:"feedback_success_bg,omitempty"`
	FeedbackWarningFG string `toml:"feedback_warning_fg,omitempty"`
	FeedbackWarningBG string `toml:"feedback_warning_bg,omitempty"`
	FeedbackErrorFG   string `toml:"feedback_error_fg,omitempty"`
	FeedbackErrorBG   string `toml:"feedback_error_bg,omitempty"`
}

// DefaultConfigPath returns ~/.config/checkrun/config.toml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "checkrun", "config.toml")
}

func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Store.Path != "" {
		cfg.Store.Path = expandHome(cfg.Store.Path)
	}

	return cfg, nil
}

// Save writes the config back to a TOML file.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ResolvedPlatformOptions returns configured platforms or the defaults.
func (c Config) ResolvedPlatformOptions() []string {
	if len(c.Vocab.PlatformOptions) > 0 {
		return c.Vocab.PlatformOptions
	}
	return []string{"Desktop", "Mobile", "Android", "iOS"}
}

// ResolvedOSOptions returns configured OS versions or the defaults.
func (c Config) ResolvedOSOptions() []string {
	if len(c.Vocab.OSOptions) > 0 {
		return c.Vocab.OSOptions
	}
	return []string{
		"macOS 14",
		"Windows 11",
		"Windows 10",
		"Ubuntu 22.04",
		"Debian 13",
		"Android 14",
		"iOS 18",
	}
}

// ResolvedChannelOptions returns configured channel tags or the defaults.
func (c Config) ResolvedChannelOptions() []string {
	if len(c.Vocab.ChannelOptions) > 0 {
		return c.Vocab.ChannelOptions
	}
	return []string{"Nightly", "Beta", "Stable"}
}

// ResolvedUserPlaceholder returns the collector placeholder label.
func (c Config) ResolvedUserPlaceholder() string {
	if c.Users.Placeholder != "" {
		return c.Users.Placeholder
	}
	return "Select QA Engineer"
}

// ResolvedTitlePrefix returns the issue title prefix, default "Bug".
func (c Config) ResolvedTitlePrefix() string {
	if c.Issue.TitlePrefix != "" {
		return c.Issue.TitlePrefix
	}
	return "Bug"
}

// ResolvedParser merges configured parser tokens with the defaults.
func (c Config) ResolvedParser() ParserConfig {
	return ParserConfig{
		ProductToken:  pick(c.Parser.ProductToken, "Brave"),
		EngineToken:   pick(c.Parser.EngineToken, "Chromium"),
		OSToken:       pick(c.Parser.OSToken, "OS"),
		RevisionToken: pick(c.Parser.RevisionToken, "Revision"),
	}
}

// ResolvedStorePath returns the sessions database path. The store
// creates the parent directory on open.
func (c Config) ResolvedStorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sessions.db"
	}
	return filepath.Join(home, ".local", "share", "checkrun", "sessions.db")
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		BG:          "#101010",
		FG:          "#ffffff",
		Accent:      "#ffc799",
		Muted:       "#505050",
		Dim:         "#a0a0a0",
		CursorBG:    "#2a2a2a",
		StatusBarBG: "#1a1a1a",
		StatusBarFG: "#a0a0a0",
		Error:       "#ff8080",

		Pass:    "#99ffe4",
		Fail:    "#ff8080",
		Blocked: "#ffc799",
		Skipped: "#a0a0a0",
		NotSet:  "#505050",

		FeedbackSuccessFG: "#99ffe4",
		FeedbackSuccessBG: "#1a3a2a",
		FeedbackWarningFG: "#ffc799",
		FeedbackWarningBG: "#2a2215",
		FeedbackErrorFG:   "#ff8080",
		FeedbackErrorBG:   "#3a1a1a",
	}
}

// ResolvedTheme merges config theme with defaults for any unset fields.
func (c Config) ResolvedTheme() ThemeConfig {
	d := DefaultTheme()
	return ThemeConfig{
		BG:          pick(c.Theme.BG, d.BG),
		FG:          pick(c.Theme.FG, d.FG),
		Accent:      pick(c.Theme.Accent, d.Accent),
		Muted:       pick(c.Theme.Muted, d.Muted),
		Dim:         pick(c.Theme.Dim, d.Dim),
		CursorBG:    pick(c.Theme.CursorBG, d.CursorBG),
		StatusBarBG: pick(c.Theme.StatusBarBG, d.StatusBarBG),
		StatusBarFG: pick(c.Theme.StatusBarFG, d.StatusBarFG),
		Error:       pick(c.Theme.Error, d.Error),

		Pass:    pick(c.Theme.Pass, d.Pass),
		Fail:    pick(c.Theme.Fail, d.Fail),
		Blocked: pick(c.Theme.Blocked, d.Blocked),
		Skipped: pick(c.Theme.Skipped, d.Skipped),
		NotSet:  pick(c.Theme.NotSet, d.NotSet),

		FeedbackSuccessFG: pick(c.Theme.FeedbackSuccessFG, d.FeedbackSuccessFG),
		FeedbackSuccessBG: pick(c.Theme.FeedbackSuccessBG, d.FeedbackSuccessBG),
		FeedbackWarningFG: pick(c.Theme.FeedbackWarningFG, d.FeedbackWarningFG),
		FeedbackWarningBG: pick(c.Theme.FeedbackWarningBG, d.FeedbackWarningBG),
		FeedbackErrorFG:   pick(c.Theme.FeedbackErrorFG, d.FeedbackErrorFG),
		FeedbackErrorBG:   pick(c.Theme.FeedbackErrorBG, d.FeedbackErrorBG),
	}
}

// FindTemplate returns the named environment template, if configured.
func (c Config) FindTemplate(name string) (EnvTemplate, bool) {
	for _, t := range c.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return EnvTemplate{}, false
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
