package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Config{
		Users: UsersConfig{Names: []string{"dana", "kim"}},
		Issue: IssueConfig{RepoURL: "https://github.com/acme/app", TitlePrefix: "Defect"},
		Store: StoreConfig{Path: "/tmp/checkrun-test.db"},
		Templates: []EnvTemplate{
			{Name: "Win Nightly", Platform: "Desktop", OSVersion: "Windows 11", AppVersion: "1.81.9", Build: "abc123"},
		},
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Users.Names, got.Users.Names)
	assert.Equal(t, "Defect", got.Issue.TitlePrefix)
	require.Len(t, got.Templates, 1)
	assert.Equal(t, "abc123", got.Templates[0].Build)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestResolvedDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, []string{"Desktop", "Mobile", "Android", "iOS"}, cfg.ResolvedPlatformOptions())
	assert.Equal(t, []string{"Nightly", "Beta", "Stable"}, cfg.ResolvedChannelOptions())
	assert.Equal(t, "Select QA Engineer", cfg.ResolvedUserPlaceholder())
	assert.Equal(t, "Bug", cfg.ResolvedTitlePrefix())

	parser := cfg.ResolvedParser()
	assert.Equal(t, "Brave", parser.ProductToken)
	assert.Equal(t, "Chromium", parser.EngineToken)
	assert.Equal(t, "OS", parser.OSToken)
	assert.Equal(t, "Revision", parser.RevisionToken)

	assert.NotEmpty(t, cfg.ResolvedStorePath())
}

func TestResolvedOverrides(t *testing.T) {
	cfg := Config{
		Vocab:  VocabConfig{ChannelOptions: []string{"Canary", "Release"}},
		Issue:  IssueConfig{TitlePrefix: "Defect"},
		Parser: ParserConfig{ProductToken: "Acme"},
	}

	assert.Equal(t, []string{"Canary", "Release"}, cfg.ResolvedChannelOptions())
	assert.Equal(t, "Defect", cfg.ResolvedTitlePrefix())

	parser := cfg.ResolvedParser()
	assert.Equal(t, "Acme", parser.ProductToken)
	assert.Equal(t, "Chromium", parser.EngineToken, "unset tokens keep their defaults")
}

func TestResolvedThemeMergesDefaults(t *testing.T) {
	cfg := Config{Theme: ThemeConfig{Accent: "#ff00ff"}}
	theme := cfg.ResolvedTheme()

	assert.Equal(t, "#ff00ff", theme.Accent)
	assert.Equal(t, DefaultTheme().Pass, theme.Pass)
	assert.Equal(t, DefaultTheme().StatusBarBG, theme.StatusBarBG)
}

func TestFindTemplate(t *testing.T) {
	cfg := Config{Templates: []EnvTemplate{{Name: "Win Nightly"}}}

	tmpl, ok := cfg.FindTemplate("Win Nightly")
	require.True(t, ok)
	assert.Equal(t, "Win Nightly", tmpl.Name)

	_, ok = cfg.FindTemplate("missing")
	assert.False(t, ok)
}
