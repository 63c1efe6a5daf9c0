package checklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writePlan(t, "plan.json", `{
		"title": "Wallet Smoke",
		"description": "quick pass",
		"collector": "dana",
		"environment": {"platform": "Desktop", "build": "abc123"},
		"cases": [
			{"id": "wal-1", "title": "Create wallet", "steps": ["open settings", "click create"]},
			{"title": "Restore wallet"}
		]
	}`)

	plan, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Wallet Smoke", plan.Title)
	assert.Equal(t, "Wallet Smoke", plan.RunName, "run name defaults to title")
	assert.Equal(t, "quick pass", plan.DescriptionText)
	assert.Equal(t, "dana", plan.Collector)
	assert.Equal(t, "abc123", plan.Environment.Revision, "revision defaults from build")
	require.Len(t, plan.Cases, 2)
	assert.Equal(t, "wal-1", plan.Cases[0].Key(0))
	assert.Equal(t, "case-2", plan.Cases[1].Key(1), "positional key is 1-based")
}

func TestLoadYAML(t *testing.T) {
	path := writePlan(t, "plan.yaml", `
title: Sync Checks
run_name: sync-nightly
cases:
  - title: Pair devices
    expected: both devices listed
    tags: [sync, p1]
`)

	plan, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sync-nightly", plan.RunName)
	require.Len(t, plan.Cases, 1)
	assert.Equal(t, "both devices listed", plan.Cases[0].Expected)
	assert.Equal(t, []string{"sync", "p1"}, plan.Cases[0].Tags)
}

func TestLoadDescriptionMarkdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Scope\nonly desktop"), 0o644))
	path := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"title": "T",
		"description_markdown": "notes.md",
		"cases": [{"title": "c"}]
	}`), 0o644))

	plan, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "# Scope\nonly desktop", plan.DescriptionText)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing title", `{"cases": [{"title": "c"}]}`, "title"},
		{"missing cases", `{"title": "T"}`, "cases"},
		{"bad json", `{`, "parsing plan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlan(t, "plan.json", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Wallet Smoke", "wallet-smoke"},
		{"  v1.81 (Chromium) ", "v1-81-chromium"},
		{"---", "checklist"},
		{"", "checklist"},
		{"already-slugged", "already-slugged"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestBaseFileName(t *testing.T) {
	got := BaseFileName("Wallet Smoke", "1.81.9", "2026-08-25T14:03:11-9f2c01aa")
	assert.Equal(t, "wallet-smoke-1-81-9-2026-08-25-14", got)

	got = BaseFileName("Wallet Smoke", "", "short")
	assert.Equal(t, "wallet-smoke-unknown-short", got)
}

func TestRenderMarkdown(t *testing.T) {
	plan := &Plan{
		Title:           "Wallet Smoke",
		DescriptionText: "quick pass",
		Cases: []Case{
			{ID: "wal-1", Title: "Create wallet", Steps: []string{"open settings"}, Expected: "wallet exists"},
			{Title: "Restore wallet", Tags: []string{"p2"}},
		},
	}

	md := RenderMarkdown(plan)
	assert.Contains(t, md, "# Wallet Smoke")
	assert.Contains(t, md, "- [ ] **Create wallet** (wal-1)")
	assert.Contains(t, md, "    1. open settings")
	assert.Contains(t, md, "  - Expected: wallet exists")
	assert.Contains(t, md, "  - Tags: p2")
}
