// Package checklist loads checklist plans: the ordered test cases and
// session metadata a run is built from. Plans are read-only input to
// the session runtime.
package checklist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is one test scenario. Immutable once loaded.
type Case struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string   `json:"title" yaml:"title"`
	Steps    []string `json:"steps,omitempty" yaml:"steps,omitempty"`
	Expected string   `json:"expected,omitempty" yaml:"expected,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Links    []string `json:"links,omitempty" yaml:"links,omitempty"`
}

// Key returns the case's stable key, falling back to a positional key
// for cases without an id. idx is zero-based.
func (c Case) Key(idx int) string {
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("case-%d", idx+1)
}

// Environment holds the plan's environment defaults.
type Environment struct {
	Platform   string   `json:"platform,omitempty" yaml:"platform,omitempty"`
	OSVersion  string   `json:"os_version,omitempty" yaml:"os_version,omitempty"`
	AppVersion string   `json:"app_version,omitempty" yaml:"app_version,omitempty"`
	Revision   string   `json:"revision,omitempty" yaml:"revision,omitempty"`
	Build      string   `json:"build,omitempty" yaml:"build,omitempty"`
	Channels   []string `json:"channels,omitempty" yaml:"channels,omitempty"`
}

// Plan is a parsed checklist input file.
type Plan struct {
	Title               string      `json:"title" yaml:"title"`
	Description         string      `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionMarkdown string      `json:"description_markdown,omitempty" yaml:"description_markdown,omitempty"`
	RunName             string      `json:"run_name,omitempty" yaml:"run_name,omitempty"`
	Collector           string      `json:"collector,omitempty" yaml:"collector,omitempty"`
	Environment         Environment `json:"environment,omitempty" yaml:"environment,omitempty"`
	Cases               []Case      `json:"cases" yaml:"cases"`

	// DescriptionText is the resolved description: either Description
	// or the contents of DescriptionMarkdown.
	DescriptionText string `json:"-" yaml:"-"`
}

// Load reads and validates a plan file. YAML or JSON is picked by
// extension; anything that is not .yaml/.yml is treated as JSON.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	var plan Plan
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("parsing plan: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("parsing plan: %w", err)
		}
	}

	if plan.Title == "" {
		return nil, fmt.Errorf("plan %s: missing required field: title", path)
	}
	if len(plan.Cases) == 0 {
		return nil, fmt.Errorf("plan %s: missing required field: cases", path)
	}

	plan.DescriptionText = plan.Description
	if plan.DescriptionMarkdown != "" {
		mdPath := plan.DescriptionMarkdown
		if !filepath.IsAbs(mdPath) {
			mdPath = filepath.Join(filepath.Dir(path), mdPath)
		}
		md, err := os.ReadFile(mdPath)
		if err != nil {
			return nil, fmt.Errorf("description markdown: %w", err)
		}
		plan.DescriptionText = string(md)
	}

	if plan.RunName == "" {
		plan.RunName = plan.Title
	}

	// Revision defaults from the legacy build field.
	if plan.Environment.Revision == "" {
		plan.Environment.Revision = plan.Environment.Build
	}

	return &plan, nil
}

var slugPattern = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slugify lowercases and collapses non-alphanumerics to hyphens,
// never returning an empty string.
func Slugify(text string) string {
	s := slugPattern.ReplaceAllString(strings.TrimSpace(strings.ToLower(text)), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "checklist"
	}
	return s
}

// BaseFileName composes the artifact name stem shared by all exports
// of one run: slug(run name), slug(app version), and the date-hour
// prefix of the run id.
func BaseFileName(runName, appVersion, runID string) string {
	app := appVersion
	if app == "" {
		app = "unknown"
	}
	stamp := runID
	if len(stamp) > 13 {
		stamp = stamp[:13]
	}
	stamp = strings.ReplaceAll(stamp, "T", "-")
	return fmt.Sprintf("%s-%s-%s", Slugify(runName), Slugify(app), stamp)
}

// RenderMarkdown renders the plan as a markdown checklist for posting
// to a tracker alongside the interactive artifacts.
func RenderMarkdown(plan *Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", plan.Title)
	if desc := strings.TrimSpace(plan.DescriptionText); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}
	b.WriteString("## Checklist\n\n")
	for _, c := range plan.Cases {
		title := c.Title
		if title == "" {
			title = "Untitled case"
		}
		if c.ID != "" {
			fmt.Fprintf(&b, "- [ ] **%s** (%s)\n", title, c.ID)
		} else {
			fmt.Fprintf(&b, "- [ ] **%s**\n", title)
		}
		if len(c.Steps) > 0 {
			b.WriteString("  - Steps to reproduce:\n")
			for i, step := range c.Steps {
				fmt.Fprintf(&b, "    %d. %s\n", i+1, step)
			}
		}
		if c.Expected != "" {
			fmt.Fprintf(&b, "  - Expected: %s\n", c.Expected)
		}
		if len(c.Tags) > 0 {
			fmt.Fprintf(&b, "  - Tags: %s\n", strings.Join(c.Tags, ", "))
		}
		if len(c.Links) > 0 {
			fmt.Fprintf(&b, "  - Links: %s\n", strings.Join(c.Links, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
