// Package issue composes defect-report drafts from case state. It only
// produces text and a hand-off URL; opening the tracker is the
// caller's concern.
package issue

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/session"
)

// Draft is a composed defect report.
type Draft struct {
	Title string
	Body  string
}

// Build composes a draft from one case's current state plus the
// session environment. Sections with no content are omitted entirely.
func Build(cs *session.CaseState, def checklist.Case, meta session.Meta, titlePrefix string) Draft {
	title := def.Title
	if title == "" {
		title = "Bug report"
	}
	if titlePrefix == "" {
		titlePrefix = "Bug"
	}

	verdict := session.VerdictNotSet
	var notes, actual string
	var attachments []session.Attachment
	if cs != nil {
		if cs.Verdict.Valid() {
			verdict = cs.Verdict
		}
		notes = cs.Notes
		actual = cs.ActualResult
		attachments = cs.Attachments
	}

	env := meta.Environment
	sections := []string{
		"### Summary",
		"- Case: " + title,
		"- Status: " + string(verdict),
	}
	if qa := strings.TrimSpace(meta.Collector); qa != "" {
		sections = append(sections, "- QA: "+qa)
	}
	sections = append(sections,
		"",
		"### Environment",
		"- Platform: "+env.Platform,
		"- OS version: "+env.OSVersion,
		"- App version: "+env.AppVersion,
		"- Revision: "+env.Revision,
		"- Channel: "+strings.Join(env.Channels, ", "),
		"",
	)

	if len(def.Steps) > 0 {
		var b strings.Builder
		b.WriteString("### Steps\n")
		for i, step := range def.Steps {
			fmt.Fprintf(&b, "%d. %s", i+1, step)
			if i < len(def.Steps)-1 {
				b.WriteString("\n")
			}
		}
		sections = append(sections, b.String())
	}
	if notes != "" {
		sections = append(sections, "### Notes\n"+notes)
	}
	if actual != "" {
		sections = append(sections, "### Actual result\n"+actual)
	}
	if len(attachments) > 0 {
		var b strings.Builder
		b.WriteString("### Attachments\n")
		for i, a := range attachments {
			name := a.Name
			if name == "" {
				name = fmt.Sprintf("screenshot-%d", i+1)
			}
			b.WriteString(name + ": " + a.Payload)
			if i < len(attachments)-1 {
				b.WriteString("\n")
			}
		}
		sections = append(sections, b.String())
	}

	var kept []string
	for _, s := range sections {
		if s != "" {
			kept = append(kept, s)
		}
	}

	return Draft{
		Title: titlePrefix + ": " + title,
		Body:  strings.Join(kept, "\n"),
	}
}

// TrackerURL composes the new-issue URL for the external tracker. An
// empty repo yields an empty URL.
func TrackerURL(repoURL string, d Draft) string {
	repo := strings.TrimRight(strings.TrimSpace(repoURL), "/")
	if repo == "" {
		return ""
	}
	return repo + "/issues/new?title=" + url.QueryEscape(d.Title) + "&body=" + url.QueryEscape(d.Body)
}
