package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/quinn/checkrun/checklist"
	"github.com/quinn/checkrun/config"
	"github.com/quinn/checkrun/session"
)

// Builder renders session artifacts. The same snapshot and render plan
// feed both the working (editable) and final (locked) documents.
type Builder struct {
	Plan             *checklist.Plan
	Session          *session.Session
	PlatformOptions  []string
	OSOptions        []string
	ChannelOptions   []string
	Users            []string
	UserPlaceholder  string
	IssueRepo        string
	IssueTitlePrefix string
	Templates        []config.EnvTemplate
}

// Snapshot projects the live session into a report.
func (b Builder) Snapshot() Report {
	return Snapshot(b.Session, b.Plan)
}

// BaseName is the artifact name stem for this run.
func (b Builder) BaseName() string {
	return checklist.BaseFileName(b.Plan.RunName, b.Session.Meta.Environment.AppVersion, b.Session.RunID)
}

// Working renders the re-editable document: every current value baked
// into the markup, behavior scripts retained, report embedded inline.
// Returns content and a suggested file name.
func (b Builder) Working() ([]byte, string, error) {
	out, err := b.render(false)
	if err != nil {
		return nil, "", err
	}
	return out, b.BaseName() + "-working.html", nil
}

// Final renders the locked document: all inputs disabled, destructive
// controls removed, scripts stripped down to the static copy handler,
// every copy payload precomputed. One-way; the live session is
// untouched.
func (b Builder) Final() ([]byte, string, error) {
	out, err := b.render(true)
	if err != nil {
		return nil, "", err
	}
	return out, b.BaseName() + "-final.html", nil
}

// ReportArtifact renders the standalone report JSON.
func (b Builder) ReportArtifact() ([]byte, string, error) {
	data, err := b.Snapshot().JSON()
	if err != nil {
		return nil, "", err
	}
	return data, checklist.Slugify(b.Plan.Title) + "-report.json", nil
}

// LogArtifact renders just the activity log as JSON.
func (b Builder) LogArtifact() ([]byte, string, error) {
	data, err := b.Snapshot().LogsJSON()
	if err != nil {
		return nil, "", err
	}
	return data, checklist.Slugify(b.Plan.Title) + "-activity-log.json", nil
}

func (b Builder) render(final bool) ([]byte, error) {
	report := b.Snapshot()
	plan, err := b.buildPlan(report, final)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, plan); err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return buf.Bytes(), nil
}

// docPlan is the immutable widget-descriptor tree both renderers
// consume; Final is the only thing that differs between them.
type docPlan struct {
	Final           bool
	Title           string
	RunID           string
	SessionKey      string
	Description     string
	Collector       string
	Users           []string
	UserPlaceholder string
	Env             session.Environment
	EnvText         string
	PlatformOptions []string
	OSOptions       []string
	Channels        []channelPlan
	Templates       []string
	TemplatesJSON   string
	Cases           []casePlan
	SummaryRows     []summaryRow
	Logs            []string
	IssueRepo       string
	IssueTitle      string
	ReportJSON      template.JS
	ReportJSONText  string
	Script          template.JS
}

type channelPlan struct {
	Name    string
	Checked bool
}

// templatePayload is the per-template value set baked into the working
// document so its template picker can fill the environment fields.
type templatePayload struct {
	Name       string `json:"name"`
	Platform   string `json:"platform"`
	OSVersion  string `json:"os_version"`
	AppVersion string `json:"app_version"`
	Revision   string `json:"revision"`
}

type summaryRow struct {
	Class   string
	Label   string
	Count   int
	Percent float64
}

type statusOption struct {
	Value    session.Verdict
	Label    string
	Selected bool
}

// CopyPayloads are the precomputed copy-affordance texts for one case.
// The final document bakes them into attributes; the TUI copies them
// directly.
type CopyPayloads struct {
	Steps       string
	Notes       string
	Actual      string
	Bug         string
	Attachments string
	Summary     string
}

// PayloadsFor derives the copy payloads from a snapshot case and its
// definition's steps.
func PayloadsFor(rc ReportCase, steps []string) CopyPayloads {
	var numbered []string
	for i, s := range steps {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, s))
	}
	var atts []string
	for i, a := range rc.Attachments {
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("screenshot-%d", i+1)
		}
		atts = append(atts, name+": "+a.Payload)
	}

	stepsText := strings.Join(numbered, "\n")
	attsText := strings.Join(atts, "\n")

	summary := []string{"Title: " + rc.Title, "Status: " + string(rc.Status)}
	if rc.BugLink != "" {
		summary = append(summary, "Bug: "+rc.BugLink)
	}
	if stepsText != "" {
		summary = append(summary, "Steps:\n"+stepsText)
	}
	if rc.Notes != "" {
		summary = append(summary, "Notes:\n"+rc.Notes)
	}
	if rc.ActualResult != "" {
		summary = append(summary, "Actual result:\n"+rc.ActualResult)
	}
	if attsText != "" {
		summary = append(summary, "Attachments:\n"+attsText)
	}

	return CopyPayloads{
		Steps:       stepsText,
		Notes:       rc.Notes,
		Actual:      rc.ActualResult,
		Bug:         rc.BugLink,
		Attachments: attsText,
		Summary:     strings.Join(summary, "\n\n"),
	}
}

// EnvText renders the environment block used by the environment copy
// affordance and both export modes.
func EnvText(env session.Environment) string {
	return strings.Join([]string{
		"Platform: " + env.Platform,
		"OS version: " + env.OSVersion,
		"App version: " + env.AppVersion,
		"Revision: " + env.Revision,
		"Channel: " + strings.Join(env.Channels, ", "),
	}, "\n")
}

type casePlan struct {
	Key           string
	Title         string
	Header        string
	Steps         []string
	Expected      string
	Tags          string
	Links         []string
	Checked       bool
	Verdict       session.Verdict
	StatusOptions []statusOption
	Notes         string
	ActualResult  string
	BugLink       string
	Attachments   []session.Attachment
	Copy          CopyPayloads
}

func (b Builder) buildPlan(report Report, final bool) (docPlan, error) {
	reportJSON, err := report.JSON()
	if err != nil {
		return docPlan{}, err
	}

	env := report.Environment
	envText := EnvText(env)

	p := docPlan{
		Final:           final,
		Title:           report.Title,
		RunID:           report.RunID,
		SessionKey:      b.Session.Key(),
		Description:     strings.TrimSpace(b.Plan.DescriptionText),
		Collector:       report.Collector,
		Users:           b.Users,
		UserPlaceholder: b.UserPlaceholder,
		Env:             env,
		EnvText:         envText,
		PlatformOptions: b.PlatformOptions,
		OSOptions:       b.OSOptions,
		IssueRepo:       b.IssueRepo,
		IssueTitle:      b.IssueTitlePrefix + ": ",
		ReportJSON:      template.JS(reportJSON),
		ReportJSONText:  string(reportJSON),
		Script:          template.JS(finalScript),
	}
	if !final {
		p.Script = template.JS(workingScript)
	}

	for _, ch := range b.ChannelOptions {
		p.Channels = append(p.Channels, channelPlan{Name: ch, Checked: env.HasChannel(ch)})
	}
	if len(b.Templates) > 0 {
		payload := make([]templatePayload, 0, len(b.Templates))
		for _, t := range b.Templates {
			p.Templates = append(p.Templates, t.Name)
			payload = append(payload, templatePayload{
				Name:       t.Name,
				Platform:   t.Platform,
				OSVersion:  t.OSVersion,
				AppVersion: t.AppVersion,
				Revision:   t.Build,
			})
		}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return docPlan{}, err
		}
		p.TemplatesJSON = string(encoded)
	}

	defs := make(map[string]checklist.Case, len(b.Plan.Cases))
	for i, def := range b.Plan.Cases {
		defs[def.Key(i)] = def
	}

	for _, rc := range report.Cases {
		def := defs[rc.Key]
		cp := casePlan{
			Key:          rc.Key,
			Title:        rc.Title,
			Header:       rc.Title,
			Steps:        def.Steps,
			Expected:     def.Expected,
			Tags:         strings.Join(def.Tags, ", "),
			Links:        def.Links,
			Checked:      rc.Checked,
			Verdict:      rc.Status,
			Notes:        rc.Notes,
			ActualResult: rc.ActualResult,
			BugLink:      rc.BugLink,
			Attachments:  rc.Attachments,
		}
		if def.ID != "" {
			cp.Header = fmt.Sprintf("%s (%s)", rc.Title, def.ID)
		}
		for _, v := range session.VerdictOrder {
			cp.StatusOptions = append(cp.StatusOptions, statusOption{
				Value:    v,
				Label:    v.Label(),
				Selected: v == rc.Status,
			})
		}
		cp.Copy = PayloadsFor(rc, def.Steps)
		p.Cases = append(p.Cases, cp)
	}

	keys := make([]string, 0, len(report.Cases))
	for _, rc := range report.Cases {
		keys = append(keys, rc.Key)
	}
	sum := session.Summarize(b.Session, keys)
	total := sum.Total()
	if total == 0 {
		total = 1
	}
	for _, v := range session.VerdictOrder {
		p.SummaryRows = append(p.SummaryRows, summaryRow{
			Class:   string(v),
			Label:   v.Label(),
			Count:   sum[v],
			Percent: float64(sum[v]) / float64(total) * 100,
		})
	}

	for _, e := range report.Logs {
		p.Logs = append(p.Logs, e.String())
	}

	return p, nil
}

