package session

import (
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/quinn/checkrun/config"
)

// Diagnostics is the structured result of parsing a pasted diagnostic
// dump (e.g. the output of a browser's version page). Empty fields
// mean "not found".
type Diagnostics struct {
	AppVersion    string
	EngineVersion string
	OSVersion     string
	Channel       string
	Revision      string
}

// Empty reports whether nothing was recovered from the input.
func (d Diagnostics) Empty() bool {
	return d == Diagnostics{}
}

var channelPattern = `(nightly|beta|stable)`

// ParseDiagnostics extracts environment fields from a raw text dump.
// Pure and total: malformed or empty input yields an empty result,
// never an error.
func ParseDiagnostics(raw string, tokens config.ParserConfig) Diagnostics {
	var d Diagnostics

	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
		if l != "" {
			lines = append(lines, l)
		}
	}

	firstWith := func(prefix string) string {
		if prefix == "" {
			return ""
		}
		for _, l := range lines {
			if strings.HasPrefix(l, prefix) {
				return l
			}
		}
		return ""
	}

	if productLine := firstWith(tokens.ProductToken); productLine != "" {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(tokens.ProductToken) + `\s+(\S+).*?` + channelPattern)
		if m := re.FindStringSubmatch(productLine); m != nil {
			d.AppVersion = m[1]
			d.Channel = strings.ToLower(m[2])
		} else {
			d.AppVersion = fallbackVersionToken(productLine)
		}
		engineRe := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(tokens.EngineToken) + `:\s*(\S+)`)
		if m := engineRe.FindStringSubmatch(productLine); m != nil {
			d.EngineVersion = m[1]
		}
	}

	if revLine := firstWith(tokens.RevisionToken); revLine != "" {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(tokens.RevisionToken) + `\s+(.*)$`)
		if m := re.FindStringSubmatch(revLine); m != nil {
			d.Revision = m[1]
		}
	}

	if osLine := firstWith(tokens.OSToken); osLine != "" {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(tokens.OSToken) + `\s+(.*)$`)
		if m := re.FindStringSubmatch(osLine); m != nil {
			d.OSVersion = m[1]
		}
	}

	return d
}

// fallbackVersionToken recovers an application version from a product
// line with no channel keyword: prefer the first whitespace-delimited
// token that parses as a semantic version, else the second token.
func fallbackVersionToken(line string) string {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return ""
	}
	for _, p := range parts[1:] {
		if _, err := goversion.NewVersion(p); err == nil {
			return p
		}
	}
	return parts[1]
}
