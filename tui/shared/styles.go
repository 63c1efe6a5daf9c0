package shared

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/quinn/checkrun/config"
	"github.com/quinn/checkrun/session"
)

var (
	TitleStyle   lipgloss.Style
	MetaStyle    lipgloss.Style
	SectionStyle lipgloss.Style
	DimStyle     lipgloss.Style
	CursorStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style

	StatusBarStyle lipgloss.Style

	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpOverlayStyle lipgloss.Style

	VerdictStyles map[session.Verdict]lipgloss.Style
	BarStyles     map[session.Verdict]lipgloss.Style

	FeedbackStyles map[FeedbackLevel]lipgloss.Style

	DoneIndicator    string
	PendingIndicator string
)

// InitStyles configures the style table from a resolved theme.
func InitStyles(theme config.ThemeConfig) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG))

	MetaStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	SectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	DimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))

	CursorStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.CursorBG))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	StatusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(theme.StatusBarBG)).
		Foreground(lipgloss.Color(theme.StatusBarFG))

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(1, 2)

	verdictColor := map[session.Verdict]string{
		session.VerdictPass:    theme.Pass,
		session.VerdictFail:    theme.Fail,
		session.VerdictBlocked: theme.Blocked,
		session.VerdictSkipped: theme.Skipped,
		session.VerdictNotSet:  theme.NotSet,
	}
	VerdictStyles = make(map[session.Verdict]lipgloss.Style, len(verdictColor))
	BarStyles = make(map[session.Verdict]lipgloss.Style, len(verdictColor))
	for v, c := range verdictColor {
		VerdictStyles[v] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		BarStyles[v] = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	FeedbackStyles = map[FeedbackLevel]lipgloss.Style{
		FeedbackInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.StatusBarFG)).
			Background(lipgloss.Color(theme.StatusBarBG)),
		FeedbackSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.FeedbackSuccessFG)).
			Background(lipgloss.Color(theme.FeedbackSuccessBG)),
		FeedbackWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.FeedbackWarningFG)).
			Background(lipgloss.Color(theme.FeedbackWarningBG)),
		FeedbackError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.FeedbackErrorFG)).
			Background(lipgloss.Color(theme.FeedbackErrorBG)),
	}

	DoneIndicator = "[x]"
	PendingIndicator = "[ ]"
}
