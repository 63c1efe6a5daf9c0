package shared

import "time"

// FeedbackLevel controls styling and auto-clear duration.
type FeedbackLevel int

const (
	FeedbackInfo    FeedbackLevel = iota // transient, auto-clears 4s
	FeedbackSuccess                      // green styled, auto-clears 4s
	FeedbackWarning                      // yellow, auto-clears 8s
	FeedbackError                        // red, auto-clears 12s
)

// FeedbackTTL returns the auto-clear duration for a given level.
func FeedbackTTL(level FeedbackLevel) time.Duration {
	switch level {
	case FeedbackInfo, FeedbackSuccess:
		return 4 * time.Second
	case FeedbackWarning:
		return 8 * time.Second
	default:
		return 12 * time.Second
	}
}

// Feedback is a user-facing status message shown in the status bar.
type Feedback struct {
	Level     FeedbackLevel
	Message   string
	Timestamp time.Time
}

// FeedbackMsg delivers a feedback message to the app.
type FeedbackMsg struct {
	Feedback Feedback
}

// ClearFeedbackMsg clears the current feedback once its TTL expires.
// Seq guards against an old timer clearing a newer message.
type ClearFeedbackMsg struct {
	Seq int
}
