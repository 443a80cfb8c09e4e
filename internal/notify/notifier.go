package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier delivers fire-and-forget editorial notifications. Delivery
// failures are the sink's problem; they never roll back a transition.
type Notifier interface {
	Notify(ctx context.Context, recipientID, message string)
}

// LogNotifier writes notifications to the structured log. Stands in for a
// real delivery channel (email, in-app) behind the same interface.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

// Notify logs the notification
func (n *LogNotifier) Notify(ctx context.Context, recipientID, message string) {
	n.log.Info().
		Str("recipient", recipientID).
		Str("message", message).
		Msg("Notification dispatched")
}
