package notify

import (
	"context"
	"log/slog"
)

// Notification is one message to a single recipient. Body is plain text;
// composition happens in the service layer so every delivery channel sends
// the same content.
type Notification struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Sink delivers notifications. Implementations must be safe for concurrent
// use.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
}

// LogSink logs notifications instead of delivering them. Used in dev when
// neither SMTP nor NATS is configured.
type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) Notify(_ context.Context, n Notification) error {
	s.Logger.Info("notification",
		slog.String("recipient", n.Recipient),
		slog.String("subject", n.Subject))
	return nil
}
