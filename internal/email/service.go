package email

import (
	"context"
	"fmt"

	"github.com/dukerupert/vanir/internal/notify"
)

// Service adapts a Sender to the notification sink. Notification subjects
// and bodies arrive fully composed; the service only wraps them in an email
// envelope.
type Service struct {
	sender      Sender
	fromAddress string
	fromName    string
}

// NewService creates a new email service.
func NewService(sender Sender, fromAddress, fromName string) *Service {
	return &Service{
		sender:      sender,
		fromAddress: fromAddress,
		fromName:    fromName,
	}
}

// Notify implements notify.Sink by sending the notification as a plain text
// email.
func (s *Service) Notify(ctx context.Context, n notify.Notification) error {
	email := &Email{
		To:       []string{n.Recipient},
		From:     fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress),
		Subject:  n.Subject,
		TextBody: n.Body,
	}

	if _, err := s.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}
