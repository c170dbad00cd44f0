package email

import (
	"context"
	"errors"
	"testing"

	"github.com/dukerupert/vanir/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSender captures sent emails for assertions.
type mockSender struct {
	sent []*Email
	err  error
}

func (m *mockSender) Send(_ context.Context, email *Email) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, email)
	return "mock-message-id", nil
}

func TestServiceNotify(t *testing.T) {
	sender := &mockSender{}
	svc := NewService(sender, "noreply@vanir.local", "Vanir Marketplace")

	err := svc.Notify(context.Background(), notify.Notification{
		Recipient: "shop@example.com",
		Subject:   "New order 42",
		Body:      "You have a new order 42.",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	sent := sender.sent[0]
	assert.Equal(t, []string{"shop@example.com"}, sent.To)
	assert.Equal(t, "Vanir Marketplace <noreply@vanir.local>", sent.From)
	assert.Equal(t, "New order 42", sent.Subject)
	assert.Equal(t, "You have a new order 42.", sent.TextBody)
}

func TestServiceNotifySenderFailure(t *testing.T) {
	sender := &mockSender{err: errors.New("connection refused")}
	svc := NewService(sender, "noreply@vanir.local", "Vanir Marketplace")

	err := svc.Notify(context.Background(), notify.Notification{
		Recipient: "shop@example.com",
		Subject:   "New order 42",
	})
	assert.Error(t, err)
}
