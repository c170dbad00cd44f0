package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// DefaultSubject is the NATS subject notifications are published on when no
// subject is configured.
const DefaultSubject = "vanir.notifications"

// Event is the wire envelope published to NATS. The ID lets the consumer
// deduplicate redeliveries.
type Event struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	Notification Notification `json:"notification"`
}

// NATSPublisher publishes notifications to a NATS subject instead of
// delivering them in-process. A separate consumer binary drains the subject
// and performs SMTP delivery, keeping slow mail servers off the request
// path.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to the NATS server at url. An empty subject
// falls back to DefaultSubject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Notify implements Sink by publishing the notification as a JSON event.
func (p *NATSPublisher) Notify(_ context.Context, n Notification) error {
	event := Event{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Notification: n,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	return nil
}

// Close flushes pending publishes and drops the connection.
func (p *NATSPublisher) Close() error {
	if err := p.conn.Flush(); err != nil {
		p.conn.Close()
		return err
	}
	p.conn.Close()
	return nil
}
