package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/vanir/internal"
	"github.com/dukerupert/vanir/internal/email"
	"github.com/dukerupert/vanir/internal/notify"
	"github.com/nats-io/nats.go"
)

// The notifier drains the notification subject and delivers each event over
// SMTP. Running it separately keeps mail server latency and outages off the
// order path; messages published while the notifier is down wait in NATS.
func run() error {
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	if cfg.NATS.URL == "" {
		return fmt.Errorf("NATS_URL must be set for the notifier")
	}
	if cfg.Email.Host == "" {
		return fmt.Errorf("SMTP_HOST must be set for the notifier")
	}

	sender := email.NewSMTPSender(&email.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     int(cfg.Email.Port),
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		FromName: cfg.Email.FromName,
	})
	mailer := email.NewService(sender, cfg.Email.From, cfg.Email.FromName)

	conn, err := nats.Connect(cfg.NATS.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer conn.Close()

	subject := cfg.NATS.Subject
	if subject == "" {
		subject = notify.DefaultSubject
	}

	// Queue subscription so multiple notifier instances share the load
	// without duplicating deliveries.
	sub, err := conn.QueueSubscribe(subject, "notifier", func(msg *nats.Msg) {
		var event notify.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.Error("failed to decode notification event", "error", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := mailer.Notify(ctx, event.Notification); err != nil {
			logger.Error("failed to deliver notification",
				"event_id", event.ID,
				"recipient", event.Notification.Recipient,
				"error", err)
			return
		}
		logger.Info("notification delivered",
			"event_id", event.ID,
			"recipient", event.Notification.Recipient,
			"subject", event.Notification.Subject)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	defer sub.Unsubscribe()

	logger.Info("Notifier started", "subject", subject)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", "signal", sig.String())

	if err := sub.Drain(); err != nil {
		return fmt.Errorf("failed to drain subscription: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
