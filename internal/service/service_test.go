package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/dukerupert/vanir/internal/notify"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

// sinkRecorder captures notifications instead of delivering them.
type sinkRecorder struct {
	sent []notify.Notification
	err  error
}

func (r *sinkRecorder) Notify(_ context.Context, n notify.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

func newTestMetrics() *telemetry.BusinessMetrics {
	return telemetry.NewBusinessMetrics(prometheus.NewRegistry(), "test")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
