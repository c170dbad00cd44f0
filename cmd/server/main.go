package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/vanir/internal"
	"github.com/dukerupert/vanir/internal/email"
	"github.com/dukerupert/vanir/internal/handler"
	"github.com/dukerupert/vanir/internal/middleware"
	"github.com/dukerupert/vanir/internal/notify"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/dukerupert/vanir/internal/service"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	store := repository.NewStore(pool)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewMetrics(registry, "vanir")
	businessMetrics := telemetry.NewBusinessMetrics(registry, "vanir")

	// Notification sink: NATS when configured, direct SMTP otherwise,
	// log-only as the last resort.
	var sink notify.Sink
	switch {
	case cfg.NATS.URL != "":
		publisher, err := notify.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			return fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		defer publisher.Close()
		sink = publisher
		logger.Info("Notifications publishing to NATS", "subject", cfg.NATS.Subject)
	case cfg.Email.Host != "":
		sender := email.NewSMTPSender(&email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     int(cfg.Email.Port),
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
			FromName: cfg.Email.FromName,
		})
		sink = email.NewService(sender, cfg.Email.From, cfg.Email.FromName)
		logger.Info("Notifications delivering over SMTP", "host", cfg.Email.Host)
	default:
		sink = &notify.LogSink{Logger: logger}
		logger.Warn("No notification transport configured, logging notifications only")
	}

	// Initialize services
	basketService := service.NewBasketService(store, businessMetrics)
	checkoutService := service.NewCheckoutService(store, sink, businessMetrics, logger)
	orderService := service.NewOrderService(store, sink, businessMetrics, logger)
	partnerService := service.NewPartnerService(store, sink, businessMetrics, logger)
	contactService := service.NewContactService(store)
	productService := service.NewProductService(store)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(httpMetrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handler.RegisterRoutes(e, handler.Handlers{
		Basket:  handler.NewBasketHandler(basketService, logger),
		Order:   handler.NewOrderHandler(checkoutService, orderService, logger),
		Partner: handler.NewPartnerHandler(partnerService, logger),
		Contact: handler.NewContactHandler(contactService, logger),
		Product: handler.NewProductHandler(productService, logger),
	}, middleware.TokenAuth(store), middleware.RequirePartner())

	// Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("Starting server", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
