package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samims/notification-api/internal/config"
	"github.com/samims/notification-api/internal/events"
	"github.com/samims/notification-api/internal/handler"
	"github.com/samims/notification-api/internal/logger"
	"github.com/samims/notification-api/internal/metrics"
	"github.com/samims/notification-api/internal/router"
	"github.com/samims/notification-api/internal/service"
	"github.com/samims/notification-api/internal/storage"
	"github.com/samims/notification-api/pkg/tracing"
)

const (
	serviceName     = "notification-api"
	shutdownTimeout = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	l := logger.NewJSONLogger(cfg.App.LogLevel)
	slog.SetDefault(l)

	if err := run(cfg, l); err != nil {
		l.Error("Service stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	l.Info("Server exited cleanly")
}

func run(cfg *config.Config, l *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	// ---- OpenTelemetry Tracing Setup ----
	name := cfg.Tracing.ServiceName
	if name == "" {
		name = serviceName
	}
	tracerShutdown, err := tracing.SetupTracing(ctx,
		tracing.NewConfig(name, cfg.Tracing.Endpoint, cfg.Tracing.Environment, cfg.Tracing.SampleRatio), l)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			l.Error("Tracer shutdown failed", slog.Any("error", err))
		}
	}()

	db, closeDB, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeDB()

	if err := storage.Migrate(ctx, db, l); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	publisher, err := newPublisher(cfg.Kafka, l)
	if err != nil {
		return err
	}

	// Initialize layers
	userStorage := storage.NewUserStorage(db)
	notificationStorage := storage.NewNotificationStorage(db)

	tokenSvc := service.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	authSvc := service.NewAuthService(userStorage, l, tokenSvc)
	notificationSvc := service.NewNotificationService(notificationStorage, userStorage, publisher,
		service.LedgerOptions{AuditRepeatViews: cfg.Ledger.AuditRepeatViews}, l)
	healthSvc := service.NewHealthService(userStorage, l)

	r := router.NewRouter(router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, l),
		Notifications: handler.NewNotificationHandler(notificationSvc, l),
		Health:        handler.NewHealthHandler(healthSvc, l),
	}, tokenSvc, router.Options{
		ServiceName:    name,
		CORSOrigins:    cfg.App.CORSOrigins,
		RequestTimeout: cfg.App.RequestTimeout,
	}, l)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The delivery handlers outlive the signal so in-flight events drain
	// once the server has stopped.
	publisher.Start(context.WithoutCancel(ctx))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info("Server started", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		publisher.Close(shutdownCtx)
		if err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newPublisher returns the Kafka publisher when brokers are configured and
// a no-op publisher otherwise.
func newPublisher(cfg config.KafkaConfig, l *slog.Logger) (events.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		l.Info("KAFKA_BROKERS not set, ledger events will not be published")
		return events.NewNoopPublisher(l), nil
	}

	producer, err := events.NewSaramaProducer(cfg)
	if err != nil {
		return nil, err
	}
	l.Info("Publishing ledger events", slog.Any("brokers", cfg.Brokers), slog.String("topic", cfg.Topic))
	return events.NewKafkaPublisher(producer, cfg.Topic, l, tracing.NewTracer(tracing.GetTracer("ledger-publisher"))), nil
}
