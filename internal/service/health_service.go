package service

import (
	"context"
	"log/slog"
	"time"

	appErr "github.com/samims/notification-api/internal/errors"
)

const readinessTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService interface {
	Liveness(ctx context.Context) error
	Readiness(ctx context.Context) error
}

type healthService struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthService(db Pinger, logger *slog.Logger) HealthService {
	return &healthService{
		db:     db,
		logger: logger.With("layer", "service", "component", "healthService"),
	}
}

// Liveness reports only that the process is serving.
func (s *healthService) Liveness(_ context.Context) error {
	return nil
}

func (s *healthService) Readiness(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("Database ping failed", slog.Any("error", err))
		return appErr.NewInternal("database unavailable: %v", err)
	}
	return nil
}
