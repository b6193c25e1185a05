package events

import (
	"context"
	"log/slog"

	"github.com/samims/notification-api/internal/model"
)

// Publisher announces committed ledger transitions to other systems.
// Publishing is best effort: callers log failures and move on.
type Publisher interface {
	Start(ctx context.Context)
	Publish(ctx context.Context, evt model.LedgerEvent) error
	Close(ctx context.Context)
}

type noopPublisher struct {
	log *slog.Logger
}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher(log *slog.Logger) Publisher {
	return &noopPublisher{log: log.With("layer", "events", "component", "noopPublisher")}
}

func (p *noopPublisher) Start(context.Context) {}

func (p *noopPublisher) Publish(_ context.Context, evt model.LedgerEvent) error {
	p.log.Debug("Ledger event dropped, no broker configured",
		slog.Int64("notification_id", evt.NotificationID),
		slog.String("event", string(evt.Event)))
	return nil
}

func (p *noopPublisher) Close(context.Context) {}
