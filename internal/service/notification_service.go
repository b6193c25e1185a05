package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/events"
	"github.com/samims/notification-api/internal/metrics"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/storage"
	"github.com/samims/notification-api/pkg/tracing"
)

// NotificationService owns the notification lifecycle. Every state
// transition is committed together with its history row.
type NotificationService interface {
	Create(ctx context.Context, message string, actingUserID int64) (*model.Notification, error)
	List(ctx context.Context, filter model.NotificationFilter, page model.PageRequest) (*model.Page[model.Notification], error)
	// ListForUser lists notifications addressed to any customer or provider
	// identity of userID. A user without identities gets an empty page.
	ListForUser(ctx context.Context, userID int64, viewed *bool, from, to *time.Time, page model.PageRequest) (*model.Page[model.Notification], error)
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	MarkAsViewed(ctx context.Context, id int64, actingUserID int64) (*model.Notification, error)
	Delete(ctx context.Context, id int64, actingUserID int64) error
	History(ctx context.Context, notificationID int64, page model.PageRequest) (*model.Page[model.NotificationHistory], error)
}

type LedgerOptions struct {
	// AuditRepeatViews records a VIEWED row for every view instead of only
	// the first.
	AuditRepeatViews bool
	Now              func() time.Time
}

type notificationService struct {
	store     storage.NotificationStorage
	users     storage.UserStorage
	publisher events.Publisher
	opts      LedgerOptions
	logger    *slog.Logger
	tracer    *tracing.Tracer
}

func NewNotificationService(
	store storage.NotificationStorage,
	users storage.UserStorage,
	publisher events.Publisher,
	opts LedgerOptions,
	logger *slog.Logger,
) NotificationService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &notificationService{
		store:     store,
		users:     users,
		publisher: publisher,
		opts:      opts,
		logger:    logger.With("layer", "service", "component", "notificationService"),
		tracer:    tracing.NewTracer(tracing.GetTracer("notification-service")),
	}
}

func (s *notificationService) now() time.Time {
	return model.Timestamp(s.opts.Now())
}

func (s *notificationService) Create(ctx context.Context, message string, actingUserID int64) (*model.Notification, error) {
	ctx, span := s.tracer.StartInternalSpan(ctx, "NotificationService.Create",
		attribute.Int64(tracing.AttrUserID, actingUserID))
	defer span.End()

	s.logger.Info("Create called", slog.Int64("user_id", actingUserID))
	if strings.TrimSpace(message) == "" {
		return nil, appErr.NewValidation("message must not be empty")
	}

	customerID, providerID, err := s.audienceOf(ctx, actingUserID)
	if err != nil {
		return nil, s.fail(span, "Create", err)
	}

	now := s.now()
	n := &model.Notification{
		Message:    message,
		CustomerID: customerID,
		ProviderID: providerID,
	}
	n.OnCreate(&actingUserID, now)

	err = s.store.WithTx(ctx, func(tx storage.NotificationStorage) error {
		if err := tx.Create(ctx, n); err != nil {
			return err
		}
		return tx.AppendHistory(ctx, s.historyRow(n.ID, model.EventCreated, actingUserID, now))
	})
	if err != nil {
		return nil, s.fail(span, "Create", err)
	}

	s.committed(ctx, n, model.EventCreated, actingUserID, now)
	s.logger.Info("Create succeeded", slog.Int64("notification_id", n.ID))
	return n, nil
}

// audienceOf resolves every identity the user holds. Either id may be nil.
func (s *notificationService) audienceOf(ctx context.Context, userID int64) (customerID, providerID *int64, err error) {
	customer, err := s.users.FindCustomerByUserID(ctx, userID)
	switch {
	case err == nil:
		customerID = &customer.ID
	case !appErr.IsNotFound(err):
		return nil, nil, err
	}

	provider, err := s.users.FindProviderByUserID(ctx, userID)
	switch {
	case err == nil:
		providerID = &provider.ID
	case !appErr.IsNotFound(err):
		return nil, nil, err
	}
	return customerID, providerID, nil
}

func (s *notificationService) List(ctx context.Context, filter model.NotificationFilter, page model.PageRequest) (*model.Page[model.Notification], error) {
	ctx, span := s.tracer.StartInternalSpan(ctx, "NotificationService.List")
	defer span.End()

	page = page.Normalize()
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, appErr.NewValidation("from must not be after to")
	}
	from := time.Unix(0, 0).UTC()
	if filter.From != nil {
		from = filter.From.UTC()
	}
	to := s.now()
	if filter.To != nil {
		to = filter.To.UTC()
	}
	// A from in the future against the default to matches nothing.
	if from.After(to) {
		return model.NewPage[model.Notification](nil, page, 0), nil
	}
	filter.From, filter.To = &from, &to

	items, total, err := s.store.List(ctx, filter, page)
	if err != nil {
		return nil, s.fail(span, "List", err)
	}
	s.logger.Debug("List succeeded", slog.Int("count", len(items)), slog.Int64("total", total))
	return model.NewPage(items, page, total), nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID int64, viewed *bool, from, to *time.Time, page model.PageRequest) (*model.Page[model.Notification], error) {
	customerID, providerID, err := s.audienceOf(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to resolve audience", slog.Int64("user_id", userID), slog.Any("error", err))
		return nil, appErr.NewInternal("failed to resolve audience: %v", err)
	}
	if customerID == nil && providerID == nil {
		if from != nil && to != nil && from.After(*to) {
			return nil, appErr.NewValidation("from must not be after to")
		}
		return model.NewPage[model.Notification](nil, page.Normalize(), 0), nil
	}

	return s.List(ctx, model.NotificationFilter{
		CustomerID:       customerID,
		ProviderID:       providerID,
		MatchAnyAudience: true,
		Viewed:           viewed,
		From:             from,
		To:               to,
	}, page)
}

func (s *notificationService) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	ctx, span := s.tracer.StartInternalSpan(ctx, "NotificationService.GetByID",
		attribute.Int64(tracing.AttrNotificationID, id))
	defer span.End()

	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(span, "GetByID", err)
	}
	return n, nil
}

func (s *notificationService) MarkAsViewed(ctx context.Context, id int64, actingUserID int64) (*model.Notification, error) {
	ctx, span := s.tracer.StartInternalSpan(ctx, "NotificationService.MarkAsViewed",
		attribute.Int64(tracing.AttrNotificationID, id),
		attribute.Int64(tracing.AttrUserID, actingUserID))
	defer span.End()

	s.logger.Info("MarkAsViewed called", slog.Int64("notification_id", id), slog.Int64("user_id", actingUserID))
	now := s.now()

	var (
		result   *model.Notification
		recorded bool
	)
	err := s.store.WithTx(ctx, func(tx storage.NotificationStorage) error {
		n, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if n.Deleted {
			return appErr.NewGone("notification %d was deleted", id)
		}

		changed, err := tx.MarkViewed(ctx, id, &actingUserID, now)
		if err != nil {
			return err
		}
		if changed || s.opts.AuditRepeatViews {
			if err := tx.AppendHistory(ctx, s.historyRow(id, model.EventViewed, actingUserID, now)); err != nil {
				return err
			}
			recorded = true
		}

		result, err = tx.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(span, "MarkAsViewed", err)
	}

	if recorded {
		s.committed(ctx, result, model.EventViewed, actingUserID, now)
	}
	s.logger.Info("MarkAsViewed succeeded", slog.Int64("notification_id", id), slog.Bool("recorded", recorded))
	return result, nil
}

func (s *notificationService) Delete(ctx context.Context, id int64, actingUserID int64) error {
	ctx, span := s.tracer.StartInternalSpan(ctx, "NotificationService.Delete",
		attribute.Int64(tracing.AttrNotificationID, id),
		attribute.Int64(tracing.AttrUserID, actingUserID))
	defer span.End()

	s.logger.Info("Delete called", slog.Int64("notification_id", id), slog.Int64("user_id", actingUserID))
	now := s.now()

	var deleted *model.Notification
	err := s.store.WithTx(ctx, func(tx storage.NotificationStorage) error {
		n, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if n.Deleted {
			return appErr.NewGone("notification %d was already deleted", id)
		}
		if err := tx.MarkDeleted(ctx, id, &actingUserID, now); err != nil {
			return err
		}
		deleted = n
		return tx.AppendHistory(ctx, s.historyRow(id, model.EventDeleted, actingUserID, now))
	})
	if err != nil {
		return s.fail(span, "Delete", err)
	}

	deleted.Deleted = true
	deleted.OnUpdate(&actingUserID, now)
	s.committed(ctx, deleted, model.EventDeleted, actingUserID, now)
	s.logger.Info("Delete succeeded", slog.Int64("notification_id", id))
	return nil
}

func (s *notificationService) History(ctx context.Context, notificationID int64, page model.PageRequest) (*model.Page[model.NotificationHistory], error) {
	ctx, span := s.tracer.StartInternalSpan(ctx, "NotificationService.History",
		attribute.Int64(tracing.AttrNotificationID, notificationID))
	defer span.End()

	page = page.Normalize()
	entries, total, err := s.store.ListHistory(ctx, notificationID, page)
	if err != nil {
		return nil, s.fail(span, "History", err)
	}
	return model.NewPage(entries, page, total), nil
}

func (s *notificationService) historyRow(id int64, event model.HistoryEvent, userID int64, at time.Time) *model.NotificationHistory {
	h := &model.NotificationHistory{
		NotificationID: id,
		Event:          event,
		EventDate:      at,
		UserID:         userID,
	}
	h.OnCreate(&userID, at)
	return h
}

// committed runs after a transition's transaction commits. Publishing is
// best effort and never undoes the transition.
func (s *notificationService) committed(ctx context.Context, n *model.Notification, event model.HistoryEvent, userID int64, at time.Time) {
	metrics.LedgerEvents.WithLabelValues(string(event)).Inc()

	evt := model.LedgerEvent{
		NotificationID: n.ID,
		Event:          event,
		UserID:         userID,
		CustomerID:     n.CustomerID,
		ProviderID:     n.ProviderID,
		OccurredAt:     at,
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Ledger event publish failed",
			slog.Int64("notification_id", n.ID),
			slog.String("event", string(event)),
			slog.Any("error", err))
	}
}

// fail passes domain errors through and hides everything else behind
// ErrInternal.
func (s *notificationService) fail(span trace.Span, op string, err error) error {
	switch {
	case appErr.IsNotFound(err), appErr.IsGone(err), appErr.IsValidation(err), appErr.IsConflict(err):
		s.logger.Warn(op+" rejected", slog.Any("error", err))
		return err
	}
	s.tracer.RecordError(span, err)
	s.logger.Error(op+" failed", slog.Any("error", err))
	return appErr.NewInternal("%s failed: %v", op, err)
}
