package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/model"
)

const (
	notificationColumns = `id, message, viewed, deleted, id_customer, id_provider,
		id_user_create, id_user_update, date_create, date_update`
	historyColumns = `id, id_notification, event, event_date, id_user,
		id_user_create, id_user_update, date_create, date_update`
)

type notificationStorage struct {
	sqlStore
}

func NewNotificationStorage(db *sqlx.DB) NotificationStorage {
	return &notificationStorage{sqlStore: newSQLStore(db)}
}

func (s *notificationStorage) WithTx(ctx context.Context, fn func(NotificationStorage) error) error {
	return s.withTx(ctx, func(tx sqlStore) error {
		return fn(&notificationStorage{sqlStore: tx})
	})
}

func (s *notificationStorage) Create(ctx context.Context, n *model.Notification) error {
	if n == nil {
		return fmt.Errorf("notification cannot be nil")
	}
	stampCreate(ctx, &n.Audit, s.now)
	query := s.ext.Rebind(`
		INSERT INTO notification (message, viewed, deleted, id_customer, id_provider,
			id_user_create, id_user_update, date_create, date_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := sqlx.GetContext(ctx, s.ext, &n.ID, query,
		n.Message, n.Viewed, n.Deleted, n.CustomerID, n.ProviderID,
		n.CreatedBy, n.UpdatedBy, n.CreatedAt, n.UpdatedAt)
	return mapError(err, "notification")
}

func (s *notificationStorage) FindByID(ctx context.Context, id int64) (*model.Notification, error) {
	var n model.Notification
	query := s.ext.Rebind(`SELECT ` + notificationColumns + ` FROM notification WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.ext, &n, query, id); err != nil {
		return nil, mapError(err, fmt.Sprintf("notification %d", id))
	}
	return &n, nil
}

func (s *notificationStorage) MarkViewed(ctx context.Context, id int64, actor *int64, at time.Time) (bool, error) {
	actor, at = stampUpdate(ctx, actor, at)

	// Only the transition from unviewed reports a change; concurrent first
	// views serialize on the row and at most one of them wins.
	changed, err := s.exec(ctx, `
		UPDATE notification SET viewed = TRUE, id_user_update = ?, date_update = ?
		WHERE id = ? AND deleted = FALSE AND viewed = FALSE`, actor, at, id)
	if err != nil {
		return false, mapError(err, fmt.Sprintf("notification %d", id))
	}
	if changed {
		return true, nil
	}

	touched, err := s.exec(ctx, `
		UPDATE notification SET id_user_update = ?, date_update = ?
		WHERE id = ? AND deleted = FALSE`, actor, at, id)
	if err != nil {
		return false, mapError(err, fmt.Sprintf("notification %d", id))
	}
	if !touched {
		return false, appErr.NewGone("notification %d was deleted", id)
	}
	return false, nil
}

func (s *notificationStorage) MarkDeleted(ctx context.Context, id int64, actor *int64, at time.Time) error {
	actor, at = stampUpdate(ctx, actor, at)

	changed, err := s.exec(ctx, `
		UPDATE notification SET deleted = TRUE, id_user_update = ?, date_update = ?
		WHERE id = ? AND deleted = FALSE`, actor, at, id)
	if err != nil {
		return mapError(err, fmt.Sprintf("notification %d", id))
	}
	if !changed {
		return appErr.NewGone("notification %d was deleted", id)
	}
	return nil
}

func (s *notificationStorage) List(ctx context.Context, filter model.NotificationFilter, page model.PageRequest) ([]model.Notification, int64, error) {
	where, args := listConditions(filter)

	var total int64
	countQuery := s.ext.Rebind(`SELECT COUNT(*) FROM notification WHERE ` + where)
	if err := sqlx.GetContext(ctx, s.ext, &total, countQuery, args...); err != nil {
		return nil, 0, mapError(err, "notifications")
	}
	if total == 0 {
		return []model.Notification{}, 0, nil
	}

	notifs := []model.Notification{}
	query := s.ext.Rebind(`SELECT ` + notificationColumns + ` FROM notification WHERE ` + where +
		` ORDER BY date_create DESC, id DESC LIMIT ? OFFSET ?`)
	args = append(args, page.Size, page.Offset())
	if err := sqlx.SelectContext(ctx, s.ext, &notifs, query, args...); err != nil {
		return nil, 0, mapError(err, "notifications")
	}
	return notifs, total, nil
}

// listConditions builds the WHERE clause of a listing. Deleted rows are
// excluded unconditionally.
func listConditions(f model.NotificationFilter) (string, []any) {
	conditions := []string{"deleted = FALSE"}
	var args []any

	switch {
	case f.MatchAnyAudience && f.CustomerID != nil && f.ProviderID != nil:
		conditions = append(conditions, "(id_customer = ? OR id_provider = ?)")
		args = append(args, *f.CustomerID, *f.ProviderID)
	default:
		if f.CustomerID != nil {
			conditions = append(conditions, "id_customer = ?")
			args = append(args, *f.CustomerID)
		}
		if f.ProviderID != nil {
			conditions = append(conditions, "id_provider = ?")
			args = append(args, *f.ProviderID)
		}
	}
	if f.Viewed != nil {
		conditions = append(conditions, "viewed = ?")
		args = append(args, *f.Viewed)
	}
	if f.From != nil {
		conditions = append(conditions, "date_create >= ?")
		args = append(args, model.Timestamp(*f.From))
	}
	if f.To != nil {
		conditions = append(conditions, "date_create <= ?")
		args = append(args, model.Timestamp(*f.To))
	}
	return strings.Join(conditions, " AND "), args
}

func (s *notificationStorage) AppendHistory(ctx context.Context, h *model.NotificationHistory) error {
	stampCreate(ctx, &h.Audit, s.now)
	if h.EventDate.IsZero() {
		h.EventDate = h.CreatedAt
	}
	h.EventDate = model.Timestamp(h.EventDate)

	query := s.ext.Rebind(`
		INSERT INTO notification_history (id_notification, event, event_date, id_user,
			id_user_create, id_user_update, date_create, date_update)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := sqlx.GetContext(ctx, s.ext, &h.ID, query,
		h.NotificationID, string(h.Event), h.EventDate, h.UserID,
		h.CreatedBy, h.UpdatedBy, h.CreatedAt, h.UpdatedAt)
	return mapError(err, "notification history")
}

func (s *notificationStorage) ListHistory(ctx context.Context, notificationID int64, page model.PageRequest) ([]model.NotificationHistory, int64, error) {
	var total int64
	countQuery := s.ext.Rebind(`SELECT COUNT(*) FROM notification_history WHERE id_notification = ?`)
	if err := sqlx.GetContext(ctx, s.ext, &total, countQuery, notificationID); err != nil {
		return nil, 0, mapError(err, "notification history")
	}
	if total == 0 {
		return []model.NotificationHistory{}, 0, nil
	}

	entries := []model.NotificationHistory{}
	query := s.ext.Rebind(`SELECT ` + historyColumns + ` FROM notification_history
		WHERE id_notification = ?
		ORDER BY event_date DESC, id DESC LIMIT ? OFFSET ?`)
	if err := sqlx.SelectContext(ctx, s.ext, &entries, query, notificationID, page.Size, page.Offset()); err != nil {
		return nil, 0, mapError(err, "notification history")
	}
	return entries, total, nil
}

func (s *notificationStorage) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// exec runs an UPDATE and reports whether it touched any row.
func (s *notificationStorage) exec(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := s.ext.ExecContext(ctx, s.ext.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}
