package storage

import (
	"context"
	"time"

	"github.com/samims/notification-api/internal/model"
)

// UserStorage persists identities: users, their profile and the customer
// and provider records a role implies.
type UserStorage interface {
	CreateUser(ctx context.Context, u *model.User) error
	CreateProfile(ctx context.Context, p *model.UserProfile) error
	CreateCustomer(ctx context.Context, c *model.Customer) error
	CreateProvider(ctx context.Context, p *model.Provider) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindProfileByUserID(ctx context.Context, userID int64) (*model.UserProfile, error)
	FindCustomerByUserID(ctx context.Context, userID int64) (*model.Customer, error)
	FindProviderByUserID(ctx context.Context, userID int64) (*model.Provider, error)
	// WithTx runs fn against a transaction-bound UserStorage. The
	// transaction commits only when fn returns nil.
	WithTx(ctx context.Context, fn func(UserStorage) error) error
	Ping(ctx context.Context) error
}

// NotificationStorage persists notifications and their append-only history.
type NotificationStorage interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id int64) (*model.Notification, error)
	// MarkViewed sets the viewed flag on an active notification and stamps
	// the update. changed reports whether the flag was previously false.
	// A deleted notification yields ErrGone.
	MarkViewed(ctx context.Context, id int64, actor *int64, at time.Time) (changed bool, err error)
	// MarkDeleted soft-deletes an active notification. A notification that
	// is already deleted yields ErrGone.
	MarkDeleted(ctx context.Context, id int64, actor *int64, at time.Time) error
	List(ctx context.Context, filter model.NotificationFilter, page model.PageRequest) ([]model.Notification, int64, error)
	AppendHistory(ctx context.Context, h *model.NotificationHistory) error
	ListHistory(ctx context.Context, notificationID int64, page model.PageRequest) ([]model.NotificationHistory, int64, error)
	// WithTx runs fn against a transaction-bound NotificationStorage. The
	// transaction commits only when fn returns nil.
	WithTx(ctx context.Context, fn func(NotificationStorage) error) error
	Ping(ctx context.Context) error
}
