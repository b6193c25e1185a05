package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/storage"
	"github.com/samims/notification-api/internal/storage/storagetest"
)

type fixture struct {
	users  storage.UserStorage
	notifs storage.NotificationStorage
}

func newFixture(t *testing.T) fixture {
	db := storagetest.NewSQLite(t)
	return fixture{
		users:  storage.NewUserStorage(db),
		notifs: storage.NewNotificationStorage(db),
	}
}

func (f fixture) seedCustomer(t *testing.T, email string) (*model.User, *model.Customer) {
	t.Helper()
	ctx := context.Background()

	u := &model.User{Name: "Ana", LastName: "Diaz", Email: email, Username: email, Password: "hash", Enabled: true}
	require.NoError(t, f.users.CreateUser(ctx, u))
	require.NoError(t, f.users.CreateProfile(ctx, &model.UserProfile{UserID: u.ID, Email: email, RoleType: model.RoleCustomer}))
	c := &model.Customer{UserID: u.ID, Name: "Ana", Email: email}
	require.NoError(t, f.users.CreateCustomer(ctx, c))
	return u, c
}

func (f fixture) seedProvider(t *testing.T, email string) (*model.User, *model.Provider) {
	t.Helper()
	ctx := context.Background()

	u := &model.User{Name: "Luis", LastName: "Mora", Email: email, Username: email, Password: "hash", Enabled: true}
	require.NoError(t, f.users.CreateUser(ctx, u))
	require.NoError(t, f.users.CreateProfile(ctx, &model.UserProfile{UserID: u.ID, Email: email, RoleType: model.RoleProvider}))
	p := &model.Provider{UserID: u.ID, Name: "Mora Plumbing"}
	require.NoError(t, f.users.CreateProvider(ctx, p))
	return u, p
}

func TestMigrate_Idempotent(t *testing.T) {
	db := storagetest.NewSQLite(t)
	err := storage.Migrate(context.Background(), db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.NoError(t, err)

	var applied int
	require.NoError(t, db.Get(&applied, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, 2, applied)
}

func TestUserStorage_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c := f.seedCustomer(t, "ana@example.com")

	got, err := f.users.FindUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.Enabled)
	assert.False(t, got.CreatedAt.IsZero())

	profile, err := f.users.FindProfileByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, profile.RoleType)
	assert.False(t, profile.IsAdmin)

	cust, err := f.users.FindCustomerByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, cust.ID)

	_, err = f.users.FindProviderByUserID(ctx, u.ID)
	assert.True(t, appErr.IsNotFound(err))

	_, err = f.users.FindUserByEmail(ctx, "nobody@example.com")
	assert.True(t, appErr.IsNotFound(err))
}

func TestUserStorage_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.seedCustomer(t, "dup@example.com")

	err := f.users.CreateUser(context.Background(), &model.User{
		Name: "x", LastName: "y", Email: "dup@example.com", Username: "other", Password: "h",
	})
	assert.True(t, appErr.IsConflict(err))
}

func TestUserStorage_WithTxRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := f.users.WithTx(ctx, func(tx storage.UserStorage) error {
		u := &model.User{Name: "x", LastName: "y", Email: "tx@example.com", Username: "tx@example.com", Password: "h"}
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = f.users.FindUserByEmail(ctx, "tx@example.com")
	assert.True(t, appErr.IsNotFound(err))
}

func TestNotificationStorage_CreateStampsAuditFromPrincipal(t *testing.T) {
	f := newFixture(t)
	u, c := f.seedCustomer(t, "ana@example.com")
	ctx := model.WithPrincipal(context.Background(), model.Principal{UserID: u.ID, Role: model.RoleCustomer})

	n := &model.Notification{Message: "your order shipped", CustomerID: &c.ID}
	require.NoError(t, f.notifs.Create(ctx, n))
	require.NotZero(t, n.ID)

	got, err := f.notifs.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "your order shipped", got.Message)
	assert.False(t, got.Viewed)
	assert.False(t, got.Deleted)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, u.ID, *got.CreatedBy)
	assert.Equal(t, c.ID, *got.CustomerID)
	assert.Nil(t, got.ProviderID)
	assert.True(t, got.CreatedAt.Equal(n.CreatedAt))

	_, err = f.notifs.FindByID(ctx, n.ID+100)
	assert.True(t, appErr.IsNotFound(err))
}

func TestNotificationStorage_MarkViewedAndDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c := f.seedCustomer(t, "ana@example.com")

	n := &model.Notification{Message: "m", CustomerID: &c.ID}
	require.NoError(t, f.notifs.Create(ctx, n))

	changed, err := f.notifs.MarkViewed(ctx, n.ID, &u.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.notifs.MarkViewed(ctx, n.ID, &u.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, f.notifs.MarkDeleted(ctx, n.ID, &u.ID, time.Now()))

	err = f.notifs.MarkDeleted(ctx, n.ID, &u.ID, time.Now())
	assert.True(t, appErr.IsGone(err))

	_, err = f.notifs.MarkViewed(ctx, n.ID, &u.ID, time.Now())
	assert.True(t, appErr.IsGone(err))

	got, err := f.notifs.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Viewed)
	assert.True(t, got.Deleted)
	assert.Equal(t, u.ID, *got.UpdatedBy)
}

func TestNotificationStorage_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, c := f.seedCustomer(t, "ana@example.com")
	_, p := f.seedProvider(t, "luis@example.com")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mk := func(msg string, offset time.Duration, cust, prov *int64) *model.Notification {
		n := &model.Notification{Message: msg, CustomerID: cust, ProviderID: prov}
		n.CreatedAt = base.Add(offset)
		require.NoError(t, f.notifs.Create(ctx, n))
		return n
	}
	first := mk("first", 0, &c.ID, nil)
	second := mk("second", time.Hour, nil, &p.ID)
	third := mk("third", 2*time.Hour, &c.ID, nil)
	gone := mk("gone", 3*time.Hour, &c.ID, nil)
	require.NoError(t, f.notifs.MarkDeleted(ctx, gone.ID, nil, time.Now()))
	_, err := f.notifs.MarkViewed(ctx, third.ID, nil, time.Now())
	require.NoError(t, err)

	page := model.PageRequest{Page: 0, Size: 10}

	all, total, err := f.notifs.List(ctx, model.NotificationFilter{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, ids(all))

	byCustomer, total, err := f.notifs.List(ctx, model.NotificationFilter{CustomerID: &c.ID}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []int64{third.ID, first.ID}, ids(byCustomer))

	either, _, err := f.notifs.List(ctx, model.NotificationFilter{CustomerID: &c.ID, ProviderID: &p.ID, MatchAnyAudience: true}, page)
	require.NoError(t, err)
	assert.Len(t, either, 3)

	both, _, err := f.notifs.List(ctx, model.NotificationFilter{CustomerID: &c.ID, ProviderID: &p.ID}, page)
	require.NoError(t, err)
	assert.Empty(t, both)

	unviewed := false
	notViewed, _, err := f.notifs.List(ctx, model.NotificationFilter{Viewed: &unviewed}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID, first.ID}, ids(notViewed))

	from, to := base.Add(30*time.Minute), base.Add(90*time.Minute)
	window, _, err := f.notifs.List(ctx, model.NotificationFilter{From: &from, To: &to}, page)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID}, ids(window))

	paged, total, err := f.notifs.List(ctx, model.NotificationFilter{}, model.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []int64{first.ID}, ids(paged))
}

func TestNotificationStorage_History(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, c := f.seedCustomer(t, "ana@example.com")

	n := &model.Notification{Message: "m", CustomerID: &c.ID}
	require.NoError(t, f.notifs.Create(ctx, n))

	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, ev := range []model.HistoryEvent{model.EventCreated, model.EventViewed, model.EventDeleted} {
		require.NoError(t, f.notifs.AppendHistory(ctx, &model.NotificationHistory{
			NotificationID: n.ID, Event: ev, UserID: u.ID, EventDate: at.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, total, err := f.notifs.ListHistory(ctx, n.ID, model.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, entries, 3)
	assert.Equal(t, model.EventDeleted, entries[0].Event)
	assert.Equal(t, model.EventCreated, entries[2].Event)
	assert.Equal(t, u.ID, entries[1].UserID)

	none, total, err := f.notifs.ListHistory(ctx, n.ID+50, model.PageRequest{Size: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

func ids(ns []model.Notification) []int64 {
	out := make([]int64, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.ID)
	}
	return out
}
