package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/metrics"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/storage"
	"github.com/samims/notification-api/internal/storage/storagetest"
)

type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.LedgerEvent
	err    error
}

func (p *recordingPublisher) Start(context.Context) {}
func (p *recordingPublisher) Close(context.Context) {}

func (p *recordingPublisher) Publish(_ context.Context, evt model.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) kinds() []model.HistoryEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.HistoryEvent, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event)
	}
	return out
}

type ledgerFixture struct {
	svc       NotificationService
	users     storage.UserStorage
	notifs    storage.NotificationStorage
	publisher *recordingPublisher
}

func newLedgerFixture(t *testing.T, opts LedgerOptions) ledgerFixture {
	t.Helper()
	db := storagetest.NewSQLite(t)
	f := ledgerFixture{
		users:     storage.NewUserStorage(db),
		notifs:    storage.NewNotificationStorage(db),
		publisher: &recordingPublisher{},
	}
	if opts.Now == nil {
		opts.Now = (&stepClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}).Now
	}
	f.svc = NewNotificationService(f.notifs, f.users, f.publisher, opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

// seedUser creates a user holding the identities implied by role and
// returns the user id plus the customer and provider ids (zero when absent).
func (f ledgerFixture) seedUser(t *testing.T, email string, role model.Role) (userID, customerID, providerID int64) {
	t.Helper()
	ctx := context.Background()

	u := &model.User{Name: "Test", LastName: "User", Email: email, Username: email, Password: "hash", Enabled: true}
	require.NoError(t, f.users.CreateUser(ctx, u))
	require.NoError(t, f.users.CreateProfile(ctx, &model.UserProfile{UserID: u.ID, Email: email, RoleType: role}))
	if role.IsCustomer() {
		c := &model.Customer{UserID: u.ID, Name: "Customer " + email, Email: email}
		require.NoError(t, f.users.CreateCustomer(ctx, c))
		customerID = c.ID
	}
	if role.IsProvider() {
		p := &model.Provider{UserID: u.ID, Name: "Provider " + email}
		require.NoError(t, f.users.CreateProvider(ctx, p))
		providerID = p.ID
	}
	return u.ID, customerID, providerID
}

func (f ledgerFixture) history(t *testing.T, id int64) []model.HistoryEvent {
	t.Helper()
	page, err := f.svc.History(context.Background(), id, model.PageRequest{Size: model.MaxPageSize})
	require.NoError(t, err)
	out := make([]model.HistoryEvent, 0, len(page.Content))
	for _, h := range page.Content {
		out = append(out, h.Event)
	}
	return out
}

func TestNotificationService_Create(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()
	userID, customerID, providerID := f.seedUser(t, "both@example.com", model.RoleBoth)

	before := testutil.ToFloat64(metrics.LedgerEvents.WithLabelValues(string(model.EventCreated)))

	n, err := f.svc.Create(ctx, "Your order shipped", userID)
	require.NoError(t, err)
	assert.NotZero(t, n.ID)
	assert.False(t, n.Viewed)
	assert.False(t, n.Deleted)
	require.NotNil(t, n.CustomerID)
	require.NotNil(t, n.ProviderID)
	assert.Equal(t, customerID, *n.CustomerID)
	assert.Equal(t, providerID, *n.ProviderID)
	require.NotNil(t, n.CreatedBy)
	assert.Equal(t, userID, *n.CreatedBy)

	assert.Equal(t, []model.HistoryEvent{model.EventCreated}, f.history(t, n.ID))
	assert.Equal(t, []model.HistoryEvent{model.EventCreated}, f.publisher.kinds())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.LedgerEvents.WithLabelValues(string(model.EventCreated))))
}

func TestNotificationService_CreateRejectsBlankMessage(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	userID, _, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := f.svc.Create(context.Background(), msg, userID)
		assert.ErrorIs(t, err, appErr.ErrValidation)
	}
	assert.Empty(t, f.publisher.kinds())
}

func TestNotificationService_MarkAsViewed(t *testing.T) {
	tests := []struct {
		name        string
		repeatViews bool
		views       int
		want        []model.HistoryEvent
	}{
		{
			name:  "single view",
			views: 1,
			want:  []model.HistoryEvent{model.EventViewed, model.EventCreated},
		},
		{
			name:  "repeat views are not recorded",
			views: 3,
			want:  []model.HistoryEvent{model.EventViewed, model.EventCreated},
		},
		{
			name:        "repeat views recorded when auditing repeats",
			repeatViews: true,
			views:       3,
			want:        []model.HistoryEvent{model.EventViewed, model.EventViewed, model.EventViewed, model.EventCreated},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(t, LedgerOptions{AuditRepeatViews: tt.repeatViews})
			ctx := context.Background()
			userID, _, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)
			viewerID, _, _ := f.seedUser(t, "p@example.com", model.RoleProvider)

			n, err := f.svc.Create(ctx, "hello", userID)
			require.NoError(t, err)

			var last *model.Notification
			for i := 0; i < tt.views; i++ {
				got, err := f.svc.MarkAsViewed(ctx, n.ID, viewerID)
				require.NoError(t, err)
				assert.True(t, got.Viewed)
				if last != nil {
					assert.True(t, got.UpdatedAt.After(last.UpdatedAt))
				}
				last = got
			}
			require.NotNil(t, last.UpdatedBy)
			assert.Equal(t, viewerID, *last.UpdatedBy)
			assert.Equal(t, model.StateActiveViewed, last.State())
			assert.Equal(t, tt.want, f.history(t, n.ID))
		})
	}
}

func TestNotificationService_DeleteIsTerminal(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()
	userID, _, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)

	n, err := f.svc.Create(ctx, "hello", userID)
	require.NoError(t, err)
	_, err = f.svc.MarkAsViewed(ctx, n.ID, userID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, n.ID, userID))

	_, err = f.svc.MarkAsViewed(ctx, n.ID, userID)
	assert.ErrorIs(t, err, appErr.ErrGone)
	assert.ErrorIs(t, f.svc.Delete(ctx, n.ID, userID), appErr.ErrGone)

	got, err := f.svc.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.Equal(t, model.StateDeleted, got.State())

	page, err := f.svc.ListForUser(ctx, userID, nil, nil, nil, model.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Content)

	assert.Equal(t, []model.HistoryEvent{model.EventDeleted, model.EventViewed, model.EventCreated}, f.history(t, n.ID))
	assert.Equal(t, []model.HistoryEvent{model.EventCreated, model.EventViewed, model.EventDeleted}, f.publisher.kinds())
}

func TestNotificationService_UnknownID(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()

	_, err := f.svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, appErr.ErrNotFound)
	_, err = f.svc.MarkAsViewed(ctx, 999, 1)
	assert.ErrorIs(t, err, appErr.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, 999, 1), appErr.ErrNotFound)

	page, err := f.svc.History(ctx, 999, model.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Zero(t, page.TotalElements)
}

func TestNotificationService_ListForUser(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()
	customer, _, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)
	provider, _, _ := f.seedUser(t, "p@example.com", model.RoleProvider)
	both, _, _ := f.seedUser(t, "b@example.com", model.RoleBoth)

	first, err := f.svc.Create(ctx, "for customer 1", customer)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "for customer 2", customer)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "for provider", provider)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, "for both", both)
	require.NoError(t, err)
	_, err = f.svc.MarkAsViewed(ctx, first.ID, customer)
	require.NoError(t, err)

	viewed, unviewed := true, false
	tests := []struct {
		name     string
		userID   int64
		viewed   *bool
		wantMsgs []string
	}{
		{name: "customer sees own newest first", userID: customer, wantMsgs: []string{"for customer 2", "for customer 1"}},
		{name: "customer viewed only", userID: customer, viewed: &viewed, wantMsgs: []string{"for customer 1"}},
		{name: "customer unviewed only", userID: customer, viewed: &unviewed, wantMsgs: []string{"for customer 2"}},
		{name: "provider", userID: provider, wantMsgs: []string{"for provider"}},
		{name: "dual role sees both identities", userID: both, wantMsgs: []string{"for both"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.svc.ListForUser(ctx, tt.userID, tt.viewed, nil, nil, model.PageRequest{})
			require.NoError(t, err)
			msgs := make([]string, 0, len(page.Content))
			for _, n := range page.Content {
				msgs = append(msgs, n.Message)
			}
			assert.Equal(t, tt.wantMsgs, msgs)
			assert.Equal(t, int64(len(tt.wantMsgs)), page.TotalElements)
		})
	}
}

func TestNotificationService_ListForUserWithoutIdentities(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()
	customer, _, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)
	_, err := f.svc.Create(ctx, "hello", customer)
	require.NoError(t, err)

	page, err := f.svc.ListForUser(ctx, 4242, nil, nil, nil, model.PageRequest{Size: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 5, page.Size)
	assert.False(t, page.HasNext)
}

func TestNotificationService_ListDateWindowAndPaging(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()
	customer, customerID, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)

	var created []*model.Notification
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		n, err := f.svc.Create(ctx, msg, customer)
		require.NoError(t, err)
		created = append(created, n)
	}

	from, to := created[1].CreatedAt, created[3].CreatedAt
	page, err := f.svc.List(ctx, model.NotificationFilter{CustomerID: &customerID, From: &from, To: &to}, model.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "d", page.Content[0].Message)
	assert.Equal(t, "c", page.Content[1].Message)

	page, err = f.svc.List(ctx, model.NotificationFilter{CustomerID: &customerID, From: &from, To: &to}, model.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "b", page.Content[0].Message)
	assert.False(t, page.HasNext)

	_, err = f.svc.List(ctx, model.NotificationFilter{From: &to, To: &from}, model.PageRequest{})
	assert.ErrorIs(t, err, appErr.ErrValidation)
	_, err = f.svc.ListForUser(ctx, customer, nil, &to, &from, model.PageRequest{})
	assert.ErrorIs(t, err, appErr.ErrValidation)
}

func TestNotificationService_ListFutureFromWithoutTo(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()
	customer, customerID, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)
	_, err := f.svc.Create(ctx, "hello", customer)
	require.NoError(t, err)

	future := time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)

	page, err := f.svc.ListForUser(ctx, customer, nil, &future, nil, model.PageRequest{})
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(0), page.TotalElements)
	assert.Equal(t, model.DefaultPageSize, page.Size)

	page, err = f.svc.List(ctx, model.NotificationFilter{CustomerID: &customerID, From: &future}, model.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
}

func TestNotificationService_PublishFailureDoesNotFailTransition(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	f.publisher.err = errors.New("broker down")
	ctx := context.Background()
	userID, _, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)

	n, err := f.svc.Create(ctx, "hello", userID)
	require.NoError(t, err)
	_, err = f.svc.MarkAsViewed(ctx, n.ID, userID)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, n.ID, userID))

	assert.Equal(t, []model.HistoryEvent{model.EventDeleted, model.EventViewed, model.EventCreated}, f.history(t, n.ID))
}

func TestNotificationService_HistoryFailureAbortsCreate(t *testing.T) {
	users := storage.NewMockUserStorage(t)
	users.On("FindCustomerByUserID", mock.Anything, int64(3)).Return(&model.Customer{ID: 30, UserID: 3}, nil)
	users.On("FindProviderByUserID", mock.Anything, int64(3)).Return(nil, appErr.NewNotFound("provider not found"))

	notifs := storage.NewMockNotificationStorage(t)
	notifs.On("WithTx", mock.Anything, mock.Anything).
		Return(func(_ context.Context, fn func(storage.NotificationStorage) error) error {
			return fn(notifs)
		})
	notifs.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Notification).ID = 77
	}).Return(nil)
	notifs.On("AppendHistory", mock.Anything, mock.MatchedBy(func(h *model.NotificationHistory) bool {
		return h.NotificationID == 77 && h.Event == model.EventCreated && h.UserID == 3
	})).Return(errors.New("constraint failed"))

	publisher := &recordingPublisher{}
	svc := NewNotificationService(notifs, users, publisher, LedgerOptions{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	n, err := svc.Create(context.Background(), "hello", 3)
	assert.Nil(t, n)
	assert.ErrorIs(t, err, appErr.ErrInternal)
	assert.Empty(t, publisher.kinds())
}

func TestNotificationService_CreateRollsBackWithHistory(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	ctx := context.Background()
	userID, customerID, _ := f.seedUser(t, "c@example.com", model.RoleCustomer)

	// A history row for a notification that does not exist violates the
	// foreign key and takes the notification insert down with it.
	err := f.notifs.WithTx(ctx, func(tx storage.NotificationStorage) error {
		n := &model.Notification{Message: "orphan", CustomerID: &customerID}
		if err := tx.Create(ctx, n); err != nil {
			return err
		}
		return tx.AppendHistory(ctx, &model.NotificationHistory{NotificationID: n.ID + 1000, Event: model.EventCreated, UserID: userID})
	})
	require.Error(t, err)

	page, err := f.svc.ListForUser(ctx, userID, nil, nil, nil, model.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
}
