package storage

import (
	"context"
	"time"

	"github.com/samims/notification-api/internal/model"
)

// Every insert and update goes through these hooks so audit columns are
// filled even when a caller forgot them. The actor falls back to the
// request principal.

func stampCreate(ctx context.Context, a *model.Audit, now func() time.Time) {
	a.OnCreate(actorFrom(ctx), model.Timestamp(now()))
	a.CreatedAt = model.Timestamp(a.CreatedAt)
	a.UpdatedAt = model.Timestamp(a.UpdatedAt)
}

func stampUpdate(ctx context.Context, actor *int64, at time.Time) (*int64, time.Time) {
	if actor == nil {
		actor = actorFrom(ctx)
	}
	return actor, model.Timestamp(at)
}

func actorFrom(ctx context.Context) *int64 {
	p, ok := model.PrincipalFromContext(ctx)
	if !ok {
		return nil
	}
	id := p.UserID
	return &id
}
