package model

import "time"

// Audit is embedded by every persisted entity.
type Audit struct {
	CreatedBy *int64    `json:"created_by,omitempty" db:"id_user_create"`
	UpdatedBy *int64    `json:"updated_by,omitempty" db:"id_user_update"`
	CreatedAt time.Time `json:"created_at" db:"date_create"`
	UpdatedAt time.Time `json:"updated_at" db:"date_update"`
}

// OnCreate stamps a new row. A nil actor leaves the existing value alone.
func (a *Audit) OnCreate(actor *int64, at time.Time) {
	if a.CreatedBy == nil {
		a.CreatedBy = actor
	}
	if a.UpdatedBy == nil {
		a.UpdatedBy = actor
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = at
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = at
	}
}

// OnUpdate stamps a modification.
func (a *Audit) OnUpdate(actor *int64, at time.Time) {
	if actor != nil {
		a.UpdatedBy = actor
	}
	a.UpdatedAt = at
}

// Timestamp normalises a time to what both storage dialects round-trip.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
