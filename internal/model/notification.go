package model

import "time"

// HistoryEvent labels a ledger entry.
type HistoryEvent string

const (
	EventCreated HistoryEvent = "CREATED"
	EventViewed  HistoryEvent = "VIEWED"
	EventDeleted HistoryEvent = "DELETED"
)

// NotificationState is derived from the viewed and deleted flags.
type NotificationState string

const (
	StateActiveUnviewed NotificationState = "ACTIVE_UNVIEWED"
	StateActiveViewed   NotificationState = "ACTIVE_VIEWED"
	StateDeleted        NotificationState = "DELETED"
)

type Notification struct {
	ID         int64  `json:"id" db:"id"`
	Message    string `json:"message" db:"message"`
	Viewed     bool   `json:"viewed" db:"viewed"`
	Deleted    bool   `json:"deleted" db:"deleted"`
	CustomerID *int64 `json:"customer_id,omitempty" db:"id_customer"`
	ProviderID *int64 `json:"provider_id,omitempty" db:"id_provider"`
	Audit
}

func (n *Notification) State() NotificationState {
	switch {
	case n.Deleted:
		return StateDeleted
	case n.Viewed:
		return StateActiveViewed
	default:
		return StateActiveUnviewed
	}
}

type NotificationHistory struct {
	ID             int64        `json:"id" db:"id"`
	NotificationID int64        `json:"notification_id" db:"id_notification"`
	Event          HistoryEvent `json:"event" db:"event"`
	EventDate      time.Time    `json:"event_date" db:"event_date"`
	UserID         int64        `json:"user_id" db:"id_user"`
	Audit
}

// NotificationFilter narrows a listing. Deleted notifications are never
// part of a listing regardless of the filter.
type NotificationFilter struct {
	CustomerID *int64
	ProviderID *int64
	// MatchAnyAudience ORs the customer and provider conditions instead of
	// ANDing them.
	MatchAnyAudience bool
	Viewed           *bool
	From             *time.Time
	To               *time.Time
}

// LedgerEvent is published after a lifecycle transition commits.
type LedgerEvent struct {
	NotificationID int64        `json:"notification_id"`
	Event          HistoryEvent `json:"event"`
	UserID         int64        `json:"user_id"`
	CustomerID     *int64       `json:"customer_id,omitempty"`
	ProviderID     *int64       `json:"provider_id,omitempty"`
	OccurredAt     time.Time    `json:"occurred_at"`
}
