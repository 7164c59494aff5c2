// internal/domain/subscriber/entity.go
package subscriber

import (
	"time"
)

// Subscriber is a newsletter recipient. Unsubscribing soft-deletes
// (IsActive=false); resubscribing reactivates the same record.
type Subscriber struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	SubscribedAt  time.Time  `json:"subscribed_at"`
	LastEmailSent *time.Time `json:"last_email_sent"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the table name for Subscriber
func (Subscriber) TableName() string {
	return "subscribers"
}

// SubscribeOutcome describes what a subscribe call did
type SubscribeOutcome string

const (
	OutcomeSubscribed        SubscribeOutcome = "subscribed"
	OutcomeReactivated       SubscribeOutcome = "reactivated"
	OutcomeAlreadySubscribed SubscribeOutcome = "already_subscribed"
)

// SendResult records one fan-out attempt
type SendResult struct {
	Email  string `json:"email"`
	Status string `json:"status"` // "success" or "failed"
	Error  string `json:"error,omitempty"`
}

// NotifySummary aggregates a fan-out batch
type NotifySummary struct {
	Message string       `json:"message"`
	Results []SendResult `json:"results"`
}
