package model

import (
	"time"

	"task-market.com/task-market/internal/constants"
)

// WebhookEvent is one durable record per externally delivered payment
// notification, keyed by the provider's event id. Records are never
// deleted; the table doubles as the replay-protection audit trail.
type WebhookEvent struct {
	ID              string                `gorm:"primaryKey;size:191" json:"id"`
	Source          string                `gorm:"type:varchar(20);not null" json:"source"`
	EventType       string                `gorm:"type:varchar(100);not null" json:"event_type"`
	TaskID          string                `gorm:"size:36;not null;index" json:"task_id"`
	Status          constants.EventStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ProcessingError string                `gorm:"type:text" json:"processing_error,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
