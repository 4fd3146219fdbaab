package model

import (
	"time"

	"task-market.com/task-market/internal/constants"
)

type Offer struct {
	ID         string                `gorm:"primaryKey;size:36" json:"id"`
	TaskID     string                `gorm:"size:36;not null;index" json:"task_id"`
	ProviderID string                `gorm:"size:36;not null;index" json:"provider_id"`
	Amount     float64               `gorm:"not null" json:"amount"`
	Message    string                `gorm:"not null" json:"message"`
	Status     constants.OfferStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
}
