package model

import (
	"time"

	"task-market.com/task-market/internal/constants"
)

type Task struct {
	ID              string                  `gorm:"primaryKey;size:36" json:"id"`
	OwnerID         string                  `gorm:"size:36;not null;index" json:"owner_id"`
	Title           string                  `gorm:"not null" json:"title"`
	Details         string                  `gorm:"not null" json:"details"`
	Budget          float64                 `gorm:"not null" json:"budget"`
	Status          constants.TaskStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus   constants.PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	AcceptedOfferID *string                 `gorm:"size:36" json:"accepted_offer_id,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}
