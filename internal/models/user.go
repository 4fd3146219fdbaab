package model

import (
	"time"

	"task-market.com/task-market/internal/constants"
)

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null;uniqueIndex" json:"email"`
	Role      constants.Role `gorm:"type:varchar(20);not null" json:"role"`
	APIToken  string         `gorm:"size:36;not null;uniqueIndex" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
}
