package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "task-market.com/task-market/internal/models"
)

func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.Offer{},
		&model.WebhookEvent{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
