package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.User{}, &model.Task{}, &model.Offer{}, &model.WebhookEvent{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createOpenTask(t *testing.T, tasks *repository.TaskRepository, ownerID string) *model.Task {
	t.Helper()

	task, err := tasks.Create(context.Background(), ownerID, "Mow the lawn", "Front and back yard", 80)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func createPendingOffer(t *testing.T, offers *repository.OfferRepository, taskID, providerID string, amount float64) *model.Offer {
	t.Helper()

	offer, err := offers.Create(context.Background(), taskID, providerID, amount, "I can do this")
	if err != nil {
		t.Fatalf("failed to create offer: %v", err)
	}
	if offer.Status != constants.OfferPending {
		t.Fatalf("expected new offer to be pending, got %s", offer.Status)
	}
	return offer
}
