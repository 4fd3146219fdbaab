package auth

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestTokenAuthenticator(t *testing.T) {
	users := repository.NewUserRepository(setupTestDB(t))
	authenticator := NewTokenAuthenticator(users)
	ctx := context.Background()

	user, err := users.Create(ctx, "Grace", "grace@example.com", constants.RoleServiceProvider)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	identity, err := authenticator.Authenticate(ctx, user.APIToken)
	if err != nil {
		t.Fatalf("authentication with issued token failed: %v", err)
	}
	if identity.UserID != user.ID {
		t.Errorf("expected user id %s, got %s", user.ID, identity.UserID)
	}
	if identity.Role != constants.RoleServiceProvider {
		t.Errorf("expected role %s, got %s", constants.RoleServiceProvider, identity.Role)
	}

	if _, err := authenticator.Authenticate(ctx, "unknown-token"); err != apperrors.ErrAuthenticationFailed {
		t.Errorf("expected ErrAuthenticationFailed for unknown token, got %v", err)
	}

	if _, err := authenticator.Authenticate(ctx, ""); err != apperrors.ErrAuthenticationFailed {
		t.Errorf("expected ErrAuthenticationFailed for empty token, got %v", err)
	}
}
