package auth

import (
	"context"
	"errors"

	apperrors "task-market.com/task-market/internal/errors"
	repository "task-market.com/task-market/internal/repositories"
)

// TokenAuthenticator resolves API tokens issued at signup against the user
// store.
type TokenAuthenticator struct {
	users *repository.UserRepository
}

func NewTokenAuthenticator(users *repository.UserRepository) *TokenAuthenticator {
	return &TokenAuthenticator{users: users}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.ErrAuthenticationFailed
	}

	user, err := a.users.FindByAPIToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAPIToken) {
			return nil, apperrors.ErrAuthenticationFailed
		}
		return nil, err
	}

	return &Identity{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}
