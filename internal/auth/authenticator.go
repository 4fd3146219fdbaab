// Package auth is the narrow identity collaborator: it turns a bearer
// credential into an authenticated identity with role metadata. The core
// engines trust the identity it produces but still re-check record-level
// ownership themselves.
package auth

import (
	"context"

	"task-market.com/task-market/internal/constants"
)

type Identity struct {
	UserID string
	Name   string
	Role   constants.Role
}

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
