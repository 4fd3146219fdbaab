package services

import (
	"context"
	"errors"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Signup(ctx context.Context, name, email string, role constants.Role) (*model.User, error) {
	user, err := s.repo.Create(ctx, name, email, role)
	if errors.Is(err, repository.ErrEmailTaken) {
		return nil, apperrors.ErrEmailTaken
	}
	return user, err
}
