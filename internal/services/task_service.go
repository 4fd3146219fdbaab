package services

import (
	"context"
	"errors"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

type TaskService struct {
	repo *repository.TaskRepository
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID, title, details string, budget float64) (*model.Task, error) {
	return s.repo.Create(ctx, ownerID, title, details, budget)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, err
}

func (s *TaskService) ListOpenTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.ListByStatus(ctx, constants.StatusOpen)
}

func (s *TaskService) ListMyTasks(ctx context.Context, ownerID string) ([]model.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// CompleteTask moves an in-progress task to completed. Only the task owner
// may complete it, and the transition is a status compare-and-swap so a
// doubled-up request fails instead of silently re-completing.
func (s *TaskService) CompleteTask(ctx context.Context, requesterID, taskID string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.OwnerID != requesterID {
		return nil, apperrors.ErrUnauthorized
	}

	if task.Status != constants.StatusInProgress {
		return nil, apperrors.ErrTaskNotInProgress
	}

	err = s.repo.UpdateStatus(ctx, taskID, constants.StatusInProgress, constants.StatusCompleted)
	if errors.Is(err, repository.ErrTaskConflict) {
		return nil, apperrors.ErrTaskNotInProgress
	}
	if err != nil {
		return nil, err
	}

	task.Status = constants.StatusCompleted
	return task, nil
}
