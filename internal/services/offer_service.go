package services

import (
	"context"
	"errors"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	model "task-market.com/task-market/internal/models"
	repository "task-market.com/task-market/internal/repositories"
)

type OfferService struct {
	offers *repository.OfferRepository
	tasks  *repository.TaskRepository
}

func NewOfferService(offers *repository.OfferRepository, tasks *repository.TaskRepository) *OfferService {
	return &OfferService{offers: offers, tasks: tasks}
}

func (s *OfferService) CreateOffer(ctx context.Context, providerID, taskID string, amount float64, message string) (*model.Offer, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.Status != constants.StatusOpen {
		return nil, apperrors.ErrTaskNotOpen
	}

	return s.offers.Create(ctx, taskID, providerID, amount, message)
}

func (s *OfferService) ListMyOffers(ctx context.Context, providerID string) ([]model.Offer, error) {
	return s.offers.ListByProvider(ctx, providerID)
}

// ListTaskOffers returns the offers on a task, visible only to its owner.
func (s *OfferService) ListTaskOffers(ctx context.Context, requesterID, taskID string) ([]model.Offer, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.OwnerID != requesterID {
		return nil, apperrors.ErrUnauthorized
	}

	return s.offers.ListByTask(ctx, taskID)
}
