package services

import (
	"context"
	"errors"
	"log/slog"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	repository "task-market.com/task-market/internal/repositories"
)

// ApprovalService applies a task owner's approval decision to exactly one
// offer: the target is accepted, every other pending sibling is rejected,
// and the task advances out of Open.
type ApprovalService struct {
	tasks  *repository.TaskRepository
	offers *repository.OfferRepository
	logger *slog.Logger
}

type ApprovalResult struct {
	TaskID  string `json:"task_id"`
	OfferID string `json:"offer_id"`
}

func NewApprovalService(
	tasks *repository.TaskRepository,
	offers *repository.OfferRepository,
	logger *slog.Logger,
) *ApprovalService {
	return &ApprovalService{
		tasks:  tasks,
		offers: offers,
		logger: logger.With("component", "approval"),
	}
}

// ApproveOffer checks the preconditions in a fixed order, each with its own
// error, then commits. The task write is a compare-and-swap from
// (Open, no accepted offer) and goes first: once it lands, this caller owns
// the decision and the offer writes that follow are safe even without
// multi-record atomicity. A caller that loses the CAS never touches
// sibling offers it no longer owns.
func (s *ApprovalService) ApproveOffer(ctx context.Context, requesterID, offerID string) (*ApprovalResult, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, err
	}

	// Referential integrity should make this impossible, but the check is
	// load-bearing against partial writes.
	task, err := s.tasks.FindByID(ctx, offer.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}

	// Ownership is re-checked here even though the HTTP layer already
	// authenticated the caller; the engine never relies on an outer layer
	// having authorized this specific record.
	if task.OwnerID != requesterID {
		return nil, apperrors.ErrUnauthorized
	}

	if task.Status != constants.StatusOpen {
		return nil, apperrors.ErrTaskNotOpen
	}

	if task.AcceptedOfferID != nil {
		return nil, apperrors.ErrOfferAlreadyApproved
	}

	if err := s.tasks.AcceptOffer(ctx, task.ID, offer.ID); err != nil {
		if errors.Is(err, repository.ErrTaskConflict) {
			// Raced with another approval and lost.
			return nil, apperrors.ErrOfferAlreadyApproved
		}
		return nil, err
	}

	if err := s.offers.RejectSiblings(ctx, task.ID, offer.ID); err != nil {
		s.logger.Error("failed to reject sibling offers", "task_id", task.ID, "offer_id", offer.ID, "error", err)
		return nil, err
	}

	if err := s.offers.MarkAccepted(ctx, offer.ID); err != nil {
		s.logger.Error("failed to mark offer accepted", "task_id", task.ID, "offer_id", offer.ID, "error", err)
		return nil, err
	}

	s.logger.Info("offer approved", "task_id", task.ID, "offer_id", offer.ID)

	return &ApprovalResult{TaskID: task.ID, OfferID: offer.ID}, nil
}
