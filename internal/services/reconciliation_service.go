package services

import (
	"context"
	"errors"
	"log/slog"

	"task-market.com/task-market/internal/constants"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/webhooks"
)

// Outcome classifies one delivery attempt of a payment event. Applied,
// Duplicate and Ignored are terminal acknowledgments; TaskNotFound and
// PersistenceError tell the caller to let the provider redeliver.
type Outcome string

const (
	OutcomeApplied          Outcome = "applied"
	OutcomeDuplicate        Outcome = "duplicate"
	OutcomeIgnored          Outcome = "ignored"
	OutcomeTaskNotFound     Outcome = "task_not_found"
	OutcomePersistenceError Outcome = "persistence_error"
)

// DedupPolicy decides which prior ledger states block reprocessing of a
// redelivered event id.
type DedupPolicy int

const (
	// BlockNonRejected treats any prior record that is not rejected as a
	// duplicate, including pending records left by an interrupted attempt.
	// Stuck pending records are recovered by the sweep instead.
	BlockNonRejected DedupPolicy = iota

	// BlockSuccessOnly blocks only on a terminal success, so a pending
	// record left by a crash is reprocessable on the next delivery.
	BlockSuccessOnly
)

func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch s {
	case "block-non-rejected":
		return BlockNonRejected, nil
	case "block-success-only":
		return BlockSuccessOnly, nil
	default:
		return 0, errors.New("unknown dedup policy: " + s)
	}
}

// ReconciliationService applies provider-pushed payment events to task
// state at most once, tolerating duplicate and out-of-order delivery. The
// uniquely-keyed webhook event record is written before the task mutation
// and its terminal status is the single source of truth for "already
// applied".
type ReconciliationService struct {
	tasks  *repository.TaskRepository
	events *repository.WebhookEventRepository
	policy DedupPolicy
	logger *slog.Logger
}

func NewReconciliationService(
	tasks *repository.TaskRepository,
	events *repository.WebhookEventRepository,
	policy DedupPolicy,
	logger *slog.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		tasks:  tasks,
		events: events,
		policy: policy,
		logger: logger.With("component", "reconciliation"),
	}
}

// ApplyPaymentEvent runs one delivery through the ledger. The returned
// error is non-nil only for OutcomePersistenceError.
func (s *ReconciliationService) ApplyPaymentEvent(ctx context.Context, evt *webhooks.Event) (Outcome, error) {
	if evt.Type != webhooks.EventPaymentSucceeded {
		// Ack-and-skip keeps the provider from backing off on redelivery
		// of event types this system does not model.
		s.logger.Info("skipped webhook event", "event_id", evt.ID, "type", evt.Type)
		return OutcomeIgnored, nil
	}

	existing, err := s.events.FindByID(ctx, evt.ID)
	if err != nil {
		return OutcomePersistenceError, err
	}

	if existing != nil && s.blocks(existing.Status) {
		s.logger.Info("duplicate webhook event", "event_id", evt.ID, "status", existing.Status)
		return OutcomeDuplicate, nil
	}

	if existing == nil {
		err = s.events.Create(ctx, evt.ID, evt.Source, evt.Type, evt.TaskID)
		if errors.Is(err, repository.ErrDuplicateEvent) {
			// Lost the insert race to a concurrent delivery.
			s.logger.Info("duplicate webhook event", "event_id", evt.ID)
			return OutcomeDuplicate, nil
		}
		if err != nil {
			s.logger.Error("failed to record webhook event", "event_id", evt.ID, "error", err)
			return OutcomePersistenceError, err
		}
	} else {
		// A rejected (or, under BlockSuccessOnly, stuck pending) record is
		// retryable: rearm it in place rather than re-inserting against
		// its own unique key.
		if err := s.events.UpdateStatus(ctx, evt.ID, constants.EventPending, ""); err != nil {
			s.logger.Error("failed to rearm webhook event", "event_id", evt.ID, "error", err)
			return OutcomePersistenceError, err
		}
	}

	return s.applyToTask(ctx, evt.ID, evt.TaskID)
}

// ReprocessStuck re-applies a pending ledger entry left behind by an
// interrupted delivery. Only pending records are touched; anything that has
// since reached a terminal state is reported as a duplicate.
func (s *ReconciliationService) ReprocessStuck(ctx context.Context, eventID string) (Outcome, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return OutcomePersistenceError, err
	}
	if event == nil || event.Status != constants.EventPending {
		return OutcomeDuplicate, nil
	}

	return s.applyToTask(ctx, event.ID, event.TaskID)
}

func (s *ReconciliationService) applyToTask(ctx context.Context, eventID, taskID string) (Outcome, error) {
	err := s.tasks.UpdatePaymentStatus(ctx, taskID, constants.PaymentPaid)
	if errors.Is(err, repository.ErrTaskNotFound) {
		s.logger.Error("task not found for payment event", "event_id", eventID, "task_id", taskID)
		if markErr := s.events.UpdateStatus(ctx, eventID, constants.EventRejected, "task not found"); markErr != nil {
			return OutcomePersistenceError, markErr
		}
		return OutcomeTaskNotFound, nil
	}
	if err != nil {
		// Left pending: safe against redelivery and picked up by the sweep.
		s.logger.Error("failed to update task payment status", "event_id", eventID, "task_id", taskID, "error", err)
		return OutcomePersistenceError, err
	}

	if err := s.events.UpdateStatus(ctx, eventID, constants.EventSuccess, ""); err != nil {
		s.logger.Error("failed to mark webhook event succeeded", "event_id", eventID, "error", err)
		return OutcomePersistenceError, err
	}

	s.logger.Info("payment event applied", "event_id", eventID, "task_id", taskID)
	return OutcomeApplied, nil
}

func (s *ReconciliationService) blocks(status constants.EventStatus) bool {
	switch s.policy {
	case BlockSuccessOnly:
		return status == constants.EventSuccess
	default:
		return status != constants.EventRejected
	}
}
