package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	model "task-market.com/task-market/internal/models"
)

// WebhookEventRepository is the idempotency ledger: one uniquely-keyed
// record per provider event id, inserted before the side effect it guards.
type WebhookEventRepository struct {
	db *gorm.DB
}

// ErrDuplicateEvent is returned when an insert loses the first-writer-wins
// race on the event id.
var ErrDuplicateEvent = errors.New("webhook event already recorded")

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// FindByID returns (nil, nil) when no record exists; absence is the only
// condition that permits unconditional reprocessing.
func (r *WebhookEventRepository) FindByID(ctx context.Context, id string) (*model.WebhookEvent, error) {
	var event model.WebhookEvent
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts the ledger entry with status pending. The primary key on
// the provider event id makes this insert-if-absent: a concurrent delivery
// that already created the record surfaces as ErrDuplicateEvent.
func (r *WebhookEventRepository) Create(ctx context.Context, id, source, eventType, taskID string) error {
	event := &model.WebhookEvent{
		ID:        id,
		Source:    source,
		EventType: eventType,
		TaskID:    taskID,
		Status:    constants.EventPending,
		CreatedAt: time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Create(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEvent
	}
	return err
}

func (r *WebhookEventRepository) UpdateStatus(ctx context.Context, id string, status constants.EventStatus, processingError string) error {
	return r.db.WithContext(ctx).Model(&model.WebhookEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"processing_error": processingError,
		}).Error
}

// ListStalePending returns pending records whose last update is older than
// the cutoff. These are deliveries interrupted between ledger insert and
// terminal mark; the sweep re-applies them.
func (r *WebhookEventRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]model.WebhookEvent, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var events []model.WebhookEvent
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", constants.EventPending, olderThan).
		Order("updated_at asc").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}
