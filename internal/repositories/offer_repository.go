package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	model "task-market.com/task-market/internal/models"
)

type OfferRepository struct {
	db *gorm.DB
}

var ErrOfferNotFound = errors.New("offer not found")

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, taskID, providerID string, amount float64, message string) (*model.Offer, error) {
	offer := &model.Offer{
		ID:         uuid.NewString(),
		TaskID:     taskID,
		ProviderID: providerID,
		Amount:     amount,
		Message:    message,
		Status:     constants.OfferPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}

	return offer, nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepository) ListByTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) ListByProvider(ctx context.Context, providerID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&offers).Error
	return offers, err
}

// RejectSiblings bulk-rejects every other still-pending offer on the task.
// Siblings already in a terminal state are left untouched; offer status is
// monotonic out of Pending.
func (r *OfferRepository) RejectSiblings(ctx context.Context, taskID, acceptedOfferID string) error {
	return r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("task_id = ? AND id <> ? AND status = ?", taskID, acceptedOfferID, constants.OfferPending).
		Update("status", constants.OfferRejected).Error
}

func (r *OfferRepository) MarkAccepted(ctx context.Context, offerID string) error {
	return r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("id = ?", offerID).
		Update("status", constants.OfferAccepted).Error
}
