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

type TaskRepository struct {
	db *gorm.DB
}

// ErrTaskConflict is returned when a guarded task write finds the task
// already past the expected state (a concurrent writer won).
var ErrTaskConflict = errors.New("task state conflict")

var ErrTaskNotFound = errors.New("task not found")

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, ownerID, title, details string, budget float64) (*model.Task, error) {
	task := &model.Task{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Title:         title,
		Details:       details,
		Budget:        budget,
		Status:        constants.StatusOpen,
		PaymentStatus: constants.PaymentUnpaid,
		CreatedAt:     time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListByStatus(ctx context.Context, status constants.TaskStatus) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// AcceptOffer is the linearization point of offer approval: a conditional
// write that advances the task out of Open and pins the accepted offer in
// one row update. It succeeds for exactly one concurrent caller; the
// losers get ErrTaskConflict and must not touch sibling offers.
func (r *TaskRepository) AcceptOffer(ctx context.Context, taskID, offerID string) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ? AND accepted_offer_id IS NULL", taskID, constants.StatusOpen).
		Updates(map[string]interface{}{
			"status":            constants.StatusInProgress,
			"accepted_offer_id": offerID,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrTaskConflict
	}

	return nil
}

// UpdateStatus performs a compare-and-swap on the lifecycle status alone.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID string, from, to constants.TaskStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ?", taskID, from).
		Update("status", to)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrTaskConflict
	}

	return nil
}

// UpdatePaymentStatus writes the payment_status field only. Approval and
// reconciliation both touch the task row, but on disjoint fields, so
// field-scoped updates keep the two engines free of cross-engine locking.
func (r *TaskRepository) UpdatePaymentStatus(ctx context.Context, taskID string, status constants.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Update("payment_status", status)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
