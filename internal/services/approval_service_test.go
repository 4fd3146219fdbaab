package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-market.com/task-market/internal/constants"
	apperrors "task-market.com/task-market/internal/errors"
	repository "task-market.com/task-market/internal/repositories"
)

func newApprovalFixture(t *testing.T) (*ApprovalService, *repository.TaskRepository, *repository.OfferRepository) {
	t.Helper()

	db := setupTestDB(t)
	tasks := repository.NewTaskRepository(db)
	offers := repository.NewOfferRepository(db)
	return NewApprovalService(tasks, offers, testLogger()), tasks, offers
}

func TestApproveOffer_AcceptsTargetRejectsSiblings(t *testing.T) {
	svc, tasks, offers := newApprovalFixture(t)
	ctx := context.Background()

	task := createOpenTask(t, tasks, "owner-1")
	o1 := createPendingOffer(t, offers, task.ID, "provider-1", 50)
	o2 := createPendingOffer(t, offers, task.ID, "provider-2", 70)

	result, err := svc.ApproveOffer(ctx, "owner-1", o1.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, result.TaskID)
	assert.Equal(t, o1.ID, result.OfferID)

	accepted, err := offers.FindByID(ctx, o1.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferAccepted, accepted.Status)

	rejected, err := offers.FindByID(ctx, o2.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferRejected, rejected.Status)

	updated, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, updated.Status)
	require.NotNil(t, updated.AcceptedOfferID)
	assert.Equal(t, o1.ID, *updated.AcceptedOfferID)
}

func TestApproveOffer_ExactlyOneAcceptedForAnyN(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("offers=%d", n), func(t *testing.T) {
			svc, tasks, offers := newApprovalFixture(t)
			ctx := context.Background()

			task := createOpenTask(t, tasks, "owner-1")
			ids := make([]string, n)
			for i := 0; i < n; i++ {
				ids[i] = createPendingOffer(t, offers, task.ID, fmt.Sprintf("provider-%d", i), float64(10+i)).ID
			}

			_, err := svc.ApproveOffer(ctx, "owner-1", ids[0])
			require.NoError(t, err)

			all, err := offers.ListByTask(ctx, task.ID)
			require.NoError(t, err)
			require.Len(t, all, n)

			acceptedCount, rejectedCount := 0, 0
			for _, offer := range all {
				switch offer.Status {
				case constants.OfferAccepted:
					acceptedCount++
				case constants.OfferRejected:
					rejectedCount++
				}
			}
			assert.Equal(t, 1, acceptedCount)
			assert.Equal(t, n-1, rejectedCount)
		})
	}
}

func TestApproveOffer_OfferNotFound(t *testing.T) {
	svc, _, _ := newApprovalFixture(t)

	_, err := svc.ApproveOffer(context.Background(), "owner-1", "missing-offer")
	assert.ErrorIs(t, err, apperrors.ErrOfferNotFound)
}

func TestApproveOffer_TaskNotFound(t *testing.T) {
	svc, _, offers := newApprovalFixture(t)
	ctx := context.Background()

	// An offer pointing at a task that was never written: the dangling
	// reference must surface as its own failure mode.
	orphan, err := offers.Create(ctx, "missing-task", "provider-1", 40, "orphaned")
	require.NoError(t, err)

	_, err = svc.ApproveOffer(ctx, "owner-1", orphan.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestApproveOffer_Unauthorized(t *testing.T) {
	svc, tasks, offers := newApprovalFixture(t)
	ctx := context.Background()

	task := createOpenTask(t, tasks, "owner-1")
	offer := createPendingOffer(t, offers, task.ID, "provider-1", 50)

	_, err := svc.ApproveOffer(ctx, "someone-else", offer.ID)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	unchanged, err := offers.FindByID(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferPending, unchanged.Status)
}

func TestApproveOffer_TaskNotOpen(t *testing.T) {
	svc, tasks, offers := newApprovalFixture(t)
	ctx := context.Background()

	task := createOpenTask(t, tasks, "owner-1")
	o1 := createPendingOffer(t, offers, task.ID, "provider-1", 50)
	o2 := createPendingOffer(t, offers, task.ID, "provider-2", 70)

	_, err := svc.ApproveOffer(ctx, "owner-1", o1.ID)
	require.NoError(t, err)

	_, err = svc.ApproveOffer(ctx, "owner-1", o2.ID)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotOpen)
}

func TestApproveOffer_SecondDecisionIsConflictWithoutMutation(t *testing.T) {
	svc, tasks, offers := newApprovalFixture(t)
	ctx := context.Background()

	task := createOpenTask(t, tasks, "owner-1")
	o1 := createPendingOffer(t, offers, task.ID, "provider-1", 50)

	_, err := svc.ApproveOffer(ctx, "owner-1", o1.ID)
	require.NoError(t, err)

	// Re-open the status but keep the accepted offer pinned, so the
	// accepted-offer precondition is what trips, independent of status.
	err = tasks.UpdateStatus(ctx, task.ID, constants.StatusInProgress, constants.StatusOpen)
	require.NoError(t, err)

	o2 := createPendingOffer(t, offers, task.ID, "provider-2", 70)
	_, err = svc.ApproveOffer(ctx, "owner-1", o2.ID)
	assert.ErrorIs(t, err, apperrors.ErrOfferAlreadyApproved)

	after, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, after.AcceptedOfferID)
	assert.Equal(t, o1.ID, *after.AcceptedOfferID)

	pending, err := offers.FindByID(ctx, o2.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OfferPending, pending.Status)
}

func TestApproveOffer_ConcurrentApprovalsExactlyOneWins(t *testing.T) {
	svc, tasks, offers := newApprovalFixture(t)
	ctx := context.Background()

	task := createOpenTask(t, tasks, "owner-1")
	o1 := createPendingOffer(t, offers, task.ID, "provider-1", 50)
	o2 := createPendingOffer(t, offers, task.ID, "provider-2", 70)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, offerID := range []string{o1.ID, o2.ID} {
		wg.Add(1)
		go func(idx int, id string) {
			defer wg.Done()
			_, errs[idx] = svc.ApproveOffer(context.Background(), "owner-1", id)
		}(i, offerID)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if err != apperrors.ErrOfferAlreadyApproved && err != apperrors.ErrTaskNotOpen {
			t.Fatalf("unexpected error from losing approval: %v", err)
		}
	}
	require.Equal(t, 1, successes, "exactly one approval must win")

	all, err := offers.ListByTask(ctx, task.ID)
	require.NoError(t, err)

	acceptedCount := 0
	for _, offer := range all {
		if offer.Status == constants.OfferAccepted {
			acceptedCount++
		}
	}
	assert.Equal(t, 1, acceptedCount, "no interleaving may leave two accepted offers")

	after, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusInProgress, after.Status)
	require.NotNil(t, after.AcceptedOfferID)
}
