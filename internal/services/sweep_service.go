package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	repository "task-market.com/task-market/internal/repositories"
)

// SweepService recovers webhook events stranded in pending: deliveries
// that crashed between the ledger insert and the terminal mark. It
// periodically lists pending records older than staleAfter and re-applies
// them through the reconciliation engine on a small worker pool.
type SweepService struct {
	queue      chan string
	wg         sync.WaitGroup
	sweepWG    sync.WaitGroup
	enqueued   sync.Map
	events     *repository.WebhookEventRepository
	reconciler *ReconciliationService
	interval   time.Duration
	staleAfter time.Duration
	batchSize  int
	stop       chan struct{}
	logger     *slog.Logger
}

func NewSweepService(
	events *repository.WebhookEventRepository,
	reconciler *ReconciliationService,
	workers int,
	queueSize int,
	interval time.Duration,
	staleAfter time.Duration,
	batchSize int,
	logger *slog.Logger,
) *SweepService {
	s := &SweepService{
		queue:      make(chan string, queueSize),
		events:     events,
		reconciler: reconciler,
		interval:   interval,
		staleAfter: staleAfter,
		batchSize:  batchSize,
		stop:       make(chan struct{}),
		logger:     logger.With("component", "sweep"),
	}

	s.sweepWG.Add(1)
	go s.sweepLoop()

	for i := 1; i <= workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

func (s *SweepService) worker(workerID int) {
	defer s.wg.Done()

	s.logger.Info("sweep worker started", "worker", workerID)

	for eventID := range s.queue {
		s.reprocess(workerID, eventID)
	}

	s.logger.Info("sweep worker stopped", "worker", workerID)
}

func (s *SweepService) reprocess(workerID int, eventID string) {
	ctx := context.Background()
	defer s.untrackEnqueued(eventID)

	outcome, err := s.reconciler.ReprocessStuck(ctx, eventID)
	if err != nil {
		s.logger.Error("sweep reprocess failed", "worker", workerID, "event_id", eventID, "error", err)
		return
	}

	s.logger.Info("sweep reprocessed event", "worker", workerID, "event_id", eventID, "outcome", outcome)
}

func (s *SweepService) sweepLoop() {
	defer s.sweepWG.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *SweepService) sweepOnce() {
	ctx := context.Background()

	cutoff := time.Now().UTC().Add(-s.staleAfter)
	events, err := s.events.ListStalePending(ctx, cutoff, s.batchSize)
	if err != nil {
		s.logger.Error("sweep failed to list stale pending events", "error", err)
		return
	}

	for _, event := range events {
		enqueued, queueFull := s.enqueueIfNotPresent(event.ID)
		if !enqueued && !queueFull {
			continue
		}
		if queueFull {
			return
		}
	}
}

func (s *SweepService) enqueueIfNotPresent(eventID string) (bool, bool) {
	if !s.trackEnqueued(eventID) {
		return false, false
	}

	select {
	case s.queue <- eventID:
		return true, false
	default:
		s.untrackEnqueued(eventID)
		return false, true
	}
}

func (s *SweepService) trackEnqueued(eventID string) bool {
	_, loaded := s.enqueued.LoadOrStore(eventID, struct{}{})
	return !loaded
}

func (s *SweepService) untrackEnqueued(eventID string) {
	s.enqueued.Delete(eventID)
}

func (s *SweepService) Shutdown(ctx context.Context) {
	close(s.stop)
	s.sweepWG.Wait()
	close(s.queue)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("sweep shut down cleanly")
	case <-ctx.Done():
		s.logger.Info("sweep shutdown timed out")
	}
}
