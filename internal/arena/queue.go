package arena

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/pvp"
)

// ErrQueueFull is returned when the pending match queue is at capacity.
var ErrQueueFull = errors.New("match queue full")

// MatchRequest is one queued match. A zero Seed is replaced with a fresh
// wall-clock seed when the match runs.
type MatchRequest struct {
	AttackerID int64
	DefenderID int64
	Seed       int64
}

// Queue resolves queued matches on a fixed pool of workers. Matches
// between disjoint character pairs run concurrently; each match itself
// is strictly sequential. It implements the server.Service lifecycle.
type Queue struct {
	svc    *Service
	logger *zap.Logger

	jobs     chan MatchRequest
	workers  int
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewQueue creates a match queue draining into svc.
//
// Precondition: svc and logger must be non-nil; workers and size must be
// positive.
func NewQueue(svc *Service, logger *zap.Logger, workers, size int) *Queue {
	return &Queue{
		svc:     svc,
		logger:  logger,
		jobs:    make(chan MatchRequest, size),
		workers: workers,
	}
}

// Enqueue submits a match for asynchronous resolution.
//
// Postcondition: Returns ErrQueueFull instead of blocking when the queue
// is at capacity.
func (q *Queue) Enqueue(req MatchRequest) error {
	select {
	case q.jobs <- req:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start runs the workers and blocks until Stop is called and the queue
// drains.
//
// Postcondition: Every request enqueued before Stop has been resolved
// when Start returns.
func (q *Queue) Start() error {
	q.wg.Add(q.workers)
	for i := 0; i < q.workers; i++ {
		go q.worker()
	}
	q.wg.Wait()
	return nil
}

// Stop closes the queue and blocks until every already-queued match has
// resolved and the workers have exited, so a shutdown never abandons a
// match mid-commit. Further Enqueue calls panic, so callers must stop
// submitting first.
//
// Postcondition: Every request enqueued before Stop has been resolved
// when Stop returns.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() { close(q.jobs) })
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for req := range q.jobs {
		seed := req.Seed
		if seed == 0 {
			seed = pvp.NewMatchSeed()
		}
		if _, err := q.svc.ResolveMatch(context.Background(), req.AttackerID, req.DefenderID, seed); err != nil {
			q.logger.Error("match resolution failed",
				zap.Int64("attacker_id", req.AttackerID),
				zap.Int64("defender_id", req.DefenderID),
				zap.Error(err),
			)
		}
	}
}
