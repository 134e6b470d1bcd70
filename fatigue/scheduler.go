// SPDX-License-Identifier: MIT

package fatigue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Scheduler dispatches tasks to the least-fatigued idle worker.
//
// Invariants:
//   - Every idle worker is backed by exactly one token; a submitter holding a
//     token is guaranteed to find a worker in idle.
//   - A worker is in idle at most once.
//   - inFlight ≥ 0 and equals the number of handed-off, unfinished tasks.
type Scheduler struct {
	workers []*Worker
	log     *zap.Logger

	mu     sync.Mutex
	idle   []*Worker     // guarded by mu
	tokens chan struct{} // one token per idle worker; capacity len(workers)

	inFlight atomic.Int64
	closed   atomic.Bool
	done     chan struct{} // closed by Shutdown; wakes blocked submitters

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates and starts n workers, each with an independently drawn factor
// in [DefaultMinFactor, DefaultMaxFactor) (see WithFactorRange, WithSeed).
// All workers start idle.
// Errors: ErrInvalidWorkers when n ≤ 0.
func New(n int, opts ...Option) (*Scheduler, error) {
	if n <= 0 {
		return nil, fmt.Errorf("New(%d): %w", n, ErrInvalidWorkers)
	}
	o := gatherOptions(opts...)
	seed := baseSeed(o)

	s := &Scheduler{
		workers: make([]*Worker, n),
		log:     o.logger,
		idle:    make([]*Worker, 0, n),
		tokens:  make(chan struct{}, n),
		done:    make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		w, err := NewWorker(i, drawFactor(seed, i, o.minFactor, o.maxFactor), WithLogger(o.logger))
		if err != nil {
			return nil, err
		}
		s.workers[i] = w
		s.idle = append(s.idle, w)
		s.tokens <- struct{}{}
		w.Start()
	}
	s.log.Debug("scheduler started", zap.Int("workers", n), zap.Int64("seed", seed))

	return s, nil
}

// Submit hands t to the idle worker with minimum fatigue (ties → lowest id),
// blocking while every worker is busy.
//
// Errors:
//   - ErrNilTask for a nil task.
//   - ErrShutdown once Shutdown has begun.
//   - ErrInterrupted (wrapping ctx.Err()) if ctx ends while waiting.
//   - the worker's handoff error; the worker is returned to idle first.
func (s *Scheduler) Submit(ctx context.Context, t Task) error {
	return s.submit(ctx, t, nil)
}

// submit is Submit with an optional completion callback run after the
// worker is back in the idle set.
func (s *Scheduler) submit(ctx context.Context, t Task, onDone func()) error {
	if t == nil {
		return fmt.Errorf("Scheduler.Submit: %w", ErrNilTask)
	}
	if s.closed.Load() {
		return fmt.Errorf("Scheduler.Submit: %w", ErrShutdown)
	}

	select {
	case <-s.tokens:
	case <-s.done:
		return fmt.Errorf("Scheduler.Submit: %w", ErrShutdown)
	case <-ctx.Done():
		return interrupted("Scheduler.Submit", ctx.Err())
	}
	if s.closed.Load() {
		s.tokens <- struct{}{} // let Shutdown's drain collect it
		return fmt.Errorf("Scheduler.Submit: %w", ErrShutdown)
	}

	s.mu.Lock()
	w := s.pickIdleLocked()
	s.inFlight.Add(1)
	s.mu.Unlock()

	err := w.give(&job{
		run: t,
		after: func() {
			s.release(w)
			if onDone != nil {
				onDone()
			}
		},
	})
	if err != nil {
		s.release(w)
		return err
	}

	return nil
}

// pickIdleLocked removes and returns the least-fatigued idle worker.
// Caller holds mu and a token, so idle is non-empty.
// Complexity: O(n) linear re-rank; fatigue is read fresh for every candidate.
func (s *Scheduler) pickIdleLocked() *Worker {
	best := 0
	for i := 1; i < len(s.idle); i++ {
		if s.idle[i].Less(s.idle[best]) {
			best = i
		}
	}
	w := s.idle[best]
	last := len(s.idle) - 1
	s.idle[best] = s.idle[last]
	s.idle[last] = nil
	s.idle = s.idle[:last]
	return w
}

// release returns w to the idle set and wakes one blocked submitter.
func (s *Scheduler) release(w *Worker) {
	s.mu.Lock()
	s.idle = append(s.idle, w)
	s.mu.Unlock()
	s.inFlight.Add(-1)
	s.tokens <- struct{}{}
}

// SubmitAll submits tasks in order, then blocks until every one of them has
// finished: a synchronous fan-out/fan-in barrier.
//
// The first submission error stops further submission and is returned after
// the already-submitted tasks have finished, so no task of the batch is left
// running when SubmitAll returns. The error is therefore not propagated the
// moment it occurs: a caller with a cancelled ctx still waits out the tasks
// that were handed to workers before the cancellation was seen.
// Task-body failures do not fail the batch.
func (s *Scheduler) SubmitAll(ctx context.Context, tasks []Task) error {
	var batch sync.WaitGroup
	var err error
	for _, t := range tasks {
		batch.Add(1)
		if err = s.submit(ctx, t, batch.Done); err != nil {
			batch.Done()
			break
		}
	}
	batch.Wait()

	return err
}

// Shutdown rejects further submissions, waits for in-flight tasks to drain,
// sends every worker its poison pill and joins every worker goroutine.
// It is idempotent; later calls return the first call's result.
//
// Errors: ErrInterrupted if ctx ends before all workers have exited; the
// workers still exit on their own once their current task completes.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)

		// Collect one token per worker: afterwards nothing is in flight.
		var drainErr error
	drain:
		for range s.workers {
			select {
			case <-s.tokens:
			case <-ctx.Done():
				drainErr = interrupted("Scheduler.Shutdown", ctx.Err())
				break drain
			}
		}

		var g errgroup.Group
		for _, w := range s.workers {
			g.Go(func() error {
				w.Shutdown()
				select {
				case <-w.Done():
					return nil
				case <-ctx.Done():
					return interrupted(fmt.Sprintf("Scheduler.Shutdown: worker %d", w.ID()), ctx.Err())
				}
			})
		}
		s.shutdownErr = g.Wait()
		if s.shutdownErr == nil {
			s.shutdownErr = drainErr
		}
		s.log.Debug("scheduler stopped", zap.Int("workers", len(s.workers)))
	})

	return s.shutdownErr
}

// InFlight returns the number of handed-off, unfinished tasks.
func (s *Scheduler) InFlight() int { return int(s.inFlight.Load()) }

// Size returns the number of workers.
func (s *Scheduler) Size() int { return len(s.workers) }

// Workers returns the pool's workers in id order. The slice is a copy.
func (s *Scheduler) Workers() []*Worker {
	out := make([]*Worker, len(s.workers))
	copy(out, s.workers)
	return out
}

// Failures returns the total number of failed tasks across all workers.
func (s *Scheduler) Failures() int64 {
	var n int64
	for _, w := range s.workers {
		n += w.TasksFailed()
	}
	return n
}

// IdleCount returns how many workers are currently idle.
func (s *Scheduler) IdleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.idle)
}
