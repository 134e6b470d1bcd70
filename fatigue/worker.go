// SPDX-License-Identifier: MIT

package fatigue

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Task is a unit of work run by a Worker. A returned error is logged and
// counted; it is never propagated to the submitter.
type Task func() error

// job is what travels through a worker's handoff slot.
// after, when set, runs once the worker has finished its accounting.
type job struct {
	run   Task
	after func()
}

// poisonPill is the sentinel job that makes a worker exit its loop.
var poisonPill = &job{}

// Worker runs one task at a time from a single-slot handoff and tracks how
// long it has been busy and idle.
//
// States: idle → busy → idle ... → terminated (only via the poison pill).
type Worker struct {
	id     int
	factor float64
	log    *zap.Logger

	handoff chan *job     // capacity 1
	done    chan struct{} // closed when the run loop exits

	epoch     time.Time    // monotonic origin for the *Nanos fields
	idleSince atomic.Int64 // nanos since epoch when the worker last became idle
	busyNanos atomic.Int64
	idleNanos atomic.Int64
	tasksRun  atomic.Int64
	failed    atomic.Int64
	busy      atomic.Bool
	alive     atomic.Bool

	lifecycle sync.Mutex // guards started and the alive→false transition
	started   bool
	closeOnce sync.Once
}

// NewWorker returns a stopped worker; call Start to launch its goroutine.
// Errors: ErrInvalidWorkerID (id < 0), ErrInvalidFactor (factor ≤ 0, NaN or ±Inf).
func NewWorker(id int, factor float64, opts ...Option) (*Worker, error) {
	if id < 0 {
		return nil, fmt.Errorf("NewWorker(%d): %w", id, ErrInvalidWorkerID)
	}
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return nil, fmt.Errorf("NewWorker(%d): %w", id, ErrInvalidFactor)
	}
	o := gatherOptions(opts...)

	w := &Worker{
		id:      id,
		factor:  factor,
		log:     o.logger.With(zap.Int("worker", id), zap.Float64("factor", factor)),
		handoff: make(chan *job, 1),
		done:    make(chan struct{}),
		epoch:   time.Now(),
	}
	w.alive.Store(true)

	return w, nil
}

// now returns monotonic nanoseconds since the worker was created.
func (w *Worker) now() int64 {
	return int64(time.Since(w.epoch))
}

// Start launches the run loop. Calling it again, or after Shutdown, is a no-op.
func (w *Worker) Start() {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	if w.started || !w.alive.Load() {
		return
	}
	w.started = true
	w.idleSince.Store(w.now())
	go w.run()
}

// Submit places t into the handoff slot without blocking.
// Errors: ErrNilTask, ErrWorkerShutdown, ErrWorkerBusy.
func (w *Worker) Submit(t Task) error {
	if t == nil {
		return fmt.Errorf("Worker(%d).Submit: %w", w.id, ErrNilTask)
	}
	return w.give(&job{run: t})
}

// give is the non-blocking handoff shared by Submit and the Scheduler.
// It holds the lifecycle lock so that every accepted job is in the slot
// before Shutdown can enqueue the poison pill behind it.
func (w *Worker) give(j *job) error {
	w.lifecycle.Lock()
	defer w.lifecycle.Unlock()

	if !w.alive.Load() {
		return fmt.Errorf("Worker(%d).Submit: %w", w.id, ErrWorkerShutdown)
	}
	select {
	case w.handoff <- j:
		return nil
	default:
		return fmt.Errorf("Worker(%d).Submit: %w", w.id, ErrWorkerBusy)
	}
}

// Shutdown tells the worker to stop after any task already handed to it.
// The poison pill is enqueued with a blocking send, so it is ordered after
// the pending task. Safe to call more than once.
func (w *Worker) Shutdown() {
	w.lifecycle.Lock()
	if !w.alive.Load() {
		w.lifecycle.Unlock()
		return
	}
	w.alive.Store(false)
	started := w.started
	w.lifecycle.Unlock()

	if !started {
		w.closeOnce.Do(func() { close(w.done) })
		return
	}
	w.handoff <- poisonPill
}

// Done returns a channel closed once the worker goroutine has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Join blocks until the worker goroutine has exited.
func (w *Worker) Join() {
	<-w.done
}

// run is the worker loop.
func (w *Worker) run() {
	defer w.closeOnce.Do(func() { close(w.done) })
	defer w.alive.Store(false)

	for {
		j := <-w.handoff
		w.idleNanos.Add(w.now() - w.idleSince.Load())
		if j == poisonPill {
			w.log.Debug("worker stopped")
			return
		}

		w.busy.Store(true)
		start := w.now()
		err := w.execute(j.run)
		end := w.now()
		w.busyNanos.Add(end - start)
		w.tasksRun.Add(1)
		if err != nil {
			w.failed.Add(1)
			w.log.Warn("task failed", zap.Error(err))
		}
		w.busy.Store(false)
		w.idleSince.Store(end)

		if j.after != nil {
			j.after()
		}
	}
}

// execute runs t, converting a panic into an ErrTaskPanic error.
func (w *Worker) execute(t Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanic, r)
		}
	}()
	return t()
}

// ID returns the worker id.
func (w *Worker) ID() int { return w.id }

// Factor returns the fixed speed multiplier.
func (w *Worker) Factor() float64 { return w.factor }

// Fatigue returns factor × cumulative busy nanoseconds.
func (w *Worker) Fatigue() float64 {
	return w.factor * float64(w.busyNanos.Load())
}

// BusyTime returns the cumulative time spent running tasks.
func (w *Worker) BusyTime() time.Duration { return time.Duration(w.busyNanos.Load()) }

// IdleTime returns the cumulative time spent waiting for tasks.
func (w *Worker) IdleTime() time.Duration { return time.Duration(w.idleNanos.Load()) }

// IsBusy reports whether a task is currently executing.
func (w *Worker) IsBusy() bool { return w.busy.Load() }

// Alive reports whether the worker still accepts tasks.
func (w *Worker) Alive() bool { return w.alive.Load() }

// TasksRun returns the number of tasks executed (successful or not).
func (w *Worker) TasksRun() int64 { return w.tasksRun.Load() }

// TasksFailed returns the number of tasks that returned an error or panicked.
func (w *Worker) TasksFailed() int64 { return w.failed.Load() }

// Less orders workers by fatigue, then by id.
func (w *Worker) Less(other *Worker) bool {
	fw, fo := w.Fatigue(), other.Fatigue()
	if fw != fo {
		return fw < fo
	}
	return w.id < other.id
}
