// SPDX-License-Identifier: MIT
// Package fatigue: sentinel error set.
// Every message is prefixed with "fatigue: ..."; match with errors.Is.

package fatigue

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkers is returned by New when the worker count is not positive.
	ErrInvalidWorkers = errors.New("fatigue: worker count must be > 0")

	// ErrInvalidWorkerID is returned by NewWorker for a negative id.
	ErrInvalidWorkerID = errors.New("fatigue: worker id must be >= 0")

	// ErrInvalidFactor is returned by NewWorker for a non-positive or non-finite factor.
	ErrInvalidFactor = errors.New("fatigue: factor must be finite and > 0")

	// ErrNilTask is returned when a nil Task is submitted.
	ErrNilTask = errors.New("fatigue: nil task")

	// ErrWorkerShutdown is returned when a task is handed to a worker that was told to stop.
	ErrWorkerShutdown = errors.New("fatigue: worker is shut down")

	// ErrWorkerBusy is returned when a worker's handoff slot is already occupied.
	ErrWorkerBusy = errors.New("fatigue: worker handoff slot is full")

	// ErrShutdown is returned by Scheduler methods after Shutdown.
	ErrShutdown = errors.New("fatigue: scheduler is shut down")

	// ErrInterrupted is returned when a blocking wait is aborted by its context.
	ErrInterrupted = errors.New("fatigue: interrupted")

	// ErrTaskPanic wraps a value recovered from a panicking task.
	ErrTaskPanic = errors.New("fatigue: task panicked")
)

// interrupted wraps ctx's cause under ErrInterrupted.
func interrupted(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInterrupted, cause)
}
