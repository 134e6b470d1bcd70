// SPDX-License-Identifier: MIT

// Package fatigue implements a worker pool whose dispatch is biased by
// accumulated "fatigue" instead of round-robin.
//
// What & Why:
//
//	Each Worker is a long-lived goroutine with a single-slot handoff, a fixed
//	speed multiplier (factor) drawn once at creation, and monotonic busy/idle
//	counters. Fatigue = factor × cumulative busy nanoseconds.
//
//	The Scheduler keeps the idle workers in a set and, for every Submit,
//	picks the idle worker with the lowest fatigue (ties → lowest id) by a
//	linear scan at selection time. Fatigue grows continuously, so a cached
//	heap order would go stale; the scan re-ranks on every pick.
//
// Blocking points:
//
//	Submit      - while no worker is idle (honours ctx cancellation).
//	SubmitAll   - until every task of the batch has finished.
//	Worker loop - on its handoff slot between tasks.
//	Shutdown    - until every worker goroutine has exited.
//
// Failure policy:
//
//	A task that returns an error or panics is logged by its worker and
//	counted (Worker.TasksFailed, Scheduler.Failures); it never propagates to
//	the submitter and never kills the worker. Callers that need per-batch
//	success compare Failures() before and after SubmitAll.
package fatigue
