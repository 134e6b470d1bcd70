// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/lae/fatigue"
	"github.com/katalvlaran/lae/shared"
	"github.com/katalvlaran/lae/tree"
)

// Engine evaluates operation trees on a fatigue-scheduled pool.
//
// Concurrency:
//   - Run and LoadAndCompute are serialized by mu: the two operand slots are
//     reused for every node.
//   - Row tasks run on pool workers and touch only the vectors of their row.
type Engine struct {
	left  *shared.Matrix
	right *shared.Matrix
	sched *fatigue.Scheduler
	log   *zap.Logger

	mu     sync.Mutex
	closed atomic.Bool
}

// New starts a pool of workers goroutines and returns an idle engine.
// Errors: fatigue.ErrInvalidWorkers when workers ≤ 0.
func New(workers int, opts ...Option) (*Engine, error) {
	o := gatherOptions(opts...)
	s, err := fatigue.New(workers, o.pool...)
	if err != nil {
		return nil, fmt.Errorf("engine.New: %w", err)
	}

	return &Engine{
		left:  shared.NewMatrix(),
		right: shared.NewMatrix(),
		sched: s,
		log:   o.logger,
	}, nil
}

// Run resolves root bottom-up until it is a leaf and returns it.
// The tree is modified in place; a leaf root is returned unchanged.
//
// Errors: ErrInvalidTree, ErrArity, ErrShapeMismatch, ErrRowFailed,
// ErrClosed, fatigue.ErrInterrupted when ctx ends.
func (e *Engine) Run(ctx context.Context, root *tree.Node) (*tree.Node, error) {
	if root == nil {
		return nil, fmt.Errorf("Engine.Run: %w: nil root", ErrInvalidTree)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	log := e.log.With(zap.String("run", uuid.NewString()))
	start := time.Now()
	steps := 0
	for !root.IsLeaf() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Engine.Run: %w: %w", fatigue.ErrInterrupted, err)
		}
		n := root.FindResolvable()
		if n == nil {
			return nil, fmt.Errorf("Engine.Run: %w: no resolvable node", ErrInvalidTree)
		}
		if err := e.compute(ctx, log, n); err != nil {
			log.Debug("run failed", zap.Int("steps", steps), zap.Error(err))
			return nil, fmt.Errorf("Engine.Run: %w", err)
		}
		steps++
	}
	log.Debug("run finished", zap.Int("steps", steps), zap.Duration("elapsed", time.Since(start)))

	return root, nil
}

// LoadAndCompute evaluates a single resolvable node and resolves it with the
// result.
// Errors: ErrInvalidTree when n is nil or not resolvable, plus those of Run.
func (e *Engine) LoadAndCompute(ctx context.Context, n *tree.Node) error {
	if n == nil || !n.Resolvable() {
		return fmt.Errorf("Engine.LoadAndCompute: %w: node is not resolvable", ErrInvalidTree)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.compute(ctx, e.log, n)
}

// compute dispatches on the operator. Caller holds mu.
func (e *Engine) compute(ctx context.Context, log *zap.Logger, n *tree.Node) error {
	if e.closed.Load() {
		return ErrClosed
	}
	kids := n.Children()
	mats := make([][][]float64, len(kids))
	for i, c := range kids {
		mats[i] = c.Matrix()
	}
	if err := checkOperands(n.Kind(), mats); err != nil {
		return err
	}

	var err error
	switch n.Kind() {
	case tree.KindNegate:
		err = e.negate(ctx, mats[0])
	case tree.KindTranspose:
		err = e.transpose(ctx, mats[0])
	case tree.KindAdd:
		err = e.fold(ctx, mats, e.add)
	case tree.KindMultiply:
		err = e.fold(ctx, mats, e.multiply)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", n.Kind(), err)
	}

	result := e.left.ReadRowMajor()
	log.Debug("node resolved",
		zap.Stringer("op", n.Kind()),
		zap.Int("operands", len(mats)),
		zap.Int("rows", len(result)),
	)

	return n.Resolve(result)
}

// fold applies a binary operator left to right, leaving the final result in
// the left slot.
func (e *Engine) fold(ctx context.Context, mats [][][]float64, op func(context.Context, [][]float64, [][]float64) error) error {
	acc := mats[0]
	for _, next := range mats[1:] {
		if err := op(ctx, acc, next); err != nil {
			return err
		}
		acc = e.left.ReadRowMajor()
	}
	return nil
}

func (e *Engine) negate(ctx context.Context, m [][]float64) error {
	if err := e.left.LoadRowMajor(m); err != nil {
		return err
	}
	return e.runRows(ctx, e.left.Len(), func(i int) error {
		v, err := e.left.Get(i)
		if err != nil {
			return err
		}
		v.Negate()
		return nil
	})
}

// transpose flips every row vector to a column, reads the matrix back (now a
// true transpose) and reloads it row-major.
func (e *Engine) transpose(ctx context.Context, m [][]float64) error {
	if err := e.left.LoadRowMajor(m); err != nil {
		return err
	}
	err := e.runRows(ctx, e.left.Len(), func(i int) error {
		v, err := e.left.Get(i)
		if err != nil {
			return err
		}
		v.Transpose()
		return nil
	})
	if err != nil {
		return err
	}
	return e.left.LoadRowMajor(e.left.ReadRowMajor())
}

func (e *Engine) add(ctx context.Context, a, b [][]float64) error {
	if err := e.left.LoadRowMajor(a); err != nil {
		return err
	}
	if err := e.right.LoadRowMajor(b); err != nil {
		return err
	}
	return e.runRows(ctx, e.left.Len(), func(i int) error {
		dst, err := e.left.Get(i)
		if err != nil {
			return err
		}
		src, err := e.right.Get(i)
		if err != nil {
			return err
		}
		return dst.Add(src)
	})
}

// multiply stores b column-major so each left row is a single VecMatMul.
func (e *Engine) multiply(ctx context.Context, a, b [][]float64) error {
	if err := e.left.LoadRowMajor(a); err != nil {
		return err
	}
	if err := e.right.LoadColumnMajor(b); err != nil {
		return err
	}
	return e.runRows(ctx, e.left.Len(), func(i int) error {
		v, err := e.left.Get(i)
		if err != nil {
			return err
		}
		return v.VecMatMul(e.right)
	})
}

// runRows submits one task per row and waits for the batch. Task failures are
// only logged by the workers, so they are detected through the scheduler's
// failure counter.
func (e *Engine) runRows(ctx context.Context, rows int, row func(i int) error) error {
	tasks := make([]fatigue.Task, rows)
	for i := range tasks {
		tasks[i] = func() error {
			if err := row(i); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			return nil
		}
	}

	before := e.sched.Failures()
	if err := e.sched.SubmitAll(ctx, tasks); err != nil {
		return err
	}
	if failed := e.sched.Failures() - before; failed > 0 {
		return fmt.Errorf("%w: %d of %d rows", ErrRowFailed, failed, rows)
	}
	return nil
}

// Report returns a snapshot of per-worker statistics.
func (e *Engine) Report() fatigue.Report {
	return e.sched.Report()
}

// Close shuts the worker pool down and joins every worker. It is idempotent.
func (e *Engine) Close() error {
	return e.CloseContext(context.Background())
}

// CloseContext is Close bounded by ctx.
func (e *Engine) CloseContext(ctx context.Context) error {
	e.closed.Store(true)
	if err := e.sched.Shutdown(ctx); err != nil {
		return fmt.Errorf("Engine.Close: %w", err)
	}
	return nil
}
