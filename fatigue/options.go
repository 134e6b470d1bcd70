// SPDX-License-Identifier: MIT

// Package fatigue: functional configuration for Scheduler and Worker.
//
// Design goals:
//   - Documented defaults below are the single source of truth.
//   - WithX constructors panic only on nonsensical values (programmer error).
//   - Options are resolved once, in gatherOptions.

package fatigue

import (
	"math"

	"go.uber.org/zap"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMinFactor is the inclusive lower bound of a worker's speed factor.
	DefaultMinFactor = 0.5

	// DefaultMaxFactor is the exclusive upper bound of a worker's speed factor.
	DefaultMaxFactor = 1.5
)

// ---------- Internal panic messages ----------

const (
	panicFactorRangeInvalid = "fatigue: WithFactorRange: need finite 0 < min < max"
	panicNilLogger          = "fatigue: WithLogger: logger must not be nil"
)

// Option mutates internal options.
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	logger    *zap.Logger // DefaultLogger: zap.NewNop()
	seed      int64       // meaningful only when seeded
	seeded    bool        // false ⇒ time-based seed
	minFactor float64     // DefaultMinFactor
	maxFactor float64     // DefaultMaxFactor
}

// WithLogger routes worker and scheduler diagnostics to l.
// Panics if l is nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *options) { o.logger = l }
}

// WithSeed makes factor draws reproducible. Without it the seed is time-based.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithFactorRange overrides the [min, max) interval factors are drawn from.
// Panics unless 0 < min < max and both are finite.
func WithFactorRange(lo, hi float64) Option {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo <= 0 || hi <= lo {
		panic(panicFactorRangeInvalid)
	}
	return func(o *options) {
		o.minFactor = lo
		o.maxFactor = hi
	}
}

// defaultOptions returns the documented defaults.
func defaultOptions() options {
	return options{
		logger:    zap.NewNop(),
		minFactor: DefaultMinFactor,
		maxFactor: DefaultMaxFactor,
	}
}

// gatherOptions applies opts over the defaults; nil options are skipped.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
