// SPDX-License-Identifier: MIT

package engine

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lae/fatigue"
)

const panicNilLogger = "engine: WithLogger(nil)"

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger *zap.Logger
	pool   []fatigue.Option
}

// WithLogger sets the logger used by the engine and its worker pool.
// Default: zap.NewNop(). Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}
	return func(o *options) {
		o.logger = l
		o.pool = append(o.pool, fatigue.WithLogger(l))
	}
}

// WithSeed makes worker fatigue factors reproducible.
// Default: time-based seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.pool = append(o.pool, fatigue.WithSeed(seed))
	}
}

// WithFactorRange bounds the drawn fatigue factors to [lo, hi).
// Default: [fatigue.DefaultMinFactor, fatigue.DefaultMaxFactor).
// Panics under the same conditions as fatigue.WithFactorRange.
func WithFactorRange(lo, hi float64) Option {
	f := fatigue.WithFactorRange(lo, hi)
	return func(o *options) {
		o.pool = append(o.pool, f)
	}
}

func gatherOptions(opts ...Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
