// SPDX-License-Identifier: MIT

// Package logging builds the zap logger used by the lae command.
// Library packages never build their own logger; they accept one through
// options and default to zap.NewNop().
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger flavour.
type Options struct {
	Level       string   // debug, info, warn, error; empty means info
	Development bool     // console encoder instead of JSON
	OutputPaths []string // default stderr
}

// New returns a logger configured from o.
// Errors: an unknown level, or an unopenable output path.
func New(o Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if o.Development {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl := zapcore.InfoLevel
	if o.Level != "" {
		var err error
		if lvl, err = zapcore.ParseLevel(o.Level); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	if len(o.OutputPaths) > 0 {
		cfg.OutputPaths = o.OutputPaths
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return l, nil
}
