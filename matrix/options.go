// SPDX-License-Identifier: MIT
// Package matrix - functional options for the numeric policy.
//
// Purpose:
//   - One place for the defaults every constructor and comparison shares.
//   - Options never fail; invalid tolerances are reported by AllClose itself.

package matrix

const (
	// DefaultValidateNaNInf rejects NaN/±Inf on ingestion and in Set.
	DefaultValidateNaNInf = true

	// DefaultRTol and DefaultATol are the tolerances `lae --verify` accepts.
	DefaultRTol = 1e-9
	DefaultATol = 1e-9
)

// Option mutates Options.
type Option func(*Options)

// Options holds the numeric policy of a Dense.
type Options struct {
	ValidateNaNInf bool // DefaultValidateNaNInf
}

// WithValidateNaNInf enables NaN/Inf rejection (default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.ValidateNaNInf = true }
}

// WithNoValidateNaNInf lets NaN/Inf through ingestion and Set.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.ValidateNaNInf = false }
}

// gatherOptions applies opts over the defaults; nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{ValidateNaNInf: DefaultValidateNaNInf}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
