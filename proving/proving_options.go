package proving

import (
	"errors"

	"go.uber.org/zap"

	"github.com/opensquare/vdf/primality"
)

type option struct {
	logger *zap.Logger
	// nil means config.Config.ParallelChains.
	parallel *bool
	// nil means the policy named by the config.
	policy primality.WitnessPolicy
}

type OptionFunc func(*option) error

// WithLogger sets the logger used by the Prover.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithParallelChains selects whether the two chains run on separate goroutines.
func WithParallelChains(parallel bool) OptionFunc {
	return func(o *option) error {
		o.parallel = &parallel
		return nil
	}
}

// WithWitnessPolicy overrides the witness policy of the primality oracle.
func WithWitnessPolicy(policy primality.WitnessPolicy) OptionFunc {
	return func(o *option) error {
		if policy == nil {
			return errors.New("`policy` must not be nil")
		}
		o.policy = policy
		return nil
	}
}
