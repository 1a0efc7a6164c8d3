package verifying

import (
	"errors"

	"go.uber.org/zap"

	"github.com/opensquare/vdf/primality"
)

type option struct {
	logger   *zap.Logger
	identity Identity
	// nil means the policy named by the config.
	policy primality.WitnessPolicy
}

func defaultOpts() *option {
	return &option{
		logger:   zap.NewNop(),
		identity: QuotientIdentity{},
	}
}

type OptionFunc func(*option) error

// WithLogger sets the logger used by the Verifier.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithIdentity selects the identity each chain is checked with.
func WithIdentity(identity Identity) OptionFunc {
	return func(o *option) error {
		if identity == nil {
			return errors.New("`identity` must not be nil")
		}
		o.identity = identity
		return nil
	}
}

// WithWitnessPolicy overrides the witness policy of the primality oracle. It
// must match the policy the prover used, or valid proofs may be rejected.
func WithWitnessPolicy(policy primality.WitnessPolicy) OptionFunc {
	return func(o *option) error {
		if policy == nil {
			return errors.New("`policy` must not be nil")
		}
		o.policy = policy
		return nil
	}
}
