// Package suite assembles the group, hasher, primality oracle and challenge
// deriver shared by the prover and the verifier.
package suite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/opensquare/vdf/challenge"
	"github.com/opensquare/vdf/config"
	"github.com/opensquare/vdf/group"
	"github.com/opensquare/vdf/hashing"
	"github.com/opensquare/vdf/primality"
)

type Suite struct {
	Config  config.Config
	Group   *group.Group
	Hasher  *hashing.Hasher
	Oracle  *primality.Oracle
	Deriver *challenge.Deriver
}

// New validates cfg and builds a Suite from it. A nil policy selects the
// witness policy named by cfg.
func New(cfg config.Config, logger *zap.Logger, policy primality.WitnessPolicy) (*Suite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	n, err := cfg.ParseModulus()
	if err != nil {
		return nil, err
	}
	grp, err := group.New(n)
	if err != nil {
		return nil, err
	}
	h, err := hashing.New(grp, cfg.DST)
	if err != nil {
		return nil, err
	}

	if policy == nil {
		policy, err = primality.PolicyFromConfig(cfg)
		if err != nil {
			return nil, err
		}
	}
	oracle, err := primality.New(
		primality.WithRounds(cfg.MillerRabinRounds),
		primality.WithWitnessPolicy(policy),
	)
	if err != nil {
		return nil, err
	}

	deriver, err := challenge.NewDeriver(h, oracle,
		challenge.WithNonceWindow(cfg.NonceWindow),
		challenge.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Suite{
		Config:  cfg,
		Group:   grp,
		Hasher:  h,
		Oracle:  oracle,
		Deriver: deriver,
	}, nil
}
