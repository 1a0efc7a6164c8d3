// Package verifying checks proofs produced by package proving.
package verifying

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/opensquare/vdf/config"
	"github.com/opensquare/vdf/internal/suite"
	"github.com/opensquare/vdf/shared"
)

// Verifier is immutable after construction and safe for concurrent use.
type Verifier struct {
	suite    *suite.Suite
	identity Identity
	logger   *zap.Logger
}

// NewVerifier returns a Verifier for the public parameters in cfg.
func NewVerifier(cfg config.Config, opts ...OptionFunc) (*Verifier, error) {
	options := defaultOpts()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	s, err := suite.New(cfg, options.logger, options.policy)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		suite:    s,
		identity: options.identity,
		logger:   options.logger,
	}, nil
}

// Identity returns the identity chains are checked with.
func (v *Verifier) Identity() Identity {
	return v.identity
}

// Verify reports whether proof shows that y1 = x^(2^T) and y2 = H(x, pk)^(2^T).
func (v *Verifier) Verify(x *big.Int, t uint64, proof *shared.Proof, pk common.Address) bool {
	return v.Check(x, t, proof, pk) == nil
}

func rejected(step, format string, args ...any) error {
	return &shared.VerificationError{Step: step, Reason: fmt.Sprintf(format, args...)}
}

func (v *Verifier) checkStructure(x *big.Int, t uint64, proof *shared.Proof) error {
	grp := v.suite.Group
	if !proof.Complete() {
		return rejected(shared.StepStructure, "missing fields")
	}
	if t == 0 || t > v.suite.Config.MaxT {
		return rejected(shared.StepStructure, "T = %d out of range [1, %d]", t, v.suite.Config.MaxT)
	}
	if !grp.IsNonTrivial(x) {
		return rejected(shared.StepStructure, "x out of range (1, N)")
	}

	fields := []struct {
		name  string
		value *big.Int
	}{
		{"y1", proof.Y1}, {"y2", proof.Y2},
		{"pi1", proof.Pi1}, {"pi2", proof.Pi2},
		{"q1", proof.Q1}, {"q2", proof.Q2},
	}
	for _, f := range fields {
		if !grp.Contains(f.value) {
			return rejected(shared.StepStructure, "%s out of range [0, N)", f.name)
		}
	}
	return nil
}

// Check is like Verify but returns a *shared.VerificationError naming the
// first failed step.
func (v *Verifier) Check(x *big.Int, t uint64, proof *shared.Proof, pk common.Address) error {
	err := v.check(x, t, proof, pk)
	if err != nil {
		v.logger.Debug("verifying: proof rejected", zap.Uint64("T", t), zap.Error(err))
	}
	return err
}

func (v *Verifier) check(x *big.Int, t uint64, proof *shared.Proof, pk common.Address) error {
	if err := v.checkStructure(x, t, proof); err != nil {
		return err
	}

	x2, err := v.suite.Hasher.X2(x, pk)
	if err != nil {
		return rejected(shared.StepChallenge, "hashing x2: %v", err)
	}

	l, err := v.suite.Deriver.Candidate(x, proof.Y1, x2, proof.Y2, proof.Challenge.Nonce, pk)
	if err != nil {
		return rejected(shared.StepChallenge, "hashing candidate: %v", err)
	}
	if l.Cmp(proof.Challenge.L) != 0 {
		return rejected(shared.StepChallenge, "l does not match nonce %d", proof.Challenge.Nonce)
	}
	if !v.suite.Oracle.IsProbablePrime(l) {
		return rejected(shared.StepPrimality, "l is not prime")
	}

	grp := v.suite.Group
	if err := v.identity.Check(grp, x, proof.Y1, proof.Pi1, proof.Q1, l, t); err != nil {
		return rejected(shared.StepChain1, "%s: %v", v.identity.Name(), err)
	}
	if err := v.identity.Check(grp, x2, proof.Y2, proof.Pi2, proof.Q2, l, t); err != nil {
		return rejected(shared.StepChain2, "%s: %v", v.identity.Name(), err)
	}
	return nil
}
