// Package proving evaluates the delay function and produces a Wesolowski
// proof bound to the solver's identity.
package proving

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opensquare/vdf/config"
	"github.com/opensquare/vdf/group"
	"github.com/opensquare/vdf/internal/suite"
	"github.com/opensquare/vdf/shared"
)

// Prover is immutable after construction and safe for concurrent use.
type Prover struct {
	suite    *suite.Suite
	parallel bool
	logger   *zap.Logger
}

// NewProver returns a Prover for the public parameters in cfg.
func NewProver(cfg config.Config, opts ...OptionFunc) (*Prover, error) {
	options := &option{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	s, err := suite.New(cfg, options.logger, options.policy)
	if err != nil {
		return nil, err
	}

	parallel := cfg.ParallelChains
	if options.parallel != nil {
		parallel = *options.parallel
	}

	return &Prover{
		suite:    s,
		parallel: parallel,
		logger:   options.logger,
	}, nil
}

// Group returns the group the Prover operates in.
func (p *Prover) Group() *group.Group {
	return p.suite.Group
}

func (p *Prover) validate(t uint64, x *big.Int) error {
	if t == 0 {
		return &shared.InputDomainError{Param: "T", Reason: "must be at least 1"}
	}
	if t > p.suite.Config.MaxT {
		return &shared.InputDomainError{Param: "T", Reason: fmt.Sprintf("exceeds maximum %d", p.suite.Config.MaxT)}
	}
	if !p.suite.Group.IsNonTrivial(x) {
		return &shared.InputDomainError{Param: "x", Reason: "expected 1 < x < N"}
	}
	return nil
}

// both runs f on the two chains, concurrently if the Prover is configured to.
func (p *Prover) both(c1, c2 *chain, f func(*chain) error) error {
	if !p.parallel {
		if err := f(c1); err != nil {
			return err
		}
		return f(c2)
	}

	var eg errgroup.Group
	eg.Go(func() error { return f(c1) })
	eg.Go(func() error { return f(c2) })
	return eg.Wait()
}

// Evaluate computes y1 = x^(2^T), y2 = H(x, pk)^(2^T) and the proof that both
// were computed correctly.
func (p *Prover) Evaluate(t uint64, x *big.Int, pk common.Address) (*shared.Proof, error) {
	if err := p.validate(t, x); err != nil {
		return nil, err
	}

	grp := p.suite.Group
	x2, err := p.suite.Hasher.X2(x, pk)
	if err != nil {
		return nil, err
	}

	c1 := &chain{g: new(big.Int).Set(x)}
	c2 := &chain{g: x2}

	start := time.Now()
	err = p.both(c1, c2, func(c *chain) error {
		c.square(grp, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.logger.Debug("proving: evaluated chains",
		zap.Uint64("T", t),
		zap.Duration("duration", time.Since(start)),
	)

	ch, err := p.suite.Deriver.Derive(x, c1.y, x2, c2.y, pk)
	if err != nil {
		return nil, fmt.Errorf("deriving challenge: %w", err)
	}

	start = time.Now()
	err = p.both(c1, c2, func(c *chain) error {
		return c.prove(grp, ch.L, t)
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("proving: generated proof",
		zap.Uint64("T", t),
		zap.Uint16("nonce", ch.Nonce),
		zap.Duration("witness duration", time.Since(start)),
	)

	return &shared.Proof{
		Challenge: ch,
		Pi1:       c1.pi,
		Pi2:       c2.pi,
		Y1:        c1.y,
		Y2:        c2.y,
		Q1:        c1.q,
		Q2:        c2.q,
	}, nil
}
