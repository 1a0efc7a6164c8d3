// Package challenge derives the Fiat-Shamir prime l of a proof by a
// deterministic hash-to-prime nonce search.
package challenge

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/opensquare/vdf/config"
	"github.com/opensquare/vdf/hashing"
	"github.com/opensquare/vdf/shared"
)

// Tester decides whether a candidate is prime.
type Tester interface {
	IsProbablePrime(n *big.Int) bool
}

type option struct {
	window uint32
	logger *zap.Logger
}

func (o *option) validate() error {
	if o.window == 0 || o.window > config.MaxNonceWindow {
		return fmt.Errorf("invalid `window`; expected: 1-%d, given: %d", config.MaxNonceWindow, o.window)
	}
	return nil
}

// OptionFunc is a function that sets an option for a Deriver instance.
type OptionFunc func(*option) error

// WithNonceWindow sets the number of nonces tried before giving up.
func WithNonceWindow(window uint32) OptionFunc {
	return func(o *option) error {
		o.window = window
		return nil
	}
}

// WithLogger sets the logger used by the Deriver.
func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// Deriver searches the nonce window for the first prime candidate.
// It is immutable and safe for concurrent use.
type Deriver struct {
	hasher *hashing.Hasher
	tester Tester
	window uint32
	logger *zap.Logger
}

// NewDeriver returns a Deriver hashing with h and testing candidates with tester.
func NewDeriver(h *hashing.Hasher, tester Tester, opts ...OptionFunc) (*Deriver, error) {
	if h == nil {
		return nil, errors.New("`hasher` is required")
	}
	if tester == nil {
		return nil, errors.New("`tester` is required")
	}

	options := &option{
		window: config.DefaultNonceWindow,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	return &Deriver{
		hasher: h,
		tester: tester,
		window: options.window,
		logger: options.logger,
	}, nil
}

// Window is the number of nonces searched by Derive.
func (d *Deriver) Window() uint32 {
	return d.window
}

// Candidate returns the hash for nonce with its low bit forced to 1.
func (d *Deriver) Candidate(x, y1, x2, y2 *big.Int, nonce uint16, pk common.Address) (*big.Int, error) {
	c, err := d.hasher.Candidate(x, y1, x2, y2, nonce, pk)
	if err != nil {
		return nil, err
	}
	// A 256-bit digest that is even is at most 2^256-2, so this stays in range.
	if c.Bit(0) == 0 {
		c.Add(c, big.NewInt(1))
	}
	return c, nil
}

// Derive returns the challenge for the least nonce whose candidate is prime.
func (d *Deriver) Derive(x, y1, x2, y2 *big.Int, pk common.Address) (shared.Challenge, error) {
	for i := uint32(0); i < d.window; i++ {
		nonce := uint16(i)
		c, err := d.Candidate(x, y1, x2, y2, nonce, pk)
		if err != nil {
			return shared.Challenge{}, err
		}
		if d.tester.IsProbablePrime(c) {
			d.logger.Debug("challenge: found prime",
				zap.Uint16("nonce", nonce),
				zap.Int("bits", c.BitLen()),
			)
			return shared.Challenge{L: c, Nonce: nonce}, nil
		}
	}

	d.logger.Debug("challenge: nonce window exhausted", zap.Uint32("window", d.window))
	return shared.Challenge{}, fmt.Errorf("%w: %d nonces tried", shared.ErrNoPrimeFound, d.window)
}
