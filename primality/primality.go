// Package primality implements the Miller-Rabin compositeness test used to
// validate Fiat-Shamir challenges.
package primality

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/opensquare/vdf/config"
)

var smallPrimes = []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

var (
	bigOne   = big.NewInt(1)
	bigThree = big.NewInt(3)
)

type option struct {
	rounds uint
	policy WitnessPolicy
}

func (o *option) validate() error {
	if o.rounds < config.MinMillerRabinRounds || o.rounds > config.MaxMillerRabinRounds {
		return fmt.Errorf("invalid `rounds`; expected: %d-%d, given: %d",
			config.MinMillerRabinRounds, config.MaxMillerRabinRounds, o.rounds)
	}
	if o.policy == nil {
		return errors.New("`policy` is required")
	}
	if t, ok := o.policy.(FixedTable); ok && len(t.Bases) == 0 {
		return errors.New("invalid `policy`; expected: non-empty base table")
	}
	return nil
}

// OptionFunc is a function that sets an option for an Oracle instance.
type OptionFunc func(*option) error

// WithRounds sets the number of Miller-Rabin rounds.
func WithRounds(rounds uint) OptionFunc {
	return func(o *option) error {
		o.rounds = rounds
		return nil
	}
}

// WithWitnessPolicy sets the policy used to pick the base of each round.
func WithWitnessPolicy(policy WitnessPolicy) OptionFunc {
	return func(o *option) error {
		if policy == nil {
			return errors.New("`policy` must not be nil")
		}
		o.policy = policy
		return nil
	}
}

// Oracle is a Miller-Rabin primality oracle. It is immutable and safe for
// concurrent use.
type Oracle struct {
	rounds int
	policy WitnessPolicy
}

// New returns an Oracle. Without options it runs config.DefaultMillerRabinRounds
// rounds over the seeded witness policy.
func New(opts ...OptionFunc) (*Oracle, error) {
	options := &option{
		rounds: config.DefaultMillerRabinRounds,
		policy: Seeded{Seed: []byte(config.DefaultWitnessSeed)},
	}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	return &Oracle{
		rounds: int(options.rounds),
		policy: options.policy,
	}, nil
}

// Rounds returns the configured number of Miller-Rabin rounds.
func (o *Oracle) Rounds() int {
	return o.rounds
}

// Policy returns the witness policy.
func (o *Oracle) Policy() WitnessPolicy {
	return o.policy
}

// IsProbablePrime reports whether n is probably prime. Values below 3 and even
// values, 2 included, are always rejected.
func (o *Oracle) IsProbablePrime(n *big.Int) bool {
	if n == nil || n.Cmp(bigThree) < 0 || n.Bit(0) == 0 {
		return false
	}

	var rem big.Int
	for _, p := range smallPrimes {
		bp := big.NewInt(p)
		if rem.Mod(n, bp).Sign() == 0 {
			return n.Cmp(bp) == 0
		}
	}

	nm1 := new(big.Int).Sub(n, bigOne)
	s := nm1.TrailingZeroBits()
	d := new(big.Int).Rsh(nm1, s)

	for i := 0; i < o.rounds; i++ {
		a := o.policy.Witness(n, i)
		a.Mod(a, n)
		// 0, 1 and -1 reveal nothing about n.
		if a.Cmp(bigOne) <= 0 || a.Cmp(nm1) == 0 {
			continue
		}
		if !strongProbablePrime(n, nm1, d, s, a) {
			return false
		}
	}
	return true
}

// strongProbablePrime runs a single Miller-Rabin round for n - 1 = d * 2^s.
func strongProbablePrime(n, nm1, d *big.Int, s uint, a *big.Int) bool {
	x := new(big.Int).Exp(a, d, n)
	if x.Cmp(bigOne) == 0 || x.Cmp(nm1) == 0 {
		return true
	}
	for j := uint(1); j < s; j++ {
		x.Mul(x, x).Mod(x, n)
		if x.Cmp(nm1) == 0 {
			return true
		}
		if x.Cmp(bigOne) == 0 {
			return false
		}
	}
	return false
}

// FromConfig builds the oracle described by cfg.
func FromConfig(cfg config.Config) (*Oracle, error) {
	policy, err := PolicyFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(WithRounds(cfg.MillerRabinRounds), WithWitnessPolicy(policy))
}
