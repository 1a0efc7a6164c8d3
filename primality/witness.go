package primality

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/spacemeshos/sha256-simd"

	"github.com/opensquare/vdf/config"
)

// WitnessPolicy selects the Miller-Rabin base for every round.
// Implementations must be deterministic: the prover and the verifier have to
// reach the same verdict for the same candidate.
type WitnessPolicy interface {
	// Witness returns the base for round i when testing n. n is odd and larger
	// than every prime in the trial division table.
	Witness(n *big.Int, i int) *big.Int
	Name() string
}

// FixedBase uses the same base in every round.
//
// Repeating a single public base adds nothing after the first round, and a
// composite that is a strong pseudoprime to that base passes all of them
// (e.g. 172947529 for base 10). Prefer Seeded.
type FixedBase struct {
	Base uint64
}

func (p FixedBase) Witness(*big.Int, int) *big.Int {
	return new(big.Int).SetUint64(p.Base)
}

func (p FixedBase) Name() string {
	return fmt.Sprintf("%s(%d)", config.WitnessPolicyFixed, p.Base)
}

// FixedTable cycles through a table of bases.
type FixedTable struct {
	Bases []uint64
}

// DefaultTable holds the first fifteen primes.
var DefaultTable = FixedTable{Bases: []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}}

func (p FixedTable) Witness(_ *big.Int, i int) *big.Int {
	return new(big.Int).SetUint64(p.Bases[i%len(p.Bases)])
}

func (p FixedTable) Name() string {
	return config.WitnessPolicyTable
}

// Seeded derives the base of round i as 2 + (SHA-256(seed || n || i) mod (n-3)),
// so every candidate and every round gets its own witness in [2, n-2].
type Seeded struct {
	Seed []byte
}

func (p Seeded) Witness(n *big.Int, i int) *big.Int {
	var round [4]byte
	binary.BigEndian.PutUint32(round[:], uint32(i))

	h := sha256.New()
	h.Write(p.Seed)
	h.Write(n.Bytes())
	h.Write(round[:])

	a := new(big.Int).SetBytes(h.Sum(nil))
	a.Mod(a, new(big.Int).Sub(n, big.NewInt(3)))
	return a.Add(a, big.NewInt(2))
}

func (p Seeded) Name() string {
	return config.WitnessPolicySeeded
}

// PolicyFromConfig returns the witness policy named by cfg.
func PolicyFromConfig(cfg config.Config) (WitnessPolicy, error) {
	switch cfg.WitnessPolicy {
	case config.WitnessPolicySeeded:
		return Seeded{Seed: []byte(cfg.WitnessSeed)}, nil
	case config.WitnessPolicyTable:
		return DefaultTable, nil
	case config.WitnessPolicyFixed:
		return FixedBase{Base: cfg.WitnessBase}, nil
	default:
		return nil, fmt.Errorf("unknown witness policy %q", cfg.WitnessPolicy)
	}
}
