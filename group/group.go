// Package group implements arithmetic in the multiplicative group of integers
// modulo a fixed RSA modulus N.
//
// All operations return freshly allocated values and never modify their
// arguments. Reduction modulo N only happens where the method name says so;
// the *Exact variants operate on plain integers.
package group

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var (
	ErrElementTooLarge = errors.New("element does not fit the fixed encoding width")
	ErrNotInGroup      = errors.New("element is not in [0, N)")

	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Group is Z_N for a fixed modulus N. It is immutable and safe for concurrent use.
type Group struct {
	n       *big.Int
	byteLen int
}

// New returns the group for modulus n. The modulus is copied.
func New(n *big.Int) (*Group, error) {
	if n == nil {
		return nil, errors.New("modulus is nil")
	}
	if n.Bit(0) == 0 {
		return nil, fmt.Errorf("invalid modulus; expected: odd, given: %v", n)
	}
	if n.Cmp(big.NewInt(15)) < 0 {
		return nil, fmt.Errorf("invalid modulus; expected: >= 15, given: %v", n)
	}

	return &Group{
		n:       new(big.Int).Set(n),
		byteLen: (n.BitLen() + 7) / 8,
	}, nil
}

// Modulus returns a copy of N.
func (g *Group) Modulus() *big.Int {
	return new(big.Int).Set(g.n)
}

// ByteLen is the fixed width of an encoded element.
func (g *Group) ByteLen() int {
	return g.byteLen
}

// BitLen is the bit length of N.
func (g *Group) BitLen() int {
	return g.n.BitLen()
}

// Contains reports whether 0 <= x < N.
func (g *Group) Contains(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(g.n) < 0
}

// IsNonTrivial reports whether 1 < x < N.
func (g *Group) IsNonTrivial(x *big.Int) bool {
	return g.Contains(x) && x.Cmp(one) > 0
}

// Reduce returns x mod N.
func (g *Group) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, g.n)
}

// Exp returns x^e mod N for e >= 0.
func (g *Group) Exp(x, e *big.Int) *big.Int {
	return new(big.Int).Exp(x, e, g.n)
}

// Mul returns a*b mod N.
func (g *Group) Mul(a, b *big.Int) *big.Int {
	z := new(big.Int).Mul(a, b)
	return z.Mod(z, g.n)
}

// MulExact returns a*b without reduction.
func (g *Group) MulExact(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

// ExpExact returns x^e without reduction. The result has about e*bits(x) bits,
// so it is only usable for small exponents.
func (g *Group) ExpExact(x, e *big.Int) *big.Int {
	return new(big.Int).Exp(x, e, nil)
}

// DivMod returns the Euclidean quotient and remainder of a by N.
func (g *Group) DivMod(a *big.Int) (q, r *big.Int) {
	q, r = new(big.Int), new(big.Int)
	q.DivMod(a, g.n, r)
	return q, r
}

// Compose returns q*N + r without reduction.
func (g *Group) Compose(q, r *big.Int) *big.Int {
	z := new(big.Int).Mul(q, g.n)
	return z.Add(z, r)
}

// PowerOfTwo returns the exact integer 2^t.
func PowerOfTwo(t uint64) *big.Int {
	return new(big.Int).Lsh(one, uint(t))
}

// Encode returns the fixed-width big-endian encoding of a non-negative x.
func (g *Group) Encode(x *big.Int) ([]byte, error) {
	if x == nil || x.Sign() < 0 {
		return nil, ErrNotInGroup
	}
	if (x.BitLen()+7)/8 > g.byteLen {
		return nil, fmt.Errorf("%w: %d bytes, width %d", ErrElementTooLarge, (x.BitLen()+7)/8, g.byteLen)
	}
	buf := make([]byte, g.byteLen)
	return x.FillBytes(buf), nil
}

// Decode parses a fixed-width big-endian element.
func (g *Group) Decode(b []byte) (*big.Int, error) {
	if len(b) != g.byteLen {
		return nil, fmt.Errorf("invalid element length; expected: %d, given: %d", g.byteLen, len(b))
	}
	return new(big.Int).SetBytes(b), nil
}

// Sample returns a uniformly random element in (1, N) read from r.
// A nil reader defaults to crypto/rand.
func (g *Group) Sample(r io.Reader) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	// [0, N-2) shifted to [2, N).
	bound := new(big.Int).Sub(g.n, two)
	x, err := rand.Int(r, bound)
	if err != nil {
		return nil, fmt.Errorf("sampling group element: %w", err)
	}
	return x.Add(x, two), nil
}
