package proving

import (
	"fmt"
	"math/big"

	"github.com/opensquare/vdf/group"
)

// chain is one base g of a proof together with everything derived from it.
type chain struct {
	g  *big.Int
	y  *big.Int
	pi *big.Int
	q  *big.Int
}

// square computes y = g^(2^t) mod N by t sequential squarings.
func (c *chain) square(grp *group.Group, t uint64) {
	n := grp.Modulus()
	y := new(big.Int).Set(c.g)
	for i := uint64(0); i < t; i++ {
		y.Mul(y, y)
		y.Mod(y, n)
	}
	c.y = y
}

// prove runs the witness recurrence for challenge l. On return
// c.pi = g^floor(2^t / l) mod N and c.q is the quotient certificate of
// (pi^l mod N) * (g^r mod N) with r = 2^t mod l.
func (c *chain) prove(grp *group.Group, l *big.Int, t uint64) error {
	n := grp.Modulus()
	r := big.NewInt(1)
	pi := big.NewInt(1)
	for i := uint64(0); i < t; i++ {
		r.Lsh(r, 1)
		carry := r.Cmp(l) >= 0
		if carry {
			r.Sub(r, l)
		}
		pi.Mul(pi, pi)
		if carry {
			pi.Mul(pi, c.g)
		}
		pi.Mod(pi, n)
	}
	c.pi = pi

	ac := grp.MulExact(grp.Exp(pi, l), grp.Exp(c.g, r))
	q, rem := grp.DivMod(ac)
	if rem.Cmp(c.y) != 0 {
		return fmt.Errorf("quotient certificate does not reproduce y (g=%v, t=%d)", c.g, t)
	}
	c.q = q
	return nil
}
