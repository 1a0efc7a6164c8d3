package verifying

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/opensquare/vdf/group"
)

var two = big.NewInt(2)

// Identity checks a single chain of a proof: that pi proves y = g^(2^t) mod N
// for challenge l. Implementations may assume l is an odd prime and that
// g, y, pi and q are in [0, N).
type Identity interface {
	Check(grp *group.Group, g, y, pi, q, l *big.Int, t uint64) error
	Name() string
}

// QuotientIdentity accepts iff (pi^l mod N) * (g^r mod N) = q*N + y holds over
// the integers, with r = 2^t mod l. Its cost does not depend on t beyond the
// O(log t) computation of r.
type QuotientIdentity struct{}

func (QuotientIdentity) Check(grp *group.Group, g, y, pi, q, l *big.Int, t uint64) error {
	r := new(big.Int).Exp(two, new(big.Int).SetUint64(t), l)

	lhs := grp.MulExact(grp.Exp(pi, l), grp.Exp(g, r))
	rhs := grp.Compose(q, y)
	if lhs.Cmp(rhs) != 0 {
		return errors.New("quotient identity does not hold")
	}
	return nil
}

func (QuotientIdentity) Name() string {
	return "quotient"
}

// ReferenceIdentity materializes 2^t and recomputes y from g. It ignores the
// quotient certificate and refuses t above MaxT.
type ReferenceIdentity struct {
	MaxT uint64
}

func (id ReferenceIdentity) Check(grp *group.Group, g, y, pi, _, l *big.Int, t uint64) error {
	if t > id.MaxT {
		return fmt.Errorf("T = %d exceeds reference limit %d", t, id.MaxT)
	}

	e := group.PowerOfTwo(t)
	if grp.Exp(g, e).Cmp(y) != 0 {
		return errors.New("y is not g^(2^T)")
	}

	r := new(big.Int).Mod(e, l)
	if grp.Mul(grp.Exp(pi, l), grp.Exp(g, r)).Cmp(y) != 0 {
		return errors.New("pi^l * g^r does not reproduce y")
	}
	return nil
}

func (id ReferenceIdentity) Name() string {
	return fmt.Sprintf("reference(%d)", id.MaxT)
}
