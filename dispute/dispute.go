// Package dispute computes the intermediate digests a marketplace stores for a
// submitted proof, so that a challenger can later point at the half of the
// proof that is wrong without resubmitting all of it.
package dispute

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/opensquare/vdf/group"
	"github.com/opensquare/vdf/shared"
)

// Part names a digest of a proof.
type Part int

const (
	PartOutputs Part = iota
	PartChain1
	PartChain2
)

func (p Part) String() string {
	switch p {
	case PartOutputs:
		return "outputs"
	case PartChain1:
		return "chain1"
	case PartChain2:
		return "chain2"
	default:
		return fmt.Sprintf("part(%d)", int(p))
	}
}

// Digests are the intermediate hashes h1, h2 and h3 of a proof.
type Digests struct {
	Outputs common.Hash `json:"h1"`
	Chain1  common.Hash `json:"h2"`
	Chain2  common.Hash `json:"h3"`
}

func (d Digests) get(p Part) common.Hash {
	switch p {
	case PartChain1:
		return d.Chain1
	case PartChain2:
		return d.Chain2
	default:
		return d.Outputs
	}
}

// Digester hashes fixed-width encodings of group elements. Unlike the
// challenge hashes no domain separation tag is used.
type Digester struct {
	grp *group.Group
}

func New(grp *group.Group) (*Digester, error) {
	if grp == nil {
		return nil, errors.New("`group` is required")
	}
	return &Digester{grp: grp}, nil
}

func (d *Digester) hash(names []string, xs ...*big.Int) (common.Hash, error) {
	parts := make([][]byte, len(xs))
	for i, x := range xs {
		enc, err := d.grp.Encode(x)
		if err != nil {
			return common.Hash{}, fmt.Errorf("encode `%s`: %w", names[i], err)
		}
		parts[i] = enc
	}
	return crypto.Keccak256Hash(parts...), nil
}

// OutputsHash returns h1 = Keccak(enc(y1) || enc(y2)).
func (d *Digester) OutputsHash(y1, y2 *big.Int) (common.Hash, error) {
	return d.hash([]string{"y1", "y2"}, y1, y2)
}

// ChainHash returns Keccak(enc(y) || enc(pi) || enc(q)), which is h2 for the
// first chain and h3 for the second.
func (d *Digester) ChainHash(y, pi, q *big.Int) (common.Hash, error) {
	return d.hash([]string{"y", "pi", "q"}, y, pi, q)
}

// Digests returns h1, h2 and h3 of proof.
func (d *Digester) Digests(proof *shared.Proof) (Digests, error) {
	if !proof.Complete() {
		return Digests{}, errors.New("incomplete proof")
	}

	var (
		out Digests
		err error
	)
	if out.Outputs, err = d.OutputsHash(proof.Y1, proof.Y2); err != nil {
		return Digests{}, err
	}
	if out.Chain1, err = d.ChainHash(proof.Y1, proof.Pi1, proof.Q1); err != nil {
		return Digests{}, err
	}
	if out.Chain2, err = d.ChainHash(proof.Y2, proof.Pi2, proof.Q2); err != nil {
		return Digests{}, err
	}
	return out, nil
}

// Mismatch returns the parts of claimed that disagree with the digests of proof.
func (d *Digester) Mismatch(claimed Digests, proof *shared.Proof) ([]Part, error) {
	actual, err := d.Digests(proof)
	if err != nil {
		return nil, err
	}

	var parts []Part
	for _, p := range []Part{PartOutputs, PartChain1, PartChain2} {
		if claimed.get(p) != actual.get(p) {
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// AskingHash returns Keccak(uint256(a) || uint256(r)), the commitment to an
// asking amount a under blinding r.
func AskingHash(a, r *uint256.Int) common.Hash {
	aw, rw := a.Bytes32(), r.Bytes32()
	return crypto.Keccak256Hash(aw[:], rw[:])
}
