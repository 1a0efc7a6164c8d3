// Package hashing derives the identity-bound second base and the Fiat-Shamir
// candidates from domain separated Keccak-256 digests.
package hashing

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/opensquare/vdf/group"
)

// Size is the digest size in bytes.
const Size = 32

// Hasher is immutable and safe for concurrent use.
type Hasher struct {
	grp *group.Group
	dst []byte
}

// New returns a Hasher for group grp and domain separation tag dst.
func New(grp *group.Group, dst string) (*Hasher, error) {
	if grp == nil {
		return nil, errors.New("`group` is required")
	}
	if dst == "" {
		return nil, errors.New("`dst` must not be empty")
	}

	prefixed := make([]byte, 4+len(dst))
	binary.BigEndian.PutUint32(prefixed, uint32(len(dst)))
	copy(prefixed[4:], dst)

	return &Hasher{grp: grp, dst: prefixed}, nil
}

func (h *Hasher) Group() *group.Group {
	return h.grp
}

func (h *Hasher) begin() hash.Hash {
	d := sha3.NewLegacyKeccak256()
	d.Write(h.dst)
	return d
}

func (h *Hasher) writeElements(d hash.Hash, names []string, xs ...*big.Int) error {
	for i, x := range xs {
		enc, err := h.grp.Encode(x)
		if err != nil {
			return fmt.Errorf("encode `%s`: %w", names[i], err)
		}
		d.Write(enc)
	}
	return nil
}

// X2 returns Keccak(dst || enc(x) || pk) mod N.
func (h *Hasher) X2(x *big.Int, pk common.Address) (*big.Int, error) {
	d := h.begin()
	if err := h.writeElements(d, []string{"x"}, x); err != nil {
		return nil, err
	}
	d.Write(pk.Bytes())

	return h.grp.Reduce(new(big.Int).SetBytes(d.Sum(nil))), nil
}

var candidateFields = []string{"x", "y1", "x2", "y2"}

// Candidate returns Keccak(dst || enc(x) || enc(y1) || enc(x2) || enc(y2) || uint256(nonce) || pk)
// as an unsigned integer. Every element must lie in [0, N).
func (h *Hasher) Candidate(x, y1, x2, y2 *big.Int, nonce uint16, pk common.Address) (*big.Int, error) {
	d := h.begin()
	if err := h.writeElements(d, candidateFields, x, y1, x2, y2); err != nil {
		return nil, err
	}
	word := uint256.NewInt(uint64(nonce)).Bytes32()
	d.Write(word[:])
	d.Write(pk.Bytes())

	return new(big.Int).SetBytes(d.Sum(nil)), nil
}
