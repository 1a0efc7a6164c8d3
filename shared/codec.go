package shared

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"

	xdr "github.com/nullstyle/go-xdr/xdr3"
)

const (
	// MaxChallengeSize is the largest encoded challenge prime in bytes.
	MaxChallengeSize = 32
	// MaxElementSize is the largest encoded group element in bytes. It bounds
	// the modulus to 8192 bits.
	MaxElementSize = 1024
)

// proofXDR is the XDR layout of a Proof. Integers are unsigned big-endian
// variable-length opaques; XDR has no 16-bit type, so the nonce travels as a
// uint32 and is range-checked on decode. The size tags must match the
// constants above.
type proofXDR struct {
	L     []byte `xdrmaxsize:"32"`
	Nonce uint32
	Pi1   []byte `xdrmaxsize:"1024"`
	Pi2   []byte `xdrmaxsize:"1024"`
	Y1    []byte `xdrmaxsize:"1024"`
	Y2    []byte `xdrmaxsize:"1024"`
	Q1    []byte `xdrmaxsize:"1024"`
	Q2    []byte `xdrmaxsize:"1024"`
}

func nonNilBytes(x *big.Int) []byte {
	if x == nil {
		return []byte{}
	}
	return x.Bytes()
}

// EncodeProof writes the XDR encoding of p to w.
func EncodeProof(w io.Writer, p *Proof) error {
	if p == nil {
		return errors.New("serialization failure: nil proof")
	}
	wire := proofXDR{
		L:     nonNilBytes(p.Challenge.L),
		Nonce: uint32(p.Challenge.Nonce),
		Pi1:   nonNilBytes(p.Pi1),
		Pi2:   nonNilBytes(p.Pi2),
		Y1:    nonNilBytes(p.Y1),
		Y2:    nonNilBytes(p.Y2),
		Q1:    nonNilBytes(p.Q1),
		Q2:    nonNilBytes(p.Q2),
	}
	if _, err := xdr.Marshal(w, &wire); err != nil {
		return fmt.Errorf("serialization failure: %w", err)
	}
	return nil
}

// DecodeProof reads an XDR encoded Proof from r.
func DecodeProof(r io.Reader) (*Proof, error) {
	var wire proofXDR
	if _, err := xdr.Unmarshal(r, &wire); err != nil {
		return nil, fmt.Errorf("deserialization failure: %w", err)
	}
	if wire.Nonce > 0xffff {
		return nil, &InputDomainError{Param: "nonce", Reason: fmt.Sprintf("exceeds 16 bits: %d", wire.Nonce)}
	}

	return &Proof{
		Challenge: Challenge{
			L:     new(big.Int).SetBytes(wire.L),
			Nonce: uint16(wire.Nonce),
		},
		Pi1: new(big.Int).SetBytes(wire.Pi1),
		Pi2: new(big.Int).SetBytes(wire.Pi2),
		Y1:  new(big.Int).SetBytes(wire.Y1),
		Y2:  new(big.Int).SetBytes(wire.Y2),
		Q1:  new(big.Int).SetBytes(wire.Q1),
		Q2:  new(big.Int).SetBytes(wire.Q2),
	}, nil
}

// MarshalBinary returns the XDR encoding of p.
func (p *Proof) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeProof(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes an XDR encoded Proof into p.
func (p *Proof) UnmarshalBinary(data []byte) error {
	dec, err := DecodeProof(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*p = *dec
	return nil
}
