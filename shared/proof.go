package shared

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Challenge is the Fiat-Shamir prime l together with the nonce that produced it.
type Challenge struct {
	L     *big.Int
	Nonce uint16
}

// Proof is a Wesolowski proof for two chains: the puzzle chain over x and the
// identity chain over x2 = H(x, pk).
type Proof struct {
	Challenge Challenge

	Pi1 *big.Int
	Pi2 *big.Int
	Y1  *big.Int
	Y2  *big.Int
	Q1  *big.Int
	Q2  *big.Int
}

func cloneInt(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set(x)
}

// Clone returns a deep copy of p, or nil if p is nil.
func (p *Proof) Clone() *Proof {
	if p == nil {
		return nil
	}
	return &Proof{
		Challenge: Challenge{
			L:     cloneInt(p.Challenge.L),
			Nonce: p.Challenge.Nonce,
		},
		Pi1: cloneInt(p.Pi1),
		Pi2: cloneInt(p.Pi2),
		Y1:  cloneInt(p.Y1),
		Y2:  cloneInt(p.Y2),
		Q1:  cloneInt(p.Q1),
		Q2:  cloneInt(p.Q2),
	}
}

// Complete reports whether every field is set.
func (p *Proof) Complete() bool {
	return p != nil && p.Challenge.L != nil &&
		p.Pi1 != nil && p.Pi2 != nil &&
		p.Y1 != nil && p.Y2 != nil &&
		p.Q1 != nil && p.Q2 != nil
}

type challengeJSON struct {
	L     hexutil.Bytes `json:"l"`
	Nonce uint16        `json:"nonce"`
}

type proofJSON struct {
	Challenge challengeJSON `json:"challenge"`
	Pi1       hexutil.Bytes `json:"pi1"`
	Pi2       hexutil.Bytes `json:"pi2"`
	Y1        hexutil.Bytes `json:"y1"`
	Y2        hexutil.Bytes `json:"y2"`
	Q1        hexutil.Bytes `json:"q1"`
	Q2        hexutil.Bytes `json:"q2"`
}

func intBytes(x *big.Int) hexutil.Bytes {
	if x == nil {
		return nil
	}
	return x.Bytes()
}

func bytesInt(b hexutil.Bytes) *big.Int {
	return new(big.Int).SetBytes(b)
}

// MarshalJSON encodes big integers as 0x-prefixed big-endian hex strings.
func (p Proof) MarshalJSON() ([]byte, error) {
	return json.Marshal(proofJSON{
		Challenge: challengeJSON{
			L:     intBytes(p.Challenge.L),
			Nonce: p.Challenge.Nonce,
		},
		Pi1: intBytes(p.Pi1),
		Pi2: intBytes(p.Pi2),
		Y1:  intBytes(p.Y1),
		Y2:  intBytes(p.Y2),
		Q1:  intBytes(p.Q1),
		Q2:  intBytes(p.Q2),
	})
}

func (p *Proof) UnmarshalJSON(data []byte) error {
	var dec proofJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}
	*p = Proof{
		Challenge: Challenge{
			L:     bytesInt(dec.Challenge.L),
			Nonce: dec.Challenge.Nonce,
		},
		Pi1: bytesInt(dec.Pi1),
		Pi2: bytesInt(dec.Pi2),
		Y1:  bytesInt(dec.Y1),
		Y2:  bytesInt(dec.Y2),
		Q1:  bytesInt(dec.Q1),
		Q2:  bytesInt(dec.Q2),
	}
	return nil
}
