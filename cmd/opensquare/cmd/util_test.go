package cmd

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opensquare/vdf/shared"
)

func TestParseInt(t *testing.T) {
	r := require.New(t)

	x, err := parseInt("x", "0x10")
	r.NoError(err)
	r.Equal(int64(16), x.Int64())

	x, err = parseInt("x", "12345")
	r.NoError(err)
	r.Equal(int64(12345), x.Int64())

	_, err = parseInt("x", "")
	r.ErrorContains(err, "--x is required")
	_, err = parseInt("x", "0xzz")
	r.Error(err)
}

func TestParseAddress(t *testing.T) {
	r := require.New(t)

	pk, err := parseAddress("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4")
	r.NoError(err)
	r.Equal("0x5B38Da6a701c568545dCfcB03FcB875f56beddC4", pk.Hex())

	_, err = parseAddress("0x1234")
	r.Error(err)
}

func TestProofFiles(t *testing.T) {
	proof := &shared.Proof{
		Challenge: shared.Challenge{L: big.NewInt(1000003), Nonce: 3},
		Pi1:       big.NewInt(1),
		Pi2:       big.NewInt(2),
		Y1:        big.NewInt(3),
		Y2:        big.NewInt(4),
		Q1:        big.NewInt(5),
		Q2:        big.NewInt(6),
	}

	for _, format := range []string{formatJSON, formatXDR} {
		t.Run(format, func(t *testing.T) {
			r := require.New(t)
			path := filepath.Join(t.TempDir(), "proof."+format)

			data, err := encodeProof(proof, format)
			r.NoError(err)
			r.NoError(writeOutput(path, data))

			got, err := readProof(path, format)
			r.NoError(err)
			r.Equal(proof.Challenge.Nonce, got.Challenge.Nonce)
			r.Zero(proof.Challenge.L.Cmp(got.Challenge.L))
			r.Zero(proof.Q2.Cmp(got.Q2))
		})
	}

	_, err := encodeProof(proof, "yaml")
	require.Error(t, err)
	_, err = decodeProof([]byte("{}"), "yaml")
	require.Error(t, err)
	_, err = readProof(filepath.Join(t.TempDir(), "missing"), formatJSON)
	require.Error(t, err)
}
