package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/natefinch/atomic"
	"github.com/spacemeshos/smutil"

	"github.com/opensquare/vdf/shared"
)

const (
	formatJSON = "json"
	formatXDR  = "xdr"

	stdio = "-"
)

func parseInt(name, s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("--%s is required", name)
	}
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid --%s: %q is not an integer", name, s)
	}
	return x, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid --pk: %q is not a 20-byte hex address", s)
	}
	return common.HexToAddress(s), nil
}

func encodeProof(proof *shared.Proof, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(proof, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case formatXDR:
		return proof.MarshalBinary()
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func decodeProof(data []byte, format string) (*shared.Proof, error) {
	proof := &shared.Proof{}
	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, proof); err != nil {
			return nil, fmt.Errorf("failed to parse proof: %w", err)
		}
	case formatXDR:
		if err := proof.UnmarshalBinary(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return proof, nil
}

// writeOutput writes data to path atomically, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == stdio {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := atomic.WriteFile(smutil.GetCanonicalPath(path), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	return nil
}

// readInput reads path, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(smutil.GetCanonicalPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", path, err)
	}
	return data, nil
}

func readProof(path, format string) (*shared.Proof, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return decodeProof(data, format)
}
