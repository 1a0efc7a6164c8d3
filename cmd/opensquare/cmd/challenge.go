package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/opensquare/vdf/internal/suite"
)

var challengeFlags struct {
	x  string
	y1 string
	y2 string
	pk string
}

type challengeOutput struct {
	X2    *hexutil.Big `json:"x2"`
	L     *hexutil.Big `json:"l"`
	Nonce uint16       `json:"nonce"`
}

// challengeCmd represents the challenge command.
var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Derive the Fiat-Shamir prime for claimed outputs",
	Long: `Computes x2 = H(x, pk) and searches the nonce window for the prime
challenge l of the outputs (y1, y2), exactly as the prover does.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, err := parseAddress(challengeFlags.pk)
		if err != nil {
			return err
		}
		x, err := parseInt("x", challengeFlags.x)
		if err != nil {
			return err
		}
		y1, err := parseInt("y1", challengeFlags.y1)
		if err != nil {
			return err
		}
		y2, err := parseInt("y2", challengeFlags.y2)
		if err != nil {
			return err
		}

		s, err := suite.New(cfg, logger, nil)
		if err != nil {
			return err
		}
		x2, err := s.Hasher.X2(x, pk)
		if err != nil {
			return err
		}
		ch, err := s.Deriver.Derive(x, y1, x2, y2, pk)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(challengeOutput{
			X2:    (*hexutil.Big)(x2),
			L:     (*hexutil.Big)(ch.L),
			Nonce: ch.Nonce,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(challengeCmd)

	flags := challengeCmd.Flags()
	flags.StringVar(&challengeFlags.x, "x", "", "puzzle input (required)")
	flags.StringVar(&challengeFlags.y1, "y1", "", "claimed x^(2^T) (required)")
	flags.StringVar(&challengeFlags.y2, "y2", "", "claimed x2^(2^T) (required)")
	flags.StringVar(&challengeFlags.pk, "pk", "", "solver address, 0x-prefixed hex (required)")
	for _, name := range []string{"x", "y1", "y2", "pk"} {
		_ = challengeCmd.MarkFlagRequired(name)
	}
}
