package cmd

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opensquare/vdf/proving"
)

var proveFlags struct {
	t      uint64
	x      string
	pk     string
	out    string
	format string
}

// proveCmd represents the prove command.
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "Evaluate the delay function and write a proof",
	Long: `Computes y1 = x^(2^T) and y2 = H(x, pk)^(2^T) by T sequential squarings and
writes the proof binding both outputs to the solver address pk.
If --x is omitted a random element is sampled and logged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, err := parseAddress(proveFlags.pk)
		if err != nil {
			return err
		}

		prover, err := proving.NewProver(cfg, proving.WithLogger(logger))
		if err != nil {
			return err
		}

		x, err := sampleOrParse(prover.Group(), "x", proveFlags.x)
		if err != nil {
			return err
		}
		logger.Info("cli: proving",
			zap.Uint64("T", proveFlags.t),
			zap.String("x", hexutil.EncodeBig(x)),
			zap.Stringer("pk", pk),
		)

		proof, err := prover.Evaluate(proveFlags.t, x, pk)
		if err != nil {
			return err
		}

		data, err := encodeProof(proof, proveFlags.format)
		if err != nil {
			return err
		}
		return writeOutput(proveFlags.out, data)
	},
}

func init() {
	rootCmd.AddCommand(proveCmd)

	flags := proveCmd.Flags()
	flags.Uint64Var(&proveFlags.t, "t", 1<<20, "number of sequential squarings T")
	flags.StringVar(&proveFlags.x, "x", "", "puzzle input, decimal or 0x-prefixed hex (random if empty)")
	flags.StringVar(&proveFlags.pk, "pk", "", "solver address, 0x-prefixed hex (required)")
	flags.StringVarP(&proveFlags.out, "out", "o", stdio, "output file, - for stdout")
	flags.StringVar(&proveFlags.format, "format", formatJSON, "proof encoding (json, xdr)")
	_ = proveCmd.MarkFlagRequired("pk")
}
