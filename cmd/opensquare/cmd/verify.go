package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opensquare/vdf/verifying"
)

var verifyFlags struct {
	t         uint64
	x         string
	pk        string
	proof     string
	format    string
	reference bool
}

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a proof for (T, x, pk)",
	Long: `Recomputes the challenge of a proof and checks both chains. The command
fails with the rejected step if the proof is invalid.
--reference recomputes the outputs from x instead of using the quotient
certificates, which is only feasible for small T.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pk, err := parseAddress(verifyFlags.pk)
		if err != nil {
			return err
		}
		x, err := parseInt("x", verifyFlags.x)
		if err != nil {
			return err
		}
		proof, err := readProof(verifyFlags.proof, verifyFlags.format)
		if err != nil {
			return err
		}

		opts := []verifying.OptionFunc{verifying.WithLogger(logger)}
		if verifyFlags.reference {
			opts = append(opts, verifying.WithIdentity(verifying.ReferenceIdentity{MaxT: cfg.MaxReferenceT}))
		}
		verifier, err := verifying.NewVerifier(cfg, opts...)
		if err != nil {
			return err
		}

		if err := verifier.Check(x, verifyFlags.t, proof, pk); err != nil {
			return err
		}
		logger.Info("cli: proof is valid",
			zap.Uint64("T", verifyFlags.t),
			zap.String("identity", verifier.Identity().Name()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	flags := verifyCmd.Flags()
	flags.Uint64Var(&verifyFlags.t, "t", 1<<20, "number of sequential squarings T")
	flags.StringVar(&verifyFlags.x, "x", "", "puzzle input, decimal or 0x-prefixed hex (required)")
	flags.StringVar(&verifyFlags.pk, "pk", "", "solver address, 0x-prefixed hex (required)")
	flags.StringVarP(&verifyFlags.proof, "proof", "p", stdio, "proof file, - for stdin")
	flags.StringVar(&verifyFlags.format, "format", formatJSON, "proof encoding (json, xdr)")
	flags.BoolVar(&verifyFlags.reference, "reference", false, "check with the reference identity")
	_ = verifyCmd.MarkFlagRequired("x")
	_ = verifyCmd.MarkFlagRequired("pk")
}
