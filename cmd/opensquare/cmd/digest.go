package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/opensquare/vdf/dispute"
	"github.com/opensquare/vdf/group"
)

var digestFlags struct {
	proof  string
	format string
	amount string
	blind  string
}

type digestOutput struct {
	dispute.Digests
	Asking *common.Hash `json:"asking,omitempty"`
}

// digestCmd represents the digest command.
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print the intermediate dispute hashes of a proof",
	Long: `Prints h1 = H(y1, y2), h2 = H(y1, pi1, q1) and h3 = H(y2, pi2, q2) of a proof.
With --amount and --blind the asking commitment H(amount, blind) is added.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		proof, err := readProof(digestFlags.proof, digestFlags.format)
		if err != nil {
			return err
		}

		n, err := cfg.ParseModulus()
		if err != nil {
			return err
		}
		grp, err := group.New(n)
		if err != nil {
			return err
		}
		d, err := dispute.New(grp)
		if err != nil {
			return err
		}

		out := digestOutput{}
		if out.Digests, err = d.Digests(proof); err != nil {
			return err
		}

		if digestFlags.amount != "" || digestFlags.blind != "" {
			a, err := uint256.FromDecimal(digestFlags.amount)
			if err != nil {
				return fmt.Errorf("invalid --amount: %w", err)
			}
			r, err := uint256.FromDecimal(digestFlags.blind)
			if err != nil {
				return fmt.Errorf("invalid --blind: %w", err)
			}
			h := dispute.AskingHash(a, r)
			out.Asking = &h
		}

		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)

	flags := digestCmd.Flags()
	flags.StringVarP(&digestFlags.proof, "proof", "p", stdio, "proof file, - for stdin")
	flags.StringVar(&digestFlags.format, "format", formatJSON, "proof encoding (json, xdr)")
	flags.StringVar(&digestFlags.amount, "amount", "", "asking amount, decimal")
	flags.StringVar(&digestFlags.blind, "blind", "", "blinding value of the asking commitment, decimal")
	digestCmd.MarkFlagsRequiredTogether("amount", "blind")
}
