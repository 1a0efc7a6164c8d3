package cmd

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/opensquare/vdf/group"
)

var sampleCount int

// sampleCmd represents the sample command.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print random puzzle inputs in (1, N)",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := cfg.ParseModulus()
		if err != nil {
			return err
		}
		grp, err := group.New(n)
		if err != nil {
			return err
		}

		for i := 0; i < sampleCount; i++ {
			x, err := grp.Sample(nil)
			if err != nil {
				return err
			}
			fmt.Println(hexutil.EncodeBig(x))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 1, "number of elements to print")
}

// sampleOrParse parses s, or samples a random element if s is empty.
func sampleOrParse(grp *group.Group, name, s string) (*big.Int, error) {
	if s != "" {
		return parseInt(name, s)
	}
	x, err := grp.Sample(nil)
	if err != nil {
		return nil, err
	}
	return x, nil
}
