package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opensquare/vdf/proving"
	"github.com/opensquare/vdf/verifying"
)

var benchFlags struct {
	from uint
	to   uint
}

// benchCmd represents the bench command.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure proving and verification time for T = 2^from .. 2^to",
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchFlags.from > benchFlags.to || benchFlags.to > 63 {
			return fmt.Errorf("invalid range [%d, %d]", benchFlags.from, benchFlags.to)
		}

		prover, err := proving.NewProver(cfg, proving.WithLogger(logger))
		if err != nil {
			return err
		}
		verifier, err := verifying.NewVerifier(cfg, verifying.WithLogger(logger))
		if err != nil {
			return err
		}

		var pk common.Address
		data := make([][]string, 0)
		for i := benchFlags.from; i <= benchFlags.to; i++ {
			t := uint64(1) << i
			x, err := prover.Group().Sample(nil)
			if err != nil {
				return err
			}

			logger.Info("bench: starting", zap.Uint64("T", t))
			start := time.Now()
			proof, err := prover.Evaluate(t, x, pk)
			if err != nil {
				return err
			}
			eProve := time.Since(start)

			start = time.Now()
			if err := verifier.Check(x, t, proof, pk); err != nil {
				return err
			}
			eVerify := time.Since(start)

			encoded, err := proof.MarshalBinary()
			if err != nil {
				return err
			}

			rate := float64(t) / eProve.Seconds()
			data = append(data, []string{
				strconv.FormatUint(t, 10),
				strconv.Itoa(int(proof.Challenge.Nonce)),
				bytefmt.ByteSize(uint64(len(encoded))),
				eProve.Round(time.Millisecond).String(),
				eVerify.Round(time.Microsecond).String(),
				strconv.FormatFloat(rate, 'f', 0, 64),
			})
		}

		header := []string{"T", "nonce", "proof", "prove", "verify", "squarings/s"}
		report(prover.Group().BitLen(), header, data)
		return nil
	},
}

func report(bits int, header []string, data [][]string) {
	fmt.Printf("\n\nBENCHMARKS: modulus=%v bits\n", bits)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

func init() {
	rootCmd.AddCommand(benchCmd)

	flags := benchCmd.Flags()
	flags.UintVar(&benchFlags.from, "from", 10, "log2 of the smallest T")
	flags.UintVar(&benchFlags.to, "to", 16, "log2 of the largest T")
}
