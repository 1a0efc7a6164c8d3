package cmd

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after merging defaults, the config file,
OPENSQUARE_* environment variables and command line flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		spew.Dump(cfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
