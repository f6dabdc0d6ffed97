package nsg

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at release time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nsg version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nsg %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
