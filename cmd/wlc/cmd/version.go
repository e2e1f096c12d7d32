package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print wlc's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wlc version %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
