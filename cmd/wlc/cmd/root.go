// Package cmd implements wlc's Cobra command tree: run and version,
// plus the persistent --verbose flag.
package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wlc",
	Short: "While language compiler and interpreter",
	Long: `wlc scans, parses, type-checks and interprets programs written in the
While language: a small imperative language with structural subtyping,
arrays, records, and a single recursive-descent front end.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print internal diagnostics, including error causes")
}
