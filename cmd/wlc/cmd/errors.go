package cmd

import (
	"fmt"
	"os"

	"github.com/zoltan-nz/whilelang/internal/errors"
)

func init() {
	// Diagnostics are printed here, with source context; Cobra's own
	// "Error: ..." banner would be redundant.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

// reportAndFail prints a pipeline error with source context (and, when
// --verbose is set, its wrapped cause) to stderr, returning a bare error
// so Execute's caller sets a non-zero exit code without Cobra re-printing
// the message.
func reportAndFail(err error) error {
	if ce, ok := err.(*errors.CompilerError); ok {
		fmt.Fprint(os.Stderr, ce.Format(verbose))
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	return errSilent
}

var errSilent = fmt.Errorf("wlc: failed")
