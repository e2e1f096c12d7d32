package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoltan-nz/whilelang/pkg/wlang"
)

var (
	evalExpr    string
	dumpAST     bool
	noTypecheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file.while]",
	Short: "Run a While program",
	Long: `Execute a While program from a file or an inline expression.

Examples:
  wlc run program.while
  wlc run -e "void main() { print 1 + 2; }"
  wlc run --dump-ast program.while`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWhile,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST instead of running it")
	runCmd.Flags().BoolVar(&noTypecheck, "no-typecheck", false, "skip semantic analysis (debugging escape hatch)")
}

func runWhile(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return reportAndFail(err)
	}

	engine := wlang.New(
		wlang.WithOutput(os.Stdout),
		wlang.WithTypeCheck(!noTypecheck),
		wlang.WithVerbose(verbose),
	)

	if dumpAST {
		prog, err := engine.Compile(source, filename)
		if err != nil {
			return reportAndFail(err)
		}
		fmt.Println(prog.String())
		return nil
	}

	if err := engine.Run(source, filename); err != nil {
		return reportAndFail(err)
	}
	return nil
}

func readSource(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline source")
}
