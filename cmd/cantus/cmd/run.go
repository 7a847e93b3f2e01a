package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cantus-lang/cantus/pkg/cantus"
)

var evalExpr string
var outputMode string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Cantus script or expression",
	Long: `Execute a Cantus script from a file or inline expression.

Examples:
  cantus run script.cantus
  cantus run -e "sqrt(2)"
  cantus run -e "sqrt(2)" --mode math`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().StringVarP(&outputMode, "mode", "m", "raw", "output rendering mode: raw, math, or scientific")
}

// parseOutputMode maps the --mode flag's text to the cantus.OutputMode
// enum (spec.md §4.F/§6's Raw/Math/Scientific evaluator modes).
func parseOutputMode(s string) (cantus.OutputMode, error) {
	switch strings.ToLower(s) {
	case "", "raw":
		return cantus.OutputRaw, nil
	case "math":
		return cantus.OutputMath, nil
	case "scientific", "sci":
		return cantus.OutputScientific, nil
	default:
		return cantus.OutputRaw, fmt.Errorf("unknown output mode %q (want raw, math, or scientific)", s)
	}
}

func runScript(_ *cobra.Command, args []string) error {
	var source string
	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	mode, err := parseOutputMode(outputMode)
	if err != nil {
		return err
	}

	interp := cantus.New()
	interp.SetOutputMode(mode)
	result, err := interp.Eval(source, true)
	if err != nil {
		return err
	}
	fmt.Println(interp.Render(result))
	return nil
}
