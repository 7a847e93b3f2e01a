// Package cmd implements component M, the Cantus CLI front end, built
// on cobra exactly as the teacher's cmd/dwscript/cmd is.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cantus",
	Short: "Cantus expression and script evaluator",
	Long: `cantus embeds and drives the Cantus evaluator: an expression-and-script
language for numeric and symbolic computation (arbitrary-precision
decimals, Complex escalation, Matrix/Tuple/LinkedList/Set containers,
user-defined functions and classes, cooperative background tasks).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
