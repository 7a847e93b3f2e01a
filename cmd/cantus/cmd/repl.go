package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cantus-lang/cantus/pkg/cantus"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Cantus session",
	Long:  `Read one line of source at a time, evaluate it, and print the tagged result — each line sees the previous line's variables and prev_ans.`,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringVarP(&outputMode, "mode", "m", "raw", "output rendering mode: raw, math, or scientific")
}

func runRepl(_ *cobra.Command, _ []string) error {
	mode, err := parseOutputMode(outputMode)
	if err != nil {
		return err
	}
	interp := cantus.New()
	interp.SetOutputMode(mode)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("cantus> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := interp.Eval(line, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(interp.Render(result))
	}
	return scanner.Err()
}
