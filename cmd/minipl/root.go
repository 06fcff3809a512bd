package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "minipl",
	Short: "Front-end tooling for the Mini-PL language",
	Long: `minipl runs the Mini-PL compiler front-end:
- Tokenizes a source file.
- Parses a source file into an abstract syntax tree.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "%v\n", err)
		return err
	}

	return nil
}
