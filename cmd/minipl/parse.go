package main

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	minipl "go.minipl.dev/pkg"
)

var parseFlags = struct {
	pipelined *bool
	tokens    *bool
}{}

// dumper writes AST and token dumps without the pointer noise spew
// prints by default.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <source file path>",
		Short:   "Parse a Mini-PL source file and dump its AST",
		Example: `  minipl parse program.mpl`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.pipelined = cmd.Flags().Bool("pipelined", false, "run the scanner and the parser on separate goroutines")
	parseFlags.tokens = cmd.Flags().Bool("tokens", false, "dump the token stream instead of the AST")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	if *parseFlags.tokens {
		toks := minipl.NewBuffer[minipl.Token]()
		if err := minipl.NewScanner(file).Run(toks); err != nil {
			return err
		}

		dumper.Fdump(os.Stdout, toks.Items())
		return nil
	}

	front := minipl.NewFrontend()

	var stmts []minipl.Statement
	if *parseFlags.pipelined {
		stmts, err = front.ParsePipelined(file)
	} else {
		stmts, err = front.Parse(file)
	}
	if err != nil {
		return err
	}

	dumper.Fdump(os.Stdout, stmts)
	return nil
}
