package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/arith/calc"
)

func newEvalCmd() *cobra.Command {
	var noTrace bool

	cmd := &cobra.Command{
		Use:   "eval [statement]",
		Short: "Evaluate a statement and print its trace and value",
		Long: `Evaluate a statement such as "2+3*4;" and print the parse trace
followed by the value.

Without an argument every line of stdin is evaluated. Blank lines and lines
starting with # are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := inputStatements(args)
			if err != nil {
				return err
			}

			failed := 0
			for _, stmt := range stmts {
				res, err := calc.Run(stmt.Text)
				if err != nil {
					failed++
					line := stmt.Line
					if len(args) > 0 {
						line = 0
					}
					printError(os.Stderr, line, err)
					continue
				}
				if !noTrace {
					fmt.Println(res.Trace)
				}
				valueColor.Println(formatValue(res.Value))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d statements failed", failed, len(stmts))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noTrace, "no-trace", false, "print only the value")

	return cmd
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
