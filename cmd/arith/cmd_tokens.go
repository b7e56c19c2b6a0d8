package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/arith/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [statement]",
		Short: "Print the tokens of a statement, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := inputStatements(args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, stmt := range stmts {
				tokens, err := lexer.Tokenize(stmt.Text)
				if err != nil {
					w.Flush()
					return fmt.Errorf("line %d: lex: %w", stmt.Line, err)
				}
				for _, tok := range tokens {
					fmt.Fprintf(w, "%d:%d\t%s\t%s\n", stmt.Line, tok.Offset, tok.Kind, tok.Lexeme())
				}
			}
			return w.Flush()
		},
	}
}
