package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/arith/format"
	"github.com/dhamidi/arith/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [statement]",
		Short: "Parse a statement and print its tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				outputFormat = settings.Format
			}
			encoder, err := format.New(outputFormat, os.Stdout)
			if err != nil {
				return err
			}

			stmts, err := inputStatements(args)
			if err != nil {
				return err
			}

			for _, stmt := range stmts {
				tree, err := parser.ParseString(stmt.Text)
				if err != nil {
					return fmt.Errorf("line %d: parse: %w", stmt.Line, err)
				}
				if err := encoder.Encode(tree); err != nil {
					return fmt.Errorf("encode %s: %w", outputFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "trace",
		"output format ("+strings.Join(format.Names(), ", ")+")")

	return cmd
}
