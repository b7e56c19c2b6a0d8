package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/arith/calc"
	"github.com/dhamidi/arith/format"
	"github.com/dhamidi/arith/parser"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite statements in canonical form",
		Long: `Rewrite every statement line in canonical form: no surrounding
whitespace and no leading zeros. Blank lines and comments are kept as they
are.

If no file is provided, reads from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			output, err := formatSource(source)
			if err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if fmtOverwrite {
				return os.WriteFile(filename, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}

// formatSource rewrites each statement line of source. It fails on the first
// line that does not parse and leaves nothing half written.
func formatSource(source []byte) ([]byte, error) {
	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(source))
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if calc.Skip(line) {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}
		tree, err := parser.ParseString(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out.WriteString(format.Pretty(tree))
		out.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
