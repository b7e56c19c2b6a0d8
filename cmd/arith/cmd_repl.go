package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/arith/calc"
)

var promptColor = color.New(color.FgCyan)

func newReplCmd() *cobra.Command {
	var showTrace bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read statements interactively and print their values",
		Long: `Read one statement per line and print its value. A failing
statement prints the stage that rejected it and the error. Type :trace to
toggle the parse trace, :quit or end of input to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(os.Stdin, color.Output, showTrace)
		},
	}

	cmd.Flags().BoolVarP(&showTrace, "trace", "t", false, "print the parse trace before each value")

	return cmd
}

func runRepl(in io.Reader, out io.Writer, showTrace bool) error {
	scanner := bufio.NewScanner(in)
	for {
		promptColor.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case ":quit", ":q":
			return nil
		case ":trace":
			showTrace = !showTrace
			fmt.Fprintf(out, "trace %s\n", onOff(showTrace))
			continue
		}
		if calc.Skip(line) {
			continue
		}

		res, err := calc.Run(line)
		if err != nil {
			start, end := calc.Span(line, err)
			fmt.Fprintf(out, "  %s%s\n", strings.Repeat(" ", start), errorColor.Sprint(strings.Repeat("^", max(end-start, 1))))
			printError(out, 0, err)
			continue
		}
		if showTrace {
			fmt.Fprintln(out, res.Trace)
		}
		valueColor.Fprintln(out, formatValue(res.Value))
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
