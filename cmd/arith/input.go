package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/dhamidi/arith/calc"
)

var (
	errorColor = color.New(color.FgRed)
	stageColor = color.New(color.FgYellow, color.Bold)
	valueColor = color.New(color.FgGreen, color.Bold)
)

// statement is one input line that holds a statement. Line is 1-based.
type statement struct {
	Line int
	Text string
}

// readStatements returns the statement lines of r, skipping blank lines
// and comments.
func readStatements(r io.Reader) ([]statement, error) {
	var stmts []statement
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if calc.Skip(scanner.Text()) {
			continue
		}
		stmts = append(stmts, statement{Line: n, Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return stmts, nil
}

// inputStatements returns the single statement given as an argument, or
// every statement read from stdin.
func inputStatements(args []string) ([]statement, error) {
	if len(args) > 0 {
		return []statement{{Line: 1, Text: args[0]}}, nil
	}
	return readStatements(os.Stdin)
}

// printError writes err for the statement on line to w, colored by stage.
func printError(w io.Writer, line int, err error) {
	if line > 0 {
		errorColor.Fprintf(w, "line %d: ", line)
	}
	var stageErr *calc.Error
	if errors.As(err, &stageErr) {
		stageColor.Fprintf(w, "[%s] ", stageErr.Stage)
		err = stageErr.Err
	}
	errorColor.Fprintln(w, err)
}
