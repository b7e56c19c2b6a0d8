// Package calc runs the lex, parse and evaluate stages for one line.
package calc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/arith/eval"
	"github.com/dhamidi/arith/lexer"
	"github.com/dhamidi/arith/parser"
)

type Stage string

const (
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageEval  Stage = "eval"
)

// Error records which stage rejected the input.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Result struct {
	Input  string
	Tokens []lexer.Token
	Tree   *parser.Statement
	Trace  string
	Value  float64
}

// Run lexes, parses and evaluates line. It shares no state between calls
// and may be used from several goroutines at once.
func Run(line string) (*Result, error) {
	res := &Result{Input: line}

	tokens, err := lexer.Tokenize(line)
	if err != nil {
		return nil, &Error{Stage: StageLex, Err: err}
	}
	res.Tokens = tokens

	tree, err := parser.Parse(tokens)
	if err != nil {
		return nil, &Error{Stage: StageParse, Err: err}
	}
	res.Tree = tree
	res.Trace = eval.Show(tree)

	value, err := eval.Evaluate(tree)
	if err != nil {
		return nil, &Error{Stage: StageEval, Err: err}
	}
	res.Value = value

	return res, nil
}

// StageOf returns the stage that produced err, or "" if err did not come
// from Run.
func StageOf(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}

// Span returns the byte range of line that err refers to. Errors at the end
// of input point just past the last non-blank byte. Evaluation errors cover
// the whole statement.
func Span(line string, err error) (start, end int) {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		if lexErr.Literal != "" {
			return lexErr.Offset, lexErr.Offset + len(lexErr.Literal)
		}
		n := 1
		if lexErr.Offset < len(line) {
			_, n = utf8.DecodeRuneInString(line[lexErr.Offset:])
		}
		return lexErr.Offset, lexErr.Offset + n
	}

	first := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
	last := first + len(strings.TrimSpace(line))

	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		if parseErr.Got == nil {
			return last, last + 1
		}
		return parseErr.Got.Offset, parseErr.Got.Offset + parseErr.Got.Len
	}

	return first, last
}

// Skip reports whether line holds no statement: it is blank or a comment
// starting with '#'. Tools that read many lines ignore such lines.
func Skip(line string) bool {
	body := strings.TrimSpace(line)
	return body == "" || strings.HasPrefix(body, "#")
}
