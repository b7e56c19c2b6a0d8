package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/arith/parser"
)

// PrettyEncoder writes the statement back as source in canonical form:
// no whitespace and no leading zeros. The lexer rejects whitespace inside a
// statement, so the output is always valid input.
//
//	  -(0002+3)*4;  =>  -(2+3)*4;
type PrettyEncoder struct {
	w    io.Writer
	stmt *parser.Statement
}

func NewPrettyEncoder(w io.Writer) *PrettyEncoder {
	return &PrettyEncoder{w: w}
}

func (e *PrettyEncoder) Encode(stmt *parser.Statement) error {
	e.stmt = stmt
	return write(e.w, e)
}

func (e *PrettyEncoder) MarshalText() ([]byte, error) {
	if e.stmt == nil {
		return nil, errNoStatement
	}
	return []byte(Pretty(e.stmt) + "\n"), nil
}

// Pretty returns the canonical source of stmt without a trailing newline.
func Pretty(stmt *parser.Statement) string {
	var sb strings.Builder
	if stmt.Expr != nil {
		printExpression(&sb, stmt.Expr)
	}
	sb.WriteByte(';')
	return sb.String()
}

func printExpression(sb *strings.Builder, expr *parser.Expression) {
	for _, part := range expr.Parts {
		switch part := part.(type) {
		case parser.AddOp:
			sb.WriteString(part.String())
		case *parser.Term:
			printTerm(sb, part)
		}
	}
}

func printTerm(sb *strings.Builder, term *parser.Term) {
	for _, part := range term.Parts {
		switch part := part.(type) {
		case parser.MulOp:
			sb.WriteString(part.String())
		case *parser.Factor:
			printFactor(sb, part)
		}
	}
}

func printFactor(sb *strings.Builder, f *parser.Factor) {
	switch inner := f.Inner.(type) {
	case *parser.Number:
		sb.WriteString(strconv.FormatUint(uint64(inner.Value), 10))
	case *parser.Expression:
		sb.WriteByte('(')
		printExpression(sb, inner)
		sb.WriteByte(')')
	}
}
