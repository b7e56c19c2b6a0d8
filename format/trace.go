package format

import (
	"io"

	"github.com/dhamidi/arith/eval"
	"github.com/dhamidi/arith/parser"
)

// TraceEncoder writes the tagged-parenthesis trace followed by a newline.
type TraceEncoder struct {
	w    io.Writer
	stmt *parser.Statement
}

func NewTraceEncoder(w io.Writer) *TraceEncoder {
	return &TraceEncoder{w: w}
}

func (e *TraceEncoder) Encode(stmt *parser.Statement) error {
	e.stmt = stmt
	return write(e.w, e)
}

func (e *TraceEncoder) MarshalText() ([]byte, error) {
	if e.stmt == nil {
		return nil, errNoStatement
	}
	return []byte(eval.Show(e.stmt) + "\n"), nil
}
