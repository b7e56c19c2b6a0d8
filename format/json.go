package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/arith/parser"
)

var errNoStatement = errors.New("no statement to encode")

type JSONEncoder struct {
	w    io.Writer
	stmt *parser.Statement
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(stmt *parser.Statement) error {
	e.stmt = stmt
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.stmt == nil {
		return nil, errNoStatement
	}
	data, err := json.MarshalIndent(e.stmt, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
