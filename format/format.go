// Package format writes statement trees in the output formats the command
// line tools offer.
package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/arith/parser"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(stmt *parser.Statement) error
}

var encoders = map[string]func(io.Writer) Encoder{
	"trace":  func(w io.Writer) Encoder { return NewTraceEncoder(w) },
	"json":   func(w io.Writer) Encoder { return NewJSONEncoder(w) },
	"dot":    func(w io.Writer) Encoder { return NewDotEncoder(w) },
	"dump":   func(w io.Writer) Encoder { return NewDumpEncoder(w) },
	"pretty": func(w io.Writer) Encoder { return NewPrettyEncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	mk, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", name)
	}
	return mk(w), nil
}

// Names returns the registered format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
