package format

import (
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/dhamidi/arith/parser"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// DumpEncoder writes the Go structure of the tree.
type DumpEncoder struct {
	w    io.Writer
	stmt *parser.Statement
}

func NewDumpEncoder(w io.Writer) *DumpEncoder {
	return &DumpEncoder{w: w}
}

func (e *DumpEncoder) Encode(stmt *parser.Statement) error {
	e.stmt = stmt
	return write(e.w, e)
}

func (e *DumpEncoder) MarshalText() ([]byte, error) {
	if e.stmt == nil {
		return nil, errNoStatement
	}
	return []byte(dumpConfig.Sdump(e.stmt)), nil
}
