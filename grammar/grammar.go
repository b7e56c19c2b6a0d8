// Package grammar holds the statement grammar as an EBNF document.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/arith/lexer"
)

// Start is the production every input must match.
const Start = "Statement"

// Filename is reported in positions of grammar errors.
const Filename = "arith.ebnf"

//go:embed arith.ebnf
var source []byte

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses and verifies the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Parse(Filename, source)
}

// Parse parses src and verifies it from Start.
func Parse(filename string, src []byte) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// TokenProductions returns the names of the productions that describe
// single tokens. They match lexer.Kind names.
func TokenProductions() []string {
	var names []string
	for _, k := range lexer.Kinds() {
		names = append(names, k.String())
	}
	return names
}
