// Package ebnflex scans input using the token productions of an EBNF grammar.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/exp/ebnf"
)

const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

type Token struct {
	Kind    string
	Literal string
	Offset  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %q", t.Offset, t.Kind, t.Literal)
}

// memoKey identifies the attempt to match one production at one offset.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input by trying every token production at the current
// offset and keeping the longest match. Ties go to the production listed
// first.
type Lexer struct {
	grammar  ebnf.Grammar
	tokens   []string
	input    []byte
	pos      int
	memo     map[memoKey]int // match length, -1 for no match
	visiting map[memoKey]bool
}

// NewLexer returns a lexer for input. tokens names the productions that
// produce tokens; they are tried in order.
func NewLexer(grammar ebnf.Grammar, tokens []string, input []byte) *Lexer {
	return &Lexer{
		grammar:  grammar,
		tokens:   tokens,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// UppercaseProductions returns, sorted, the names of productions that
// start with an uppercase letter and have no uppercase references. These
// are the token productions of a grammar that keeps lexical helpers
// lowercase.
func UppercaseProductions(grammar ebnf.Grammar) []string {
	var names []string
	for name, prod := range grammar {
		if name == "" || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		if refersToUppercase(prod.Expr) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func refersToUppercase(expr ebnf.Expression) bool {
	switch e := expr.(type) {
	case *ebnf.Name:
		return e.String != "" && e.String[0] >= 'A' && e.String[0] <= 'Z'
	case ebnf.Sequence:
		for _, x := range e {
			if refersToUppercase(x) {
				return true
			}
		}
	case ebnf.Alternative:
		for _, x := range e {
			if refersToUppercase(x) {
				return true
			}
		}
	case *ebnf.Group:
		return refersToUppercase(e.Body)
	case *ebnf.Option:
		return refersToUppercase(e.Body)
	case *ebnf.Repetition:
		return refersToUppercase(e.Body)
	}
	return false
}

// LoadGrammar reads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// NextToken returns the next token. At the end of input it returns an EOF
// token together with io.EOF. A byte no production matches becomes a
// one-byte ERROR token.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Offset: l.pos}, io.EOF
	}

	start := l.pos
	bestKind := ""
	bestLen := 0

	for _, name := range l.tokens {
		prod, ok := l.grammar[name]
		if !ok || prod.Expr == nil {
			continue
		}
		clear(l.visiting)
		if n := l.matchName(name, start); n > bestLen {
			bestLen = n
			bestKind = name
		}
	}

	if bestLen == 0 {
		l.pos++
		return Token{Kind: KindError, Literal: string(l.input[start:l.pos]), Offset: start}, nil
	}

	l.pos += bestLen
	return Token{Kind: bestKind, Literal: string(l.input[start:l.pos]), Offset: start}, nil
}

// Tokenize returns every token including the final EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
	}
}

// match returns how many bytes expr matches at offset, 0 for no match.
// Repetitions and options are greedy.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if offset+len(e.String) > len(l.input) {
			return 0
		}
		if string(l.input[offset:offset+len(e.String)]) == e.String {
			return len(e.String)
		}
		return 0

	case *ebnf.Range:
		if offset >= len(l.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return 0
		}
		ch := l.input[offset]
		if ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return 1
		}
		return 0

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n == 0 && !nullable(item) {
				return 0
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n == 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return l.match(e.Body, offset)

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return 0
}

// matchName matches a production by name. Results are memoized per offset
// and a production that re-enters itself at the same offset fails, which
// breaks left recursion.
func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if n, ok := l.memo[key]; ok {
		if n < 0 {
			return 0
		}
		return n
	}
	if l.visiting[key] {
		return 0
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0
	}

	l.visiting[key] = true
	n := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	if n == 0 {
		l.memo[key] = -1
	} else {
		l.memo[key] = n
	}
	return n
}

// nullable reports whether expr may match the empty string without
// consuming input.
func nullable(expr ebnf.Expression) bool {
	switch e := expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return true
	case *ebnf.Group:
		return nullable(e.Body)
	case ebnf.Sequence:
		for _, item := range e {
			if !nullable(item) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, alt := range e {
			if nullable(alt) {
				return true
			}
		}
	}
	return false
}
