package parse

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/arith/ebnflex"
)

// SyntaxError reports the furthest token the grammar could not get past.
// Got is nil when the input ended early.
type SyntaxError struct {
	Offset   int
	Got      *ebnflex.Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	got := "end of input"
	if e.Got != nil {
		got = fmt.Sprintf("%q", e.Got.Literal)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("offset %d: unexpected %s", e.Offset, got)
	}
	return fmt.Sprintf("offset %d: unexpected %s, expected %s", e.Offset, got, strings.Join(e.Expected, " or "))
}

type visitKey struct {
	name string
	pos  int
}

// Parser matches tokens against the productions of a grammar using ordered
// choice with backtracking. Options and repetitions are greedy.
type Parser struct {
	grammar   ebnf.Grammar
	raw       []ebnflex.Token
	tokens    []ebnflex.Token
	terminals map[string]bool
	skipKinds map[string]bool

	furthest int
	expected map[string]bool
	visiting map[visitKey]bool
}

// NewParser creates a parser for tokens. Names in terminals are matched
// against token kinds instead of being expanded as productions.
func NewParser(g ebnf.Grammar, tokens []ebnflex.Token, terminals []string) *Parser {
	p := &Parser{
		grammar:   g,
		raw:       tokens,
		terminals: make(map[string]bool, len(terminals)),
		skipKinds: make(map[string]bool),
	}
	for _, name := range terminals {
		p.terminals[name] = true
	}
	return p
}

// SetSkipKinds sets which token kinds to skip between terminals.
func (p *Parser) SetSkipKinds(kinds ...string) {
	p.skipKinds = make(map[string]bool, len(kinds))
	for _, k := range kinds {
		p.skipKinds[k] = true
	}
}

// Parse matches the whole token stream against the start production.
func (p *Parser) Parse(start string) (*Node, error) {
	if _, ok := p.grammar[start]; !ok {
		return nil, fmt.Errorf("no production %q", start)
	}

	p.tokens = p.tokens[:0]
	for _, tok := range p.raw {
		if tok.Kind == ebnflex.KindEOF || p.skipKinds[tok.Kind] {
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
	p.furthest = 0
	p.expected = make(map[string]bool)
	p.visiting = make(map[visitKey]bool)

	nodes, end, ok := p.parse(&ebnf.Name{String: start}, 0)
	if ok && end == len(p.tokens) {
		return nodes[0], nil
	}
	if ok {
		p.fail(end, ebnflex.KindEOF)
	}
	return nil, p.syntaxError()
}

func (p *Parser) syntaxError() *SyntaxError {
	err := &SyntaxError{}
	for name := range p.expected {
		err.Expected = append(err.Expected, name)
	}
	sort.Strings(err.Expected)

	if p.furthest < len(p.tokens) {
		tok := p.tokens[p.furthest]
		err.Got = &tok
		err.Offset = tok.Offset
		return err
	}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		err.Offset = last.Offset + len(last.Literal)
	}
	return err
}

// fail records that want was expected at pos. Only the furthest position
// is kept.
func (p *Parser) fail(pos int, want string) {
	if pos > p.furthest {
		p.furthest = pos
		clear(p.expected)
	}
	if pos == p.furthest {
		p.expected[want] = true
	}
}

// parse matches expr at token index pos and returns the nodes it produced
// and the index after them.
func (p *Parser) parse(expr ebnf.Expression, pos int) ([]*Node, int, bool) {
	switch e := expr.(type) {
	case nil:
		return nil, pos, true

	case *ebnf.Name:
		return p.parseName(e.String, pos)

	case *ebnf.Token:
		if pos < len(p.tokens) && p.tokens[pos].Literal == e.String {
			return []*Node{NewTerminal(p.tokens[pos])}, pos + 1, true
		}
		p.fail(pos, fmt.Sprintf("%q", e.String))
		return nil, pos, false

	case ebnf.Sequence:
		var nodes []*Node
		cur := pos
		for _, item := range e {
			got, next, ok := p.parse(item, cur)
			if !ok {
				return nil, pos, false
			}
			nodes = append(nodes, got...)
			cur = next
		}
		return nodes, cur, true

	case ebnf.Alternative:
		for _, alt := range e {
			if nodes, next, ok := p.parse(alt, pos); ok {
				return nodes, next, true
			}
		}
		return nil, pos, false

	case *ebnf.Group:
		return p.parse(e.Body, pos)

	case *ebnf.Option:
		if nodes, next, ok := p.parse(e.Body, pos); ok {
			return nodes, next, true
		}
		return nil, pos, true

	case *ebnf.Repetition:
		var nodes []*Node
		cur := pos
		for {
			got, next, ok := p.parse(e.Body, cur)
			if !ok || next == cur {
				return nodes, cur, true
			}
			nodes = append(nodes, got...)
			cur = next
		}
	}

	// Ranges only make sense inside token productions.
	return nil, pos, false
}

func (p *Parser) parseName(name string, pos int) ([]*Node, int, bool) {
	if p.terminals[name] {
		if pos < len(p.tokens) && p.tokens[pos].Kind == name {
			return []*Node{NewTerminal(p.tokens[pos])}, pos + 1, true
		}
		p.fail(pos, name)
		return nil, pos, false
	}

	prod, ok := p.grammar[name]
	if !ok {
		return nil, pos, false
	}

	key := visitKey{name: name, pos: pos}
	if p.visiting[key] {
		return nil, pos, false
	}
	p.visiting[key] = true
	defer delete(p.visiting, key)

	children, next, ok := p.parse(prod.Expr, pos)
	if !ok {
		return nil, pos, false
	}

	node := NewNonTerminal(name)
	for _, child := range children {
		node.AddChild(child)
	}
	if len(children) == 0 && pos < len(p.tokens) {
		node.Span = Span{Start: p.tokens[pos].Offset, End: p.tokens[pos].Offset}
	}
	return []*Node{node}, next, true
}
