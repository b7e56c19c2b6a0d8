package parser

import (
	"errors"
	"fmt"

	"github.com/dhamidi/arith/lexer"
)

var (
	ErrExpectedNumber    = errors.New("expected number")
	ErrExpectedFactor    = errors.New("expected number or '('")
	ErrUnmatchedParen    = errors.New("expected ')'")
	ErrExpectedSemicolon = errors.New("expected ';'")
	ErrTrailingTokens    = errors.New("unexpected tokens after ';'")
)

// Error reports the token index at which the grammar was violated. Got is
// nil when the token stream ended early.
type Error struct {
	Err error
	Pos int
	Got *lexer.Token
}

func (e *Error) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("end of input: %v", e.Err)
	}
	return fmt.Sprintf("offset %d: %v, got %v", e.Got.Offset, e.Err, e.Got)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Parser is a recursive descent parser with one method per grammar level:
//
//	statement  = expression ";"
//	expression = [ "+" | "-" ] term { ( "+" | "-" ) term }
//	term       = factor { ( "*" | "/" ) factor }
//	factor     = number | "(" expression ")"
//
// Each method starts at the cursor and leaves it on the first token it did
// not consume.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds the tree for a complete statement. Tokens left over after
// the terminating semicolon are an error.
func Parse(tokens []lexer.Token) (*Statement, error) {
	p := NewParser(tokens)
	stmt, err := p.readStatement()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, p.errorf(ErrTrailingTokens)
	}
	return stmt, nil
}

// ParseString tokenizes text and parses the result.
func ParseString(text string) (*Statement, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Pos returns the index of the next unconsumed token.
func (p *Parser) Pos() int {
	return p.pos
}

func (p *Parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) check(kind lexer.Kind) bool {
	tok, ok := p.peek()
	return ok && tok.Kind == kind
}

func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) advance() lexer.Token {
	tok, _ := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(err error) *Error {
	e := &Error{Err: err, Pos: p.pos}
	if tok, ok := p.peek(); ok {
		e.Got = &tok
	}
	return e
}

func (p *Parser) readStatement() (*Statement, error) {
	expr, err := p.readExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.Semicolon) {
		return nil, p.errorf(ErrExpectedSemicolon)
	}
	p.advance()
	return &Statement{Expr: expr}, nil
}

func (p *Parser) readExpression() (*Expression, error) {
	expr := &Expression{}

	if p.match(lexer.Plus, lexer.Minus) {
		expr.Parts = append(expr.Parts, addOp(p.advance()))
	}

	term, err := p.readTerm()
	if err != nil {
		return nil, err
	}
	expr.Parts = append(expr.Parts, term)

	for p.match(lexer.Plus, lexer.Minus) {
		op := addOp(p.advance())
		term, err := p.readTerm()
		if err != nil {
			return nil, err
		}
		expr.Parts = append(expr.Parts, op, term)
	}

	return expr, nil
}

func (p *Parser) readTerm() (*Term, error) {
	term := &Term{}

	factor, err := p.readFactor()
	if err != nil {
		return nil, err
	}
	term.Parts = append(term.Parts, factor)

	for p.match(lexer.Asterisk, lexer.Slash) {
		op := mulOp(p.advance())
		factor, err := p.readFactor()
		if err != nil {
			return nil, err
		}
		term.Parts = append(term.Parts, op, factor)
	}

	return term, nil
}

func (p *Parser) readFactor() (*Factor, error) {
	switch {
	case p.check(lexer.Number):
		num, err := p.readNumber()
		if err != nil {
			return nil, err
		}
		return &Factor{Inner: num}, nil

	case p.check(lexer.OpenParen):
		p.advance()
		inner, err := p.readExpression()
		if err != nil {
			return nil, err
		}
		if !p.check(lexer.CloseParen) {
			return nil, p.errorf(ErrUnmatchedParen)
		}
		p.advance()
		return &Factor{Inner: inner}, nil
	}

	return nil, p.errorf(ErrExpectedFactor)
}

func (p *Parser) readNumber() (*Number, error) {
	if !p.check(lexer.Number) {
		return nil, p.errorf(ErrExpectedNumber)
	}
	tok := p.advance()
	return &Number{Value: tok.Value}, nil
}

func addOp(tok lexer.Token) AddOp {
	if tok.Kind == lexer.Minus {
		return Minus
	}
	return Plus
}

func mulOp(tok lexer.Token) MulOp {
	if tok.Kind == lexer.Slash {
		return Slash
	}
	return Asterisk
}
