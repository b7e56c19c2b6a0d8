// Package lexer turns one line of arithmetic into tokens.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrOverflow            = errors.New("number literal out of range")
)

// Error reports where and why scanning stopped.
type Error struct {
	Err     error
	Char    byte
	Offset  int
	Literal string
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrOverflow) {
		return fmt.Sprintf("offset %d: %v: %s", e.Offset, e.Err, e.Literal)
	}
	return fmt.Sprintf("offset %d: %v %q", e.Offset, e.Err, e.Char)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Lexer scans the trimmed body of its input one token at a time.
// Offsets it reports are relative to the untrimmed input.
type Lexer struct {
	input string
	pos   int
	end   int
}

func NewLexer(input string) *Lexer {
	start := len(input) - len(strings.TrimLeftFunc(input, unicode.IsSpace))
	body := strings.TrimSpace(input)
	return &Lexer{
		input: input,
		pos:   start,
		end:   start + len(body),
	}
}

// Position returns the offset of the next unread byte.
func (l *Lexer) Position() int {
	return l.pos
}

func (l *Lexer) peek() byte {
	if l.pos >= l.end {
		return 0
	}
	return l.input[l.pos]
}

// NextToken returns the next token. At the end of input it returns a
// token of kind EOF and a nil error, and keeps doing so.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= l.end {
		return Token{Kind: EOF, Offset: l.end}, nil
	}

	ch := l.peek()
	if kind, ok := singles[ch]; ok {
		tok := Token{Kind: kind, Offset: l.pos, Len: 1}
		l.pos++
		return tok, nil
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	return Token{}, &Error{Err: ErrUnexpectedCharacter, Char: ch, Offset: l.pos}
}

func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	for l.pos < l.end && isDigit(l.peek()) {
		l.pos++
	}
	literal := l.input[start:l.pos]
	value, err := strconv.ParseUint(literal, 10, 32)
	if err != nil {
		return Token{}, &Error{Err: ErrOverflow, Char: literal[0], Offset: start, Literal: literal}
	}
	return Token{Kind: Number, Value: uint32(value), Offset: start, Len: len(literal)}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize scans all of text. The EOF token is not part of the result.
func Tokenize(text string) ([]Token, error) {
	l := NewLexer(text)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
