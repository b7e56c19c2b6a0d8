package lexer

import "strconv"

type Kind int

const (
	EOF Kind = iota
	Plus
	Minus
	Asterisk
	Slash
	Semicolon
	OpenParen
	CloseParen
	Number
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Plus:       "Plus",
	Minus:      "Minus",
	Asterisk:   "Asterisk",
	Slash:      "Slash",
	Semicolon:  "Semicolon",
	OpenParen:  "OpenParen",
	CloseParen: "CloseParen",
	Number:     "Number",
}

var kindLexemes = map[Kind]string{
	Plus:       "+",
	Minus:      "-",
	Asterisk:   "*",
	Slash:      "/",
	Semicolon:  ";",
	OpenParen:  "(",
	CloseParen: ")",
}

var singles = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Asterisk,
	'/': Slash,
	';': Semicolon,
	'(': OpenParen,
	')': CloseParen,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Kinds returns every kind a lexer can produce for valid input, in
// declaration order. EOF is not included.
func Kinds() []Kind {
	return []Kind{Plus, Minus, Asterisk, Slash, Semicolon, OpenParen, CloseParen, Number}
}

// Token is one lexical unit. Value is only meaningful for Number tokens.
// Offset is the byte offset of the token in the untrimmed input line
// and Len the number of bytes it was scanned from.
type Token struct {
	Kind   Kind
	Value  uint32
	Offset int
	Len    int
}

func (t Token) String() string {
	if t.Kind == Number {
		return "Number(" + strconv.FormatUint(uint64(t.Value), 10) + ")"
	}
	return t.Kind.String()
}

// Lexeme returns the source text the token was scanned from.
func (t Token) Lexeme() string {
	if t.Kind == Number {
		return strconv.FormatUint(uint64(t.Value), 10)
	}
	return kindLexemes[t.Kind]
}
