// Package parser builds a typed syntax tree from arithmetic tokens.
//
// # Grammar
//
//	statement  = expression ";"
//	expression = [ "+" | "-" ] term { ( "+" | "-" ) term }
//	term       = factor { ( "*" | "/" ) factor }
//	factor     = number | "(" expression ")"
//
// # Tree
//
// Every tree has the same five levels:
//
//	Statement
//	  └── Expression   parts: [sign] Term { AddOp Term }
//	        └── Term   parts: Factor { MulOp Factor }
//	              └── Factor
//	                    └── Number | Expression
//
// Precedence comes from nesting: multiplication lives inside terms, which
// live inside expressions, so no precedence table is needed. Operators of
// the same level are kept as a flat, left-to-right sequence rather than a
// nested binary tree; folding the sequence from the left gives the usual
// left associativity.
//
// # Errors
//
// Parsing stops at the first violation and returns a *Error that wraps one
// of ErrExpectedNumber, ErrExpectedFactor, ErrUnmatchedParen,
// ErrExpectedSemicolon or ErrTrailingTokens:
//
//	_, err := parser.ParseString("(2+3;")
//	errors.Is(err, parser.ErrUnmatchedParen) // true
package parser
