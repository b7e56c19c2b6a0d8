// Package eval computes the value of a parsed statement.
package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhamidi/arith/parser"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrMalformedTree  = errors.New("malformed tree")
	ErrOverflow       = errors.New("result out of range")
)

// Error carries the node that could not be evaluated.
type Error struct {
	Err    error
	Node   parser.Node
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func malformed(n parser.Node, format string, args ...any) error {
	return &Error{Err: ErrMalformedTree, Node: n, Detail: fmt.Sprintf(format, args...)}
}

// checkRange fails with ErrOverflow when an intermediate result of n is
// infinite or NaN.
func checkRange(n parser.Node, v float64) error {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return &Error{Err: ErrOverflow, Node: n, Detail: fmt.Sprint(v)}
	}
	return nil
}

// Evaluate folds the tree rooted at n into a single value. Operators of one
// level apply left to right. A leading minus negates the first term of its
// expression.
func Evaluate(n parser.Node) (float64, error) {
	switch n := n.(type) {
	case *parser.Statement:
		if n == nil || n.Expr == nil {
			return 0, malformed(n, "statement without expression")
		}
		return Evaluate(n.Expr)
	case *parser.Expression:
		if n == nil {
			return 0, malformed(n, "nil expression")
		}
		return evalExpression(n)
	case *parser.Term:
		if n == nil {
			return 0, malformed(n, "nil term")
		}
		return evalTerm(n)
	case *parser.Factor:
		if n == nil || n.Inner == nil {
			return 0, malformed(n, "factor without operand")
		}
		return Evaluate(n.Inner)
	case *parser.Number:
		if n == nil {
			return 0, malformed(n, "nil number")
		}
		return float64(n.Value), nil
	}
	return 0, malformed(n, "unknown node %T", n)
}

func evalExpression(e *parser.Expression) (float64, error) {
	parts := e.Parts
	negate := false
	if sign, ok := e.Sign(); ok {
		negate = sign == parser.Minus
		parts = parts[1:]
	}
	if len(parts)%2 != 1 {
		return 0, malformed(e, "expression with %d operands and operators", len(parts))
	}

	first, ok := parts[0].(*parser.Term)
	if !ok {
		return 0, malformed(e, "expression starts with %T", parts[0])
	}
	acc, err := Evaluate(first)
	if err != nil {
		return 0, err
	}
	if negate {
		// 0 - acc rather than -acc so "-0;" yields 0, not -0.
		acc = 0 - acc
	}

	for i := 1; i < len(parts); i += 2 {
		op, ok := parts[i].(parser.AddOp)
		if !ok {
			return 0, malformed(e, "expected operator at part %d, got %T", i, parts[i])
		}
		t, ok := parts[i+1].(*parser.Term)
		if !ok {
			return 0, malformed(e, "expected term at part %d, got %T", i+1, parts[i+1])
		}
		v, err := Evaluate(t)
		if err != nil {
			return 0, err
		}
		switch op {
		case parser.Plus:
			acc += v
		case parser.Minus:
			acc -= v
		default:
			return 0, malformed(e, "unknown operator %d", op)
		}
		if err := checkRange(e, acc); err != nil {
			return 0, err
		}
	}

	return acc, nil
}

func evalTerm(t *parser.Term) (float64, error) {
	parts := t.Parts
	if len(parts)%2 != 1 {
		return 0, malformed(t, "term with %d operands and operators", len(parts))
	}

	first, ok := parts[0].(*parser.Factor)
	if !ok {
		return 0, malformed(t, "term starts with %T", parts[0])
	}
	acc, err := Evaluate(first)
	if err != nil {
		return 0, err
	}

	for i := 1; i < len(parts); i += 2 {
		op, ok := parts[i].(parser.MulOp)
		if !ok {
			return 0, malformed(t, "expected operator at part %d, got %T", i, parts[i])
		}
		f, ok := parts[i+1].(*parser.Factor)
		if !ok {
			return 0, malformed(t, "expected factor at part %d, got %T", i+1, parts[i+1])
		}
		v, err := Evaluate(f)
		if err != nil {
			return 0, err
		}
		switch op {
		case parser.Asterisk:
			acc *= v
		case parser.Slash:
			if v == 0 {
				return 0, &Error{Err: ErrDivisionByZero, Node: f}
			}
			acc /= v
		default:
			return 0, malformed(t, "unknown operator %d", op)
		}
		if err := checkRange(t, acc); err != nil {
			return 0, err
		}
	}

	return acc, nil
}
