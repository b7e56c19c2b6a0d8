package eval

import (
	"strconv"
	"strings"

	"github.com/dhamidi/arith/parser"
)

// Show renders the tree as nested, tagged parentheses:
//
//	2+3*4;  =>  (S (E (T (F (N 2))) + (T (F (N 3)) * (F (N 4)))))
//
// The output is meant for people; it is not valid input.
func Show(n parser.Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n parser.Node) {
	switch n := n.(type) {
	case *parser.Statement:
		sb.WriteString("(S")
		if n.Expr != nil {
			sb.WriteByte(' ')
			writeNode(sb, n.Expr)
		}
		sb.WriteByte(')')
	case *parser.Expression:
		sb.WriteString("(E")
		for _, part := range n.Parts {
			sb.WriteByte(' ')
			switch part := part.(type) {
			case parser.AddOp:
				sb.WriteString(part.String())
			case *parser.Term:
				writeNode(sb, part)
			default:
				sb.WriteByte('?')
			}
		}
		sb.WriteByte(')')
	case *parser.Term:
		sb.WriteString("(T")
		for _, part := range n.Parts {
			sb.WriteByte(' ')
			switch part := part.(type) {
			case parser.MulOp:
				sb.WriteString(part.String())
			case *parser.Factor:
				writeNode(sb, part)
			default:
				sb.WriteByte('?')
			}
		}
		sb.WriteByte(')')
	case *parser.Factor:
		sb.WriteString("(F")
		if n.Inner != nil {
			sb.WriteByte(' ')
			writeNode(sb, n.Inner)
		}
		sb.WriteByte(')')
	case *parser.Number:
		sb.WriteString("(N ")
		sb.WriteString(strconv.FormatUint(uint64(n.Value), 10))
		sb.WriteByte(')')
	default:
		sb.WriteByte('?')
	}
}
