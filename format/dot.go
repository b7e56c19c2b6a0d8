package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/arith/parser"
)

// DotEncoder writes a GraphViz digraph with one node per tree node.
// Operators become edge labels on the right operand:
//
//	digraph ast {
//	  n0 [label="Statement"];
//	  n1 [label="Expression"];
//	  n0 -> n1;
//	  ...
//	}
type DotEncoder struct {
	w    io.Writer
	stmt *parser.Statement
}

func NewDotEncoder(w io.Writer) *DotEncoder {
	return &DotEncoder{w: w}
}

func (e *DotEncoder) Encode(stmt *parser.Statement) error {
	e.stmt = stmt
	return write(e.w, e)
}

func (e *DotEncoder) MarshalText() ([]byte, error) {
	if e.stmt == nil {
		return nil, errNoStatement
	}
	g := &dotGraph{}
	g.sb.WriteString("digraph ast {\n")
	g.sb.WriteString("  node [shape=box];\n")
	g.add(e.stmt)
	g.sb.WriteString("}\n")
	return []byte(g.sb.String()), nil
}

type dotGraph struct {
	sb   strings.Builder
	next int
}

func (g *dotGraph) add(n parser.Node) int {
	id := g.next
	g.next++
	fmt.Fprintf(&g.sb, "  n%d [label=%q];\n", id, dotLabel(n))

	switch n := n.(type) {
	case *parser.Statement:
		if n.Expr != nil {
			g.edge(id, g.add(n.Expr), "")
		}
	case *parser.Expression:
		op := ""
		for _, part := range n.Parts {
			switch part := part.(type) {
			case parser.AddOp:
				op = part.String()
			case *parser.Term:
				g.edge(id, g.add(part), op)
				op = ""
			}
		}
	case *parser.Term:
		op := ""
		for _, part := range n.Parts {
			switch part := part.(type) {
			case parser.MulOp:
				op = part.String()
			case *parser.Factor:
				g.edge(id, g.add(part), op)
				op = ""
			}
		}
	case *parser.Factor:
		if n.Inner != nil {
			g.edge(id, g.add(n.Inner), "")
		}
	}
	return id
}

func (g *dotGraph) edge(from, to int, label string) {
	if label == "" {
		fmt.Fprintf(&g.sb, "  n%d -> n%d;\n", from, to)
		return
	}
	fmt.Fprintf(&g.sb, "  n%d -> n%d [label=%q];\n", from, to, label)
}

func dotLabel(n parser.Node) string {
	if num, ok := n.(*parser.Number); ok {
		return fmt.Sprintf("Number %d", num.Value)
	}
	return n.Kind().String()
}
