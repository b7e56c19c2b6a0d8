// Package parse recognizes token streams against an EBNF grammar and
// produces concrete syntax trees.
package parse

import (
	"strings"

	"github.com/dhamidi/arith/ebnflex"
)

// Span is a byte range in the source.
type Span struct {
	Start int
	End   int
}

// Node represents a node in the concrete syntax tree.
// Leaf nodes have a non-nil Token; interior nodes have Children.
type Node struct {
	Kind     string         // Production name or token kind
	Children []*Node        // Child nodes (nil for terminals)
	Token    *ebnflex.Token // The token (non-nil for terminals)
	Span     Span
}

// IsTerminal returns true if this is a leaf node (token).
func (n *Node) IsTerminal() bool {
	return n.Token != nil
}

// Text returns the token literal for terminals and the empty string for
// everything else.
func (n *Node) Text() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// AddChild appends a child node and extends the span to cover it.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	if len(n.Children) == 0 {
		n.Span.Start = child.Span.Start
	}
	n.Children = append(n.Children, child)
	n.Span.End = child.Span.End
}

// String renders the tree as an S-expression. Terminals appear as their
// literal text.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n.IsTerminal() {
		sb.WriteString(n.Token.Literal)
		return
	}
	sb.WriteString("(")
	sb.WriteString(n.Kind)
	for _, child := range n.Children {
		sb.WriteString(" ")
		child.write(sb)
	}
	sb.WriteString(")")
}

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// NewTerminal creates a terminal node from a token.
func NewTerminal(tok ebnflex.Token) *Node {
	return &Node{
		Kind:  tok.Kind,
		Token: &tok,
		Span:  Span{Start: tok.Offset, End: tok.Offset + len(tok.Literal)},
	}
}

// NewNonTerminal creates a non-terminal node.
func NewNonTerminal(kind string) *Node {
	return &Node{Kind: kind}
}
