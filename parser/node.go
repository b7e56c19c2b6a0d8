package parser

type NodeKind int

const (
	KindStatement NodeKind = iota
	KindExpression
	KindTerm
	KindFactor
	KindNumber
)

var nodeKindNames = map[NodeKind]string{
	KindStatement:  "Statement",
	KindExpression: "Expression",
	KindTerm:       "Term",
	KindFactor:     "Factor",
	KindNumber:     "Number",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by the five tree shapes. The unexported marker keeps
// the set closed.
type Node interface {
	Kind() NodeKind
	node()
}

// ExprPart is an element of an Expression: an AddOp or a *Term.
type ExprPart interface {
	exprPart()
}

// TermPart is an element of a Term: a MulOp or a *Factor.
type TermPart interface {
	termPart()
}

// Operand is the single child of a Factor: a *Number or a parenthesized
// *Expression.
type Operand interface {
	Node
	operand()
}

type AddOp int

const (
	Plus AddOp = iota
	Minus
)

func (op AddOp) String() string {
	if op == Minus {
		return "-"
	}
	return "+"
}

type MulOp int

const (
	Asterisk MulOp = iota
	Slash
)

func (op MulOp) String() string {
	if op == Slash {
		return "/"
	}
	return "*"
}

type Statement struct {
	Expr *Expression
}

// Expression holds [sign] Term { AddOp Term }. A sign may only be the
// first part.
type Expression struct {
	Parts []ExprPart
}

// Term holds Factor { MulOp Factor }.
type Term struct {
	Parts []TermPart
}

type Factor struct {
	Inner Operand
}

type Number struct {
	Value uint32
}

func (*Statement) Kind() NodeKind  { return KindStatement }
func (*Expression) Kind() NodeKind { return KindExpression }
func (*Term) Kind() NodeKind       { return KindTerm }
func (*Factor) Kind() NodeKind     { return KindFactor }
func (*Number) Kind() NodeKind     { return KindNumber }

func (*Statement) node()  {}
func (*Expression) node() {}
func (*Term) node()       {}
func (*Factor) node()     {}
func (*Number) node()     {}

func (AddOp) exprPart() {}
func (*Term) exprPart() {}

func (MulOp) termPart()   {}
func (*Factor) termPart() {}

func (*Number) operand()     {}
func (*Expression) operand() {}

// Sign returns the leading sign of the expression, if there is one.
func (e *Expression) Sign() (AddOp, bool) {
	if len(e.Parts) == 0 {
		return Plus, false
	}
	op, ok := e.Parts[0].(AddOp)
	return op, ok
}

// Terms returns the terms of the expression in order.
func (e *Expression) Terms() []*Term {
	var terms []*Term
	for _, part := range e.Parts {
		if t, ok := part.(*Term); ok {
			terms = append(terms, t)
		}
	}
	return terms
}

// Factors returns the factors of the term in order.
func (t *Term) Factors() []*Factor {
	var factors []*Factor
	for _, part := range t.Parts {
		if f, ok := part.(*Factor); ok {
			factors = append(factors, f)
		}
	}
	return factors
}

// Children returns the child nodes of n in source order. Operators are
// not nodes and are skipped.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Statement:
		if n == nil || n.Expr == nil {
			return nil
		}
		return []Node{n.Expr}
	case *Expression:
		if n == nil {
			return nil
		}
		var children []Node
		for _, t := range n.Terms() {
			children = append(children, t)
		}
		return children
	case *Term:
		if n == nil {
			return nil
		}
		var children []Node
		for _, f := range n.Factors() {
			children = append(children, f)
		}
		return children
	case *Factor:
		if n == nil || n.Inner == nil {
			return nil
		}
		return []Node{n.Inner}
	}
	return nil
}

// Walk calls fn for n and then, depth first, for each descendant. If fn
// returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, fn)
	}
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func Depth(n Node) int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, child := range Children(n) {
		if d := Depth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
