package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Op       string      `json:"op,omitempty"`
	Value    *uint32     `json:"value,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func (n *Statement) MarshalJSON() ([]byte, error)  { return json.Marshal(toJSON(n)) }
func (n *Expression) MarshalJSON() ([]byte, error) { return json.Marshal(toJSON(n)) }
func (n *Term) MarshalJSON() ([]byte, error)       { return json.Marshal(toJSON(n)) }
func (n *Factor) MarshalJSON() ([]byte, error)     { return json.Marshal(toJSON(n)) }
func (n *Number) MarshalJSON() ([]byte, error)     { return json.Marshal(toJSON(n)) }

// Operators are emitted in place as {"kind": "Op", "op": "+"} so that the
// children of expressions and terms keep their source order.
func toJSON(n Node) *jsonNode {
	jn := &jsonNode{Kind: n.Kind().String()}

	switch n := n.(type) {
	case *Statement:
		if n.Expr != nil {
			jn.Children = []*jsonNode{toJSON(n.Expr)}
		}
	case *Expression:
		for _, part := range n.Parts {
			switch part := part.(type) {
			case AddOp:
				jn.Children = append(jn.Children, opJSON(part.String()))
			case *Term:
				jn.Children = append(jn.Children, toJSON(part))
			}
		}
	case *Term:
		for _, part := range n.Parts {
			switch part := part.(type) {
			case MulOp:
				jn.Children = append(jn.Children, opJSON(part.String()))
			case *Factor:
				jn.Children = append(jn.Children, toJSON(part))
			}
		}
	case *Factor:
		if n.Inner != nil {
			jn.Children = []*jsonNode{toJSON(n.Inner)}
		}
	case *Number:
		v := n.Value
		jn.Value = &v
	}

	return jn
}

func opJSON(op string) *jsonNode {
	return &jsonNode{Kind: "Op", Op: op}
}
