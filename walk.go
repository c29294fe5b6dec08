package symast

// Visitor represents a visitor that can be passed to Walk().
type Visitor interface {
	// Visit is executed for every visited node. Children of n are skipped
	// if the returned visitor is nil.
	Visit(n Node) Visitor
}

// Walk traverses n depth-first, parents before children.
// References are not followed into the registry.
func Walk(v Visitor, n Node) {
	if v = v.Visit(n); v == nil {
		return
	}

	for _, child := range Children(n) {
		Walk(v, child)
	}
}

// Children returns the direct children of n in rendering order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Constant, *Variable, *ReferenceNode, *StringNode:
		return nil
	case *UnaryNode:
		return []Node{n.X}
	case *BinaryNode:
		return []Node{n.LHS, n.RHS}
	case *NaryNode:
		return n.Children
	case *ExtractNode:
		return []Node{n.X}
	case *ExtendNode:
		return []Node{n.X}
	case *RotateNode:
		return []Node{n.X, n.Amount}
	case *IteNode:
		return []Node{n.Cond, n.Then, n.Else}
	case *LetNode:
		return []Node{n.Bound, n.Body}
	case *ForallNode:
		a := make([]Node, 0, len(n.Vars)+1)
		for _, v := range n.Vars {
			a = append(a, v)
		}
		return append(a, n.Body)
	case *DeclareNode:
		return []Node{n.Var}
	case *AssertNode:
		return []Node{n.Cond}
	case *CompoundNode:
		return n.Children
	default:
		panic("unreachable")
	}
}

// VisitorFunc adapts a function to the Visitor interface.
// Returning false skips the children of the visited node.
type VisitorFunc func(n Node) bool

// Visit calls fn(n).
func (fn VisitorFunc) Visit(n Node) Visitor {
	if fn(n) {
		return fn
	}
	return nil
}
