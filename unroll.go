package symast

import (
	"github.com/pkg/errors"
)

// Unroll returns n with every reference replaced by its registered target,
// transitively. Subtrees without references are returned unchanged.
func (c *Context) Unroll(n Node) (Node, error) {
	return c.unroll(n, make(map[uint64]Node))
}

func (c *Context) unroll(n Node, memo map[uint64]Node) (Node, error) {
	if ref, ok := n.(*ReferenceNode); ok {
		if other, ok := memo[ref.ID]; ok {
			return other, nil
		}
		se, ok := c.LookupSymbolicExpression(ref.ID)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownReference, "unroll: ref!%d", ref.ID)
		}
		other, err := c.unroll(se.Node, memo)
		if err != nil {
			return nil, err
		}
		memo[ref.ID] = other
		return other, nil
	}

	children := Children(n)
	if len(children) == 0 {
		return n, nil
	}

	var changed bool
	a := make([]Node, len(children))
	for i, child := range children {
		other, err := c.unroll(child, memo)
		if err != nil {
			return nil, err
		}
		a[i], changed = other, changed || other != child
	}
	if !changed {
		return n, nil
	}
	return c.rebuild(n, a)
}

// rebuild returns a copy of n with its children replaced, in Children() order.
func (c *Context) rebuild(n Node, children []Node) (Node, error) {
	switch n := n.(type) {
	case *UnaryNode:
		return c.Unary(n.Op, children[0])
	case *BinaryNode:
		return c.Binary(n.Op, children[0], children[1])
	case *NaryNode:
		return c.Nary(n.Op, children)
	case *ExtractNode:
		return c.Extract(n.High, n.Low, children[0])
	case *ExtendNode:
		if n.Op == SX {
			return c.Sx(n.Bits, children[0])
		}
		return c.Zx(n.Bits, children[0])
	case *RotateNode:
		if n.Op == BVROL {
			return c.Bvrol(children[0], n.Amount)
		}
		return c.Bvror(children[0], n.Amount)
	case *IteNode:
		return c.Ite(children[0], children[1], children[2])
	case *LetNode:
		return c.Let(n.Alias, children[0], children[1])
	case *ForallNode:
		return c.Forall(n.Vars, children[len(children)-1])
	case *AssertNode:
		return c.Assert(children[0])
	case *CompoundNode:
		return c.Compound(children)
	default:
		return n, nil
	}
}
