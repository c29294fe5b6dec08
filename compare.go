package symast

import (
	"strings"
)

// CompareNode returns an integer comparing two nodes structurally.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
func CompareNode(a, b Node) int {
	if a == nil && b != nil {
		return -1
	} else if a != nil && b == nil {
		return 1
	} else if a == nil && b == nil {
		return 0
	}

	if ak, bk := a.Kind(), b.Kind(); ak < bk {
		return -1
	} else if ak > bk {
		return 1
	}

	switch a := a.(type) {
	case *Constant:
		return compareConstant(a, b.(*Constant))
	case *Variable:
		return compareVariable(a, b.(*Variable))
	case *UnaryNode:
		return CompareNode(a.X, b.(*UnaryNode).X)
	case *BinaryNode:
		b := b.(*BinaryNode)
		if cmp := CompareNode(a.LHS, b.LHS); cmp != 0 {
			return cmp
		}
		return CompareNode(a.RHS, b.RHS)
	case *NaryNode:
		return compareNodes(a.Children, b.(*NaryNode).Children)
	case *ExtractNode:
		return compareExtractNode(a, b.(*ExtractNode))
	case *ExtendNode:
		b := b.(*ExtendNode)
		if cmp := compareUint(a.Bits, b.Bits); cmp != 0 {
			return cmp
		}
		return CompareNode(a.X, b.X)
	case *RotateNode:
		b := b.(*RotateNode)
		if cmp := compareConstant(a.Amount, b.Amount); cmp != 0 {
			return cmp
		}
		return CompareNode(a.X, b.X)
	case *IteNode:
		b := b.(*IteNode)
		return compareNodes([]Node{a.Cond, a.Then, a.Else}, []Node{b.Cond, b.Then, b.Else})
	case *LetNode:
		b := b.(*LetNode)
		if cmp := strings.Compare(a.Alias, b.Alias); cmp != 0 {
			return cmp
		} else if cmp := CompareNode(a.Bound, b.Bound); cmp != 0 {
			return cmp
		}
		return CompareNode(a.Body, b.Body)
	case *ForallNode:
		return compareForallNode(a, b.(*ForallNode))
	case *DeclareNode:
		return compareVariable(a.Var, b.(*DeclareNode).Var)
	case *AssertNode:
		return CompareNode(a.Cond, b.(*AssertNode).Cond)
	case *CompoundNode:
		return compareNodes(a.Children, b.(*CompoundNode).Children)
	case *ReferenceNode:
		b := b.(*ReferenceNode)
		if a.ID < b.ID {
			return -1
		} else if a.ID > b.ID {
			return 1
		}
		return 0
	case *StringNode:
		return strings.Compare(a.Text, b.(*StringNode).Text)
	default:
		panic("unreachable")
	}
}

func compareConstant(a, b *Constant) int {
	if cmp := compareUint(a.Width, b.Width); cmp != 0 {
		return cmp
	}
	return a.Value.Cmp(b.Value)
}

func compareVariable(a, b *Variable) int {
	if a.ID < b.ID {
		return -1
	} else if a.ID > b.ID {
		return 1
	}
	return compareUint(a.Width, b.Width)
}

func compareExtractNode(a, b *ExtractNode) int {
	if cmp := compareUint(a.High, b.High); cmp != 0 {
		return cmp
	} else if cmp := compareUint(a.Low, b.Low); cmp != 0 {
		return cmp
	}
	return CompareNode(a.X, b.X)
}

func compareForallNode(a, b *ForallNode) int {
	if cmp := compareUint(uint(len(a.Vars)), uint(len(b.Vars))); cmp != 0 {
		return cmp
	}
	for i := range a.Vars {
		if cmp := compareVariable(a.Vars[i], b.Vars[i]); cmp != 0 {
			return cmp
		}
	}
	return CompareNode(a.Body, b.Body)
}

func compareNodes(a, b []Node) int {
	if cmp := compareUint(uint(len(a)), uint(len(b))); cmp != 0 {
		return cmp
	}
	for i := range a {
		if cmp := CompareNode(a[i], b[i]); cmp != 0 {
			return cmp
		}
	}
	return 0
}

func compareUint(a, b uint) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}
