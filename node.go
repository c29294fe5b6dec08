package symast

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// Node represents a symbolic bitvector expression or statement.
//
// Nodes are immutable once constructed. Children are owned by their parent
// except for registered expressions, which are shared through ReferenceNode.
type Node interface {
	Kind() Kind
	String() string
	node()
}

func (*Constant) node()      {}
func (*Variable) node()      {}
func (*UnaryNode) node()     {}
func (*BinaryNode) node()    {}
func (*NaryNode) node()      {}
func (*ExtractNode) node()   {}
func (*ExtendNode) node()    {}
func (*RotateNode) node()    {}
func (*IteNode) node()       {}
func (*LetNode) node()       {}
func (*ForallNode) node()    {}
func (*DeclareNode) node()   {}
func (*AssertNode) node()    {}
func (*CompoundNode) node()  {}
func (*ReferenceNode) node() {}
func (*StringNode) node()    {}

// Width returns the bit width of the node. Statements such as declare,
// assert, compound and string literals have a width of zero.
func Width(n Node) uint {
	switch n := n.(type) {
	case *Constant:
		return n.Width
	case *Variable:
		return n.Width
	case *UnaryNode:
		return Width(n.X)
	case *BinaryNode:
		if n.Op.IsCompare() || n.Op.IsLogical() {
			return WidthBool
		}
		return Width(n.LHS)
	case *NaryNode:
		if n.Op != CONCAT {
			return WidthBool
		}
		var w uint
		for _, child := range n.Children {
			w += Width(child)
		}
		return w
	case *ExtractNode:
		return n.High - n.Low + 1
	case *ExtendNode:
		return Width(n.X) + n.Bits
	case *RotateNode:
		return Width(n.X)
	case *IteNode:
		return Width(n.Then)
	case *LetNode:
		return Width(n.Body)
	case *ForallNode:
		return WidthBool
	case *ReferenceNode:
		return n.Width
	case *DeclareNode, *AssertNode, *CompoundNode, *StringNode:
		return 0
	default:
		panic("unreachable")
	}
}

// Constant represents a bitvector value.
type Constant struct {
	Value *big.Int
	Width uint
}

// NewConstant returns a new constant of the given width.
// Returns ErrInvalidRange if value does not fit in width bits.
func NewConstant(value *big.Int, width uint) (*Constant, error) {
	if width == 0 {
		return nil, errors.Wrap(ErrInvalidWidth, "bv: width must be positive")
	} else if value == nil || !fits(value, width) {
		return nil, errors.Wrapf(ErrInvalidRange, "bv: value %v does not fit in %d bits", value, width)
	}
	return &Constant{Value: new(big.Int).Set(value), Width: width}, nil
}

// Kind returns BV.
func (n *Constant) Kind() Kind { return BV }

// String returns the SMT-LIB representation of the node.
func (n *Constant) String() string { return FormatSMT(n) }

// IsTrue returns true for the 1-bit constant one.
func (n *Constant) IsTrue() bool {
	return n.Width == WidthBool && n.Value.Sign() != 0
}

// IsFalse returns true for the 1-bit constant zero.
func (n *Constant) IsFalse() bool {
	return n.Width == WidthBool && n.Value.Sign() == 0
}

// Variable represents a symbolic variable allocated by a Context.
type Variable struct {
	ID      uint64
	Width   uint
	Comment string
}

// Kind returns VARIABLE.
func (n *Variable) Kind() Kind { return VARIABLE }

// String returns the SMT-LIB representation of the node.
func (n *Variable) String() string { return FormatSMT(n) }

// Name returns the rendered name of the variable. It is the same in every mode.
func (n *Variable) Name() string {
	return fmt.Sprintf("SymVar_%d", n.ID)
}

// UnaryNode represents BVNOT, BVNEG or LNOT applied to a single child.
type UnaryNode struct {
	Op Kind
	X  Node
}

// NewUnaryNode returns a new unary node.
func NewUnaryNode(op Kind, x Node) (*UnaryNode, error) {
	if !op.IsUnary() {
		return nil, errors.Wrapf(ErrUnreachableNodeKind, "%s is not a unary operator", op)
	}
	if op == LNOT {
		if err := checkBool(op, x); err != nil {
			return nil, err
		}
	} else if err := checkValue(op, x); err != nil {
		return nil, err
	}
	return &UnaryNode{Op: op, X: x}, nil
}

// Kind returns the operator kind.
func (n *UnaryNode) Kind() Kind { return n.Op }

// String returns the SMT-LIB representation of the node.
func (n *UnaryNode) String() string { return FormatSMT(n) }

// BinaryNode represents an operation on two expressions.
type BinaryNode struct {
	Op  Kind
	LHS Node
	RHS Node
}

// NewBinaryNode returns a new binary node. Operands must share a width.
func NewBinaryNode(op Kind, lhs, rhs Node) (*BinaryNode, error) {
	if !op.IsBinary() {
		return nil, errors.Wrapf(ErrUnreachableNodeKind, "%s is not a binary operator", op)
	}
	if op.IsLogical() {
		if err := checkBool(op, lhs); err != nil {
			return nil, err
		} else if err := checkBool(op, rhs); err != nil {
			return nil, err
		}
	} else {
		if err := checkValue(op, lhs); err != nil {
			return nil, err
		} else if err := checkValue(op, rhs); err != nil {
			return nil, err
		}
		if lw, rw := Width(lhs), Width(rhs); lw != rw {
			return nil, errors.Wrapf(ErrInvalidWidth, "%s: operand width mismatch: %d != %d", op, lw, rw)
		}
	}
	return &BinaryNode{Op: op, LHS: lhs, RHS: rhs}, nil
}

// Kind returns the operator kind.
func (n *BinaryNode) Kind() Kind { return n.Op }

// String returns the SMT-LIB representation of the node.
func (n *BinaryNode) String() string { return FormatSMT(n) }

// NaryNode represents LAND, LOR, LXOR or CONCAT over an ordered list of children.
// For CONCAT the first child occupies the most significant bits.
type NaryNode struct {
	Op       Kind
	Children []Node
}

// NewNaryNode returns a new n-ary node. At least one child is required.
func NewNaryNode(op Kind, children []Node) (*NaryNode, error) {
	if !op.IsNary() {
		return nil, errors.Wrapf(ErrUnreachableNodeKind, "%s is not an n-ary operator", op)
	} else if len(children) == 0 {
		return nil, errors.Wrapf(ErrInvalidRange, "%s: at least one child required", op)
	}
	for _, child := range children {
		var err error
		if op == CONCAT {
			err = checkValue(op, child)
		} else {
			err = checkBool(op, child)
		}
		if err != nil {
			return nil, err
		}
	}
	return &NaryNode{Op: op, Children: append([]Node(nil), children...)}, nil
}

// Kind returns the operator kind.
func (n *NaryNode) Kind() Kind { return n.Op }

// String returns the SMT-LIB representation of the node.
func (n *NaryNode) String() string { return FormatSMT(n) }

// ExtractNode represents the bits High..Low (inclusive) of X.
type ExtractNode struct {
	High uint
	Low  uint
	X    Node
}

// NewExtractNode returns a new extract node. Requires low <= high < width(x).
func NewExtractNode(high, low uint, x Node) (*ExtractNode, error) {
	if err := checkValue(EXTRACT, x); err != nil {
		return nil, err
	} else if low > high {
		return nil, errors.Wrapf(ErrInvalidRange, "extract: low %d > high %d", low, high)
	} else if w := Width(x); high >= w {
		return nil, errors.Wrapf(ErrInvalidRange, "extract: high %d out of bounds for width %d", high, w)
	}
	return &ExtractNode{High: high, Low: low, X: x}, nil
}

// Kind returns EXTRACT.
func (n *ExtractNode) Kind() Kind { return EXTRACT }

// String returns the SMT-LIB representation of the node.
func (n *ExtractNode) String() string { return FormatSMT(n) }

// IsIdentity returns true if the extraction covers the full width of X.
func (n *ExtractNode) IsIdentity() bool {
	return n.Low == 0 && n.High == Width(n.X)-1
}

// ExtendNode represents the sign (SX) or zero (ZX) extension of X by Bits bits.
type ExtendNode struct {
	Op   Kind
	Bits uint
	X    Node
}

// NewExtendNode returns a new extension node.
func NewExtendNode(op Kind, bits uint, x Node) (*ExtendNode, error) {
	if op != SX && op != ZX {
		return nil, errors.Wrapf(ErrUnreachableNodeKind, "%s is not an extension", op)
	} else if err := checkValue(op, x); err != nil {
		return nil, err
	}
	return &ExtendNode{Op: op, Bits: bits, X: x}, nil
}

// Kind returns SX or ZX.
func (n *ExtendNode) Kind() Kind { return n.Op }

// String returns the SMT-LIB representation of the node.
func (n *ExtendNode) String() string { return FormatSMT(n) }

// RotateNode represents the rotation of X by a constant amount of bits.
type RotateNode struct {
	Op     Kind
	Amount *Constant
	X      Node
}

// NewRotateNode returns a new rotation node. The amount must be less than width(x).
func NewRotateNode(op Kind, amount *Constant, x Node) (*RotateNode, error) {
	if op != BVROL && op != BVROR {
		return nil, errors.Wrapf(ErrUnreachableNodeKind, "%s is not a rotation", op)
	} else if err := checkValue(op, x); err != nil {
		return nil, err
	} else if amount == nil {
		return nil, errors.Wrapf(ErrInvalidRange, "%s: missing rotation amount", op)
	} else if w := Width(x); !amount.Value.IsUint64() || amount.Value.Uint64() >= uint64(w) {
		return nil, errors.Wrapf(ErrInvalidRange, "%s: amount %v out of range for width %d", op, amount.Value, w)
	}
	return &RotateNode{Op: op, Amount: amount, X: x}, nil
}

// Kind returns BVROL or BVROR.
func (n *RotateNode) Kind() Kind { return n.Op }

// String returns the SMT-LIB representation of the node.
func (n *RotateNode) String() string { return FormatSMT(n) }

// IteNode represents an if-then-else expression.
type IteNode struct {
	Cond Node
	Then Node
	Else Node
}

// NewIteNode returns a new ite node. Cond must be 1-bit and the branches share a width.
func NewIteNode(cond, then, els Node) (*IteNode, error) {
	if err := checkBool(ITE, cond); err != nil {
		return nil, err
	} else if err := checkValue(ITE, then); err != nil {
		return nil, err
	} else if err := checkValue(ITE, els); err != nil {
		return nil, err
	} else if tw, ew := Width(then), Width(els); tw != ew {
		return nil, errors.Wrapf(ErrInvalidWidth, "ite: branch width mismatch: %d != %d", tw, ew)
	}
	return &IteNode{Cond: cond, Then: then, Else: els}, nil
}

// Kind returns ITE.
func (n *IteNode) Kind() Kind { return ITE }

// String returns the SMT-LIB representation of the node.
func (n *IteNode) String() string { return FormatSMT(n) }

// LetNode binds Alias to Bound within Body.
type LetNode struct {
	Alias string
	Bound Node
	Body  Node
}

// NewLetNode returns a new let node.
func NewLetNode(alias string, bound, body Node) (*LetNode, error) {
	if alias == "" {
		return nil, errors.Wrap(ErrInvalidRange, "let: empty alias")
	} else if err := checkValue(LET, bound); err != nil {
		return nil, err
	} else if err := checkValue(LET, body); err != nil {
		return nil, err
	}
	return &LetNode{Alias: alias, Bound: bound, Body: body}, nil
}

// Kind returns LET.
func (n *LetNode) Kind() Kind { return LET }

// String returns the SMT-LIB representation of the node.
func (n *LetNode) String() string { return FormatSMT(n) }

// ForallNode universally quantifies Vars over a 1-bit Body.
type ForallNode struct {
	Vars []*Variable
	Body Node
}

// NewForallNode returns a new forall node.
func NewForallNode(vars []*Variable, body Node) (*ForallNode, error) {
	if len(vars) == 0 {
		return nil, errors.Wrap(ErrInvalidRange, "forall: at least one bound variable required")
	}
	for _, v := range vars {
		if v == nil {
			return nil, errors.Wrap(ErrInvalidRange, "forall: nil bound variable")
		}
	}
	if err := checkBool(FORALL, body); err != nil {
		return nil, err
	}
	return &ForallNode{Vars: append([]*Variable(nil), vars...), Body: body}, nil
}

// Kind returns FORALL.
func (n *ForallNode) Kind() Kind { return FORALL }

// String returns the SMT-LIB representation of the node.
func (n *ForallNode) String() string { return FormatSMT(n) }

// DeclareNode declares a variable to the solver.
type DeclareNode struct {
	Var *Variable
}

// NewDeclareNode returns a new declaration of v.
func NewDeclareNode(v *Variable) (*DeclareNode, error) {
	if v == nil {
		return nil, errors.Wrap(ErrInvalidRange, "declare-fun: nil variable")
	}
	return &DeclareNode{Var: v}, nil
}

// Kind returns DECLARE.
func (n *DeclareNode) Kind() Kind { return DECLARE }

// String returns the SMT-LIB representation of the node.
func (n *DeclareNode) String() string { return FormatSMT(n) }

// AssertNode asserts a 1-bit condition.
type AssertNode struct {
	Cond Node
}

// NewAssertNode returns a new assertion of cond.
func NewAssertNode(cond Node) (*AssertNode, error) {
	if err := checkBool(ASSERT, cond); err != nil {
		return nil, err
	}
	return &AssertNode{Cond: cond}, nil
}

// Kind returns ASSERT.
func (n *AssertNode) Kind() Kind { return ASSERT }

// String returns the SMT-LIB representation of the node.
func (n *AssertNode) String() string { return FormatSMT(n) }

// CompoundNode sequences several top-level nodes for printing.
type CompoundNode struct {
	Children []Node
}

// NewCompoundNode returns a new compound node.
func NewCompoundNode(children []Node) (*CompoundNode, error) {
	for i, child := range children {
		if child == nil {
			return nil, errors.Wrapf(ErrInvalidRange, "compound: nil child at index %d", i)
		}
	}
	return &CompoundNode{Children: append([]Node(nil), children...)}, nil
}

// Kind returns COMPOUND.
func (n *CompoundNode) Kind() Kind { return COMPOUND }

// String returns the SMT-LIB representation of the node.
func (n *CompoundNode) String() string { return FormatSMT(n) }

// ReferenceNode is a non-owning back-reference to a registered expression.
// Only a Context can create one, since the target must exist in its registry.
type ReferenceNode struct {
	ID    uint64
	Width uint
}

// Kind returns REFERENCE.
func (n *ReferenceNode) Kind() Kind { return REFERENCE }

// String returns the SMT-LIB representation of the node.
func (n *ReferenceNode) String() string { return FormatSMT(n) }

// StringNode is an opaque text annotation.
type StringNode struct {
	Text string
}

// Kind returns STRING.
func (n *StringNode) Kind() Kind { return STRING }

// String returns the SMT-LIB representation of the node.
func (n *StringNode) String() string { return FormatSMT(n) }

// checkValue returns ErrInvalidWidth if n is nil or not value-bearing.
func checkValue(op Kind, n Node) error {
	if n == nil {
		return errors.Wrapf(ErrInvalidWidth, "%s: nil operand", op)
	} else if Width(n) == 0 {
		return errors.Wrapf(ErrInvalidWidth, "%s: operand %s has no width", op, n.Kind())
	}
	return nil
}

// checkBool returns ErrInvalidWidth if n is not a 1-bit expression.
func checkBool(op Kind, n Node) error {
	if n == nil {
		return errors.Wrapf(ErrInvalidWidth, "%s: nil operand", op)
	} else if w := Width(n); w != WidthBool {
		return errors.Wrapf(ErrInvalidWidth, "%s: expected 1-bit operand, got %d bits", op, w)
	}
	return nil
}
