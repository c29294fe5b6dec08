package symast

import (
	"math/big"
)

// Bv returns a constant of the given value and width.
func (c *Context) Bv(value uint64, width uint) (*Constant, error) {
	return c.BvBig(new(big.Int).SetUint64(value), width)
}

// BvBig returns a constant of an arbitrary precision value.
func (c *Context) BvBig(value *big.Int, width uint) (*Constant, error) {
	n, err := NewConstant(value, width)
	if err != nil {
		return nil, err
	}
	return c.intern(n).(*Constant), nil
}

// BvTrue returns the 1-bit constant one.
func (c *Context) BvTrue() *Constant {
	n, _ := c.Bv(1, WidthBool)
	return n
}

// BvFalse returns the 1-bit constant zero.
func (c *Context) BvFalse() *Constant {
	n, _ := c.Bv(0, WidthBool)
	return n
}

// Unary returns a new unary node of kind op.
func (c *Context) Unary(op Kind, x Node) (Node, error) {
	n, err := NewUnaryNode(op, x)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Binary returns a new binary node of kind op.
func (c *Context) Binary(op Kind, lhs, rhs Node) (Node, error) {
	n, err := NewBinaryNode(op, lhs, rhs)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Nary returns a new n-ary node of kind op.
func (c *Context) Nary(op Kind, children []Node) (Node, error) {
	n, err := NewNaryNode(op, children)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

func (c *Context) Bvnot(x Node) (Node, error) { return c.Unary(BVNOT, x) }
func (c *Context) Bvneg(x Node) (Node, error) { return c.Unary(BVNEG, x) }
func (c *Context) Lnot(x Node) (Node, error)  { return c.Unary(LNOT, x) }

func (c *Context) Bvand(a, b Node) (Node, error)  { return c.Binary(BVAND, a, b) }
func (c *Context) Bvor(a, b Node) (Node, error)   { return c.Binary(BVOR, a, b) }
func (c *Context) Bvxor(a, b Node) (Node, error)  { return c.Binary(BVXOR, a, b) }
func (c *Context) Bvnand(a, b Node) (Node, error) { return c.Binary(BVNAND, a, b) }
func (c *Context) Bvnor(a, b Node) (Node, error)  { return c.Binary(BVNOR, a, b) }
func (c *Context) Bvxnor(a, b Node) (Node, error) { return c.Binary(BVXNOR, a, b) }
func (c *Context) Bvadd(a, b Node) (Node, error)  { return c.Binary(BVADD, a, b) }
func (c *Context) Bvsub(a, b Node) (Node, error)  { return c.Binary(BVSUB, a, b) }
func (c *Context) Bvmul(a, b Node) (Node, error)  { return c.Binary(BVMUL, a, b) }
func (c *Context) Bvudiv(a, b Node) (Node, error) { return c.Binary(BVUDIV, a, b) }
func (c *Context) Bvurem(a, b Node) (Node, error) { return c.Binary(BVUREM, a, b) }
func (c *Context) Bvsdiv(a, b Node) (Node, error) { return c.Binary(BVSDIV, a, b) }
func (c *Context) Bvsrem(a, b Node) (Node, error) { return c.Binary(BVSREM, a, b) }
func (c *Context) Bvsmod(a, b Node) (Node, error) { return c.Binary(BVSMOD, a, b) }
func (c *Context) Bvshl(a, b Node) (Node, error)  { return c.Binary(BVSHL, a, b) }
func (c *Context) Bvlshr(a, b Node) (Node, error) { return c.Binary(BVLSHR, a, b) }
func (c *Context) Bvashr(a, b Node) (Node, error) { return c.Binary(BVASHR, a, b) }

func (c *Context) Equal(a, b Node) (Node, error)    { return c.Binary(EQUAL, a, b) }
func (c *Context) Distinct(a, b Node) (Node, error) { return c.Binary(DISTINCT, a, b) }
func (c *Context) Bvult(a, b Node) (Node, error)    { return c.Binary(BVULT, a, b) }
func (c *Context) Bvule(a, b Node) (Node, error)    { return c.Binary(BVULE, a, b) }
func (c *Context) Bvugt(a, b Node) (Node, error)    { return c.Binary(BVUGT, a, b) }
func (c *Context) Bvuge(a, b Node) (Node, error)    { return c.Binary(BVUGE, a, b) }
func (c *Context) Bvslt(a, b Node) (Node, error)    { return c.Binary(BVSLT, a, b) }
func (c *Context) Bvsle(a, b Node) (Node, error)    { return c.Binary(BVSLE, a, b) }
func (c *Context) Bvsgt(a, b Node) (Node, error)    { return c.Binary(BVSGT, a, b) }
func (c *Context) Bvsge(a, b Node) (Node, error)    { return c.Binary(BVSGE, a, b) }
func (c *Context) Iff(a, b Node) (Node, error)      { return c.Binary(IFF, a, b) }

func (c *Context) Land(children []Node) (Node, error)   { return c.Nary(LAND, children) }
func (c *Context) Lor(children []Node) (Node, error)    { return c.Nary(LOR, children) }
func (c *Context) Lxor(children []Node) (Node, error)   { return c.Nary(LXOR, children) }
func (c *Context) Concat(children []Node) (Node, error) { return c.Nary(CONCAT, children) }

// Extract returns bits high..low of x. A full-width extraction renders as x.
func (c *Context) Extract(high, low uint, x Node) (Node, error) {
	n, err := NewExtractNode(high, low, x)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Sx returns the sign extension of x by bits.
func (c *Context) Sx(bits uint, x Node) (Node, error) {
	n, err := NewExtendNode(SX, bits, x)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Zx returns the zero extension of x by bits.
func (c *Context) Zx(bits uint, x Node) (Node, error) {
	n, err := NewExtendNode(ZX, bits, x)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Bvrol returns x rotated left by amount bits.
func (c *Context) Bvrol(x Node, amount *Constant) (Node, error) {
	n, err := NewRotateNode(BVROL, amount, x)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Bvror returns x rotated right by amount bits.
func (c *Context) Bvror(x Node, amount *Constant) (Node, error) {
	n, err := NewRotateNode(BVROR, amount, x)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Ite returns an if-then-else node.
func (c *Context) Ite(cond, then, els Node) (Node, error) {
	n, err := NewIteNode(cond, then, els)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Let binds alias to bound within body.
func (c *Context) Let(alias string, bound, body Node) (Node, error) {
	n, err := NewLetNode(alias, bound, body)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Forall quantifies vars over body.
func (c *Context) Forall(vars []*Variable, body Node) (Node, error) {
	n, err := NewForallNode(vars, body)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Declare returns a declaration statement for v.
func (c *Context) Declare(v *Variable) (Node, error) {
	n, err := NewDeclareNode(v)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Assert returns an assertion statement for cond.
func (c *Context) Assert(cond Node) (Node, error) {
	n, err := NewAssertNode(cond)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// Compound groups nodes to be printed one per line.
func (c *Context) Compound(children []Node) (Node, error) {
	n, err := NewCompoundNode(children)
	if err != nil {
		return nil, err
	}
	return c.intern(n), nil
}

// StringLiteral returns an opaque text annotation.
func (c *Context) StringLiteral(text string) Node {
	return c.intern(&StringNode{Text: text})
}
