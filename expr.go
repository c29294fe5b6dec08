package symast

import (
	"github.com/pkg/errors"
)

// Expr wraps a node so expressions can be composed with operator-style
// methods, e.g. ctx.Expr(a).Add(ctx.Expr(b)).Eq(ctx.Expr(a).Lit(0)).
//
// The first construction error is retained and propagated through every
// subsequent operation. It is returned by Node() and Err().
type Expr struct {
	ctx  *Context
	node Node
	err  error
}

// Expr returns n wrapped for operator-style composition.
func (c *Context) Expr(n Node) Expr {
	if n == nil {
		return Expr{ctx: c, err: errors.Wrap(ErrInvalidWidth, "expr: nil node")}
	}
	return Expr{ctx: c, node: n}
}

// Node returns the built node or the first error encountered.
func (e Expr) Node() (Node, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.node, nil
}

// Err returns the first error encountered while building e.
func (e Expr) Err() error { return e.err }

// String returns the node in the context's active representation mode.
func (e Expr) String() string {
	if e.err != nil {
		return "!" + e.err.Error()
	}
	return e.ctx.Render(e.node)
}

// Lit returns a constant with the same width as e.
func (e Expr) Lit(v uint64) Expr {
	if e.err != nil {
		return e
	}
	n, err := e.ctx.Bv(v, Width(e.node))
	return e.wrap(n, err)
}

func (e Expr) wrap(n Node, err error) Expr {
	if err != nil {
		return Expr{ctx: e.ctx, err: err}
	}
	return Expr{ctx: e.ctx, node: n}
}

func (e Expr) binary(op Kind, other Expr) Expr {
	if e.err != nil {
		return e
	} else if other.err != nil {
		return other
	}
	return e.wrap(e.ctx.Binary(op, e.node, other.node))
}

func (e Expr) Add(other Expr) Expr { return e.binary(BVADD, other) } // +
func (e Expr) Sub(other Expr) Expr { return e.binary(BVSUB, other) } // -
func (e Expr) Mul(other Expr) Expr { return e.binary(BVMUL, other) } // *
func (e Expr) Div(other Expr) Expr { return e.binary(BVUDIV, other) } // /
func (e Expr) Rem(other Expr) Expr { return e.binary(BVUREM, other) } // %
func (e Expr) And(other Expr) Expr { return e.binary(BVAND, other) } // &
func (e Expr) Or(other Expr) Expr  { return e.binary(BVOR, other) }  // |
func (e Expr) Xor(other Expr) Expr { return e.binary(BVXOR, other) } // ^
func (e Expr) Shl(other Expr) Expr { return e.binary(BVSHL, other) } // <<
func (e Expr) Shr(other Expr) Expr { return e.binary(BVLSHR, other) } // >>, logical
func (e Expr) Eq(other Expr) Expr  { return e.binary(EQUAL, other) } // ==
func (e Expr) Le(other Expr) Expr  { return e.binary(BVULE, other) } // <=
func (e Expr) Ge(other Expr) Expr  { return e.binary(BVUGE, other) } // >=
func (e Expr) Lt(other Expr) Expr  { return e.binary(BVULT, other) } // <
func (e Expr) Gt(other Expr) Expr  { return e.binary(BVUGT, other) } // >

// Ne returns the logical negation of Eq. It is not the same node as
// Context.Distinct even though both denote inequality.
func (e Expr) Ne(other Expr) Expr {
	eq := e.Eq(other)
	if eq.err != nil {
		return eq
	}
	return e.wrap(e.ctx.Lnot(eq.node))
}

// Not returns the bitwise negation of e (~).
func (e Expr) Not() Expr {
	if e.err != nil {
		return e
	}
	return e.wrap(e.ctx.Bvnot(e.node))
}

// Neg returns the two's complement negation of e (unary -).
func (e Expr) Neg() Expr {
	if e.err != nil {
		return e
	}
	return e.wrap(e.ctx.Bvneg(e.node))
}
