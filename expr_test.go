package symast_test

import (
	"testing"

	"github.com/benbjohnson/symast"
	"github.com/pkg/errors"
)

func TestExpr(t *testing.T) {
	t.Run("Chain", func(t *testing.T) {
		ctx := symast.NewContext()
		a, b := ctx.Expr(MustNewVariable(t, ctx, 32)), ctx.Expr(MustNewVariable(t, ctx, 32))

		n, err := a.Add(b).Mul(a.Lit(3)).Eq(b.Lit(0)).Node()
		if err != nil {
			t.Fatal(err)
		} else if got, want := symast.FormatSMT(n), "(= (bvmul (bvadd SymVar_0 SymVar_1) (_ bv3 32)) (_ bv0 32))"; got != want {
			t.Fatalf("unexpected smt: %s", got)
		} else if got, want := symast.FormatPseudo(n), "(((((SymVar_0 + SymVar_1) & 0xFFFFFFFF) * 0x3) & 0xFFFFFFFF) == 0x0)"; got != want {
			t.Fatalf("unexpected pseudo: %s", got)
		}
	})

	t.Run("StickyError", func(t *testing.T) {
		ctx := symast.NewContext()
		a, b := ctx.Expr(MustNewVariable(t, ctx, 8)), ctx.Expr(MustNewVariable(t, ctx, 16))

		e := a.Add(b).Sub(a).Not()
		if !errors.Is(e.Err(), symast.ErrInvalidWidth) {
			t.Fatalf("unexpected error: %v", e.Err())
		} else if n, err := e.Node(); n != nil || err == nil {
			t.Fatalf("unexpected result: %v, %v", n, err)
		}

		// The error from the right operand is propagated too.
		if e := a.Xor(a.Lit(256)); !errors.Is(e.Err(), symast.ErrInvalidRange) {
			t.Fatalf("unexpected error: %v", e.Err())
		}
	})

	t.Run("Nil", func(t *testing.T) {
		ctx := symast.NewContext()
		if e := ctx.Expr(nil).Neg(); !errors.Is(e.Err(), symast.ErrInvalidWidth) {
			t.Fatalf("unexpected error: %v", e.Err())
		}
	})

	t.Run("NeIsNotDistinct", func(t *testing.T) {
		ctx := symast.NewContext()
		x, y := MustNewVariable(t, ctx, 8), MustNewVariable(t, ctx, 8)

		ne, err := ctx.Expr(x).Ne(ctx.Expr(y)).Node()
		if err != nil {
			t.Fatal(err)
		}
		distinct := Must(t)(ctx.Distinct(x, y))
		if ne.Kind() != symast.LNOT || distinct.Kind() != symast.DISTINCT {
			t.Fatalf("unexpected kinds: %s, %s", ne.Kind(), distinct.Kind())
		}
	})
}
