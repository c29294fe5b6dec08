package symast_test

import (
	"testing"

	"github.com/benbjohnson/symast"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_Script(t *testing.T) {
	t.Run("QF_BV", func(t *testing.T) {
		ctx := symast.NewContext()
		a, err := ctx.NewVariable(8, "al")
		require.NoError(t, err)
		b, err := ctx.NewVariable(8, "")
		require.NoError(t, err)
		must := Must(t)

		se, err := ctx.Register(must(ctx.Bvadd(a, b)), "add al, bl")
		require.NoError(t, err)
		ref := must(ctx.Reference(se))

		s, err := ctx.Script(
			must(ctx.Equal(ref, must(ctx.Bv(16, 8)))),
			must(ctx.Assert(must(ctx.Bvult(a, b)))),
			ctx.StringLiteral("; path constraint"),
		)
		require.NoError(t, err)
		assert.Equal(t, ""+
			"(set-logic QF_BV)\n"+
			"(declare-fun SymVar_0 () (_ BitVec 8)) ; al\n"+
			"(declare-fun SymVar_1 () (_ BitVec 8))\n"+
			"(define-fun ref!0 () (_ BitVec 8) (bvadd SymVar_0 SymVar_1)) ; add al, bl\n"+
			"(assert (= ref!0 (_ bv16 8)))\n"+
			"(assert (bvult SymVar_0 SymVar_1))\n"+
			"; path constraint\n"+
			"(check-sat)\n"+
			"(get-model)\n", s)
	})

	t.Run("NestedReferences", func(t *testing.T) {
		ctx := symast.NewContext()
		a := MustNewVariable(t, ctx, 32)
		must := Must(t)

		se0, err := ctx.Register(must(ctx.Bvnot(a)), "")
		require.NoError(t, err)
		se1, err := ctx.Register(must(ctx.Bvneg(must(ctx.Reference(se0)))), "")
		require.NoError(t, err)

		s, err := ctx.Script(must(ctx.Equal(must(ctx.Reference(se1)), a)))
		require.NoError(t, err)
		assert.Equal(t, ""+
			"(set-logic QF_BV)\n"+
			"(declare-fun SymVar_0 () (_ BitVec 32))\n"+
			"(define-fun ref!0 () (_ BitVec 32) (bvnot SymVar_0))\n"+
			"(define-fun ref!1 () (_ BitVec 32) (bvneg ref!0))\n"+
			"(assert (= ref!1 SymVar_0))\n"+
			"(check-sat)\n"+
			"(get-model)\n", s)
	})

	t.Run("Quantified", func(t *testing.T) {
		ctx := symast.NewContext()
		x, y := MustNewVariable(t, ctx, 8), MustNewVariable(t, ctx, 8)
		must := Must(t)

		s, err := ctx.Script(must(ctx.Forall([]*symast.Variable{x}, must(ctx.Bvuge(must(ctx.Bvor(x, y)), x)))))
		require.NoError(t, err)
		assert.Equal(t, ""+
			"(set-logic BV)\n"+
			"(declare-fun SymVar_1 () (_ BitVec 8))\n"+
			"(assert (forall ((SymVar_0 (_ BitVec 8))) (bvuge (bvor SymVar_0 SymVar_1) SymVar_0)))\n"+
			"(check-sat)\n"+
			"(get-model)\n", s)
	})

	t.Run("Compound", func(t *testing.T) {
		ctx := symast.NewContext()
		a := MustNewVariable(t, ctx, 8)
		must := Must(t)

		s, err := ctx.Script(must(ctx.Compound([]symast.Node{
			must(ctx.Declare(a)),
			must(ctx.Distinct(a, must(ctx.Bv(0, 8)))),
		})))
		require.NoError(t, err)
		assert.Equal(t, ""+
			"(set-logic QF_BV)\n"+
			"(declare-fun SymVar_0 () (_ BitVec 8))\n"+
			"(assert (distinct SymVar_0 (_ bv0 8)))\n"+
			"(check-sat)\n"+
			"(get-model)\n", s)
	})

	t.Run("ErrInvalidWidth", func(t *testing.T) {
		ctx := symast.NewContext()
		a := MustNewVariable(t, ctx, 8)
		_, err := ctx.Script(a)
		assert.True(t, errors.Is(err, symast.ErrInvalidWidth), "unexpected error: %v", err)
	})
}
