package symast_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/benbjohnson/symast"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_NewVariable(t *testing.T) {
	t.Run("Sequential", func(t *testing.T) {
		ctx := symast.NewContext()
		for i := uint64(0); i < 4; i++ {
			v, err := ctx.NewVariable(32, "")
			require.NoError(t, err)
			assert.Equal(t, i, v.ID)
			assert.Equal(t, uint(32), v.Width)
		}
	})

	t.Run("ErrInvalidWidth", func(t *testing.T) {
		ctx := symast.NewContext()
		_, err := ctx.NewVariable(0, "")
		require.True(t, errors.Is(err, symast.ErrInvalidWidth), "unexpected error: %v", err)

		// A failed allocation does not consume an id.
		v, err := ctx.NewVariable(8, "rax")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), v.ID)
		assert.Equal(t, "rax", v.Comment)
		assert.Equal(t, "SymVar_0", v.Name())
	})

	t.Run("NamesAreModeIndependent", func(t *testing.T) {
		ctx := symast.NewContext()
		v := MustNewVariable(t, ctx, 8)
		assert.Equal(t, "SymVar_0", ctx.Render(v))
		ctx.SetMode(symast.PSEUDO)
		assert.Equal(t, "SymVar_0", ctx.Render(v))
	})

	t.Run("Concurrent", func(t *testing.T) {
		ctx := symast.NewContext()
		var wg sync.WaitGroup
		ids := make(chan uint64, 100)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := ctx.NewVariable(8, "")
				if err == nil {
					ids <- v.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[uint64]bool)
		for id := range ids {
			require.False(t, seen[id], "duplicate id: %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, 100)
	})
}

func TestParseMode(t *testing.T) {
	for _, tt := range []struct {
		s    string
		mode symast.Mode
	}{
		{"smt", symast.SMT},
		{"SMT2", symast.SMT},
		{"pseudo", symast.PSEUDO},
		{"Python", symast.PSEUDO},
	} {
		mode, err := symast.ParseMode(tt.s)
		require.NoError(t, err)
		assert.Equal(t, tt.mode, mode, tt.s)
	}

	_, err := symast.ParseMode("lisp")
	assert.Error(t, err)

	assert.Equal(t, "smt", symast.SMT.String())
	assert.Equal(t, "pseudo", symast.PSEUDO.String())
}

func TestContext_SetMode(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	ctx := symast.NewContext(symast.WithLogger(logger))
	ctx.SetMode(symast.PSEUDO)
	assert.Equal(t, symast.PSEUDO, ctx.Mode())
	assert.Contains(t, buf.String(), "representation mode changed")

	buf.Reset()
	ctx.SetMode(symast.PSEUDO)
	assert.NotContains(t, buf.String(), "representation mode changed")
}

func TestContext_Sharing(t *testing.T) {
	t.Run("Enabled", func(t *testing.T) {
		ctx := symast.NewContext(symast.WithSharing(true))
		a, b := MustNewVariable(t, ctx, 8), MustNewVariable(t, ctx, 8)

		x := Must(t)(ctx.Bvadd(a, b))
		y := Must(t)(ctx.Bvadd(a, b))
		require.True(t, x == y, "expected shared node")

		z := Must(t)(ctx.Bvadd(b, a))
		require.False(t, x == z, "operand order must be preserved")

		// Parents over shared children are shared too.
		p := Must(t)(ctx.Bvmul(x, Must(t)(ctx.Bv(2, 8))))
		q := Must(t)(ctx.Bvmul(y, Must(t)(ctx.Bv(2, 8))))
		require.True(t, p == q, "expected shared parent")

		stats := ctx.Stats()
		assert.Equal(t, uint(7), stats.CacheLookups)
		assert.Equal(t, uint(3), stats.CacheHits)
		assert.Equal(t, uint(4), stats.CachedNodes)
	})

	t.Run("Disabled", func(t *testing.T) {
		ctx := symast.NewContext()
		a, b := MustNewVariable(t, ctx, 8), MustNewVariable(t, ctx, 8)
		x := Must(t)(ctx.Bvadd(a, b))
		y := Must(t)(ctx.Bvadd(a, b))
		require.False(t, x == y, "unexpected shared node")
		assert.Equal(t, 0, symast.CompareNode(x, y))
		assert.Equal(t, symast.Stats{}, ctx.Stats())
	})

	t.Run("ConstantsByWidth", func(t *testing.T) {
		ctx := symast.NewContext(symast.WithSharing(true))
		a := Must(t)(ctx.Bv(1, 8))
		b := Must(t)(ctx.Bv(1, 16))
		require.False(t, a == b, "constants of different widths must not be shared")
		require.True(t, ctx.BvTrue() == ctx.BvTrue())
	})
}

func TestContext_Register(t *testing.T) {
	ctx := symast.NewContext()
	a, b := MustNewVariable(t, ctx, 8), MustNewVariable(t, ctx, 8)

	se0, err := ctx.Register(Must(t)(ctx.Bvadd(a, b)), "sum")
	require.NoError(t, err)
	se1, err := ctx.Register(Must(t)(ctx.Bvsub(a, b)), "difference")
	require.NoError(t, err)

	// Expression ids are independent of variable ids.
	assert.Equal(t, uint64(0), se0.ID)
	assert.Equal(t, uint64(1), se1.ID)
	assert.Equal(t, uint(8), se1.Width())

	other, ok := ctx.LookupSymbolicExpression(1)
	require.True(t, ok)
	assert.True(t, other == se1)

	_, ok = ctx.LookupSymbolicExpression(2)
	assert.False(t, ok)

	exprs := ctx.SymbolicExpressions()
	require.Len(t, exprs, 2)
	assert.Equal(t, []string{"sum", "difference"}, []string{exprs[0].Comment, exprs[1].Comment})

	ref, err := ctx.ReferenceByID(1)
	require.NoError(t, err)
	assert.Equal(t, "ref!1", symast.FormatSMT(ref))
	assert.Equal(t, "ref_1", symast.FormatPseudo(ref))

	// References compose like any other value-bearing node.
	n, err := ctx.Bvxor(ref, a)
	require.NoError(t, err)
	assert.Equal(t, "(bvxor ref!1 SymVar_0)", symast.FormatSMT(n))

	t.Run("ErrInvalidWidth", func(t *testing.T) {
		_, err := ctx.Register(Must(t)(ctx.Declare(a)), "")
		assert.True(t, errors.Is(err, symast.ErrInvalidWidth), "unexpected error: %v", err)
		assert.Len(t, ctx.SymbolicExpressions(), 2)
	})
}
