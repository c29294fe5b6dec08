package smtlib_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/benbjohnson/symast"
	"github.com/benbjohnson/symast/smtlib"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// Ensure every archive under testdata reads back with the expected renderings.
func TestReader_Testdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)
			files := make(map[string]string)
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}

			nodes, err := smtlib.NewReader(symast.NewContext()).ReadString(files["input.smt2"])
			require.NoError(t, err)

			render := func(format func(symast.Node) string) string {
				lines := make([]string, len(nodes))
				for i, n := range nodes {
					lines[i] = format(n)
				}
				return strings.Join(lines, "\n")
			}
			if diff := cmp.Diff(strings.TrimSpace(files["smt"]), render(symast.FormatSMT)); diff != "" {
				t.Fatalf("smt: %s", diff)
			}
			if diff := cmp.Diff(strings.TrimSpace(files["pseudo"]), render(symast.FormatPseudo)); diff != "" {
				t.Fatalf("pseudo: %s", diff)
			}
		})
	}
}

// Ensure a script emitted by a context reads back into an equivalent script.
func TestReader_ScriptRoundTrip(t *testing.T) {
	ctx := symast.NewContext()
	a, err := ctx.NewVariable(32, "")
	require.NoError(t, err)
	b, err := ctx.NewVariable(32, "")
	require.NoError(t, err)

	sum, err := ctx.Bvadd(a, b)
	require.NoError(t, err)
	se, err := ctx.Register(sum, "")
	require.NoError(t, err)
	ref, err := ctx.Reference(se)
	require.NoError(t, err)
	ext, err := ctx.Extract(15, 8, ref)
	require.NoError(t, err)
	c, err := ctx.Bv(0x7F, 8)
	require.NoError(t, err)
	cond, err := ctx.Bvsle(ext, c)
	require.NoError(t, err)

	text, err := ctx.Script(cond)
	require.NoError(t, err)

	other := symast.NewContext()
	nodes, err := smtlib.NewReader(other).ReadString(text)
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	text2, err := other.Script(nodes...)
	require.NoError(t, err)
	assert.Equal(t, text, text2)
}

func TestReader_ReadTerm(t *testing.T) {
	ctx := symast.NewContext()
	r := smtlib.NewReader(ctx)
	_, err := r.ReadString("(declare-const eax (_ BitVec 32)) (declare-const flag Bool)")
	require.NoError(t, err)

	v, ok := r.Variable("eax")
	require.True(t, ok)
	assert.Equal(t, uint(32), v.Width)
	assert.Equal(t, "eax", v.Comment)

	flag, ok := r.Variable("flag")
	require.True(t, ok)
	assert.Equal(t, uint(symast.WidthBool), flag.Width)

	n, err := r.ReadTerm("(ite flag ((_ rotate_right 4) eax) (bvneg eax))")
	require.NoError(t, err)
	assert.Equal(t, "(ite SymVar_1 ((_ rotate_right 4) SymVar_0) (bvneg SymVar_0))", symast.FormatSMT(n))

	ctx.SetMode(symast.PSEUDO)
	assert.Equal(t, "(ror(SymVar_0, 0x4) if SymVar_1 else -SymVar_0)", ctx.Render(n))
}

func TestReader_References(t *testing.T) {
	ctx := symast.NewContext()
	v, err := ctx.NewVariable(8, "")
	require.NoError(t, err)
	n, err := ctx.Bvnot(v)
	require.NoError(t, err)
	_, err = ctx.Register(n, "")
	require.NoError(t, err)

	// References to expressions registered outside of the reader resolve by id.
	r := smtlib.NewReader(ctx)
	_, err = r.ReadString("(declare-fun SymVar_0 () (_ BitVec 8))")
	require.NoError(t, err)
	ref, err := r.ReadTerm("(bvand ref!0 SymVar_0)")
	require.NoError(t, err)
	assert.Equal(t, "(bvand ref!0 SymVar_1)", symast.FormatSMT(ref))

	// Named definitions resolve by name.
	_, err = r.ReadString("(define-fun mask () (_ BitVec 8) #x0f)")
	require.NoError(t, err)
	ref, err = r.ReadTerm("(bvand mask ref!0)")
	require.NoError(t, err)
	assert.Equal(t, "(bvand ref!1 ref!0)", symast.FormatSMT(ref))

	exprs := ctx.SymbolicExpressions()
	require.Len(t, exprs, 2)
	assert.Equal(t, "mask", exprs[1].Comment)
}

func TestReader_Err(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		err   error
	}{
		{"WidthMismatch", "(declare-const a (_ BitVec 8)) (declare-const b (_ BitVec 16)) (bvadd a b)", symast.ErrInvalidWidth},
		{"ExtractRange", "(declare-const a (_ BitVec 8)) ((_ extract 8 0) a)", symast.ErrInvalidRange},
		{"RotateRange", "(declare-const a (_ BitVec 8)) ((_ rotate_left 9) a)", symast.ErrInvalidRange},
		{"UnknownReference", "(bvnot ref!3)", symast.ErrUnknownReference},
		{"DefineWidth", "(define-fun f () (_ BitVec 16) #x00)", symast.ErrInvalidWidth},
		{"Redeclaration", "(declare-const a (_ BitVec 8)) (declare-const a (_ BitVec 4))", symast.ErrInvalidWidth},
		{"AssertNotBool", "(assert #x00)", symast.ErrInvalidWidth},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := smtlib.NewReader(symast.NewContext()).ReadString(tt.input)
			assert.True(t, errors.Is(err, tt.err), "unexpected error: %v", err)
		})
	}

	for _, tt := range []struct {
		name  string
		input string
		msg   string
	}{
		{"UnknownSymbol", "(bvnot y)", `unknown symbol "y"`},
		{"UnknownOperator", "(bvfoo #x00)", `unknown operator "bvfoo"`},
		{"Arity", "(bvadd #x00)", "expected 2 arguments"},
		{"Literal", "#xzz", "invalid literal"},
		{"Sort", "(declare-const a Int)", "expected (_ BitVec w)"},
		{"EmptyList", "()", "empty list"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := smtlib.NewReader(symast.NewContext()).ReadString(tt.input)
			var e *smtlib.SyntaxError
			require.True(t, errors.As(err, &e), "unexpected error: %v", err)
			assert.Equal(t, tt.msg, e.Message)
		})
	}
}
