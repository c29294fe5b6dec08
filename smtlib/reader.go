// Package smtlib reads SMT-LIB text, as emitted by the symast SMT
// serializer and script builder, back into nodes of a symast.Context.
package smtlib

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/benbjohnson/symast"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Reader translates S-expressions into nodes. Declared variables and
// defined references persist across calls so a script may be read in parts.
type Reader struct {
	ctx    *symast.Context
	vars   map[string]*symast.Variable
	refs   map[string]*symast.SymbolicExpression
	scopes []map[string]symast.Node

	// Logger receives a debug entry for every skipped command.
	Logger logrus.FieldLogger
}

// NewReader returns a new instance of Reader that builds nodes in ctx.
func NewReader(ctx *symast.Context) *Reader {
	return &Reader{
		ctx:    ctx,
		vars:   make(map[string]*symast.Variable),
		refs:   make(map[string]*symast.SymbolicExpression),
		Logger: logrus.StandardLogger(),
	}
}

// Variable returns the variable declared under name.
func (r *Reader) Variable(name string) (*symast.Variable, bool) {
	v, ok := r.vars[name]
	return v, ok
}

// ReadString parses text and returns one node per top-level term or
// statement. Solver commands such as set-logic and check-sat are skipped and
// define-fun entries are registered with the context instead of returned.
func (r *Reader) ReadString(text string) ([]symast.Node, error) {
	terms, err := ParseAll(text)
	if err != nil {
		return nil, err
	}

	var nodes []symast.Node
	for _, term := range terms {
		n, err := r.readCommand(term)
		if err != nil {
			return nil, err
		} else if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// ReadTerm parses a single expression.
func (r *Reader) ReadTerm(text string) (symast.Node, error) {
	term, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return r.read(term)
}

func (r *Reader) readCommand(term SExp) (symast.Node, error) {
	l, ok := term.(*List)
	if !ok {
		return r.read(term)
	}

	head, _ := l.Head()
	switch head {
	case "set-logic", "set-option", "set-info", "check-sat", "get-model", "get-value", "exit", "push", "pop":
		r.Logger.WithField("command", head).Debug("smtlib: skipping solver command")
		return nil, nil

	case "declare-fun":
		if l.Len() != 4 || !isEmptyList(l.Elements[2]) {
			return nil, syntaxError(l, "expected (declare-fun name () (_ BitVec w))")
		}
		return r.declare(l.Elements[1], l.Elements[3])

	case "declare-const":
		if l.Len() != 3 {
			return nil, syntaxError(l, "expected (declare-const name (_ BitVec w))")
		}
		return r.declare(l.Elements[1], l.Elements[2])

	case "define-fun":
		if l.Len() != 5 || !isEmptyList(l.Elements[2]) {
			return nil, syntaxError(l, "expected (define-fun name () (_ BitVec w) expr)")
		}
		return nil, r.define(l)

	case "assert":
		if l.Len() != 2 {
			return nil, syntaxError(l, "expected (assert expr)")
		}
		cond, err := r.read(l.Elements[1])
		if err != nil {
			return nil, err
		}
		return r.wrap(l)(r.ctx.Assert(cond))
	}

	return r.read(term)
}

func (r *Reader) declare(name, sort SExp) (symast.Node, error) {
	sym, ok := name.(*Symbol)
	if !ok {
		return nil, syntaxError(name, "expected variable name")
	}
	width, err := readSort(sort)
	if err != nil {
		return nil, err
	}

	v, ok := r.vars[sym.Value]
	if !ok {
		if v, err = r.newVariable(width, sym.Value); err != nil {
			return nil, positioned(err, name)
		}
		r.vars[sym.Value] = v
	} else if v.Width != width {
		return nil, positioned(errors.Wrapf(symast.ErrInvalidWidth, "redeclaration of %s: %d != %d", sym.Value, width, v.Width), name)
	}
	return r.wrap(name)(r.ctx.Declare(v))
}

func (r *Reader) define(l *List) error {
	sym, ok := l.Elements[1].(*Symbol)
	if !ok {
		return syntaxError(l.Elements[1], "expected definition name")
	}
	width, err := readSort(l.Elements[3])
	if err != nil {
		return err
	}
	n, err := r.read(l.Elements[4])
	if err != nil {
		return err
	} else if w := symast.Width(n); w != width {
		return positioned(errors.Wrapf(symast.ErrInvalidWidth, "define-fun %s: declared %d bits, got %d", sym.Value, width, w), l)
	}

	comment := sym.Value
	if strings.HasPrefix(comment, "ref!") {
		comment = ""
	}
	se, err := r.ctx.Register(n, comment)
	if err != nil {
		return positioned(err, l)
	}
	r.refs[sym.Value] = se
	return nil
}

// newVariable allocates a variable for name. The name is kept as the comment
// unless it is the name the variable renders as.
func (r *Reader) newVariable(width uint, name string) (*symast.Variable, error) {
	v, err := r.ctx.NewVariable(width, name)
	if err != nil {
		return nil, err
	} else if v.Name() == name {
		v.Comment = ""
	}
	return v, nil
}

// read translates a single term into a node.
func (r *Reader) read(term SExp) (symast.Node, error) {
	switch term := term.(type) {
	case *Symbol:
		return r.readSymbol(term)
	case *List:
		return r.readList(term)
	default:
		return nil, syntaxError(term, "unexpected term")
	}
}

func (r *Reader) readSymbol(sym *Symbol) (symast.Node, error) {
	s := sym.Value

	for i := len(r.scopes) - 1; i >= 0; i-- {
		if n, ok := r.scopes[i][s]; ok {
			return n, nil
		}
	}
	if v, ok := r.vars[s]; ok {
		return v, nil
	}
	if se, ok := r.refs[s]; ok {
		return r.wrap(sym)(r.ctx.Reference(se))
	}

	switch {
	case s == "true":
		return r.ctx.BvTrue(), nil
	case s == "false":
		return r.ctx.BvFalse(), nil
	case strings.HasPrefix(s, "ref!"):
		id, err := strconv.ParseUint(s[4:], 10, 64)
		if err != nil {
			return nil, syntaxError(sym, "invalid reference")
		}
		return r.wrap(sym)(r.ctx.ReferenceByID(id))
	case strings.HasPrefix(s, "#b"):
		return r.literal(sym, s[2:], 2, uint(len(s)-2))
	case strings.HasPrefix(s, "#x"):
		return r.literal(sym, s[2:], 16, uint(len(s)-2)*4)
	}
	return nil, syntaxError(sym, "unknown symbol "+strconv.Quote(s))
}

func (r *Reader) literal(sym *Symbol, digits string, base int, width uint) (symast.Node, error) {
	v, ok := new(big.Int).SetString(digits, base)
	if !ok || width == 0 {
		return nil, syntaxError(sym, "invalid literal")
	}
	return r.wrap(sym)(r.ctx.BvBig(v, width))
}

func (r *Reader) readList(l *List) (symast.Node, error) {
	if l.Len() == 0 {
		return nil, syntaxError(l, "empty list")
	}

	// Indexed application, e.g. ((_ extract 7 0) x).
	if indexed, ok := l.Elements[0].(*List); ok {
		return r.readIndexed(l, indexed)
	}

	head, _ := l.Head()
	switch head {
	case "_":
		return r.readConstant(l)
	case "ite":
		args, err := r.readArgs(l, 3)
		if err != nil {
			return nil, err
		}
		return r.wrap(l)(r.ctx.Ite(args[0], args[1], args[2]))
	case "let":
		return r.readLet(l)
	case "forall":
		return r.readForall(l)
	}

	op, ok := operators[head]
	if !ok {
		return nil, syntaxError(l, "unknown operator "+strconv.Quote(head))
	}

	switch {
	case op.IsUnary():
		args, err := r.readArgs(l, 1)
		if err != nil {
			return nil, err
		}
		return r.wrap(l)(r.ctx.Unary(op, args[0]))

	case op.IsNary():
		args, err := r.readArgs(l, -1)
		if err != nil {
			return nil, err
		}
		return r.wrap(l)(r.ctx.Nary(op, args))

	default:
		args, err := r.readArgs(l, 2)
		if err != nil {
			return nil, err
		}
		return r.wrap(l)(r.ctx.Binary(op, args[0], args[1]))
	}
}

// readArgs reads the arguments following the head of l. If n >= 0 exactly n
// arguments are required.
func (r *Reader) readArgs(l *List, n int) ([]symast.Node, error) {
	if n >= 0 && l.Len()-1 != n {
		return nil, syntaxError(l, "expected "+strconv.Itoa(n)+" arguments")
	}
	args := make([]symast.Node, 0, l.Len()-1)
	for _, e := range l.Elements[1:] {
		arg, err := r.read(e)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// readConstant reads (_ bvN W).
func (r *Reader) readConstant(l *List) (symast.Node, error) {
	if l.Len() != 3 {
		return nil, syntaxError(l, "expected (_ bvN width)")
	}
	sym, ok := l.Elements[1].(*Symbol)
	if !ok || !strings.HasPrefix(sym.Value, "bv") {
		return nil, syntaxError(l, "expected (_ bvN width)")
	}
	v, ok := new(big.Int).SetString(sym.Value[2:], 10)
	if !ok {
		return nil, syntaxError(sym, "invalid bitvector value")
	}
	width, err := readUint(l.Elements[2])
	if err != nil {
		return nil, err
	}
	return r.wrap(l)(r.ctx.BvBig(v, width))
}

func (r *Reader) readIndexed(l, indexed *List) (symast.Node, error) {
	if !indexed.MatchSymbols(2, "_") {
		return nil, syntaxError(indexed, "expected indexed operator")
	}
	sym, ok := indexed.Elements[1].(*Symbol)
	if !ok {
		return nil, syntaxError(indexed, "expected indexed operator")
	}
	name := sym.Value

	indices := make([]uint, 0, 2)
	for _, e := range indexed.Elements[2:] {
		i, err := readUint(e)
		if err != nil {
			return nil, err
		}
		indices = append(indices, i)
	}

	args, err := r.readArgs(l, 1)
	if err != nil {
		return nil, err
	}
	x := args[0]

	switch {
	case name == "extract" && len(indices) == 2:
		return r.wrap(l)(r.ctx.Extract(indices[0], indices[1], x))
	case name == "sign_extend" && len(indices) == 1:
		return r.wrap(l)(r.ctx.Sx(indices[0], x))
	case name == "zero_extend" && len(indices) == 1:
		return r.wrap(l)(r.ctx.Zx(indices[0], x))
	case (name == "rotate_left" || name == "rotate_right") && len(indices) == 1:
		amount, err := r.ctx.Bv(uint64(indices[0]), symast.Width(x))
		if err != nil {
			return nil, positioned(err, indexed)
		}
		if name == "rotate_left" {
			return r.wrap(l)(r.ctx.Bvrol(x, amount))
		}
		return r.wrap(l)(r.ctx.Bvror(x, amount))
	}
	return nil, syntaxError(indexed, "unknown indexed operator "+strconv.Quote(name))
}

// readLet reads (let ((a x) (b y)) body). Multiple bindings produce nested
// let nodes. Inside body each alias denotes its bound expression.
func (r *Reader) readLet(l *List) (symast.Node, error) {
	if l.Len() != 3 {
		return nil, syntaxError(l, "expected (let ((alias expr)...) body)")
	}
	bindings, ok := l.Elements[1].(*List)
	if !ok || bindings.Len() == 0 {
		return nil, syntaxError(l.Elements[1], "expected binding list")
	}

	aliases := make([]string, 0, bindings.Len())
	bound := make([]symast.Node, 0, bindings.Len())
	scope := make(map[string]symast.Node)
	for _, e := range bindings.Elements {
		b, ok := e.(*List)
		if !ok || b.Len() != 2 {
			return nil, syntaxError(e, "expected (alias expr)")
		}
		alias, ok := b.Elements[0].(*Symbol)
		if !ok {
			return nil, syntaxError(b, "expected alias name")
		}
		n, err := r.read(b.Elements[1])
		if err != nil {
			return nil, err
		}
		aliases, bound = append(aliases, alias.Value), append(bound, n)
		scope[alias.Value] = n
	}

	r.scopes = append(r.scopes, scope)
	body, err := r.read(l.Elements[2])
	r.scopes = r.scopes[:len(r.scopes)-1]
	if err != nil {
		return nil, err
	}

	for i := len(aliases) - 1; i >= 0; i-- {
		if body, err = r.ctx.Let(aliases[i], bound[i], body); err != nil {
			return nil, positioned(err, l)
		}
	}
	return body, nil
}

// readForall reads (forall ((x (_ BitVec w))...) body). Bound names already
// declared with the same width reuse their variable.
func (r *Reader) readForall(l *List) (symast.Node, error) {
	if l.Len() != 3 {
		return nil, syntaxError(l, "expected (forall ((name sort)...) body)")
	}
	bindings, ok := l.Elements[1].(*List)
	if !ok || bindings.Len() == 0 {
		return nil, syntaxError(l.Elements[1], "expected binding list")
	}

	vars := make([]*symast.Variable, 0, bindings.Len())
	scope := make(map[string]symast.Node)
	for _, e := range bindings.Elements {
		b, ok := e.(*List)
		if !ok || b.Len() != 2 {
			return nil, syntaxError(e, "expected (name sort)")
		}
		name, ok := b.Elements[0].(*Symbol)
		if !ok {
			return nil, syntaxError(b, "expected variable name")
		}
		width, err := readSort(b.Elements[1])
		if err != nil {
			return nil, err
		}

		v, ok := r.vars[name.Value]
		if !ok || v.Width != width {
			if v, err = r.newVariable(width, name.Value); err != nil {
				return nil, positioned(err, b)
			}
		}
		vars = append(vars, v)
		scope[name.Value] = v
	}

	r.scopes = append(r.scopes, scope)
	body, err := r.read(l.Elements[2])
	r.scopes = r.scopes[:len(r.scopes)-1]
	if err != nil {
		return nil, err
	}
	return r.wrap(l)(r.ctx.Forall(vars, body))
}

// wrap returns a function that attaches the position of term to a
// construction error.
func (r *Reader) wrap(term SExp) func(symast.Node, error) (symast.Node, error) {
	return func(n symast.Node, err error) (symast.Node, error) {
		if err != nil {
			return nil, positioned(err, term)
		}
		return n, nil
	}
}

// readSort reads (_ BitVec w) or Bool, which is modeled as a 1-bit vector.
func readSort(term SExp) (uint, error) {
	if sym, ok := term.(*Symbol); ok && sym.Value == "Bool" {
		return symast.WidthBool, nil
	}
	l, ok := term.(*List)
	if !ok || l.Len() != 3 || !l.MatchSymbols(2, "_", "BitVec") {
		return 0, syntaxError(term, "expected (_ BitVec w)")
	}
	return readUint(l.Elements[2])
}

func readUint(term SExp) (uint, error) {
	sym, ok := term.(*Symbol)
	if !ok {
		return 0, syntaxError(term, "expected numeral")
	}
	v, err := strconv.ParseUint(sym.Value, 10, 32)
	if err != nil {
		return 0, syntaxError(term, "invalid numeral "+strconv.Quote(sym.Value))
	}
	return uint(v), nil
}

func isEmptyList(term SExp) bool {
	l, ok := term.(*List)
	return ok && l.Len() == 0
}

func syntaxError(term SExp, msg string) *SyntaxError {
	return &SyntaxError{Offset: term.Pos(), Message: msg}
}

// positioned annotates a construction error with the offset of term while
// keeping its sentinel cause.
func positioned(err error, term SExp) error {
	return errors.WithMessagef(err, "offset %d", term.Pos())
}

// operators maps SMT-LIB operator names to node kinds.
var operators = func() map[string]symast.Kind {
	m := make(map[string]symast.Kind)
	for _, k := range symast.Kinds() {
		if k.IsUnary() || k.IsBinary() || k.IsNary() {
			m[k.String()] = k
		}
	}
	return m
}()
