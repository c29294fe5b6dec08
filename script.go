package symast

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Script returns a complete SMT-LIB script for the given constraints: the
// logic, a declaration for every free variable, a definition for every
// registered expression reachable through references, one assertion per
// constraint, and the check-sat and get-model commands.
//
// Constraints may be 1-bit expressions, assert or declare statements,
// string literals, or compounds of those. The script is always in SMT form
// regardless of the active mode.
func (c *Context) Script(constraints ...Node) (string, error) {
	s := &scriptBuilder{
		ctx:  c,
		vars: make(map[uint64]*Variable),
		refs: make(map[uint64]*SymbolicExpression),
	}
	for _, n := range constraints {
		if err := s.addConstraint(n); err != nil {
			return "", err
		}
	}
	return s.String(), nil
}

type scriptBuilder struct {
	ctx        *Context
	vars       map[uint64]*Variable
	refs       map[uint64]*SymbolicExpression
	bound      map[uint64]int // variables bound by enclosing foralls
	quantified bool
	body       []Node
}

func (s *scriptBuilder) addConstraint(n Node) error {
	switch n := n.(type) {
	case nil:
		return errors.Wrap(ErrInvalidWidth, "script: nil constraint")
	case *CompoundNode:
		for _, child := range n.Children {
			if err := s.addConstraint(child); err != nil {
				return err
			}
		}
		return nil
	case *DeclareNode:
		s.vars[n.Var.ID] = n.Var
		return nil
	case *StringNode:
		s.body = append(s.body, n)
		return nil
	case *AssertNode:
		s.body = append(s.body, n)
		return s.collect(n.Cond)
	}

	if w := Width(n); w != WidthBool {
		return errors.Wrapf(ErrInvalidWidth, "script: constraint %s must be 1-bit, got %d bits", n.Kind(), w)
	}
	s.body = append(s.body, &AssertNode{Cond: n})
	return s.collect(n)
}

// collect records free variables and references reachable from n, following
// references into the registry. Registered expressions are defined at the top
// level so variables bound around a reference do not bind inside its target.
func (s *scriptBuilder) collect(n Node) error {
	var err error
	Walk(VisitorFunc(func(n Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *Variable:
			if s.bound[n.ID] == 0 {
				s.vars[n.ID] = n
			}
		case *ForallNode:
			s.quantified = true
			if s.bound == nil {
				s.bound = make(map[uint64]int)
			}
			for _, v := range n.Vars {
				s.bound[v.ID]++
			}
			err = s.collect(n.Body)
			for _, v := range n.Vars {
				s.bound[v.ID]--
			}
			return false
		case *ReferenceNode:
			if _, ok := s.refs[n.ID]; ok {
				return false
			}
			se, ok := s.ctx.LookupSymbolicExpression(n.ID)
			if !ok {
				err = errors.Wrapf(ErrUnknownReference, "script: ref!%d", n.ID)
				return false
			}
			s.refs[n.ID] = se
			bound := s.bound
			s.bound = nil
			err = s.collect(se.Node)
			s.bound = bound
		}
		return true
	}), n)
	return err
}

func (s *scriptBuilder) String() string {
	var buf bytes.Buffer
	if s.quantified {
		buf.WriteString("(set-logic BV)\n")
	} else {
		buf.WriteString("(set-logic QF_BV)\n")
	}

	for _, v := range s.sortedVars() {
		buf.WriteString(FormatSMT(&DeclareNode{Var: v}))
		writeComment(&buf, v.Comment)
	}

	for _, se := range s.sortedRefs() {
		fmt.Fprintf(&buf, "(define-fun ref!%d () (_ BitVec %d) %s)", se.ID, se.Width(), FormatSMT(se.Node))
		writeComment(&buf, se.Comment)
	}

	for _, n := range s.body {
		buf.WriteString(FormatSMT(n))
		buf.WriteByte('\n')
	}

	buf.WriteString("(check-sat)\n")
	buf.WriteString("(get-model)\n")
	return buf.String()
}

func (s *scriptBuilder) sortedVars() []*Variable {
	a := make([]*Variable, 0, len(s.vars))
	for _, v := range s.vars {
		a = append(a, v)
	}
	sort.Slice(a, func(i, j int) bool { return a[i].ID < a[j].ID })
	return a
}

func (s *scriptBuilder) sortedRefs() []*SymbolicExpression {
	a := make([]*SymbolicExpression, 0, len(s.refs))
	for _, se := range s.refs {
		a = append(a, se)
	}
	sort.Slice(a, func(i, j int) bool { return a[i].ID < a[j].ID })
	return a
}

func writeComment(buf *bytes.Buffer, comment string) {
	if comment != "" {
		fmt.Fprintf(buf, " ; %s", comment)
	}
	buf.WriteByte('\n')
}
