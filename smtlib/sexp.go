package smtlib

import (
	"fmt"
	"strings"
)

// SExp is an S-Expression: either a List of zero or more S-Expressions, or
// a Symbol.
type SExp interface {
	// Pos returns the offset of the expression in the parsed text.
	Pos() int
	// String generates a string representation.
	String() string
}

// List represents a list of zero or more S-Expressions.
type List struct {
	Offset   int
	Elements []SExp
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*List)(nil)

// Pos returns the offset of the opening parenthesis.
func (l *List) Pos() int { return l.Offset }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

func (l *List) String() string {
	a := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		a[i] = e.String()
	}
	return "(" + strings.Join(a, " ") + ")"
}

// Head returns the value of the first element if it is a symbol.
func (l *List) Head() (string, bool) {
	if len(l.Elements) == 0 {
		return "", false
	}
	sym, ok := l.Elements[0].(*Symbol)
	if !ok {
		return "", false
	}
	return sym.Value, true
}

// MatchSymbols matches a list which starts with at least n symbols, of which the
// first m match the given strings.
func (l *List) MatchSymbols(n int, symbols ...string) bool {
	if len(l.Elements) < n || len(symbols) > n {
		return false
	}

	for i := 0; i < len(symbols); i++ {
		switch ith := l.Elements[i].(type) {
		case *Symbol:
			if ith.Value != symbols[i] {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// Symbol represents a terminating symbol.
type Symbol struct {
	Offset int
	Value  string
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ SExp = (*Symbol)(nil)

// Pos returns the offset of the first character of the symbol.
func (s *Symbol) Pos() int { return s.Offset }

func (s *Symbol) String() string { return s.Value }

// SyntaxError is a structured error which retains the index into the original
// string where an error occurred, along with an error message.
type SyntaxError struct {
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Message)
}
