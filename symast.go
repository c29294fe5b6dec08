// Package symast implements fixed-width bitvector expression trees built
// through a Context, and renders them either as SMT-LIB terms for solvers or
// as Python-flavored pseudo-code for inspection.
package symast

import (
	"github.com/pkg/errors"
)

// Standard widths.
const (
	WidthBool = 1
	Width8    = 8
	Width16   = 16
	Width32   = 32
	Width64   = 64
)

var (
	// ErrInvalidWidth is returned when operand widths mismatch or a width is zero.
	ErrInvalidWidth = errors.New("invalid width")

	// ErrInvalidRange is returned for out-of-bounds extract, extend or rotate parameters.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnknownReference is returned when referencing an id that was never registered.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrUnreachableNodeKind is raised by the serializers for a node outside
	// of the closed set of kinds. It indicates a programming error.
	ErrUnreachableNodeKind = errors.New("unreachable node kind")
)

// unreachable panics with ErrUnreachableNodeKind for the given node.
func unreachable(n Node) {
	panic(errors.Wrapf(ErrUnreachableNodeKind, "%T", n))
}
