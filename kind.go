package symast

import (
	"fmt"
)

// Kind identifies the operator or statement a node represents.
type Kind int

// Node kinds.
const (
	kind_begin = Kind(iota)
	BV
	VARIABLE

	unary_begin
	BVNOT
	BVNEG
	LNOT
	unary_end

	binary_begin
	arithmetic_begin
	BVAND
	BVOR
	BVXOR
	BVNAND
	BVNOR
	BVXNOR
	BVADD
	BVSUB
	BVMUL
	BVUDIV
	BVUREM
	BVSDIV
	BVSREM
	BVSMOD
	BVSHL
	BVLSHR
	BVASHR
	arithmetic_end

	compare_begin
	EQUAL
	DISTINCT
	BVULT
	BVULE
	BVUGT
	BVUGE
	BVSLT
	BVSLE
	BVSGT
	BVSGE
	compare_end

	IFF
	binary_end

	nary_begin
	LAND
	LOR
	LXOR
	CONCAT
	nary_end

	EXTRACT
	SX
	ZX
	BVROL
	BVROR
	ITE
	LET
	FORALL
	DECLARE
	ASSERT
	COMPOUND
	REFERENCE
	STRING
	kind_end
)

var kinds = [...]string{
	BV:        "bv",
	VARIABLE:  "variable",
	BVNOT:     "bvnot",
	BVNEG:     "bvneg",
	LNOT:      "not",
	BVAND:     "bvand",
	BVOR:      "bvor",
	BVXOR:     "bvxor",
	BVNAND:    "bvnand",
	BVNOR:     "bvnor",
	BVXNOR:    "bvxnor",
	BVADD:     "bvadd",
	BVSUB:     "bvsub",
	BVMUL:     "bvmul",
	BVUDIV:    "bvudiv",
	BVUREM:    "bvurem",
	BVSDIV:    "bvsdiv",
	BVSREM:    "bvsrem",
	BVSMOD:    "bvsmod",
	BVSHL:     "bvshl",
	BVLSHR:    "bvlshr",
	BVASHR:    "bvashr",
	EQUAL:     "=",
	DISTINCT:  "distinct",
	BVULT:     "bvult",
	BVULE:     "bvule",
	BVUGT:     "bvugt",
	BVUGE:     "bvuge",
	BVSLT:     "bvslt",
	BVSLE:     "bvsle",
	BVSGT:     "bvsgt",
	BVSGE:     "bvsge",
	IFF:       "iff",
	LAND:      "and",
	LOR:       "or",
	LXOR:      "xor",
	CONCAT:    "concat",
	EXTRACT:   "extract",
	SX:        "sign_extend",
	ZX:        "zero_extend",
	BVROL:     "rotate_left",
	BVROR:     "rotate_right",
	ITE:       "ite",
	LET:       "let",
	FORALL:    "forall",
	DECLARE:   "declare-fun",
	ASSERT:    "assert",
	COMPOUND:  "compound",
	REFERENCE: "reference",
	STRING:    "string",
}

// Kinds returns every valid node kind in declaration order.
func Kinds() []Kind {
	a := make([]Kind, 0, len(kinds))
	for k := kind_begin + 1; k < kind_end; k++ {
		if k.IsValid() {
			a = append(a, k)
		}
	}
	return a
}

// String returns the SMT-LIB operator name of the kind.
func (k Kind) String() string {
	if k.IsValid() {
		return kinds[k]
	}
	return fmt.Sprintf("Kind<%d>", k)
}

// IsValid returns true if k names a node kind.
func (k Kind) IsValid() bool {
	return k > kind_begin && k < kind_end && int(k) < len(kinds) && kinds[k] != ""
}

// IsUnary returns true for BVNOT, BVNEG and LNOT.
func (k Kind) IsUnary() bool {
	return k > unary_begin && k < unary_end
}

// IsBinary returns true for operators taking exactly two operands.
func (k Kind) IsBinary() bool {
	return k > binary_begin && k < binary_end && k.IsValid()
}

// IsArithmetic returns true for bitwise, arithmetic and shift operators.
// Their result has the width of their operands.
func (k Kind) IsArithmetic() bool {
	return k > arithmetic_begin && k < arithmetic_end
}

// IsCompare returns true for comparison operators. Their result is 1-bit.
func (k Kind) IsCompare() bool {
	return k > compare_begin && k < compare_end
}

// IsLogical returns true for operators over 1-bit operands: IFF, LAND, LOR and LXOR.
func (k Kind) IsLogical() bool {
	return k == IFF || k == LAND || k == LOR || k == LXOR
}

// IsNary returns true for LAND, LOR, LXOR and CONCAT.
func (k Kind) IsNary() bool {
	return k > nary_begin && k < nary_end
}
