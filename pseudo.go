package symast

import (
	"bytes"
	"fmt"
)

// FormatPseudo returns a human-readable, Python-flavored representation of n.
//
// The output approximates the value of the expression using unbounded
// integers masked to the node width. Signedness is not represented, negation
// is not masked, and binders and declarations are rendered for documentation
// only.
func FormatPseudo(n Node) string {
	var buf bytes.Buffer
	writePseudo(&buf, n)
	return buf.String()
}

// pseudoOps maps binary operators to their infix form.
var pseudoOps = map[Kind]string{
	BVAND:    "&",
	BVOR:     "|",
	BVXOR:    "^",
	BVNAND:   "&",
	BVNOR:    "|",
	BVXNOR:   "^",
	BVADD:    "+",
	BVSUB:    "-",
	BVMUL:    "*",
	BVSHL:    "<<",
	BVUDIV:   "/",
	BVSDIV:   "/",
	BVUREM:   "%",
	BVSREM:   "%",
	BVSMOD:   "%",
	BVLSHR:   ">>",
	BVASHR:   ">>",
	EQUAL:    "==",
	DISTINCT: "!=",
	BVULE:    "<=",
	BVSLE:    "<=",
	BVUGE:    ">=",
	BVSGE:    ">=",
	BVULT:    "<",
	BVSLT:    "<",
	BVUGT:    ">",
	BVSGT:    ">",
}

func writePseudo(buf *bytes.Buffer, n Node) {
	switch n := n.(type) {
	case *Constant:
		buf.WriteString(hexString(n.Value))

	case *Variable:
		buf.WriteString(n.Name())

	case *UnaryNode:
		switch n.Op {
		case BVNOT:
			buf.WriteString("(~(")
			writePseudo(buf, n.X)
			fmt.Fprintf(buf, ") & %s)", hexString(Mask(Width(n))))
		case BVNEG:
			buf.WriteByte('-')
			writePseudo(buf, n.X)
		case LNOT:
			buf.WriteString("not ")
			writePseudo(buf, n.X)
		default:
			unreachable(n)
		}

	case *BinaryNode:
		writePseudoBinary(buf, n)

	case *NaryNode:
		writePseudoNary(buf, n)

	case *ExtractNode:
		if n.IsIdentity() {
			writePseudo(buf, n.X)
			return
		}
		mask := hexString(Mask(Width(n)))
		if n.Low == 0 {
			buf.WriteByte('(')
			writePseudo(buf, n.X)
			fmt.Fprintf(buf, " & %s)", mask)
			return
		}
		buf.WriteString("((")
		writePseudo(buf, n.X)
		fmt.Fprintf(buf, " >> %d) & %s)", n.Low, mask)

	case *ExtendNode:
		if n.Op == ZX {
			writePseudo(buf, n.X)
			return
		}
		fmt.Fprintf(buf, "sx(0x%X, ", n.Bits)
		writePseudo(buf, n.X)
		buf.WriteByte(')')

	case *RotateNode:
		if n.Op == BVROL {
			buf.WriteString("rol(")
		} else {
			buf.WriteString("ror(")
		}
		writePseudo(buf, n.X)
		buf.WriteString(", ")
		writePseudo(buf, n.Amount)
		buf.WriteByte(')')

	case *IteNode:
		buf.WriteByte('(')
		writePseudo(buf, n.Then)
		buf.WriteString(" if ")
		writePseudo(buf, n.Cond)
		buf.WriteString(" else ")
		writePseudo(buf, n.Else)
		buf.WriteByte(')')

	case *LetNode:
		writePseudo(buf, n.Body)

	case *ForallNode:
		buf.WriteString("forall([")
		for i, v := range n.Vars {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(v.Name())
		}
		buf.WriteString("], ")
		writePseudo(buf, n.Body)
		buf.WriteByte(')')

	case *DeclareNode:
		fmt.Fprintf(buf, "%s = 0xdeadbeef", n.Var.Name())

	case *AssertNode:
		buf.WriteString("assert_(")
		writePseudo(buf, n.Cond)
		buf.WriteByte(')')

	case *CompoundNode:
		for i, child := range n.Children {
			if i > 0 {
				buf.WriteByte('\n')
			}
			writePseudo(buf, child)
		}

	case *ReferenceNode:
		fmt.Fprintf(buf, "ref_%d", n.ID)

	case *StringNode:
		buf.WriteString(n.Text)

	default:
		unreachable(n)
	}
}

func writePseudoBinary(buf *bytes.Buffer, n *BinaryNode) {
	switch n.Op {
	case BVAND, BVOR, BVXOR, BVUDIV, BVUREM, BVSDIV, BVSREM, BVSMOD, BVLSHR, BVASHR,
		EQUAL, DISTINCT, BVULE, BVUGE, BVULT, BVUGT, BVSLE, BVSGE, BVSLT, BVSGT:
		buf.WriteByte('(')
		writePseudo(buf, n.LHS)
		fmt.Fprintf(buf, " %s ", pseudoOps[n.Op])
		writePseudo(buf, n.RHS)
		buf.WriteByte(')')

	case BVADD, BVSUB, BVMUL, BVSHL:
		buf.WriteString("((")
		writePseudo(buf, n.LHS)
		fmt.Fprintf(buf, " %s ", pseudoOps[n.Op])
		writePseudo(buf, n.RHS)
		fmt.Fprintf(buf, ") & %s)", hexString(Mask(Width(n))))

	case BVNAND, BVNOR, BVXNOR:
		buf.WriteString("(~(")
		writePseudo(buf, n.LHS)
		fmt.Fprintf(buf, " %s ", pseudoOps[n.Op])
		writePseudo(buf, n.RHS)
		fmt.Fprintf(buf, ") & %s)", hexString(Mask(Width(n))))

	case IFF:
		buf.WriteByte('(')
		writePseudo(buf, n.LHS)
		buf.WriteString(" and ")
		writePseudo(buf, n.RHS)
		buf.WriteString(") or (not ")
		writePseudo(buf, n.LHS)
		buf.WriteString(" and not ")
		writePseudo(buf, n.RHS)
		buf.WriteByte(')')

	default:
		unreachable(n)
	}
}

func writePseudoNary(buf *bytes.Buffer, n *NaryNode) {
	switch n.Op {
	case LAND, LOR:
		sep := " and "
		if n.Op == LOR {
			sep = " or "
		}
		buf.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				buf.WriteString(sep)
			}
			writePseudo(buf, child)
		}
		buf.WriteByte(')')

	case LXOR:
		buf.WriteByte('(')
		for i, child := range n.Children {
			if i > 0 {
				buf.WriteString(" != ")
			}
			buf.WriteString("bool(")
			writePseudo(buf, child)
			buf.WriteByte(')')
		}
		buf.WriteByte(')')

	case CONCAT:
		// Left fold: (((a) << w(b) | b) << w(c) | c)
		for i := 1; i < len(n.Children); i++ {
			buf.WriteByte('(')
		}
		if len(n.Children) > 1 {
			buf.WriteByte('(')
			writePseudo(buf, n.Children[0])
			buf.WriteByte(')')
		} else {
			writePseudo(buf, n.Children[0])
		}
		for _, child := range n.Children[1:] {
			fmt.Fprintf(buf, " << %d | ", Width(child))
			writePseudo(buf, child)
			buf.WriteByte(')')
		}

	default:
		unreachable(n)
	}
}
