package symast

import (
	"bytes"
	"fmt"
)

// FormatSMT returns the SMT-LIB representation of n.
func FormatSMT(n Node) string {
	var buf bytes.Buffer
	writeSMT(&buf, n)
	return buf.String()
}

func writeSMT(buf *bytes.Buffer, n Node) {
	switch n := n.(type) {
	case *Constant:
		fmt.Fprintf(buf, "(_ bv%d %d)", n.Value, n.Width)

	case *Variable:
		buf.WriteString(n.Name())

	case *UnaryNode:
		fmt.Fprintf(buf, "(%s ", n.Op)
		writeSMT(buf, n.X)
		buf.WriteByte(')')

	case *BinaryNode:
		fmt.Fprintf(buf, "(%s ", n.Op)
		writeSMT(buf, n.LHS)
		buf.WriteByte(' ')
		writeSMT(buf, n.RHS)
		buf.WriteByte(')')

	case *NaryNode:
		buf.WriteByte('(')
		buf.WriteString(n.Op.String())
		for _, child := range n.Children {
			buf.WriteByte(' ')
			writeSMT(buf, child)
		}
		buf.WriteByte(')')

	case *ExtractNode:
		if n.IsIdentity() {
			writeSMT(buf, n.X)
			return
		}
		fmt.Fprintf(buf, "((_ extract %d %d) ", n.High, n.Low)
		writeSMT(buf, n.X)
		buf.WriteByte(')')

	case *ExtendNode:
		fmt.Fprintf(buf, "((_ %s %d) ", n.Op, n.Bits)
		writeSMT(buf, n.X)
		buf.WriteByte(')')

	case *RotateNode:
		fmt.Fprintf(buf, "((_ %s %d) ", n.Op, n.Amount.Value)
		writeSMT(buf, n.X)
		buf.WriteByte(')')

	case *IteNode:
		buf.WriteString("(ite ")
		writeSMT(buf, n.Cond)
		buf.WriteByte(' ')
		writeSMT(buf, n.Then)
		buf.WriteByte(' ')
		writeSMT(buf, n.Else)
		buf.WriteByte(')')

	case *LetNode:
		fmt.Fprintf(buf, "(let ((%s ", n.Alias)
		writeSMT(buf, n.Bound)
		buf.WriteString(")) ")
		writeSMT(buf, n.Body)
		buf.WriteByte(')')

	case *ForallNode:
		buf.WriteString("(forall (")
		for i, v := range n.Vars {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "(%s (_ BitVec %d))", v.Name(), v.Width)
		}
		buf.WriteString(") ")
		writeSMT(buf, n.Body)
		buf.WriteByte(')')

	case *DeclareNode:
		fmt.Fprintf(buf, "(declare-fun %s () (_ BitVec %d))", n.Var.Name(), n.Var.Width)

	case *AssertNode:
		buf.WriteString("(assert ")
		writeSMT(buf, n.Cond)
		buf.WriteByte(')')

	case *CompoundNode:
		for i, child := range n.Children {
			if i > 0 {
				buf.WriteByte('\n')
			}
			writeSMT(buf, child)
		}

	case *ReferenceNode:
		fmt.Fprintf(buf, "ref!%d", n.ID)

	case *StringNode:
		buf.WriteString(n.Text)

	default:
		unreachable(n)
	}
}
