package script

import (
	"bytes"
	"fmt"
)

// Visitor is called for every statement during a Walk.
type Visitor interface {
	Visit(s Stmt) error
}

// Walk calls v for each statement in stmts, depth first.
func Walk(v Visitor, stmts []Stmt) error {
	for _, s := range stmts {
		if err := v.Visit(s); err != nil {
			return err
		}
		switch t := s.(type) {
		case *FuncDef:
			if err := Walk(v, t.Body); err != nil {
				return err
			}
		case *If:
			if err := Walk(v, t.Then); err != nil {
				return err
			}
			for _, e := range t.Elifs {
				if err := Walk(v, e.Body); err != nil {
					return err
				}
			}
			if err := Walk(v, t.Else); err != nil {
				return err
			}
		case *For:
			if err := Walk(v, t.Body); err != nil {
				return err
			}
		case *While:
			if err := Walk(v, t.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pretty returns a line-oriented dump of a statement tree, one node
// per line, two spaces per nesting level.
func Pretty(stmts []Stmt) string {
	var buf bytes.Buffer
	ppStmts(&buf, 0, stmts)
	return buf.String()
}

func ppStmts(buf *bytes.Buffer, indent int, stmts []Stmt) {
	for _, s := range stmts {
		ppStmt(buf, indent, s)
	}
}

func ppStmt(buf *bytes.Buffer, indent int, s Stmt) {
	ind := func() {
		for i := 0; i < indent; i++ {
			buf.WriteString("  ")
		}
	}
	switch t := s.(type) {
	case *FuncDef:
		ind()
		fmt.Fprintf(buf, "FuncDef(%s/%d)\n", t.Name, len(t.Params))
		ppStmts(buf, indent+1, t.Body)
	case *If:
		ind()
		fmt.Fprintf(buf, "If(%s)\n", ExprString(t.Cond))
		ppStmts(buf, indent+1, t.Then)
		for _, e := range t.Elifs {
			ind()
			fmt.Fprintf(buf, "Elif(%s)\n", ExprString(e.Cond))
			ppStmts(buf, indent+1, e.Body)
		}
		if len(t.Else) > 0 {
			ind()
			buf.WriteString("Else\n")
			ppStmts(buf, indent+1, t.Else)
		}
	case *For:
		ind()
		fmt.Fprintf(buf, "For(%s in %s)\n", exprList(t.Vars), ExprString(t.Iter))
		ppStmts(buf, indent+1, t.Body)
	case *While:
		ind()
		fmt.Fprintf(buf, "While(%s)\n", ExprString(t.Cond))
		ppStmts(buf, indent+1, t.Body)
	case *Assign:
		ind()
		fmt.Fprintf(buf, "Assign(%s = %s)\n", exprList(t.Targets), ExprString(t.Value))
	case *Return:
		ind()
		if t.Value != nil {
			fmt.Fprintf(buf, "Return(%s)\n", ExprString(t.Value))
		} else {
			buf.WriteString("Return\n")
		}
	case *ExprStmt:
		ind()
		fmt.Fprintf(buf, "Expr(%s)\n", ExprString(t.X))
	case *Pass:
		ind()
		buf.WriteString("Pass\n")
	case *Break:
		ind()
		buf.WriteString("Break\n")
	case *Continue:
		ind()
		buf.WriteString("Continue\n")
	case *Unsupported:
		ind()
		fmt.Fprintf(buf, "Unsupported(%s)\n", t.Kind)
	}
}

func exprList(exprs []Expr) string {
	var buf bytes.Buffer
	for i, e := range exprs {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(ExprString(e))
	}
	return buf.String()
}

// ExprString returns a compact source-like spelling of an expression,
// for dumps and diagnostics. It is not the LaTeX rendering.
func ExprString(e Expr) string {
	switch t := e.(type) {
	case *Name:
		return t.Ident
	case *Num:
		return t.Text
	case *Str:
		return fmt.Sprintf("%q", t.Text)
	case *Binary:
		return fmt.Sprintf("%s %s %s", ExprString(t.X), t.Op, ExprString(t.Y))
	case *Unary:
		return fmt.Sprintf("%s %s", t.Op, ExprString(t.X))
	case *Compare:
		return fmt.Sprintf("%s %s %s", ExprString(t.X), t.Op, ExprString(t.Y))
	case *BoolOp:
		var buf bytes.Buffer
		for i, op := range t.Operands {
			if i > 0 {
				fmt.Fprintf(&buf, " %s ", t.Op)
			}
			buf.WriteString(ExprString(op))
		}
		return buf.String()
	case *Call:
		var buf bytes.Buffer
		buf.WriteString(ExprString(t.Fn))
		buf.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			if a.Name != "" {
				buf.WriteString(a.Name)
				buf.WriteByte('=')
			}
			buf.WriteString(ExprString(a.Value))
		}
		buf.WriteByte(')')
		return buf.String()
	case *Subscript:
		return fmt.Sprintf("%s[%s]", ExprString(t.X), ExprString(t.Index))
	case *Slice:
		lo, hi, step := "", "", ""
		if t.Lo != nil {
			lo = ExprString(t.Lo)
		}
		if t.Hi != nil {
			hi = ExprString(t.Hi)
		}
		if t.Step != nil {
			step = ":" + ExprString(t.Step)
		}
		return fmt.Sprintf("%s[%s:%s%s]", ExprString(t.X), lo, hi, step)
	case *Attr:
		return fmt.Sprintf("%s.%s", ExprString(t.X), t.Name)
	case *Tuple:
		return "(" + exprList(t.Elems) + ")"
	case *List:
		return "[" + exprList(t.Elems) + "]"
	case *Dict:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, en := range t.Entries {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%s: %s", ExprString(en.Key), ExprString(en.Value))
		}
		buf.WriteByte('}')
		return buf.String()
	case *SetBuilder:
		var buf bytes.Buffer
		buf.WriteByte('[')
		buf.WriteString(ExprString(t.Body))
		for _, c := range t.Clauses {
			if c.Vars != nil {
				fmt.Fprintf(&buf, " for %s in %s", exprList(c.Vars), ExprString(c.Iter))
			} else {
				fmt.Fprintf(&buf, " if %s", ExprString(c.Cond))
			}
		}
		buf.WriteByte(']')
		return buf.String()
	case *UnsupportedExpr:
		return "<" + t.Kind + ">"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
