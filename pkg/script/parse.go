package script

import (
	"errors"
	"fmt"

	"go.starlark.net/syntax"
)

// Script is one parsed source unit.
type Script struct {
	Path  string
	Stmts []Stmt
}

// fileOptions enables the full statement set the pseudocode surface
// syntax needs: while loops and control flow at the top level.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Parse parses one source unit into a Script. src may be nil (the file
// at path is read), a string, or a []byte. Constructs outside the
// supported statement/expression set are lowered to Unsupported nodes
// rather than rejected here, so that material after the hide marker
// can never fail a translation.
func Parse(path string, src any) (*Script, error) {
	f, err := fileOptions.Parse(path, src, 0)
	if err != nil {
		var serr syntax.Error
		if errors.As(err, &serr) {
			return nil, &SyntaxError{Path: path, Line: serr.Pos.Line, Col: serr.Pos.Col, Msg: serr.Msg}
		}
		return nil, &SyntaxError{Path: path, Msg: err.Error()}
	}
	return &Script{Path: path, Stmts: lowerStmts(f.Stmts)}, nil
}

func posOf(n syntax.Node) Position {
	start, _ := n.Span()
	return Position{Line: start.Line, Col: start.Col}
}

func lowerStmts(in []syntax.Stmt) []Stmt {
	out := make([]Stmt, 0, len(in))
	for _, s := range in {
		out = append(out, lowerStmt(s))
	}
	return out
}

func lowerStmt(s syntax.Stmt) Stmt {
	at := posOf(s)
	switch t := s.(type) {
	case *syntax.DefStmt:
		return &FuncDef{
			Name:   t.Name.Name,
			Params: lowerParams(t.Params),
			Body:   lowerStmts(t.Body),
			At:     at,
		}

	case *syntax.IfStmt:
		return lowerIf(t)

	case *syntax.ForStmt:
		return &For{
			Vars: lowerTargets(t.Vars),
			Iter: lowerExpr(t.X),
			Body: lowerStmts(t.Body),
			At:   at,
		}

	case *syntax.WhileStmt:
		return &While{Cond: lowerExpr(t.Cond), Body: lowerStmts(t.Body), At: at}

	case *syntax.AssignStmt:
		return lowerAssign(t, at)

	case *syntax.ReturnStmt:
		ret := &Return{At: at}
		if t.Result != nil {
			ret.Value = lowerExpr(t.Result)
		}
		return ret

	case *syntax.ExprStmt:
		return &ExprStmt{X: lowerExpr(t.X), At: at}

	case *syntax.BranchStmt:
		switch t.Token {
		case syntax.PASS:
			return &Pass{At: at}
		case syntax.BREAK:
			return &Break{At: at}
		case syntax.CONTINUE:
			return &Continue{At: at}
		}
		return &Unsupported{Kind: t.Token.String(), At: at}

	case *syntax.LoadStmt:
		return &Unsupported{Kind: "load statement", At: at}

	default:
		return &Unsupported{Kind: fmt.Sprintf("%T", s), At: at}
	}
}

// lowerIf flattens the surface syntax's elif chain: an else arm that
// holds exactly one nested if becomes an elif clause of the outer
// statement, recursively.
func lowerIf(t *syntax.IfStmt) *If {
	out := &If{Cond: lowerExpr(t.Cond), Then: lowerStmts(t.True), At: posOf(t)}
	rest := t.False
	for len(rest) == 1 {
		nested, ok := rest[0].(*syntax.IfStmt)
		if !ok {
			break
		}
		out.Elifs = append(out.Elifs, ElifClause{
			Cond: lowerExpr(nested.Cond),
			Body: lowerStmts(nested.True),
		})
		rest = nested.False
	}
	if len(rest) > 0 {
		out.Else = lowerStmts(rest)
	}
	return out
}

// lowerAssign splits tuple targets and expands augmented assignments
// (x += v becomes x = x + v).
func lowerAssign(t *syntax.AssignStmt, at Position) Stmt {
	targets := lowerTargets(t.LHS)
	value := lowerExpr(t.RHS)

	if t.Op != syntax.EQ {
		op, ok := augOps[t.Op]
		if !ok {
			return &Unsupported{Kind: "assignment operator " + t.Op.String(), At: at}
		}
		// Lower the left side a second time so the expanded value does
		// not share nodes with the target.
		value = &Binary{Op: op, X: lowerExpr(t.LHS), Y: value, At: at}
	}
	return &Assign{Targets: targets, Value: value, At: at}
}

var augOps = map[syntax.Token]Op{
	syntax.PLUS_EQ:       OpAdd,
	syntax.MINUS_EQ:      OpSub,
	syntax.STAR_EQ:       OpMul,
	syntax.SLASH_EQ:      OpDiv,
	syntax.SLASHSLASH_EQ: OpFloorDiv,
	syntax.PERCENT_EQ:    OpMod,
	syntax.AMP_EQ:        OpBitAnd,
	syntax.PIPE_EQ:       OpBitOr,
	syntax.CIRCUMFLEX_EQ: OpBitXor,
	syntax.LTLT_EQ:       OpShl,
	syntax.GTGT_EQ:       OpShr,
}

// lowerTargets unpacks an assignment or loop target into a flat list.
func lowerTargets(e syntax.Expr) []Expr {
	if tup, ok := e.(*syntax.TupleExpr); ok {
		out := make([]Expr, 0, len(tup.List))
		for _, el := range tup.List {
			out = append(out, lowerExpr(el))
		}
		return out
	}
	return []Expr{lowerExpr(e)}
}

func lowerParams(in []syntax.Expr) []Param {
	out := make([]Param, 0, len(in))
	for _, p := range in {
		switch t := p.(type) {
		case *syntax.Ident:
			out = append(out, Param{Name: t.Name})
		case *syntax.BinaryExpr:
			// name=default
			if id, ok := t.X.(*syntax.Ident); ok && t.Op == syntax.EQ {
				out = append(out, Param{Name: id.Name, Default: lowerExpr(t.Y)})
			}
		case *syntax.UnaryExpr:
			// *args / **kwargs
			name := ""
			if id, ok := t.X.(*syntax.Ident); ok {
				name = id.Name
			}
			out = append(out, Param{
				Name:     name,
				Star:     t.Op == syntax.STAR,
				StarStar: t.Op == syntax.STARSTAR,
			})
		}
	}
	return out
}

var binOps = map[syntax.Token]Op{
	syntax.PLUS:       OpAdd,
	syntax.MINUS:      OpSub,
	syntax.STAR:       OpMul,
	syntax.SLASH:      OpDiv,
	syntax.SLASHSLASH: OpFloorDiv,
	syntax.PERCENT:    OpMod,
	syntax.AMP:        OpBitAnd,
	syntax.PIPE:       OpBitOr,
	syntax.CIRCUMFLEX: OpBitXor,
	syntax.LTLT:       OpShl,
	syntax.GTGT:       OpShr,
}

var cmpOps = map[syntax.Token]Op{
	syntax.EQL:    OpEq,
	syntax.NEQ:    OpNe,
	syntax.LT:     OpLt,
	syntax.GT:     OpGt,
	syntax.LE:     OpLe,
	syntax.GE:     OpGe,
	syntax.IN:     OpIn,
	syntax.NOT_IN: OpNotIn,
}

func lowerExpr(e syntax.Expr) Expr {
	at := posOf(e)
	switch t := e.(type) {
	case *syntax.Ident:
		return &Name{Ident: t.Name, At: at}

	case *syntax.Literal:
		switch t.Token {
		case syntax.STRING:
			s, _ := t.Value.(string)
			return &Str{Text: s, At: at}
		case syntax.INT, syntax.FLOAT:
			text := t.Raw
			if text == "" {
				text = fmt.Sprint(t.Value)
			}
			return &Num{Text: text, At: at}
		}
		return &UnsupportedExpr{Kind: "literal " + t.Token.String(), At: at}

	case *syntax.ParenExpr:
		// Grouping is reconstructed from operator precedence at render
		// time, so explicit parens carry no information of their own.
		return lowerExpr(t.X)

	case *syntax.BinaryExpr:
		if op, ok := cmpOps[t.Op]; ok {
			return &Compare{Op: op, X: lowerExpr(t.X), Y: lowerExpr(t.Y), At: at}
		}
		if t.Op == syntax.AND || t.Op == syntax.OR {
			return lowerBoolOp(t, at)
		}
		if op, ok := binOps[t.Op]; ok {
			return &Binary{Op: op, X: lowerExpr(t.X), Y: lowerExpr(t.Y), At: at}
		}
		return &UnsupportedExpr{Kind: "operator " + t.Op.String(), At: at}

	case *syntax.UnaryExpr:
		switch t.Op {
		case syntax.NOT:
			return &Unary{Op: OpNot, X: lowerExpr(t.X), At: at}
		case syntax.MINUS:
			return &Unary{Op: OpNeg, X: lowerExpr(t.X), At: at}
		case syntax.PLUS:
			return &Unary{Op: OpPos, X: lowerExpr(t.X), At: at}
		case syntax.TILDE:
			return &Unary{Op: OpInvert, X: lowerExpr(t.X), At: at}
		}
		return &UnsupportedExpr{Kind: "unary operator " + t.Op.String(), At: at}

	case *syntax.CallExpr:
		// The surface grammar has no binary ** operator; pow(x, y) is
		// the exponentiation spelling.
		if id, ok := t.Fn.(*syntax.Ident); ok && id.Name == "pow" {
			if x, y, ok := powArgs(t.Args); ok {
				return &Binary{Op: OpPow, X: x, Y: y, At: at}
			}
		}
		call := &Call{Fn: lowerExpr(t.Fn), At: at}
		for _, a := range t.Args {
			switch arg := a.(type) {
			case *syntax.BinaryExpr:
				if id, ok := arg.X.(*syntax.Ident); ok && arg.Op == syntax.EQ {
					call.Args = append(call.Args, Arg{Name: id.Name, Value: lowerExpr(arg.Y)})
					continue
				}
				call.Args = append(call.Args, Arg{Value: lowerExpr(a)})
			case *syntax.UnaryExpr:
				if arg.Op == syntax.STAR || arg.Op == syntax.STARSTAR {
					call.Args = append(call.Args, Arg{Value: &UnsupportedExpr{Kind: "argument unpacking", At: posOf(a)}})
					continue
				}
				call.Args = append(call.Args, Arg{Value: lowerExpr(a)})
			default:
				call.Args = append(call.Args, Arg{Value: lowerExpr(a)})
			}
		}
		return call

	case *syntax.IndexExpr:
		return &Subscript{X: lowerExpr(t.X), Index: lowerExpr(t.Y), At: at}

	case *syntax.SliceExpr:
		sl := &Slice{X: lowerExpr(t.X), At: at}
		if t.Lo != nil {
			sl.Lo = lowerExpr(t.Lo)
		}
		if t.Hi != nil {
			sl.Hi = lowerExpr(t.Hi)
		}
		if t.Step != nil {
			sl.Step = lowerExpr(t.Step)
		}
		return sl

	case *syntax.DotExpr:
		return &Attr{X: lowerExpr(t.X), Name: t.Name.Name, At: at}

	case *syntax.TupleExpr:
		tup := &Tuple{At: at}
		for _, el := range t.List {
			tup.Elems = append(tup.Elems, lowerExpr(el))
		}
		return tup

	case *syntax.ListExpr:
		lst := &List{At: at}
		for _, el := range t.List {
			lst.Elems = append(lst.Elems, lowerExpr(el))
		}
		return lst

	case *syntax.DictExpr:
		d := &Dict{At: at}
		for _, el := range t.List {
			entry, ok := el.(*syntax.DictEntry)
			if !ok {
				return &UnsupportedExpr{Kind: "dict element", At: posOf(el)}
			}
			d.Entries = append(d.Entries, DictEntry{Key: lowerExpr(entry.Key), Value: lowerExpr(entry.Value)})
		}
		return d

	case *syntax.Comprehension:
		if t.Curly {
			return &UnsupportedExpr{Kind: "dict comprehension", At: at}
		}
		sb := &SetBuilder{Body: lowerExpr(t.Body), At: at}
		for _, c := range t.Clauses {
			switch cl := c.(type) {
			case *syntax.ForClause:
				sb.Clauses = append(sb.Clauses, CompClause{Vars: lowerTargets(cl.Vars), Iter: lowerExpr(cl.X)})
			case *syntax.IfClause:
				sb.Clauses = append(sb.Clauses, CompClause{Cond: lowerExpr(cl.Cond)})
			}
		}
		return sb

	case *syntax.CondExpr:
		return &UnsupportedExpr{Kind: "conditional expression", At: at}

	case *syntax.LambdaExpr:
		return &UnsupportedExpr{Kind: "lambda", At: at}

	default:
		return &UnsupportedExpr{Kind: fmt.Sprintf("%T", e), At: at}
	}
}

// powArgs lowers the arguments of a pow(x, y) call, provided both are
// plain positional expressions. Keyword or unpacked arguments, or a
// third modulus argument, leave the call to ordinary rendering.
func powArgs(args []syntax.Expr) (x, y Expr, ok bool) {
	if len(args) != 2 {
		return nil, nil, false
	}
	for _, a := range args {
		switch t := a.(type) {
		case *syntax.BinaryExpr:
			if _, isIdent := t.X.(*syntax.Ident); isIdent && t.Op == syntax.EQ {
				return nil, nil, false
			}
		case *syntax.UnaryExpr:
			if t.Op == syntax.STAR || t.Op == syntax.STARSTAR {
				return nil, nil, false
			}
		}
	}
	return lowerExpr(args[0]), lowerExpr(args[1]), true
}

// lowerBoolOp folds a run of the same boolean operator into a single
// node with the operands in source order.
func lowerBoolOp(t *syntax.BinaryExpr, at Position) Expr {
	op := OpAnd
	if t.Op == syntax.OR {
		op = OpOr
	}
	b := &BoolOp{Op: op, At: at}
	var gather func(e syntax.Expr)
	gather = func(e syntax.Expr) {
		if bin, ok := e.(*syntax.BinaryExpr); ok && bin.Op == t.Op {
			gather(bin.X)
			gather(bin.Y)
			return
		}
		b.Operands = append(b.Operands, lowerExpr(e))
	}
	gather(t)
	return b
}
