package script

// HideMarker is the sentinel raw string that truncates visible output.
const HideMarker = "!hide"

// Filter returns the visible prefix of a top-level statement sequence:
// everything before the first hide marker, with script-entry guard
// blocks removed. The returned slice is a fresh list; statements are
// shared with the input, which is never modified.
//
// Both checks are top-level only. A marker inside a function body or a
// loop is not recognized and renders like any other raw literal, and a
// nested __main__ conditional translates as an ordinary if.
func Filter(stmts []Stmt) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		if IsHideMarker(s) {
			break
		}
		if IsMainGuard(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// IsHideMarker reports whether s is an expression statement holding
// exactly the hide marker string.
func IsHideMarker(s Stmt) bool {
	es, ok := s.(*ExprStmt)
	if !ok {
		return false
	}
	str, ok := es.X.(*Str)
	return ok && str.Text == HideMarker
}

// IsMainGuard reports whether s is the conventional
// `if __name__ == "__main__":` scaffolding block, in either operand
// order. The whole statement, including any else arm, is scaffolding.
func IsMainGuard(s Stmt) bool {
	ifs, ok := s.(*If)
	if !ok {
		return false
	}
	cmp, ok := ifs.Cond.(*Compare)
	if !ok || cmp.Op != OpEq {
		return false
	}
	return isNameStrPair(cmp.X, cmp.Y) || isNameStrPair(cmp.Y, cmp.X)
}

func isNameStrPair(a, b Expr) bool {
	name, ok := a.(*Name)
	if !ok || name.Ident != "__name__" {
		return false
	}
	str, ok := b.(*Str)
	return ok && str.Text == "__main__"
}
