package latex

import (
	"strings"

	"github.com/pseudotex/pseudotex/pkg/script"
)

// Renderer converts expressions into math-mode LaTeX fragments. It is
// pure: rendering the same expression twice yields the same text.
type Renderer struct {
	// Symbols augments the builtin identifier spellings.
	Symbols map[string]string
}

// Operator precedence levels, loosest first. A subexpression is
// parenthesized only when it binds looser than its context requires.
const (
	precOr = iota + 1
	precAnd
	precNot
	precCmp
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdd
	precMul
	precUnary
	precPostfix
	precAtom
)

var binPrec = map[script.Op]int{
	script.OpAdd: precAdd, script.OpSub: precAdd,
	script.OpMul: precMul, script.OpDiv: precMul,
	script.OpFloorDiv: precMul, script.OpMod: precMul,
	script.OpBitOr:  precBitOr,
	script.OpBitXor: precBitXor,
	script.OpBitAnd: precBitAnd,
	script.OpShl:    precShift, script.OpShr: precShift,
}

var binGlyph = map[script.Op]string{
	script.OpAdd:      " + ",
	script.OpSub:      " - ",
	script.OpMul:      ` \cdot `,
	script.OpDiv:      " / ",
	script.OpFloorDiv: ` \mathbin{//} `,
	script.OpMod:      ` \bmod `,
	script.OpBitAnd:   ` \mathbin{\&} `,
	script.OpBitOr:    ` \mid `,
	script.OpBitXor:   ` \oplus `,
	script.OpShl:      ` \ll `,
	script.OpShr:      ` \gg `,
}

var cmpGlyph = map[script.Op]string{
	script.OpEq:    " = ",
	script.OpNe:    ` \neq `,
	script.OpLt:    " < ",
	script.OpGt:    " > ",
	script.OpLe:    ` \leq `,
	script.OpGe:    ` \geq `,
	script.OpIn:    ` \in `,
	script.OpNotIn: ` \notin `,
}

var boolGlyph = map[script.Op]string{
	script.OpAnd: ` \wedge `,
	script.OpOr:  ` \vee `,
}

var unaryGlyph = map[script.Op]string{
	script.OpNot:    `\neg `,
	script.OpNeg:    "-",
	script.OpPos:    "+",
	script.OpInvert: `\sim `,
}

// Render converts one expression into a single-line LaTeX fragment.
func (r *Renderer) Render(e script.Expr) (string, error) {
	return r.render(e, 0)
}

func (r *Renderer) render(e script.Expr, min int) (string, error) {
	s, p, err := r.renderExpr(e)
	if err != nil {
		return "", err
	}
	if p < min {
		return "(" + s + ")", nil
	}
	return s, nil
}

func (r *Renderer) renderExpr(e script.Expr) (string, int, error) {
	switch t := e.(type) {
	case *script.Name:
		return Symbolify(t.Ident, r.Symbols), precAtom, nil

	case *script.Num:
		return t.Text, precAtom, nil

	case *script.Str:
		// Raw LaTeX literal: emitted verbatim, never escaped.
		return t.Text, precAtom, nil

	case *script.Binary:
		if t.Op == script.OpPow {
			// Exponentiation becomes a superscript; the braces make the
			// right side self-grouping.
			x, err := r.render(t.X, precPostfix)
			if err != nil {
				return "", 0, err
			}
			y, err := r.render(t.Y, 0)
			if err != nil {
				return "", 0, err
			}
			return x + "^{" + y + "}", precPostfix, nil
		}
		glyph, ok := binGlyph[t.Op]
		if !ok {
			return "", 0, &script.UnsupportedExpressionError{Kind: "operator " + t.Op.String(), At: t.At}
		}
		p := binPrec[t.Op]
		x, err := r.render(t.X, p)
		if err != nil {
			return "", 0, err
		}
		y, err := r.render(t.Y, p+1)
		if err != nil {
			return "", 0, err
		}
		return x + glyph + y, p, nil

	case *script.Unary:
		glyph, ok := unaryGlyph[t.Op]
		if !ok {
			return "", 0, &script.UnsupportedExpressionError{Kind: "operator " + t.Op.String(), At: t.At}
		}
		p := precUnary
		min := p + 1
		if t.Op == script.OpNot {
			p = precNot
			min = p
		}
		x, err := r.render(t.X, min)
		if err != nil {
			return "", 0, err
		}
		return glyph + x, p, nil

	case *script.Compare:
		glyph, ok := cmpGlyph[t.Op]
		if !ok {
			return "", 0, &script.UnsupportedExpressionError{Kind: "comparison " + t.Op.String(), At: t.At}
		}
		x, err := r.render(t.X, precCmp+1)
		if err != nil {
			return "", 0, err
		}
		y, err := r.render(t.Y, precCmp+1)
		if err != nil {
			return "", 0, err
		}
		return x + glyph + y, precCmp, nil

	case *script.BoolOp:
		glyph := boolGlyph[t.Op]
		p := precAnd
		if t.Op == script.OpOr {
			p = precOr
		}
		parts := make([]string, 0, len(t.Operands))
		for _, op := range t.Operands {
			s, err := r.render(op, p+1)
			if err != nil {
				return "", 0, err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, glyph), p, nil

	case *script.Call:
		return r.renderCall(t)

	case *script.Subscript:
		x, err := r.render(t.X, precPostfix)
		if err != nil {
			return "", 0, err
		}
		idx, err := r.render(t.Index, 0)
		if err != nil {
			return "", 0, err
		}
		return x + "_{" + idx + "}", precPostfix, nil

	case *script.Slice:
		x, err := r.render(t.X, precPostfix)
		if err != nil {
			return "", 0, err
		}
		lo, hi, step := "", "", ""
		if t.Lo != nil {
			if lo, err = r.render(t.Lo, 0); err != nil {
				return "", 0, err
			}
		}
		if t.Hi != nil {
			if hi, err = r.render(t.Hi, 0); err != nil {
				return "", 0, err
			}
		}
		sub := lo + ":" + hi
		if t.Step != nil {
			if step, err = r.render(t.Step, 0); err != nil {
				return "", 0, err
			}
			sub += ":" + step
		}
		return x + "_{" + sub + "}", precPostfix, nil

	case *script.Attr:
		x, err := r.render(t.X, precPostfix)
		if err != nil {
			return "", 0, err
		}
		return x + "." + t.Name, precPostfix, nil

	case *script.Tuple:
		parts, err := r.renderList(t.Elems)
		if err != nil {
			return "", 0, err
		}
		if len(parts) == 1 {
			return "(" + parts[0] + ",)", precAtom, nil
		}
		return "(" + strings.Join(parts, ", ") + ")", precAtom, nil

	case *script.List:
		parts, err := r.renderList(t.Elems)
		if err != nil {
			return "", 0, err
		}
		return "[" + strings.Join(parts, ", ") + "]", precAtom, nil

	case *script.Dict:
		var b strings.Builder
		b.WriteString(`\{`)
		for i, en := range t.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			k, err := r.render(en.Key, 0)
			if err != nil {
				return "", 0, err
			}
			v, err := r.render(en.Value, 0)
			if err != nil {
				return "", 0, err
			}
			b.WriteString(k + ": " + v)
		}
		b.WriteString(`\}`)
		return b.String(), precAtom, nil

	case *script.SetBuilder:
		return r.renderSetBuilder(t)

	case *script.UnsupportedExpr:
		return "", 0, &script.UnsupportedExpressionError{Kind: t.Kind, At: t.At}

	default:
		return "", 0, &script.UnsupportedExpressionError{Kind: "expression", At: e.Pos()}
	}
}

func (r *Renderer) renderList(elems []script.Expr) ([]string, error) {
	parts := make([]string, 0, len(elems))
	for _, el := range elems {
		s, err := r.render(el, 0)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return parts, nil
}

// renderCall handles the three call forms: the grouping idiom _(x),
// template application on a raw literal callee, and ordinary calls.
func (r *Renderer) renderCall(t *script.Call) (string, int, error) {
	if fn, ok := t.Fn.(*script.Name); ok && fn.Ident == "_" && len(t.Args) == 1 && t.Args[0].Name == "" {
		inner, err := r.render(t.Args[0].Value, 0)
		if err != nil {
			return "", 0, err
		}
		return `\left(` + inner + `\right)`, precAtom, nil
	}

	args := make([]string, 0, len(t.Args))
	for _, a := range t.Args {
		s, err := r.render(a.Value, 0)
		if err != nil {
			return "", 0, err
		}
		if a.Name != "" {
			s = Symbolify(a.Name, r.Symbols) + " = " + s
		}
		args = append(args, s)
	}

	if fn, ok := t.Fn.(*script.Str); ok {
		return applyTemplate(fn.Text, args), precPostfix, nil
	}

	fn, err := r.render(t.Fn, precPostfix)
	if err != nil {
		return "", 0, err
	}
	return fn + "(" + strings.Join(args, ", ") + ")", precPostfix, nil
}

func (r *Renderer) renderSetBuilder(t *script.SetBuilder) (string, int, error) {
	body, err := r.render(t.Body, 0)
	if err != nil {
		return "", 0, err
	}
	parts := make([]string, 0, len(t.Clauses))
	for _, c := range t.Clauses {
		if c.Vars != nil {
			vars, err := r.renderList(c.Vars)
			if err != nil {
				return "", 0, err
			}
			iter, err := r.render(c.Iter, 0)
			if err != nil {
				return "", 0, err
			}
			parts = append(parts, strings.Join(vars, ", ")+` \in `+iter)
		} else {
			cond, err := r.render(c.Cond, 0)
			if err != nil {
				return "", 0, err
			}
			parts = append(parts, cond)
		}
	}
	return `\{` + strings.Join(parts, ", ") + ` : ` + body + `\}`, precAtom, nil
}

// applyTemplate substitutes argument renderings into a raw LaTeX
// snippet used as a callable. Placeholders #1..#9 select arguments by
// position; a snippet without placeholders has the argument list
// appended in parentheses. Appended arguments are math-mode fragments
// and get their own delimiters, since the surrounding snippet is
// emitted verbatim in text mode.
func applyTemplate(snippet string, args []string) string {
	substituted := false
	var b strings.Builder
	for i := 0; i < len(snippet); i++ {
		if snippet[i] == '#' && i+1 < len(snippet) && snippet[i+1] >= '1' && snippet[i+1] <= '9' {
			idx := int(snippet[i+1] - '1')
			if idx < len(args) {
				b.WriteString(args[idx])
				substituted = true
				i++
				continue
			}
		}
		b.WriteByte(snippet[i])
	}
	if substituted {
		return b.String()
	}
	if len(args) == 0 {
		return snippet + "()"
	}
	return snippet + "($" + strings.Join(args, ", ") + "$)"
}

// selfDelimiting reports whether an expression's rendering carries its
// own LaTeX mode: raw literals and template applications are emitted
// as-is and must not be wrapped in math delimiters by the generator.
func selfDelimiting(e script.Expr) bool {
	switch t := e.(type) {
	case *script.Str:
		return true
	case *script.Call:
		_, ok := t.Fn.(*script.Str)
		return ok
	}
	return false
}
