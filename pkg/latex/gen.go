package latex

import (
	"strings"

	"github.com/pseudotex/pseudotex/pkg/script"
)

// Options configures translation output.
type Options struct {
	// Indent is the text prepended once per nesting level. An empty
	// Indent produces a flat stream; nil Options use two spaces.
	Indent string
	// Symbols augments the builtin identifier spellings.
	Symbols map[string]string
}

func (o *Options) indentOrDefault() string {
	if o == nil {
		return "  "
	}
	return o.Indent
}

// Line is one generated pseudocode command with its nesting depth.
type Line struct {
	Text  string
	Depth int
}

// Generator walks a filtered statement sequence and emits one
// pseudocode command (or matched begin/end pair) per statement. The
// depth tracker guarantees that every begin command is balanced by its
// end command at the same depth.
type Generator struct {
	r      *Renderer
	indent string
	depth  int
	lines  []Line
}

func NewGenerator(opts *Options) *Generator {
	g := &Generator{indent: opts.indentOrDefault(), r: &Renderer{}}
	if opts != nil {
		g.r.Symbols = opts.Symbols
	}
	return g
}

// Generate produces the command stream for stmts. Single pass, depth
// first; fails fast at the first unsupported construct reached.
func (g *Generator) Generate(stmts []script.Stmt) ([]Line, error) {
	g.depth = 0
	g.lines = nil
	if err := g.genStmts(stmts); err != nil {
		return nil, err
	}
	return g.lines, nil
}

// Depth returns the current nesting depth of the tracker.
func (g *Generator) Depth() int { return g.depth }

func (g *Generator) emit(text string) {
	g.lines = append(g.lines, Line{Text: text, Depth: g.depth})
}

func (g *Generator) enter() { g.depth++ }
func (g *Generator) leave() { g.depth-- }

func (g *Generator) genBody(stmts []script.Stmt) error {
	g.enter()
	defer g.leave()
	return g.genStmts(stmts)
}

func (g *Generator) genStmts(stmts []script.Stmt) error {
	for _, s := range stmts {
		if err := g.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genStmt(s script.Stmt) error {
	switch t := s.(type) {
	case *script.FuncDef:
		params, err := g.renderParams(t.Params)
		if err != nil {
			return err
		}
		g.emit(`\Procedure{` + t.Name + `}` + params)
		if err := g.genBody(t.Body); err != nil {
			return err
		}
		g.emit(`\EndProcedure%`)

	case *script.If:
		cond, err := g.wrapMath(t.Cond)
		if err != nil {
			return err
		}
		g.emit(`\If{` + cond + `}`)
		if err := g.genBody(t.Then); err != nil {
			return err
		}
		for _, e := range t.Elifs {
			cond, err := g.wrapMath(e.Cond)
			if err != nil {
				return err
			}
			g.emit(`\ElsIf{` + cond + `}`)
			if err := g.genBody(e.Body); err != nil {
				return err
			}
		}
		if len(t.Else) > 0 {
			g.emit(`\Else%`)
			if err := g.genBody(t.Else); err != nil {
				return err
			}
		}
		g.emit(`\EndIf%`)

	case *script.For:
		head, err := g.forHead(t)
		if err != nil {
			return err
		}
		g.emit(`\For{$` + head + `$}`)
		if err := g.genBody(t.Body); err != nil {
			return err
		}
		g.emit(`\EndFor%`)

	case *script.While:
		cond, err := g.wrapMath(t.Cond)
		if err != nil {
			return err
		}
		g.emit(`\While{` + cond + `}`)
		if err := g.genBody(t.Body); err != nil {
			return err
		}
		g.emit(`\EndWhile%`)

	case *script.Assign:
		targets, err := g.r.renderList(t.Targets)
		if err != nil {
			return err
		}
		lhs := strings.Join(targets, ", ")
		value, err := g.r.Render(t.Value)
		if err != nil {
			return err
		}
		if selfDelimiting(t.Value) {
			g.emit(`\State{$` + lhs + ` \gets$ ` + value + `}`)
		} else {
			g.emit(`\State{$` + lhs + ` \gets ` + value + `$}`)
		}

	case *script.Return:
		if t.Value == nil {
			g.emit(`\Return{}`)
			break
		}
		value, err := g.r.Render(t.Value)
		if err != nil {
			return err
		}
		if selfDelimiting(t.Value) {
			g.emit(`\Return{` + value + `}`)
		} else {
			g.emit(`\Return{$` + value + `$}`)
		}

	case *script.ExprStmt:
		return g.genExprStmt(t)

	case *script.Pass:
		// structurally required in source, no pseudocode output

	case *script.Break:
		g.emit(`\Break%`)

	case *script.Continue:
		g.emit(`\Continue%`)

	case *script.Unsupported:
		return &script.UnsupportedStatementError{Kind: t.Kind, At: t.At}

	default:
		return &script.UnsupportedStatementError{Kind: "statement", At: s.Pos()}
	}
	return nil
}

// TexPrefix introduces a raw string statement whose remaining lines
// are injected into the output verbatim, without a \State wrapper.
const TexPrefix = "!tex"

func (g *Generator) genExprStmt(t *script.ExprStmt) error {
	if str, ok := t.X.(*script.Str); ok {
		if strings.HasPrefix(str.Text, TexPrefix) {
			body := str.Text[len(TexPrefix):]
			if body == "" {
				return nil
			}
			body = strings.TrimPrefix(body, " ")
			for _, line := range strings.Split(body, "\n") {
				g.emit(line)
			}
			return nil
		}
		g.emit(`\State{` + str.Text + `}`)
		return nil
	}

	value, err := g.r.Render(t.X)
	if err != nil {
		return err
	}
	if selfDelimiting(t.X) {
		g.emit(`\State{` + value + `}`)
	} else {
		g.emit(`\State{$` + value + `$}`)
	}
	return nil
}

func (g *Generator) renderParams(params []script.Param) (string, error) {
	if len(params) == 0 {
		return "{}", nil
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := Symbolify(p.Name, g.r.Symbols)
		switch {
		case p.Star:
			s = `\ast ` + s
		case p.StarStar:
			s = `\ast\ast ` + s
		}
		if p.Default != nil {
			d, err := g.r.Render(p.Default)
			if err != nil {
				return "", err
			}
			s += " = " + d
		}
		parts = append(parts, s)
	}
	return "{$" + strings.Join(parts, ", ") + "$}", nil
}

// forHead renders the loop header. Iterating a range(...) call reads
// as an arithmetic progression; any other iterable reads as membership.
func (g *Generator) forHead(t *script.For) (string, error) {
	vars, err := g.r.renderList(t.Vars)
	if err != nil {
		return "", err
	}
	lhs := strings.Join(vars, ", ")

	if args, ok := rangeArgs(t.Iter); ok {
		bounds := make([]string, len(args))
		for i, a := range args {
			if bounds[i], err = g.r.Render(a); err != nil {
				return "", err
			}
		}
		switch len(bounds) {
		case 1:
			return lhs + ` \gets 0, \dots, ` + bounds[0], nil
		case 2:
			return lhs + ` \gets ` + bounds[0] + `, \dots, ` + bounds[1], nil
		case 3:
			return lhs + ` \gets ` + bounds[0] + `, ` + bounds[0] + " + " + bounds[2] + `, \dots, ` + bounds[1], nil
		}
	}

	iter, err := g.r.Render(t.Iter)
	if err != nil {
		return "", err
	}
	return lhs + ` \in ` + iter, nil
}

// rangeArgs extracts the positional arguments of a range(...) iterable.
func rangeArgs(e script.Expr) ([]script.Expr, bool) {
	call, ok := e.(*script.Call)
	if !ok {
		return nil, false
	}
	fn, ok := call.Fn.(*script.Name)
	if !ok || fn.Ident != "range" {
		return nil, false
	}
	if len(call.Args) < 1 || len(call.Args) > 3 {
		return nil, false
	}
	args := make([]script.Expr, len(call.Args))
	for i, a := range call.Args {
		if a.Name != "" {
			return nil, false
		}
		args[i] = a.Value
	}
	return args, true
}

// wrapMath renders an expression and wraps it in inline math
// delimiters unless the rendering carries its own mode.
func (g *Generator) wrapMath(e script.Expr) (string, error) {
	s, err := g.r.Render(e)
	if err != nil {
		return "", err
	}
	if selfDelimiting(e) {
		return s, nil
	}
	return "$" + s + "$", nil
}

// Format joins a command stream into output text, one command per
// line, indented by depth.
func Format(lines []Line, indent string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat(indent, l.Depth))
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Translate runs the whole pipeline on one source unit: parse, filter
// out hidden and scaffolding statements, generate, format.
func Translate(path string, src any, opts *Options) (string, error) {
	sc, err := script.Parse(path, src)
	if err != nil {
		return "", err
	}
	g := NewGenerator(opts)
	lines, err := g.Generate(script.Filter(sc.Stmts))
	if err != nil {
		return "", err
	}
	return Format(lines, opts.indentOrDefault()), nil
}
