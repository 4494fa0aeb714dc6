package latex

import "strings"

// Builtin name spellings. A user symbol table from the options can
// override any of these.
var builtinSymbols = map[string]string{
	"True":  `\mathrm{True}`,
	"False": `\mathrm{False}`,
	"None":  `\mathrm{None}`,
}

// Symbolify maps an identifier to its math-mode spelling. Precedence:
// the explicit table, then the reserved prefixes, then subscripting on
// the first underscore (S_0 reads as S with subscript 0).
//
//	Sym_lambda -> \lambda
//	MC_F       -> \mathcal{F}
//	BB_R       -> \mathbb{R}
//	d_max      -> d_{max}
func Symbolify(name string, table map[string]string) string {
	if s, ok := table[name]; ok {
		return s
	}
	if s, ok := builtinSymbols[name]; ok {
		return s
	}
	switch {
	case strings.HasPrefix(name, "Sym_"):
		return `\` + name[len("Sym_"):]
	case strings.HasPrefix(name, "MC_"):
		return `\mathcal{` + name[len("MC_"):] + `}`
	case strings.HasPrefix(name, "BB_"):
		return `\mathbb{` + name[len("BB_"):] + `}`
	}
	if i := strings.Index(name, "_"); i > 0 && i < len(name)-1 {
		return name[:i] + "_{" + name[i+1:] + "}"
	}
	return name
}
