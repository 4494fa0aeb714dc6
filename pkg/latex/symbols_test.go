package latex

import "testing"

func TestSymbolify(t *testing.T) {
	table := map[string]string{"inf": `\infty`}
	cases := []struct {
		name string
		want string
	}{
		{"x", "x"},
		{"alpha", "alpha"},
		{"inf", `\infty`},
		{"True", `\mathrm{True}`},
		{"False", `\mathrm{False}`},
		{"None", `\mathrm{None}`},
		{"Sym_lambda", `\lambda`},
		{"Sym_epsilon", `\epsilon`},
		{"MC_F", `\mathcal{F}`},
		{"BB_R", `\mathbb{R}`},
		{"d_max", "d_{max}"},
		{"x_0", "x_{0}"},
		// only the first underscore splits
		{"d_max_len", "d_{max_len}"},
		// degenerate underscores pass through
		{"_", "_"},
		{"_x", "_x"},
		{"x_", "x_"},
	}
	for _, c := range cases {
		if got := Symbolify(c.name, table); got != c.want {
			t.Errorf("Symbolify(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestSymbolifyTableOverridesBuiltins(t *testing.T) {
	table := map[string]string{
		"None":    `\varnothing`,
		"Sym_rho": "rho",
		"d_max":   `d_{\max}`,
	}
	for name, want := range table {
		if got := Symbolify(name, table); got != want {
			t.Errorf("Symbolify(%q) = %q, want table entry %q", name, got, want)
		}
	}
}
