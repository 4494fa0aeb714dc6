package script

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	sc, err := Parse("test.py", src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return sc
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.py", "def f(:\n")
	if err == nil {
		t.Fatal("expected error for malformed def")
	}
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if serr.Path != "bad.py" {
		t.Errorf("path = %q, want bad.py", serr.Path)
	}
	if serr.Line <= 0 {
		t.Errorf("line = %d, want positive", serr.Line)
	}
}

func TestParseElifChainFlattened(t *testing.T) {
	sc := mustParse(t, `
if a:
    x = 1
elif b:
    x = 2
elif c:
    x = 3
else:
    x = 4
`)
	if len(sc.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(sc.Stmts))
	}
	ifs, ok := sc.Stmts[0].(*If)
	if !ok {
		t.Fatalf("got %T, want *If", sc.Stmts[0])
	}
	if len(ifs.Elifs) != 2 {
		t.Fatalf("got %d elif clauses, want 2", len(ifs.Elifs))
	}
	if len(ifs.Else) != 1 {
		t.Fatalf("got %d else statements, want 1", len(ifs.Else))
	}
	second, ok := ifs.Elifs[1].Cond.(*Name)
	if !ok || second.Ident != "c" {
		t.Errorf("second elif condition = %s, want c", ExprString(ifs.Elifs[1].Cond))
	}
}

func TestParseNestedIfInElseIsNotElif(t *testing.T) {
	sc := mustParse(t, `
if a:
    x = 1
else:
    y = 2
    if b:
        x = 2
`)
	ifs := sc.Stmts[0].(*If)
	if len(ifs.Elifs) != 0 {
		t.Fatalf("got %d elif clauses, want 0", len(ifs.Elifs))
	}
	if len(ifs.Else) != 2 {
		t.Fatalf("got %d else statements, want 2", len(ifs.Else))
	}
}

func TestParseAugmentedAssign(t *testing.T) {
	sc := mustParse(t, "x += n * 2\n")
	as, ok := sc.Stmts[0].(*Assign)
	if !ok {
		t.Fatalf("got %T, want *Assign", sc.Stmts[0])
	}
	bin, ok := as.Value.(*Binary)
	if !ok || bin.Op != OpAdd {
		t.Fatalf("value = %s, want x + n * 2", ExprString(as.Value))
	}
	lhs, ok := bin.X.(*Name)
	if !ok || lhs.Ident != "x" {
		t.Errorf("expanded left side = %s, want x", ExprString(bin.X))
	}
}

func TestParseTupleTargets(t *testing.T) {
	sc := mustParse(t, "a, b = b, a\n")
	as := sc.Stmts[0].(*Assign)
	if len(as.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(as.Targets))
	}
	if _, ok := as.Value.(*Tuple); !ok {
		t.Errorf("value = %T, want *Tuple", as.Value)
	}
}

func TestParseBoolOpFolding(t *testing.T) {
	sc := mustParse(t, "ok = a and b and c\n")
	as := sc.Stmts[0].(*Assign)
	bo, ok := as.Value.(*BoolOp)
	if !ok || bo.Op != OpAnd {
		t.Fatalf("value = %s, want folded and-chain", ExprString(as.Value))
	}
	if len(bo.Operands) != 3 {
		t.Fatalf("got %d operands, want 3", len(bo.Operands))
	}
}

func TestParseFuncDefParams(t *testing.T) {
	sc := mustParse(t, `
def f(x, eps=0.1, *args, **kw):
    pass
`)
	fd, ok := sc.Stmts[0].(*FuncDef)
	if !ok {
		t.Fatalf("got %T, want *FuncDef", sc.Stmts[0])
	}
	if len(fd.Params) != 4 {
		t.Fatalf("got %d params, want 4", len(fd.Params))
	}
	if fd.Params[1].Name != "eps" || fd.Params[1].Default == nil {
		t.Errorf("param 1 = %+v, want eps with default", fd.Params[1])
	}
	if !fd.Params[2].Star || fd.Params[2].Name != "args" {
		t.Errorf("param 2 = %+v, want *args", fd.Params[2])
	}
	if !fd.Params[3].StarStar || fd.Params[3].Name != "kw" {
		t.Errorf("param 3 = %+v, want **kw", fd.Params[3])
	}
}

func TestParseUnsupportedExpressionIsLowered(t *testing.T) {
	// Constructs without a translation rule must still parse; the error
	// is only raised if generation reaches them.
	sc := mustParse(t, "y = a if c else b\n")
	as := sc.Stmts[0].(*Assign)
	ue, ok := as.Value.(*UnsupportedExpr)
	if !ok {
		t.Fatalf("value = %T, want *UnsupportedExpr", as.Value)
	}
	if ue.Kind != "conditional expression" {
		t.Errorf("kind = %q, want conditional expression", ue.Kind)
	}
	if ue.At.Line == 0 {
		t.Error("expected a source position on the carrier node")
	}
}

func TestParsePowCall(t *testing.T) {
	sc := mustParse(t, "y = pow(a, 2)\n")
	as := sc.Stmts[0].(*Assign)
	bin, ok := as.Value.(*Binary)
	if !ok || bin.Op != OpPow {
		t.Fatalf("value = %s, want exponentiation", ExprString(as.Value))
	}
	if x, ok := bin.X.(*Name); !ok || x.Ident != "a" {
		t.Errorf("base = %s, want a", ExprString(bin.X))
	}

	// three-argument (modular) and keyword forms stay ordinary calls
	for _, src := range []string{
		"y = pow(a, 2, m)\n",
		"y = pow(a, y=2)\n",
	} {
		sc := mustParse(t, src)
		as := sc.Stmts[0].(*Assign)
		if _, ok := as.Value.(*Call); !ok {
			t.Errorf("%q lowered to %T, want *Call", src, as.Value)
		}
	}
}

func TestParsePreservesNumberSpelling(t *testing.T) {
	sc := mustParse(t, "x = 0.50\n")
	as := sc.Stmts[0].(*Assign)
	num, ok := as.Value.(*Num)
	if !ok {
		t.Fatalf("value = %T, want *Num", as.Value)
	}
	if num.Text != "0.50" {
		t.Errorf("text = %q, want source spelling 0.50", num.Text)
	}
}

func TestParseBranchStatements(t *testing.T) {
	sc := mustParse(t, `
while True:
    if a:
        break
    continue
`)
	w := sc.Stmts[0].(*While)
	ifs := w.Body[0].(*If)
	if _, ok := ifs.Then[0].(*Break); !ok {
		t.Errorf("got %T, want *Break", ifs.Then[0])
	}
	if _, ok := w.Body[1].(*Continue); !ok {
		t.Errorf("got %T, want *Continue", w.Body[1])
	}
}
