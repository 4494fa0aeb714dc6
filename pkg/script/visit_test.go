package script

import (
	"strings"
	"testing"
)

type counter struct {
	total int
	kinds map[string]int
}

func (c *counter) Visit(s Stmt) error {
	c.total++
	switch s.(type) {
	case *Assign:
		c.kinds["assign"]++
	case *Return:
		c.kinds["return"]++
	}
	return nil
}

func TestWalkVisitsAllBranches(t *testing.T) {
	sc := mustParse(t, `
def f(A):
    if a:
        x = 1
    elif b:
        x = 2
    else:
        x = 3
    for i in A:
        x = 4
    while c:
        x = 5
    return x
`)
	c := &counter{kinds: map[string]int{}}
	if err := Walk(c, sc.Stmts); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if c.kinds["assign"] != 5 {
		t.Errorf("visited %d assignments, want 5", c.kinds["assign"])
	}
	if c.kinds["return"] != 1 {
		t.Errorf("visited %d returns, want 1", c.kinds["return"])
	}
}

func TestPretty(t *testing.T) {
	sc := mustParse(t, `
def f(x, y):
    if x < y:
        return x
    return y
`)
	got := Pretty(sc.Stmts)
	want := strings.Join([]string{
		"FuncDef(f/2)",
		"  If(x < y)",
		"    Return(x)",
		"  Return(y)",
		"",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
