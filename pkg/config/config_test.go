package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pseudotex.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.IndentWidth == nil || *c.IndentWidth != 2 {
		t.Errorf("indent width = %v, want 2", c.IndentWidth)
	}
	if c.Preamble.DocumentClass != "standalone" {
		t.Errorf("document class = %q, want standalone", c.Preamble.DocumentClass)
	}
	if c.Preamble.MinipageWidth != "13cm" {
		t.Errorf("minipage width = %q, want 13cm", c.Preamble.MinipageWidth)
	}
	if c.Preamble.LineNumbers == nil || !*c.Preamble.LineNumbers {
		t.Error("line numbers should default to on")
	}
	if c.Tools.Pdflatex != "pdflatex" || c.Tools.Pdftoppm != "pdftoppm" {
		t.Errorf("tools = %+v, want pdflatex/pdftoppm", c.Tools)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
indent-width: 4
symbols:
  inf: \infty
preamble:
  document-class: article
  line-numbers: false
tools:
  pdflatex: lualatex
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.IndentWidth == nil || *c.IndentWidth != 4 {
		t.Errorf("indent width = %v, want 4", c.IndentWidth)
	}
	if c.Symbols["inf"] != `\infty` {
		t.Errorf("symbols = %v, want inf mapped", c.Symbols)
	}
	if c.Preamble.DocumentClass != "article" {
		t.Errorf("document class = %q, want article", c.Preamble.DocumentClass)
	}
	if c.Preamble.LineNumbers == nil || *c.Preamble.LineNumbers {
		t.Error("line numbers should be off")
	}
	if c.Tools.Pdflatex != "lualatex" {
		t.Errorf("pdflatex = %q, want lualatex", c.Tools.Pdflatex)
	}
	// unset fields still fall back
	if c.Preamble.MinipageWidth != "13cm" {
		t.Errorf("minipage width = %q, want default 13cm", c.Preamble.MinipageWidth)
	}
	if c.Tools.Pdftoppm != "pdftoppm" {
		t.Errorf("pdftoppm = %q, want default", c.Tools.Pdftoppm)
	}
}

func TestLoadZeroIndentIsNotUnset(t *testing.T) {
	path := writeConfig(t, "indent-width: 0\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.IndentWidth == nil || *c.IndentWidth != 0 {
		t.Errorf("indent width = %v, want explicit 0", c.IndentWidth)
	}
}

func TestToolsValidate(t *testing.T) {
	c := Default()
	c.Tools.Pdflatex = ""
	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty pdflatex name")
	}
	if !strings.Contains(err.Error(), "pdflatex") {
		t.Errorf("error %q does not mention pdflatex", err)
	}

	c = Default()
	c.Tools.Pdftoppm = ""
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for empty pdftoppm name")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "indnet-width: 3\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for misspelled field")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		msg     string
	}{
		{"negative indent", "indent-width: -1\n", "indent-width"},
		{"empty symbol replacement", "symbols:\n  x: \"\"\n", "replacement"},
		{"empty package", "preamble:\n  packages:\n    - \"\"\n", "package"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
