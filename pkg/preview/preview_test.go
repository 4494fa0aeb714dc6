package preview

import (
	"strings"
	"testing"

	"github.com/pseudotex/pseudotex/pkg/config"
)

func TestWrapDocument(t *testing.T) {
	body := "\\State{$x \\gets 1$}\n"
	doc := WrapDocument(body, config.Default().Preamble)

	for _, want := range []string{
		`\documentclass[border=0.5cm, 12pt]{standalone}`,
		`\usepackage{algorithmicx}`,
		`\usepackage[noend]{algpseudocode}`,
		`\usepackage{pseudotex}`,
		`\begin{minipage}{13cm}`,
		`\begin{algorithmic}[1]`,
		body,
		`\end{algorithmic}`,
		`\end{document}`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document is missing %q:\n%s", want, doc)
		}
	}
}

func TestWrapDocumentOptions(t *testing.T) {
	off := false
	p := config.Preamble{
		DocumentClass: "article",
		ClassOptions:  "12pt",
		MinipageWidth: "10cm",
		Packages:      []string{"tikz"},
		LineNumbers:   &off,
	}
	doc := WrapDocument("\\State{x}\n", p)

	if !strings.Contains(doc, `\documentclass[12pt]{article}`) {
		t.Errorf("wrong document class line:\n%s", doc)
	}
	if !strings.Contains(doc, `\usepackage{tikz}`) {
		t.Errorf("extra package missing:\n%s", doc)
	}
	if strings.Contains(doc, `\begin{algorithmic}[1]`) {
		t.Errorf("line numbering should be off:\n%s", doc)
	}
	if !strings.Contains(doc, `\begin{algorithmic}`) {
		t.Errorf("algorithmic environment missing:\n%s", doc)
	}
}

func TestWrapDocumentTerminatesBody(t *testing.T) {
	doc := WrapDocument(`\State{x}`, config.Default().Preamble)
	if !strings.Contains(doc, "\\State{x}\n") {
		t.Errorf("unterminated body not closed with a newline:\n%s", doc)
	}
}

func TestCompanionStyleEmbedded(t *testing.T) {
	for _, want := range []string{
		`\ProvidesPackage{pseudotex}`,
		`\Break`,
		`\Continue`,
	} {
		if !strings.Contains(companionStyle, want) {
			t.Errorf("companion style is missing %q", want)
		}
	}
}
