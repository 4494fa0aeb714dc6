package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds translator and preview settings, normally loaded from a
// pseudotex.yaml next to the scripts being translated.
type Config struct {
	// IndentWidth is the number of spaces per nesting level in the
	// generated command stream. Zero produces a flat stream; unset
	// defaults to 2.
	IndentWidth *int `yaml:"indent-width,omitempty"`

	// Symbols maps identifiers to explicit LaTeX spellings, on top of
	// the builtin Sym_/MC_/BB_ prefix rules.
	Symbols map[string]string `yaml:"symbols,omitempty"`

	Preamble Preamble `yaml:"preamble,omitempty"`
	Tools    Tools    `yaml:"tools,omitempty"`
}

// Preamble controls the wrapper document emitted around the generated
// commands for standalone output and previews.
type Preamble struct {
	DocumentClass string   `yaml:"document-class,omitempty"`
	ClassOptions  string   `yaml:"class-options,omitempty"`
	MinipageWidth string   `yaml:"minipage-width,omitempty"`
	Packages      []string `yaml:"packages,omitempty"`
	LineNumbers   *bool    `yaml:"line-numbers,omitempty"`
}

// Tools names the external TeX binaries the preview path shells out
// to. Bare names are resolved through PATH.
type Tools struct {
	Pdflatex string `yaml:"pdflatex,omitempty"`
	Pdftoppm string `yaml:"pdftoppm,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.fillDefaults()
	return c
}

func (c *Config) fillDefaults() {
	if c.IndentWidth == nil {
		w := 2
		c.IndentWidth = &w
	}
	if c.Preamble.DocumentClass == "" {
		c.Preamble.DocumentClass = "standalone"
	}
	if c.Preamble.ClassOptions == "" {
		c.Preamble.ClassOptions = "border=0.5cm, 12pt"
	}
	if c.Preamble.MinipageWidth == "" {
		c.Preamble.MinipageWidth = "13cm"
	}
	if c.Preamble.LineNumbers == nil {
		t := true
		c.Preamble.LineNumbers = &t
	}
	if c.Tools.Pdflatex == "" {
		c.Tools.Pdflatex = "pdflatex"
	}
	if c.Tools.Pdftoppm == "" {
		c.Tools.Pdftoppm = "pdftoppm"
	}
}

// Load reads and validates a configuration file. Unset fields fall
// back to the defaults.
func Load(path string) (*Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer fh.Close()

	var c Config
	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", path, err)
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed for %s: %v", path, err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if *c.IndentWidth < 0 {
		return fmt.Errorf("indent-width cannot be negative")
	}
	for name, repl := range c.Symbols {
		if name == "" {
			return fmt.Errorf("symbol name cannot be empty")
		}
		if repl == "" {
			return fmt.Errorf("symbol replacement cannot be empty for %s", name)
		}
	}
	if err := c.Preamble.Validate(); err != nil {
		return fmt.Errorf("preamble: %v", err)
	}
	if err := c.Tools.Validate(); err != nil {
		return fmt.Errorf("tools: %v", err)
	}
	return nil
}

func (p *Preamble) Validate() error {
	if p.DocumentClass == "" {
		return fmt.Errorf("document class is required")
	}
	if p.MinipageWidth == "" {
		return fmt.Errorf("minipage width is required")
	}
	for _, pkg := range p.Packages {
		if pkg == "" {
			return fmt.Errorf("package name cannot be empty")
		}
	}
	return nil
}

func (t *Tools) Validate() error {
	if t.Pdflatex == "" {
		return fmt.Errorf("pdflatex binary name is required")
	}
	if t.Pdftoppm == "" {
		return fmt.Errorf("pdftoppm binary name is required")
	}
	return nil
}
