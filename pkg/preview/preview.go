// Package preview is the output driver around the translator core: it
// wraps a generated command stream in a minimal document and drives an
// external TeX toolchain to produce PDF or PNG artifacts. Failures of
// the external tools are reported as plain errors; they are not part
// of the translator's own error taxonomy.
package preview

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pseudotex/pseudotex/pkg/config"
)

//go:embed pseudotex.sty
var companionStyle string

// WrapDocument embeds a generated command stream into a compilable
// standalone document using the preamble settings.
func WrapDocument(body string, p config.Preamble) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\documentclass[%s]{%s}\n\n", p.ClassOptions, p.DocumentClass)
	b.WriteString("\\usepackage[utf8]{inputenc}\n")
	b.WriteString("\\usepackage{amsmath,amsfonts}\n")
	b.WriteString("\\usepackage[section]{algorithm}\n")
	b.WriteString("\\usepackage{algorithmicx}\n")
	b.WriteString("\\usepackage[noend]{algpseudocode}\n")
	b.WriteString("\\usepackage{pseudotex}\n")
	for _, pkg := range p.Packages {
		fmt.Fprintf(&b, "\\usepackage{%s}\n", pkg)
	}
	b.WriteString("\n\\begin{document}\n")
	fmt.Fprintf(&b, "\\begin{minipage}{%s}\n", p.MinipageWidth)
	if p.LineNumbers == nil || *p.LineNumbers {
		b.WriteString("    \\begin{algorithmic}[1]\n")
	} else {
		b.WriteString("    \\begin{algorithmic}\n")
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("    \\end{algorithmic}\n")
	b.WriteString("\\end{minipage}\n")
	b.WriteString("\\end{document}\n")
	return b.String()
}

// Job compiles one translated script into a preview artifact.
type Job struct {
	// ScriptPath is the source script; the work directory is created
	// next to it and its directory joins TEXINPUTS so user style files
	// resolve.
	ScriptPath string
	// Body is the generated command stream.
	Body string
	// Config supplies preamble settings and tool names; nil means
	// defaults.
	Config *config.Config
	// KeepWorkDir leaves the work directory behind for inspection.
	KeepWorkDir bool
}

func (j *Job) config() *config.Config {
	if j.Config != nil {
		return j.Config
	}
	return config.Default()
}

// PDF compiles the wrapper document and copies the result to dest.
func (j *Job) PDF(ctx context.Context, dest string) error {
	workDir, err := j.compile(ctx)
	if err != nil {
		return err
	}
	defer j.cleanup(workDir)
	if err := copyFile(filepath.Join(workDir, "pseudotex.pdf"), dest); err != nil {
		return err
	}
	slog.Info("wrote PDF preview", "path", dest)
	return nil
}

// PNG compiles the wrapper document, rasterizes the first page and
// copies the result to dest.
func (j *Job) PNG(ctx context.Context, dest string) error {
	workDir, err := j.compile(ctx)
	if err != nil {
		return err
	}
	defer j.cleanup(workDir)

	cfg := j.config()
	cmd := exec.CommandContext(ctx, cfg.Tools.Pdftoppm, "-singlefile", "-png", "pseudotex.pdf", "pseudotex")
	cmd.Dir = workDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("pdftoppm failed: %v\n%s", err, out)
	}
	if err := copyFile(filepath.Join(workDir, "pseudotex.png"), dest); err != nil {
		return err
	}
	slog.Info("wrote PNG preview", "path", dest)
	return nil
}

// compile writes the wrapper document and companion style into a fresh
// work directory and runs pdflatex there. On success the caller owns
// cleanup of the returned directory.
func (j *Job) compile(ctx context.Context) (string, error) {
	cfg := j.config()

	scriptDir := filepath.Dir(j.ScriptPath)
	workDir := filepath.Join(scriptDir, ".pseudotex", uuid.NewString())
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}

	doc := WrapDocument(j.Body, cfg.Preamble)
	if err := os.WriteFile(filepath.Join(workDir, "pseudotex.tex"), []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write wrapper document: %w", err)
	}
	if err := os.WriteFile(filepath.Join(workDir, "pseudotex.sty"), []byte(companionStyle), 0o644); err != nil {
		return "", fmt.Errorf("write companion style: %w", err)
	}

	cmd := exec.CommandContext(ctx, cfg.Tools.Pdflatex, "-halt-on-error", "-interaction=nonstopmode", "pseudotex.tex")
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), "TEXINPUTS=.:"+scriptDir+":")
	out, err := cmd.CombinedOutput()
	if err != nil {
		if !j.KeepWorkDir {
			os.RemoveAll(workDir)
		}
		return "", fmt.Errorf("pdflatex failed: %v\n%s", err, out)
	}
	slog.Info("pdflatex build finished", "dir", workDir)
	return workDir, nil
}

func (j *Job) cleanup(workDir string) {
	if j.KeepWorkDir {
		slog.Info("keeping work dir", "dir", workDir)
		return
	}
	os.RemoveAll(workDir)
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
