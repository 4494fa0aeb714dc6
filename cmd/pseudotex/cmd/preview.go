package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pseudotex/pseudotex/pkg/latex"
	"github.com/pseudotex/pseudotex/pkg/preview"
)

var (
	previewPDF   string
	previewPNG   string
	previewKeep  bool
	previewWatch bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <script>",
	Short: "Compile a script into a PDF or PNG preview",
	Long: `Translates a script, wraps it in a standalone document and runs the
TeX toolchain (pdflatex, and pdftoppm for PNG output).

With --watch the script is recompiled whenever it changes on disk.

Examples:
  pseudotex preview search.py
  pseudotex preview search.py --png search.png
  pseudotex preview search.py --pdf search.pdf --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewPDF, "pdf", "", "Write a PDF preview to this path")
	previewCmd.Flags().StringVar(&previewPNG, "png", "", "Write a PNG preview to this path")
	previewCmd.Flags().BoolVar(&previewKeep, "keep", false, "Keep the TeX work directory for inspection")
	previewCmd.Flags().BoolVar(&previewWatch, "watch", false, "Recompile whenever the script changes")
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := args[0]
	if previewPDF == "" && previewPNG == "" {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		previewPDF = base + ".pdf"
	}

	if err := compileOnce(cmd.Context(), path); err != nil {
		if !previewWatch {
			return err
		}
		// In watch mode a broken script is not fatal: report and wait
		// for the next save.
		slog.Error("compile failed", "script", path, "error", err)
	}
	if !previewWatch {
		return nil
	}
	return watch(cmd.Context(), path)
}

func compileOnce(ctx context.Context, path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	body, err := latex.Translate(path, src, latexOptions(cfg))
	if err != nil {
		return err
	}

	job := &preview.Job{ScriptPath: path, Body: body, Config: cfg, KeepWorkDir: previewKeep}
	if previewPDF != "" {
		if err := job.PDF(ctx, previewPDF); err != nil {
			return err
		}
	}
	if previewPNG != "" {
		if err := job.PNG(ctx, previewPNG); err != nil {
			return err
		}
	}
	return nil
}

// watch recompiles on every write to the script. Editors typically
// replace files on save, so the parent directory is watched and events
// are filtered by name.
func watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	slog.Info("watching for changes", "script", path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Info("script changed, recompiling", "script", path)
			if err := compileOnce(ctx, path); err != nil {
				slog.Error("compile failed", "script", path, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}
