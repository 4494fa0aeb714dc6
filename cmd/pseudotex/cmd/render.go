package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pseudotex/pseudotex/pkg/latex"
	"github.com/pseudotex/pseudotex/pkg/preview"
	"github.com/pseudotex/pseudotex/pkg/script"
)

var (
	renderOutput     string
	renderStandalone bool
	renderDumpAST    bool
)

var renderCmd = &cobra.Command{
	Use:   "render <script>",
	Short: "Translate a script into pseudocode commands",
	Long: `Translates a script and writes the generated LaTeX commands to
stdout or to a file.

Examples:
  pseudotex render search.py
  pseudotex render search.py -o search.tex
  pseudotex render --standalone search.py > doc.tex
  pseudotex render --dump-ast search.py`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write output to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderStandalone, "standalone", false, "Wrap the commands in a compilable document")
	renderCmd.Flags().BoolVar(&renderDumpAST, "dump-ast", false, "Print the parsed statement tree instead of LaTeX")
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	if renderDumpAST {
		sc, err := script.Parse(path, src)
		if err != nil {
			return err
		}
		fmt.Print(script.Pretty(sc.Stmts))
		return nil
	}

	out, err := latex.Translate(path, src, latexOptions(cfg))
	if err != nil {
		return err
	}
	if renderStandalone {
		out = preview.WrapDocument(out, cfg.Preamble)
	}

	if renderOutput == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(renderOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
