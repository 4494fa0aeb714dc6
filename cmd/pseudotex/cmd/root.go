package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pseudotex/pseudotex/pkg/config"
	"github.com/pseudotex/pseudotex/pkg/latex"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pseudotex",
	Short: "Typeset algorithm pseudocode from Python-like scripts",
	Long: `pseudotex translates a restricted Python-like script into LaTeX
commands for the algorithmicx/algpseudocode packages.

Scripts stay syntactically valid: a '!hide' string statement truncates
the rendered output, and the usual __main__ guard block is dropped, so
the same file can both run and typeset.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./pseudotex.yaml if present)")
}

// loadConfig resolves the active configuration: the --config flag, a
// pseudotex.yaml in the working directory, or the defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if _, err := os.Stat("pseudotex.yaml"); err == nil {
		return config.Load("pseudotex.yaml")
	}
	return config.Default(), nil
}

func latexOptions(cfg *config.Config) *latex.Options {
	return &latex.Options{
		Indent:  strings.Repeat(" ", *cfg.IndentWidth),
		Symbols: cfg.Symbols,
	}
}
