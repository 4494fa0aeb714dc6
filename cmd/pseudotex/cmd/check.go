package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pseudotex/pseudotex/pkg/latex"
)

var checkCmd = &cobra.Command{
	Use:   "check <script>...",
	Short: "Check scripts without writing output",
	Long: `Parses, filters and generates each script, reporting syntax errors
and unsupported constructs. Nothing is written on success.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		if _, err := latex.Translate(path, src, latexOptions(cfg)); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed", failed, len(args))
	}
	return nil
}
