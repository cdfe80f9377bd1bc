package commands

import (
	"fmt"

	"github.com/bastiangx/dictable/internal/cli"
	"github.com/spf13/cobra"
)

var (
	replMode  string
	replLimit int
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Search line by line",
	Long: `Reads search terms from stdin, one per line. Searches run once input has
been quiet for search.debounce_ms. A line holding only ESC, or :clear,
resets to the full table; :q quits.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().StringVarP(&replMode, "mode", "m", "", "substring, prefix or exact (default from config)")
	replCmd.Flags().IntVarP(&replLimit, "limit", "n", -1, "maximum rows per table, 0 for all (default from config)")
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	mode, err := resolveMode(replMode)
	if err != nil {
		return err
	}
	limit := replLimit
	if limit < 0 {
		limit = appConfig.CLI.DefaultLimit
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	stop, err := startWatcher(cmd.Context(), e)
	if err != nil {
		return fmt.Errorf("failed to watch dataset: %w", err)
	}
	defer stop()

	renderer := cli.NewTableRenderer(cmd.OutOrStdout(), limit)
	return cli.NewInputHandler(e, mode, renderer, appConfig.Search.DebounceDelay()).
		WithInput(cmd.InOrStdin()).
		Start()
}
