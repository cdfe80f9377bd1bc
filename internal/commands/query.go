package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bastiangx/dictable/internal/cli"
	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/bastiangx/dictable/pkg/search"
	"github.com/spf13/cobra"
)

var (
	queryMode  string
	queryLimit int
	queryJSON  bool
)

var queryCmd = &cobra.Command{
	Use:   "query [term...]",
	Short: "Run one search and print the matching rows",
	Long: `Runs a single search. Every word must match some indexed key; with no
words the whole table is printed.

Modes:
  substring  words match anywhere inside a key (default)
  prefix     words match the start of a key
  exact      the whole term is one indexed key`,
	Args: cobra.ArbitraryArgs,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryMode, "mode", "m", "", "substring, prefix or exact (default from config)")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", -1, "maximum rows to print, 0 for all (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

type queryOutput struct {
	Query   string        `json:"query"`
	Mode    search.Mode   `json:"mode"`
	Headers []string      `json:"headers"`
	Rows    []dataset.Row `json:"rows"`
	Count   int           `json:"count"`
	Total   int           `json:"total"`
	Micros  int64         `json:"time_us"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	mode, err := resolveMode(queryMode)
	if err != nil {
		return err
	}
	limit := queryLimit
	if limit < 0 {
		limit = appConfig.CLI.DefaultLimit
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	term := strings.Join(args, " ")
	start := time.Now()
	rows := search.Run(e, mode, term)
	elapsed := time.Since(start)

	if queryJSON {
		shown := rows
		if limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		if shown == nil {
			shown = []dataset.Row{}
		}
		data, err := json.MarshalIndent(queryOutput{
			Query:   term,
			Mode:    mode,
			Headers: e.Headers(),
			Rows:    shown,
			Count:   len(shown),
			Total:   len(rows),
			Micros:  elapsed.Microseconds(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return cli.NewTableRenderer(cmd.OutOrStdout(), limit).Render(e.Headers(), rows, term, elapsed)
}
