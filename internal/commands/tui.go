package commands

import (
	"fmt"

	"github.com/bastiangx/dictable/internal/tui"
	"github.com/spf13/cobra"
)

var tuiMode string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Full screen search box over the table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode, err := resolveMode(tuiMode)
		if err != nil {
			return err
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

		return tui.Run(e, mode, appConfig.Search.DebounceDelay())
	},
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiMode, "mode", "m", "", "substring, prefix or exact (default from config)")
	rootCmd.AddCommand(tuiCmd)
}
