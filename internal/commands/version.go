package commands

import (
	"github.com/bastiangx/dictable/internal/logger"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const gh = "https://github.com/bastiangx/dictable"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	// no config or dataset needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		banner := logger.NewWithConfig(cmd.OutOrStdout(), "", log.InfoLevel, false, false, log.TextFormatter)

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		banner.SetStyles(styles)

		banner.Print("[ dictable ] searchable dictionary tables")
		banner.Print("", "version", version)
		banner.Print("use -h or --help to see available options")
		banner.Print("Github Repo", "gh", gh)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
