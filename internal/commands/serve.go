package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/bastiangx/dictable/internal/utils"
	"github.com/bastiangx/dictable/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve searches as msgpack over stdin/stdout",
	Long: `Starts the msgpack IPC server. Requests are read from stdin and one
response per request is written to stdout; logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEngine(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		stop, err := startWatcher(cmd.Context(), e)
		if err != nil {
			return fmt.Errorf("failed to watch dataset: %w", err)
		}
		defer stop()

		showStartupInfo(e.Source(), e.Stats()["rows"])
		return server.NewServerWithIO(e, appConfig, cmd.InOrStdin(), cmd.OutOrStdout()).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(source string, rows int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	log.Infof("dictable %s", version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dataset: ( %s ) rows: %s", source, utils.FormatWithCommas(rows))
	log.Infof("config: ( %s )", utils.GetAbsolutePath(configUsed))
	log.Info("status: ready")

	if currentLevel <= log.DebugLevel {
		info := pathResolver().GetRuntimeInfo()
		keys := make([]string, 0, len(info))
		for k := range info {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			log.Debug("runtime", k, info[k])
		}
	}
}
