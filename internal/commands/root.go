// Package commands holds the dictable command tree.
package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bastiangx/dictable/internal/logger"
	"github.com/bastiangx/dictable/internal/utils"
	"github.com/bastiangx/dictable/internal/watch"
	"github.com/bastiangx/dictable/pkg/config"
	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/bastiangx/dictable/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	dataSource string
	configFile string
	debugMode   bool
	watchData   bool
	resetConfig bool

	appConfig  *config.Config
	configUsed string
	version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "dictable",
	Short: "Search a dictionary table as you type",
	Long: `dictable loads a table of rows (JSON or msgpack, from disk or a URL),
indexes every word and word prefix, and answers multi-word searches that
ignore case and diacritics.

Search it one-shot, from a line based repl, a full screen tui, or over a
msgpack IPC stream.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataSource, "data", "", "dataset file or URL (default from config)")
	flags.StringVar(&configFile, "config", "", "path to config.toml")
	flags.BoolVarP(&debugMode, "debug", "d", false, "toggle debug logging")
	flags.BoolVar(&watchData, "watch", false, "rebuild the index when the dataset file changes")
	flags.BoolVar(&resetConfig, "reset-config", false, "rewrite the config file with defaults before starting")
}

// Execute runs the command tree.
func Execute(ctx context.Context, v string) error {
	version = v
	rootCmd.Version = v
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.Setup(debugMode)

	if resetConfig {
		written, err := config.RebuildConfigFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to reset config: %w", err)
		}
		log.Warnf("Rewrote %s with defaults", written)
	}

	cfg, path, err := config.LoadConfigWithPriority(configFile)
	if err != nil {
		return err
	}
	if dataSource != "" {
		cfg.Dataset.Source = dataSource
	}
	if cmd.Flags().Changed("watch") {
		cfg.Dataset.Watch = watchData
	}
	appConfig, configUsed = cfg, path
	log.Debug("Config ready", "path", configUsed, "source", cfg.Dataset.Source)
	return nil
}

// openEngine loads the configured dataset into a fresh engine.
func openEngine(ctx context.Context) (*search.Engine, error) {
	cfg := appConfig
	source := pathResolver().ResolveDataset(cfg.Dataset.Source)

	e := search.NewEngine(cfg.Search.PrefixCap, dataset.NewLoader(cfg.Dataset.FetchTimeout()))
	if err := e.LoadFrom(ctx, source); err != nil {
		return nil, err
	}
	stats := e.Stats()
	log.Debugf("Loaded %s rows, %s keys from %s",
		utils.FormatWithCommas(stats["rows"]), utils.FormatWithCommas(stats["keys"]), source)
	return e, nil
}

// pathResolver looks for relative dataset paths next to the config in use.
func pathResolver() *utils.PathResolver {
	configDir := ""
	if configUsed != "" {
		configDir = filepath.Dir(configUsed)
	}
	return utils.NewPathResolver(configDir)
}

// startWatcher reloads e whenever its dataset file changes. It returns a
// no-op stop func when watching is off or the source is a URL.
func startWatcher(ctx context.Context, e *search.Engine) (func(), error) {
	source := e.Source()
	if !appConfig.Dataset.Watch {
		return func() {}, nil
	}
	if dataset.IsURL(source) {
		log.Warnf("Cannot watch remote dataset %s", source)
		return func() {}, nil
	}

	w, err := watch.New(source, watch.DefaultDelay, func() {
		if err := e.Reload(ctx); err != nil {
			log.Errorf("Reload of %s failed, keeping previous table: %v", source, err)
			return
		}
		log.Infof("Reloaded %s (snapshot %s)", source, e.Snapshot().ID)
	})
	if err != nil {
		return nil, err
	}
	return func() { w.Close() }, nil
}

// resolveMode picks the --mode flag or the configured default.
func resolveMode(name string) (search.Mode, error) {
	if name == "" {
		name = appConfig.CLI.DefaultMode
	}
	mode, ok := search.ParseMode(name)
	if !ok {
		return "", fmt.Errorf("unknown mode %q (want substring, prefix or exact)", name)
	}
	return mode, nil
}
