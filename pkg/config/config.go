/*
Package config manages the TOML config for dictable.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/dictable/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Dataset DatasetConfig `toml:"dataset"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// SearchConfig controls indexing and query scheduling.
type SearchConfig struct {
	DebounceMs int `toml:"debounce_ms"`
	PrefixCap  int `toml:"prefix_cap"`
}

// DatasetConfig says where the table comes from.
type DatasetConfig struct {
	Source         string `toml:"source"`
	FetchTimeoutMs int    `toml:"fetch_timeout_ms"`
	Watch          bool   `toml:"watch"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
}

// CliConfig holds cli and tui options.
type CliConfig struct {
	DefaultLimit int    `toml:"default_limit"`
	DefaultMode  string `toml:"default_mode"`
}

// DebounceDelay returns the configured debounce as a duration.
func (s SearchConfig) DebounceDelay() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// FetchTimeout returns the configured HTTP fetch timeout.
func (d DatasetConfig) FetchTimeout() time.Duration {
	return time.Duration(d.FetchTimeoutMs) * time.Millisecond
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/dictable
// 2. ~/Library/Application Support/dictable (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "dictable")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "dictable")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/dictable/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DebounceMs: 150,
			PrefixCap:  10,
		},
		Dataset: DatasetConfig{
			Source:         "PH.json",
			FetchTimeoutMs: 3000,
			Watch:          false,
		},
		Server: ServerConfig{
			MaxLimit: 200,
		},
		CLI: CliConfig{
			DefaultLimit: 50,
			DefaultMode:  "substring",
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Missing keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.sanitize()
	return config, nil
}

// tryPartialParse keeps whatever sections still parse and type-check.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dataset"); ok {
		extractDatasetConfig(section, &config.Dataset)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.sanitize()
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		search.DebounceMs = val
	}
	if val, ok := utils.ExtractInt64(data, "prefix_cap"); ok {
		search.PrefixCap = val
	}
}

func extractDatasetConfig(data map[string]any, ds *DatasetConfig) {
	if val, ok := utils.ExtractString(data, "source"); ok {
		ds.Source = val
	}
	if val, ok := utils.ExtractInt64(data, "fetch_timeout_ms"); ok {
		ds.FetchTimeoutMs = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		ds.Watch = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractString(data, "default_mode"); ok {
		cli.DefaultMode = val
	}
}

// sanitize puts out-of-range values back to their defaults.
func (c *Config) sanitize() {
	defaults := DefaultConfig()
	if c.Search.DebounceMs < 0 {
		log.Warnf("search.debounce_ms=%d is negative, using %d", c.Search.DebounceMs, defaults.Search.DebounceMs)
		c.Search.DebounceMs = defaults.Search.DebounceMs
	}
	if c.Search.PrefixCap < 1 {
		log.Warnf("search.prefix_cap=%d is below 1, using %d", c.Search.PrefixCap, defaults.Search.PrefixCap)
		c.Search.PrefixCap = defaults.Search.PrefixCap
	}
	if c.Dataset.FetchTimeoutMs <= 0 {
		c.Dataset.FetchTimeoutMs = defaults.Dataset.FetchTimeoutMs
	}
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.CLI.DefaultLimit < 0 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}
}

// RebuildConfigFile overwrites configPath with the defaults and returns
// the path written. An empty configPath means the default location.
func RebuildConfigFile(configPath string) (string, error) {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return "", err
		}
		configPath = defaultPath
	}
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return "", err
	}
	return configPath, utils.SaveTOMLFile(DefaultConfig(), configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
