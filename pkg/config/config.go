/*
Package config manages the TOML config for mnemo services.
*/
package config

import (
	"path/filepath"
	"time"

	"github.com/bastiangx/mnemo/internal/utils"
	"github.com/bastiangx/mnemo/pkg/datamuse"
	"github.com/bastiangx/mnemo/pkg/splitter"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Lookup LookupConfig `toml:"lookup"`
	Search SearchConfig `toml:"search"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has HTTP and IPC server options.
type ServerConfig struct {
	Addr             string `toml:"addr"`
	DefaultLimit     int    `toml:"default_limit"`
	MaxLimit         int    `toml:"max_limit"`
	RequestTimeoutMs int    `toml:"request_timeout_ms"`
}

// LookupConfig holds options for the Datamuse client and its cache.
type LookupConfig struct {
	BaseURL   string `toml:"base_url"`
	TimeoutMs int    `toml:"timeout_ms"`
	PoolSize  int    `toml:"pool_size"`
	CacheSize int    `toml:"cache_size"`
	UserAgent string `toml:"user_agent"`
}

// SearchConfig holds split search options.
type SearchConfig struct {
	MinFragmentLength int    `toml:"min_fragment_length"`
	MinWordLength     int    `toml:"min_word_length"`
	MaxConcurrency    int    `toml:"max_concurrency"`
	SyllableDict      string `toml:"syllable_dict"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	DefaultSplit bool `toml:"default_split"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             "127.0.0.1:8390",
			DefaultLimit:     10,
			MaxLimit:         64,
			RequestTimeoutMs: 15000,
		},
		Lookup: LookupConfig{
			BaseURL:   datamuse.DefaultBaseURL,
			TimeoutMs: int(datamuse.DefaultTimeout / time.Millisecond),
			PoolSize:  datamuse.DefaultPoolSize,
			CacheSize: 2048,
			UserAgent: "mnemo",
		},
		Search: SearchConfig{
			MinFragmentLength: splitter.MinFragmentLength,
			MinWordLength:     splitter.MinWordLength,
			MaxConcurrency:    0,
		},
		CLI: CliConfig{
			DefaultLimit: 5,
			DefaultSplit: true,
		},
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := utils.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/mnemo/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			cfg, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return cfg, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return cfg, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values missing from the file keep their defaults,
// a file that does not decode is recovered section by section.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	cfg.sanitize()
	return cfg, nil
}

// tryPartialParse keeps every value of the file that has the right type.
func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &cfg.Server)
	}
	if section, ok := utils.ExtractSection(raw, "lookup"); ok {
		extractLookupConfig(section, &cfg.Lookup)
	}
	if section, ok := utils.ExtractSection(raw, "search"); ok {
		extractSearchConfig(section, &cfg.Search)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &cfg.CLI)
	}
	cfg.sanitize()
	return cfg, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		server.Addr = val
	}
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt(data, "request_timeout_ms"); ok {
		server.RequestTimeoutMs = val
	}
}

func extractLookupConfig(data map[string]any, lookup *LookupConfig) {
	if val, ok := utils.ExtractString(data, "base_url"); ok {
		lookup.BaseURL = val
	}
	if val, ok := utils.ExtractInt(data, "timeout_ms"); ok {
		lookup.TimeoutMs = val
	}
	if val, ok := utils.ExtractInt(data, "pool_size"); ok {
		lookup.PoolSize = val
	}
	if val, ok := utils.ExtractInt(data, "cache_size"); ok {
		lookup.CacheSize = val
	}
	if val, ok := utils.ExtractString(data, "user_agent"); ok {
		lookup.UserAgent = val
	}
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt(data, "min_fragment_length"); ok {
		search.MinFragmentLength = val
	}
	if val, ok := utils.ExtractInt(data, "min_word_length"); ok {
		search.MinWordLength = val
	}
	if val, ok := utils.ExtractInt(data, "max_concurrency"); ok {
		search.MaxConcurrency = val
	}
	if val, ok := utils.ExtractString(data, "syllable_dict"); ok {
		search.SyllableDict = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "default_split"); ok {
		cli.DefaultSplit = val
	}
}

// sanitize resets values that would break the services to their defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Server.DefaultLimit <= 0 {
		log.Warnf("server.default_limit must be > 0, using %d", def.Server.DefaultLimit)
		c.Server.DefaultLimit = def.Server.DefaultLimit
	}
	if c.Server.MaxLimit < 0 {
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.RequestTimeoutMs <= 0 {
		c.Server.RequestTimeoutMs = def.Server.RequestTimeoutMs
	}
	if c.Lookup.TimeoutMs <= 0 {
		c.Lookup.TimeoutMs = def.Lookup.TimeoutMs
	}
	if c.Search.MinFragmentLength <= 0 {
		c.Search.MinFragmentLength = def.Search.MinFragmentLength
	}
	if c.Search.MinWordLength <= 0 {
		c.Search.MinWordLength = def.Search.MinWordLength
	}
	if c.CLI.DefaultLimit <= 0 {
		c.CLI.DefaultLimit = def.CLI.DefaultLimit
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// RequestTimeout returns the per-request deadline of the servers.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutMs) * time.Millisecond
}

// Timeout returns the per-request deadline of the lookup client.
func (l LookupConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutMs) * time.Millisecond
}

// DatamuseConfig converts the lookup section into client options.
func (l LookupConfig) DatamuseConfig() datamuse.Config {
	return datamuse.Config{
		BaseURL:   l.BaseURL,
		Timeout:   l.Timeout(),
		PoolSize:  l.PoolSize,
		UserAgent: l.UserAgent,
	}
}

// SplitterOptions converts the search section into engine options.
func (s SearchConfig) SplitterOptions() splitter.Options {
	return splitter.Options{
		MinFragmentLength: s.MinFragmentLength,
		MinWordLength:     s.MinWordLength,
		MaxConcurrency:    s.MaxConcurrency,
	}
}
