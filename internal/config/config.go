package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Clients ClientsConfig `toml:"clients"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// ClientsConfig contains upstream API client settings.
type ClientsConfig struct {
	Finnhub    FinnhubConfig    `toml:"finnhub"`
	Brandfetch BrandfetchConfig `toml:"brandfetch"`
}

// FinnhubConfig contains quote API settings.
type FinnhubConfig struct {
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
	Timeout  string `toml:"timeout"`
	CacheTTL string `toml:"cache_ttl"` // proxy response cache TTL
}

// GetTimeout parses and returns the timeout duration
func (c *FinnhubConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetCacheTTL parses and returns the proxy cache TTL duration
func (c *FinnhubConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// BrandfetchConfig contains brand API settings. The upstream quota is a hard
// ceiling of ~100 requests per month, hence the pacing interval and the long
// cache TTL.
type BrandfetchConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	Timeout      string `toml:"timeout"`
	PaceInterval string `toml:"pace_interval"`
	CacheTTL     string `toml:"cache_ttl"`
}

// GetTimeout parses and returns the timeout duration
func (c *BrandfetchConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetPaceInterval parses and returns the inter-request pacing delay
func (c *BrandfetchConfig) GetPaceInterval() time.Duration {
	d, err := time.ParseDuration(c.PaceInterval)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// GetCacheTTL parses and returns the brand cache TTL duration
func (c *BrandfetchConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

// StorageConfig contains storage layer settings.
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains BadgerDB-specific settings.
type BadgerConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies FOLIO_* environment variable overrides to config.
// The bare FINNHUB_API_KEY / BRANDFETCH_API_KEY names are also honored so
// keys never have to live in a config file.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("FOLIO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FOLIO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if badgerPath := os.Getenv("FOLIO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("FOLIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	for _, name := range []string{"FOLIO_FINNHUB_API_KEY", "FINNHUB_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Clients.Finnhub.APIKey = key
			break
		}
	}
	for _, name := range []string{"FOLIO_BRANDFETCH_API_KEY", "BRANDFETCH_API_KEY"} {
		if key := os.Getenv(name); key != "" {
			config.Clients.Brandfetch.APIKey = key
			break
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory configuration and returns a list of issues.
// Missing upstream API keys are not fatal: the corresponding proxy endpoint
// answers 500 and enrichment degrades to soft misses.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Storage.Badger.Path == "" {
		issues = append(issues, "storage.badger.path must not be empty")
	}
	if c.Clients.Finnhub.BaseURL == "" {
		issues = append(issues, "clients.finnhub.base_url must not be empty")
	}
	if c.Clients.Brandfetch.BaseURL == "" {
		issues = append(issues, "clients.brandfetch.base_url must not be empty")
	}

	return issues
}
