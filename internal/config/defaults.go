package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 4251,
			Host: "localhost",
		},
		Clients: ClientsConfig{
			Finnhub: FinnhubConfig{
				BaseURL:  "https://finnhub.io/api/v1",
				Timeout:  "10s",
				CacheTTL: "15m",
			},
			Brandfetch: BrandfetchConfig{
				BaseURL:      "https://api.brandfetch.io/v2",
				Timeout:      "10s",
				PaceInterval: "500ms",
				CacheTTL:     "720h", // 30 days
			},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/folio",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
