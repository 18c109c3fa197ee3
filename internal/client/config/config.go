package config

import "time"

// Config holds runtime settings for the book review CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the REST API.
//   - StoragePath: sqlite file holding the persisted credential.
//   - RequestTimeout: upper bound for a single API request.
//   - LogLevel: debug, info, warn or error.
//   - MinRating: lowest rating a review may be saved with.
//   - SearchRatePerSecond: client-side cap on catalog searches.
type Config struct {
	ServerEndpointAddr  string        `env:"BOOKREVIEW_SERVER"`
	StoragePath         string        `env:"BOOKREVIEW_STORAGE"`
	RequestTimeout      time.Duration `env:"BOOKREVIEW_TIMEOUT"`
	LogLevel            string        `env:"BOOKREVIEW_LOG_LEVEL"`
	MinRating           float64       `env:"BOOKREVIEW_MIN_RATING"`
	SearchRatePerSecond float64       `env:"BOOKREVIEW_SEARCH_RATE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
	c.StoragePath = "bookreview.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.MinRating = 0.5
	c.SearchRatePerSecond = 2
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
