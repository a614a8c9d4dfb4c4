package model

import "time"

// Config holds the complete runtime configuration.
type Config struct {
	RefData     RefDataConfig     `yaml:"refdata"`
	Reasoning   ReasoningConfig   `yaml:"reasoning"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	Server      ServerConfig      `yaml:"server"`
}

// RefDataConfig configures the reference-data gateway.
type RefDataConfig struct {
	Path     string        `yaml:"path"`      // SQLite database path
	CacheTTL time.Duration `yaml:"cache_ttl"` // Read-through cache TTL (0 disables caching)
	AutoSeed bool          `yaml:"auto_seed"` // Seed demo inventory/vendors on first open
}

// ReasoningConfig configures the reflection backend. The backend is
// resolved once, before any invoice is processed, never per call.
type ReasoningConfig struct {
	Backend           string  `yaml:"backend"` // "grok" or "mock"
	Model             string  `yaml:"model"`
	APIKey            string  `yaml:"-"` // From XAI_API_KEY, never persisted
	BaseURL           string  `yaml:"base_url"`
	Timeout           int     `yaml:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig configures result rendering.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Verbose bool   `yaml:"verbose"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	SamplesDir     string   `yaml:"samples_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RefData: RefDataConfig{
			Path:     "refdata.db",
			CacheTTL: 5 * time.Minute,
			AutoSeed: true,
		},
		Reasoning: ReasoningConfig{
			Backend:           "mock", // Deterministic unless a credential is configured
			Model:             "grok-beta",
			BaseURL:           "https://api.x.ai/v1",
			Timeout:           30,
			MaxTokens:         500,
			RequestsPerSecond: 2,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Server: ServerConfig{
			Addr:       ":8000",
			SamplesDir: "data/invoices",
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
			},
		},
	}
}
