package model

import (
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds the complete Floodlens configuration
type Config struct {
	NER         NERConfig       `yaml:"ner"`
	Cache       CacheConfig     `yaml:"cache"`
	HTTP        HTTPConfig      `yaml:"http"`
	Concurrency ConcurrencyConf `yaml:"concurrency"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Output      OutputConfig    `yaml:"output"`
}

// NERConfig configures the entity-recognizer backend
type NERConfig struct {
	Backend   string `yaml:"backend"`              // prose, openai, ollama
	Model     string `yaml:"model,omitempty"`      // Model name for remote backends
	APIKey    string `yaml:"-"`                    // Never written to config files
	BaseURL   string `yaml:"base_url,omitempty"`   // Custom endpoint (e.g. Ollama)
	Timeout   int    `yaml:"timeout"`              // Seconds, remote backends only
	MaxTokens int    `yaml:"max_tokens,omitempty"` // Response cap for LLM backends
}

// CacheConfig configures recognizer-result caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// HTTPConfig configures the article fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// ConcurrencyConf configures worker parallelism
type ConcurrencyConf struct {
	Workers int `yaml:"workers"` // Articles processed in parallel
}

// RateLimitConfig configures per-host politeness for the fetch command
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	JSONDir string `yaml:"json_dir,omitempty"` // Write one JSON record per article when set
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cacheDir := ".floodlens-cache"
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".floodlens", "cache")
	}

	return &Config{
		NER: NERConfig{
			Backend:   "prose",
			Timeout:   30,
			MaxTokens: 2000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cacheDir,
			TTL:     7 * 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Floodlens/0.1 (+https://github.com/rkabir/floodlens)",
			MaxBodyBytes: 2_000_000,
		},
		Concurrency: ConcurrencyConf{
			Workers: runtime.NumCPU(),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Output: OutputConfig{},
	}
}
