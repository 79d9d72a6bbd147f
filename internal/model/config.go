package model

import "time"

// Config holds the full runtime configuration.
// Populated from defaults, then ~/.giinscan/config.yaml, then GIINSCAN_* env
// vars, then CLI flags (highest priority).
type Config struct {
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Clean   CleanConfig   `yaml:"clean" mapstructure:"clean"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
}

// HTTPConfig controls the fetcher.
type HTTPConfig struct {
	DefaultDelay  time.Duration `yaml:"default_delay" mapstructure:"default_delay"` // Minimum gap between requests to the same host
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
}

// CleanConfig controls record validation.
type CleanConfig struct {
	MinNameLength   int    `yaml:"min_name_length" mapstructure:"min_name_length"` // In runes, not bytes
	MaxNameLength   int    `yaml:"max_name_length" mapstructure:"max_name_length"` // 0 disables the check
	RequireJapanese bool   `yaml:"require_japanese" mapstructure:"require_japanese"`
	RulesFile       string `yaml:"rules_file,omitempty" mapstructure:"rules_file"` // Extra rules merged after the built-ins
}

// OutputConfig controls CSV export.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Encoding string `yaml:"encoding" mapstructure:"encoding"` // utf-8 or utf-8-sig (BOM, for Excel)
	Verbose  bool   `yaml:"-" mapstructure:"-"`
}

// SourcesConfig maps category names to their source pages, in scrape order.
type SourcesConfig struct {
	Categories []SourceCategory `yaml:"categories" mapstructure:"categories"`
}

// SourceCategory is one named group of pages exported as a single CSV.
type SourceCategory struct {
	Name  string      `yaml:"name" mapstructure:"name"`
	Pages []SourcePage `yaml:"pages" mapstructure:"pages"`
}

// SourcePage is one URL plus the extraction template to apply to it.
type SourcePage struct {
	URL      string `yaml:"url" mapstructure:"url"`
	Template string `yaml:"template,omitempty" mapstructure:"template"` // Adapter name; empty means auto-select
}

// Category returns the named source category, or nil when not configured.
func (c *Config) Category(name string) *SourceCategory {
	for i := range c.Sources.Categories {
		if c.Sources.Categories[i].Name == name {
			return &c.Sources.Categories[i]
		}
	}
	return nil
}

// DefaultConfig returns the built-in defaults. Delay and retry values mirror
// the politeness settings Japanese municipal sites tolerate well.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			DefaultDelay:  1500 * time.Millisecond,
			MaxRetries:    3,
			Timeout:       30 * time.Second,
			UserAgent:     "giinscan/0.2 (+https://github.com/giinscan/giinscan)",
			MaxBodyBytes:  4 << 20,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "data/cache",
			TTL:       24 * time.Hour,
			MemoryTTL: 15 * time.Minute,
		},
		Clean: CleanConfig{
			MinNameLength:   2,
			MaxNameLength:   10,
			RequireJapanese: true,
		},
		Output: OutputConfig{
			Dir:      "data/outputs",
			Encoding: "utf-8-sig",
		},
	}
}
