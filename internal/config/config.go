package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FallbackMode controls what an extractor does when live scraping fails.
type FallbackMode string

const (
	// FallbackMock silently replaces a failed scrape with the platform's
	// example payload. This is the product default: a broken link still
	// produces a plausible itinerary.
	FallbackMock FallbackMode = "mock"
	// FallbackPropagate surfaces scraping failures to the caller.
	FallbackPropagate FallbackMode = "propagate"
)

// LLMConfig configures the Gemini client.
type LLMConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	BaseURL         string  `mapstructure:"base_url"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds"`
	MaxRetries      int     `mapstructure:"max_retries"`
	Temperature     float64 `mapstructure:"temperature"`
	TopP            float64 `mapstructure:"top_p"`
	TopK            int     `mapstructure:"top_k"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BrowserConfig configures the shared headless Chrome instance.
type BrowserConfig struct {
	ChromePath     string `mapstructure:"chrome_path"`
	Headless       bool   `mapstructure:"headless"`
	UserDataDir    string `mapstructure:"user_data_dir"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	ViewportWidth  int    `mapstructure:"viewport_width"`
	ViewportHeight int    `mapstructure:"viewport_height"`
}

func (c BrowserConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ExtractionConfig configures the content extraction pipeline.
type ExtractionConfig struct {
	// RealExtraction gates live browser scraping. Off by default so
	// development runs never need a Chrome install or network access.
	RealExtraction  bool         `mapstructure:"real_extraction"`
	OnFailure       FallbackMode `mapstructure:"on_failure"`
	RetryAttempts   int          `mapstructure:"retry_attempts"`
	RetryDelayMs    int          `mapstructure:"retry_delay_ms"`
	CacheSize       int          `mapstructure:"cache_size"`
	CacheTTLSeconds int          `mapstructure:"cache_ttl_seconds"`
}

func (c ExtractionConfig) RetryDelay() time.Duration {
	if c.RetryDelayMs <= 0 {
		return time.Second
	}
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

func (c ExtractionConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	EnableCORS bool     `mapstructure:"enable_cors"`
	Origins    []string `mapstructure:"origins"`
	Debug      bool     `mapstructure:"debug"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Config is the root configuration for the process.
type Config struct {
	Environment string           `mapstructure:"environment"`
	LLM         LLMConfig        `mapstructure:"llm"`
	Browser     BrowserConfig    `mapstructure:"browser"`
	Extraction  ExtractionConfig `mapstructure:"extraction"`
	Server      ServerConfig     `mapstructure:"server"`
}

// Production reports whether the process runs with production behavior
// (live scraping allowed).
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("llm.model", "gemini-1.5-pro")
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("llm.timeout_seconds", 120)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.top_p", 0.8)
	v.SetDefault("llm.top_k", 40)
	v.SetDefault("llm.max_output_tokens", 8192)

	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.timeout_seconds", 30)
	v.SetDefault("browser.user_agent", defaultUserAgent)
	v.SetDefault("browser.viewport_width", 1920)
	v.SetDefault("browser.viewport_height", 1080)

	v.SetDefault("extraction.real_extraction", false)
	v.SetDefault("extraction.on_failure", string(FallbackMock))
	v.SetDefault("extraction.retry_attempts", 3)
	v.SetDefault("extraction.retry_delay_ms", 1000)
	v.SetDefault("extraction.cache_size", 256)
	v.SetDefault("extraction.cache_ttl_seconds", 900)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.enable_cors", true)
}

// Load reads tripcraft-config.yaml from $HOME or the working directory, then
// applies TRIPCRAFT_* environment overrides. A missing config file is fine;
// everything has a default except the API key.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("tripcraft-config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRIPCRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Extraction.OnFailure {
	case FallbackMock, FallbackPropagate:
	case "":
		cfg.Extraction.OnFailure = FallbackMock
	default:
		return Config{}, fmt.Errorf("invalid extraction.on_failure %q", cfg.Extraction.OnFailure)
	}

	return cfg, nil
}
