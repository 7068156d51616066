package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Clock ClockConfig `yaml:"clock"`
	Bing  BingConfig  `yaml:"bing"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// ClockConfig drives the periodic tasks owned by every overlay session.
type ClockConfig struct {
	TickInterval      time.Duration `yaml:"tickInterval"`
	BlinkInterval     time.Duration `yaml:"blinkInterval"`
	BackgroundRefresh time.Duration `yaml:"backgroundRefresh"`
	// Timezone is used when the page does not ask for one via ?tz=.
	Timezone  string `yaml:"timezone"`
	SourceURL string `yaml:"sourceUrl"`
}

// BingConfig points the proxy endpoint at the image-of-the-day archive.
type BingConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	ArchivePath string        `yaml:"archivePath"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("CLOCK_TICK_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Clock.TickInterval = parsed
		}
	}
	if v := os.Getenv("CLOCK_BLINK_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Clock.BlinkInterval = parsed
		}
	}
	if v := os.Getenv("CLOCK_BACKGROUND_REFRESH"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Clock.BackgroundRefresh = parsed
		}
	}
	if v := os.Getenv("CLOCK_TIMEZONE"); v != "" {
		cfg.Clock.Timezone = v
	}
	if v := os.Getenv("CLOCK_SOURCE_URL"); v != "" {
		cfg.Clock.SourceURL = v
	}
	if v := os.Getenv("BING_BASE_URL"); v != "" {
		cfg.Bing.BaseURL = v
	}
	if v := os.Getenv("BING_ARCHIVE_PATH"); v != "" {
		cfg.Bing.ArchivePath = v
	}
	if v := os.Getenv("BING_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Bing.Timeout = parsed
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 0, // the clock stream stays open for the lifetime of the page
		},
		Clock: ClockConfig{
			TickInterval:      time.Second,
			BlinkInterval:     500 * time.Millisecond,
			BackgroundRefresh: 6 * time.Hour,
			Timezone:          "Local",
			SourceURL:         "https://github.com/LiaoAnn/time-with-bing-photo-of-the-day",
		},
		Bing: BingConfig{
			BaseURL:     "https://www.bing.com",
			ArchivePath: "/HPImageArchive.aspx?format=js&idx=0&n=1",
			Timeout:     10 * time.Second,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 {
		return errors.New("http timeouts cannot be negative")
	}
	if c.Clock.TickInterval <= 0 {
		return errors.New("clock.tickInterval must be positive")
	}
	if c.Clock.BlinkInterval <= 0 {
		return errors.New("clock.blinkInterval must be positive")
	}
	if c.Clock.BackgroundRefresh <= 0 {
		return errors.New("clock.backgroundRefresh must be positive")
	}
	if _, err := time.LoadLocation(c.Clock.Timezone); err != nil {
		return fmt.Errorf("clock.timezone: %w", err)
	}
	if strings.TrimSpace(c.Bing.BaseURL) == "" {
		return errors.New("bing.baseUrl cannot be empty")
	}
	if !strings.HasPrefix(c.Bing.ArchivePath, "/") {
		return errors.New("bing.archivePath must start with /")
	}
	if c.Bing.Timeout <= 0 {
		return errors.New("bing.timeout must be positive")
	}
	return nil
}
