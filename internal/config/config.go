package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 15 * time.Second
)

type Config struct {
	Addr         string `yaml:"addr"`
	DataDir      string `yaml:"data_dir"`
	TemplatesDir string `yaml:"templates_dir,omitempty"`
	LogMode      string `yaml:"log_mode"`
	SiteTitle    string `yaml:"site_title"`
	HomeTips     int    `yaml:"home_tips"`
	HomePlants   int    `yaml:"home_plants"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return parseDuration(c.ReadTimeout, defaultReadTimeout)
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return parseDuration(c.WriteTimeout, defaultWriteTimeout)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path on top of the embedded defaults, then applies
// GARDEN_* environment overrides. An empty path or a missing file means
// defaults only.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"GARDEN_ADDR", &cfg.Addr},
		{"GARDEN_DATA_DIR", &cfg.DataDir},
		{"GARDEN_TEMPLATES_DIR", &cfg.TemplatesDir},
		{"GARDEN_LOG_MODE", &cfg.LogMode},
		{"GARDEN_SITE_TITLE", &cfg.SiteTitle},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.dst = v
		}
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("addr is required")
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if cfg.HomeTips < 0 {
		return fmt.Errorf("home_tips must not be negative, got %d", cfg.HomeTips)
	}
	if cfg.HomePlants < 0 {
		return fmt.Errorf("home_plants must not be negative, got %d", cfg.HomePlants)
	}
	switch strings.ToLower(cfg.LogMode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("unknown log_mode %q (valid: dev, prod)", cfg.LogMode)
	}
	return nil
}
