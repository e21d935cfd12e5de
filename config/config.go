package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/meetwise/meetwise/core/metrics"
	"github.com/meetwise/meetwise/infra/calendar"
	"github.com/meetwise/meetwise/infra/mailparse"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig     `json:"server"`
	Calendar calendar.Config  `json:"calendar"`
	Parser   mailparse.Config `json:"parser"`
	Metrics  metrics.Config   `json:"metrics"`
	Logging  LoggingConfig    `json:"logging"`
}

// ServerConfig defines the API listener.
type ServerConfig struct {
	Address string `json:"address"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":5000"
	}
}

// Load reads the configuration file, applies MW_-prefixed environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("MW_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "mw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Calendar.SetDefaults()
	cfg.Parser.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Calendar.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
