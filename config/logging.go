package config

import "fmt"

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// LoggingConfig defines log output settings.
type LoggingConfig struct {
	// Level is the minimum severity emitted: debug, info, warn or error.
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the configured level.
func (c LoggingConfig) Validate() error {
	if !logLevels[c.Level] {
		return fmt.Errorf("unknown log level %s", c.Level)
	}
	return nil
}
