package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the optional application configuration file. All
// sections are optional; missing values fall back to built-in defaults.
type AppConfig struct {
	Classifier ClassifierConfig `toml:"classifier"`
	Responder  ResponderConfig  `toml:"responder"`

	path string
}

// ClassifierConfig customizes the search-need classifier phrase lists
type ClassifierConfig struct {
	Indicators []string `toml:"indicators"`
	Recency    []string `toml:"recency"`
}

// ResponderConfig customizes response generation behavior
type ResponderConfig struct {
	Apology         string `toml:"apology"`
	MaxHistoryTurns int    `toml:"max_history_turns"`
}

// Validate checks the configuration values
func (c *AppConfig) Validate() error {
	if c.Responder.MaxHistoryTurns < 0 {
		return goerr.Wrap(ErrInvalidConfig, "max_history_turns must not be negative",
			goerr.V("max_history_turns", c.Responder.MaxHistoryTurns))
	}
	for i, phrase := range c.Classifier.Indicators {
		if phrase == "" {
			return goerr.Wrap(ErrInvalidConfig, "empty classifier indicator phrase", goerr.V("index", i))
		}
	}
	for i, phrase := range c.Classifier.Recency {
		if phrase == "" {
			return goerr.Wrap(ErrInvalidConfig, "empty classifier recency phrase", goerr.V("index", i))
		}
	}
	return nil
}

// Flags returns CLI flags for the application configuration
func (c *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to application configuration file (TOML)",
			Sources:     cli.EnvVars("ARIADNE_CONFIG"),
			Destination: &c.path,
		},
	}
}

// Configure loads and validates the configuration file when one is set
func (c *AppConfig) Configure() error {
	if c.path == "" {
		return nil
	}
	return c.LoadFile(c.path)
}

// LoadFile reads, parses and validates a configuration file
func (c *AppConfig) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return goerr.Wrap(ErrConfigNotFound, "configuration file does not exist",
				goerr.V(ConfigPathKey, path))
		}
		return goerr.Wrap(err, "failed to read configuration file", goerr.V(ConfigPathKey, path))
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return goerr.Wrap(err, "failed to parse configuration file", goerr.V(ConfigPathKey, path))
	}

	if err := c.Validate(); err != nil {
		return goerr.Wrap(err, "configuration validation failed", goerr.V(ConfigPathKey, path))
	}

	return nil
}
