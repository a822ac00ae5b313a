// Package config is responsible for configuring the application from its
// config file and command-line options.
package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/tl/internal/pathutil"
)

const Version = "v0.3.0"

type (
	// Display holds presentation settings.
	Display struct {
		TwentyFourHour bool `mapstructure:"24hr_clock"`
		DarkTheme      bool `mapstructure:"dark_theme"`
	}

	// Settings holds behavioural settings.
	Settings struct {
		// DefaultCategory prefills the category prompt when starting a
		// timer.
		DefaultCategory string `mapstructure:"default_category"`
		// StopCmd is an arbitrary command executed after a timer stops.
		StopCmd string `mapstructure:"stop_cmd"`
	}

	// Config holds all configuration settings.
	Config struct {
		Display      Display  `mapstructure:"display"`
		Settings     Settings `mapstructure:"settings"`
		PathToConfig string   `mapstructure:"-"`
		PathToDB     string   `mapstructure:"-"`
		PathToLog    string   `mapstructure:"-"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyTwentyFourHour  = "display.24hr_clock"
	keyDarkTheme       = "display.dark_theme"
	keyDefaultCategory = "settings.default_category"
	keyStopCmd         = "settings.stop_cmd"
)

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	c := &Config{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// FromContext creates the configuration for a command invocation: file
// paths are resolved first, then the config file is loaded, and finally
// command-line overrides apply.
func FromContext(ctx *cli.Context) (*Config, error) {
	if err := pathutil.Initialize(); err != nil {
		return nil, err
	}

	return New(
		WithPaths(),
		WithViperConfig(pathutil.ConfigFilePath()),
		WithCLIConfig(ctx),
	)
}

// WithPaths returns an Option that records the resolved application file
// paths on the configuration.
func WithPaths() Option {
	return func(c *Config) error {
		c.PathToConfig = pathutil.ConfigFilePath()
		c.PathToDB = pathutil.DBFilePath()
		c.PathToLog = pathutil.LogFilePath()

		return nil
	}
}

// WithViperConfig returns an Option that loads configuration from the
// YAML config file, writing a file with the defaults on first run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		v.SetDefault(keyTwentyFourHour, false)
		v.SetDefault(keyDarkTheme, true)
		v.SetDefault(keyDefaultCategory, "")
		v.SetDefault(keyStopCmd, "")

		err := v.ReadInConfig()
		if err == nil {
			return v.Unmarshal(c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return v.Unmarshal(c)
	}
}

// WithCLIConfig returns an Option that applies command-line overrides.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		if ctx.String("cmd") != "" {
			c.Settings.StopCmd = ctx.String("cmd")
		}

		return nil
	}
}
