package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLength  = 400
	DefaultSpacing = 50
	DefaultLevel   = "warn"
)

var ErrConfig = errors.New("invalid configuration")

type Layout struct {
	Length  float64 `toml:"length"`
	Spacing float64 `toml:"spacing"`
	Width   int     `toml:"width"`
	Styled  bool    `toml:"styled"`
}

type Log struct {
	Level string `toml:"level"`
}

type Format struct {
	Number string `toml:"number"`
	Date   string `toml:"date"`
}

type Config struct {
	Layout Layout `toml:"layout"`
	Log    Log    `toml:"log"`
	Format Format `toml:"format"`
}

func Default() *Config {
	return &Config{
		Layout: Layout{
			Length:  DefaultLength,
			Spacing: DefaultSpacing,
			Width:   80,
		},
		Log: Log{
			Level: DefaultLevel,
		},
	}
}

// Load reads the configuration in file. Settings absent from the file keep
// their default value.
func Load(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !(c.Layout.Length > 0) {
		return fmt.Errorf("layout.length must be positive: %w", ErrConfig)
	}
	if !(c.Layout.Spacing > 0) {
		return fmt.Errorf("layout.spacing must be positive: %w", ErrConfig)
	}
	if c.Layout.Width <= 0 {
		return fmt.Errorf("layout.width must be positive: %w", ErrConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return lvl, fmt.Errorf("log.level: %w: %s", ErrConfig, err)
	}
	return lvl, nil
}

// Pattern gives the label pattern configured for a number or a time axis.
// An empty pattern means automatic.
func (c *Config) Pattern(date bool) string {
	if date {
		return c.Format.Date
	}
	return c.Format.Number
}
