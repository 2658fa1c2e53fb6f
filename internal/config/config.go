package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/SbEnChOi/world-energy-ubiquity/pkg/aggregate"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/seed"
	"github.com/SbEnChOi/world-energy-ubiquity/pkg/timeline"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "ecotimeline.toml"

// AppConfig is the full application configuration.
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Projection ProjectionConfig `toml:"projection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port         int  `toml:"port" env:"ECOTIMELINE_PORT"`
	DevMode      bool `toml:"dev_mode" env:"ECOTIMELINE_DEV_MODE"`
	MaxSnapshots int  `toml:"max_snapshots" env:"ECOTIMELINE_MAX_SNAPSHOTS"`
}

// ProjectionConfig sets the defaults used when a request or command leaves
// a value unset.
type ProjectionConfig struct {
	SeedsPath         string  `toml:"seeds_path" env:"ECOTIMELINE_SEEDS"`
	Seed              int64   `toml:"seed" env:"ECOTIMELINE_SEED"`
	Resource          string  `toml:"resource" env:"ECOTIMELINE_RESOURCE"`
	Year              int     `toml:"year" env:"ECOTIMELINE_YEAR"`
	CriticalThreshold float64 `toml:"critical_threshold" env:"ECOTIMELINE_CRITICAL_THRESHOLD"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         3000,
			MaxSnapshots: 32,
		},
		Projection: ProjectionConfig{
			Resource:          string(seed.Oil),
			Year:              timeline.PivotYear,
			CriticalThreshold: aggregate.DefaultCriticalThreshold,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file at the default path is not an error.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail later at request time.
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.MaxSnapshots <= 0 {
		return fmt.Errorf("server.max_snapshots must be > 0")
	}
	if _, err := seed.ParseResource(c.Projection.Resource); err != nil {
		return fmt.Errorf("projection.resource: %w", err)
	}
	if !timeline.DefaultRange().Contains(c.Projection.Year) {
		return fmt.Errorf("projection.year %d outside %d-%d", c.Projection.Year, timeline.StartYear, timeline.EndYear)
	}
	if t := c.Projection.CriticalThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("projection.critical_threshold %.3f must be in (0,1]", t)
	}
	return nil
}

// DefaultResource returns the configured resource.
func (c *AppConfig) DefaultResource() seed.Resource {
	r, err := seed.ParseResource(c.Projection.Resource)
	if err != nil {
		return seed.Oil
	}
	return r
}

// Save writes the config as TOML.
func Save(path string, c *AppConfig) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
