// Package config loads engine capacity configuration.
//
// The engine uses fixed-capacity arenas sized generously up front for
// predictable performance; there is no dynamic-growth fallback, so capacities
// are a deployment decision. Capacities are read from a TOML file:
//
//	max_nodes = 4096
//	max_edges = 8192
//	max_incident_edges = 64
//	pool_size = 1024
//
// Any key left unset keeps its default.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/graphmorph/hostgraph/pkg/errors"
)

// Config holds the fixed capacities of one engine instance.
type Config struct {
	// MaxNodes is the node arena capacity of a host graph.
	MaxNodes int `toml:"max_nodes"`
	// MaxEdges is the edge arena capacity of a host graph.
	MaxEdges int `toml:"max_edges"`
	// MaxIncidentEdges caps each node's in- and out-edge incidence arrays.
	MaxIncidentEdges int `toml:"max_incident_edges"`
	// PoolSize is the shared node/edge pool capacity of the
	// signature-indexed engine variant.
	PoolSize int `toml:"pool_size"`
}

// Default returns the built-in capacities used when no file is supplied.
func Default() Config {
	return Config{
		MaxNodes:         4096,
		MaxEdges:         8192,
		MaxIncidentEdges: 64,
		PoolSize:         1024,
	}
}

// Load reads capacities from a TOML file, starting from Default so partial
// files work. Returns FILE_NOT_FOUND if the path does not exist and
// INVALID_CONFIG for malformed TOML or non-positive capacities.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects non-positive capacities.
func (c Config) Validate() error {
	switch {
	case c.MaxNodes <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_nodes must be positive, got %d", c.MaxNodes)
	case c.MaxEdges <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_edges must be positive, got %d", c.MaxEdges)
	case c.MaxIncidentEdges <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_incident_edges must be positive, got %d", c.MaxIncidentEdges)
	case c.PoolSize <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "pool_size must be positive, got %d", c.PoolSize)
	}
	return nil
}
