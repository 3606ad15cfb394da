package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/graphmorph/hostgraph/pkg/errors"
)

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaultsToPartialFiles(t *testing.T) {
	path := writeTOML(t, "max_nodes = 128\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxNodes != 128 {
		t.Errorf("MaxNodes = %d, want 128", cfg.MaxNodes)
	}
	def := Default()
	if cfg.MaxEdges != def.MaxEdges || cfg.MaxIncidentEdges != def.MaxIncidentEdges || cfg.PoolSize != def.PoolSize {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadFullFile(t *testing.T) {
	path := writeTOML(t, `
max_nodes = 16
max_edges = 32
max_incident_edges = 4
pool_size = 64
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{MaxNodes: 16, MaxEdges: 32, MaxIncidentEdges: 4, PoolSize: 64}
	if cfg != want {
		t.Errorf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.toml"), errors.ErrCodeFileNotFound},
		{"malformed toml", writeTOML(t, "max_nodes = ["), errors.ErrCodeInvalidConfig},
		{"non-positive capacity", writeTOML(t, "max_edges = 0"), errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); !errors.Is(err, tt.code) {
				t.Errorf("Load = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	bad := Default()
	bad.MaxIncidentEdges = -1
	if err := bad.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Validate = %v, want INVALID_CONFIG", err)
	}
}
