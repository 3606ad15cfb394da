// Package cli implements the hostgraph command-line interface.
//
// The CLI is debug tooling around the engine: it loads host-graph fixture
// files in the textual dump format and validates, renders, or summarizes
// them. It has no role at rule-application time.
//
// # Commands
//
//   - validate: parse a fixture and run the full invariant check
//   - render: generate a DOT or SVG visualization of a fixture
//   - stats: print counts, the label-class histogram, and root nodes
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphmorph/hostgraph/pkg/buildinfo"
	"github.com/graphmorph/hostgraph/pkg/config"
	"github.com/graphmorph/hostgraph/pkg/errors"
	"github.com/graphmorph/hostgraph/pkg/hostgraph"
)

// Execute runs the hostgraph CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree against
// ctx so the process can be interrupted cleanly.
func Execute(ctx context.Context) error {
	var verbose bool
	var configPath string

	root := &cobra.Command{
		Use:          "hostgraph",
		Short:        "Inspect and validate host-graph fixtures",
		Long:         `hostgraph is a debug tool for host-graph fixture files: it parses the textual dump format, checks the structural invariants the engine maintains, and renders graphs for inspection.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML file with engine capacities")

	root.AddCommand(newValidateCmd(&configPath))
	root.AddCommand(newRenderCmd(&configPath))
	root.AddCommand(newStatsCmd(&configPath))

	return root.ExecuteContext(ctx)
}

// loadConfig resolves the engine capacities: the --config file when given,
// defaults otherwise.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// loadFixture reads and parses a host-graph fixture file.
func loadFixture(path string, cfg config.Config) (*hostgraph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read fixture %s", path)
	}
	return hostgraph.ParseDumpWithConfig(cfg, string(data))
}
