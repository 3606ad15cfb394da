package cli

import (
	"github.com/spf13/cobra"

	"github.com/graphmorph/hostgraph/pkg/errors"
	"github.com/graphmorph/hostgraph/pkg/hostgraph"
)

// newValidateCmd creates the validate command. It parses a fixture file and
// runs the full invariant sweep, logging every violation found.
func newValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <fixture>",
		Short: "Parse a host-graph fixture and check every structural invariant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			g, err := loadFixture(args[0], cfg)
			if err != nil {
				return err
			}
			logger.Debug("fixture parsed", "nodes", g.NodeCount(), "edges", g.EdgeCount())

			report := hostgraph.Check(g)
			if !report.OK() {
				for _, v := range report.Violations {
					logger.Error("invariant violated", "finding", v)
				}
				return errors.New(errors.ErrCodeInvariant,
					"%s: %d invariant violations", args[0], len(report.Violations))
			}
			logger.Info("fixture is consistent",
				"graph", g.ID(), "nodes", g.NodeCount(), "edges", g.EdgeCount())
			return nil
		},
	}
}
