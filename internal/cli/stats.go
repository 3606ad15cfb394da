package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/graphmorph/hostgraph/pkg/label"
)

// newStatsCmd creates the stats command: entity counts, the label-class
// histogram, and the root set of a fixture.
func newStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <fixture>",
		Short: "Summarize a host-graph fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			g, err := loadFixture(args[0], cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "graph: %s\n", g.ID())
			fmt.Fprintf(out, "nodes: %d\n", g.NodeCount())
			fmt.Fprintf(out, "edges: %d\n", g.EdgeCount())

			roots := g.RootNodes()
			sort.Ints(roots)
			fmt.Fprintf(out, "roots: %v\n", roots)

			fmt.Fprintln(out, "label classes:")
			for c := label.Class(0); int(c) < label.NumClasses; c++ {
				nodes := len(g.NodesByClass(c))
				edges := len(g.EdgesByClass(c))
				if nodes == 0 && edges == 0 {
					continue
				}
				fmt.Fprintf(out, "  %-8s nodes=%d edges=%d\n", c, nodes, edges)
			}
			return nil
		},
	}
}
