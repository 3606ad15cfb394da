package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphmorph/hostgraph/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// newRenderCmd creates the render command for visualizing fixtures. Marks
// become fill colors, roots get a double outline, bidirectional edges render
// with arrowheads at both ends.
func newRenderCmd(configPath *string) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "render <fixture>",
		Short: "Render a host-graph fixture as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("unknown format %q: want %s or %s", format, formatDOT, formatSVG)
			}
			logger := loggerFromContext(cmd.Context())

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			g, err := loadFixture(args[0], cfg)
			if err != nil {
				return err
			}

			dot := render.ToDOT(g)
			out := []byte(dot)
			if format == formatSVG {
				out, err = render.RenderSVG(dot)
				if err != nil {
					return err
				}
			}

			if output == "" {
				base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
				output = base + "." + format
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("rendered fixture", "graph", g.ID(), "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the fixture name with the format extension)")
	return cmd
}
