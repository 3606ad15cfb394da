// Package render converts host graphs to Graphviz DOT and SVG for debug
// visualization. Rendering has no runtime role in the engine; it exists so a
// host graph mid-derivation can be eyeballed.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/graphmorph/hostgraph/pkg/hostgraph"
	"github.com/graphmorph/hostgraph/pkg/label"
)

// markColors maps label marks to Graphviz fill colors. Unmarked entities
// stay white.
var markColors = map[label.Mark]string{
	label.MarkRed:    "salmon",
	label.MarkGreen:  "palegreen",
	label.MarkBlue:   "lightblue",
	label.MarkGrey:   "lightgrey",
	label.MarkDashed: "white",
}

// ToDOT converts a host graph to Graphviz DOT format. Marks become fill
// colors, root nodes get a double outline (peripheries=2), bidirectional
// edges render with arrowheads at both ends, and dashed-marked entities use
// a dashed line style. The graph's uuid is used as the diagram title.
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(g *hostgraph.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph hostgraph {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", g.ID())
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n))}
		attrs = append(attrs, markAttrs(n.Label().Mark())...)
		if n.IsRoot() {
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.Index(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(e))}
		attrs = append(attrs, markAttrs(e.Label().Mark())...)
		if e.IsBidirectional() {
			attrs = append(attrs, "dir=both")
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", e.Source(), e.Target(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *hostgraph.Node) string {
	l := n.Label()
	if l.Len() == 0 {
		return fmt.Sprintf("n%d", n.Index())
	}
	return fmt.Sprintf("n%d\n%s", n.Index(), l.String())
}

func edgeLabel(e *hostgraph.Edge) string {
	l := e.Label()
	if l.Len() == 0 {
		return ""
	}
	return l.String()
}

func markAttrs(m label.Mark) []string {
	var attrs []string
	if color, ok := markColors[m]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", color))
	}
	if m == label.MarkDashed {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
