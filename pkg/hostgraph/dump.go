package hostgraph

import (
	"fmt"
	"strings"

	"github.com/graphmorph/hostgraph/pkg/label"
)

// Dump renders g in the textual host-graph format:
//
//	[ (n0(R), empty) (n1, 42 # red) |
//	  (e0(B), n0, n1, "a") ]
//
// Nodes come before the "|" separator at five per line, edges after it at
// three per line. Roots carry an "(R)" tag, bidirectional edges a "(B)" tag,
// and a non-default mark is appended as " # <mark>". An empty graph renders
// as "[ | ]". Entities appear in ascending slot order, so the dump of a
// given graph is deterministic.
func Dump(g *Graph) string {
	var b strings.Builder
	if g.numNodes == 0 {
		return "[ | ]\n"
	}

	b.WriteString("[ ")
	perLine := 0
	for _, n := range g.Nodes() {
		if perLine == 5 {
			b.WriteString("\n  ")
			perLine = 0
		}
		root := ""
		if n.root {
			root = "(R)"
		}
		fmt.Fprintf(&b, "(n%d%s, %s) ", n.index, root, formatDumpLabel(n.label))
		perLine++
	}

	if g.numEdges == 0 {
		b.WriteString("| ]\n")
		return b.String()
	}

	b.WriteString("|\n  ")
	perLine = 0
	for _, e := range g.Edges() {
		if perLine == 3 {
			b.WriteString("\n  ")
			perLine = 0
		}
		bidi := ""
		if e.bidirectional {
			bidi = "(B)"
		}
		fmt.Fprintf(&b, "(e%d%s, n%d, n%d, %s) ", e.index, bidi, e.source, e.target, formatDumpLabel(e.label))
		perLine++
	}
	b.WriteString("]\n")
	return b.String()
}

func formatDumpLabel(l label.Label) string {
	if l.Mark() == label.MarkNone {
		return l.String()
	}
	return l.String() + " # " + l.Mark().String()
}
