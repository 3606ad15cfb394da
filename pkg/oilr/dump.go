package oilr

import (
	"fmt"
	"strings"
)

// Dump renders the graph in the shared textual host-graph format. The
// variant is unlabelled, so every label prints as "empty". Loops are
// materialized as self-edges with synthetic ids after the real edges, since
// the format has no loop-counter syntax.
func Dump(g *Graph) string {
	if g.numNodes == 0 {
		return "[ | ]\n"
	}

	var b strings.Builder
	b.WriteString("[ ")
	perLine := 0
	loops := 0
	for id := 0; id < g.high; id++ {
		if g.pool[id].kind != slotNode {
			continue
		}
		n := &g.pool[id].node
		loops += n.loops
		if perLine == 5 {
			b.WriteString("\n  ")
			perLine = 0
		}
		root := ""
		if n.root {
			root = "(R)"
		}
		fmt.Fprintf(&b, "(n%d%s, empty) ", id, root)
		perLine++
	}

	if g.numEdges == 0 && loops == 0 {
		b.WriteString("| ]\n")
		return b.String()
	}

	b.WriteString("|\n  ")
	perLine = 0
	next := 0
	writeEdge := func(source, target int) {
		if perLine == 3 {
			b.WriteString("\n  ")
			perLine = 0
		}
		fmt.Fprintf(&b, "(e%d, n%d, n%d, empty) ", next, source, target)
		next++
		perLine++
	}
	for id := 0; id < g.high; id++ {
		if g.pool[id].kind == slotEdge {
			writeEdge(g.pool[id].edge.source, g.pool[id].edge.target)
		}
	}
	for id := 0; id < g.high; id++ {
		if g.pool[id].kind != slotNode {
			continue
		}
		for i := 0; i < g.pool[id].node.loops; i++ {
			writeEdge(id, id)
		}
	}
	b.WriteString("]\n")
	return b.String()
}
