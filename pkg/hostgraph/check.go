package hostgraph

import (
	"fmt"

	"github.com/graphmorph/hostgraph/pkg/label"
)

// Report collects the findings of a full consistency check. An empty report
// means every invariant held.
type Report struct {
	Violations []string
}

// OK reports whether the check found no violations.
func (r *Report) OK() bool { return len(r.Violations) == 0 }

func (r *Report) addf(format string, args ...any) {
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

// Check runs the full consistency sweep over g and reports every violation
// found. It never stops at the first failure: a corrupted graph yields a
// report naming each broken invariant, which is the debugging payoff.
//
// Checked invariants:
//  1. arena shape: slots beyond each cursor are empty, and every freed slot
//     below the cursor is recorded in its allocator
//  2. counts: live slot tallies match the node and edge counters
//  3. incidence: each node's degree counters match its live incidence
//     entries, and every entry names a live edge with this node as the
//     matching endpoint
//  4. endpoints: each edge's source and target are live, and the edge
//     appears in the source's out-edge array and the target's in-edge array
//  5. class index: every live entity sits in exactly the bucket of its
//     current class, and every bucket member is live
//  6. roots: the root set holds exactly the live nodes with the root flag
//  7. labels: each entity's cached class matches its label
func Check(g *Graph) *Report {
	r := &Report{}
	checkArenas(g, r)
	checkCounts(g, r)
	checkIncidence(g, r)
	checkEndpoints(g, r)
	checkClassIndex(g, r)
	checkRoots(g, r)
	checkLabelClasses(g, r)
	return r
}

func checkArenas(g *Graph, r *Report) {
	for i := g.nodeSlots.cursor; i < len(g.nodes); i++ {
		if g.nodes[i] != nil {
			r.addf("node slot %d is occupied beyond the arena cursor %d", i, g.nodeSlots.cursor)
		}
	}
	for i := g.edgeSlots.cursor; i < len(g.edges); i++ {
		if g.edges[i] != nil {
			r.addf("edge slot %d is occupied beyond the arena cursor %d", i, g.edgeSlots.cursor)
		}
	}
	for i := 0; i < g.nodeSlots.cursor; i++ {
		if g.nodes[i] == nil && !g.nodeSlots.holds(i) {
			r.addf("node slot %d is empty but not recorded as free", i)
		}
		if g.nodes[i] != nil && g.nodeSlots.holds(i) {
			r.addf("node slot %d is live but recorded as free", i)
		}
	}
	for i := 0; i < g.edgeSlots.cursor; i++ {
		if g.edges[i] == nil && !g.edgeSlots.holds(i) {
			r.addf("edge slot %d is empty but not recorded as free", i)
		}
		if g.edges[i] != nil && g.edgeSlots.holds(i) {
			r.addf("edge slot %d is live but recorded as free", i)
		}
	}
}

func checkCounts(g *Graph, r *Report) {
	nodes := 0
	for i := 0; i < g.nodeSlots.cursor; i++ {
		if g.nodes[i] != nil {
			nodes++
		}
	}
	if nodes != g.numNodes {
		r.addf("node count %d does not match %d live node slots", g.numNodes, nodes)
	}
	edges := 0
	for i := 0; i < g.edgeSlots.cursor; i++ {
		if g.edges[i] != nil {
			edges++
		}
	}
	if edges != g.numEdges {
		r.addf("edge count %d does not match %d live edge slots", g.numEdges, edges)
	}
}

func checkIncidence(g *Graph, r *Report) {
	for _, n := range g.Nodes() {
		out := 0
		for i := 0; i < n.outSlots.cursor; i++ {
			id := n.outEdges[i]
			if id < 0 {
				continue
			}
			out++
			e := g.edgeAt(id)
			switch {
			case e == nil:
				r.addf("node %d out-edge entry refers to dead edge %d", n.index, id)
			case e.source != n.index:
				r.addf("node %d lists out-edge %d whose source is node %d", n.index, id, e.source)
			}
		}
		if out != n.outdegree {
			r.addf("node %d outdegree %d does not match %d live out-edge entries", n.index, n.outdegree, out)
		}
		in := 0
		for i := 0; i < n.inSlots.cursor; i++ {
			id := n.inEdges[i]
			if id < 0 {
				continue
			}
			in++
			e := g.edgeAt(id)
			switch {
			case e == nil:
				r.addf("node %d in-edge entry refers to dead edge %d", n.index, id)
			case e.target != n.index:
				r.addf("node %d lists in-edge %d whose target is node %d", n.index, id, e.target)
			}
		}
		if in != n.indegree {
			r.addf("node %d indegree %d does not match %d live in-edge entries", n.index, n.indegree, in)
		}
	}
}

func checkEndpoints(g *Graph, r *Report) {
	for _, e := range g.Edges() {
		src := g.nodeAt(e.source)
		if src == nil {
			r.addf("edge %d has dead source node %d", e.index, e.source)
		} else if !containsEdge(src.outEdges, src.outSlots.cursor, e.index) {
			r.addf("edge %d is missing from source node %d's out-edge array", e.index, e.source)
		}
		tgt := g.nodeAt(e.target)
		if tgt == nil {
			r.addf("edge %d has dead target node %d", e.index, e.target)
		} else if !containsEdge(tgt.inEdges, tgt.inSlots.cursor, e.index) {
			r.addf("edge %d is missing from target node %d's in-edge array", e.index, e.target)
		}
	}
}

func containsEdge(arr []int, cursor, edgeID int) bool {
	for i := 0; i < cursor; i++ {
		if arr[i] == edgeID {
			return true
		}
	}
	return false
}

func checkClassIndex(g *Graph, r *Report) {
	for _, n := range g.Nodes() {
		for c := label.Class(0); int(c) < label.NumClasses; c++ {
			in := g.nodesByClass.contains(c, n.index)
			if c == n.class && !in {
				r.addf("node %d is missing from the %s index bucket", n.index, c)
			}
			if c != n.class && in {
				r.addf("node %d of class %s appears in the %s index bucket", n.index, n.class, c)
			}
		}
	}
	for c := label.Class(0); int(c) < label.NumClasses; c++ {
		for _, id := range g.nodesByClass.lookup(c) {
			if g.nodeAt(id) == nil {
				r.addf("dead node %d appears in the %s index bucket", id, c)
			}
		}
	}
	for _, e := range g.Edges() {
		for c := label.Class(0); int(c) < label.NumClasses; c++ {
			in := g.edgesByClass.contains(c, e.index)
			if c == e.class && !in {
				r.addf("edge %d is missing from the %s index bucket", e.index, c)
			}
			if c != e.class && in {
				r.addf("edge %d of class %s appears in the %s index bucket", e.index, e.class, c)
			}
		}
	}
	for c := label.Class(0); int(c) < label.NumClasses; c++ {
		for _, id := range g.edgesByClass.lookup(c) {
			if g.edgeAt(id) == nil {
				r.addf("dead edge %d appears in the %s index bucket", id, c)
			}
		}
	}
}

func checkRoots(g *Graph, r *Report) {
	for _, n := range g.Nodes() {
		if n.root && !g.roots.Contains(n.index) {
			r.addf("root node %d is missing from the root set", n.index)
		}
		if !n.root && g.roots.Contains(n.index) {
			r.addf("non-root node %d appears in the root set", n.index)
		}
	}
	for _, v := range g.roots.Values() {
		if g.nodeAt(v.(int)) == nil {
			r.addf("dead node %d appears in the root set", v.(int))
		}
	}
}

func checkLabelClasses(g *Graph, r *Report) {
	for _, n := range g.Nodes() {
		if got := n.label.Class(); got != n.class {
			r.addf("node %d caches class %s but its label derives %s", n.index, n.class, got)
		}
	}
	for _, e := range g.Edges() {
		if got := e.label.Class(); got != e.class {
			r.addf("edge %d caches class %s but its label derives %s", e.index, e.class, got)
		}
	}
}

// nodeAt is a bounds-tolerant arena read for the checker; ids outside the
// arena read as dead.
func (g *Graph) nodeAt(id int) *Node {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

func (g *Graph) edgeAt(id int) *Edge {
	if id < 0 || id >= len(g.edges) {
		return nil
	}
	return g.edges[id]
}
