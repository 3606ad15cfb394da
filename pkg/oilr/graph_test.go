package oilr

import (
	"sort"
	"testing"

	"github.com/graphmorph/hostgraph/pkg/config"
	"github.com/graphmorph/hostgraph/pkg/errors"
)

func testGraph() *Graph {
	return New(config.Config{MaxNodes: 64, MaxEdges: 64, MaxIncidentEdges: 8, PoolSize: 64})
}

type fatalSentinel struct{}

func interceptFatal(t *testing.T) {
	t.Helper()
	old := errors.FatalHandler
	errors.FatalHandler = func(string) { panic(fatalSentinel{}) }
	t.Cleanup(func() { errors.FatalHandler = old })
}

func expectFatal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatalSentinel); !ok {
				panic(r)
			}
		}
	}()
	fn()
	t.Fatal("expected a fatal condition, got none")
}

func sig(t *testing.T, g *Graph, id int) int {
	t.Helper()
	info, err := g.NodeInfo(id)
	if err != nil {
		t.Fatalf("NodeInfo(%d): %v", id, err)
	}
	return info.Signature
}

func TestDefaultSignatureBits(t *testing.T) {
	tests := []struct {
		name                 string
		loops, indeg, outdeg int
		root                 bool
		want                 int
	}{
		{"isolated", 0, 0, 0, false, 0},
		{"root only", 0, 0, 0, true, 1},
		{"loop only", 1, 0, 0, false, 2},
		{"in only", 0, 3, 0, false, 4},
		{"out only", 0, 0, 1, false, 8},
		{"everything", 2, 1, 4, true, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultSignature(tt.loops, tt.indeg, tt.outdeg, tt.root); got != tt.want {
				t.Errorf("DefaultSignature = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddNodeLandsInIsolatedBucket(t *testing.T) {
	g := testGraph()
	a := g.AddNode()
	b := g.AddNode()

	got := g.NodesBySignature(0)
	sort.Ints(got)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("NodesBySignature(0) = %v, want [%d %d]", got, a, b)
	}
}

func TestMutationsRebucket(t *testing.T) {
	g := testGraph()
	a := g.AddNode()
	b := g.AddNode()

	e, err := g.AddEdge(a, b)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if got := sig(t, g, a); got != 8 {
		t.Errorf("source signature = %d, want 8 (out only)", got)
	}
	if got := sig(t, g, b); got != 4 {
		t.Errorf("target signature = %d, want 4 (in only)", got)
	}
	if len(g.NodesBySignature(0)) != 0 {
		t.Error("isolated bucket still populated after edge add")
	}

	if err := g.SetRoot(a, true); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	if got := sig(t, g, a); got != 9 {
		t.Errorf("signature after SetRoot = %d, want 9", got)
	}

	if err := g.AddLoop(b); err != nil {
		t.Fatalf("AddLoop: %v", err)
	}
	if got := sig(t, g, b); got != 6 {
		t.Errorf("signature after AddLoop = %d, want 6", got)
	}

	if err := g.DeleteEdge(e); err != nil {
		t.Fatalf("DeleteEdge: %v", err)
	}
	if err := g.DeleteLoop(b); err != nil {
		t.Fatalf("DeleteLoop: %v", err)
	}
	if got := sig(t, g, b); got != 0 {
		t.Errorf("signature after unwinding = %d, want 0", got)
	}
	if got := sig(t, g, a); got != 1 {
		t.Errorf("signature after unwinding = %d, want 1 (root)", got)
	}
}

func TestAddEdgeRefusesSelfEdge(t *testing.T) {
	g := testGraph()
	a := g.AddNode()
	if _, err := g.AddEdge(a, a); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("AddEdge(a, a) = %v, want PRECONDITION_VIOLATION", err)
	}
}

func TestAddEdgeRejectsBadEndpoints(t *testing.T) {
	g := testGraph()
	a := g.AddNode()
	if _, err := g.AddEdge(a, 42); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("AddEdge to never-issued id = %v, want OUT_OF_RANGE", err)
	}
	e, _ := g.AddEdge(a, g.AddNode())
	if _, err := g.AddEdge(a, e); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("AddEdge to edge slot = %v, want PRECONDITION_VIOLATION", err)
	}
}

func TestDeleteLoopOnLoopFreeNodeRefused(t *testing.T) {
	g := testGraph()
	a := g.AddNode()
	if err := g.DeleteLoop(a); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("DeleteLoop = %v, want PRECONDITION_VIOLATION", err)
	}
}

func TestDeleteNodeRequiresIsolation(t *testing.T) {
	interceptFatal(t)
	g := testGraph()
	a := g.AddNode()
	b := g.AddNode()
	g.AddEdge(a, b)

	expectFatal(t, func() { g.DeleteNode(a) })
	expectFatal(t, func() { g.DeleteNode(b) })

	c := g.AddNode()
	g.AddLoop(c)
	expectFatal(t, func() { g.DeleteNode(c) })

	if err := g.DeleteLoop(c); err != nil {
		t.Fatalf("DeleteLoop: %v", err)
	}
	if err := g.DeleteNode(c); err != nil {
		t.Errorf("DeleteNode(isolated) = %v", err)
	}
}

func TestPoolRecyclesFreedSlotsLIFO(t *testing.T) {
	g := testGraph()
	a := g.AddNode()
	b := g.AddNode()
	g.AddNode()

	if err := g.DeleteNode(a); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}
	if err := g.DeleteNode(b); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}
	if got := g.AddNode(); got != b {
		t.Errorf("AddNode = %d, want most recently freed slot %d", got, b)
	}
	if got := g.AddNode(); got != a {
		t.Errorf("AddNode = %d, want %d", got, a)
	}
}

func TestPoolSharedBetweenKinds(t *testing.T) {
	g := testGraph()
	a := g.AddNode()
	b := g.AddNode()
	e, err := g.AddEdge(a, b)
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	// Nodes and edges draw from one pool.
	if e != 2 {
		t.Errorf("edge pool id = %d, want 2", e)
	}
	// A freed edge slot can come back as a node.
	if err := g.DeleteEdge(e); err != nil {
		t.Fatalf("DeleteEdge: %v", err)
	}
	if got := g.AddNode(); got != e {
		t.Errorf("AddNode = %d, want recycled slot %d", got, e)
	}
}

func TestPoolExhaustionIsFatal(t *testing.T) {
	interceptFatal(t)
	g := New(config.Config{MaxNodes: 2, MaxEdges: 2, MaxIncidentEdges: 2, PoolSize: 2})
	g.AddNode()
	g.AddNode()
	expectFatal(t, func() { g.AddNode() })
}

func TestCustomSignaturePolicy(t *testing.T) {
	// Bucket purely by outdegree, capped.
	byOutdegree := func(loops, indeg, outdeg int, root bool) int {
		if outdeg > 7 {
			return 7
		}
		return outdeg
	}
	g := NewWithSignature(config.Config{PoolSize: 32}, 8, byOutdegree)
	a := g.AddNode()
	b := g.AddNode()
	c := g.AddNode()
	g.AddEdge(a, b)
	g.AddEdge(a, c)

	if got := g.NodesBySignature(2); len(got) != 1 || got[0] != a {
		t.Errorf("NodesBySignature(2) = %v, want [%d]", got, a)
	}
	got := g.NodesBySignature(0)
	sort.Ints(got)
	if len(got) != 2 || got[0] != b || got[1] != c {
		t.Errorf("NodesBySignature(0) = %v, want [%d %d]", got, b, c)
	}
}

func TestSignatureOutOfRangeIsFatal(t *testing.T) {
	interceptFatal(t)
	g := NewWithSignature(config.Config{PoolSize: 8}, 2, func(int, int, int, bool) int { return 5 })
	expectFatal(t, func() { g.AddNode() })
}

func TestDumpFormat(t *testing.T) {
	g := testGraph()
	if got := Dump(g); got != "[ | ]\n" {
		t.Errorf("Dump(empty) = %q", got)
	}

	a := g.AddNode()
	b := g.AddNode()
	g.SetRoot(a, true)
	g.AddEdge(a, b)
	g.AddLoop(b)

	want := "[ (n0(R), empty) (n1, empty) |\n  (e0, n0, n1, empty) (e1, n1, n1, empty) ]\n"
	if got := Dump(g); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}
