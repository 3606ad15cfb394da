package hostgraph

import (
	"strings"
	"testing"

	"github.com/graphmorph/hostgraph/pkg/errors"
	"github.com/graphmorph/hostgraph/pkg/label"
)

func TestDumpEmptyGraph(t *testing.T) {
	if got := Dump(New()); got != "[ | ]\n" {
		t.Errorf("Dump(empty) = %q, want %q", got, "[ | ]\n")
	}
}

func TestDumpFormat(t *testing.T) {
	g := New()
	g.AddNode(label.Blank(), true)
	g.AddNode(mustLabel(t, label.MarkRed, label.Integer(42)), false)
	g.AddEdge(mustLabel(t, label.MarkNone, label.String("w")), true, 0, 1)

	want := "[ (n0(R), empty) (n1, 42 # red) |\n  (e0(B), n0, n1, \"w\") ]\n"
	if got := Dump(g); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestDumpNodesOnly(t *testing.T) {
	g := New()
	g.AddNode(mustLabel(t, label.MarkNone, label.Integer(1), label.Integer(2)), false)
	want := "[ (n0, 1 : 2) | ]\n"
	if got := Dump(g); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestDumpWrapsLines(t *testing.T) {
	g := New()
	for i := 0; i < 6; i++ {
		g.AddNode(label.Blank(), false)
	}
	for i := 0; i < 4; i++ {
		g.AddEdge(label.Blank(), false, i, i+1)
	}

	out := Dump(g)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Dump produced %d lines, want 4:\n%s", len(lines), out)
	}
	if strings.Count(lines[0], "(n") != 5 || strings.Count(lines[1], "(n") != 1 {
		t.Errorf("node wrapping wrong:\n%s", out)
	}
	if strings.Count(lines[2], "(e") != 3 || strings.Count(lines[3], "(e") != 1 {
		t.Errorf("edge wrapping wrong:\n%s", out)
	}
}

func TestParseDumpRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *Graph
	}{
		{
			name:  "empty",
			build: func(t *testing.T) *Graph { return New() },
		},
		{
			name: "marks roots and bidi edges",
			build: func(t *testing.T) *Graph {
				g := New()
				g.AddNode(mustLabel(t, label.MarkGrey, label.Integer(3)), true)
				g.AddNode(mustLabel(t, label.MarkGreen, label.String("a b")), false)
				g.AddEdge(mustLabel(t, label.MarkDashed), true, 0, 1)
				g.AddEdge(label.Blank(), false, 1, 1)
				return g
			},
		},
		{
			name: "lists and expressions",
			build: func(t *testing.T) *Graph {
				g := New()
				g.AddNode(mustLabel(t, label.MarkNone,
					label.Integer(1), label.Neg{Expr: label.Integer(2)}, label.String("x")), false)
				g.AddNode(mustLabel(t, label.MarkBlue,
					label.BinOp{Op: label.OpAdd, Left: label.Variable("i"), Right: label.Integer(1)}), false)
				g.AddEdge(mustLabel(t, label.MarkNone,
					label.BinOp{Op: label.OpConcat, Left: label.Variable("s"), Right: label.String("!")}), false, 0, 1)
				return g
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Dump(tt.build(t))
			parsed, err := ParseDump(first)
			if err != nil {
				t.Fatalf("ParseDump: %v\ninput:\n%s", err, first)
			}
			if r := Check(parsed); !r.OK() {
				t.Fatalf("parsed graph inconsistent: %v", r.Violations)
			}
			if second := Dump(parsed); second != first {
				t.Errorf("round trip drifted:\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}

func TestParseDumpErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unbalanced brackets", "[ (n0, empty) |"},
		{"unknown endpoint", "[ (n0, empty) | (e0, n0, n9, empty) ]"},
		{"duplicate node", "[ (n0, empty) (n0, empty) | ]"},
		{"unknown mark", "[ (n0, empty # purple) | ]"},
		{"overlong list", "[ (n0, 1 : 2 : 3 : 4 : 5 : 6) | ]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDump(tt.src); !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("ParseDump(%q) = %v, want PARSE_ERROR", tt.src, err)
			}
		})
	}
}

func TestParseDumpReassignsIDs(t *testing.T) {
	// Names with gaps parse to dense slot ids in listed order.
	g, err := ParseDump(`[ (n3, empty) (n7(R), empty) | (e5, n7, n3, empty) ]`)
	if err != nil {
		t.Fatalf("ParseDump: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("parsed %d nodes, %d edges; want 2, 1", g.NodeCount(), g.EdgeCount())
	}
	e, _ := g.Edge(0)
	if e.Source() != 1 || e.Target() != 0 {
		t.Errorf("edge endpoints = (%d, %d), want (1, 0)", e.Source(), e.Target())
	}
	if got := g.RootNodes(); len(got) != 1 || got[0] != 1 {
		t.Errorf("RootNodes = %v, want [1]", got)
	}
}
