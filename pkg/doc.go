// Package pkg provides the core libraries of the hostgraph engine.
//
// # Overview
//
// hostgraph is the host-graph runtime underlying a graph-transformation rule
// engine: an in-memory, mutable, labelled directed multigraph with fast
// incidence traversal, label-class indexed lookup for pattern matching, and
// transactional snapshot/rollback for speculative rule application.
//
// The pkg directory is organized as follows:
//
//   - [hostgraph] - The storage engine: node/edge arenas with slot recycling,
//     incidence lists, label-class index, root set, snapshot stack, invariant
//     checker, and the textual dump format.
//   - [oilr] - Alternative engine bucketing nodes by structural signature
//     (loops/in-degree/out-degree/root) for O(1) candidate enumeration.
//   - [label] - Opaque label values: marks, list atoms, classification, deep copy.
//   - [config] - Engine capacity configuration (TOML).
//   - [render] - Debug visualization of host graphs via Graphviz.
//   - [errors] - Coded error taxonomy and the fatal-condition hook.
//   - [observability] - Mutation/snapshot hook interfaces with no-op defaults.
//
// # Quick Start
//
// Build a graph, snapshot it, mutate, and roll back:
//
//	g := hostgraph.New()
//	n0 := g.AddNode(label.Blank(), false)
//	n1 := g.AddNode(label.Blank(), false)
//	e0, _ := g.AddEdge(label.Blank(), false, n0, n1)
//
//	var snaps hostgraph.SnapshotStack
//	snaps.Push(g)
//	_ = g.RemoveEdge(e0)
//	g = snaps.Restore() // back to 2 nodes, 1 edge
//
// The engine is single-threaded by design: one graph instance per logical
// rule-application context, no internal locking.
//
// [hostgraph]: https://pkg.go.dev/github.com/graphmorph/hostgraph/pkg/hostgraph
// [oilr]: https://pkg.go.dev/github.com/graphmorph/hostgraph/pkg/oilr
// [label]: https://pkg.go.dev/github.com/graphmorph/hostgraph/pkg/label
// [config]: https://pkg.go.dev/github.com/graphmorph/hostgraph/pkg/config
// [render]: https://pkg.go.dev/github.com/graphmorph/hostgraph/pkg/render
// [errors]: https://pkg.go.dev/github.com/graphmorph/hostgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/graphmorph/hostgraph/pkg/observability
package pkg
