// Package hostgraph implements the host-graph storage engine: an in-memory,
// mutable, labelled directed multigraph with arena-backed node/edge storage,
// slot recycling, per-node incidence arrays, a label-class index for matching
// candidate enumeration, root-node tracking, and deep-copy snapshots for
// speculative rule application.
//
// All entity identities are plain integers: stable arena slot ids meaningful
// only relative to their owning Graph. Cross-references (incidence entries,
// edge endpoints) are stored as ids, never as pointers, and a lookup by id is
// the only way to reach another entity.
//
// The engine is single-threaded and synchronous. Every operation completes
// before returning and is atomic with respect to the data invariants; a
// multi-threaded host must serialize all operations per graph instance.
package hostgraph

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/google/uuid"

	"github.com/graphmorph/hostgraph/pkg/config"
	"github.com/graphmorph/hostgraph/pkg/errors"
	"github.com/graphmorph/hostgraph/pkg/label"
	"github.com/graphmorph/hostgraph/pkg/observability"
)

// Node is a vertex in a host graph. Nodes are owned by their Graph and must
// only be mutated through Graph operations; accessors are safe to call at
// any time.
type Node struct {
	index     int
	root      bool
	label     label.Label
	class     label.Class
	indegree  int
	outdegree int

	// Incidence arrays hold edge ids; -1 marks a hole. Each array has its
	// own slot allocator with a monotonic write cursor.
	outEdges []int
	inEdges  []int
	outSlots *slotStack
	inSlots  *slotStack
}

// Index returns the node's arena slot id.
func (n *Node) Index() int { return n.index }

// IsRoot reports whether the node is flagged as a root.
func (n *Node) IsRoot() bool { return n.root }

// Label returns the node's label value.
func (n *Node) Label() label.Label { return n.label }

// Class returns the node's cached label class.
func (n *Node) Class() label.Class { return n.class }

// Indegree returns the number of live entries in the node's in-edge array.
func (n *Node) Indegree() int { return n.indegree }

// Outdegree returns the number of live entries in the node's out-edge array.
func (n *Node) Outdegree() int { return n.outdegree }

// OutEdges returns the ids of the node's outgoing edges. O(cursor) scan; the
// returned slice is fresh and unordered beyond array position.
func (n *Node) OutEdges() []int { return liveEntries(n.outEdges, n.outSlots.cursor) }

// InEdges returns the ids of the node's incoming edges.
func (n *Node) InEdges() []int { return liveEntries(n.inEdges, n.inSlots.cursor) }

func liveEntries(arr []int, cursor int) []int {
	var ids []int
	for i := 0; i < cursor; i++ {
		if arr[i] >= 0 {
			ids = append(ids, arr[i])
		}
	}
	return ids
}

// Edge is a directed (optionally bidirectional) connection between two nodes,
// referenced by their arena ids.
type Edge struct {
	index         int
	bidirectional bool
	label         label.Label
	class         label.Class
	source        int
	target        int
}

// Index returns the edge's arena slot id.
func (e *Edge) Index() int { return e.index }

// IsBidirectional reports whether the edge matches in both directions.
func (e *Edge) IsBidirectional() bool { return e.bidirectional }

// Label returns the edge's label value.
func (e *Edge) Label() label.Label { return e.label }

// Class returns the edge's cached label class.
func (e *Edge) Class() label.Class { return e.class }

// Source returns the id of the edge's source node.
func (e *Edge) Source() int { return e.source }

// Target returns the id of the edge's target node.
func (e *Edge) Target() int { return e.target }

// Graph owns the node and edge arenas, their slot allocators, both
// label-class indices, and the root set. The zero value is not usable; use
// New or NewWithConfig.
type Graph struct {
	id  uuid.UUID
	cfg config.Config

	nodes     []*Node
	edges     []*Edge
	nodeSlots *slotStack
	edgeSlots *slotStack
	numNodes  int
	numEdges  int

	nodesByClass *classIndex
	edgesByClass *classIndex
	roots        *hashset.Set
}

// New creates an empty graph with the default capacities.
func New() *Graph {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates an empty graph with fixed capacities from cfg.
// Arenas are sized up front; exceeding a capacity later is fatal.
func NewWithConfig(cfg config.Config) *Graph {
	return &Graph{
		id:           uuid.New(),
		cfg:          cfg,
		nodes:        make([]*Node, cfg.MaxNodes),
		edges:        make([]*Edge, cfg.MaxEdges),
		nodeSlots:    newSlotStack(cfg.MaxNodes, "node"),
		edgeSlots:    newSlotStack(cfg.MaxEdges, "edge"),
		nodesByClass: newClassIndex(),
		edgesByClass: newClassIndex(),
		roots:        hashset.New(),
	}
}

// ID returns the graph instance identity. Clones receive a fresh identity.
func (g *Graph) ID() string { return g.id.String() }

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.numNodes }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.numEdges }

// AddNode allocates a node slot, attaches a deep copy of the label, indexes
// the node under its label class, and tracks it in the root set when isRoot
// is set. Returns the new node's id. Arena exhaustion is fatal.
func (g *Graph) AddNode(l label.Label, isRoot bool) int {
	id := g.nodeSlots.alloc()
	lc := l.Copy()
	n := &Node{
		index:    id,
		root:     isRoot,
		label:    lc,
		class:    lc.Class(),
		outEdges: newIncidenceArray(g.cfg.MaxIncidentEdges),
		inEdges:  newIncidenceArray(g.cfg.MaxIncidentEdges),
		outSlots: newSlotStack(g.cfg.MaxIncidentEdges, "out-edge incidence"),
		inSlots:  newSlotStack(g.cfg.MaxIncidentEdges, "in-edge incidence"),
	}
	g.nodes[id] = n
	g.nodesByClass.insert(n.class, id)
	if isRoot {
		g.roots.Add(id)
	}
	g.numNodes++
	observability.Graph().OnAddNode(g.ID(), id)
	return id
}

func newIncidenceArray(capacity int) []int {
	arr := make([]int, capacity)
	for i := range arr {
		arr[i] = -1
	}
	return arr
}

// AddEdge allocates an edge slot between two live nodes, appends it to the
// source's out-edge array and the target's in-edge array (each through its
// own slot allocator), bumps both degree counters, and indexes the edge
// under its label class. Returns the new edge's id.
func (g *Graph) AddEdge(l label.Label, bidirectional bool, source, target int) (int, error) {
	src, err := g.liveNode(source)
	if err != nil {
		return -1, err
	}
	tgt, err := g.liveNode(target)
	if err != nil {
		return -1, err
	}

	id := g.edgeSlots.alloc()
	lc := l.Copy()
	e := &Edge{
		index:         id,
		bidirectional: bidirectional,
		label:         lc,
		class:         lc.Class(),
		source:        source,
		target:        target,
	}
	g.edges[id] = e

	src.outEdges[src.outSlots.alloc()] = id
	src.outdegree++
	tgt.inEdges[tgt.inSlots.alloc()] = id
	tgt.indegree++

	g.edgesByClass.insert(e.class, id)
	g.numEdges++
	observability.Graph().OnAddEdge(g.ID(), id, source, target)
	return id, nil
}

// RemoveNode removes a node with no incident edges. A node with nonzero
// degree is refused with PRECONDITION_VIOLATION and the graph is left
// unchanged; the caller must remove the incident edges first.
func (g *Graph) RemoveNode(id int) error {
	n, err := g.liveNode(id)
	if err != nil {
		return err
	}
	if n.indegree > 0 || n.outdegree > 0 {
		return errors.New(errors.ErrCodePrecondition,
			"cannot remove node %d with incident edges (indegree %d, outdegree %d)",
			id, n.indegree, n.outdegree)
	}

	g.nodesByClass.remove(n.class, id)
	if n.root {
		g.roots.Remove(id)
	}
	g.nodes[id] = nil
	g.nodeSlots.release(id)
	g.numNodes--
	observability.Graph().OnRemoveNode(g.ID(), id)
	return nil
}

// RemoveEdge removes an edge, clearing its slot in both incidence arrays and
// decrementing both degree counters. Edges carry no preconditions and may be
// removed freely.
func (g *Graph) RemoveEdge(id int) error {
	e, err := g.liveEdge(id)
	if err != nil {
		return err
	}

	src := g.nodes[e.source]
	clearIncidence(src.outEdges, src.outSlots, id)
	src.outdegree--

	tgt := g.nodes[e.target]
	clearIncidence(tgt.inEdges, tgt.inSlots, id)
	tgt.indegree--

	g.edgesByClass.remove(e.class, id)
	g.edges[id] = nil
	g.edgeSlots.release(id)
	g.numEdges--
	observability.Graph().OnRemoveEdge(g.ID(), id)
	return nil
}

// clearIncidence locates edgeID in an incidence array, clears its slot, and
// returns the slot to the array's allocator.
func clearIncidence(arr []int, slots *slotStack, edgeID int) {
	for i := 0; i < slots.cursor; i++ {
		if arr[i] == edgeID {
			arr[i] = -1
			slots.release(i)
			return
		}
	}
}

// RelabelNode replaces a node's label with a deep copy of l, reclassifying
// it in the label-class index when the derived class changes.
func (g *Graph) RelabelNode(id int, l label.Label) error {
	n, err := g.liveNode(id)
	if err != nil {
		return err
	}
	lc := l.Copy()
	oldClass := n.class
	n.label = lc
	n.class = lc.Class()
	g.nodesByClass.reclassify(oldClass, n.class, id)
	observability.Graph().OnRelabelNode(g.ID(), id)
	return nil
}

// ToggleNodeRoot flips a node's root flag, keeping the root set in step.
func (g *Graph) ToggleNodeRoot(id int) error {
	n, err := g.liveNode(id)
	if err != nil {
		return err
	}
	if n.root {
		n.root = false
		g.roots.Remove(id)
	} else {
		n.root = true
		g.roots.Add(id)
	}
	observability.Graph().OnRelabelNode(g.ID(), id)
	return nil
}

// RelabelEdge replaces an edge's label with a deep copy of l, reclassifying
// it in the label-class index when the derived class changes.
func (g *Graph) RelabelEdge(id int, l label.Label) error {
	e, err := g.liveEdge(id)
	if err != nil {
		return err
	}
	lc := l.Copy()
	oldClass := e.class
	e.label = lc
	e.class = lc.Class()
	g.edgesByClass.reclassify(oldClass, e.class, id)
	observability.Graph().OnRelabelEdge(g.ID(), id)
	return nil
}

// ToggleBidirectional flips an edge's bidirectional flag.
func (g *Graph) ToggleBidirectional(id int) error {
	e, err := g.liveEdge(id)
	if err != nil {
		return err
	}
	e.bidirectional = !e.bidirectional
	observability.Graph().OnRelabelEdge(g.ID(), id)
	return nil
}

// Node returns the node with the given id. An id that was never issued is an
// OUT_OF_RANGE error; an id whose slot has been freed returns (nil, nil) so
// callers can distinguish "never existed" from "existed, now removed".
func (g *Graph) Node(id int) (*Node, error) {
	if id < 0 || id >= g.nodeSlots.cursor {
		return nil, errors.New(errors.ErrCodeOutOfRange, "node id %d was never issued", id)
	}
	return g.nodes[id], nil
}

// Edge returns the edge with the given id, with the same contract as Node.
func (g *Graph) Edge(id int) (*Edge, error) {
	if id < 0 || id >= g.edgeSlots.cursor {
		return nil, errors.New(errors.ErrCodeOutOfRange, "edge id %d was never issued", id)
	}
	return g.edges[id], nil
}

// NodesByClass returns the ids of nodes currently bearing the given label
// class. The result is an unordered fresh slice; matchers must treat it as a
// set.
func (g *Graph) NodesByClass(c label.Class) []int {
	return g.nodesByClass.lookup(c)
}

// EdgesByClass returns the ids of edges currently bearing the given label
// class, unordered.
func (g *Graph) EdgesByClass(c label.Class) []int {
	return g.edgesByClass.lookup(c)
}

// RootNodes returns the ids of all nodes flagged as roots, unordered.
func (g *Graph) RootNodes() []int {
	vals := g.roots.Values()
	ids := make([]int, len(vals))
	for i, v := range vals {
		ids[i] = v.(int)
	}
	return ids
}

// Nodes returns all live nodes in ascending slot order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, g.numNodes)
	for i := 0; i < g.nodeSlots.cursor; i++ {
		if g.nodes[i] != nil {
			nodes = append(nodes, g.nodes[i])
		}
	}
	return nodes
}

// Edges returns all live edges in ascending slot order.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, 0, g.numEdges)
	for i := 0; i < g.edgeSlots.cursor; i++ {
		if g.edges[i] != nil {
			edges = append(edges, g.edges[i])
		}
	}
	return edges
}

// Clone produces a deep, fully independent copy: separate arenas, separate
// indices, separate incidence arrays, deep-copied labels. Slot indices are
// preserved, so edge endpoints carry over unchanged; the clone receives a
// fresh graph identity. O(live nodes + live edges + arena cursors).
func (g *Graph) Clone() *Graph {
	c := &Graph{
		id:           uuid.New(),
		cfg:          g.cfg,
		nodes:        make([]*Node, g.cfg.MaxNodes),
		edges:        make([]*Edge, g.cfg.MaxEdges),
		nodeSlots:    g.nodeSlots.clone(),
		edgeSlots:    g.edgeSlots.clone(),
		numNodes:     g.numNodes,
		numEdges:     g.numEdges,
		nodesByClass: newClassIndex(),
		edgesByClass: newClassIndex(),
		roots:        hashset.New(),
	}

	for i := 0; i < g.edgeSlots.cursor; i++ {
		e := g.edges[i]
		if e == nil {
			continue
		}
		ec := &Edge{
			index:         e.index,
			bidirectional: e.bidirectional,
			label:         e.label.Copy(),
			class:         e.class,
			source:        e.source,
			target:        e.target,
		}
		c.edges[i] = ec
		c.edgesByClass.insert(ec.class, i)
	}

	for i := 0; i < g.nodeSlots.cursor; i++ {
		n := g.nodes[i]
		if n == nil {
			continue
		}
		nc := &Node{
			index:     n.index,
			root:      n.root,
			label:     n.label.Copy(),
			class:     n.class,
			indegree:  n.indegree,
			outdegree: n.outdegree,
			outEdges:  make([]int, len(n.outEdges)),
			inEdges:   make([]int, len(n.inEdges)),
			outSlots:  n.outSlots.clone(),
			inSlots:   n.inSlots.clone(),
		}
		copy(nc.outEdges, n.outEdges)
		copy(nc.inEdges, n.inEdges)
		c.nodes[i] = nc
		c.nodesByClass.insert(nc.class, i)
		if nc.root {
			c.roots.Add(i)
		}
	}

	return c
}

// liveNode resolves an id to a live node, rejecting never-issued ids with
// OUT_OF_RANGE and freed slots with PRECONDITION_VIOLATION.
func (g *Graph) liveNode(id int) (*Node, error) {
	n, err := g.Node(id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.New(errors.ErrCodePrecondition, "node %d is not live", id)
	}
	return n, nil
}

func (g *Graph) liveEdge(id int) (*Edge, error) {
	e, err := g.Edge(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New(errors.ErrCodePrecondition, "edge %d is not live", id)
	}
	return e, nil
}
