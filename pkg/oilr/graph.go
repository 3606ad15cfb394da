// Package oilr implements the signature-indexed host-graph variant: a
// stripped-down unlabelled engine where every node is hashed into a bucket
// by a structural signature (root flag, loop count, degrees) so that a
// matcher can enumerate exactly the nodes whose local shape fits a rule
// position.
//
// Storage is a single fixed pool shared by nodes and edges, with a free list
// chained intrusively through the freed entries themselves. Signature
// buckets are intrusive doubly-linked lists, so moving a node between
// buckets after a mutation is O(1).
//
// Every structural mutation follows the unindex/mutate/reindex discipline:
// affected nodes leave their buckets before the mutation and rejoin under
// their recomputed signature afterwards. The bucket structure is therefore
// exact after every operation, never lazily repaired.
package oilr

import (
	"github.com/graphmorph/hostgraph/pkg/config"
	"github.com/graphmorph/hostgraph/pkg/errors"
)

// Signature maps a node's local structure to a bucket index. It is the
// matcher's policy: the engine only requires that results stay within
// [0, buckets) for every reachable input. A result outside that range is
// fatal, since it means the policy and the bucket array disagree.
type Signature func(loops, indeg, outdeg int, root bool) int

// DefaultBuckets is the bucket count paired with DefaultSignature.
const DefaultBuckets = 1 << 4

// DefaultSignature is a coarse four-bit signature: root flag, has-loop,
// has-in-edge, has-out-edge. Counts saturate at one bit each, trading bucket
// selectivity for a tiny fixed index.
func DefaultSignature(loops, indeg, outdeg int, root bool) int {
	s := 0
	if root {
		s |= 1 << 0
	}
	if loops > 0 {
		s |= 1 << 1
	}
	if indeg > 0 {
		s |= 1 << 2
	}
	if outdeg > 0 {
		s |= 1 << 3
	}
	return s
}

type kind uint8

const (
	slotFree kind = iota
	slotNode
	slotEdge
)

// slot is one pool entry: a tagged variant of free, node, or edge. Freed
// slots reuse their storage as a link in the free chain.
type slot struct {
	kind     kind
	nextFree int

	node node
	edge edge
}

type node struct {
	loops int
	root  bool
	sig   int
	chain elem // membership in the signature bucket
	out   list // outgoing edges, intrusive through edge.outChain
	in    list // incoming edges, intrusive through edge.inChain
}

type edge struct {
	source   int
	target   int
	outChain elem
	inChain  elem
}

// Graph is the signature-indexed engine. The zero value is not usable; use
// New or NewWithSignature.
type Graph struct {
	pool     []slot
	freeHead int // -1 when the free chain is empty
	high     int // high-water mark: slots >= high were never issued

	sig      Signature
	buckets  []list
	numNodes int
	numEdges int
}

// New creates an empty graph with cfg.PoolSize slots and the default
// signature policy.
func New(cfg config.Config) *Graph {
	return NewWithSignature(cfg, DefaultBuckets, DefaultSignature)
}

// NewWithSignature creates an empty graph with a caller-supplied signature
// policy and bucket count.
func NewWithSignature(cfg config.Config, buckets int, sig Signature) *Graph {
	return &Graph{
		pool:     make([]slot, cfg.PoolSize),
		freeHead: -1,
		sig:      sig,
		buckets:  make([]list, buckets),
	}
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.numNodes }

// EdgeCount returns the number of live non-loop edges.
func (g *Graph) EdgeCount() int { return g.numEdges }

// Buckets returns the size of the signature bucket array.
func (g *Graph) Buckets() int { return len(g.buckets) }

// alloc pops the free chain, else advances the high-water mark. Pool
// exhaustion is fatal: there is no growth fallback.
func (g *Graph) alloc() int {
	if g.freeHead >= 0 {
		id := g.freeHead
		g.freeHead = g.pool[id].nextFree
		return id
	}
	if g.high == len(g.pool) {
		errors.Fatalf(errors.ErrCodeResourceExhausted, "oilr pool exhausted at %d slots", len(g.pool))
		return -1
	}
	id := g.high
	g.high++
	return id
}

func (g *Graph) release(id int) {
	g.pool[id] = slot{kind: slotFree, nextFree: g.freeHead}
	g.freeHead = id
}

// index inserts n into the bucket for its current signature.
func (g *Graph) index(id int, n *node) {
	s := g.sig(n.loops, n.in.len(), n.out.len(), n.root)
	if s < 0 || s >= len(g.buckets) {
		errors.Fatalf(errors.ErrCodeInternal,
			"signature policy returned %d for node %d, bucket range is [0, %d)", s, id, len(g.buckets))
		return
	}
	n.sig = s
	n.chain.id = id
	g.buckets[s].prepend(&n.chain)
}

func (g *Graph) unindex(n *node) {
	g.buckets[n.sig].remove(&n.chain)
}

// AddNode allocates a node and indexes it. Returns the new node's pool id.
func (g *Graph) AddNode() int {
	id := g.alloc()
	g.pool[id] = slot{kind: slotNode}
	g.numNodes++
	g.index(id, &g.pool[id].node)
	return id
}

// AddEdge connects two distinct live nodes. Both endpoints change degree, so
// both leave their buckets before the splice and rejoin after. Self-edges
// are refused: a connection from a node to itself is a loop and must go
// through AddLoop, which keeps it out of the edge chains entirely.
func (g *Graph) AddEdge(source, target int) (int, error) {
	if source == target {
		return -1, errors.New(errors.ErrCodePrecondition,
			"self-edge on node %d: use AddLoop", source)
	}
	src, err := g.liveNode(source)
	if err != nil {
		return -1, err
	}
	tgt, err := g.liveNode(target)
	if err != nil {
		return -1, err
	}

	g.unindex(src)
	g.unindex(tgt)

	id := g.alloc()
	g.pool[id] = slot{kind: slotEdge, edge: edge{source: source, target: target}}
	e := &g.pool[id].edge
	e.outChain.id = id
	e.inChain.id = id
	src.out.prepend(&e.outChain)
	tgt.in.prepend(&e.inChain)
	g.numEdges++

	g.index(source, src)
	g.index(target, tgt)
	return id, nil
}

// DeleteEdge removes an edge, unlinking it from both endpoint chains and
// rebucketing both endpoints.
func (g *Graph) DeleteEdge(id int) error {
	e, err := g.liveEdge(id)
	if err != nil {
		return err
	}
	src := &g.pool[e.source].node
	tgt := &g.pool[e.target].node

	g.unindex(src)
	g.unindex(tgt)
	src.out.remove(&e.outChain)
	tgt.in.remove(&e.inChain)
	g.numEdges--
	g.index(e.source, src)
	g.index(e.target, tgt)

	g.release(id)
	return nil
}

// AddLoop increments a node's loop count. Loops are a per-node counter, not
// pool entities.
func (g *Graph) AddLoop(id int) error {
	n, err := g.liveNode(id)
	if err != nil {
		return err
	}
	g.unindex(n)
	n.loops++
	g.index(id, n)
	return nil
}

// DeleteLoop decrements a node's loop count. Deleting from a loop-free node
// is refused.
func (g *Graph) DeleteLoop(id int) error {
	n, err := g.liveNode(id)
	if err != nil {
		return err
	}
	if n.loops == 0 {
		return errors.New(errors.ErrCodePrecondition, "node %d has no loops", id)
	}
	g.unindex(n)
	n.loops--
	g.index(id, n)
	return nil
}

// DeleteNode removes an isolated node. Deleting a node that still has loops
// or incident edges is fatal: the rule engine guarantees isolation before
// deletion, so a violation here means the caller's bookkeeping is broken and
// the graph can no longer be trusted.
func (g *Graph) DeleteNode(id int) error {
	n, err := g.liveNode(id)
	if err != nil {
		return err
	}
	if n.loops > 0 || n.in.len() > 0 || n.out.len() > 0 {
		errors.Fatalf(errors.ErrCodePrecondition,
			"deleting node %d with loops %d, indegree %d, outdegree %d",
			id, n.loops, n.in.len(), n.out.len())
		return nil
	}
	g.unindex(n)
	g.numNodes--
	g.release(id)
	return nil
}

// SetRoot sets a node's root flag, rebucketing it when the flag changes.
func (g *Graph) SetRoot(id int, root bool) error {
	n, err := g.liveNode(id)
	if err != nil {
		return err
	}
	if n.root == root {
		return nil
	}
	g.unindex(n)
	n.root = root
	g.index(id, n)
	return nil
}

// NodesBySignature returns the ids of nodes currently bucketed under sig,
// newest first.
func (g *Graph) NodesBySignature(sig int) []int {
	if sig < 0 || sig >= len(g.buckets) {
		return nil
	}
	ids := make([]int, 0, g.buckets[sig].len())
	g.buckets[sig].each(func(id int) { ids = append(ids, id) })
	return ids
}

// NodeInfo is a read-only view of a node's local structure.
type NodeInfo struct {
	Loops     int
	Indegree  int
	Outdegree int
	Root      bool
	Signature int
}

// NodeInfo returns a node's structure snapshot.
func (g *Graph) NodeInfo(id int) (NodeInfo, error) {
	n, err := g.liveNode(id)
	if err != nil {
		return NodeInfo{}, err
	}
	return NodeInfo{
		Loops:     n.loops,
		Indegree:  n.in.len(),
		Outdegree: n.out.len(),
		Root:      n.root,
		Signature: n.sig,
	}, nil
}

// EdgeInfo returns an edge's endpoints.
func (g *Graph) EdgeInfo(id int) (source, target int, err error) {
	e, err := g.liveEdge(id)
	if err != nil {
		return -1, -1, err
	}
	return e.source, e.target, nil
}

// OutEdges returns the ids of a node's outgoing non-loop edges, newest first.
func (g *Graph) OutEdges(id int) ([]int, error) {
	n, err := g.liveNode(id)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, n.out.len())
	n.out.each(func(eid int) { ids = append(ids, eid) })
	return ids, nil
}

// InEdges returns the ids of a node's incoming non-loop edges, newest first.
func (g *Graph) InEdges(id int) ([]int, error) {
	n, err := g.liveNode(id)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, n.in.len())
	n.in.each(func(eid int) { ids = append(ids, eid) })
	return ids, nil
}

func (g *Graph) liveNode(id int) (*node, error) {
	if id < 0 || id >= g.high {
		return nil, errors.New(errors.ErrCodeOutOfRange, "pool id %d was never issued", id)
	}
	if g.pool[id].kind != slotNode {
		return nil, errors.New(errors.ErrCodePrecondition, "pool id %d is not a live node", id)
	}
	return &g.pool[id].node, nil
}

func (g *Graph) liveEdge(id int) (*edge, error) {
	if id < 0 || id >= g.high {
		return nil, errors.New(errors.ErrCodeOutOfRange, "pool id %d was never issued", id)
	}
	if g.pool[id].kind != slotEdge {
		return nil, errors.New(errors.ErrCodePrecondition, "pool id %d is not a live edge", id)
	}
	return &g.pool[id].edge, nil
}
