package hostgraph

import (
	"github.com/graphmorph/hostgraph/pkg/errors"
	"github.com/graphmorph/hostgraph/pkg/observability"
)

// SnapshotStack is a LIFO stack of deep graph copies backing speculative rule
// application: push before trying a sequence, restore on failure, discard on
// commit. The zero value is ready to use.
//
// Snapshots are full clones, not deltas; push cost is proportional to graph
// size regardless of how much later mutation touches.
type SnapshotStack struct {
	stack []*Graph
}

// Depth returns the number of snapshots currently held.
func (s *SnapshotStack) Depth() int { return len(s.stack) }

// Push captures a deep copy of g. The live graph is untouched and later
// mutations to it never leak into the snapshot.
func (s *SnapshotStack) Push(g *Graph) {
	s.stack = append(s.stack, g.Clone())
	observability.Snapshot().OnPush(g.ID(), len(s.stack))
}

// Restore pops the most recent snapshot and returns it as the live graph,
// abandoning the caller's current graph. Restores pair with pushes in LIFO
// order. Restoring from an empty stack is fatal.
func (s *SnapshotStack) Restore() *Graph {
	if len(s.stack) == 0 {
		errors.Fatalf(errors.ErrCodeEmptyRestore, "restore with no snapshot on the stack")
		return nil
	}
	g := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	observability.Snapshot().OnRestore(g.ID(), len(s.stack))
	return g
}

// Discard pops the most recent snapshot without restoring it, committing the
// speculative changes made since the matching Push. Discarding from an empty
// stack is fatal.
func (s *SnapshotStack) Discard() {
	if len(s.stack) == 0 {
		errors.Fatalf(errors.ErrCodeEmptyRestore, "discard with no snapshot on the stack")
		return
	}
	g := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	observability.Snapshot().OnDiscard(g.ID(), len(s.stack))
}
