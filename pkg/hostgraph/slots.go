package hostgraph

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/graphmorph/hostgraph/pkg/errors"
)

// slotStack hands out reusable indices for a fixed-capacity arena. Freed
// indices are reused in LIFO order; when no holes exist, indices are issued
// monotonically from the cursor. Freeing the highest live index shrinks the
// cursor instead of recording a hole, keeping the arena dense at the tail.
//
// Callers must only free indices that currently hold a live entry; freeing an
// already-free index is a contract violation and corrupts the allocator.
type slotStack struct {
	free   *arraystack.Stack // most-recently-freed on top
	cursor int               // next never-issued index
	limit  int
	what   string // arena name for exhaustion diagnostics
}

func newSlotStack(limit int, what string) *slotStack {
	return &slotStack{free: arraystack.New(), limit: limit, what: what}
}

// alloc returns the most-recently-freed index if any hole exists, else the
// next monotonic index. Exhausting the arena is fatal: capacities are fixed
// by deployment configuration and there is no growth fallback.
func (s *slotStack) alloc() int {
	if v, ok := s.free.Pop(); ok {
		return v.(int)
	}
	if s.cursor >= s.limit {
		errors.Fatalf(errors.ErrCodeResourceExhausted,
			"%s arena full (capacity %d)", s.what, s.limit)
		return -1
	}
	i := s.cursor
	s.cursor++
	return i
}

// release returns an index to the allocator. The tail index is absorbed by
// decrementing the cursor rather than pushed as a hole.
func (s *slotStack) release(i int) {
	if i == s.cursor-1 {
		s.cursor--
		return
	}
	s.free.Push(i)
}

// holds reports whether idx is currently recorded as a hole.
func (s *slotStack) holds(idx int) bool {
	for _, v := range s.free.Values() {
		if v.(int) == idx {
			return true
		}
	}
	return false
}

// clone duplicates the allocator, preserving hole order.
func (s *slotStack) clone() *slotStack {
	c := newSlotStack(s.limit, s.what)
	c.cursor = s.cursor
	// Values returns top-first; re-push bottom-up to preserve pop order.
	vals := s.free.Values()
	for i := len(vals) - 1; i >= 0; i-- {
		c.free.Push(vals[i])
	}
	return c
}
