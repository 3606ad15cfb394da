package hostgraph

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/graphmorph/hostgraph/pkg/label"
)

// classIndex maps each label class to the set of entity ids currently
// bearing that class. The class enumeration is small and closed, so buckets
// are a fixed array subscripted by the class value directly - no hashing of
// the key is involved. Bucket contents are unordered; callers must not rely
// on enumeration order.
type classIndex struct {
	buckets [label.NumClasses]*hashset.Set
}

func newClassIndex() *classIndex {
	x := &classIndex{}
	for i := range x.buckets {
		x.buckets[i] = hashset.New()
	}
	return x
}

func (x *classIndex) insert(c label.Class, id int) {
	x.buckets[c].Add(id)
}

func (x *classIndex) remove(c label.Class, id int) {
	x.buckets[c].Remove(id)
}

// reclassify moves id from one bucket to another. Moving to the same class
// is a no-op: the entry is neither duplicated nor removed. The remove/insert
// pair completes before any public operation returns, so the invariant
// checker never observes a half-moved entry.
func (x *classIndex) reclassify(old, new label.Class, id int) {
	if old == new {
		return
	}
	x.buckets[old].Remove(id)
	x.buckets[new].Add(id)
}

func (x *classIndex) contains(c label.Class, id int) bool {
	return x.buckets[c].Contains(id)
}

// lookup returns the ids in the bucket for c as a fresh, unordered slice.
func (x *classIndex) lookup(c label.Class) []int {
	vals := x.buckets[c].Values()
	ids := make([]int, len(vals))
	for i, v := range vals {
		ids[i] = v.(int)
	}
	return ids
}

func (x *classIndex) clone() *classIndex {
	c := newClassIndex()
	for i, b := range x.buckets {
		for _, v := range b.Values() {
			c.buckets[i].Add(v)
		}
	}
	return c
}
