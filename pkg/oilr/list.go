package oilr

// elem is an intrusive doubly-linked list element. Elements are embedded in
// pool entries and carry the pool id of their owner, so chain traversal
// yields entity ids without a side lookup.
type elem struct {
	owner *list
	next  *elem
	prev  *elem
	id    int
}

// list is a bucket chain with an element count. The zero value is an empty
// list.
type list struct {
	count int
	head  *elem
}

func (l *list) len() int { return l.count }

// prepend pushes e onto the front of the chain. Newest-first ordering means
// recently touched entities are found first during matching.
func (l *list) prepend(e *elem) {
	e.owner = l
	e.prev = nil
	e.next = l.head
	if l.head != nil {
		l.head.prev = e
	}
	l.head = e
	l.count++
}

// remove unlinks e from its chain in O(1). e must currently be linked.
func (l *list) remove(e *elem) {
	if e.prev == nil {
		l.head = e.next
	} else {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.owner = nil
	e.next = nil
	e.prev = nil
	l.count--
}

// each calls fn with every owner id in the chain, front to back.
func (l *list) each(fn func(id int)) {
	for e := l.head; e != nil; e = e.next {
		fn(e.id)
	}
}
