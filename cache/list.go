package cache

// node is an element of the recency list. It keeps its key so the owner
// can delete the map entry when the node is dropped from the tail.
type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

// recency is an intrusive doubly linked list ordered from most recently
// used (head) to least recently used (tail). Not safe for concurrent use.
type recency[K comparable] struct {
	head, tail *node[K]
	n          int
}

func (l *recency[K]) len() int { return l.n }

// pushFront inserts key as the most recently used element.
func (l *recency[K]) pushFront(key K) *node[K] {
	nd := &node[K]{key: key}
	l.linkFront(nd)
	return nd
}

// touch marks nd as most recently used.
func (l *recency[K]) touch(nd *node[K]) {
	if nd == nil || nd == l.head {
		return
	}
	l.unlink(nd)
	l.linkFront(nd)
}

func (l *recency[K]) remove(nd *node[K]) {
	if nd != nil {
		l.unlink(nd)
	}
}

// popBack removes the least recently used element.
func (l *recency[K]) popBack() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	nd := l.tail
	l.unlink(nd)
	return nd.key, true
}

func (l *recency[K]) clear() {
	l.head, l.tail, l.n = nil, nil, 0
}

func (l *recency[K]) linkFront(nd *node[K]) {
	nd.prev = nil
	nd.next = l.head
	if l.head != nil {
		l.head.prev = nd
	}
	l.head = nd
	if l.tail == nil {
		l.tail = nd
	}
	l.n++
}

func (l *recency[K]) unlink(nd *node[K]) {
	if nd.prev != nil {
		nd.prev.next = nd.next
	} else {
		l.head = nd.next
	}
	if nd.next != nil {
		nd.next.prev = nd.prev
	} else {
		l.tail = nd.prev
	}
	nd.prev, nd.next = nil, nil
	l.n--
}
