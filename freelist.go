// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

// Node recycling for Linked. Reclaimed nodes are not released to the
// garbage collector but cached for reuse: first on the claiming
// record's local freelist (no synchronization needed), spilling half
// onto the queue's global freelist — a Treiber stack threaded through
// the nodes' next pointers — when the local cache reaches its limit.
// newNode pops local first, then global, and only then allocates.

// reclaim clears a node's payload and pushes it onto rec's local
// freelist, trimming to the global freelist on overflow.
func (q *Linked[T]) reclaim(rec *record[T], n *node[T]) {
	var zero T
	n.value = zero
	n.next.Store(rec.localFree)
	rec.localFree = n
	rec.localCount++
	if rec.localCount >= localCacheLimit {
		q.flushLocal(rec)
	}
}

// flushLocal moves half of rec's local cache onto the global freelist.
func (q *Linked[T]) flushLocal(rec *record[T]) {
	for rec.localFree != nil && rec.localCount > localCacheLimit/2 {
		n := rec.localFree
		rec.localFree = n.next.Load()
		rec.localCount--
		q.pushGlobal(n)
	}
}

// newNode returns a recycled node with a nil next pointer, allocating
// only when both freelists are empty.
func (q *Linked[T]) newNode(rec *record[T]) *node[T] {
	if n := rec.localFree; n != nil {
		rec.localFree = n.next.Load()
		rec.localCount--
		n.next.Store(nil)
		return n
	}
	if n := q.popGlobal(); n != nil {
		n.next.Store(nil)
		return n
	}
	return &node[T]{}
}

func (q *Linked[T]) pushGlobal(n *node[T]) {
	for {
		head := q.freeHead.Load()
		n.next.Store(head)
		if q.freeHead.CompareAndSwap(head, n) {
			return
		}
	}
}

func (q *Linked[T]) popGlobal() *node[T] {
	for {
		head := q.freeHead.Load()
		if head == nil {
			return nil
		}
		next := head.next.Load()
		if q.freeHead.CompareAndSwap(head, next) {
			return head
		}
	}
}
