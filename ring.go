// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Ring is a bounded multi-producer multi-consumer queue over a
// power-of-two circular buffer with per-slot sequence numbers.
//
// Each slot carries a sequence counter encoding both occupancy and
// generation: an empty slot at producer position p holds seq == p, a
// full slot at consumer position c holds seq == c+1. The release store
// of seq publishes the element write to the acquire load on the other
// side; the position cursors only arbitrate ownership and use relaxed
// CAS. The signed difference between seq and position handles index
// wraparound.
//
// Both operations are lock-free, never block, and always terminate:
// Enqueue returns ErrWouldBlock when the ring is full, Dequeue when it
// is empty.
type Ring[T any] struct {
	_        pad
	tail     atomix.Uint64 // Producer cursor
	_        pad
	head     atomix.Uint64 // Consumer cursor
	_        pad
	buffer   []ringSlot[T]
	mask     uint64
	capacity uint64
}

type ringSlot[T any] struct {
	seq  atomix.Uint64
	data T
	_    padShort // Pad to cache line
}

// NewRing creates a bounded MPMC ring queue.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("concx: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	q := &Ring[T]{
		buffer:   make([]ringSlot[T], n),
		mask:     n - 1,
		capacity: n,
	}

	for i := uint64(0); i < n; i++ {
		q.buffer[i].seq.StoreRelaxed(i)
	}

	return q
}

// Enqueue adds an element to the queue.
// Returns ErrWouldBlock if the queue is full.
func (q *Ring[T]) Enqueue(elem *T) error {
	sw := spin.Wait{}
	for {
		pos := q.tail.LoadRelaxed()
		slot := &q.buffer[pos&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(pos)

		if diff == 0 {
			if q.tail.CompareAndSwapRelaxed(pos, pos+1) {
				slot.data = *elem
				slot.seq.StoreRelease(pos + 1)
				return nil
			}
		} else if diff < 0 {
			// Consumer has not freed this slot yet: full.
			return ErrWouldBlock
		}
		sw.Once()
	}
}

// Dequeue removes and returns an element from the queue.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Ring[T]) Dequeue() (T, error) {
	sw := spin.Wait{}
	for {
		pos := q.head.LoadRelaxed()
		slot := &q.buffer[pos&q.mask]
		seq := slot.seq.LoadAcquire()
		diff := int64(seq) - int64(pos+1)

		if diff == 0 {
			if q.head.CompareAndSwapRelaxed(pos, pos+1) {
				elem := slot.data
				var zero T
				slot.data = zero
				slot.seq.StoreRelease(pos + q.capacity)
				return elem, nil
			}
		} else if diff < 0 {
			var zero T
			return zero, ErrWouldBlock
		}
		sw.Once()
	}
}

// Cap returns the queue capacity.
func (q *Ring[T]) Cap() int {
	return int(q.capacity)
}
