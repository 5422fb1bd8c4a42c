// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

const (
	// retireThreshold is the retired-list length that triggers a scan.
	retireThreshold = 64
	// localCacheLimit caps a record's local freelist; overflow trims
	// half onto the queue's global freelist.
	localCacheLimit = 64
)

// retired is an unlinked node awaiting safe reclamation, tagged with
// the global epoch at retirement time.
type retired[T any] struct {
	n     *node[T]
	epoch uint64
}

// record is one reclamation context. A record is exclusively owned
// between a successful claim and the matching release, so its retired
// list and local freelist need no further synchronization; only epoch
// and active are read by peers.
//
// Goroutines have no thread-local storage and migrate between OS
// threads, so records are not bound to threads: each queue operation
// claims an idle record for its duration and releases it on exit. The
// record list only grows, bounded by the peak number of concurrent
// operations on the queue.
type record[T any] struct {
	epoch  atomix.Uint64
	active atomix.Bool
	next   *record[T] // immutable after link

	retired    []retired[T]
	localFree  *node[T]
	localCount int
	_          padShort
}

// epochManager tracks a per-queue global epoch and the record list.
//
// A node retired at epoch e may still be referenced by an operation
// that entered at epoch e-1 or e. The epoch can only advance while
// every active record has observed the current value, so by the time
// the global epoch reaches e+2 no active operation can hold a
// reference from epoch e or earlier. Two epochs of quarantine is the
// minimum that is safe under this discipline.
type epochManager[T any] struct {
	globalEpoch atomix.Uint64
	_           pad
	records     atomic.Pointer[record[T]]
}

// guard marks one operation as active. Between enter and exit the
// guarded goroutine may dereference any node reachable from the queue.
type guard[T any] struct {
	mgr *epochManager[T]
	rec *record[T]
}

// enter claims a record, publishes the observed epoch and returns the
// guard. The claim CAS on active doubles as the activity announcement;
// peers that read active before the epoch store see a stale epoch and
// conservatively refuse to advance.
func (m *epochManager[T]) enter() guard[T] {
	rec := m.claim()
	rec.epoch.StoreRelease(m.globalEpoch.LoadAcquire())
	return guard[T]{mgr: m, rec: rec}
}

// exit releases the guard's record.
func (g guard[T]) exit() {
	g.rec.active.StoreRelease(false)
}

// claim finds an idle record or links a new one.
func (m *epochManager[T]) claim() *record[T] {
	for r := m.records.Load(); r != nil; r = r.next {
		if !r.active.LoadRelaxed() && r.active.CompareAndSwapAcqRel(false, true) {
			return r
		}
	}
	r := &record[T]{}
	r.active.StoreRelaxed(true)
	for {
		head := m.records.Load()
		r.next = head
		if m.records.CompareAndSwap(head, r) {
			return r
		}
	}
}

// retire appends n to the guard's retired list and scans once the
// threshold is reached.
func (g guard[T]) retire(q *Linked[T], n *node[T]) {
	rec := g.rec
	rec.retired = append(rec.retired, retired[T]{n: n, epoch: g.mgr.globalEpoch.LoadRelaxed()})
	if len(rec.retired) >= retireThreshold {
		g.mgr.scan(q, rec)
	}
}

// scan tries to advance the epoch, then moves every retired node old
// enough to be unreachable onto the freelists.
func (m *epochManager[T]) scan(q *Linked[T], rec *record[T]) {
	m.tryAdvance()
	cur := m.globalEpoch.LoadAcquire()
	if cur < 2 {
		// Fewer than two advances so far: nothing is old enough.
		return
	}
	safe := cur - 2

	kept := rec.retired[:0]
	for _, r := range rec.retired {
		if r.epoch <= safe {
			q.reclaim(rec, r.n)
		} else {
			kept = append(kept, r)
		}
	}
	// Clear the tail so the backing array does not pin reclaimed nodes.
	for i := len(kept); i < len(rec.retired); i++ {
		rec.retired[i] = retired[T]{}
	}
	rec.retired = kept
}

// tryAdvance bumps the global epoch by one iff every active record has
// observed the current value.
func (m *epochManager[T]) tryAdvance() {
	cur := m.globalEpoch.LoadAcquire()
	for r := m.records.Load(); r != nil; r = r.next {
		if r.active.LoadAcquire() && r.epoch.LoadAcquire() != cur {
			return
		}
	}
	m.globalEpoch.CompareAndSwapAcqRel(cur, cur+1)
}
