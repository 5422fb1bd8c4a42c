// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package concx provides concurrency primitives and cache structures
// for embedding inside serving systems: rate limiters, worker pools,
// shared caches.
//
// The package contains three families:
//
//   - Atomic cells: Clamp, MinMax, BoundCounter — a lock-free
//     load-modify-CAS update under a semantic predicate, plus the
//     RateLimiterCounter fixed-window gate and the TokenBucket
//     continuous-refill credit pool.
//   - Queues: Ring (bounded MPMC, sequence-numbered slots) and Linked
//     (unbounded MPMC with epoch-based node reclamation and freelist
//     recycling).
//   - Caches: LFU (frequency-keyed with LRU tie-break, mutex
//     serialized) and ShardedLFU (hash-sharded LFU front-end).
//
// # Quick Start
//
//	q := concx.NewRing[Event](1024)   // bounded MPMC
//	u := concx.NewLinked[Event]()     // unbounded MPMC
//	c := concx.NewLFU[string, int](4096)
//
// # Queues
//
// Both queues share the same non-blocking interface and return
// [ErrWouldBlock] when they cannot proceed:
//
//	// Enqueue (non-blocking; Linked never fails)
//	value := 42
//	err := q.Enqueue(&value)
//	if concx.IsWouldBlock(err) {
//	    // Ring is full - handle backpressure
//	}
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if concx.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// Worker pool (MPMC):
//
//	jobs := concx.NewRing[Job](4096)
//
//	for range numWorkers {
//	    go func() {
//	        backoff := iox.Backoff{}
//	        for {
//	            job, err := jobs.Dequeue()
//	            if err != nil {
//	                backoff.Wait()
//	                continue
//	            }
//	            backoff.Reset()
//	            job.Run()
//	        }
//	    }()
//	}
//
// Ring capacity rounds up to the next power of 2; minimum capacity is
// 2 and construction panics below that. Linked is unbounded: Enqueue
// always succeeds and Cap reports -1.
//
// # Node reclamation
//
// Linked recycles its list nodes through per-queue freelists instead
// of letting the garbage collector churn through one allocation per
// element. An epoch scheme decides when a dequeued node is safe to
// reuse: every operation runs under a guard that publishes the epoch
// it observed, the epoch only advances when all active guards have
// caught up, and a retired node is recycled two advances after its
// retirement. No node is reused while any guard that could still
// reach it remains active.
//
// # Rate limiting
//
//	rl := concx.NewRateLimiterCounter(time.Second, 100)
//	if rl.Allow() {
//	    serve(req)
//	}
//
//	tb := concx.NewTokenBucket(10*time.Millisecond, 500, 1000)
//	defer tb.Stop()
//	if tb.Consume(1) == nil {
//	    serve(req)
//	}
//
// RateLimiterCounter is a two-word fixed-window gate: it may reject a
// request that a strictly ordered execution would have admitted, but
// never admits more than the limit within one window. TokenBucket owns
// one background refill goroutine; Stop is idempotent and joins it.
//
// # Caches
//
//	c := concx.NewLFU[string, Session](10000)
//	c.Put("k", session)
//	if h, ok := c.Get("k"); ok {
//	    use(*h)
//	}
//
//	// In-place mutation without losing the entry to eviction:
//	lv := c.GetLocked("k")
//	if h := lv.Value(); h != nil {
//	    h.Touch()
//	}
//	lv.Release()
//
// LFU evicts the oldest entry of the least-frequent class first. For
// contended caches, ShardedLFU splits the key space over independently
// locked shards. Export/Import produce CBOR snapshots for warm starts.
//
// # Error Handling
//
// Conditional failures are booleans (cells, limiter, cache lookups) or
// [ErrWouldBlock] (queues, token bucket), sourced from
// [code.hybscloud.com/iox] for ecosystem consistency. Invariant
// violations — ring capacity below 2, inverted Clamp bounds,
// non-positive limiter parameters — are programming errors and panic
// at construction or entry.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before relationships
// established through atomic memory orderings on separate variables.
// The ring queue protects its non-atomic slot data with sequence
// numbers, and Linked's reclamation hands nodes between goroutines
// through epoch bookkeeping the detector cannot track; both are
// correct but may produce false positives under -race. Tests
// incompatible with race detection are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions.
package concx
