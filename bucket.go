// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"math"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/jedisct1/go-clocksmith"
)

// TokenBucket is a credit pool refilled continuously by a single owned
// background goroutine and drained concurrently by any number of
// consumers.
//
// The refill goroutine adds speed*tick/1s tokens per tick, clamped to
// the capacity, so real-time accuracy is within one tick. Token counts
// are float64 values stored as bit patterns in a single atomic word;
// Consume is a plain CAS-decrement and never blocks.
type TokenBucket struct {
	current atomix.Uint64 // float64 bits
	stopped atomix.Bool
	done    chan struct{}
	tick    time.Duration
	cap     float64
	speed   float64
}

// NewTokenBucket creates a bucket of the given capacity refilled at
// speed tokens per second, discretized at tick intervals, and starts
// the refill goroutine. The bucket starts empty.
// Panics if tick < 1ms, cap <= 0 or speed <= 0.
func NewTokenBucket(tick time.Duration, cap, speed float64) *TokenBucket {
	if tick < time.Millisecond {
		panic("concx: token bucket tick must be at least 1ms")
	}
	if cap <= 0 || speed <= 0 {
		panic("concx: token bucket capacity and speed must be positive")
	}
	b := &TokenBucket{
		done:  make(chan struct{}),
		tick:  tick,
		cap:   cap,
		speed: speed,
	}
	go b.refill()
	return b
}

// Load returns the current token count.
func (b *TokenBucket) Load() float64 {
	return math.Float64frombits(b.current.LoadRelaxed())
}

// Capacity returns the maximum token count.
func (b *TokenBucket) Capacity() float64 {
	return b.cap
}

// Consume takes n tokens from the bucket.
// Returns ErrWouldBlock when fewer than n tokens are available or
// n is not positive.
func (b *TokenBucket) Consume(n float64) error {
	if n <= 0 {
		return ErrWouldBlock
	}
	for {
		bits := b.current.LoadRelaxed()
		cur := math.Float64frombits(bits)
		if cur < n {
			return ErrWouldBlock
		}
		if b.current.CompareAndSwapRelaxed(bits, math.Float64bits(cur-n)) {
			return nil
		}
	}
}

// Stop signals the refill goroutine and waits for it to exit.
// Returns false if the bucket was already stopped. Idempotent.
func (b *TokenBucket) Stop() bool {
	if !b.stopped.CompareAndSwapRelaxed(false, true) {
		return false
	}
	<-b.done
	return true
}

func (b *TokenBucket) refill() {
	defer close(b.done)
	addOnce := b.speed * b.tick.Seconds()
	for !b.stopped.LoadRelaxed() {
		for {
			bits := b.current.LoadRelaxed()
			cur := math.Float64frombits(bits)
			if cur >= b.cap {
				break
			}
			next := cur + addOnce
			if next > b.cap {
				next = b.cap
			}
			if b.current.CompareAndSwapRelaxed(bits, math.Float64bits(next)) {
				break
			}
		}
		clocksmith.Sleep(b.tick)
	}
}
