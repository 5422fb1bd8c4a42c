// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"time"

	"code.hybscloud.com/atomix"
)

// RateLimiterCounter is a fixed-window rate limiter admitting at most
// limit events per window.
//
// State is two independent atomic words (window start, count) with no
// lock between them. The combination admits a narrow race where a
// request is rejected although a strictly ordered execution would have
// admitted it. The limiter may under-admit; it never admits more than
// limit events within one window. Callers that need a strict per-window
// quota should re-check the window on each count increment, or build on
// [TokenBucket] instead.
type RateLimiterCounter struct {
	count       atomix.Int64
	windowStart atomix.Int64
	windowMS    int64
	limit       int64
}

// NewRateLimiterCounter creates a limiter admitting limit events per
// window. Panics if window < 1ms or limit < 1.
func NewRateLimiterCounter(window time.Duration, limit int64) *RateLimiterCounter {
	windowMS := window.Milliseconds()
	if windowMS <= 0 {
		panic("concx: rate limiter window must be at least 1ms")
	}
	if limit <= 0 {
		panic("concx: rate limiter limit must be positive")
	}
	return &RateLimiterCounter{windowMS: windowMS, limit: limit}
}

// Allow reports whether one more event fits into the current window.
func (rl *RateLimiterCounter) Allow() bool {
	for {
		now := nowMS()
		windowStart := rl.windowStart.LoadRelaxed()
		if now-windowStart >= rl.windowMS {
			// Window expired: the winner of the CAS opens a fresh
			// window and takes the first slot.
			if rl.windowStart.CompareAndSwapRelaxed(windowStart, now) {
				rl.count.StoreRelaxed(1)
				return true
			}
			continue
		}
		count := rl.count.LoadRelaxed()
		if count >= rl.limit {
			// Only reject if the window did not move under us.
			if rl.windowStart.LoadRelaxed() == windowStart {
				return false
			}
			continue
		}
		for count < rl.limit {
			if rl.count.CompareAndSwapRelaxed(count, count+1) {
				return true
			}
			count = rl.count.LoadRelaxed()
		}
	}
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}
