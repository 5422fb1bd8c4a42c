// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/concx"
)

func TestRateLimiterWindow(t *testing.T) {
	rl := concx.NewRateLimiterCounter(50*time.Millisecond, 3)

	for i := range 3 {
		if !rl.Allow() {
			t.Fatalf("Allow %d: expected admission under the limit", i)
		}
	}
	if rl.Allow() {
		t.Fatal("Allow: fourth request in window must be rejected")
	}

	time.Sleep(60 * time.Millisecond)

	if !rl.Allow() {
		t.Fatal("Allow: fresh window must admit")
	}
}

func TestRateLimiterNeverOverAdmits(t *testing.T) {
	const (
		window = 100 * time.Millisecond
		limit  = 64
		procs  = 8
	)
	rl := concx.NewRateLimiterCounter(window, limit)

	// Hammer a single window from many goroutines; the admitted count
	// must never exceed the limit. Under-admission is tolerated.
	var admitted atomix.Int64
	var wg sync.WaitGroup
	deadline := time.Now().Add(window / 2)
	for range procs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(deadline) {
				if rl.Allow() {
					admitted.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if got := admitted.Load(); got > limit {
		t.Fatalf("admitted %d events in one window, limit is %d", got, limit)
	}
}

func TestRateLimiterPanicOnBadConstruction(t *testing.T) {
	tests := []struct {
		name   string
		create func()
	}{
		{"ZeroWindow", func() { concx.NewRateLimiterCounter(0, 1) }},
		{"SubMillisecondWindow", func() { concx.NewRateLimiterCounter(time.Microsecond, 1) }},
		{"ZeroLimit", func() { concx.NewRateLimiterCounter(time.Second, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.create()
		})
	}
}
