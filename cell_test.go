// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx_test

import (
	"math"
	"testing"

	"code.hybscloud.com/concx"
)

// =============================================================================
// Clamp
// =============================================================================

func TestClampBasic(t *testing.T) {
	c := concx.NewClamp[int64](5)

	if c.ClampTo(0, 10) {
		t.Fatal("ClampTo(0, 10): in-range value reported changed")
	}
	if got := c.Load(); got != 5 {
		t.Fatalf("Load: got %d, want 5", got)
	}

	if !c.ClampTo(6, 10) {
		t.Fatal("ClampTo(6, 10): expected raise to 6")
	}
	if got := c.Load(); got != 6 {
		t.Fatalf("Load: got %d, want 6", got)
	}

	if !c.ClampTo(-5, 3) {
		t.Fatal("ClampTo(-5, 3): expected lower to 3")
	}
	if got := c.Load(); got != 3 {
		t.Fatalf("Load: got %d, want 3", got)
	}
}

func TestClampFloat(t *testing.T) {
	c := concx.NewClamp[float64](1.5)

	if !c.ClampTo(2.0, 4.0) {
		t.Fatal("ClampTo(2, 4): expected raise")
	}
	if got := c.Load(); got != 2.0 {
		t.Fatalf("Load: got %g, want 2", got)
	}
	if c.ClampTo(0.0, 8.0) {
		t.Fatal("ClampTo(0, 8): in-range value reported changed")
	}
}

func TestClampInvertedBoundsPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for low > high")
		}
	}()
	concx.NewClamp[int64](0).ClampTo(5, 1)
}

// =============================================================================
// MinMax
// =============================================================================

func TestMinMaxBasic(t *testing.T) {
	m := concx.NewMinMax[float64](10.0)

	if got := m.Load(); got != 10.0 {
		t.Fatalf("Load: got %g, want 10", got)
	}
	if !m.UpdateMin(5.0) {
		t.Fatal("UpdateMin(5): expected improvement")
	}
	if got := m.Load(); got != 5.0 {
		t.Fatalf("Load: got %g, want 5", got)
	}
	if m.UpdateMin(6.0) {
		t.Fatal("UpdateMin(6): 6 does not improve 5")
	}
	if !m.UpdateMax(12.0) {
		t.Fatal("UpdateMax(12): expected improvement")
	}
	if got := m.Load(); got != 12.0 {
		t.Fatalf("Load: got %g, want 12", got)
	}
	if m.UpdateMax(11.0) {
		t.Fatal("UpdateMax(11): 11 does not improve 12")
	}
}

func TestMinMaxNaN(t *testing.T) {
	m := concx.NewMinMax[float64](3.0)

	if m.UpdateMin(math.NaN()) {
		t.Fatal("UpdateMin(NaN): NaN proposal must be rejected")
	}
	if m.UpdateMax(math.NaN()) {
		t.Fatal("UpdateMax(NaN): NaN proposal must be rejected")
	}
	if got := m.Load(); got != 3.0 {
		t.Fatalf("Load after NaN proposals: got %g, want 3", got)
	}

	// A NaN current value is replaced unconditionally.
	n := concx.NewMinMax[float64](math.NaN())
	if !n.UpdateMin(100.0) {
		t.Fatal("UpdateMin on NaN current: expected replacement")
	}
	if got := n.Load(); got != 100.0 {
		t.Fatalf("Load: got %g, want 100", got)
	}
}

func TestMinMaxInteger(t *testing.T) {
	m := concx.NewMinMax[int64](0)

	if !m.UpdateMax(7) {
		t.Fatal("UpdateMax(7): expected improvement")
	}
	if m.UpdateMax(7) {
		t.Fatal("UpdateMax(7): equal value does not improve")
	}
	if !m.UpdateMin(-7) {
		t.Fatal("UpdateMin(-7): expected improvement")
	}
	if got := m.Load(); got != -7 {
		t.Fatalf("Load: got %d, want -7", got)
	}
}

// =============================================================================
// BoundCounter
// =============================================================================

func TestBoundCounterBasic(t *testing.T) {
	bc := concx.NewBoundCounter[int64](5)

	if got := bc.Load(); got != 0 {
		t.Fatalf("Load: got %d, want 0", got)
	}
	if got := bc.Capacity(); got != 5 {
		t.Fatalf("Capacity: got %d, want 5", got)
	}
	if !bc.TryAdd(3) {
		t.Fatal("TryAdd(3): expected success")
	}
	if got := bc.Load(); got != 3 {
		t.Fatalf("Load: got %d, want 3", got)
	}
	if bc.TryAdd(3) {
		t.Fatal("TryAdd(3): 3+3 exceeds cap 5")
	}
	if got := bc.Load(); got != 3 {
		t.Fatalf("Load after rejected add: got %d, want 3", got)
	}
	if !bc.TrySub(2) {
		t.Fatal("TrySub(2): expected success")
	}
	if got := bc.Load(); got != 1 {
		t.Fatalf("Load: got %d, want 1", got)
	}
	if bc.TrySub(5) {
		t.Fatal("TrySub(5): only 1 available")
	}
}

func TestBoundCounterNegative(t *testing.T) {
	bc := concx.NewBoundCounter[int64](10)

	if bc.TryAdd(-1) {
		t.Fatal("TryAdd(-1): negative amounts must be rejected")
	}
	if bc.TrySub(-1) {
		t.Fatal("TrySub(-1): negative amounts must be rejected")
	}
	if bc.TryAdd(11) {
		t.Fatal("TryAdd(11): amount above cap must be rejected")
	}
}

func TestBoundCounterUnsigned(t *testing.T) {
	bc := concx.NewBoundCounter[uint64](math.MaxUint64)

	if !bc.TryAdd(math.MaxUint64) {
		t.Fatal("TryAdd(MaxUint64): expected success at full range")
	}
	if bc.TryAdd(1) {
		t.Fatal("TryAdd(1): counter is at cap")
	}
	if !bc.TrySub(math.MaxUint64) {
		t.Fatal("TrySub(MaxUint64): expected success")
	}
	if got := bc.Load(); got != 0 {
		t.Fatalf("Load: got %d, want 0", got)
	}
}
