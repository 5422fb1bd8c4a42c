// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// BoundCounter is an atomic counter whose value is invariantly kept in
// [0, cap]. TryAdd and TrySub reject any change that would leave the
// range instead of saturating.
//
// All accesses use relaxed ordering; the counter carries no
// cross-variable ordering obligations.
type BoundCounter[T Scalar] struct {
	current atomix.Uint64
	cap     T
}

// NewBoundCounter creates a counter bounded by cap, starting at zero.
func NewBoundCounter[T Scalar](cap T) *BoundCounter[T] {
	b := &BoundCounter[T]{cap: cap}
	var zero T
	b.current.StoreRelaxed(packBits(zero))
	return b
}

// Load returns the current value.
func (b *BoundCounter[T]) Load() T {
	return unpackBits[T](b.current.LoadRelaxed())
}

// Capacity returns the upper bound.
func (b *BoundCounter[T]) Capacity() T {
	return b.cap
}

// TryAdd adds v to the counter if the result stays within [0, cap].
// Negative v is rejected. Returns false when the add would exceed cap.
func (b *BoundCounter[T]) TryAdd(v T) bool {
	var zero T
	if v < zero {
		return false
	}
	if v > b.cap {
		return false
	}
	sw := spin.Wait{}
	for {
		bits := b.current.LoadRelaxed()
		cur := unpackBits[T](bits)
		// Overflow-safe order: compare against cap-v, never cur+v.
		if cur > b.cap-v {
			return false
		}
		if b.current.CompareAndSwapRelaxed(bits, packBits(cur+v)) {
			return true
		}
		sw.Once()
	}
}

// TrySub subtracts v from the counter if the result stays at or above
// zero. Negative v is rejected. Returns false when the counter holds
// less than v.
func (b *BoundCounter[T]) TrySub(v T) bool {
	var zero T
	if v < zero {
		return false
	}
	sw := spin.Wait{}
	for {
		bits := b.current.LoadRelaxed()
		cur := unpackBits[T](bits)
		if cur < v {
			return false
		}
		if b.current.CompareAndSwapRelaxed(bits, packBits(cur-v)) {
			return true
		}
		sw.Once()
	}
}
