// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Clamp is an atomic scalar cell whose value can be forced into a
// caller-supplied range with a single lock-free operation.
//
// ClampTo follows the shared cell skeleton: read the current value,
// return false when no change is needed, otherwise CAS and retry on
// contention. All accesses use relaxed ordering; the cell carries no
// cross-variable ordering obligations.
type Clamp[T Scalar] struct {
	bits atomix.Uint64
}

// NewClamp creates a Clamp cell holding init.
func NewClamp[T Scalar](init T) *Clamp[T] {
	c := &Clamp[T]{}
	c.bits.StoreRelaxed(packBits(init))
	return c
}

// Load returns the current value.
func (c *Clamp[T]) Load() T {
	return unpackBits[T](c.bits.LoadRelaxed())
}

// ClampTo forces the current value into [low, high].
// Returns true if the value was changed, false if it was already in
// range. Panics if low > high.
func (c *Clamp[T]) ClampTo(low, high T) bool {
	if low > high {
		panic("concx: Clamp bounds inverted")
	}
	sw := spin.Wait{}
	for {
		bits := c.bits.LoadRelaxed()
		cur := unpackBits[T](bits)
		switch {
		case cur < low:
			if c.bits.CompareAndSwapRelaxed(bits, packBits(low)) {
				return true
			}
		case cur > high:
			if c.bits.CompareAndSwapRelaxed(bits, packBits(high)) {
				return true
			}
		default:
			return false
		}
		sw.Once()
	}
}
