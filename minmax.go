// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MinMax is an atomic scalar cell tracking the running minimum or
// maximum of all proposed values.
//
// A NaN proposal is always rejected. A NaN current value is replaced
// unconditionally by the first valid proposal. Both NaN branches are
// statically false for integer instantiations. All accesses use
// relaxed ordering.
type MinMax[T Scalar] struct {
	bits atomix.Uint64
}

// NewMinMax creates a MinMax cell holding init.
func NewMinMax[T Scalar](init T) *MinMax[T] {
	m := &MinMax[T]{}
	m.bits.StoreRelaxed(packBits(init))
	return m
}

// Load returns the current value.
func (m *MinMax[T]) Load() T {
	return unpackBits[T](m.bits.LoadRelaxed())
}

// UpdateMin lowers the cell to v if v is smaller than the current
// value. Returns false when v is NaN or does not improve the current
// value.
func (m *MinMax[T]) UpdateMin(v T) bool {
	if isNaN(v) {
		return false
	}
	sw := spin.Wait{}
	for {
		bits := m.bits.LoadRelaxed()
		cur := unpackBits[T](bits)
		if !isNaN(cur) && cur <= v {
			return false
		}
		if m.bits.CompareAndSwapRelaxed(bits, packBits(v)) {
			return true
		}
		sw.Once()
	}
}

// UpdateMax raises the cell to v if v is larger than the current
// value. Returns false when v is NaN or does not improve the current
// value.
func (m *MinMax[T]) UpdateMax(v T) bool {
	if isNaN(v) {
		return false
	}
	sw := spin.Wait{}
	for {
		bits := m.bits.LoadRelaxed()
		cur := unpackBits[T](bits)
		if !isNaN(cur) && cur >= v {
			return false
		}
		if m.bits.CompareAndSwapRelaxed(bits, packBits(v)) {
			return true
		}
		sw.Once()
	}
}
