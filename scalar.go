// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package concx

import "unsafe"

// Scalar is the element constraint for the atomic cell family
// (Clamp, MinMax, BoundCounter). All three underlying types occupy
// exactly 8 bytes, so a cell stores the value's bit pattern in a
// single [atomix.Uint64] word.
type Scalar interface {
	~int64 | ~uint64 | ~float64
}

// packBits returns the 8-byte bit pattern of v.
func packBits[T Scalar](v T) uint64 {
	return *(*uint64)(unsafe.Pointer(&v))
}

// unpackBits reconstructs a value from its bit pattern.
func unpackBits[T Scalar](bits uint64) T {
	return *(*T)(unsafe.Pointer(&bits))
}

// isNaN reports whether v is a floating-point NaN.
// Statically false for integer instantiations.
func isNaN[T Scalar](v T) bool {
	return v != v
}
