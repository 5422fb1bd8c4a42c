// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package concx

// RaceEnabled is true when the race detector is active.
// This package's own concurrent tests do not read it; they are
// excluded from race builds with //go:build !race.
const RaceEnabled = true
