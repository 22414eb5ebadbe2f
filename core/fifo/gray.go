// File: core/fifo/gray.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fifo

// ToGray converts a binary counter value to its reflected Gray code.
// Consecutive inputs differ in exactly one output bit.
func ToGray(v uint64) uint64 {
	return v ^ (v >> 1)
}

// FromGray inverts ToGray. Diagnostics only; domain logic never decodes a
// synchronized pointer.
func FromGray(g uint64) uint64 {
	g ^= g >> 32
	g ^= g >> 16
	g ^= g >> 8
	g ^= g >> 4
	g ^= g >> 2
	g ^= g >> 1
	return g
}
