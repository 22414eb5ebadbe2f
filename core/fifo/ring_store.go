// File: core/fifo/ring_store.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingStore is the FIFO storage array. It performs no gating: the write
// domain guarantees permission through Full, the read domain decides
// meaningfulness through Empty. Reset never clears it.
//
// Slots are atomic words: the read domain samples the slot under its pointer
// on every edge, including the one the write domain may be filling.

package fifo

import (
	"sync/atomic"

	"github.com/momentics/hioload-cdc/api"
)

// RingStore is a fixed array of 2^AddrWidth words.
type RingStore struct {
	data []atomic.Uint64
	mask uint64
}

// NewRingStore allocates storage of the given power-of-two depth.
func NewRingStore(depth int) *RingStore {
	if depth <= 0 || depth&(depth-1) != 0 {
		panic("depth must be power of two")
	}
	return &RingStore{
		data: make([]atomic.Uint64, depth),
		mask: uint64(depth - 1),
	}
}

// Write stores value at index. Unconditional.
func (s *RingStore) Write(index uint64, value api.Word) {
	s.data[index&s.mask].Store(value)
}

// Read returns the current content of index.
func (s *RingStore) Read(index uint64) api.Word {
	return s.data[index&s.mask].Load()
}

// Depth returns the number of slots.
func (s *RingStore) Depth() int {
	return len(s.data)
}
