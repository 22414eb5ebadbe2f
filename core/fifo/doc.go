// File: core/fifo/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package fifo implements a dual-clock FIFO whose write and read sides live
// in independent clock domains.
//
// Pointers are (AddrWidth+1)-bit binary counters with a Gray-coded shadow.
// Only the Gray value crosses domains, through a two-stage synchronizer in
// the destination domain; decisions compare only against the second stage.
// Full and Empty are registered flags computed from the next local pointer
// and the synchronized foreign pointer:
//
//	Full  = wgrayNext == rsync ^ (0b11 << (AddrWidth-1))
//	Empty = rgrayNext == wsync
//
// The storage ring is shared with disjoint ownership: the write domain only
// writes slots, the read domain only reads them. No locks are taken.
//
// WriteDomain methods must be called from one sequential process and
// ReadDomain methods from another; the two may run on different goroutines.
package fifo
