// File: api/fifo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Domain-local contracts of the dual-clock FIFO.

package api

// WritePort is the write-domain surface. All calls must come from the
// write domain's own sequential process.
type WritePort interface {
	// Tick advances the write domain by one clock edge. accepted reports
	// whether the word was stored; full is the registered flag after the edge.
	Tick(wr bool, data Word) (accepted, full bool)
	// Reset clears the write pointer, Full and the read-pointer synchronizer.
	Reset()
	// Full returns the registered Full flag.
	Full() bool
}

// ReadPort is the read-domain surface. All calls must come from the
// read domain's own sequential process.
type ReadPort interface {
	// Tick advances the read domain by one clock edge. data is valid only
	// when accepted is true.
	Tick(rd bool) (data Word, accepted, empty bool)
	// Reset clears the read pointer, Empty and the write-pointer synchronizer.
	Reset()
	// Empty returns the registered Empty flag.
	Empty() bool
}
