// File: core/sched/driver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import "github.com/momentics/hioload-cdc/api"

// Edge identifies one clock edge of one domain.
type Edge struct {
	Domain api.Domain
	Index  uint64 // per-domain edge count
	Time   uint64 // simulated time; zero under ConcurrentRunner
}

// WriteResult is the outcome of a running write-domain edge.
type WriteResult struct {
	Request  bool
	Data     api.Word
	Accepted bool
	Full     bool
}

// ReadResult is the outcome of a running read-domain edge.
type ReadResult struct {
	Request  bool
	Data     api.Word
	Accepted bool
	Empty    bool
}

// Driver supplies stimulus and observes results. Write methods are only
// called from the write domain's process and read methods from the read
// domain's process; under ConcurrentRunner the two sides run concurrently.
type Driver interface {
	// NextWrite returns the request for a running write edge; full is the
	// registered flag before the edge.
	NextWrite(e Edge, full bool) (wr bool, data api.Word)
	// WriteDone reports the outcome of the edge.
	WriteDone(e Edge, res WriteResult)
	// NextRead returns the request for a running read edge.
	NextRead(e Edge, empty bool) (rd bool)
	// ReadDone reports the outcome of the edge.
	ReadDone(e Edge, res ReadResult)
	// DomainReset reports an edge spent with the domain held in reset.
	DomainReset(e Edge)
	// Finished reports that the run may stop.
	Finished() bool
}

// Idle is a Driver that never requests anything and never finishes.
type Idle struct{}

func (Idle) NextWrite(Edge, bool) (bool, api.Word) { return false, 0 }
func (Idle) WriteDone(Edge, WriteResult)           {}
func (Idle) NextRead(Edge, bool) bool              { return false }
func (Idle) ReadDone(Edge, ReadResult)             {}
func (Idle) DomainReset(Edge)                      {}
func (Idle) Finished() bool                        { return false }
