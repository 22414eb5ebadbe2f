// File: core/sched/domain.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-domain RESET/RUNNING state machine and the edge bodies shared by both
// runners.

package sched

import "github.com/momentics/hioload-cdc/api"

type domain struct {
	id    api.Domain
	state api.DomainState
	hold  uint64 // reset edges left before deassertion
	edges uint64
}

func newDomain(id api.Domain, initialReset uint64) *domain {
	d := &domain{id: id, state: api.StateRunning}
	if initialReset > 0 {
		d.assert(initialReset)
	}
	return d
}

// assert holds the domain in reset for at least n more edges.
func (d *domain) assert(n uint64) {
	if n == 0 {
		n = 1
	}
	d.state = api.StateReset
	if n > d.hold {
		d.hold = n
	}
}

// resetEdge spends one edge in reset and deasserts when the hold expires.
func (d *domain) resetEdge(reset func(), drv Driver, e Edge) {
	reset()
	drv.DomainReset(e)
	d.hold--
	if d.hold == 0 {
		d.state = api.StateRunning
	}
}

// writeEdge delivers one write-domain edge. progress is false for running
// edges that moved no data.
func (d *domain) writeEdge(w api.WritePort, drv Driver, time uint64) (e Edge, progress bool) {
	e = Edge{Domain: d.id, Index: d.edges, Time: time}
	d.edges++
	if d.state == api.StateReset {
		d.resetEdge(w.Reset, drv, e)
		return e, true
	}
	wr, data := drv.NextWrite(e, w.Full())
	accepted, full := w.Tick(wr, data)
	drv.WriteDone(e, WriteResult{Request: wr, Data: data, Accepted: accepted, Full: full})
	return e, accepted
}

// readEdge delivers one read-domain edge. progress is false for running
// edges that moved no data.
func (d *domain) readEdge(r api.ReadPort, drv Driver, time uint64) (e Edge, progress bool) {
	e = Edge{Domain: d.id, Index: d.edges, Time: time}
	d.edges++
	if d.state == api.StateReset {
		d.resetEdge(r.Reset, drv, e)
		return e, true
	}
	rd := drv.NextRead(e, r.Empty())
	data, accepted, empty := r.Tick(rd)
	drv.ReadDone(e, ReadResult{Request: rd, Data: data, Accepted: accepted, Empty: empty})
	return e, accepted
}
