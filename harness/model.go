// File: harness/model.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Reference model of the registered flags. It counts in plain binary modulo
// 2^(AddrWidth+1) and never looks at Gray codes, so it checks the FIFO's
// Gray-domain comparisons against ordinary pointer distance.

package harness

import (
	"github.com/eapache/queue"

	"github.com/momentics/hioload-cdc/core/fifo"
)

// delayLine is a two-register relay: front is the settled stage.
type delayLine struct {
	q *queue.Queue
}

func newDelayLine() delayLine {
	q := queue.New()
	q.Add(uint64(0))
	q.Add(uint64(0))
	return delayLine{q: q}
}

func (d delayLine) settled() uint64 { return d.q.Peek().(uint64) }

func (d delayLine) shift(sample uint64) {
	d.q.Remove()
	d.q.Add(sample)
}

// Model predicts acceptance and flags for every edge. Not safe for
// concurrent use; it relies on the deterministic scheduler's edge order.
type Model struct {
	depth uint64
	mask  uint64
	w, r  uint64
	rsync delayLine
	wsync delayLine
	full  bool
	empty bool
}

// NewModel returns a model in the reset state of cfg.
func NewModel(cfg fifo.Config) *Model {
	m := &Model{
		depth: uint64(cfg.Depth()),
		mask:  uint64(cfg.Depth())<<1 - 1,
	}
	m.ResetWrite()
	m.ResetRead()
	return m
}

// Write advances the model by one write edge.
func (m *Model) Write(wr bool) (accepted, full bool) {
	accepted = wr && !m.full
	if accepted {
		m.w = (m.w + 1) & m.mask
	}
	fullNext := (m.w-m.rsync.settled())&m.mask == m.depth
	m.rsync.shift(m.r)
	m.full = fullNext
	return accepted, m.full
}

// Read advances the model by one read edge.
func (m *Model) Read(rd bool) (accepted, empty bool) {
	accepted = rd && !m.empty
	if accepted {
		m.r = (m.r + 1) & m.mask
	}
	emptyNext := m.r == m.wsync.settled()
	m.wsync.shift(m.w)
	m.empty = emptyNext
	return accepted, m.empty
}

// ResetWrite mirrors a write-domain reset.
func (m *Model) ResetWrite() {
	m.w = 0
	m.rsync = newDelayLine()
	m.full = false
}

// ResetRead mirrors a read-domain reset.
func (m *Model) ResetRead() {
	m.r = 0
	m.wsync = newDelayLine()
	m.empty = true
}
