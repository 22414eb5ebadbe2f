// File: core/fifo/sync.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Two-stage synchronizer and the published Gray pointer it samples.

package fifo

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// publishedGray is the only value one domain exposes to the other. Padded so
// the write and read domain cells never share a cache line.
type publishedGray struct {
	_ cpu.CacheLinePad
	v atomic.Uint64
	_ cpu.CacheLinePad
}

func (p *publishedGray) load() uint64   { return p.v.Load() }
func (p *publishedGray) store(g uint64) { p.v.Store(g) }

// CrossDomainSync relays a foreign Gray pointer into the local domain with
// two local ticks of latency. Only Value (stage 2) may feed decisions.
type CrossDomainSync struct {
	source *publishedGray
	stage1 uint64
	stage2 uint64
}

func newCrossDomainSync(source *publishedGray) *CrossDomainSync {
	return &CrossDomainSync{source: source}
}

// Shift clocks the relay: stage2 takes stage1, stage1 samples the source.
func (s *CrossDomainSync) Shift() {
	s.stage2 = s.stage1
	s.stage1 = s.source.load()
}

// Value returns the settled snapshot.
func (s *CrossDomainSync) Value() uint64 {
	return s.stage2
}

// Stages returns both registers for diagnostics.
func (s *CrossDomainSync) Stages() (stage1, stage2 uint64) {
	return s.stage1, s.stage2
}

// Reset clears both stages.
func (s *CrossDomainSync) Reset() {
	s.stage1, s.stage2 = 0, 0
}
