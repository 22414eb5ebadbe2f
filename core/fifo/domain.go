// File: core/fifo/domain.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-domain register sets. Each Tick computes the next state from pre-edge
// values, then commits every register at once, as a clock edge would.

package fifo

import (
	"log/slog"
	"sync/atomic"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/internal/logging"
)

// Compile-time interface compliance.
var (
	_ api.WritePort = (*WriteDomain)(nil)
	_ api.ReadPort  = (*ReadDomain)(nil)
)

// Counters are per-domain statistics, safe to read from any goroutine.
type Counters struct {
	Ticks    atomic.Uint64
	Accepted atomic.Uint64
	Rejected atomic.Uint64
	Resets   atomic.Uint64
}

// CounterSnapshot is a plain copy of Counters.
type CounterSnapshot struct {
	Ticks    uint64
	Accepted uint64
	Rejected uint64
	Resets   uint64
}

func (c *Counters) snapshot() CounterSnapshot {
	return CounterSnapshot{
		Ticks:    c.Ticks.Load(),
		Accepted: c.Accepted.Load(),
		Rejected: c.Rejected.Load(),
		Resets:   c.Resets.Load(),
	}
}

func (c *Counters) record(requested, accepted bool) {
	c.Ticks.Add(1)
	switch {
	case accepted:
		c.Accepted.Add(1)
	case requested:
		c.Rejected.Add(1)
	}
}

// DomainSnapshot captures one domain's registers between ticks.
type DomainSnapshot struct {
	Pointer  Pointer
	Lap      uint64 // wrap bit of Pointer
	Stage1   uint64
	Stage2   uint64
	Flag     bool
	Counters CounterSnapshot
}

// WriteDomain holds the write pointer, the read-pointer synchronizer and Full.
type WriteDomain struct {
	ptr      *WritePointerState
	rsync    *CrossDomainSync
	flags    FlagEngine
	full     bool
	out      *publishedGray
	dataMask api.Word
	stats    Counters
}

func newWriteDomain(cfg Config, store *RingStore, out, in *publishedGray) *WriteDomain {
	return &WriteDomain{
		ptr:      NewWritePointerState(cfg, store),
		rsync:    newCrossDomainSync(in),
		flags:    NewFlagEngine(cfg),
		out:      out,
		dataMask: cfg.dataMask(),
	}
}

// Tick implements api.WritePort.
func (w *WriteDomain) Tick(wr bool, data api.Word) (accepted, full bool) {
	accepted = w.ptr.Tick(wr, w.full, data&w.dataMask)
	fullNext := w.flags.Full(w.ptr.Pointer().Gray, w.rsync.Value())
	w.rsync.Shift()
	w.full = fullNext
	if accepted {
		w.out.store(w.ptr.Pointer().Gray)
	} else if wr && logging.Enabled(slog.LevelDebug) {
		logging.Debug(logging.ComponentFIFO, "write rejected", "ptr", w.ptr.Pointer().Bin)
	}
	w.stats.record(wr, accepted)
	return accepted, w.full
}

// Full implements api.WritePort.
func (w *WriteDomain) Full() bool {
	return w.full
}

// Reset implements api.WritePort.
func (w *WriteDomain) Reset() {
	w.ptr.Reset()
	w.rsync.Reset()
	w.full = false
	w.out.store(0)
	w.stats.Resets.Add(1)
	logging.Debug(logging.ComponentFIFO, "write domain reset")
}

// Pointer returns the committed write pointer.
func (w *WriteDomain) Pointer() Pointer {
	return w.ptr.Pointer()
}

// Counters returns a copy of the domain statistics.
func (w *WriteDomain) Counters() CounterSnapshot {
	return w.stats.snapshot()
}

// Snapshot returns the domain registers. Call only from the write domain's
// process or while it is idle.
func (w *WriteDomain) Snapshot() DomainSnapshot {
	s1, s2 := w.rsync.Stages()
	return DomainSnapshot{
		Pointer:  w.ptr.Pointer(),
		Lap:      w.ptr.lap(),
		Stage1:   s1,
		Stage2:   s2,
		Flag:     w.full,
		Counters: w.stats.snapshot(),
	}
}

// ReadDomain holds the read pointer, the write-pointer synchronizer and Empty.
type ReadDomain struct {
	ptr   *ReadPointerState
	wsync *CrossDomainSync
	flags FlagEngine
	empty bool
	out   *publishedGray
	stats Counters
}

func newReadDomain(cfg Config, store *RingStore, out, in *publishedGray) *ReadDomain {
	return &ReadDomain{
		ptr:   NewReadPointerState(cfg, store),
		wsync: newCrossDomainSync(in),
		flags: NewFlagEngine(cfg),
		empty: true,
		out:   out,
	}
}

// Tick implements api.ReadPort.
func (r *ReadDomain) Tick(rd bool) (data api.Word, accepted, empty bool) {
	data, accepted = r.ptr.Tick(rd, r.empty)
	emptyNext := r.flags.Empty(r.ptr.Pointer().Gray, r.wsync.Value())
	r.wsync.Shift()
	r.empty = emptyNext
	if accepted {
		r.out.store(r.ptr.Pointer().Gray)
	} else if rd && logging.Enabled(slog.LevelDebug) {
		logging.Debug(logging.ComponentFIFO, "read rejected", "ptr", r.ptr.Pointer().Bin)
	}
	r.stats.record(rd, accepted)
	return data, accepted, r.empty
}

// Empty implements api.ReadPort.
func (r *ReadDomain) Empty() bool {
	return r.empty
}

// Reset implements api.ReadPort.
func (r *ReadDomain) Reset() {
	r.ptr.Reset()
	r.wsync.Reset()
	r.empty = true
	r.out.store(0)
	r.stats.Resets.Add(1)
	logging.Debug(logging.ComponentFIFO, "read domain reset")
}

// Pointer returns the committed read pointer.
func (r *ReadDomain) Pointer() Pointer {
	return r.ptr.Pointer()
}

// Counters returns a copy of the domain statistics.
func (r *ReadDomain) Counters() CounterSnapshot {
	return r.stats.snapshot()
}

// Snapshot returns the domain registers. Call only from the read domain's
// process or while it is idle.
func (r *ReadDomain) Snapshot() DomainSnapshot {
	s1, s2 := r.wsync.Stages()
	return DomainSnapshot{
		Pointer:  r.ptr.Pointer(),
		Lap:      r.ptr.lap(),
		Stage1:   s1,
		Stage2:   s2,
		Flag:     r.empty,
		Counters: r.stats.snapshot(),
	}
}
