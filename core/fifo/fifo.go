// File: core/fifo/fifo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FIFO assembles the storage ring and both clock domains.

package fifo

import (
	"fmt"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/internal/logging"
)

// FIFO is a dual-clock FIFO. Write and read sides are independent register
// sets that communicate only through published Gray pointers and the ring.
type FIFO struct {
	cfg   Config
	store *RingStore
	wgray publishedGray
	rgray publishedGray
	w     *WriteDomain
	r     *ReadDomain
}

// New validates cfg and returns a FIFO with both domains in reset state.
func New(cfg Config) (*FIFO, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fifo: %w", err)
	}
	f := &FIFO{
		cfg:   cfg,
		store: NewRingStore(cfg.Depth()),
	}
	f.w = newWriteDomain(cfg, f.store, &f.wgray, &f.rgray)
	f.r = newReadDomain(cfg, f.store, &f.rgray, &f.wgray)
	logging.Info(logging.ComponentFIFO, "fifo created", "depth", cfg.Depth(), "width", cfg.DataWidth)
	return f, nil
}

// Config returns the construction geometry.
func (f *FIFO) Config() Config {
	return f.cfg
}

// Depth returns the storage capacity in words.
func (f *FIFO) Depth() int {
	return f.store.Depth()
}

// Write returns the write-domain port.
func (f *FIFO) Write() *WriteDomain {
	return f.w
}

// Read returns the read-domain port.
func (f *FIFO) Read() *ReadDomain {
	return f.r
}

// WTick clocks the write domain and returns the registered Full flag.
func (f *FIFO) WTick(wr bool, data api.Word) (full bool) {
	_, full = f.w.Tick(wr, data)
	return full
}

// RTick clocks the read domain. data is meaningful only when rd was set and
// the previous Empty was false.
func (f *FIFO) RTick(rd bool) (data api.Word, empty bool) {
	data, _, empty = f.r.Tick(rd)
	return data, empty
}

// WReset resets the write domain only. Storage is never cleared.
func (f *FIFO) WReset() {
	f.w.Reset()
}

// RReset resets the read domain only. Storage is never cleared.
func (f *FIFO) RReset() {
	f.r.Reset()
}

// PublishedWrite returns the Gray write pointer as the read domain samples it.
// Safe from any goroutine.
func (f *FIFO) PublishedWrite() uint64 {
	return f.wgray.load()
}

// PublishedRead returns the Gray read pointer as the write domain samples it.
// Safe from any goroutine.
func (f *FIFO) PublishedRead() uint64 {
	return f.rgray.load()
}

// Snapshot is a consistent view of both domains.
type Snapshot struct {
	Write DomainSnapshot
	Read  DomainSnapshot
}

// Snapshot returns both domains' registers. Only meaningful while neither
// domain is ticking.
func (f *FIFO) Snapshot() Snapshot {
	return Snapshot{Write: f.w.Snapshot(), Read: f.r.Snapshot()}
}

// Outstanding returns the true number of stored words, from the committed
// pointers of both domains. Only meaningful while neither domain is ticking.
func (f *FIFO) Outstanding() int {
	return int((f.w.Pointer().Bin - f.r.Pointer().Bin) & f.cfg.pointerMask())
}
