// Package fake
// Author: momentics <momentics@gmail.com>
//
// Faulty port wrappers for testing the verification harness.
// Each wraps a working port and breaks exactly one behavior.

package fake

import (
	"sync"

	"github.com/momentics/hioload-cdc/api"
)

// BlindWritePort reports Full as false to the driver, so requests made
// while the FIFO is full look like they should be accepted.
type BlindWritePort struct {
	api.WritePort
}

// Full always reports false.
func (BlindWritePort) Full() bool { return false }

// CorruptReadPort XORs every accepted word with Mask.
type CorruptReadPort struct {
	api.ReadPort
	Mask api.Word
}

// Tick forwards to the wrapped port and corrupts accepted data.
func (p CorruptReadPort) Tick(rd bool) (api.Word, bool, bool) {
	d, acc, empty := p.ReadPort.Tick(rd)
	if acc {
		d ^= p.Mask
	}
	return d, acc, empty
}

// DroppingWritePort reports every Nth accepted write as accepted but skips
// the tick, losing the word.
type DroppingWritePort struct {
	api.WritePort
	N int

	mu    sync.Mutex
	count int
}

// Tick forwards to the wrapped port except for every Nth request.
func (p *DroppingWritePort) Tick(wr bool, data api.Word) (bool, bool) {
	if wr && p.N > 0 {
		p.mu.Lock()
		p.count++
		drop := p.count%p.N == 0
		p.mu.Unlock()
		if drop && !p.WritePort.Full() {
			_, full := p.WritePort.Tick(false, 0)
			return true, full
		}
	}
	return p.WritePort.Tick(wr, data)
}

// RecordingReadPort records every accepted word.
type RecordingReadPort struct {
	api.ReadPort

	mu   sync.Mutex
	seen []api.Word
}

// Tick forwards to the wrapped port and records accepted data.
func (p *RecordingReadPort) Tick(rd bool) (api.Word, bool, bool) {
	d, acc, empty := p.ReadPort.Tick(rd)
	if acc {
		p.mu.Lock()
		p.seen = append(p.seen, d)
		p.mu.Unlock()
	}
	return d, acc, empty
}

// Seen returns a copy of the recorded words.
func (p *RecordingReadPort) Seen() []api.Word {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]api.Word(nil), p.seen...)
}
