// File: harness/stimulus.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import (
	"math/rand"
	"sync/atomic"

	"github.com/momentics/hioload-cdc/api"
)

// Status is what a stimulus may observe. Written and WriteRequests are
// owned by the write domain, Read by the read domain.
type Status struct {
	Written       uint64 // accepted writes since start
	WriteRequests uint64 // write requests issued since start
	Read          uint64 // accepted reads since start
	Outstanding   int    // expectations not yet dequeued
}

// Stimulus decides requests. Write is called only from the write domain and
// Read only from the read domain.
type Stimulus interface {
	Write(st Status) (wr bool, data api.Word)
	Read(st Status) (rd bool)
	Done(st Status) bool
}

// Pattern produces the data word for the n-th accepted write.
type Pattern func(n uint64) api.Word

// Offset returns a pattern counting up from base.
func Offset(base api.Word) Pattern {
	return func(n uint64) api.Word { return base + api.Word(n) }
}

// Phase is one step of a Phased stimulus.
type Phase struct {
	Write bool
	Read  bool
	// Until ends the phase.
	Until func(st Status) bool
}

// Fill writes until n words in total have been accepted.
func Fill(n uint64) Phase {
	return Phase{Write: true, Until: func(st Status) bool { return st.Written >= n }}
}

// Probe issues write requests until n requests in total have been issued.
func Probe(n uint64) Phase {
	return Phase{Write: true, Until: func(st Status) bool { return st.WriteRequests >= n }}
}

// Drain reads until nothing is outstanding.
func Drain() Phase {
	return Phase{Read: true, Until: func(st Status) bool { return st.Outstanding == 0 }}
}

// Phased runs phases in order. The phase cursor is atomic so both domains
// may advance it.
type Phased struct {
	phases  []Phase
	pattern Pattern
	cur     atomic.Int32
}

// NewPhased returns a stimulus walking phases with data from pattern.
func NewPhased(pattern Pattern, phases ...Phase) *Phased {
	return &Phased{phases: phases, pattern: pattern}
}

// phase returns the current phase, advancing past finished ones.
func (p *Phased) phase(st Status) (Phase, bool) {
	for {
		i := p.cur.Load()
		if int(i) >= len(p.phases) {
			return Phase{}, false
		}
		ph := p.phases[i]
		if !ph.Until(st) {
			return ph, true
		}
		p.cur.CompareAndSwap(i, i+1)
	}
}

func (p *Phased) Write(st Status) (bool, api.Word) {
	ph, ok := p.phase(st)
	if !ok || !ph.Write {
		return false, 0
	}
	return true, p.pattern(st.Written)
}

func (p *Phased) Read(st Status) bool {
	ph, ok := p.phase(st)
	return ok && ph.Read
}

func (p *Phased) Done(st Status) bool {
	_, ok := p.phase(st)
	return !ok
}

// Random issues writes and reads with fixed probabilities until Count words
// have been written and drained. Each side has its own generator.
type Random struct {
	count  uint64
	pw, pr float64
	wrng   *rand.Rand
	rrng   *rand.Rand
}

// NewRandom returns a seeded random stimulus.
func NewRandom(seed int64, count uint64, writeProb, readProb float64) *Random {
	return &Random{
		count: count,
		pw:    writeProb,
		pr:    readProb,
		wrng:  rand.New(rand.NewSource(seed)),
		rrng:  rand.New(rand.NewSource(seed ^ 0x5bd1e995)),
	}
}

// Saturated requests on every edge of both domains.
func Saturated(seed int64, count uint64) *Random {
	return NewRandom(seed, count, 1, 1)
}

func (r *Random) Write(st Status) (bool, api.Word) {
	if st.Written >= r.count || r.wrng.Float64() >= r.pw {
		return false, 0
	}
	return true, api.Word(r.wrng.Uint64())
}

func (r *Random) Read(Status) bool {
	return r.rrng.Float64() < r.pr
}

func (r *Random) Done(st Status) bool {
	return st.Written >= r.count && st.Outstanding == 0
}
