// File: harness/harness.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/core/fifo"
	"github.com/momentics/hioload-cdc/core/sched"
	"github.com/momentics/hioload-cdc/internal/logging"
)

// Compile-time interface compliance.
var _ sched.Driver = (*Harness)(nil)

// settleEdges is how many idle edges each domain runs after a reset before
// stimulus resumes, enough for both synchronizers and flags to clear.
const settleEdges = 3

// maxRecordedErrors bounds the error log kept in a Report.
const maxRecordedErrors = 16

// Harness drives a FIFO and checks everything it observes.
type Harness struct {
	cfg      fifo.Config
	depth    uint64
	dataMask api.Word
	stim     Stimulus
	board    *Scoreboard
	model    *Model

	// stamps[i] holds 1 + the write sequence number last stored in slot i,
	// zero when the slot has not been written since the last write reset.
	stamps []atomic.Uint64
	wseq   atomic.Uint64 // accepted writes since the last write reset
	rseq   atomic.Uint64 // accepted reads since the last read reset

	// write-domain owned
	predicted bool
	requests  atomic.Uint64

	// read-domain owned
	rpredicted bool
	rpending   uint64

	written   atomic.Uint64
	read      atomic.Uint64
	rejectedW atomic.Uint64
	rejectedR atomic.Uint64
	firstFull atomic.Uint64
	lastFull  atomic.Bool
	lastEmpty atomic.Bool

	mu         sync.Mutex
	quarantine bool
	idleLeft   [2]int
	resets     [2]uint64
	desyncs    uint64
	flagErrors uint64
	errs       []error
}

// New returns a harness for cfg. With strict set, every edge is checked
// against the reference Model; strict requires the deterministic scheduler.
func New(cfg fifo.Config, stim Stimulus, strict bool) *Harness {
	h := &Harness{
		cfg:    cfg,
		depth:  uint64(cfg.Depth()),
		stim:   stim,
		board:  NewScoreboard(),
		stamps: make([]atomic.Uint64, cfg.Depth()),
	}
	h.dataMask = ^api.Word(0)
	if cfg.DataWidth < 64 {
		h.dataMask = api.Word(1)<<cfg.DataWidth - 1
	}
	if strict {
		h.model = NewModel(cfg)
	}
	h.lastEmpty.Store(true)
	return h
}

func (h *Harness) status() Status {
	return Status{
		Written:       h.written.Load(),
		WriteRequests: h.requests.Load(),
		Read:          h.read.Load(),
		Outstanding:   h.board.Outstanding(),
	}
}

func (h *Harness) record(code api.ErrorCode, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch code {
	case api.ErrCodeDesync:
		h.desyncs++
	case api.ErrCodeInternal:
		h.flagErrors++
	}
	if len(h.errs) < maxRecordedErrors {
		h.errs = append(h.errs, err)
	}
	logging.Error(logging.ComponentHarness, "check failed", "err", err)
}

// blocked reports whether stimulus is suspended on domain d. After a reset,
// both domains must have been reset and each must run settleEdges idle edges.
func (h *Harness) blocked(d api.Domain) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.quarantine {
		return false
	}
	if h.wseq.Load() != 0 || h.rseq.Load() != 0 {
		return true
	}
	if h.idleLeft[d] > 0 {
		h.idleLeft[d]--
	}
	if h.idleLeft[api.DomainWrite] == 0 && h.idleLeft[api.DomainRead] == 0 {
		h.quarantine = false
		logging.Debug(logging.ComponentHarness, "domains resynchronized")
	}
	return true
}

// NextWrite implements sched.Driver.
func (h *Harness) NextWrite(e sched.Edge, full bool) (bool, api.Word) {
	h.predicted = false
	if h.blocked(api.DomainWrite) {
		return false, 0
	}
	wr, data := h.stim.Write(h.status())
	if !wr {
		return false, 0
	}
	h.requests.Add(1)
	if full {
		return true, data
	}
	// The write will be accepted: publish the expectation before the FIFO
	// publishes its pointer, so the read side can never outrun it.
	seq := h.wseq.Load()
	if dist := seq - h.rseq.Load(); dist >= h.depth {
		h.record(api.ErrCodeDesync, api.NewError(api.ErrCodeDesync, "write accepted beyond depth").
			WithContext("distance", dist+1).
			WithContext("edge", e.Index))
	}
	h.stamps[seq%h.depth].Store(seq + 1)
	h.board.Expect(data & h.dataMask)
	h.wseq.Store(seq + 1)
	h.written.Add(1)
	h.predicted = true
	return true, data
}

// WriteDone implements sched.Driver.
func (h *Harness) WriteDone(e sched.Edge, res sched.WriteResult) {
	if res.Accepted != h.predicted {
		h.record(api.ErrCodeInternal, api.NewError(api.ErrCodeInternal, "write gating ignored Full").
			WithContext("edge", e.Index).
			WithCause(ErrFlagDivergence))
	}
	if res.Request && !res.Accepted {
		h.rejectedW.Add(1)
	}
	if res.Full && h.firstFull.Load() == 0 {
		h.firstFull.Store(h.written.Load())
	}
	h.lastFull.Store(res.Full)
	if h.model != nil {
		accepted, full := h.model.Write(res.Request)
		if accepted != res.Accepted || full != res.Full {
			h.record(api.ErrCodeInternal, api.NewError(api.ErrCodeInternal, "write edge diverged from model").
				WithContext("edge", e.Index).
				WithContext("time", e.Time).
				WithContext("accepted", fmt.Sprintf("%v/%v", res.Accepted, accepted)).
				WithContext("full", fmt.Sprintf("%v/%v", res.Full, full)).
				WithCause(ErrFlagDivergence))
		}
	}
}

// NextRead implements sched.Driver.
func (h *Harness) NextRead(_ sched.Edge, empty bool) bool {
	h.rpredicted = false
	if h.blocked(api.DomainRead) {
		return false
	}
	rd := h.stim.Read(h.status())
	if rd && !empty {
		// Claim the read before the FIFO publishes its pointer so the write
		// side's distance check never sees a stale count.
		h.rpending = h.rseq.Load()
		h.rseq.Store(h.rpending + 1)
		h.rpredicted = true
	}
	return rd
}

// ReadDone implements sched.Driver.
func (h *Harness) ReadDone(e sched.Edge, res sched.ReadResult) {
	h.lastEmpty.Store(res.Empty)
	if res.Accepted != h.rpredicted {
		h.record(api.ErrCodeInternal, api.NewError(api.ErrCodeInternal, "read gating ignored Empty").
			WithContext("edge", e.Index).
			WithCause(ErrFlagDivergence))
	}
	if res.Request && !res.Accepted {
		h.rejectedR.Add(1)
	}
	if res.Accepted && h.rpredicted {
		seq := h.rpending
		if stamp := h.stamps[seq%h.depth].Load(); stamp != seq+1 {
			h.record(api.ErrCodeDesync, api.NewError(api.ErrCodeDesync, "read slot not written in current lap").
				WithContext("slot", seq%h.depth).
				WithContext("read", seq).
				WithContext("stamp", stamp))
		}
		if w := h.wseq.Load(); w <= seq || w-seq > h.depth {
			h.record(api.ErrCodeDesync, api.NewError(api.ErrCodeDesync, "pointer distance out of range").
				WithContext("write", w).
				WithContext("read", seq))
		}
		if err := h.board.Check(res.Data); err != nil {
			h.record(api.ErrCodeMismatch, err)
		}
		h.read.Add(1)
	}
	if h.model != nil {
		accepted, empty := h.model.Read(res.Request)
		if accepted != res.Accepted || empty != res.Empty {
			h.record(api.ErrCodeInternal, api.NewError(api.ErrCodeInternal, "read edge diverged from model").
				WithContext("edge", e.Index).
				WithContext("time", e.Time).
				WithContext("accepted", fmt.Sprintf("%v/%v", res.Accepted, accepted)).
				WithContext("empty", fmt.Sprintf("%v/%v", res.Empty, empty)).
				WithCause(ErrFlagDivergence))
		}
	}
}

// DomainReset implements sched.Driver. A reset discards outstanding data
// and suspends stimulus until both domains are back in step.
func (h *Harness) DomainReset(e sched.Edge) {
	h.mu.Lock()
	h.quarantine = true
	h.idleLeft = [2]int{settleEdges, settleEdges}
	h.resets[e.Domain]++
	h.mu.Unlock()

	switch e.Domain {
	case api.DomainWrite:
		h.wseq.Store(0)
		for i := range h.stamps {
			h.stamps[i].Store(0)
		}
		h.lastFull.Store(false)
		if h.model != nil {
			h.model.ResetWrite()
		}
	case api.DomainRead:
		h.rseq.Store(0)
		h.lastEmpty.Store(true)
		if h.model != nil {
			h.model.ResetRead()
		}
	}
	h.board.Clear()
}

// Finished implements sched.Driver.
func (h *Harness) Finished() bool {
	h.mu.Lock()
	q := h.quarantine
	h.mu.Unlock()
	return !q && h.stim.Done(h.status())
}

// Report summarizes the run so far.
func (h *Harness) Report() Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Report{
		Written:        h.written.Load(),
		Read:           h.read.Load(),
		RejectedWrites: h.rejectedW.Load(),
		RejectedReads:  h.rejectedR.Load(),
		Mismatches:     h.board.Mismatches(),
		Desyncs:        h.desyncs,
		FlagErrors:     h.flagErrors,
		FirstFullAt:    h.firstFull.Load(),
		Resets:         h.resets,
		Outstanding:    h.board.Outstanding(),
		FinalFull:      h.lastFull.Load(),
		FinalEmpty:     h.lastEmpty.Load(),
		Errors:         append([]error(nil), h.errs...),
	}
}
