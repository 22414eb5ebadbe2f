// File: core/sched/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Deterministic time-stepped simulator for two independently clocked domains.

package sched

import (
	"context"
	"math/rand"
	"sort"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/internal/logging"
)

// TieBreak orders edges of both domains that fall on the same instant.
type TieBreak int

const (
	WriteFirst TieBreak = iota
	ReadFirst
	RandomOrder
)

// ResetEvent holds a domain in reset for Hold of its own edges, starting at
// its first edge at or after At.
type ResetEvent struct {
	Domain api.Domain
	At     uint64
	Hold   uint64
}

// Option customizes a DualClockScheduler.
type Option func(*DualClockScheduler)

// WithSeed seeds jitter and random tie breaking.
func WithSeed(seed int64) Option {
	return func(s *DualClockScheduler) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithTieBreak sets the ordering of simultaneous edges.
func WithTieBreak(tb TieBreak) Option {
	return func(s *DualClockScheduler) {
		s.tie = tb
	}
}

// WithResets schedules domain resets.
func WithResets(events ...ResetEvent) Option {
	return func(s *DualClockScheduler) {
		s.resets = append(s.resets, events...)
	}
}

// WithInitialReset sets how many edges each domain spends in reset at start.
// The default is one edge per domain.
func WithInitialReset(write, read uint64) Option {
	return func(s *DualClockScheduler) {
		s.initial = [2]uint64{write, read}
	}
}

// WithMaxTime bounds Run in simulated time.
func WithMaxTime(t uint64) Option {
	return func(s *DualClockScheduler) {
		s.maxTime = t
	}
}

// WithTrace registers a callback invoked after every edge.
func WithTrace(fn func(e Edge, state api.DomainState)) Option {
	return func(s *DualClockScheduler) {
		s.trace = fn
	}
}

// DualClockScheduler delivers write and read edges in simulated time order.
// Not safe for concurrent use.
type DualClockScheduler struct {
	w       api.WritePort
	r       api.ReadPort
	clocks  [2]Clock
	domains [2]*domain
	next    [2]uint64
	initial [2]uint64
	resets  []ResetEvent
	rng     *rand.Rand
	tie     TieBreak
	maxTime uint64
	trace   func(Edge, api.DomainState)
	now     uint64
}

// NewDualClockScheduler binds the two ports to their clocks.
func NewDualClockScheduler(w api.WritePort, r api.ReadPort, wclk, rclk Clock, opts ...Option) (*DualClockScheduler, error) {
	if err := wclk.Validate(); err != nil {
		return nil, err
	}
	if err := rclk.Validate(); err != nil {
		return nil, err
	}
	s := &DualClockScheduler{
		w:       w,
		r:       r,
		clocks:  [2]Clock{wclk, rclk},
		initial: [2]uint64{1, 1},
		rng:     rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	sort.SliceStable(s.resets, func(i, j int) bool { return s.resets[i].At < s.resets[j].At })
	s.domains[api.DomainWrite] = newDomain(api.DomainWrite, s.initial[api.DomainWrite])
	s.domains[api.DomainRead] = newDomain(api.DomainRead, s.initial[api.DomainRead])
	s.next[api.DomainWrite] = wclk.edgeTime(0, s.rng)
	s.next[api.DomainRead] = rclk.edgeTime(0, s.rng)
	return s, nil
}

// Now returns the time of the last delivered edge.
func (s *DualClockScheduler) Now() uint64 {
	return s.now
}

// State returns the lifecycle state of a domain.
func (s *DualClockScheduler) State(d api.Domain) api.DomainState {
	return s.domains[d].state
}

// Edges returns how many edges a domain has received.
func (s *DualClockScheduler) Edges(d api.Domain) uint64 {
	return s.domains[d].edges
}

// AssertReset holds a domain in reset for hold of its next edges. The other
// domain keeps running.
func (s *DualClockScheduler) AssertReset(d api.Domain, hold uint64) {
	s.domains[d].assert(hold)
}

// pick chooses the domain owning the next edge.
func (s *DualClockScheduler) pick() api.Domain {
	tw, tr := s.next[api.DomainWrite], s.next[api.DomainRead]
	switch {
	case tw < tr:
		return api.DomainWrite
	case tr < tw:
		return api.DomainRead
	}
	switch s.tie {
	case ReadFirst:
		return api.DomainRead
	case RandomOrder:
		if s.rng.Intn(2) == 0 {
			return api.DomainRead
		}
	}
	return api.DomainWrite
}

// applyResets arms scheduled resets that are due for domain d.
func (s *DualClockScheduler) applyResets(d api.Domain, now uint64) {
	kept := s.resets[:0]
	for _, ev := range s.resets {
		if ev.Domain == d && ev.At <= now {
			s.domains[d].assert(ev.Hold)
			logging.Debug(logging.ComponentSched, "reset asserted", "domain", d, "time", now, "hold", ev.Hold)
			continue
		}
		kept = append(kept, ev)
	}
	s.resets = kept
}

// Step delivers exactly one edge and returns it.
func (s *DualClockScheduler) Step(drv Driver) Edge {
	d := s.pick()
	now := s.next[d]
	s.now = now
	s.applyResets(d, now)

	dom := s.domains[d]
	var e Edge
	if d == api.DomainWrite {
		e, _ = dom.writeEdge(s.w, drv, now)
	} else {
		e, _ = dom.readEdge(s.r, drv, now)
	}
	s.next[d] = s.clocks[d].edgeTime(dom.edges, s.rng)
	if s.trace != nil {
		s.trace(e, dom.state)
	}
	return e
}

// Run delivers edges until the driver finishes, the time limit passes or ctx
// is cancelled.
func (s *DualClockScheduler) Run(ctx context.Context, drv Driver) error {
	logging.Info(logging.ComponentSched, "simulation started",
		"write_period", s.clocks[api.DomainWrite].Period,
		"read_period", s.clocks[api.DomainRead].Period)
	for !drv.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.maxTime > 0 && s.now > s.maxTime {
			logging.Warn(logging.ComponentSched, "simulation time limit", "time", s.now)
			return ErrTimeLimit
		}
		s.Step(drv)
	}
	logging.Info(logging.ComponentSched, "simulation finished",
		"time", s.now,
		"write_edges", s.domains[api.DomainWrite].edges,
		"read_edges", s.domains[api.DomainRead].edges)
	return nil
}
