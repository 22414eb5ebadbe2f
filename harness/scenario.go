// File: harness/scenario.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/core/fifo"
	"github.com/momentics/hioload-cdc/core/sched"
	"github.com/momentics/hioload-cdc/facade"
	"github.com/momentics/hioload-cdc/internal/logging"
)

// Scenario is a named, reproducible verification run.
type Scenario struct {
	Name       string
	Config     fifo.Config
	WriteClock sched.Clock
	ReadClock  sched.Clock
	TieBreak   sched.TieBreak
	Resets     []sched.ResetEvent
	Seed       int64
	MaxTime    uint64
	// Stimulus builds a fresh stimulus for each run.
	Stimulus func() Stimulus
}

func (s Scenario) facadeConfig() *facade.Config {
	cfg := facade.DefaultConfig()
	cfg.FIFO = s.Config
	cfg.WriteClock = s.WriteClock
	cfg.ReadClock = s.ReadClock
	cfg.TieBreak = s.TieBreak
	cfg.Resets = s.Resets
	cfg.Seed = s.Seed
	if s.MaxTime > 0 {
		cfg.MaxTime = s.MaxTime
	}
	return cfg
}

func (s Scenario) startSpan(ctx context.Context, mode string) (context.Context, trace.Span, string) {
	runID := uuid.New().String()
	ctx, span := otel.Tracer("hioload-cdc/harness").Start(ctx, "harness.Scenario."+mode,
		trace.WithAttributes(
			attribute.String("scenario", s.Name),
			attribute.String("run_id", runID),
			attribute.Int("fifo.depth", s.Config.Depth()),
			attribute.Int64("seed", s.Seed),
		))
	return ctx, span, runID
}

// finish compares final occupancy, closes the span and logs the outcome.
func (s Scenario) finish(span trace.Span, cdc *facade.CDC, rep *Report, runErr error) error {
	defer span.End()
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "run aborted")
		return fmt.Errorf("scenario %s: %w", s.Name, runErr)
	}
	if got := cdc.FIFO().Outstanding(); got != rep.Outstanding {
		rep.Desyncs++
		rep.Errors = append(rep.Errors, api.NewError(api.ErrCodeDesync, "final occupancy disagrees with scoreboard").
			WithContext("fifo", got).
			WithContext("scoreboard", rep.Outstanding))
	}
	span.SetAttributes(
		attribute.Int64("written", int64(rep.Written)),
		attribute.Int64("read", int64(rep.Read)),
		attribute.Bool("passed", rep.Passed()),
	)
	if !rep.Passed() {
		span.SetStatus(codes.Error, "verification failed")
	}
	logging.Logger(logging.ComponentHarness).Info("scenario finished",
		"scenario", s.Name,
		"run_id", rep.RunID,
		"written", rep.Written,
		"read", rep.Read,
		"passed", rep.Passed())
	return nil
}

// checkResets rejects reset schedules that hold only one domain in reset.
// The harness quarantines both domains after a reset and resumes once both
// pointers are back at zero, which a one-sided reset never reaches.
func (s Scenario) checkResets() error {
	if len(s.Resets) == 0 {
		return nil
	}
	var write, read bool
	for _, ev := range s.Resets {
		switch ev.Domain {
		case api.DomainWrite:
			write = true
		case api.DomainRead:
			read = true
		}
	}
	if write && read {
		return nil
	}
	return api.NewError(api.ErrCodeNotSupported, "scheduled resets must cover both domains").
		WithContext("scenario", s.Name).
		WithContext("write", write).
		WithContext("read", read)
}

// Run executes the scenario under the deterministic scheduler with the
// reference model enabled. The returned error reports setup or scheduling
// failures; check failures are in the Report.
func (s Scenario) Run(ctx context.Context) (Report, error) {
	if err := s.checkResets(); err != nil {
		return Report{Scenario: s.Name}, err
	}
	ctx, span, runID := s.startSpan(ctx, "Run")
	cdc, err := facade.New(s.facadeConfig())
	if err != nil {
		span.End()
		return Report{Scenario: s.Name, RunID: runID}, err
	}
	h := New(s.Config, s.Stimulus(), true)
	runErr := cdc.Simulate(ctx, h)
	rep := h.Report()
	rep.Scenario, rep.RunID = s.Name, runID
	return rep, s.finish(span, cdc, &rep, runErr)
}

// RunConcurrent executes the scenario with each domain on its own goroutine.
// Clock settings are ignored and the reference model is disabled, since
// edge interleaving is up to the Go scheduler.
func (s Scenario) RunConcurrent(ctx context.Context, rc sched.RunnerConfig) (Report, error) {
	if len(s.Resets) > 0 {
		return Report{Scenario: s.Name}, api.NewError(api.ErrCodeNotSupported, "scheduled resets need the deterministic scheduler").
			WithContext("scenario", s.Name)
	}
	ctx, span, runID := s.startSpan(ctx, "RunConcurrent")
	cfg := s.facadeConfig()
	cfg.Runner = rc
	cdc, err := facade.New(cfg)
	if err != nil {
		span.End()
		return Report{Scenario: s.Name, RunID: runID}, err
	}
	h := New(s.Config, s.Stimulus(), false)
	runErr := cdc.RunConcurrent(ctx, h)
	rep := h.Report()
	rep.Scenario, rep.RunID = s.Name, runID
	return rep, s.finish(span, cdc, &rep, runErr)
}

var (
	fastWrite = sched.Clock{Period: 3}
	slowRead  = sched.Clock{Period: 7, Phase: 1}
)

func phased(pattern Pattern, phases ...Phase) func() Stimulus {
	return func() Stimulus { return NewPhased(pattern, phases...) }
}

func random(seed int64, count uint64, pw, pr float64) func() Stimulus {
	return func() Stimulus { return NewRandom(seed, count, pw, pr) }
}

// Catalogue returns the built-in scenarios.
func Catalogue() []Scenario {
	def := fifo.DefaultConfig()
	scenarios := []Scenario{
		{
			Name:       "sequential",
			Config:     def,
			WriteClock: sched.Clock{Period: 10},
			ReadClock:  sched.Clock{Period: 10, Phase: 5},
			Stimulus:   phased(Offset(0xA0), Fill(4), Drain()),
		},
		{
			Name:       "full-fill",
			Config:     def,
			WriteClock: fastWrite,
			ReadClock:  slowRead,
			Stimulus:   phased(Offset(0), Fill(16), Probe(17), Drain()),
		},
		{
			Name:       "full-drain",
			Config:     def,
			WriteClock: sched.Clock{Period: 5},
			ReadClock:  sched.Clock{Period: 2},
			Stimulus:   phased(Offset(0x100), Fill(16), Drain(), Fill(32), Drain()),
		},
		{
			Name:       "wraparound",
			Config:     def,
			WriteClock: sched.Clock{Period: 4},
			ReadClock:  sched.Clock{Period: 9, Phase: 2},
			Stimulus:   phased(Offset(1), Fill(16), Drain(), Fill(32), Drain(), Fill(48), Drain()),
		},
		{
			Name:       "saturated-fast-write",
			Config:     def,
			WriteClock: fastWrite,
			ReadClock:  slowRead,
			Seed:       3,
			Stimulus:   func() Stimulus { return Saturated(3, 20) },
		},
		{
			Name:       "saturated-fast-read",
			Config:     def,
			WriteClock: sched.Clock{Period: 7},
			ReadClock:  sched.Clock{Period: 3, Phase: 2},
			Seed:       5,
			Stimulus:   func() Stimulus { return Saturated(5, 20) },
		},
		{
			Name:       "saturated-equal-random-tie",
			Config:     def,
			WriteClock: sched.Clock{Period: 5},
			ReadClock:  sched.Clock{Period: 5},
			TieBreak:   sched.RandomOrder,
			Seed:       7,
			Stimulus:   func() Stimulus { return Saturated(7, 20) },
		},
		{
			Name:       "saturated-jitter",
			Config:     def,
			WriteClock: sched.Clock{Period: 11, Jitter: 4},
			ReadClock:  sched.Clock{Period: 13, Phase: 6, Jitter: 5},
			Seed:       11,
			Stimulus:   func() Stimulus { return Saturated(11, 200) },
		},
		{
			Name:       "reset-midstream",
			Config:     def,
			WriteClock: sched.Clock{Period: 10},
			ReadClock:  sched.Clock{Period: 17, Phase: 3},
			Resets: []sched.ResetEvent{
				{Domain: api.DomainWrite, At: 600, Hold: 2},
				{Domain: api.DomainRead, At: 640, Hold: 2},
			},
			Seed:     13,
			Stimulus: random(13, 400, 0.7, 0.6),
		},
		{
			Name:       "long-wrap",
			Config:     fifo.Config{DataWidth: 16, AddrWidth: 2},
			WriteClock: sched.Clock{Period: 6},
			ReadClock:  sched.Clock{Period: 7, Phase: 3},
			Seed:       17,
			Stimulus:   func() Stimulus { return Saturated(17, 1000) },
		},
		{
			Name:       "narrow-data",
			Config:     fifo.Config{DataWidth: 3, AddrWidth: 3},
			WriteClock: sched.Clock{Period: 4, Jitter: 1},
			ReadClock:  sched.Clock{Period: 5, Jitter: 2},
			Seed:       19,
			Stimulus:   random(19, 300, 0.8, 0.8),
		},
	}
	for _, seed := range []int64{21, 42, 1337} {
		scenarios = append(scenarios, Scenario{
			Name:       fmt.Sprintf("random-%d", seed),
			Config:     def,
			WriteClock: sched.Clock{Period: 8, Jitter: 3},
			ReadClock:  sched.Clock{Period: 9, Phase: 4, Jitter: 3},
			TieBreak:   sched.RandomOrder,
			Seed:       seed,
			Stimulus:   random(seed, 500, 0.6, 0.55),
		})
	}
	return scenarios
}

// Lookup returns the catalogue scenario with the given name.
func Lookup(name string) (Scenario, error) {
	for _, s := range Catalogue() {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// Names lists catalogue scenario names in sorted order.
func Names() []string {
	var names []string
	for _, s := range Catalogue() {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}
