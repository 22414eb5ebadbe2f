// File: facade/hioload.go
// Unified facade layer for hioload-cdc.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the CDC struct, which assembles a dual-clock FIFO, its
// control surface and the two ways of clocking it (deterministic simulation
// and concurrent goroutines) behind a single facade, based on immutable
// configuration.

package facade

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/momentics/hioload-cdc/adapters"
	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/core/fifo"
	"github.com/momentics/hioload-cdc/core/sched"
	"github.com/momentics/hioload-cdc/internal/logging"
)

// Config holds parameters immutable per run.
type Config struct {
	FIFO          fifo.Config        // Geometry, fixed at construction
	WriteClock    sched.Clock        // Write-domain clock for simulation
	ReadClock     sched.Clock        // Read-domain clock for simulation
	TieBreak      sched.TieBreak     // Ordering of simultaneous edges
	Seed          int64              // Seed for jitter and random tie breaks
	MaxTime       uint64             // Simulation time budget, 0 for unlimited
	Resets        []sched.ResetEvent // Scheduled domain resets (simulation only)
	Runner        sched.RunnerConfig // Placement and pacing for concurrent runs
	EnableMetrics bool               // Publish FIFO counters after each run
	EnableDebug   bool               // Register pointer debug probes

	// Trace, when set, observes every simulated edge.
	Trace func(sched.Edge, api.DomainState)
}

// DefaultConfig returns default configuration values: a 16x8 FIFO with
// co-prime clock periods.
func DefaultConfig() *Config {
	return &Config{
		FIFO:          fifo.DefaultConfig(),
		WriteClock:    sched.Clock{Period: 10},
		ReadClock:     sched.Clock{Period: 17, Phase: 3},
		TieBreak:      sched.WriteFirst,
		Seed:          1,
		MaxTime:       1 << 30,
		Runner:        sched.DefaultRunnerConfig(),
		EnableMetrics: true,
		EnableDebug:   true,
	}
}

// CDC is the main facade type.
type CDC struct {
	config  *Config
	fifo    *fifo.FIFO
	control *adapters.ControlAdapter

	mu      sync.Mutex // serializes runs
	running bool
}

// ErrBusy indicates a run was started while another is in progress.
var ErrBusy = errors.New("facade: run already in progress")

// New constructs the FIFO and its control surface.
func New(cfg *Config) (*CDC, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	f, err := fifo.New(cfg.FIFO)
	if err != nil {
		return nil, err
	}
	c := &CDC{
		config:  cfg,
		fifo:    f,
		control: adapters.NewControlAdapter(adapters.FIFOConfig(cfg.FIFO)),
	}
	if cfg.EnableDebug {
		adapters.BindFIFO(c.control, f)
	}
	if err := c.control.SetConfig(map[string]any{
		"clock.write.period": cfg.WriteClock.Period,
		"clock.read.period":  cfg.ReadClock.Period,
		"run.seed":           cfg.Seed,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

// FIFO returns the underlying FIFO.
func (c *CDC) FIFO() *fifo.FIFO {
	return c.fifo
}

// GetControl returns the Control interface for config and metrics.
func (c *CDC) GetControl() api.Control {
	return c.control
}

func (c *CDC) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return ErrBusy
	}
	c.running = true
	return nil
}

func (c *CDC) end() {
	if c.config.EnableMetrics {
		adapters.PublishFIFOMetrics(c.control, c.fifo)
	}
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

// Simulate clocks both domains with the deterministic scheduler until drv
// finishes.
func (c *CDC) Simulate(ctx context.Context, drv sched.Driver) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	opts := []sched.Option{
		sched.WithSeed(c.config.Seed),
		sched.WithTieBreak(c.config.TieBreak),
		sched.WithMaxTime(c.config.MaxTime),
		sched.WithResets(c.config.Resets...),
	}
	if c.config.Trace != nil {
		opts = append(opts, sched.WithTrace(c.config.Trace))
	}
	s, err := sched.NewDualClockScheduler(c.fifo.Write(), c.fifo.Read(),
		c.config.WriteClock, c.config.ReadClock, opts...)
	if err != nil {
		return err
	}
	if err := s.Run(ctx, drv); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	return nil
}

// RunConcurrent clocks each domain on its own goroutine until drv finishes.
// Scheduled resets are not supported here.
func (c *CDC) RunConcurrent(ctx context.Context, drv sched.Driver) error {
	if len(c.config.Resets) > 0 {
		return fmt.Errorf("run concurrent: scheduled resets: %w", api.ErrNotSupported)
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	r := sched.NewConcurrentRunner(c.fifo.Write(), c.fifo.Read(), c.config.Runner)
	if err := r.Run(ctx, drv); err != nil {
		return fmt.Errorf("run concurrent: %w", err)
	}
	logging.Debug(logging.ComponentSched, "concurrent run stats", "stats", c.control.Stats())
	return nil
}
