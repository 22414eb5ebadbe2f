// File: core/sched/runner.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Two-goroutine realization of the dual-clock model. Domains share nothing
// but the FIFO's published Gray pointers and its storage ring.

package sched

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/internal/concurrency"
	"github.com/momentics/hioload-cdc/internal/logging"
)

// RunnerConfig paces and places the two domain goroutines.
type RunnerConfig struct {
	WriteCPU     int    // concurrency.NoCPU to leave unpinned
	ReadCPU      int    // concurrency.NoCPU to leave unpinned
	WriteYield   int    // extra scheduler yields between write edges
	ReadYield    int    // extra scheduler yields between read edges
	InitialReset uint64 // reset edges per domain at start

	// MaxStallEdges bounds the edges a domain may run while neither domain
	// moves data; 0 for unlimited.
	MaxStallEdges uint64
}

// DefaultRunnerConfig leaves both domains unpinned and unthrottled.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WriteCPU:      concurrency.NoCPU,
		ReadCPU:       concurrency.NoCPU,
		InitialReset:  1,
		MaxStallEdges: 1 << 24,
	}
}

// ConcurrentRunner runs each clock domain on its own goroutine.
type ConcurrentRunner struct {
	w   api.WritePort
	r   api.ReadPort
	cfg RunnerConfig
}

// NewConcurrentRunner binds the two ports.
func NewConcurrentRunner(w api.WritePort, r api.ReadPort, cfg RunnerConfig) *ConcurrentRunner {
	return &ConcurrentRunner{w: w, r: r, cfg: cfg}
}

// Run starts both domains and waits until the driver finishes, a domain
// stalls for MaxStallEdges edges, or ctx is cancelled. A domain whose edge
// moved no data yields before its next edge. drv must tolerate its write and
// read methods being called concurrently.
func (cr *ConcurrentRunner) Run(ctx context.Context, drv Driver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg      sync.WaitGroup
		errOnce sync.Once
		runErr  error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			runErr = err
			cancel()
		})
	}
	// progress counts edges, in either domain, that moved data or spent
	// reset time.
	var progress atomic.Uint64

	loop := func(id api.Domain, cpu, yield int, edge func(*domain) bool) {
		defer wg.Done()
		release, err := concurrency.PinCurrentThread(cpu)
		if err != nil {
			logging.Warn(logging.ComponentSched, "domain left unpinned", "domain", id, "cpu", cpu, "err", err)
			release, _ = concurrency.PinCurrentThread(concurrency.NoCPU)
		}
		defer release()

		d := newDomain(id, cr.cfg.InitialReset)
		var stalled, seen uint64
		for !drv.Finished() {
			if ctx.Err() != nil {
				return
			}
			if edge(d) {
				progress.Add(1)
			} else {
				runtime.Gosched()
			}
			for i := 0; i < yield; i++ {
				runtime.Gosched()
			}
			if p := progress.Load(); p != seen {
				seen, stalled = p, 0
				continue
			}
			stalled++
			if cr.cfg.MaxStallEdges > 0 && stalled >= cr.cfg.MaxStallEdges {
				logging.Warn(logging.ComponentSched, "domain stalled", "domain", id, "edges", d.edges)
				fail(ErrTimeLimit)
				return
			}
		}
	}

	logging.Info(logging.ComponentSched, "concurrent run started",
		"write_cpu", cr.cfg.WriteCPU, "read_cpu", cr.cfg.ReadCPU)
	wg.Add(2)
	go loop(api.DomainWrite, cr.cfg.WriteCPU, cr.cfg.WriteYield, func(d *domain) bool {
		_, moved := d.writeEdge(cr.w, drv, 0)
		return moved
	})
	go loop(api.DomainRead, cr.cfg.ReadCPU, cr.cfg.ReadYield, func(d *domain) bool {
		_, moved := d.readEdge(cr.r, drv, 0)
		return moved
	})
	wg.Wait()

	if runErr != nil {
		return runErr
	}
	if !drv.Finished() {
		return ctx.Err()
	}
	logging.Info(logging.ComponentSched, "concurrent run finished")
	return nil
}
