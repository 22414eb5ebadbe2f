// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for hioload-cdc components.

package benchmarks

import (
	"context"
	"testing"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/core/fifo"
	"github.com/momentics/hioload-cdc/core/sched"
	"github.com/momentics/hioload-cdc/facade"
	"github.com/momentics/hioload-cdc/harness"
)

// BenchmarkWriteReadTick measures one write and one read tick on a FIFO
// kept half full.
func BenchmarkWriteReadTick(b *testing.B) {
	f, err := fifo.New(fifo.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	w, r := f.Write(), f.Read()
	for i := 0; i < 8; i++ {
		w.Tick(true, api.Word(i))
	}
	for i := 0; i < 3; i++ {
		r.Tick(false)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Tick(true, api.Word(i))
		r.Tick(true)
	}
}

// BenchmarkGrayConversion tests the encode/decode pair used on every edge.
func BenchmarkGrayConversion(b *testing.B) {
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink ^= fifo.FromGray(fifo.ToGray(uint64(i)))
	}
	_ = sink
}

// BenchmarkConcurrentTransfer tests cross-goroutine throughput through the
// facade, one word per benchmark iteration.
func BenchmarkConcurrentTransfer(b *testing.B) {
	cfg := facade.DefaultConfig()
	cfg.FIFO = fifo.Config{DataWidth: 64, AddrWidth: 8}
	cfg.EnableDebug = false
	cdc, err := facade.New(cfg)
	if err != nil {
		b.Fatal(err)
	}
	h := harness.New(cfg.FIFO, harness.Saturated(1, uint64(b.N)), false)

	b.ResetTimer()
	if err := cdc.RunConcurrent(context.Background(), h); err != nil {
		b.Fatal(err)
	}
	if rep := h.Report(); !rep.Passed() {
		b.Fatal(rep.Err())
	}
}

// BenchmarkSimulatedScenario tests the deterministic scheduler with the
// reference model enabled.
func BenchmarkSimulatedScenario(b *testing.B) {
	sc, err := harness.Lookup("random-42")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sc.Run(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSchedulerStep tests raw edge delivery with an idle driver.
func BenchmarkSchedulerStep(b *testing.B) {
	f, err := fifo.New(fifo.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	s, err := sched.NewDualClockScheduler(f.Write(), f.Read(), sched.Clock{Period: 3}, sched.Clock{Period: 5})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(sched.Idle{})
	}
}
