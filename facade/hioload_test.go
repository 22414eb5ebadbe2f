package facade_test

import (
	"context"
	"errors"
	"testing"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/core/fifo"
	"github.com/momentics/hioload-cdc/core/sched"
	"github.com/momentics/hioload-cdc/facade"
)

// countingDriver writes n words then stops once they are all read.
type countingDriver struct {
	sched.Idle
	n, w, r uint64
}

func (d *countingDriver) NextWrite(sched.Edge, bool) (bool, api.Word) {
	return d.w < d.n, api.Word(d.w)
}

func (d *countingDriver) WriteDone(_ sched.Edge, res sched.WriteResult) {
	if res.Accepted {
		d.w++
	}
}

func (d *countingDriver) NextRead(sched.Edge, bool) bool {
	return true
}

func (d *countingDriver) ReadDone(_ sched.Edge, res sched.ReadResult) {
	if res.Accepted {
		d.r++
	}
}

func (d *countingDriver) Finished() bool {
	return d.r == d.n
}

func TestCDCSimulateLifecycle(t *testing.T) {
	var edges int
	cfg := facade.DefaultConfig()
	cfg.Trace = func(sched.Edge, api.DomainState) { edges++ }
	c, err := facade.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Simulate(context.Background(), &countingDriver{n: 40}); err != nil {
		t.Fatal(err)
	}
	if edges == 0 {
		t.Error("trace callback never invoked")
	}
	stats := c.GetControl().Stats()
	if stats["fifo.write.accepted"] != uint64(40) || stats["fifo.read.accepted"] != uint64(40) {
		t.Errorf("unexpected counters: %v / %v", stats["fifo.write.accepted"], stats["fifo.read.accepted"])
	}
	if stats["debug.fifo.in_flight"] != uint64(0) {
		t.Errorf("in_flight = %v after drain", stats["debug.fifo.in_flight"])
	}
	if c.GetControl().GetConfig()["fifo.depth"] != 16 {
		t.Error("geometry missing from config")
	}
}

func TestCDCInvalidConfig(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.FIFO.AddrWidth = 0
	if _, err := facade.New(cfg); !errors.Is(err, fifo.ErrInvalidConfig) {
		t.Fatalf("got %v, want ErrInvalidConfig", err)
	}
}

func TestCDCConcurrentRejectsResets(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.Resets = []sched.ResetEvent{{Domain: api.DomainRead, At: 10, Hold: 1}}
	c, err := facade.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.RunConcurrent(context.Background(), sched.Idle{}); !errors.Is(err, api.ErrNotSupported) {
		t.Fatalf("got %v, want ErrNotSupported", err)
	}
}
