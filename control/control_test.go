package control

import (
	"errors"
	"testing"
)

func TestConfigStoreFrozenKeys(t *testing.T) {
	cs := NewConfigStore("fifo.")
	cs.Seed(map[string]any{"fifo.depth": 16, "clock.write.period": 10})

	calls := 0
	cs.OnReload(func() { calls++ })

	err := cs.SetConfig(map[string]any{"fifo.depth": 32, "clock.write.period": 7})
	if !errors.Is(err, ErrReadOnlyKey) {
		t.Fatalf("expected ErrReadOnlyKey, got %v", err)
	}
	if v, _ := cs.Get("clock.write.period"); v != 10 {
		t.Error("partial update applied despite frozen key")
	}
	if calls != 0 {
		t.Error("listener called for rejected update")
	}

	if err := cs.SetConfig(map[string]any{"clock.write.period": 7}); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
	snap := cs.GetSnapshot()
	if snap["fifo.depth"] != 16 || snap["clock.write.period"] != 7 {
		t.Errorf("unexpected snapshot %v", snap)
	}
}

func TestMetricsRegistry(t *testing.T) {
	mr := NewMetricsRegistry()
	if !mr.Updated().IsZero() {
		t.Error("fresh registry has update time")
	}
	mr.Set("a", 1)
	mr.SetMany(map[string]any{"b": 2, "c": 3})
	snap := mr.GetSnapshot()
	if len(snap) != 3 || snap["b"] != 2 {
		t.Errorf("unexpected snapshot %v", snap)
	}
	snap["a"] = 99
	if mr.GetSnapshot()["a"] != 1 {
		t.Error("snapshot aliases registry")
	}
	if mr.Batches() != 2 {
		t.Errorf("batches = %d, want 2", mr.Batches())
	}
	if _, ok := mr.Age("a"); !ok {
		t.Error("no age for a recorded key")
	}
	if _, ok := mr.Age("missing"); ok {
		t.Error("age reported for unknown key")
	}
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	RegisterPlatformProbes(dp)
	n := 0
	dp.RegisterProbe("counter", func() any { n++; return n })
	state := dp.DumpState()
	if state["counter"] != 1 {
		t.Errorf("counter probe = %v", state["counter"])
	}
	if cpus, ok := state["platform.cpus"].(int); !ok || cpus < 1 {
		t.Errorf("platform.cpus = %v", state["platform.cpus"])
	}
}
