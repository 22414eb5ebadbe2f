package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/core/fifo"
	"github.com/momentics/hioload-cdc/core/sched"
	"github.com/momentics/hioload-cdc/fake"
)

func TestScoreboard(t *testing.T) {
	sb := NewScoreboard()
	sb.Expect(1)
	sb.Expect(2)
	if sb.Outstanding() != 2 {
		t.Fatalf("outstanding = %d", sb.Outstanding())
	}
	if err := sb.Check(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sb.Check(3); !errors.Is(err, api.ErrMismatch) {
		t.Fatalf("got %v, want ErrMismatch", err)
	}
	if err := sb.Check(4); !errors.Is(err, ErrUnexpectedRead) {
		t.Fatalf("got %v, want ErrUnexpectedRead", err)
	}
	if sb.Mismatches() != 2 {
		t.Errorf("mismatches = %d", sb.Mismatches())
	}
	sb.Expect(5)
	sb.Clear()
	if sb.Outstanding() != 0 {
		t.Error("Clear kept expectations")
	}
}

func TestModelSyncLatency(t *testing.T) {
	m := NewModel(fifo.DefaultConfig())
	if acc, full := m.Write(true); !acc || full {
		t.Fatalf("write: accepted=%v full=%v", acc, full)
	}
	for i := 0; i < 2; i++ {
		if _, empty := m.Read(false); !empty {
			t.Fatalf("empty cleared after %d read edges", i+1)
		}
	}
	if _, empty := m.Read(false); empty {
		t.Fatal("empty still set after 3 read edges")
	}
	if acc, empty := m.Read(true); !acc || !empty {
		t.Fatalf("read: accepted=%v empty=%v", acc, empty)
	}
}

func TestModelFullAtDepth(t *testing.T) {
	m := NewModel(fifo.DefaultConfig())
	for i := 1; i <= 16; i++ {
		acc, full := m.Write(true)
		if !acc {
			t.Fatalf("write %d rejected", i)
		}
		if full != (i == 16) {
			t.Fatalf("write %d: full=%v", i, full)
		}
	}
	if acc, _ := m.Write(true); acc {
		t.Fatal("write accepted while full")
	}
	m.ResetWrite()
	if acc, full := m.Write(true); !acc || full {
		t.Fatalf("after reset: accepted=%v full=%v", acc, full)
	}
}

func TestPhasedStimulus(t *testing.T) {
	p := NewPhased(Offset(0x10), Fill(2), Drain())
	st := Status{}
	if wr, d := p.Write(st); !wr || d != 0x10 {
		t.Fatalf("write = %v %#x", wr, d)
	}
	if p.Read(st) {
		t.Fatal("read during fill")
	}
	st = Status{Written: 2, Outstanding: 2}
	if wr, _ := p.Write(st); wr {
		t.Fatal("write during drain")
	}
	if !p.Read(st) {
		t.Fatal("no read during drain")
	}
	if p.Done(st) {
		t.Fatal("done with words outstanding")
	}
	if !p.Done(Status{Written: 2, Read: 2}) {
		t.Fatal("not done after drain")
	}
}

func TestRandomStimulusReproducible(t *testing.T) {
	a, b := NewRandom(99, 50, 0.5, 0.5), NewRandom(99, 50, 0.5, 0.5)
	for i := 0; i < 200; i++ {
		st := Status{Written: uint64(i / 4)}
		wa, da := a.Write(st)
		wb, db := b.Write(st)
		if wa != wb || da != db || a.Read(st) != b.Read(st) {
			t.Fatalf("diverged at step %d", i)
		}
	}
	if !a.Done(Status{Written: 50}) || a.Done(Status{Written: 50, Outstanding: 1}) {
		t.Fatal("unexpected Done")
	}
}

func TestCatalogue(t *testing.T) {
	for _, sc := range Catalogue() {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			rep, err := sc.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if !rep.Passed() {
				t.Fatalf("checks failed: %v", rep.Err())
			}
			if rep.Outstanding != 0 {
				t.Errorf("outstanding = %d", rep.Outstanding)
			}
			if !rep.FinalEmpty {
				t.Error("empty not asserted after drain")
			}
		})
	}
}

func TestScenarioExpectations(t *testing.T) {
	tests := []struct {
		name      string
		written   uint64
		read      uint64
		firstFull uint64
		rejectedW uint64
	}{
		{"sequential", 4, 4, 0, 0},
		{"full-fill", 16, 16, 16, 1},
		{"wraparound", 48, 48, 16, 0},
		{"full-drain", 32, 32, 16, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := Lookup(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			rep, err := sc.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if rep.Written != tt.written || rep.Read != tt.read {
				t.Errorf("written/read = %d/%d, want %d/%d", rep.Written, rep.Read, tt.written, tt.read)
			}
			if rep.FirstFullAt != tt.firstFull {
				t.Errorf("first full at %d, want %d", rep.FirstFullAt, tt.firstFull)
			}
			if rep.RejectedWrites != tt.rejectedW {
				t.Errorf("rejected writes = %d, want %d", rep.RejectedWrites, tt.rejectedW)
			}
		})
	}
}

func TestScenarioResetMidstream(t *testing.T) {
	sc, err := Lookup("reset-midstream")
	if err != nil {
		t.Fatal(err)
	}
	rep, err := sc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Passed() {
		t.Fatalf("checks failed: %v", rep.Err())
	}
	// One initial reset edge plus a hold of two.
	if rep.Resets != [2]uint64{3, 3} {
		t.Errorf("resets = %v", rep.Resets)
	}
	if rep.Written < 400 {
		t.Errorf("written = %d", rep.Written)
	}
	again, err := sc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if rep.RunID == "" || rep.RunID == again.RunID {
		t.Errorf("run ids %q and %q not unique", rep.RunID, again.RunID)
	}
	if again.Written != rep.Written || again.Read != rep.Read || again.RejectedReads != rep.RejectedReads {
		t.Error("seeded scenario not reproducible")
	}
}

func TestScenarioConcurrent(t *testing.T) {
	for _, name := range []string{"sequential", "full-fill", "wraparound", "long-wrap", "random-42"} {
		t.Run(name, func(t *testing.T) {
			sc, err := Lookup(name)
			if err != nil {
				t.Fatal(err)
			}
			rep, err := sc.RunConcurrent(context.Background(), sched.DefaultRunnerConfig())
			if err != nil {
				t.Fatal(err)
			}
			if !rep.Passed() {
				t.Fatalf("checks failed: %v", rep.Err())
			}
			if rep.Written != rep.Read {
				t.Errorf("written %d, read %d", rep.Written, rep.Read)
			}
		})
	}
}

func TestScenarioConcurrentRejectsResets(t *testing.T) {
	sc, err := Lookup("reset-midstream")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sc.RunConcurrent(context.Background(), sched.DefaultRunnerConfig()); !errors.Is(err, api.ErrNotSupported) {
		t.Fatalf("got %v, want ErrNotSupported", err)
	}
}

func TestScenarioRejectsOneSidedReset(t *testing.T) {
	for _, d := range []api.Domain{api.DomainWrite, api.DomainRead} {
		sc, err := Lookup("reset-midstream")
		if err != nil {
			t.Fatal(err)
		}
		sc.Resets = []sched.ResetEvent{{Domain: d, At: 600, Hold: 2}}
		sc.MaxTime = 1 << 40

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = sc.Run(ctx)
		cancel()
		if !errors.Is(err, api.ErrNotSupported) {
			t.Fatalf("reset of %v only: got %v, want ErrNotSupported", d, err)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); !errors.Is(err, ErrUnknownScenario) {
		t.Fatalf("got %v", err)
	}
	if len(Names()) != len(Catalogue()) {
		t.Fatal("Names and Catalogue disagree")
	}
}

func TestHarnessDetectsCorruption(t *testing.T) {
	f, err := fifo.New(fifo.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	h := New(f.Config(), NewPhased(Offset(0), Fill(8), Drain()), false)
	s, err := sched.NewDualClockScheduler(f.Write(), fake.CorruptReadPort{ReadPort: f.Read(), Mask: 1},
		sched.Clock{Period: 3}, sched.Clock{Period: 5})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(context.Background(), h); err != nil {
		t.Fatal(err)
	}
	rep := h.Report()
	if rep.Mismatches != 8 || rep.Passed() {
		t.Fatalf("mismatches = %d", rep.Mismatches)
	}
	if !errors.Is(rep.Err(), api.ErrMismatch) {
		t.Fatalf("report error %v does not carry ErrMismatch", rep.Err())
	}
}

func TestHarnessDetectsIgnoredFull(t *testing.T) {
	f, err := fifo.New(fifo.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	h := New(f.Config(), NewPhased(Offset(0), Fill(16), Probe(20), Drain()), false)
	s, err := sched.NewDualClockScheduler(fake.BlindWritePort{WritePort: f.Write()}, f.Read(),
		sched.Clock{Period: 3}, sched.Clock{Period: 5}, sched.WithMaxTime(5000))
	if err != nil {
		t.Fatal(err)
	}
	// Rejected writes were counted as expected, so the drain never completes.
	if err := s.Run(context.Background(), h); !errors.Is(err, sched.ErrTimeLimit) {
		t.Fatalf("got %v, want ErrTimeLimit", err)
	}
	rep := h.Report()
	if rep.FlagErrors == 0 || rep.Passed() {
		t.Fatalf("flag errors = %d", rep.FlagErrors)
	}
}

func TestHarnessDetectsLostWord(t *testing.T) {
	f, err := fifo.New(fifo.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	h := New(f.Config(), NewPhased(Offset(0x40), Fill(12), Drain()), false)
	rec := &fake.RecordingReadPort{ReadPort: f.Read()}
	s, err := sched.NewDualClockScheduler(&fake.DroppingWritePort{WritePort: f.Write(), N: 5}, rec,
		sched.Clock{Period: 3}, sched.Clock{Period: 5}, sched.WithMaxTime(5000))
	if err != nil {
		t.Fatal(err)
	}
	// Two of twelve words never reach the FIFO, so the drain stalls.
	if err := s.Run(context.Background(), h); !errors.Is(err, sched.ErrTimeLimit) {
		t.Fatalf("got %v, want ErrTimeLimit", err)
	}
	rep := h.Report()
	if rep.Mismatches == 0 || rep.Passed() {
		t.Fatalf("mismatches = %d", rep.Mismatches)
	}
	if got := len(rec.Seen()); got != 10 {
		t.Errorf("read %d words, want 10", got)
	}
}
