// File: harness/scoreboard.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import (
	"fmt"
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-cdc/api"
)

// Scoreboard is the ordered expectation queue of enqueued words. Safe for
// one pushing and one checking goroutine.
type Scoreboard struct {
	mu         sync.Mutex
	pending    *queue.Queue
	checked    uint64
	mismatches uint64
}

// NewScoreboard returns an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{pending: queue.New()}
}

// Expect appends an accepted write.
func (s *Scoreboard) Expect(w api.Word) {
	s.mu.Lock()
	s.pending.Add(w)
	s.mu.Unlock()
}

// Check pops the queue head and compares it with a dequeued word.
func (s *Scoreboard) Check(got api.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checked++
	if s.pending.Length() == 0 {
		s.mismatches++
		return api.NewError(api.ErrCodeMismatch, "dequeued word with nothing outstanding").
			WithContext("got", fmt.Sprintf("%#x", got)).
			WithCause(ErrUnexpectedRead)
	}
	want := s.pending.Remove().(api.Word)
	if got != want {
		s.mismatches++
		return api.NewError(api.ErrCodeMismatch, "dequeued word differs from expectation").
			WithContext("got", fmt.Sprintf("%#x", got)).
			WithContext("want", fmt.Sprintf("%#x", want)).
			WithContext("read", s.checked)
	}
	return nil
}

// Outstanding returns the number of expected words not yet dequeued.
func (s *Scoreboard) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Length()
}

// Mismatches returns the number of failed checks.
func (s *Scoreboard) Mismatches() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mismatches
}

// Clear drops all expectations, used when a reset discards FIFO content.
func (s *Scoreboard) Clear() {
	s.mu.Lock()
	s.pending = queue.New()
	s.mu.Unlock()
}
