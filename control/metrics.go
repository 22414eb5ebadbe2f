// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector. FIFO domain counters are published here in
// batches, one batch per domain, so a snapshot never mixes two publications
// of the same domain.

package control

import (
	"sync"
	"time"
)

type sample struct {
	value any
	at    time.Time
}

// MetricsRegistry holds the latest value of each metric and when it was set.
type MetricsRegistry struct {
	mu      sync.RWMutex
	samples map[string]sample
	updated time.Time
	batches uint64
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{samples: make(map[string]sample)}
}

// Set records a single metric.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.SetMany(map[string]any{key: value})
}

// SetMany records values as one batch under one timestamp.
func (mr *MetricsRegistry) SetMany(values map[string]any) {
	now := time.Now()
	mr.mu.Lock()
	defer mr.mu.Unlock()
	for k, v := range values {
		mr.samples[k] = sample{value: v, at: now}
	}
	mr.updated = now
	mr.batches++
}

// GetSnapshot returns the latest value of every metric.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.samples))
	for k, s := range mr.samples {
		out[k] = s.value
	}
	return out
}

// Age returns how long ago key was last set.
func (mr *MetricsRegistry) Age(key string) (time.Duration, bool) {
	mr.mu.RLock()
	s, ok := mr.samples[key]
	mr.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return time.Since(s.at), true
}

// Updated returns the time of the last batch.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}

// Batches returns the number of batches recorded.
func (mr *MetricsRegistry) Batches() uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.batches
}
