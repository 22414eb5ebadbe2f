// File: api/control.go
// Package api defines the Control surface of a FIFO instance.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// Control exposes construction-time geometry, runtime settings, domain
// counters and debug probes. Keys under "fifo." are read-only.
type Control interface {
	GetConfig() map[string]any
	SetConfig(cfg map[string]any) error
	OnReload(fn func())

	// Stats merges metrics with probe output; probe keys carry a "debug." prefix.
	Stats() map[string]any
	SetMetric(key string, value any)
	// SetMetrics records values as one batch.
	SetMetrics(values map[string]any)
	RegisterDebugProbe(name string, fn func() any)
}
