// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control using control package primitives.

package adapters

import (
	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/control"
)

// FrozenPrefix marks configuration keys fixed at construction.
const FrozenPrefix = "fifo."

// Compile-time interface compliance.
var _ api.Control = (*ControlAdapter)(nil)

type ControlAdapter struct {
	config  *control.ConfigStore
	metrics *control.MetricsRegistry
	debug   *control.DebugProbes
}

// NewControlAdapter returns a control surface seeded with initial config.
func NewControlAdapter(initial map[string]any) *ControlAdapter {
	adapter := &ControlAdapter{
		config:  control.NewConfigStore(FrozenPrefix),
		metrics: control.NewMetricsRegistry(),
		debug:   control.NewDebugProbes(),
	}
	adapter.config.Seed(initial)
	control.RegisterPlatformProbes(adapter.debug)
	return adapter
}

func (c *ControlAdapter) GetConfig() map[string]any {
	return c.config.GetSnapshot()
}

func (c *ControlAdapter) SetConfig(cfg map[string]any) error {
	return c.config.SetConfig(cfg)
}

func (c *ControlAdapter) Stats() map[string]any {
	stats := c.metrics.GetSnapshot()
	debugStats := c.debug.DumpState()
	combined := make(map[string]any, len(stats)+len(debugStats))
	for k, v := range stats {
		combined[k] = v
	}
	for k, v := range debugStats {
		combined["debug."+k] = v
	}
	return combined
}

func (c *ControlAdapter) OnReload(fn func()) {
	c.config.OnReload(fn)
}

func (c *ControlAdapter) SetMetric(key string, value any) {
	c.metrics.Set(key, value)
}

func (c *ControlAdapter) SetMetrics(values map[string]any) {
	c.metrics.SetMany(values)
}

func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}
