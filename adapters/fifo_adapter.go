// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Exposes FIFO counters and published pointers through api.Control.

package adapters

import (
	"github.com/momentics/hioload-cdc/api"
	"github.com/momentics/hioload-cdc/core/fifo"
)

// FIFOConfig flattens the FIFO geometry into frozen config keys.
func FIFOConfig(cfg fifo.Config) map[string]any {
	return map[string]any{
		"fifo.depth":      cfg.Depth(),
		"fifo.data_width": cfg.DataWidth,
		"fifo.addr_width": cfg.AddrWidth,
	}
}

// BindFIFO registers debug probes that read only state safe to observe
// while both domains run: atomic counters and published Gray pointers.
func BindFIFO(ctrl api.Control, f *fifo.FIFO) {
	ctrl.RegisterDebugProbe("fifo.write.published_gray", func() any { return f.PublishedWrite() })
	ctrl.RegisterDebugProbe("fifo.read.published_gray", func() any { return f.PublishedRead() })
	ctrl.RegisterDebugProbe("fifo.in_flight", func() any {
		mask := uint64(f.Depth())<<1 - 1
		w := fifo.FromGray(f.PublishedWrite())
		r := fifo.FromGray(f.PublishedRead())
		return (w - r) & mask
	})
}

// PublishFIFOMetrics copies the domain counters into the metrics registry,
// one batch per domain.
func PublishFIFOMetrics(ctrl api.Control, f *fifo.FIFO) {
	for prefix, c := range map[string]fifo.CounterSnapshot{
		"fifo.write.": f.Write().Counters(),
		"fifo.read.":  f.Read().Counters(),
	} {
		ctrl.SetMetrics(map[string]any{
			prefix + "ticks":    c.Ticks,
			prefix + "accepted": c.Accepted,
			prefix + "rejected": c.Rejected,
			prefix + "resets":   c.Resets,
		})
	}
}
