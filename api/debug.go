// Package api
// Author: momentics
//
// Probe registry contract used for pointer and platform introspection.

package api

// Debug collects named probes. Probes may run while both clock domains are
// ticking and must read only atomically published state.
type Debug interface {
	DumpState() map[string]any
	RegisterProbe(name string, fn func() any)
}
