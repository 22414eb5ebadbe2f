// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration snapshot, runtime metrics and debug introspection for the
// dual-clock FIFO and its schedulers.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with read-only geometry keys
//   - Reload listeners for mutable keys
//   - Metrics registry fed from FIFO counters
//   - Debug probes exposing pointer and synchronizer state
package control
