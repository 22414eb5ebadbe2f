// File: core/sched/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package sched drives the two clock domains of a dual-clock FIFO.
//
// DualClockScheduler is a deterministic, single-threaded simulator. Each
// domain has its own Clock (period, phase, jitter); edges are delivered in
// time order and simultaneous edges are ordered by a TieBreak policy. There
// is no global tick: every edge belongs to exactly one domain.
//
// ConcurrentRunner runs each domain on its own goroutine, optionally pinned
// to a CPU, so that relative skew comes from the Go and OS schedulers.
//
// Both move each domain through the RESET and RUNNING states independently.
package sched
