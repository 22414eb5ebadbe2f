// File: harness/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package harness verifies a dual-clock FIFO from the outside.
//
// A Harness is a sched.Driver: it feeds stimulus to both domains, keeps an
// ordered expectation queue of accepted writes (Scoreboard), compares every
// dequeued word against it, and watches for desynchronization (pointer
// distance beyond depth, reads of slots not written in the current lap).
// Under the deterministic scheduler it also runs an independent reference
// Model of the registered flags and checks Full, Empty and acceptance on
// every edge.
package harness
