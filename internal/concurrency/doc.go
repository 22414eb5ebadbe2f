// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thread placement for the two clock-domain processes. Each domain runs on
// its own goroutine locked to an OS thread and optionally pinned to a CPU,
// so domain skew comes from real scheduling rather than interleaving order.
package concurrency
