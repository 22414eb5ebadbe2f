// File: internal/concurrency/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cross-platform CPU affinity for the goroutines that run clock domains.

package concurrency

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-cdc/internal/logging"
)

// NoCPU disables pinning.
const NoCPU = -1

// NumCPUs returns the number of logical CPUs.
func NumCPUs() int {
	return runtime.NumCPU()
}

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to cpuID. cpuID == NoCPU only locks the thread.
// The caller must invoke the returned release function on the same goroutine.
func PinCurrentThread(cpuID int) (release func(), err error) {
	runtime.LockOSThread()
	if cpuID == NoCPU {
		return runtime.UnlockOSThread, nil
	}
	if cpuID < 0 || cpuID >= NumCPUs() {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("pin cpu %d: %w", cpuID, ErrInvalidCPU)
	}
	restore, err := platformPinCurrentThread(cpuID)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("pin cpu %d: %w", cpuID, err)
	}
	logging.Debug(logging.ComponentAffinity, "thread pinned", "cpu", cpuID)
	return func() {
		if err := restore(); err != nil {
			logging.Warn(logging.ComponentAffinity, "restore affinity failed", "cpu", cpuID, "err", err)
		}
		runtime.UnlockOSThread()
	}, nil
}
