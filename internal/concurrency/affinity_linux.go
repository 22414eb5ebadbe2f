// File: internal/concurrency/affinity_linux.go
//go:build linux

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux thread affinity through sched_setaffinity(2).

package concurrency

import "golang.org/x/sys/unix"

// platformPinCurrentThread binds the locked OS thread to cpuID and returns a
// function restoring the previous mask.
func platformPinCurrentThread(cpuID int) (func() error, error) {
	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return nil, err
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return nil, err
	}
	return func() error {
		return unix.SchedSetaffinity(0, &prev)
	}, nil
}
