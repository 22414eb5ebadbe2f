// File: internal/concurrency/affinity_windows.go
//go:build windows

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows thread affinity through SetThreadAffinityMask.

package concurrency

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
)

func setThreadAffinityMask(mask uintptr) (uintptr, error) {
	handle := windows.CurrentThread()
	old, _, err := procSetThreadAffinityMask.Call(uintptr(handle), mask)
	if old == 0 {
		return 0, fmt.Errorf("SetThreadAffinityMask failed: %v", err)
	}
	return old, nil
}

// platformPinCurrentThread binds the locked OS thread to cpuID. Only the
// first 64 CPUs of the current processor group are addressable.
func platformPinCurrentThread(cpuID int) (func() error, error) {
	if cpuID >= 64 {
		return nil, ErrAffinityNotSupported
	}
	old, err := setThreadAffinityMask(uintptr(1) << uint(cpuID))
	if err != nil {
		return nil, err
	}
	return func() error {
		_, err := setThreadAffinityMask(old)
		return err
	}, nil
}
