// File: internal/concurrency/affinity_other.go
//go:build !linux && !windows

// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

func platformPinCurrentThread(cpuID int) (func() error, error) {
	return nil, ErrAffinityNotSupported
}
