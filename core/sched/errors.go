// File: core/sched/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import "errors"

var (
	// ErrInvalidClock indicates a zero period or a jitter not below the period.
	ErrInvalidClock = errors.New("invalid clock")

	// ErrTimeLimit indicates the run reached its simulated time limit or its
	// stall budget before the driver finished.
	ErrTimeLimit = errors.New("time limit reached")
)
