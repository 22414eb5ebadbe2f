// File: api/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared API-level type declarations and constants.

package api

// Word is one FIFO data word. Only the low DataWidth bits are significant.
type Word = uint64

// Domain identifies one of the two clock domains.
type Domain int

const (
	DomainWrite Domain = iota
	DomainRead
)

func (d Domain) String() string {
	switch d {
	case DomainWrite:
		return "write"
	case DomainRead:
		return "read"
	default:
		return "unknown"
	}
}

// DomainState enumerates the lifecycle of a clock domain.
type DomainState int

const (
	StateReset DomainState = iota
	StateRunning
)

func (s DomainState) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}
