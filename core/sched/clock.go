// File: core/sched/clock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"fmt"
	"math/rand"
)

// Clock describes one domain's edge train in abstract time units.
// Edge n happens at Phase + n*Period + j, with j drawn from [0, Jitter].
type Clock struct {
	Period uint64
	Phase  uint64
	Jitter uint64
}

// Validate rejects clocks that cannot produce strictly increasing edges.
func (c Clock) Validate() error {
	if c.Period == 0 {
		return fmt.Errorf("%w: zero period", ErrInvalidClock)
	}
	if c.Jitter >= c.Period {
		return fmt.Errorf("%w: jitter %d not below period %d", ErrInvalidClock, c.Jitter, c.Period)
	}
	return nil
}

// edgeTime returns the time of edge n.
func (c Clock) edgeTime(n uint64, rng *rand.Rand) uint64 {
	t := c.Phase + n*c.Period
	if c.Jitter > 0 {
		t += uint64(rng.Int63n(int64(c.Jitter) + 1))
	}
	return t
}
