// File: harness/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import "errors"

var (
	// ErrUnexpectedRead indicates an accepted read with no outstanding expectation.
	ErrUnexpectedRead = errors.New("read with empty expectation queue")

	// ErrFlagDivergence indicates a flag or acceptance that differs from the
	// reference model.
	ErrFlagDivergence = errors.New("flag diverged from reference model")

	// ErrUnknownScenario indicates a scenario name missing from the catalogue.
	ErrUnknownScenario = errors.New("unknown scenario")
)
