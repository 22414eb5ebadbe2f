// File: harness/report.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package harness

import (
	"errors"

	"github.com/momentics/hioload-cdc/api"
)

// Report is the outcome of a harness run.
type Report struct {
	Scenario       string
	RunID          string
	Written        uint64
	Read           uint64
	RejectedWrites uint64
	RejectedReads  uint64
	Mismatches     uint64
	Desyncs        uint64
	FlagErrors     uint64
	// FirstFullAt is the number of accepted writes when Full was first
	// observed, zero if it never asserted.
	FirstFullAt uint64
	Resets      [2]uint64
	Outstanding int
	FinalFull   bool
	FinalEmpty  bool
	Errors      []error
}

// Passed reports whether every check held.
func (r Report) Passed() bool {
	return r.Mismatches == 0 && r.Desyncs == 0 && r.FlagErrors == 0
}

// Err folds failed checks into one error, nil when the run passed.
func (r Report) Err() error {
	if r.Passed() {
		return nil
	}
	summary := api.NewError(api.ErrCodeInternal, "verification failed").
		WithContext("scenario", r.Scenario).
		WithContext("run_id", r.RunID).
		WithContext("mismatches", r.Mismatches).
		WithContext("desyncs", r.Desyncs).
		WithContext("flag_errors", r.FlagErrors)
	return errors.Join(append([]error{summary}, r.Errors...)...)
}
