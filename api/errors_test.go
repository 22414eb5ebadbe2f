package api_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/momentics/hioload-cdc/api"
)

func TestErrorUnwrapsToSentinel(t *testing.T) {
	cause := errors.New("depth too small")
	err := api.NewError(api.ErrCodeInvalidArgument, "bad config").
		WithContext("addr_width", 0).
		WithCause(cause)

	if !errors.Is(err, api.ErrInvalidArgument) {
		t.Error("expected errors.Is to match ErrInvalidArgument")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
	if errors.Is(err, api.ErrDesynchronized) {
		t.Error("unexpected match on ErrDesynchronized")
	}
	if !strings.Contains(err.Error(), "addr_width") {
		t.Errorf("context missing from message: %q", err.Error())
	}
}

func TestErrorCodeString(t *testing.T) {
	cases := map[api.ErrorCode]string{
		api.ErrCodeOK:              "ok",
		api.ErrCodeInvalidArgument: "invalid-argument",
		api.ErrCodeDesync:          "desync",
		api.ErrCodeMismatch:        "mismatch",
		api.ErrCodeInternal:        "internal",
	}
	for code, want := range cases {
		if got := code.String(); got != want {
			t.Errorf("%d: got %q, want %q", code, got, want)
		}
	}
}

func TestDomainString(t *testing.T) {
	if api.DomainWrite.String() != "write" || api.DomainRead.String() != "read" {
		t.Error("unexpected domain names")
	}
	if api.StateReset.String() != "reset" || api.StateRunning.String() != "running" {
		t.Error("unexpected state names")
	}
}
