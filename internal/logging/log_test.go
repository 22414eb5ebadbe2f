package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// capture redirects the process-wide logger to buf at lvl and restores the
// previous logger and level when the test ends.
func capture(t *testing.T, buf *bytes.Buffer, format Format, lvl slog.Level) {
	t.Helper()
	prevLogger, prevLevel := current(), Level()
	t.Cleanup(func() {
		SetLogger(prevLogger)
		SetLevel(prevLevel)
	})
	SetOutput(buf, format)
	SetLevel(lvl)
}

func TestComponentTagging(t *testing.T) {
	var buf bytes.Buffer
	capture(t, &buf, FormatText, slog.LevelDebug)

	Debug(ComponentFIFO, "write rejected", "full", true)
	out := buf.String()
	if !strings.Contains(out, "component=fifo") {
		t.Errorf("missing component attribute: %q", out)
	}
	if !strings.Contains(out, "full=true") {
		t.Errorf("missing user attribute: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	capture(t, &buf, FormatJSON, slog.LevelWarn)

	Info(ComponentSched, "hidden")
	if buf.Len() != 0 {
		t.Errorf("info emitted at warn level: %q", buf.String())
	}
	if Enabled(slog.LevelDebug) {
		t.Error("debug reported enabled at warn level")
	}
	Error(ComponentHarness, "shown")
	if !strings.Contains(buf.String(), `"component":"harness"`) {
		t.Errorf("expected JSON component attribute: %q", buf.String())
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	capture(t, &buf, FormatText, slog.LevelInfo)

	Logger(ComponentControl).Info("metrics published", "fifos", 2)
	out := buf.String()
	if !strings.Contains(out, "component=control") || !strings.Contains(out, "fifos=2") {
		t.Errorf("component logger output = %q", out)
	}
}

func TestOutputRestored(t *testing.T) {
	before := current()
	t.Run("redirect", func(t *testing.T) {
		var buf bytes.Buffer
		capture(t, &buf, FormatJSON, slog.LevelError)
		if current() == before {
			t.Fatal("logger not replaced")
		}
	})
	if current() != before {
		t.Error("logger not restored after subtest")
	}
}
