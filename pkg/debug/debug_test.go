package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevEnabled, prevLogger := enabled, logger
	t.Cleanup(func() {
		enabled, logger = prevEnabled, prevLogger
	})
	var buf bytes.Buffer
	SetEnabled(true)
	SetOutput(&buf)
	return &buf
}

func TestLog_Disabled(t *testing.T) {
	buf := capture(t)
	SetEnabled(false)

	Log("hidden %d", 1)
	LogTiming("x", time.Millisecond)
	LogEnterExit("fn")()

	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %q", buf.String())
	}
}

func TestLog_Enabled(t *testing.T) {
	buf := capture(t)

	Log("loaded %d items", 3)
	LogIf(false, "never")
	LogIf(true, "sometimes")
	Dump("pos", struct{ X int }{4})

	out := buf.String()
	for _, want := range []string{"[VB_DEBUG] ", "loaded 3 items", "sometimes", "pos: struct"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "never") {
		t.Error("LogIf(false) should not log")
	}
}

func TestLogEnterExit(t *testing.T) {
	buf := capture(t)

	LogEnterExit("build")()

	out := buf.String()
	if !strings.Contains(out, "-> build") || !strings.Contains(out, "<- build") {
		t.Errorf("expected enter and exit lines, got %q", out)
	}
}
