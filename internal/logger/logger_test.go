package logger_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/kvanta/ukodus-core/internal/logger"
)

func TestLevelString(t *testing.T) {
	cases := map[logger.Level]string{
		logger.DEBUG:     "DEBUG",
		logger.INFO:      "INFO",
		logger.WARN:      "WARN",
		logger.ERROR:     "ERROR",
		logger.Level(99): "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestLoggerGatesBelowMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.WARN, &buf, "test")

	l.Info("should not appear")
	if buf.Len() != 0 {
		t.Errorf("expected INFO to be gated out at WARN level, got %q", buf.String())
	}

	l.Warn("should appear")
	if buf.Len() == 0 {
		t.Errorf("expected WARN to pass the WARN gate")
	}
}

func TestLoggerIncludesPrefixAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.DEBUG, &buf, "solver")

	l.Debug("stall on %s", "naked_single")

	out := buf.String()
	if !strings.Contains(out, "[DEBUG]") {
		t.Errorf("expected level tag in output, got %q", out)
	}
	if !strings.Contains(out, "[solver]") {
		t.Errorf("expected prefix in output, got %q", out)
	}
	if !strings.Contains(out, "stall on naked_single") {
		t.Errorf("expected formatted message in output, got %q", out)
	}
}

func TestGlobalSetLevelAndSetOutput(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetLevel(logger.ERROR)
	defer func() {
		logger.SetLevel(logger.INFO)
		logger.SetOutput(os.Stdout)
	}()

	logger.Info("gated out")
	if buf.Len() != 0 {
		t.Errorf("expected INFO to be gated at global ERROR level, got %q", buf.String())
	}

	logger.Error("shows up")
	if buf.Len() == 0 {
		t.Errorf("expected ERROR to pass the global ERROR gate")
	}
}
