package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func newTestLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "test"})
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLoggerFormat(t *testing.T) {
	l, buf := newTestLogger(LogLevelDebug)
	l.WithComponent("tableedit").Info("command done", "command", "ezFormatTable", "message", "not in a table")

	want := "2024-01-02T03:04:05.000 INFO [test] command done component=tableedit command=ezFormatTable message=\"not in a table\"\n"
	if got := buf.String(); got != want {
		t.Errorf("log line = %q, want %q", got, want)
	}
}

func TestLoggerLevels(t *testing.T) {
	l, buf := newTestLogger(LogLevelWarn)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e", "error", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, " d") || strings.Contains(out, " i\n") {
		t.Errorf("output contains filtered levels: %q", out)
	}
	if !strings.Contains(out, "WARN [test] w") || !strings.Contains(out, "ERROR [test] e error=boom") {
		t.Errorf("output = %q", out)
	}

	buf.Reset()
	l.SetLevel(LogLevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "DEBUG [test] now visible") {
		t.Errorf("after SetLevel output = %q", buf.String())
	}
}

func TestLoggerFieldsAreCopied(t *testing.T) {
	l, buf := newTestLogger(LogLevelInfo)
	child := l.WithField("a", 1)
	_ = child.WithField("b", 2)

	child.Info("x")
	if got := buf.String(); !strings.HasSuffix(got, "x a=1\n") {
		t.Errorf("child line = %q, want only a=1", got)
	}

	buf.Reset()
	l.Info("y", "odd")
	if got := buf.String(); !strings.HasSuffix(got, "y !BADKEY=odd\n") {
		t.Errorf("odd kv line = %q", got)
	}
}

func TestLoggerDisable(t *testing.T) {
	l, buf := newTestLogger(LogLevelDebug)
	l.Disable()
	l.Error("hidden")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
	l.Enable()
	l.Error("shown")
	if buf.Len() == 0 {
		t.Error("enabled logger wrote nothing")
	}

	NullLogger.Error("nothing")
}
