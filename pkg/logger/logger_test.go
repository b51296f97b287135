package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"off", LevelOff},
		{"DEBUG", LevelDebug},
		{" verbose ", LevelDebug},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"loud", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("42", LevelInfo, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	log.Error("failed: %v", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "[INFO] [42] shown 2") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] [42] failed: boom") {
		t.Fatalf("missing error line: %q", out)
	}
}

func TestLoggerOffAndWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("", LevelOff, &buf)
	log.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	verbose := NewWithOutput("", LevelDebug, &buf).With("pantry")
	verbose.Debug("added %s", "sal")
	if !strings.Contains(buf.String(), "[DEBUG] [pantry] added sal") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
