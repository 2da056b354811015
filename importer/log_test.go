package importer

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"error", LevelError},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{"Info", LevelInfo},
		{"debug", LevelDebug},
		{"bogus", LevelWarn},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LevelWarn, &buf)

	log.Debugf("hidden %d", 1)
	log.Infof("hidden %d", 2)
	log.Warnf("shown %d", 3)
	log.Errorf("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("suppressed levels leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "shown 3") {
		t.Errorf("missing warn line:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "shown 4") {
		t.Errorf("missing error line:\n%s", out)
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LevelInfo, &buf)

	child := log.With(map[string]any{"scene": "root.yaml"})
	child.Infof("processed")

	if out := buf.String(); !strings.Contains(out, "scene=root.yaml") {
		t.Errorf("missing field in output:\n%s", out)
	}

	// The parent must not inherit the child's fields.
	buf.Reset()
	log.Infof("plain")
	if out := buf.String(); strings.Contains(out, "scene=") {
		t.Errorf("parent logger leaked child fields:\n%s", out)
	}
}
