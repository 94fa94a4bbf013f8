package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"Debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("pipeline complete", "events", 21)

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("expected valid JSON log line, got error: %v\noutput: %s", err, buf.String())
	}
	if m["msg"] != "pipeline complete" {
		t.Errorf("expected msg 'pipeline complete', got %q", m["msg"])
	}
	if m["events"] != float64(21) {
		t.Errorf("expected events=21, got %v", m["events"])
	}
}

func TestTextHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Warn("document skipped", "source", "winter.txt")

	out := buf.String()
	if !strings.Contains(out, "document skipped") {
		t.Errorf("expected text output containing message, got: %s", out)
	}
	if !strings.Contains(out, "source=winter.txt") {
		t.Errorf("expected text output containing source=winter.txt, got: %s", out)
	}
}
