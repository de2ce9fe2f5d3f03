package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "", want: slog.LevelInfo},
		{name: "INFO", want: slog.LevelInfo},
		{name: "warning", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: expected %v, got %v", tt.name, tt.want, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected unknown level to fail")
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("session finished", "text", "Short")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, "session finished") || !strings.Contains(out, "text=Short") {
		t.Fatalf("missing info line: %s", out)
	}
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "typist.log")
	logger, closeFn, err := Open(path, slog.LevelDebug)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	logger.Debug("mistake", "index", 3)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "index=3") {
		t.Fatalf("unexpected log content: %s", data)
	}
}
