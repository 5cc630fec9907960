package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestErrorfLogsAndWraps(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, slog.LevelDebug)

	base := errors.New("boom")
	err := Errorf("failed to register handler: %w", base)
	if !errors.Is(err, base) {
		t.Fatalf("Errorf() lost the wrapped error: %v", err)
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", rec["level"])
	}
	if rec["msg"] != "failed to register handler: boom" {
		t.Errorf("msg = %v", rec["msg"])
	}
}

func TestInitLogWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "app.log")

	if err := InitLog("info", path); err != nil {
		t.Fatalf("InitLog() error = %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	Info("form submitted", "client_ip", "10.0.0.1")
	Debug("filtered out")

	matches, err := filepath.Glob(path + ".*")
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one rotated log file, got %v (err %v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !bytes.Contains(data, []byte(`"client_ip":"10.0.0.1"`)) {
		t.Errorf("log file missing record: %q", data)
	}
	if bytes.Contains(data, []byte("filtered out")) {
		t.Errorf("debug record written at info level: %q", data)
	}
}
