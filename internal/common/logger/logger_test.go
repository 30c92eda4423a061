package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DEBUG},
		{" INFO ", INFO},
		{"warn", WARNING},
		{"warning", WARNING},
		{"error", ERROR},
		{"critical", CRITICAL},
		{"nonsense", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEntryIncludesSortedFieldsAndTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "movie-review", "debug")

	ctx := WithTraceID(context.Background(), "abc123")
	log.WithFields(ctx, Fields{"b": 2, "a": 1}).Info("hello")

	out := buf.String()
	if !strings.Contains(out, "[INFO] [movie-review]") {
		t.Errorf("missing level/service prefix: %q", out)
	}
	if !strings.Contains(out, "trace_id=abc123 a=1 b=2") {
		t.Errorf("fields not rendered in order: %q", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "hello") {
		t.Errorf("message missing: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "", "warn")

	log.Info("dropped")
	log.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn message should be written")
	}
	if log.ShouldLog(DEBUG) {
		t.Error("ShouldLog(DEBUG) = true at warn level")
	}
}

func TestNewWithLogDirCreatesFile(t *testing.T) {
	dir := t.TempDir()
	log, err := New(dir, "test", "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer log.Close()

	log.Info("to file")
}

func TestEntryCriticalf(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "movie-review", "critical")

	log.WithFields(context.Background(), Fields{"action": "panic_recovered"}).Errorf("filtered %d", 1)
	log.WithFields(context.Background(), Fields{"action": "panic_recovered"}).Criticalf("panic recovered: %v", "boom")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("error entry should be filtered at critical level: %q", out)
	}
	if !strings.Contains(out, "[CRITICAL] [movie-review]") {
		t.Errorf("missing critical prefix: %q", out)
	}
	if !strings.Contains(out, "action=panic_recovered") || !strings.Contains(out, "panic recovered: boom") {
		t.Errorf("fields or message missing: %q", out)
	}
}
