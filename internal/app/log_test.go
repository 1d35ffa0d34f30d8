package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPitHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		opID    string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			opID:    "op-123",
			level:   slog.LevelInfo,
			message: "snapshot created",
			want:    "2024-06-15T14:30:45Z\tINFO\top-123\tsnapshot created\n",
		},
		{
			name:    "debug level",
			opID:    "op-456",
			level:   slog.LevelDebug,
			message: "path ignored",
			want:    "2024-06-15T14:30:45Z\tDEBUG\top-456\tpath ignored\n",
		},
		{
			name:    "with record attrs",
			opID:    "op-789",
			level:   slog.LevelInfo,
			message: "snapshot restored",
			attrs:   []slog.Attr{slog.String("id", "20240615143045-aabbccdd"), slog.Int("files", 3)},
			want:    "2024-06-15T14:30:45Z\tINFO\top-789\tsnapshot restored\tid=20240615143045-aabbccdd\tfiles=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &pitHandler{w: &buf, opID: tt.opID}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			for _, a := range tt.attrs {
				r.AddAttrs(a)
			}

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestPitHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &pitHandler{w: &buf, opID: "op-1"}

	// Add pre-set attrs
	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "store")}).(*pitHandler)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "record written", 0)
	r.AddAttrs(slog.String("id", "abc"))

	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "component=store") {
		t.Errorf("expected pre-set attr component=store, got: %q", got)
	}
	if !strings.Contains(got, "id=abc") {
		t.Errorf("expected record attr id=abc, got: %q", got)
	}
}

func TestPitHandler_WithAttrs_doesNotMutateOriginal(t *testing.T) {
	var buf bytes.Buffer
	h := &pitHandler{w: &buf, opID: "op-1", attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("b", "2")}).(*pitHandler)

	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}
	if len(h2.attrs) != 2 {
		t.Errorf("new handler attrs: got %d, want 2", len(h2.attrs))
	}
}

func TestPitHandler_Enabled(t *testing.T) {
	h := &pitHandler{}
	// All levels should be enabled
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if !h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = false, want true", level)
		}
	}
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()

	logger, f, err := newLogger(dir, "test-op")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	defer f.Close()

	logger.Info("hello", "k", "v")

	data, err := os.ReadFile(filepath.Join(dir, "pit.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "\tINFO\ttest-op\thello\tk=v\n") {
		t.Errorf("log line = %q, want tab-separated record with opID", line)
	}
}
