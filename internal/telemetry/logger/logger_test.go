package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// newBufLogger builds a logger writing into a fresh buffer.
func newBufLogger(t *testing.T, level, format string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: format, Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

// parseEntry decodes a single JSON log line.
func parseEntry(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("parse log entry %q: %v", raw, err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"default config", DefaultConfig()},
		{"text format", Config{Level: "debug", Format: "text"}},
		{"console alias", Config{Level: "info", Format: "console"}},
		{"nil output", Config{Level: "warn", Format: "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newBufLogger(t, "debug", "json")

	methods := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, m := range methods {
		t.Run(m.level, func(t *testing.T) {
			buf.Reset()
			m.logFunc("listener ready", "addr", "127.0.0.1:9999")

			if buf.Len() == 0 {
				t.Fatal("expected log output, got none")
			}
			entry := parseEntry(t, buf.Bytes())
			if entry["msg"] != "listener ready" {
				t.Errorf("msg = %v, want %q", entry["msg"], "listener ready")
			}
			if entry["addr"] != "127.0.0.1:9999" {
				t.Errorf("addr = %v, want %q", entry["addr"], "127.0.0.1:9999")
			}
			if entry["level"] != m.level {
				t.Errorf("level = %v, want %q", entry["level"], m.level)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufLogger(t, "info", "json")

	l.With("component", "tcpserver").Info("accepting connections")

	entry := parseEntry(t, buf.Bytes())
	if entry["component"] != "tcpserver" {
		t.Errorf("component = %v, want %q", entry["component"], "tcpserver")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufLogger(t, "warn", "json")

	l.Debug("suppressed")
	l.Info("suppressed")
	if buf.Len() > 0 {
		t.Errorf("debug/info emitted below warn threshold: %s", buf.String())
	}

	l.Warn("emitted")
	if buf.Len() == 0 {
		t.Error("warn entry should pass the threshold")
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufLogger(t, "error", "json")

	l.Info("below threshold")
	if buf.Len() > 0 {
		t.Error("info emitted at error level")
	}

	SetLevel("debug")
	l.Info("above threshold")
	if buf.Len() == 0 {
		t.Error("info should pass after lowering the level")
	}
	if got := GetLevel(); got != "debug" {
		t.Errorf("GetLevel() = %q, want %q", got, "debug")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct{ input, want string }{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{"info", "info"},
		{"INFO", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"ERROR", "error"},
		{"bogus", "info"},
		{"", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			SetLevel(tt.input)
			if got := GetLevel(); got != tt.want {
				t.Errorf("SetLevel(%q); GetLevel() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	l := Default()
	if l == nil {
		t.Fatal("Default() returned nil")
	}
	l.Info("smoke")
}

func TestPackageLevelFunctions(t *testing.T) {
	l, buf := newBufLogger(t, "debug", "json")
	SetDefault(l)

	funcs := []struct {
		name    string
		logFunc func(string, ...any)
	}{
		{"Debug", Debug},
		{"Info", Info},
		{"Warn", Warn},
		{"Error", Error},
	}

	for _, f := range funcs {
		t.Run(f.name, func(t *testing.T) {
			buf.Reset()
			f.logFunc("via package func")
			if buf.Len() == 0 {
				t.Errorf("%s() produced no output", f.name)
			}
		})
	}
}

func TestLogger_WithContext(t *testing.T) {
	l, buf := newBufLogger(t, "info", "json")

	l.WithContext(context.Background()).Info("carried context")

	if buf.Len() == 0 {
		t.Error("expected log output")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("Level = %q, want %q", cfg.Level, "info")
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want %q", cfg.Format, "json")
	}
	if cfg.Output == nil {
		t.Error("Output should not be nil")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	l, buf := newBufLogger(t, "info", "text")

	l.Info("admin listener up", "component", "adminserver")

	out := buf.String()
	if !strings.Contains(out, "admin listener up") {
		t.Errorf("text output missing message: %s", out)
	}
	if !strings.Contains(out, "component=adminserver") {
		t.Errorf("text output missing component=adminserver: %s", out)
	}
}
