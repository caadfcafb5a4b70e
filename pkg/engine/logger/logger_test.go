package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConsoleHandler_FormatsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "debug", Format: "console", Output: &buf})

	lg.With("component", "registry").WithGroup("action").Warn("already exists", "name", "Jump")

	line := buf.String()
	for _, want := range []string{"WARN ", "already exists", "component=registry", "action.name=Jump"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("log line %q not newline terminated", line)
	}
}

func TestConsoleHandler_AttrsKeepTheirGroup(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "info", Format: "console", Output: &buf})

	lg.With("component", "registry").
		WithGroup("action").With("slot", "primary").
		WithGroup("key").Info("rebound", "name", "W")

	line := buf.String()
	for _, want := range []string{"  component=registry", "  action.slot=primary", "  action.key.name=W"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, ".component=") {
		t.Errorf("attr added before WithGroup was prefixed: %q", line)
	}
}

func TestConsoleHandler_DerivedHandlersShareLock(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: "info", Format: "console", Output: &buf})
	loggers := []*slog.Logger{base, base.With("a", 1), base.WithGroup("g"), base.With("b", 2).WithGroup("h")}

	root := base.Handler().(*consoleHandler)
	for i, l := range loggers {
		if h := l.Handler().(*consoleHandler); h.mu != root.mu {
			t.Errorf("logger %d has its own lock", i)
		}
	}

	var wg sync.WaitGroup
	for _, l := range loggers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				l.Info("tick")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4*50 {
		t.Fatalf("got %d lines, want %d", len(lines), 4*50)
	}
	for _, line := range lines {
		if strings.Count(line, "tick") != 1 {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestConsoleHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "warn", Output: &buf})

	lg.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", buf.String())
	}
	lg.Error("shown")
	if !strings.Contains(buf.String(), "ERROR shown") {
		t.Errorf("got %q, want ERROR record", buf.String())
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	lg := New(Config{Level: "info", Format: "json", Output: &buf})
	lg.Info("tick", "n", 3)
	if !strings.Contains(buf.String(), `"msg":"tick"`) {
		t.Errorf("json output = %q", buf.String())
	}
}
