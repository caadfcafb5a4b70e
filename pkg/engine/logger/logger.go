// Package logger owns the process-wide structured logger.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
	Color  bool // console format only
}

var (
	once sync.Once
	lg   *slog.Logger
)

// Init installs the process logger. Only the first call has any effect.
func Init(cfg Config) {
	once.Do(func() {
		lg = New(cfg)
		slog.SetDefault(lg)
	})
}

// New builds a logger without touching the process default.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := parseLevel(cfg.Level)
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		handler = &consoleHandler{mu: &sync.Mutex{}, w: cfg.Output, level: level, color: cfg.Color}
	}
	return slog.New(handler)
}

func L() *slog.Logger {
	if lg == nil {
		Init(Config{Level: "info", Format: "console"})
	}
	return lg
}

// Discard returns a logger that drops every record. Tests use it to keep
// warning paths quiet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler outputs human-friendly log lines:
//
//	12:00:00 WARN  action already exists  name=Jump
//
// Derived handlers share the writer lock. Attrs added with WithAttrs keep
// the group that was open when they were added.
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	color bool
	pre   []string // formatted WithAttrs attrs
	group string
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.Format(time.TimeOnly)
	lvl := levelTag(r.Level)
	if h.color {
		lvl = levelStyle(r.Level).Sprint(lvl)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", ts, lvl, r.Message)
	for _, a := range h.pre {
		b.WriteString(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(formatAttr(h.group, a))
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.pre = append([]string{}, h.pre...)
	for _, a := range attrs {
		h2.pre = append(h2.pre, formatAttr(h.group, a))
	}
	return &h2
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = name
	if h.group != "" {
		h2.group = h.group + "." + name
	}
	return &h2
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

func levelStyle(l slog.Level) color.Style {
	switch {
	case l >= slog.LevelError:
		return color.Style{color.FgRed, color.OpBold}
	case l >= slog.LevelWarn:
		return color.Style{color.FgYellow}
	case l >= slog.LevelInfo:
		return color.Style{color.FgGreen}
	default:
		return color.Style{color.FgGray}
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
