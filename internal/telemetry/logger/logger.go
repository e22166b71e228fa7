package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

// Logger is the logging surface used across yggauth.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Output formats accepted in Config.Format.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
)

// Config describes the handler New builds.
type Config struct {
	Level     string
	Format    string // json (default), text or console
	Output    io.Writer
	AddSource bool
	NoColor   bool // console only
}

// DefaultConfig logs JSON at info level to stderr.
func DefaultConfig() Config {
	return Config{Level: "info", Format: FormatJSON, Output: os.Stderr}
}

var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// level is shared by every logger New returns, so SetLevel reaches all of
// them.
var level slog.LevelVar

// New builds a logger and sets the shared level from cfg.Level. Unknown
// levels fall back to info.
func New(cfg Config) (Logger, error) {
	h, err := newHandler(cfg)
	if err != nil {
		return nil, err
	}
	SetLevel(cfg.Level)
	return &slogLogger{sl: slog.New(h), ctx: context.Background()}, nil
}

func newHandler(cfg Config) (slog.Handler, error) {
	w := cfg.Output
	if w == nil {
		w = os.Stderr
	}
	replace := func(_ []string, a slog.Attr) slog.Attr { return redactSensitive(a) }

	switch strings.ToLower(cfg.Format) {
	case FormatConsole:
		return tint.NewHandler(w, &tint.Options{
			Level:       &level,
			AddSource:   cfg.AddSource,
			TimeFormat:  time.TimeOnly,
			NoColor:     cfg.NoColor,
			ReplaceAttr: replace,
		}), nil
	case FormatText:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: &level, AddSource: cfg.AddSource, ReplaceAttr: replace}), nil
	case FormatJSON, "":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &level, AddSource: cfg.AddSource, ReplaceAttr: replace}), nil
	}
	return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
}

// SetLevel changes the level of every logger at once.
func SetLevel(name string) {
	lvl, ok := levelNames[strings.ToLower(name)]
	if !ok {
		lvl = slog.LevelInfo
	}
	level.Set(lvl)
}

// GetLevel returns the canonical name of the shared level.
func GetLevel() string {
	switch lvl := level.Level(); {
	case lvl <= slog.LevelDebug:
		return "debug"
	case lvl <= slog.LevelInfo:
		return "info"
	case lvl <= slog.LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// ValidLevel reports whether SetLevel knows name.
func ValidLevel(name string) bool {
	_, ok := levelNames[strings.ToLower(name)]
	return ok
}

type slogLogger struct {
	sl  *slog.Logger
	ctx context.Context
}

func (l *slogLogger) Debug(msg string, args ...any) { l.sl.Log(l.ctx, slog.LevelDebug, msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.sl.Log(l.ctx, slog.LevelInfo, msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.sl.Log(l.ctx, slog.LevelWarn, msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.sl.Log(l.ctx, slog.LevelError, msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{sl: l.sl.With(args...), ctx: l.ctx}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return &slogLogger{sl: l.sl, ctx: ctx}
}

// Slog unwraps l for libraries that take a *slog.Logger. Foreign Logger
// implementations get slog.Default().
func Slog(l Logger) *slog.Logger {
	if sl, ok := l.(*slogLogger); ok {
		return sl.sl
	}
	return slog.Default()
}

var std atomic.Pointer[slogLogger]

func init() {
	h, _ := newHandler(DefaultConfig())
	std.Store(&slogLogger{sl: slog.New(h), ctx: context.Background()})
}

// SetDefault replaces the logger FromContext falls back to. Loggers not
// built by New are ignored.
func SetDefault(l Logger) {
	if sl, ok := l.(*slogLogger); ok {
		std.Store(sl)
	}
}

// Default returns the process-wide logger.
func Default() Logger {
	return std.Load()
}
