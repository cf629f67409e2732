package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Leveled logger shared by the service.
// - package-level Debug/Info/Warn/Error/Fatal helpers and Init(level)
// - zerolog underneath; JSON by default, console output via SetOutput

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger zerolog.Logger = newLogger(os.Stdout, false)
	level  Level          = LevelInfo
)

func newLogger(w io.Writer, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
}

// SetOutput redirects log output. console switches to zerolog's human-readable writer.
func SetOutput(w io.Writer, console bool) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, console)
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Event returns a structured event at the given level, or nil when the level
// is filtered out. zerolog treats a nil *Event as a no-op.
func Event(l Level) *zerolog.Event {
	if !shouldLog(l) {
		return nil
	}
	lg := current()
	switch l {
	case LevelDebug:
		return lg.Debug()
	case LevelWarn:
		return lg.Warn()
	case LevelError:
		return lg.Error()
	case LevelFatal:
		return lg.WithLevel(zerolog.FatalLevel)
	}
	return lg.Info()
}

func Debugf(format string, v ...interface{}) {
	Event(LevelDebug).Msgf(format, v...)
}

func Infof(format string, v ...interface{}) {
	Event(LevelInfo).Msgf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	Event(LevelWarn).Msgf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	Event(LevelError).Msgf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	current().WithLevel(zerolog.FatalLevel).Msgf(format, v...)
	os.Exit(1)
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
