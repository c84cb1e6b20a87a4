package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string
	Pretty bool
	Output io.Writer
}

var current atomic.Pointer[zerolog.Logger]

func init() {
	Configure(Config{Level: "info"})
}

// Configure replaces the process logger. Safe to call more than once.
func Configure(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	current.Store(&l)
	return l
}

func L() zerolog.Logger {
	return *current.Load()
}

// With returns a logger tagged with the given component name.
func With(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}

func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
