// Package logger configures the process-wide zerolog logger.
//
// Call Init once from main, then pass the returned logger down through
// constructors. Get exists for the rare spot with no logger in scope.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "bar-system"

var (
	instance zerolog.Logger
	once     sync.Once
	ready    bool
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level to emit: trace, debug, info, warn, error
	// or fatal. Unknown or empty values fall back to info.
	Level string
	// Pretty switches on console output for local development. Leave it
	// off in production so logs stay machine-parseable JSON.
	Pretty bool
	// Output overrides the destination, os.Stdout when nil. Tests point
	// this at a buffer.
	Output io.Writer
}

// Init builds the logger on first call and returns it. Later calls return
// the same instance and ignore their options.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		instance = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
		ready = true
	})
	return instance
}

// Get returns the initialised logger. Panics when Init was never called,
// which is a wiring bug and not a runtime condition worth recovering from.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get before Init")
	}
	return instance
}

// Reset discards the singleton so the next Init rebuilds it. Test helper.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
