// Package logger owns the process-wide zerolog instance for the gateway.
// Initialise once at startup with Init; Get and For retrieve it anywhere.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	base  zerolog.Logger
	once  sync.Once
	ready bool
)

// Init builds the shared logger. The first call wins; subsequent calls return
// the already-built instance. Pretty switches to the human console writer for
// local development, otherwise output is one JSON object per line on stdout.
func Init(level string, pretty bool) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var out io.Writer = os.Stdout
		if pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)

		base = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
		ready = true
	})
	return base
}

// Get returns the shared logger. Panics if Init has not been called yet.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get() called before Init()")
	}
	return base
}

// For returns a child logger tagged with a component name, so log lines from
// the audit pipeline, the proxy, and the auth service can be told apart.
func For(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

// Reset tears down the shared instance so the next Init rebuilds it.
// Intended for use in tests only.
func Reset() {
	once = sync.Once{}
	base = zerolog.Logger{}
	ready = false
}
