// Package logger provides the process-wide structured logger.
//
// All components log through hclog with key/value pairs:
//
//	logger.Info("movie created", "id", movie.ID, "url", movie.URL)
//
// Components that own a long-lived logger should take a Named() child instead
// of calling the package-level helpers.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Options configures the root logger
type Options struct {
	Level  string // trace, debug, info, warn, error
	Format string // json or text
	Output io.Writer
}

var (
	root hclog.Logger
	mu   sync.RWMutex
)

// Init (re)builds the root logger. Safe to call more than once.
func Init(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	l := hclog.New(&hclog.LoggerOptions{
		Name:       "dj-movie",
		Level:      ParseLevel(opts.Level),
		Output:     out,
		JSONFormat: strings.EqualFold(opts.Format, "json"),
	})

	mu.Lock()
	root = l
	mu.Unlock()
	return l
}

// Get returns the root logger, creating a default one on first use
func Get() hclog.Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init(Options{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})
}

// Named returns a sub-logger for a component
func Named(name string) hclog.Logger {
	return Get().Named(name)
}

// SetLevel changes the level of the root logger and every logger derived from it.
func SetLevel(level string) {
	Get().SetLevel(ParseLevel(level))
}

// ParseLevel maps a config string to an hclog level. Unknown values mean info.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(level)
	if l == hclog.NoLevel {
		return hclog.Info
	}
	return l
}

func Info(msg string, args ...interface{}) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Get().Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Get().Debug(msg, args...)
}
