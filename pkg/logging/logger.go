// Package logging provides structured logging for registermodel using zerolog.
//
// Library packages log through the logger carried on the context:
//
//	logger := logging.FromContext(ctx)
//	logger.Info().Str("model_name", name).Msg("Registering model")
//
// The CLI builds its logger once from flags and environment and attaches
// it with WithLogger. Code without a context uses the package default.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu            sync.RWMutex
	defaultLogger = NewLoggerFromConfig(ConfigFromEnv())
)

// Default returns a copy of the default global logger.
func Default() *zerolog.Logger {
	mu.RLock()
	logger := defaultLogger
	mu.RUnlock()
	return &logger
}

// SetDefault replaces the default global logger and zerolog's global logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defaultLogger = logger
	log.Logger = logger
	mu.Unlock()
}

// New creates a JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Debug starts a new debug level event on the default logger.
func Debug() *zerolog.Event {
	return Default().Debug()
}

// Info starts a new info level event on the default logger.
func Info() *zerolog.Event {
	return Default().Info()
}

// Warn starts a new warning level event on the default logger.
func Warn() *zerolog.Event {
	return Default().Warn()
}

// Error starts a new error level event on the default logger.
func Error() *zerolog.Event {
	return Default().Error()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
