/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the global logger, selects the output format (console or JSON)
from the environment, and offers key/value helpers for the Debug, Info, Warn,
Error and Fatal levels plus component-scoped child loggers.
*/
package logx

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger initializes the global zerolog instance.
// Development: Debug level, ConsoleWriter on stderr.
// Production: Info level, JSON on stdout.
// All logs include a Unix timestamp and caller information.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    false,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// SetOutput redirects the global logger to w at the given level.
// Tests use it to capture or silence log output.
func SetOutput(w io.Writer, level zerolog.Level) {
	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// Component returns a child of the global logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}

// emit writes msg with key/value fields on e. An odd field count drops the
// fields with a warning instead of letting zerolog panic.
func emit(e *zerolog.Event, err error, msg string, fields []any) {
	if len(fields)%2 != 0 {
		Logger().Warn().Int("fields_count", len(fields)).Msgf("logx: odd number of fields for %q, fields dropped", msg)
		fields = nil
	}
	if err != nil {
		e = e.Err(err)
	}
	e.Fields(fields).CallerSkipFrame(2).Msg(msg)
}

// Debug logs msg with key/value fields.
func Debug(msg string, fields ...any) { emit(Logger().Debug(), nil, msg, fields) }

// Info logs msg with key/value fields.
func Info(msg string, fields ...any) { emit(Logger().Info(), nil, msg, fields) }

// Warn logs msg with key/value fields.
func Warn(msg string, fields ...any) { emit(Logger().Warn(), nil, msg, fields) }

// Error logs err and msg with key/value fields.
func Error(err error, msg string, fields ...any) { emit(Logger().Error(), err, msg, fields) }

// Fatal logs like Error and exits the process.
func Fatal(err error, msg string, fields ...any) { emit(Logger().Fatal(), err, msg, fields) }
