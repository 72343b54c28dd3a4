package log

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger writes to out. The CLI passes stderr, stdout is reserved for command output.
func NewLogger(cfg *Config, out io.Writer) (*zerolog.Logger, error) {
	level, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	switch cfg.Format {
	case LogFormatConsole:
		l := zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).Level(level).With().Timestamp().Logger()
		return &l, nil
	default:
		l := zerolog.New(out).With().Timestamp().Logger().Level(level)
		return &l, nil
	}
}

// WithRun returns a child logger tagged with the run and workflow.
func WithRun(logger *zerolog.Logger, runID string, workflow string) *zerolog.Logger {
	out := logger.With().
		Str("run_id", runID).
		Str("workflow", workflow).
		Logger()

	return &out
}

func parseLogLevel(level LogLevel) (zerolog.Level, error) {
	switch level {
	case LogLevelTrace:
		return zerolog.TraceLevel, nil
	case LogLevelDebug:
		return zerolog.DebugLevel, nil
	case LogLevelInfo:
		return zerolog.InfoLevel, nil
	case LogLevelWarn:
		return zerolog.WarnLevel, nil
	case LogLevelError:
		return zerolog.ErrorLevel, nil
	case LogLevelFatal:
		return zerolog.FatalLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}
