package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	StageDev  = "dev"
	StageProd = "prod"
)

// ParseLevel maps a LOG_LEVEL value to a zerolog level.
// Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the server logger. Dev writes the console format
// with colors; prod writes one JSON object per line.
func New(stage, level string, w io.Writer) zerolog.Logger {
	out := w
	if stage != StageProd {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("stage", stage).
		Logger()
}
