package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/octagoniq/octagoniq-api/internal/config"
)

// New builds the process logger from the configured level and format.
func New(cfg config.Config) zerolog.Logger {
	return build(os.Stdout, cfg.LogLevel, cfg.LogFormat)
}

func build(out io.Writer, level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)
}
