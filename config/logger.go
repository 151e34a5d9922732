package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the process logger
// With LogFile set logs are JSON lines appended to the file, otherwise human-readable lines go to console
// The returned closer releases the file and is a no-op for console output
func (s Settings) Logger(console io.Writer) (zerolog.Logger, io.Closer, error) {
	if s.LogFile != "" {
		f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
		}
		return zerolog.New(f).Level(s.LogLevel).With().Timestamp().Logger(), f, nil
	}

	if console == nil {
		console = io.Discard
	}
	w := zerolog.ConsoleWriter{Out: console, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(s.LogLevel).With().Timestamp().Logger(), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
