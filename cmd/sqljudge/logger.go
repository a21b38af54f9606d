package main

import (
	"context"
	"io"
	"time"

	"github.com/bool64/ctxd"
	"github.com/rs/zerolog"
)

// zeroLogger writes ctxd log entries with zerolog.
type zeroLogger struct {
	zl zerolog.Logger
}

var _ ctxd.Logger = zeroLogger{}

func newLogger(w io.Writer, level string, color bool) (zeroLogger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zeroLogger{}, err
	}

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !color}

	return zeroLogger{zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}, nil
}

func (l zeroLogger) Debug(_ context.Context, msg string, keysAndValues ...interface{}) {
	l.zl.Debug().Fields(keysAndValues).Msg(msg)
}

func (l zeroLogger) Info(_ context.Context, msg string, keysAndValues ...interface{}) {
	l.zl.Info().Fields(keysAndValues).Msg(msg)
}

func (l zeroLogger) Important(_ context.Context, msg string, keysAndValues ...interface{}) {
	l.zl.WithLevel(zerolog.NoLevel).Fields(keysAndValues).Msg(msg)
}

func (l zeroLogger) Warn(_ context.Context, msg string, keysAndValues ...interface{}) {
	l.zl.Warn().Fields(keysAndValues).Msg(msg)
}

func (l zeroLogger) Error(_ context.Context, msg string, keysAndValues ...interface{}) {
	l.zl.Error().Fields(keysAndValues).Msg(msg)
}
