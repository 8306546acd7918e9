// Package logging provides the contextual, structured logger used across pcsv.
package logging

import (
	"context"
	"io"

	"github.com/clarktrimble/sabot"
)

// Logger specifies a contextual, structured logger.
type Logger interface {
	Info(ctx context.Context, msg string, kv ...any)
	Error(ctx context.Context, msg string, err error, kv ...any)
}

// New returns a logger writing one JSON object per line to w.
func New(w io.Writer) Logger {
	return &sabot.Sabot{Writer: w}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nop{}
}

type nop struct{}

func (nop) Info(ctx context.Context, msg string, kv ...any)             {}
func (nop) Error(ctx context.Context, msg string, err error, kv ...any) {}
