package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog.Logger to the Logger interface. The server
// uses it so request logs come out as single-line JSON.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	emit(z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	emit(z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	emit(z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			c = c.Interface(k, args[i+1])
		}
	}
	return &ZerologLogger{l: c.Logger()}
}

// emit writes msg with args interpreted as key–value pairs. A trailing key
// without a value is ignored.
func emit(e *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			e = e.Interface(k, args[i+1])
		}
	}
	e.Msg(msg)
}
