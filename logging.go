package appsettings

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// WithLogger stores l in the context for use by steps and the pipeline.
func WithLogger(ctx context.Context, l logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom returns the logger stored by WithLogger, or a logger that
// discards everything.
func LoggerFrom(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok && l != nil {
		return l
	}
	return discardLogger
}
