// Package logger wraps logrus with context aware helpers that attach the
// request trace id and the build version to every entry.
package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/ncobase/calcgate/ctxutil"
	"github.com/ncobase/calcgate/logging/logger/config"
	"github.com/sirupsen/logrus"
)

// VersionKey is the field carrying the build version.
const VersionKey = "version"

// Logger is a logrus logger with context aware helpers.
type Logger struct {
	*logrus.Logger
	version string
}

var (
	stdLogger *Logger
	once      sync.Once
)

// StdLogger returns the process wide logger.
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = &Logger{Logger: logrus.New()}
		stdLogger.SetFormatter(&logrus.JSONFormatter{})
	})
	return stdLogger
}

// SetVersion sets the version field of every entry.
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init applies c. The returned cleanup closes an opened log file.
func (l *Logger) Init(c *config.Config) (func(), error) {
	if c == nil {
		return func() {}, nil
	}
	l.ApplyLevel(c.Level)

	if c.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	var out io.Writer = os.Stdout
	cleanup := func() {}
	switch c.Output {
	case "stderr":
		out = os.Stderr
	case "file":
		if c.OutputFile == "" {
			break
		}
		f, err := newDailyFile(c.OutputFile)
		if err != nil {
			return nil, err
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}
	l.SetOutput(out)
	return cleanup, nil
}

// ApplyLevel sets the logrus level; values below 1 select info.
func (l *Logger) ApplyLevel(level int) {
	if level <= 0 {
		l.SetLevel(logrus.InfoLevel)
		return
	}
	l.SetLevel(logrus.Level(level))
}

// WithContextFields returns an entry carrying the context fields plus fields.
func (l *Logger) WithContextFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return l.entry(ctx).WithFields(fields)
}

func (l *Logger) entry(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if id := ctxutil.GetTraceID(ctx); id != "" {
		fields[ctxutil.TraceIDKey] = id
	}
	if l.version != "" {
		fields[VersionKey] = l.version
	}
	return l.WithFields(fields)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Debugf(format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Infof(format, args...)
}

// Warnf logs at warn level.
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Warnf(format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.entry(ctx).Errorf(format, args...)
}
