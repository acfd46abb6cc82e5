// Package logging provides the structured logger used across the billing service.
package logging

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

type ctxKey struct{}

// RequestIDKey is the context key under which the request ID is stored.
var RequestIDKey = ctxKey{}

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure sets the global level ("debug", "info", ...) and format ("json" or "text").
func Configure(level, format string) {
	if lvl, err := logrus.ParseLevel(level); err == nil {
		base.SetLevel(lvl)
	}
	if strings.EqualFold(format, "text") {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{})
	}
}

// Logger writes structured entries tagged with a component name.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger returns a logger for the named component.
func NewLogger(component string) *Logger {
	return &Logger{entry: base.WithField("component", component)}
}

// With returns a child logger carrying the given fields on every entry.
func (l *Logger) With(fields Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithContext attaches the request ID from ctx, when present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return &Logger{entry: l.entry.WithField("request_id", id)}
	}
	return l
}

func (l *Logger) Debug(msg string, fields ...Fields) { l.with(fields).Debug(msg) }
func (l *Logger) Info(msg string, fields ...Fields)  { l.with(fields).Info(msg) }
func (l *Logger) Warn(msg string, fields ...Fields)  { l.with(fields).Warn(msg) }
func (l *Logger) Error(msg string, fields ...Fields) { l.with(fields).Error(msg) }
func (l *Logger) Fatal(msg string, fields ...Fields) { l.with(fields).Fatal(msg) }

func (l *Logger) with(fields []Fields) *logrus.Entry {
	e := l.entry
	for _, f := range fields {
		e = e.WithFields(logrus.Fields(f))
	}
	return e
}

// Info logs on the package logger without a component.
func Info(msg string, fields ...Fields) {
	e := logrus.NewEntry(base)
	for _, f := range fields {
		e = e.WithFields(logrus.Fields(f))
	}
	e.Info(msg)
}

// Infof is the printf-style variant kept for startup banners.
func Infof(format string, args ...interface{}) {
	base.Infof(format, args...)
}
