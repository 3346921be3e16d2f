// Package rlog is Room's ambient diagnostic logger: a small leveled,
// field-carrying logger in the shape of the teacher's logx package, trimmed
// to what the runtime core needs (no file rotation, no themed badges — the
// audit bus in package audit is the structured, machine-consumed trail;
// rlog is for operator-facing diagnostics).
package rlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/oodx/room/internal/share"
)

// Options configures a Logger.
type Options struct {
	Level  Level
	Output io.Writer
}

// DefaultOptions returns the default logger configuration: Info level to stderr.
func DefaultOptions() Options {
	return Options{Level: LevelInfo, Output: os.Stderr}
}

// Logger is a minimal leveled logger with structured fields.
type Logger struct {
	mu      sync.RWMutex
	opts    Options
	writers []Writer
}

// New creates a Logger writing to opts.Output (or any writers added via AddWriter).
func New(opts ...share.Option[Options]) *Logger {
	cfg := DefaultOptions()
	share.ApplyOptions(&cfg, opts...)
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{opts: cfg, writers: []Writer{&consoleWriter{out: cfg.Output}}}
}

// AddWriter registers an additional sink; every entry is fanned out to all writers.
func (l *Logger) AddWriter(w Writer) {
	if w == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writers = append(l.writers, w)
}

// SetLevel changes the minimum level that reaches any writer.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opts.Level = level
}

func (l *Logger) shouldLog(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.opts.Level
}

func (l *Logger) log(level Level, fields Fields, format string, args ...any) {
	if !l.shouldLog(level) {
		return
	}
	entry := &Entry{
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		Fields:    fields,
		Timestamp: time.Now(),
	}
	l.mu.RLock()
	writers := l.writers
	l.mu.RUnlock()
	for _, w := range writers {
		_ = w.Write(entry)
	}
}

func (l *Logger) Trace(format string, args ...any) { l.log(LevelTrace, nil, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, nil, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, nil, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, nil, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, nil, format, args...) }

// WithFields returns a bound logger that attaches fields to every call.
func (l *Logger) WithFields(fields Fields) *FieldLogger {
	return &FieldLogger{logger: l, fields: fields}
}

// Close closes every registered writer, returning the first error any of
// them reported.
func (l *Logger) Close() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var first error
	for _, w := range l.writers {
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// FieldLogger is a Logger bound to a fixed set of structured fields.
type FieldLogger struct {
	logger *Logger
	fields Fields
}

func (f *FieldLogger) Debug(format string, args ...any) {
	f.logger.log(LevelDebug, f.fields, format, args...)
}
func (f *FieldLogger) Info(format string, args ...any) {
	f.logger.log(LevelInfo, f.fields, format, args...)
}
func (f *FieldLogger) Warn(format string, args ...any) {
	f.logger.log(LevelWarn, f.fields, format, args...)
}
func (f *FieldLogger) Error(format string, args ...any) {
	f.logger.log(LevelError, f.fields, format, args...)
}

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// Default returns the process-wide default Logger, created lazily.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLogger = New()
	})
	return defaultLogger
}

// WithLevel sets the minimum level for a new Logger.
func WithLevel(level Level) share.Option[Options] {
	return func(o *Options) { o.Level = level }
}

// WithOutput sets the destination writer for a new Logger's console sink.
func WithOutput(w io.Writer) share.Option[Options] {
	return func(o *Options) { o.Output = w }
}
