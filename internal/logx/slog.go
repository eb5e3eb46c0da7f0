package logx

import (
	"context"
	"log/slog"
	"time"
)

// SlogAdapter writes logx entries through a *slog.Logger.
type SlogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter wraps l.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &SlogAdapter{l: l}
}

func (s *SlogAdapter) Debug(msg string, fields ...Field) { s.log(slog.LevelDebug, msg, fields) }

func (s *SlogAdapter) Info(msg string, fields ...Field) { s.log(slog.LevelInfo, msg, fields) }

func (s *SlogAdapter) Warn(msg string, fields ...Field) { s.log(slog.LevelWarn, msg, fields) }

func (s *SlogAdapter) Error(msg string, fields ...Field) { s.log(slog.LevelError, msg, fields) }

// With returns a child logger that repeats fields on every entry.
func (s *SlogAdapter) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, a := range toSlogAttrs(fields) {
		args = append(args, a)
	}
	return &SlogAdapter{l: s.l.With(args...)}
}

// Sync is a no-op, slog handlers write synchronously.
func (s *SlogAdapter) Sync() error { return nil }

func (s *SlogAdapter) log(level slog.Level, msg string, fields []Field) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.LogAttrs(ctx, level, msg, toSlogAttrs(fields)...)
}

// toSlogAttrs keeps errors readable and durations and times typed.
func toSlogAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			if v == nil {
				attrs = append(attrs, slog.Any(f.Key, nil))
				continue
			}
			attrs = append(attrs, slog.String(f.Key, v.Error()))
		case time.Duration:
			attrs = append(attrs, slog.Duration(f.Key, v))
		case time.Time:
			attrs = append(attrs, slog.Time(f.Key, v))
		default:
			attrs = append(attrs, slog.Any(f.Key, v))
		}
	}
	return attrs
}
