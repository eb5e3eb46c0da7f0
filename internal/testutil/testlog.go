// Package testlog provides a logx.Logger that keeps every entry in memory for assertions.
package testlog

import (
	"slices"
	"sync"

	"service-rider-platform/internal/logx"
)

// Entry is one recorded log call. Fields include those bound with With.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the value of the named field.
func (e Entry) Field(key string) (any, bool) {
	i := slices.IndexFunc(e.Fields, func(f logx.Field) bool { return f.Key == key })
	if i < 0 {
		return nil, false
	}
	return e.Fields[i].Value, true
}

// Recorder collects entries from every logger derived from it.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logger writing into r.
func (r *Recorder) Logger() logx.Logger {
	return recLogger{r: r}
}

// Entries returns a snapshot of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries)
}

// Messages returns the messages logged at level, in order.
func (r *Recorder) Messages(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}

// Has reports whether msg was logged at any level.
func (r *Recorder) Has(msg string) bool {
	_, ok := r.Find(msg)
	return ok
}

// Find returns the first entry with the given message.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

func (r *Recorder) record(level, msg string, base, fields []logx.Field) {
	all := make([]logx.Field, 0, len(base)+len(fields))
	all = append(append(all, base...), fields...)

	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: all})
	r.mu.Unlock()
}

type recLogger struct {
	r    *Recorder
	base []logx.Field
}

var _ logx.Logger = recLogger{}

func (l recLogger) Debug(msg string, f ...logx.Field) { l.r.record("debug", msg, l.base, f) }
func (l recLogger) Info(msg string, f ...logx.Field)  { l.r.record("info", msg, l.base, f) }
func (l recLogger) Warn(msg string, f ...logx.Field)  { l.r.record("warn", msg, l.base, f) }
func (l recLogger) Error(msg string, f ...logx.Field) { l.r.record("error", msg, l.base, f) }
func (l recLogger) Sync() error                       { return nil }

func (l recLogger) With(f ...logx.Field) logx.Logger {
	return recLogger{r: l.r, base: append(slices.Clone(l.base), f...)}
}
