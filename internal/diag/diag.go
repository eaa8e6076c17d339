// Package diag provides sinks for the diagnostics the solver and tracers
// record when a result is degraded but still usable.
package diag

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Logger forwards diagnostics to a slog.Logger at warn level.
type Logger struct {
	log *slog.Logger
}

func NewLogger(w io.Writer, level slog.Level) *Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{log: slog.New(h)}
}

// FromSlog wraps an existing logger, tagging every record with component.
func FromSlog(l *slog.Logger, component string) *Logger {
	return &Logger{log: l.With("component", component)}
}

func (l *Logger) Record(msg string) {
	l.log.Warn(msg)
}

func (l *Logger) Slog() *slog.Logger { return l.log }

// Collector keeps every diagnostic in memory.
type Collector struct {
	mu   sync.Mutex
	msgs []string
}

func (c *Collector) Record(msg string) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
}

func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

// Contains reports whether any recorded message contains substr.
func (c *Collector) Contains(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func (c *Collector) Reset() {
	c.mu.Lock()
	c.msgs = nil
	c.mu.Unlock()
}

// Counter counts diagnostics and passes them on to Next, if set. A nil
// Counter drops everything.
type Counter struct {
	Next dynamo.Diagnostics
	n    int
}

func (c *Counter) Record(msg string) {
	if c == nil {
		return
	}
	c.n++
	if c.Next != nil {
		c.Next.Record(msg)
	}
}

func (c *Counter) Count() int {
	if c == nil {
		return 0
	}
	return c.n
}

type tee []dynamo.Diagnostics

func (t tee) Record(msg string) {
	for _, d := range t {
		d.Record(msg)
	}
}

// Tee fans each diagnostic out to every non-nil sink.
func Tee(sinks ...dynamo.Diagnostics) dynamo.Diagnostics {
	var t tee
	for _, s := range sinks {
		if s != nil {
			t = append(t, s)
		}
	}
	return t
}

// Discard drops every diagnostic.
var Discard = dynamo.Discard
