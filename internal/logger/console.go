package logger

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultConsoleSize = 200

var formatVerbs = regexp.MustCompile(`%[csdifoO]`)

// ConsoleEntry is one captured diagnostic line.
type ConsoleEntry struct {
	ID      int64
	Time    time.Time
	Level   string
	Message string
}

type consoleState struct {
	mu       sync.Mutex
	entries  []ConsoleEntry
	last     string
	capacity int
	nextID   func() int64
}

// Console is a slog.Handler that keeps the recent diagnostic lines for the
// on-screen log panel.
//
// Styled messages (starting with %c) are skipped, format verbs are stripped,
// and empty messages or a repeat of the previous message (attributes aside)
// are dropped.
type Console struct {
	state  *consoleState
	level  slog.Leveler
	attrs  []string
	groups []string
}

// NewConsole creates a console keeping at most capacity entries.
// nextID may be nil, in which case entries are numbered sequentially.
func NewConsole(capacity int, level slog.Leveler, nextID func() int64) *Console {
	if capacity <= 0 {
		capacity = DefaultConsoleSize
	}
	if level == nil {
		level = slog.LevelInfo
	}
	if nextID == nil {
		var seq atomic.Int64
		nextID = func() int64 { return seq.Add(1) }
	}
	return &Console{
		state: &consoleState{capacity: capacity, nextID: nextID},
		level: level,
	}
}

func (c *Console) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

func (c *Console) Handle(_ context.Context, r slog.Record) error {
	if strings.HasPrefix(r.Message, "%c") {
		return nil
	}

	msg := strings.Join(strings.Fields(formatVerbs.ReplaceAllString(r.Message, "")), " ")
	parts := make([]string, 0, 1+r.NumAttrs()+len(c.attrs))
	if msg != "" {
		parts = append(parts, msg)
	}
	parts = append(parts, c.attrs...)
	prefix := strings.Join(c.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		parts = appendAttr(parts, prefix, a)
		return true
	})

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return nil
	}

	s := c.state
	s.mu.Lock()
	defer s.mu.Unlock()
	// repeats are judged on the message alone
	key := msg
	if key == "" {
		key = text
	}
	if key == s.last {
		return nil
	}
	s.last = key

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	s.entries = append(s.entries, ConsoleEntry{
		ID:      s.nextID(),
		Time:    ts,
		Level:   strings.ToLower(r.Level.String()),
		Message: text,
	})
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = append(s.entries[:0:0], s.entries[over:]...)
	}
	return nil
}

func (c *Console) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *c
	next.attrs = append([]string{}, c.attrs...)
	prefix := strings.Join(c.groups, ".")
	for _, a := range attrs {
		next.attrs = appendAttr(next.attrs, prefix, a)
	}
	return &next
}

func (c *Console) WithGroup(name string) slog.Handler {
	if name == "" {
		return c
	}
	next := *c
	next.groups = append(append([]string{}, c.groups...), name)
	return &next
}

// Entries returns captured entries, newest first.
func (c *Console) Entries() []ConsoleEntry {
	s := c.state
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ConsoleEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// Clear drops every captured entry.
func (c *Console) Clear() {
	s := c.state
	s.mu.Lock()
	s.entries = nil
	s.last = ""
	s.mu.Unlock()
}

func appendAttr(parts []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return parts
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			parts = appendAttr(parts, key, ga)
		}
		return parts
	}
	return append(parts, key+"="+a.Value.String())
}
