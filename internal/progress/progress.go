// Package progress carries human-readable job status messages from the fetch
// pipeline to whatever front end is watching. The Sink callback is the only
// instrumentation path the core components know about.
package progress

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Sink receives one progress message per significant step. Implementations
// must be safe to call from the job goroutine.
type Sink func(message string)

// Discard is a Sink that drops every message.
func Discard(string) {}

const defaultLimit = 500

// Tracker keeps a bounded, timestamped log of progress messages that can be
// read while a job is appending to it.
type Tracker struct {
	mu     sync.Mutex
	limit  int
	lines  []string
	logger *slog.Logger
}

// NewTracker constructs a tracker holding at most limit lines; messages are
// mirrored to the logger when one is provided.
func NewTracker(limit int, logger *slog.Logger) *Tracker {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Tracker{limit: limit, logger: logger}
}

// Update appends a timestamped message, dropping the oldest lines past the
// configured limit.
func (t *Tracker) Update(message string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), message)

	t.mu.Lock()
	t.lines = append(t.lines, line)
	if over := len(t.lines) - t.limit; over > 0 {
		t.lines = append([]string(nil), t.lines[over:]...)
	}
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.Info(message)
	}
}

// Sink adapts the tracker to the Sink callback shape.
func (t *Tracker) Sink() Sink {
	return t.Update
}

// Log returns a copy of the current lines, oldest first.
func (t *Tracker) Log() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Clear drops all recorded lines.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.lines = nil
	t.mu.Unlock()
}
