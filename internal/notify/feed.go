// Package notify is the ambient feedback channel for workflow actions.
// Notices are fire-and-forget: pushing never blocks, and nothing in the
// action flow waits on the feed.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notice for display.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Notice is one toast entry.
type Notice struct {
	ID      string
	Kind    Kind
	Message string
	At      time.Time
}

const defaultMaxNotices = 50

// Feed holds recent notices and expires them after a fixed lifetime.
type Feed struct {
	mu       sync.Mutex
	notices  []Notice
	max      int
	lifetime time.Duration
	now      func() time.Time
}

// NewFeed creates a feed whose notices auto-dismiss after lifetime.
func NewFeed(lifetime time.Duration) *Feed {
	if lifetime <= 0 {
		lifetime = 4 * time.Second
	}
	return &Feed{
		max:      defaultMaxNotices,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Push appends a notice. Blank messages are dropped.
func (f *Feed) Push(kind Kind, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.notices = append(f.notices, Notice{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		At:      f.now(),
	})
	if len(f.notices) > f.max {
		f.notices = f.notices[len(f.notices)-f.max:]
	}
}

// Active returns notices that have not yet expired, oldest first.
func (f *Feed) Active() []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := f.now().Add(-f.lifetime)
	live := f.notices[:0]
	for _, n := range f.notices {
		if n.At.After(cutoff) {
			live = append(live, n)
		}
	}
	f.notices = live

	out := make([]Notice, len(live))
	copy(out, live)
	return out
}

// Clear drops every notice immediately.
func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = nil
}
