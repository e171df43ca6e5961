// Package diag keeps a small in-process record of what was injected, for
// the host's diagnostics display. State lives for the process lifetime and
// resets only on restart.
package diag

import (
	"sync"
	"time"
)

// DefaultCapacity bounds the injection history.
const DefaultCapacity = 20

// Entry describes one injection.
type Entry struct {
	At       time.Time
	Memories []string
	Chars    int
}

// Diagnostics records recent injections, most-recent-first, and a running
// character total for the session.
type Diagnostics struct {
	mu       sync.RWMutex
	capacity int
	recent   []Entry
	total    int
}

// New returns diagnostics holding at most capacity entries; capacity <= 0
// uses DefaultCapacity.
func New(capacity int) *Diagnostics {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Diagnostics{capacity: capacity}
}

// Record notes one injection. Empty injections (nothing selected) are
// recorded with zero chars so "last turn injected nothing" is visible.
func (d *Diagnostics) Record(memories []string, injected string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e := Entry{
		At:       time.Now(),
		Memories: append([]string(nil), memories...),
		Chars:    len(injected),
	}
	d.recent = append([]Entry{e}, d.recent...)
	if len(d.recent) > d.capacity {
		d.recent = d.recent[:d.capacity]
	}
	d.total += e.Chars
}

// Recent returns the injection history, most recent first.
func (d *Diagnostics) Recent() []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Entry, len(d.recent))
	copy(out, d.recent)
	return out
}

// Last returns the most recent entry, if any.
func (d *Diagnostics) Last() (Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.recent) == 0 {
		return Entry{}, false
	}
	return d.recent[0], true
}

// TotalChars returns the characters injected since process start.
func (d *Diagnostics) TotalChars() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.total
}
