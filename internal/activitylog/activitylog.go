// Package activitylog keeps a bounded, display-ready history of IR activity.
package activitylog

import (
	"strings"
	"sync"
)

// DefaultCapacity is the number of entries kept per log.
const DefaultCapacity = 30

const (
	noneEntry = "none"
	emptyDump = "empty\n"
)

// Log is a fixed-capacity ring of formatted lines. When full, Push evicts
// the oldest line before appending.
type Log struct {
	mu    sync.Mutex
	buf   []string
	head  int // next write position
	tail  int // oldest entry
	count int
}

// New returns a log holding at most capacity entries. Capacities below 1
// fall back to DefaultCapacity.
func New(capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{buf: make([]string, capacity)}
}

// Push appends entry, dropping the oldest entry first if the log is full.
func (l *Log) Push(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == len(l.buf) {
		l.popLocked()
	}
	l.buf[l.head] = entry
	l.head = (l.head + 1) % len(l.buf)
	l.count++
}

// Pop removes and returns the oldest entry, or "" when empty.
func (l *Log) Pop() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.popLocked()
}

func (l *Log) popLocked() string {
	if l.count == 0 {
		return ""
	}
	v := l.buf[l.tail]
	l.buf[l.tail] = ""
	l.tail = (l.tail + 1) % len(l.buf)
	l.count--
	return v
}

// Peek returns the newest entry without removing it, or "none" when empty.
func (l *Log) Peek() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 {
		return noneEntry
	}
	return l.buf[(l.head-1+len(l.buf))%len(l.buf)]
}

// Dump renders entries oldest first, one per line, or "empty\n".
func (l *Log) Dump() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 {
		return emptyDump
	}
	var b strings.Builder
	for i := 0; i < l.count; i++ {
		b.WriteString(l.buf[(l.tail+i)%len(l.buf)])
		b.WriteByte('\n')
	}
	return b.String()
}

// Entries returns a copy of the held entries, oldest first.
func (l *Log) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, l.count)
	for i := range out {
		out[i] = l.buf[(l.tail+i)%len(l.buf)]
	}
	return out
}

func (l *Log) IsEmpty() bool { return l.Size() == 0 }

func (l *Log) IsFull() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count == len(l.buf)
}

// Size is the number of held entries.
func (l *Log) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Cap is the fixed capacity.
func (l *Log) Cap() int { return len(l.buf) }
