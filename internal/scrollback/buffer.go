// Package scrollback provides the bounded history buffer and tail
// rendering used by the monitor's static history panel.
//
// Buffer is a fixed-capacity, append-only sequence of lines with FIFO
// eviction. Tail computes the subset of a snapshot that fits a viewport,
// aligned to the most recent entries. The buffer is mutated only by the
// monitor's foreground calls; the render loop reads snapshots, so no
// locking lives here.
package scrollback

// DefaultCapacity is the history size used when none is configured.
const DefaultCapacity = 1000

// Buffer is a fixed-capacity ordered sequence of lines.
// When a push exceeds capacity the oldest entries are evicted.
type Buffer struct {
	lines []string
	cap   int
	total int
}

// NewBuffer creates a Buffer with the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		lines: make([]string, 0, capacity),
		cap:   capacity,
	}
}

// Push appends a line, evicting the oldest entries if the buffer
// would exceed its capacity.
func (b *Buffer) Push(line string) {
	b.total++
	b.lines = append(b.lines, line)
	if overflow := len(b.lines) - b.cap; overflow > 0 {
		// Shift in place so the backing array does not grow unbounded.
		copy(b.lines, b.lines[overflow:])
		b.lines = b.lines[:b.cap]
	}
}

// Snapshot returns a copy of the current contents, oldest first.
// The returned slice is owned by the caller.
func (b *Buffer) Snapshot() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of lines currently held.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Cap returns the buffer's capacity.
func (b *Buffer) Cap() int {
	return b.cap
}

// Total returns the number of lines ever pushed, including evicted ones.
// Monotonic, so consumers can tell new lines from repeats across
// snapshots even after eviction starts.
func (b *Buffer) Total() int {
	return b.total
}
