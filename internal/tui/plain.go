package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/Iron-Ham/taskmon/internal/monitor"
)

// PlainRenderer is the non-terminal fallback surface: it prints each new
// history line once, as it appears, and never repaints. Suitable for
// pipes and CI logs where cursor control would only produce noise.
type PlainRenderer struct {
	mu      sync.Mutex
	w       io.Writer
	printed int
}

// NewPlainRenderer creates a PlainRenderer writing to w.
func NewPlainRenderer(w io.Writer) *PlainRenderer {
	return &PlainRenderer{w: w}
}

// Start implements monitor.Renderer.
func (r *PlainRenderer) Start() error {
	return nil
}

// Render prints history lines that were not seen in earlier frames.
// HistoryTotal is monotonic, so the new lines are exactly the last
// (HistoryTotal - printed) entries of the snapshot, even after the
// buffer starts evicting from the front.
func (r *PlainRenderer) Render(snap monitor.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fresh := snap.HistoryTotal - r.printed
	if fresh <= 0 {
		return
	}
	if fresh > len(snap.History) {
		// Evicted before we ever saw them; print what survives.
		fresh = len(snap.History)
	}
	for _, line := range snap.History[len(snap.History)-fresh:] {
		fmt.Fprintln(r.w, line)
	}
	r.printed = snap.HistoryTotal
}

// Release implements monitor.Renderer.
func (r *PlainRenderer) Release() error {
	return nil
}
