// Package logfile persists the monitor's session log: a plain-text,
// append-only mirror of everything shown in the live and history panels.
//
// One line per event, pipe-delimited:
//
//	2026-08-27T14:03:12 | 2.25/40 | 3/12 | Current task: 3
//
// Session-start and session-end marker lines bracket the entries. Writes
// go straight to the file descriptor, so a crashed process loses at most
// the OS buffering window.
package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Iron-Ham/taskmon/internal/errors"
)

// entryTimeFormat is ISO-8601 with second precision.
const entryTimeFormat = "2006-01-02T15:04:05"

// DefaultFilename derives a timestamp-based log filename, e.g.
// "20260827T140312.log".
func DefaultFilename(now time.Time) string {
	return now.Format("20060102T150405") + ".log"
}

// Writer appends session log lines to a file. It is opened by the monitor
// on Start and closed on Stop; WriteEntry outside that window is a
// deliberate no-op so callers may log around session boundaries without
// guarding every call.
//
// Writer has its own mutex and is only touched by foreground update
// calls; the render loop never blocks on it.
type Writer struct {
	mu       sync.Mutex
	path     string
	f        *os.File
	openedAt time.Time
	now      func() time.Time
}

// NewWriter creates a Writer bound to dir/filename. An empty filename
// selects a timestamp-derived default. Nothing is touched on disk until
// Open.
func NewWriter(dir, filename string) *Writer {
	now := time.Now
	if filename == "" {
		filename = DefaultFilename(now())
	}
	return &Writer{
		path: filepath.Join(dir, filename),
		now:  now,
	}
}

// Path returns the log file path.
func (w *Writer) Path() string {
	return w.path
}

// Open creates the parent directory if absent, opens the file in append
// mode, and writes the session-start marker.
func (w *Writer) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f != nil {
		return nil
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewIOError("create log directory", dir, err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewIOError("open log file", w.path, err)
	}

	w.f = f
	w.openedAt = w.now()
	fmt.Fprintf(w.f, "================= Log started at %s =================\n",
		w.openedAt.Format(time.RFC3339))
	return nil
}

// WriteEntry appends one annotated line. No-op while the sink is closed.
func (w *Writer) WriteEntry(message, overallLabel, subtaskLabel string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return
	}

	fmt.Fprintf(w.f, "%s | %s | %s | %s\n",
		w.now().Format(entryTimeFormat), overallLabel, subtaskLabel, message)
}

// Close writes the session-end marker and the elapsed duration, then
// releases the file. Idempotent.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}

	now := w.now()
	fmt.Fprintf(w.f, "================= Task completed at %s =================\n",
		now.Format(time.RFC3339))
	fmt.Fprintf(w.f, "================= Time Elapse: %s =================\n",
		now.Sub(w.openedAt).Round(time.Second))

	err := w.f.Close()
	w.f = nil
	if err != nil {
		return errors.NewIOError("close log file", w.path, err)
	}
	return nil
}
