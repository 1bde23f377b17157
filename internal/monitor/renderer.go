package monitor

import (
	"time"

	"github.com/Iron-Ham/taskmon/internal/progress"
)

// Snapshot is an immutable copy of the display state, taken under the
// monitor's lock and handed to the renderer. Renderers never see the
// live state, so a subtask can never be replaced mid-render.
type Snapshot struct {
	// Overall is the top-level task, nil when none is active.
	Overall *progress.Task
	// Subtask is the current phase's task, nil when none is active.
	Subtask *progress.Task
	// LiveInfo is the live panel content.
	LiveInfo string
	// History is the bounded scrollback, oldest first.
	History []string
	// HistoryTotal counts every line ever pushed, including evicted
	// ones. Monotonic across snapshots.
	HistoryTotal int
	// StartedAt is when the session started.
	StartedAt time.Time
	// Elapsed is the session duration at snapshot time.
	Elapsed time.Duration
	// Final marks the last frame of the session.
	Final bool
	// Success reports the session outcome. Only meaningful when Final.
	Success bool
}

// Renderer is the capability the monitor needs from a display surface.
// The core state machine depends only on this interface, so it is
// testable without a terminal attached.
//
// Render receives a self-contained Snapshot and must not block: the
// monitor's refresh ticker calls it on every frame.
type Renderer interface {
	// Start acquires the display surface (e.g. enters the alt screen).
	Start() error
	// Render repaints the surface from the snapshot.
	Render(snap Snapshot)
	// Release tears down the surface and restores the terminal.
	Release() error
}

// NopRenderer discards all frames. Used when no display is wanted and as
// the default when a Monitor is constructed with a nil renderer.
type NopRenderer struct{}

// Start implements Renderer.
func (NopRenderer) Start() error { return nil }

// Render implements Renderer.
func (NopRenderer) Render(Snapshot) {}

// Release implements Renderer.
func (NopRenderer) Release() error { return nil }
