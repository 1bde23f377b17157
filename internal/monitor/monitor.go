// Package monitor implements the progress display session: the shared
// display state (progress bars, live panel, bounded scrollback), the
// background refresh loop that repaints it, and the file-backed session
// log kept consistent with what is shown.
//
// A Monitor is driven from one foreground goroutine issuing update calls
// while a background ticker independently re-renders the current state.
// All state mutations and snapshot reads happen under one mutex; the
// refresh loop uses TryLock and skips a frame rather than block behind
// the foreground.
package monitor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Iron-Ham/taskmon/internal/errors"
	"github.com/Iron-Ham/taskmon/internal/logfile"
	"github.com/Iron-Ham/taskmon/internal/logging"
	"github.com/Iron-Ham/taskmon/internal/progress"
	"github.com/Iron-Ham/taskmon/internal/scrollback"
	"github.com/Iron-Ham/taskmon/internal/tui/styles"
)

// DefaultRefreshInterval is the background repaint cadence.
const DefaultRefreshInterval = 100 * time.Millisecond

// loopStopTimeout bounds how long Stop waits for the refresh loop to exit.
const loopStopTimeout = time.Second

// finishedMessage is shown in the live panel once the session completes.
const finishedMessage = "All Tasks Finished!"

// State is the session lifecycle state.
type State int

const (
	// StateNotStarted is the initial state, before Start.
	StateNotStarted State = iota
	// StateStarted is the active state during which updates are accepted.
	StateStarted
	// StateStopped is the terminal state. Restart is not supported.
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config controls a Monitor's display titles, session log location, and
// refresh behavior. The zero value is usable; defaults are applied at
// construction.
type Config struct {
	// LiveTitle is the live-info panel title.
	LiveTitle string
	// HistoryTitle is the static history panel title.
	HistoryTitle string
	// LogDir is the session log directory. Created if missing.
	LogDir string
	// LogFilename names the session log file. Empty selects a
	// timestamp-derived name.
	LogFilename string
	// HistorySize caps the scrollback buffer.
	HistorySize int
	// RefreshInterval is the background repaint cadence.
	RefreshInterval time.Duration
	// Output receives the final history dump and the success/failure
	// summary on Stop. Defaults to os.Stdout.
	Output io.Writer
	// Logger receives debug events. Defaults to a no-op logger.
	Logger *logging.Logger
}

func (c *Config) applyDefaults() {
	if c.LiveTitle == "" {
		c.LiveTitle = "Current Status"
	}
	if c.HistoryTitle == "" {
		c.HistoryTitle = "History Log"
	}
	if c.LogDir == "" {
		c.LogDir = "."
	}
	if c.HistorySize <= 0 {
		c.HistorySize = scrollback.DefaultCapacity
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Logger == nil {
		c.Logger = logging.NopLogger()
	}
}

// Monitor is the display session orchestrator. It exclusively owns the
// progress tracker, the history buffer, and the session log; the renderer
// only ever receives snapshots.
type Monitor struct {
	mu sync.Mutex

	cfg      Config
	state    State
	tracker  *progress.Tracker
	history  *scrollback.Buffer
	liveInfo string
	logw     *logfile.Writer
	renderer Renderer
	log      *logging.Logger

	startedAt time.Time
	stoppedAt time.Time

	done        chan struct{}
	loopStopped chan struct{}
}

// New creates a Monitor with the given configuration and renderer.
// A nil renderer falls back to NopRenderer. Nothing runs and no file is
// touched until Start.
func New(cfg Config, r Renderer) *Monitor {
	cfg.applyDefaults()
	if r == nil {
		r = NopRenderer{}
	}
	return &Monitor{
		cfg:      cfg,
		tracker:  progress.NewTracker(),
		history:  scrollback.NewBuffer(cfg.HistorySize),
		liveInfo: "Waiting for first update...",
		logw:     logfile.NewWriter(cfg.LogDir, cfg.LogFilename),
		renderer: r,
		log:      cfg.Logger,
	}
}

// LogPath returns the session log file path.
func (m *Monitor) LogPath() string {
	return m.logw.Path()
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start opens the session log, acquires the renderer, and launches the
// background refresh loop. No-op when already Started; a Stopped monitor
// cannot be restarted and returns ErrStopped.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateStarted:
		return nil
	case StateStopped:
		return errors.ErrStopped
	}

	if err := m.logw.Open(); err != nil {
		return err
	}
	if err := m.renderer.Start(); err != nil {
		m.logw.Close()
		return fmt.Errorf("start renderer: %w", err)
	}

	m.state = StateStarted
	m.startedAt = time.Now()
	m.done = make(chan struct{})
	m.loopStopped = make(chan struct{})
	go m.refreshLoop(m.done, m.loopStopped)

	m.log.Info("monitor started", "log_path", m.logw.Path())
	return nil
}

// Stop completes the session: clears the tracker, forces a final render,
// terminates the refresh loop, releases the renderer, dumps the history
// buffer and a colored success/failure summary to the configured output,
// and closes the session log. No-op unless Started.
func (m *Monitor) Stop(success bool) error {
	m.mu.Lock()
	if m.state != StateStarted {
		m.mu.Unlock()
		return nil
	}

	m.tracker.Complete()
	m.liveInfo = finishedMessage
	m.state = StateStopped
	m.stoppedAt = time.Now()

	final := m.snapshotLocked()
	final.Final = true
	final.Success = success
	final.Elapsed = m.stoppedAt.Sub(m.startedAt)

	done := m.done
	loopStopped := m.loopStopped
	m.mu.Unlock()

	// Terminate the ticker with a bounded wait before touching the
	// renderer from this goroutine.
	close(done)
	select {
	case <-loopStopped:
	case <-time.After(loopStopTimeout):
		m.log.Warn("refresh loop did not stop in time")
	}

	m.renderer.Render(final)
	releaseErr := m.renderer.Release()

	m.printSummary(final)

	closeErr := m.logw.Close()

	m.log.Info("monitor stopped", "success", success, "elapsed", final.Elapsed.String())
	return errors.Join(releaseErr, closeErr)
}

// Run executes fn inside a started session and guarantees Stop on every
// exit path. The session succeeds when fn returns nil; fn's error (or
// panic) propagates to the caller unchanged, and Stop failures never mask
// it.
func (m *Monitor) Run(fn func(*Monitor) error) (err error) {
	if startErr := m.Start(); startErr != nil {
		return startErr
	}
	defer func() {
		if r := recover(); r != nil {
			_ = m.Stop(false)
			panic(r)
		}
	}()

	err = fn(m)
	if stopErr := m.Stop(err == nil); stopErr != nil && err == nil {
		err = stopErr
	}
	return err
}

// InitOverall declares the overall task shape, replacing any prior one.
// startPhase seeds the completed counter and may be fractional.
func (m *Monitor) InitOverall(title string, totalPhases int, startPhase float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateStarted {
		return errors.ErrNotStarted
	}
	m.tracker.InitOverall(title, totalPhases, startPhase)
	return nil
}

// InitSubtask declares the current phase's subtask shape, replacing any
// prior subtask and resetting its counter.
func (m *Monitor) InitSubtask(title string, totalTasks int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateStarted {
		return errors.ErrNotStarted
	}
	return m.tracker.InitSubtask(title, totalTasks)
}

// Advance records step completed subtask units and propagates the
// proportional slice to the overall task. info annotates the subtask's
// progress bar.
func (m *Monitor) Advance(step int, info string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateStarted {
		return errors.ErrNotStarted
	}
	return m.tracker.Advance(step, info)
}

// UpdateLiveInfo replaces the live panel content and mirrors the line to
// the session log.
func (m *Monitor) UpdateLiveInfo(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateStarted {
		return errors.ErrNotStarted
	}
	m.liveInfo = text
	m.logw.WriteEntry(text, m.tracker.OverallLabel(), m.tracker.SubtaskLabel())
	return nil
}

// UpdateStaticInfo appends a line to the history panel and mirrors it to
// the session log. The oldest history entries are evicted beyond the
// configured capacity.
func (m *Monitor) UpdateStaticInfo(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateStarted {
		return errors.ErrNotStarted
	}
	m.history.Push(text)
	m.logw.WriteEntry(text, m.tracker.OverallLabel(), m.tracker.SubtaskLabel())
	return nil
}

// Complete marks all tasks finished: clears the tracker, switches the
// live panel to the finished message, and forces one render pass.
// No-op unless Started.
func (m *Monitor) Complete() {
	m.mu.Lock()
	if m.state != StateStarted {
		m.mu.Unlock()
		return
	}
	m.tracker.Complete()
	m.liveInfo = finishedMessage
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.renderer.Render(snap)
}

// Snapshot returns a copy of the current display state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// snapshotLocked builds a Snapshot. Callers must hold m.mu.
func (m *Monitor) snapshotLocked() Snapshot {
	snap := Snapshot{
		Overall:      m.tracker.Overall(),
		Subtask:      m.tracker.Subtask(),
		LiveInfo:     m.liveInfo,
		History:      m.history.Snapshot(),
		HistoryTotal: m.history.Total(),
		StartedAt:    m.startedAt,
	}
	if !m.startedAt.IsZero() {
		snap.Elapsed = time.Since(m.startedAt)
	}
	return snap
}

// refreshLoop repaints the display on a fixed tick until done closes.
// A tick that finds the foreground holding the lock skips its frame.
func (m *Monitor) refreshLoop(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(m.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if !m.mu.TryLock() {
				continue
			}
			if m.state != StateStarted {
				m.mu.Unlock()
				return
			}
			snap := m.snapshotLocked()
			m.mu.Unlock()
			m.renderer.Render(snap)
		}
	}
}

// printSummary writes the history dump and the terminal success/failure
// lines to the configured output.
func (m *Monitor) printSummary(final Snapshot) {
	if len(final.History) > 0 {
		fmt.Fprintln(m.cfg.Output, strings.Join(final.History, "\n"))
	}

	if final.Success {
		fmt.Fprintln(m.cfg.Output, styles.SuccessLine.Render("✓ Task Completed Successfully"))
	} else {
		fmt.Fprintln(m.cfg.Output, styles.FailureLine.Render("✗ Task Failed"))
	}
	fmt.Fprintln(m.cfg.Output, styles.ElapsedLine.Render(
		fmt.Sprintf("Time Elapse: %s", final.Elapsed.Round(time.Millisecond))))
}
