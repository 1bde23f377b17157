// Package progress tracks hierarchical task progress: one overall task
// spanning multiple phases, and the current phase's subtask.
//
// The key accounting rule is fractional propagation: each subtask step
// contributes step/total of one overall unit, so completing an N-step
// subtask advances the overall task by exactly one unit regardless of N.
//
// The tracker is a passive data structure. Lifecycle gating and locking
// are owned by the monitor, which serializes all access.
package progress

import (
	"fmt"

	"github.com/Iron-Ham/taskmon/internal/errors"
)

// Task is a snapshot of a single progress counter.
type Task struct {
	// Title is the display description.
	Title string
	// Total is the number of units in this task.
	Total int
	// Completed is the number of completed units. Fractional for the
	// overall task, integral for subtasks.
	Completed float64
	// Info is the most recent status annotation from Advance.
	Info string
}

// Percent returns completion as 0-1, clamped for display.
// Accounting is never clamped; over-stepping keeps accumulating in
// Completed, only the displayed ratio saturates at 1.
func (t Task) Percent() float64 {
	if t.Total <= 0 {
		return 0
	}
	p := t.Completed / float64(t.Total)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Tracker owns the overall task and the current subtask counters.
type Tracker struct {
	overall *Task
	subtask *Task
}

// NewTracker creates an empty tracker with no active tasks.
func NewTracker() *Tracker {
	return &Tracker{}
}

// InitOverall declares the overall task shape, replacing any prior one.
// startPhase seeds the completed counter and may be fractional, e.g. when
// resuming mid-phase.
func (tr *Tracker) InitOverall(title string, totalPhases int, startPhase float64) {
	tr.overall = &Task{
		Title:     title,
		Total:     totalPhases,
		Completed: startPhase,
	}
}

// InitSubtask declares the current phase's subtask shape, replacing any
// prior subtask and resetting its completed counter to zero.
// Returns a validation error when totalTasks is not positive; this guard
// is what makes the division in Advance safe.
func (tr *Tracker) InitSubtask(title string, totalTasks int) error {
	if totalTasks <= 0 {
		return errors.NewValidationError("total_tasks", totalTasks, "must be a positive integer").
			WithCause(errors.ErrInvalidTotal)
	}
	tr.subtask = &Task{
		Title: title,
		Total: totalTasks,
	}
	return nil
}

// Advance records step completed subtask units and propagates the
// proportional slice to the overall task. Over-stepping past the subtask
// total is not clamped.
func (tr *Tracker) Advance(step int, info string) error {
	if tr.subtask == nil {
		return errors.ErrNoSubtask
	}
	tr.subtask.Completed += float64(step)
	tr.subtask.Info = info
	if tr.overall != nil {
		tr.overall.Completed += float64(step) / float64(tr.subtask.Total)
	}
	return nil
}

// Complete clears both tasks. Idempotent.
func (tr *Tracker) Complete() {
	tr.overall = nil
	tr.subtask = nil
}

// Overall returns a copy of the overall task, or nil when none is active.
func (tr *Tracker) Overall() *Task {
	if tr.overall == nil {
		return nil
	}
	t := *tr.overall
	return &t
}

// Subtask returns a copy of the current subtask, or nil when none is active.
func (tr *Tracker) Subtask() *Task {
	if tr.subtask == nil {
		return nil
	}
	t := *tr.subtask
	return &t
}

// OverallLabel formats the overall counters for log annotation,
// e.g. "2.25/40". Returns "-/-" when no overall task is active.
func (tr *Tracker) OverallLabel() string {
	if tr.overall == nil {
		return "-/-"
	}
	return fmt.Sprintf("%.2f/%d", tr.overall.Completed, tr.overall.Total)
}

// SubtaskLabel formats the subtask counters for log annotation,
// e.g. "3/12". Returns "-/-" when no subtask is active.
func (tr *Tracker) SubtaskLabel() string {
	if tr.subtask == nil {
		return "-/-"
	}
	return fmt.Sprintf("%d/%d", int(tr.subtask.Completed), tr.subtask.Total)
}
