package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/Iron-Ham/taskmon/internal/monitor"
)

// quitTimeout bounds how long Release waits for the program to exit.
const quitTimeout = 2 * time.Second

// Renderer drives a bubbletea program from monitor snapshots. It
// implements monitor.Renderer: the program runs in the alt screen and
// repaints whenever a snapshot message arrives.
type Renderer struct {
	liveTitle    string
	historyTitle string

	prog *tea.Program
	done chan struct{}
}

// NewRenderer creates a bubbletea-backed renderer with the given panel
// titles. The terminal is not touched until Start.
func NewRenderer(liveTitle, historyTitle string) *Renderer {
	return &Renderer{
		liveTitle:    liveTitle,
		historyTitle: historyTitle,
	}
}

// Start enters the alt screen and runs the program in the background.
func (r *Renderer) Start() error {
	r.prog = tea.NewProgram(
		newModel(r.liveTitle, r.historyTitle),
		tea.WithAltScreen(),
	)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		if _, err := r.prog.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "display error: %v\n", err)
		}
	}()
	return nil
}

// Render pushes a snapshot to the program. Send is non-blocking with
// respect to terminal I/O, so the monitor's ticker never stalls here.
func (r *Renderer) Render(snap monitor.Snapshot) {
	if r.prog == nil {
		return
	}
	r.prog.Send(snapshotMsg{snap: snap})
}

// Release quits the program and restores the terminal, waiting a bounded
// time for the event loop to wind down.
func (r *Renderer) Release() error {
	if r.prog == nil {
		return nil
	}
	r.prog.Quit()
	select {
	case <-r.done:
	case <-time.After(quitTimeout):
		r.prog.Kill()
	}
	r.prog = nil
	return nil
}

// NewAutoRenderer picks the display surface for the current environment:
// the bubbletea surface on a real terminal, the plain line renderer
// everywhere else (pipes, CI).
func NewAutoRenderer(liveTitle, historyTitle string) monitor.Renderer {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return NewRenderer(liveTitle, historyTitle)
	}
	// Progress chatter goes to stderr so piped stdout stays clean; the
	// monitor still writes its final dump and summary to stdout.
	return NewPlainRenderer(os.Stderr)
}
