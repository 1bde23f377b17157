// Package tui implements the terminal display surface for the monitor:
// a bubbletea program rendering three regions (progress bars, live-info
// panel, history panel) from state snapshots pushed by the monitor's
// refresh loop.
package tui

import (
	"fmt"
	"strings"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/taskmon/internal/monitor"
	"github.com/Iron-Ham/taskmon/internal/progress"
	"github.com/Iron-Ham/taskmon/internal/scrollback"
	"github.com/Iron-Ham/taskmon/internal/tui/styles"
)

// Layout constants for the three display regions.
const (
	// progressRegionHeight is the fixed height of the progress block.
	progressRegionHeight = 3

	// liveRegionHeight is the fixed height of the live-info panel,
	// including its border.
	liveRegionHeight = 3

	// panelChromeHeight is the vertical space a bordered panel adds
	// around its content.
	panelChromeHeight = 2

	// panelChromeWidth is the horizontal space a bordered panel adds
	// around its content (border + padding).
	panelChromeWidth = 6

	// barWidthOffset is the space reserved next to each bar for its
	// title, counts, and annotations.
	barWidthOffset = 40

	// minBarWidth keeps bars legible on narrow terminals.
	minBarWidth = 10
)

// snapshotMsg delivers a monitor snapshot to the model.
type snapshotMsg struct {
	snap monitor.Snapshot
}

// model is the bubbletea model for the display surface.
type model struct {
	liveTitle    string
	historyTitle string

	width  int
	height int
	ready  bool

	snap       monitor.Snapshot
	overallBar progressbar.Model
	subtaskBar progressbar.Model
}

func newModel(liveTitle, historyTitle string) model {
	newBar := func() progressbar.Model {
		b := progressbar.New(progressbar.WithDefaultGradient())
		b.ShowPercentage = false
		return b
	}
	return model{
		liveTitle:    liveTitle,
		historyTitle: historyTitle,
		overallBar:   newBar(),
		subtaskBar:   newBar(),
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The surface is display-only: the monitor
// owns the lifecycle, so key input is ignored apart from ctrl+c, which
// detaches the surface without stopping the session.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		barWidth := max(m.width-barWidthOffset, minBarWidth)
		m.overallBar.Width = barWidth
		m.subtaskBar.Width = barWidth
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model, rendering the three regions stacked
// vertically: progress bars, live panel, history panel.
func (m model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderProgressRegion())
	b.WriteString("\n")
	b.WriteString(m.renderLivePanel())
	b.WriteString("\n")
	b.WriteString(m.renderHistoryPanel())
	return b.String()
}

// renderProgressRegion renders the overall and subtask bars.
func (m model) renderProgressRegion() string {
	lines := make([]string, 0, 2)

	if m.snap.Overall != nil {
		lines = append(lines, m.renderBarLine(
			styles.OverallTitle, *m.snap.Overall, m.overallBar,
			fmt.Sprintf("%.2f/%d", m.snap.Overall.Completed, m.snap.Overall.Total)))
	}
	if m.snap.Subtask != nil {
		lines = append(lines, m.renderBarLine(
			styles.SubtaskTitle, *m.snap.Subtask, m.subtaskBar,
			fmt.Sprintf("%d/%d", int(m.snap.Subtask.Completed), m.snap.Subtask.Total)))
	}
	if len(lines) == 0 {
		lines = append(lines, styles.Muted.Render("No active task"))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Height(progressRegionHeight - 1).Render(content)
}

// renderBarLine renders one task as title, bar, counts, percent, elapsed
// and the latest info annotation.
func (m model) renderBarLine(titleStyle lipgloss.Style, task progress.Task, bar progressbar.Model, counts string) string {
	parts := []string{
		titleStyle.Render(padTitle(task.Title)),
		bar.ViewAs(task.Percent()),
		fmt.Sprintf("%3.0f%%", task.Percent()*100),
		styles.Muted.Render(counts),
		styles.Muted.Render("=> " + formatElapsed(m.snap.Elapsed)),
	}
	if task.Info != "" {
		parts = append(parts, styles.Text.Render(task.Info))
	}
	return strings.Join(parts, " ")
}

// renderLivePanel renders the bordered live-info region.
func (m model) renderLivePanel() string {
	infoStyle := styles.Text
	if m.snap.Final {
		infoStyle = styles.Finished
	}
	content := styles.PanelTitle.Render(m.liveTitle) + "  " + infoStyle.Render(m.snap.LiveInfo)
	return styles.Panel.Width(max(m.width-panelChromeWidth, minBarWidth)).Render(content)
}

// renderHistoryPanel renders the bordered history region, tail-clipped
// to the space left below the other two regions.
func (m model) renderHistoryPanel() string {
	panelHeight := m.height - progressRegionHeight - liveRegionHeight - panelChromeHeight
	innerHeight := panelHeight - 1 // title line

	visible := scrollback.Tail(m.snap.History, innerHeight)

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render(m.historyTitle))
	for _, line := range visible {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(line))
	}

	return styles.Panel.
		Width(max(m.width-panelChromeWidth, minBarWidth)).
		Height(max(panelHeight, 1)).
		Render(b.String())
}

// padTitle aligns bar titles so the bars line up.
func padTitle(title string) string {
	const width = 18
	if len(title) > width {
		return title[:width-1] + "…"
	}
	return fmt.Sprintf("%-*s", width, title)
}

// formatElapsed renders a duration compactly for the bar line.
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
