package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmon/internal/config"
	"github.com/Iron-Ham/taskmon/internal/logging"
	"github.com/Iron-Ham/taskmon/internal/monitor"
	"github.com/Iron-Ham/taskmon/internal/tui"
	"github.com/Iron-Ham/taskmon/internal/tui/styles"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a simulated multi-phase batch task",
	Long: `Run a simulated batch task through the monitor: a configurable number
of phases, each with a configurable number of steps, advancing on a
fixed delay. Useful for trying out themes and display settings.

Examples:
  # Default: 40 phases of 12 steps
  taskmon demo

  # Quick run
  taskmon demo --phases 5 --steps 4 --delay 50ms

  # Force the line-oriented output even on a terminal
  taskmon demo --plain`,
	RunE: runDemo,
}

var (
	demoPhases int
	demoSteps  int
	demoDelay  time.Duration
	demoPlain  bool
	demoFail   bool
)

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().IntVar(&demoPhases, "phases", 40, "Number of phases")
	demoCmd.Flags().IntVar(&demoSteps, "steps", 12, "Number of steps per phase")
	demoCmd.Flags().DurationVar(&demoDelay, "delay", 10*time.Millisecond, "Delay between steps")
	demoCmd.Flags().BoolVar(&demoPlain, "plain", false, "Use the line-oriented renderer")
	demoCmd.Flags().BoolVar(&demoFail, "fail", false, "Stop mid-run to exercise the failure path")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if demoPhases <= 0 || demoSteps <= 0 {
		return fmt.Errorf("phases and steps must be positive (got %d, %d)", demoPhases, demoSteps)
	}

	if cfg.Display.Theme != "" {
		theme, err := styles.LoadThemeFile(cfg.Display.Theme)
		if err != nil {
			return fmt.Errorf("load theme: %w", err)
		}
		theme.Apply()
	}

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("init debug logging: %w", err)
		}
		defer log.Close()
	}

	var renderer monitor.Renderer
	if demoPlain || cfg.Display.Plain {
		renderer = tui.NewPlainRenderer(cmd.ErrOrStderr())
	} else {
		renderer = tui.NewAutoRenderer(cfg.Display.LiveTitle, cfg.Display.HistoryTitle)
	}

	m := monitor.New(monitor.Config{
		LiveTitle:       cfg.Display.LiveTitle,
		HistoryTitle:    cfg.Display.HistoryTitle,
		LogDir:          cfg.Session.LogDir,
		LogFilename:     cfg.Session.LogFilename,
		HistorySize:     cfg.Display.HistorySize,
		RefreshInterval: cfg.Display.RefreshInterval(),
		Logger:          log.WithComponent("monitor"),
	}, renderer)

	return m.Run(func(m *monitor.Monitor) error {
		if err := m.InitOverall("Processing", demoPhases, 0); err != nil {
			return err
		}
		for i := 0; i < demoPhases; i++ {
			if err := m.InitSubtask(fmt.Sprintf("Phase %d", i), demoSteps); err != nil {
				return err
			}
			for j := 0; j < demoSteps; j++ {
				time.Sleep(demoDelay)
				if err := m.Advance(1, fmt.Sprintf("Status: %d", j)); err != nil {
					return err
				}
				if err := m.UpdateLiveInfo(fmt.Sprintf("Current task: %d", j)); err != nil {
					return err
				}
			}
			if err := m.UpdateStaticInfo(fmt.Sprintf("Phase: %d completed, total tasks: %d", i, demoPhases)); err != nil {
				return err
			}
			if demoFail && i >= demoPhases/2 {
				return fmt.Errorf("simulated failure in phase %d", i)
			}
		}
		return nil
	})
}
