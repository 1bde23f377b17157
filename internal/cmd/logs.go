package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/taskmon/internal/config"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View session logs",
	Long: `View and filter session log files.

By default, shows the most recent session log in the configured log
directory. Use flags to pick a file, limit, or filter the output.

Examples:
  # Show last 50 lines of the most recent session
  taskmon logs

  # Show a whole specific session file
  taskmon logs -F 20260827T141502.log -n 0

  # Follow a running session
  taskmon logs -f

  # Search for specific entries
  taskmon logs --grep "Phase: 3"`,
	RunE: runLogs,
}

var (
	logsFile   string
	logsTail   int
	logsFollow bool
	logsGrep   string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVarP(&logsFile, "file", "F", "", "Session log filename (default: most recent)")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of lines to show (0 for all)")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := logsFile
	if logPath == "" {
		logPath, err = latestSessionLog(cfg.Session.LogDir)
		if err != nil {
			return err
		}
		if logPath == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No session logs found in %s\n", cfg.Session.LogDir)
			return nil
		}
	} else if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(cfg.Session.LogDir, logPath)
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		return fmt.Errorf("session log not found: %s", logPath)
	}

	var grepRegex *regexp.Regexp
	if logsGrep != "" {
		grepRegex, err = regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
	}

	if logsFollow {
		return followSessionLog(cmd.OutOrStdout(), logPath, grepRegex)
	}
	return displaySessionLog(cmd.OutOrStdout(), logPath, logsTail, grepRegex)
}

// latestSessionLog returns the most recently modified .log file in dir,
// or "" when the directory holds none.
func latestSessionLog(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return "", fmt.Errorf("scan log directory: %w", err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	sort.Slice(matches, func(i, j int) bool {
		fi, errI := os.Stat(matches[i])
		fj, errJ := os.Stat(matches[j])
		if errI != nil || errJ != nil {
			return matches[i] > matches[j]
		}
		return fi.ModTime().After(fj.ModTime())
	})
	return matches[0], nil
}

// displaySessionLog reads the session log and prints filtered lines
func displaySessionLog(w io.Writer, logPath string, tail int, grepRegex *regexp.Regexp) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if grepRegex != nil && !grepRegex.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read session log: %w", err)
	}

	if tail > 0 && len(lines) > tail {
		lines = lines[len(lines)-tail:]
	}

	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, "No matching log entries found.")
	}
	return nil
}

// followSessionLog implements tail -f behavior for the session log
func followSessionLog(w io.Writer, logPath string, grepRegex *regexp.Regexp) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	fmt.Fprintf(w, "Following %s... (Ctrl+C to stop)\n\n", filepath.Base(logPath))

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// No new data, wait briefly and try again
				time.Sleep(100 * time.Millisecond)
				continue
			}
			return fmt.Errorf("read session log: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if grepRegex != nil && !grepRegex.MatchString(line) {
			continue
		}
		fmt.Fprintln(w, line)
	}
}
