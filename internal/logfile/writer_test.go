package logfile

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/Iron-Ham/taskmon/internal/errors"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(data)
}

func TestWriter_OpenWriteClose(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "session.log")

	if err := w.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	w.WriteEntry("hello", "0.25/40", "3/12")
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content := readLog(t, filepath.Join(dir, "session.log"))

	if !strings.Contains(content, "Log started at") {
		t.Error("Expected a session-start marker")
	}
	if !strings.Contains(content, "Task completed at") {
		t.Error("Expected a session-end marker")
	}
	if !strings.Contains(content, "Time Elapse:") {
		t.Error("Expected an elapsed-duration marker")
	}
	if !strings.Contains(content, "| 0.25/40 | 3/12 | hello") {
		t.Errorf("Expected the annotated entry, got:\n%s", content)
	}
}

func TestWriter_EntryFormat(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "fmt.log")

	if err := w.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	w.WriteEntry("message with | pipes", "1.00/2", "4/4")
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content := readLog(t, filepath.Join(dir, "fmt.log"))

	// ISO-8601 second precision, then the two progress annotations.
	entryRe := regexp.MustCompile(`(?m)^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} \| 1\.00/2 \| 4/4 \| message with \| pipes$`)
	if !entryRe.MatchString(content) {
		t.Errorf("Entry line did not match expected format:\n%s", content)
	}
}

func TestWriter_CreatesNestedDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	w := NewWriter(dir, "nested.log")

	if err := w.Open(); err != nil {
		t.Fatalf("Open should create parent directories: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(filepath.Join(dir, "nested.log")); err != nil {
		t.Errorf("Expected log file to exist: %v", err)
	}
}

func TestWriter_WriteEntryWhileClosedIsNoop(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "closed.log")

	// Before Open: must not panic or create the file.
	w.WriteEntry("too early", "-/-", "-/-")
	if _, err := os.Stat(filepath.Join(dir, "closed.log")); !os.IsNotExist(err) {
		t.Error("WriteEntry before Open should not create the file")
	}

	if err := w.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// After Close: silently dropped.
	w.WriteEntry("too late", "-/-", "-/-")

	content := readLog(t, filepath.Join(dir, "closed.log"))
	if strings.Contains(content, "too early") || strings.Contains(content, "too late") {
		t.Errorf("Entries outside the session window should be dropped:\n%s", content)
	}
}

func TestWriter_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "idem.log")

	if err := w.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("First close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Second close should be a no-op, got %v", err)
	}

	content := readLog(t, filepath.Join(dir, "idem.log"))
	if got := strings.Count(content, "Task completed at"); got != 1 {
		t.Errorf("Expected exactly one end marker, got %d", got)
	}
}

func TestWriter_OpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, "once.log")

	if err := w.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := w.Open(); err != nil {
		t.Errorf("Second open should be a no-op, got %v", err)
	}
	defer w.Close()

	content := readLog(t, filepath.Join(dir, "once.log"))
	if got := strings.Count(content, "Log started at"); got != 1 {
		t.Errorf("Expected exactly one start marker, got %d", got)
	}
}

func TestWriter_OpenFailsOnBadPath(t *testing.T) {
	dir := t.TempDir()

	// A file where the log directory should be.
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	w := NewWriter(filepath.Join(blocker, "sub"), "x.log")
	err := w.Open()
	if err == nil {
		t.Fatal("Expected Open to fail when the directory cannot be created")
	}
	if !errors.IsIO(err) {
		t.Errorf("Expected an IOError, got %T: %v", err, err)
	}
}

func TestNewWriter_DefaultFilename(t *testing.T) {
	w := NewWriter(t.TempDir(), "")

	base := filepath.Base(w.Path())
	// e.g. 20260827T140312.log
	nameRe := regexp.MustCompile(`^\d{8}T\d{6}\.log$`)
	if !nameRe.MatchString(base) {
		t.Errorf("Expected a timestamp-derived filename, got %q", base)
	}
}

func TestWriter_AppendsAcrossSessions(t *testing.T) {
	dir := t.TempDir()

	first := NewWriter(dir, "shared.log")
	if err := first.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	first.WriteEntry("from first", "-/-", "-/-")
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewWriter(dir, "shared.log")
	if err := second.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	second.WriteEntry("from second", "-/-", "-/-")
	if err := second.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content := readLog(t, filepath.Join(dir, "shared.log"))
	if !strings.Contains(content, "from first") || !strings.Contains(content, "from second") {
		t.Errorf("Append mode should preserve earlier sessions:\n%s", content)
	}
	if got := strings.Count(content, "Log started at"); got != 2 {
		t.Errorf("Expected two start markers, got %d", got)
	}
}
