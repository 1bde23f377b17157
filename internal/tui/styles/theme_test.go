package styles

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}
	return path
}

func TestLoadThemeFile_Valid(t *testing.T) {
	path := writeTheme(t, `
name: Test Theme
colors:
  primary: "#FF0000"
  subtask: "#0F0"
`)

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile failed: %v", err)
	}

	if theme.Name != "Test Theme" {
		t.Errorf("Expected name 'Test Theme', got %q", theme.Name)
	}
	if theme.Colors.Primary != "#FF0000" {
		t.Errorf("Expected primary #FF0000, got %q", theme.Colors.Primary)
	}
}

func TestLoadThemeFile_MissingName(t *testing.T) {
	path := writeTheme(t, `
colors:
  primary: "#FF0000"
`)

	if _, err := LoadThemeFile(path); err != ErrNoThemeName {
		t.Errorf("Expected ErrNoThemeName, got %v", err)
	}
}

func TestLoadThemeFile_InvalidColor(t *testing.T) {
	path := writeTheme(t, `
name: Bad
colors:
  error: "red"
`)

	if _, err := LoadThemeFile(path); err == nil {
		t.Error("Expected an error for a non-hex color")
	}
}

func TestLoadThemeFile_MissingFile(t *testing.T) {
	if _, err := LoadThemeFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestThemeFile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		theme   ThemeFile
		wantErr bool
	}{
		{"valid full hex", ThemeFile{Name: "x", Colors: ThemeColors{Primary: "#AABBCC"}}, false},
		{"valid short hex", ThemeFile{Name: "x", Colors: ThemeColors{Border: "#ABC"}}, false},
		{"empty colors ok", ThemeFile{Name: "x"}, false},
		{"bad hex", ThemeFile{Name: "x", Colors: ThemeColors{Muted: "#GGHHII"}}, true},
		{"no name", ThemeFile{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.theme.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
