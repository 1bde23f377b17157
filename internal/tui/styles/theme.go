package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Solarized Dark")
	Name string `yaml:"name"`
	// Colors defines the color palette
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains the color definitions for a theme.
// All colors are hex format (#RRGGBB or #RGB); empty fields keep the
// built-in default.
type ThemeColors struct {
	Primary   string `yaml:"primary,omitempty"`
	Secondary string `yaml:"secondary,omitempty"`
	Warning   string `yaml:"warning,omitempty"`
	Error     string `yaml:"error,omitempty"`
	Muted     string `yaml:"muted,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Border    string `yaml:"border,omitempty"`
	Overall   string `yaml:"overall,omitempty"`
	Subtask   string `yaml:"subtask,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// ErrNoThemeName indicates a theme file without a name field.
var ErrNoThemeName = errors.New("theme file must have a name")

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parse theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return &theme, nil
}

// Validate checks the theme's name and color formats.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return ErrNoThemeName
	}

	colors := map[string]string{
		"primary":   t.Colors.Primary,
		"secondary": t.Colors.Secondary,
		"warning":   t.Colors.Warning,
		"error":     t.Colors.Error,
		"muted":     t.Colors.Muted,
		"text":      t.Colors.Text,
		"border":    t.Colors.Border,
		"overall":   t.Colors.Overall,
		"subtask":   t.Colors.Subtask,
	}
	for field, value := range colors {
		if value != "" && !hexColorRegex.MatchString(value) {
			return fmt.Errorf("invalid hex color for %s: %q", field, value)
		}
	}
	return nil
}

// Apply overrides the package styles with the theme's colors.
// Unset fields keep their defaults.
func (t *ThemeFile) Apply() {
	if t.Colors.Primary != "" {
		PrimaryColor = lipgloss.Color(t.Colors.Primary)
		Primary = Primary.Foreground(PrimaryColor)
		PanelTitle = PanelTitle.Foreground(PrimaryColor)
	}
	if t.Colors.Secondary != "" {
		SecondaryColor = lipgloss.Color(t.Colors.Secondary)
		Secondary = Secondary.Foreground(SecondaryColor)
		Finished = Finished.Foreground(SecondaryColor)
		SuccessLine = SuccessLine.Foreground(SecondaryColor)
	}
	if t.Colors.Warning != "" {
		WarningColor = lipgloss.Color(t.Colors.Warning)
		Warning = Warning.Foreground(WarningColor)
	}
	if t.Colors.Error != "" {
		ErrorColor = lipgloss.Color(t.Colors.Error)
		Error = Error.Foreground(ErrorColor)
		FailureLine = FailureLine.Foreground(ErrorColor)
	}
	if t.Colors.Muted != "" {
		MutedColor = lipgloss.Color(t.Colors.Muted)
		Muted = Muted.Foreground(MutedColor)
	}
	if t.Colors.Text != "" {
		TextColor = lipgloss.Color(t.Colors.Text)
		Text = Text.Foreground(TextColor)
	}
	if t.Colors.Border != "" {
		BorderColor = lipgloss.Color(t.Colors.Border)
		Panel = Panel.BorderForeground(BorderColor)
	}
	if t.Colors.Overall != "" {
		OverallColor = lipgloss.Color(t.Colors.Overall)
		OverallTitle = OverallTitle.Foreground(OverallColor)
	}
	if t.Colors.Subtask != "" {
		SubtaskColor = lipgloss.Color(t.Colors.Subtask)
		SubtaskTitle = SubtaskTitle.Foreground(SubtaskColor)
	}
}
