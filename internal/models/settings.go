// ABOUTME: Settings model holding per-installation user preferences.
// ABOUTME: Includes ThemeMode enum, defaults and validation.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ThemeMode selects the display theme.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// ErrInvalidThemeMode is returned for theme strings outside light, dark, system.
var ErrInvalidThemeMode = errors.New("invalid theme mode")

// ParseThemeMode converts s to a ThemeMode.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch mode := ThemeMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ThemeLight, ThemeDark, ThemeSystem:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q (valid: light, dark, system)", ErrInvalidThemeMode, s)
}

// AvatarCount is the number of selectable avatars.
const AvatarCount = 6

// Settings is the singleton user preference document.
type Settings struct {
	DisplayName        string     `json:"displayName" yaml:"display_name"`
	AvatarIndex        int        `json:"avatarIndex" yaml:"avatar_index"`
	ShowUnknownRecords bool       `json:"showUnknownRecords" yaml:"show_unknown_records"`
	ThemeMode          ThemeMode  `json:"themeMode" yaml:"theme_mode"`
	UseHealthData      bool       `json:"useHealthKit" yaml:"use_health_data"`
	LastHealthDataSync *time.Time `json:"lastHealthKitSync" yaml:"last_health_data_sync"`
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		DisplayName:        "Plavec",
		AvatarIndex:        0,
		ShowUnknownRecords: true,
		ThemeMode:          ThemeSystem,
		UseHealthData:      false,
		LastHealthDataSync: nil,
	}
}

// Validate checks enumerated fields. Theme modes must already be canonical.
func (s Settings) Validate() error {
	if s.AvatarIndex < 0 || s.AvatarIndex >= AvatarCount {
		return fmt.Errorf("avatar index %d out of range [0,%d)", s.AvatarIndex, AvatarCount)
	}
	switch s.ThemeMode {
	case ThemeLight, ThemeDark, ThemeSystem:
		return nil
	}
	return fmt.Errorf("%w: %q (valid: light, dark, system)", ErrInvalidThemeMode, s.ThemeMode)
}

// VisibleStrokeStyles returns the styles shown in the records book.
func (s Settings) VisibleStrokeStyles() []StrokeStyle {
	if s.ShowUnknownRecords {
		return AllStrokeStyles
	}
	visible := make([]StrokeStyle, 0, len(AllStrokeStyles)-1)
	for _, st := range AllStrokeStyles {
		if st != StrokeUnknown {
			visible = append(visible, st)
		}
	}
	return visible
}
