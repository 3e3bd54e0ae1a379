package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetThemes restores the built-in catalog after a test touched the
// global theme state.
func resetThemes(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		os.Unsetenv(themeDirEnvVar)
		_ = LoadThemes("")
		SetThemeByName("Catppuccin Mocha")
	})
}

func writeThemeFile(t *testing.T, dir, file, name, base string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := fmt.Sprintf(`{
		"name": %q, "icon": "🌊",
		"base": %q, "mantle": "#101820",
		"surface0": "#1c2a38", "surface1": "#28394a",
		"text": "#d8e6f2", "subtext": "#a8bccc", "dim": "#5a7086",
		"accent": "#64b5f6", "blue": "#42a5f5", "sapphire": "#4dd0e1",
		"green": "#81c784", "yellow": "#ffd54f", "red": "#e57373",
		"lavender": "#9fa8da", "teal": "#4db6ac"
	}`, name, base)
	if err := os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
}

func themeNames() []string {
	var names []string
	for _, th := range AvailableThemes() {
		names = append(names, th.Name)
	}
	return names
}

func TestLoadThemesFromConfigDir(t *testing.T) {
	resetThemes(t)
	t.Setenv(themeDirEnvVar, "")

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "ocean.json", "Ocean", "#0b1622")

	if err := LoadThemes(cfgDir); err != nil {
		t.Fatalf("LoadThemes: %v", err)
	}
	if !strings.Contains(strings.Join(themeNames(), ","), "Ocean") {
		t.Fatalf("catalog missing loaded theme, got %v", themeNames())
	}
	if !SetThemeByName("Ocean") {
		t.Error("loaded theme should be selectable by name")
	}
}

func TestLoadThemesFromEnvDir(t *testing.T) {
	resetThemes(t)

	envDir := t.TempDir()
	writeThemeFile(t, envDir, "harbor.json", "Harbor", "#071019")
	t.Setenv(themeDirEnvVar, envDir)

	if err := LoadThemes(""); err != nil {
		t.Fatalf("LoadThemes: %v", err)
	}
	if !SetThemeByName("Harbor") {
		t.Fatalf("env-dir theme not loaded, catalog: %v", themeNames())
	}
}

func TestLoadThemesOverridesBuiltinByName(t *testing.T) {
	resetThemes(t)
	t.Setenv(themeDirEnvVar, "")

	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "gray.json", "Grayscale", "#123456")

	if err := LoadThemes(cfgDir); err != nil {
		t.Fatalf("LoadThemes: %v", err)
	}
	if got, want := len(AvailableThemes()), len(builtinThemes()); got != want {
		t.Errorf("override grew the catalog: %d themes, want %d", got, want)
	}
	for _, th := range AvailableThemes() {
		if th.Name == "Grayscale" && string(th.Base) != "#123456" {
			t.Errorf("builtin not overridden, base = %s", th.Base)
		}
	}
}

func TestLoadThemesSkipsInvalidFiles(t *testing.T) {
	resetThemes(t)
	t.Setenv(themeDirEnvVar, "")

	cfgDir := t.TempDir()
	themesDir := filepath.Join(cfgDir, "themes")
	writeThemeFile(t, themesDir, "good.json", "Good", "#0b1622")
	if err := os.WriteFile(filepath.Join(themesDir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := LoadThemes(cfgDir)
	if err == nil {
		t.Error("malformed file should surface in the aggregated error")
	}
	if !SetThemeByName("Good") {
		t.Error("valid theme should load despite a broken sibling")
	}
}

func TestLoadThemesKeepsActiveSelection(t *testing.T) {
	resetThemes(t)
	t.Setenv(themeDirEnvVar, "")

	SetThemeByName("Nord")
	cfgDir := t.TempDir()
	writeThemeFile(t, filepath.Join(cfgDir, "themes"), "ocean.json", "Ocean", "#0b1622")

	if err := LoadThemes(cfgDir); err != nil {
		t.Fatalf("LoadThemes: %v", err)
	}
	if got := ActiveTheme().Name; got != "Nord" {
		t.Errorf("reload changed the active theme to %q", got)
	}
}

func TestThemeNameCarriesIcon(t *testing.T) {
	resetThemes(t)
	SetThemeByName("Catppuccin Mocha")

	if got := ThemeName(); !strings.Contains(got, "Catppuccin Mocha") {
		t.Errorf("ThemeName() = %q", got)
	}
}
