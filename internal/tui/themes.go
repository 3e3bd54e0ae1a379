package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// UISCORECARD_THEME_DIR can point to one or more additional theme
// directories (path-list separated, e.g. ":" on unix, ";" on Windows).
const themeDirEnvVar = "UISCORECARD_THEME_DIR"

// Theme is the visual token set used by the dashboard. External themes
// can be defined as JSON files with matching snake_case fields.
type Theme struct {
	Name string `json:"name"`
	Icon string `json:"icon"`

	Base     lipgloss.Color `json:"base"`
	Mantle   lipgloss.Color `json:"mantle"`
	Surface0 lipgloss.Color `json:"surface0"`
	Surface1 lipgloss.Color `json:"surface1"`

	Text    lipgloss.Color `json:"text"`
	Subtext lipgloss.Color `json:"subtext"`
	Dim     lipgloss.Color `json:"dim"`

	Accent   lipgloss.Color `json:"accent"`
	Blue     lipgloss.Color `json:"blue"`
	Sapphire lipgloss.Color `json:"sapphire"`
	Green    lipgloss.Color `json:"green"`
	Yellow   lipgloss.Color `json:"yellow"`
	Red      lipgloss.Color `json:"red"`
	Lavender lipgloss.Color `json:"lavender"`
	Teal     lipgloss.Color `json:"teal"`
}

var (
	themeMu        sync.RWMutex
	themes         []Theme
	activeThemeIdx int
)

func init() {
	themes = builtinThemes()
	activeThemeIdx = defaultThemeIndex(themes)
	applyTheme(themes[activeThemeIdx])
}

func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "Catppuccin Mocha", Icon: "🐱",
			Base: "#1E1E2E", Mantle: "#181825",
			Surface0: "#313244", Surface1: "#45475A",
			Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
			Accent: "#CBA6F7", Blue: "#89B4FA", Sapphire: "#74C7EC",
			Green: "#A6E3A1", Yellow: "#F9E2AF", Red: "#F38BA8",
			Lavender: "#B4BEFE", Teal: "#94E2D5",
		},
		{
			Name: "Catppuccin Latte", Icon: "☀",
			Base: "#EFF1F5", Mantle: "#E6E9EF",
			Surface0: "#CCD0DA", Surface1: "#BCC0CC",
			Text: "#4C4F69", Subtext: "#6C6F85", Dim: "#9CA0B0",
			Accent: "#8839EF", Blue: "#1E66F5", Sapphire: "#209FB5",
			Green: "#40A02B", Yellow: "#DF8E1D", Red: "#D20F39",
			Lavender: "#7287FD", Teal: "#179299",
		},
		{
			Name: "Gruvbox", Icon: "🌻",
			Base: "#282828", Mantle: "#1D2021",
			Surface0: "#3C3836", Surface1: "#504945",
			Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54",
			Accent: "#D3869B", Blue: "#83A598", Sapphire: "#83A598",
			Green: "#B8BB26", Yellow: "#FABD2F", Red: "#FB4934",
			Lavender: "#D3869B", Teal: "#8EC07C",
		},
		{
			Name: "Nord", Icon: "❄",
			Base: "#2E3440", Mantle: "#242933",
			Surface0: "#3B4252", Surface1: "#434C5E",
			Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A",
			Accent: "#B48EAD", Blue: "#81A1C1", Sapphire: "#88C0D0",
			Green: "#A3BE8C", Yellow: "#EBCB8B", Red: "#BF616A",
			Lavender: "#B48EAD", Teal: "#8FBCBB",
		},
		{
			Name: "Tokyo Night", Icon: "🌃",
			Base: "#1A1B26", Mantle: "#16161E",
			Surface0: "#24283B", Surface1: "#414868",
			Text: "#C0CAF5", Subtext: "#A9B1D6", Dim: "#565F89",
			Accent: "#BB9AF7", Blue: "#7AA2F7", Sapphire: "#7DCFFF",
			Green: "#9ECE6A", Yellow: "#E0AF68", Red: "#F7768E",
			Lavender: "#BB9AF7", Teal: "#73DACA",
		},
		{
			Name: "Solarized Dark", Icon: "🌅",
			Base: "#002B36", Mantle: "#073642",
			Surface0: "#073642", Surface1: "#0E3A45",
			Text: "#93A1A1", Subtext: "#839496", Dim: "#586E75",
			Accent: "#D33682", Blue: "#268BD2", Sapphire: "#2AA198",
			Green: "#859900", Yellow: "#B58900", Red: "#DC322F",
			Lavender: "#6C71C4", Teal: "#2AA198",
		},
		{
			Name: "Grayscale", Icon: "⬛",
			Base: "#000000", Mantle: "#0A0A0A",
			Surface0: "#181818", Surface1: "#2A2A2A",
			Text: "#F5F5F5", Subtext: "#D6D6D6", Dim: "#A8A8A8",
			Accent: "#FFFFFF", Blue: "#E8E8E8", Sapphire: "#DDDDDD",
			Green: "#D0D0D0", Yellow: "#BEBEBE", Red: "#AAAAAA",
			Lavender: "#D9D9D9", Teal: "#CCCCCC",
		},
	}
}

func defaultThemeIndex(all []Theme) int {
	for i, t := range all {
		if strings.EqualFold(strings.TrimSpace(t.Name), "Catppuccin Mocha") {
			return i
		}
	}
	return 0
}

func trimColor(c lipgloss.Color) lipgloss.Color {
	return lipgloss.Color(strings.TrimSpace(string(c)))
}

func normalizeTheme(in Theme) Theme {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Icon == "" {
		in.Icon = "🎨"
	}

	in.Base = trimColor(in.Base)
	in.Mantle = trimColor(in.Mantle)
	in.Surface0 = trimColor(in.Surface0)
	in.Surface1 = trimColor(in.Surface1)
	in.Text = trimColor(in.Text)
	in.Subtext = trimColor(in.Subtext)
	in.Dim = trimColor(in.Dim)
	in.Accent = trimColor(in.Accent)
	in.Blue = trimColor(in.Blue)
	in.Sapphire = trimColor(in.Sapphire)
	in.Green = trimColor(in.Green)
	in.Yellow = trimColor(in.Yellow)
	in.Red = trimColor(in.Red)
	in.Lavender = trimColor(in.Lavender)
	in.Teal = trimColor(in.Teal)

	return in
}

func (t Theme) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("missing required field: name")
	}
	fields := []struct {
		name  string
		value lipgloss.Color
	}{
		{"base", t.Base}, {"mantle", t.Mantle},
		{"surface0", t.Surface0}, {"surface1", t.Surface1},
		{"text", t.Text}, {"subtext", t.Subtext}, {"dim", t.Dim},
		{"accent", t.Accent}, {"blue", t.Blue}, {"sapphire", t.Sapphire},
		{"green", t.Green}, {"yellow", t.Yellow}, {"red", t.Red},
		{"lavender", t.Lavender}, {"teal", t.Teal},
	}
	missing := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(string(f.value)) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func themeSearchDirs(configDir string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	if strings.TrimSpace(configDir) != "" {
		add(filepath.Join(configDir, "themes"))
	}
	if env := strings.TrimSpace(os.Getenv(themeDirEnvVar)); env != "" {
		for _, part := range strings.Split(env, string(os.PathListSeparator)) {
			add(part)
		}
	}
	return out
}

func loadThemesFromDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read theme dir %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	loaded := make([]Theme, 0, len(entries))
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, readErr))
			continue
		}

		var t Theme
		if unmarshalErr := json.Unmarshal(data, &t); unmarshalErr != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", path, unmarshalErr))
			continue
		}

		t = normalizeTheme(t)
		if validateErr := t.validate(); validateErr != nil {
			errs = append(errs, fmt.Errorf("validate %s: %w", path, validateErr))
			continue
		}
		loaded = append(loaded, t)
	}

	return loaded, errors.Join(errs...)
}

func mergeThemes(base, extra []Theme) []Theme {
	if len(extra) == 0 {
		return base
	}
	merged := append([]Theme(nil), base...)
	indexByName := make(map[string]int, len(merged))
	for i, t := range merged {
		indexByName[strings.ToLower(strings.TrimSpace(t.Name))] = i
	}
	for _, t := range extra {
		k := strings.ToLower(strings.TrimSpace(t.Name))
		if i, ok := indexByName[k]; ok {
			merged[i] = t
			continue
		}
		indexByName[k] = len(merged)
		merged = append(merged, t)
	}
	return merged
}

func setActiveThemeByNameLocked(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(themes) == 0 {
		return false
	}
	for i, t := range themes {
		if strings.EqualFold(t.Name, name) {
			activeThemeIdx = i
			applyTheme(t)
			return true
		}
	}
	return false
}

// LoadThemes reloads the theme catalog from built-ins plus external
// theme files found in <configDir>/themes and each path in
// UISCORECARD_THEME_DIR. Invalid files are skipped; the aggregated error
// reports them while valid themes stay available.
func LoadThemes(configDir string) error {
	themeMu.Lock()
	defer themeMu.Unlock()

	currentName := ""
	if activeThemeIdx >= 0 && activeThemeIdx < len(themes) {
		currentName = themes[activeThemeIdx].Name
	}

	nextThemes := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := loadThemesFromDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		nextThemes = mergeThemes(nextThemes, loaded)
	}

	themes = nextThemes
	if !setActiveThemeByNameLocked(currentName) {
		activeThemeIdx = defaultThemeIndex(themes)
		applyTheme(themes[activeThemeIdx])
	}

	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()

	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

func ActiveTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if activeThemeIdx < 0 || activeThemeIdx >= len(themes) {
		return themes[0]
	}
	return themes[activeThemeIdx]
}

func CycleTheme() string {
	themeMu.Lock()
	defer themeMu.Unlock()

	activeThemeIdx = (activeThemeIdx + 1) % len(themes)
	applyTheme(themes[activeThemeIdx])
	return themes[activeThemeIdx].Name
}

func ThemeName() string {
	t := ActiveTheme()
	if strings.TrimSpace(t.Icon) == "" {
		return t.Name
	}
	return t.Icon + " " + t.Name
}

func SetThemeByName(name string) bool {
	themeMu.Lock()
	defer themeMu.Unlock()
	return setActiveThemeByNameLocked(name)
}
