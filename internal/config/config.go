package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

type UIConfig struct {
	RefreshDebounceMS int    `json:"refresh_debounce_ms"`
	DefaultView       string `json:"default_view"`
}

type Config struct {
	UI              UIConfig `json:"ui"`
	Theme           string   `json:"theme"`
	DataPath        string   `json:"data_path"`
	DefaultScope    string   `json:"default_scope"`
	DefaultCategory string   `json:"default_category"`
}

func DefaultConfig() Config {
	return Config{
		Theme:           "Catppuccin Mocha",
		DefaultScope:    scorecard.ScopeNational,
		DefaultCategory: string(scorecard.CategoryOverview),
		UI: UIConfig{
			RefreshDebounceMS: 300,
			DefaultView:       "charts",
		},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "uiscorecard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "uiscorecard")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.UI.RefreshDebounceMS <= 0 {
		cfg.UI.RefreshDebounceMS = 300
	}
	if cfg.UI.DefaultView != "charts" && cfg.UI.DefaultView != "table" {
		cfg.UI.DefaultView = "charts"
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultConfig().Theme
	}
	if cfg.DefaultScope == "" {
		cfg.DefaultScope = scorecard.ScopeNational
	}
	cfg.DefaultCategory = string(scorecard.ParseCategory(cfg.DefaultCategory))

	return cfg, nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveTheme persists a theme name into the config file (read-modify-write).
func SaveTheme(theme string) error {
	return SaveThemeTo(ConfigPath(), theme)
}

func SaveThemeTo(path string, theme string) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Theme = theme
	return SaveTo(path, cfg)
}
