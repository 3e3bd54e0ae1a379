package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/statboard/uiscorecard/internal/config"
	"github.com/statboard/uiscorecard/internal/datasource"
	"github.com/statboard/uiscorecard/internal/export"
	"github.com/statboard/uiscorecard/internal/scorecard"
	"github.com/statboard/uiscorecard/internal/tui"
)

// loadDataset resolves the dataset source: the --data flag wins, then the
// configured path, then the built-in demo data. Returns the path only when
// a real file backs the dataset, so callers know whether to watch it.
func loadDataset(cfg config.Config, dataPath string) (scorecard.Dataset, string, error) {
	path := dataPath
	if path == "" {
		path = cfg.DataPath
	}
	if path == "" {
		return datasource.Demo(), "", nil
	}
	ds, err := datasource.Load(path)
	if err != nil {
		return nil, "", err
	}
	return ds, path, nil
}

func RunDashboard(cfg config.Config, dataPath string) {
	if err := tui.LoadThemes(config.ConfigDir()); err != nil {
		log.Printf("themes: %v", err)
	}
	tui.SetThemeByName(cfg.Theme)

	ds, path, err := loadDataset(cfg, dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(ds, cfg)
	model.SetExporter(export.PDFExporter(""))

	program := tea.NewProgram(model, tea.WithAltScreen())

	var watcher *datasource.Watcher
	if path != "" {
		debounce := time.Duration(cfg.UI.RefreshDebounceMS) * time.Millisecond
		watcher, err = datasource.NewWatcher(path,
			datasource.WithDebounce(debounce),
			datasource.WithOnError(func(err error) { log.Printf("watch: %v", err) }),
		)
		if err != nil {
			log.Printf("watch: %v", err)
		} else if err := watcher.Start(); err != nil {
			log.Printf("watch: %v", err)
		} else {
			go func() {
				for range watcher.Changed() {
					reloaded, err := datasource.Load(path)
					if err != nil {
						log.Printf("reload: %v", err)
						continue
					}
					program.Send(tui.DatasetMsg(reloaded))
				}
			}()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
	if watcher != nil {
		watcher.Stop()
	}
}
