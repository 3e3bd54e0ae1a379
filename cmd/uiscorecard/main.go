package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/statboard/uiscorecard/internal/config"
)

func main() {
	if os.Getenv("UISCORECARD_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	var dataPath string

	root := cobra.Command{
		Use:   "uiscorecard",
		Short: "uiscorecard is a terminal dashboard for unemployment insurance overpayment statistics.",
		Run: func(_ *cobra.Command, _ []string) {
			RunDashboard(cfg, dataPath)
		},
	}
	root.PersistentFlags().StringVar(&dataPath, "data", "",
		"dataset file (.json, .db or .sqlite); empty uses the configured path, then built-in demo data")

	root.AddCommand(NewExportCommand(cfg, &dataPath))
	root.AddCommand(NewVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
