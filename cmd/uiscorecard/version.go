package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statboard/uiscorecard/internal/appupdate"
	"github.com/statboard/uiscorecard/internal/version"
)

// NewVersionCommand prints build metadata and optionally checks GitHub
// for a newer release. The update check is informational only and never
// fails the command.
func NewVersionCommand() *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Println("uiscorecard", version.String())
			if !checkUpdate {
				return nil
			}

			result, err := appupdate.Check(cmd.Context(), appupdate.CheckOptions{
				CurrentVersion: version.Version,
			})
			if err != nil {
				fmt.Println("update check failed:", err)
				return nil
			}

			switch {
			case result.CurrentVersion == "":
				fmt.Println("development build, skipping update check")
			case result.UpdateAvailable:
				fmt.Printf("update available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
				fmt.Println("upgrade with:", result.UpgradeHint)
			default:
				fmt.Println("up to date")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkUpdate, "check-update", false, "check GitHub for a newer release")
	return cmd
}
