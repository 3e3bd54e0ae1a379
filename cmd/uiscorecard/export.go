package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/statboard/uiscorecard/internal/config"
	"github.com/statboard/uiscorecard/internal/export"
	"github.com/statboard/uiscorecard/internal/scorecard"
)

// NewExportCommand renders the report without starting the dashboard.
func NewExportCommand(cfg config.Config, dataPath *string) *cobra.Command {
	var (
		format   string
		out      string
		scope    string
		category string
		year     int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report for a selection: a paginated PDF, or one SVG per chart.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, _, err := loadDataset(cfg, *dataPath)
			if err != nil {
				return err
			}

			sel := scorecard.Selection{
				Scope:    scope,
				Category: scorecard.ParseCategory(category),
				Year:     year,
				View:     scorecard.ViewCharts,
			}
			if sel.Scope == "" {
				sel.Scope = scorecard.ScopeNational
			}
			if sel.Year == 0 {
				sel.Year = ds.LatestYear(sel.Scope)
			}

			switch strings.ToLower(format) {
			case "pdf":
				path, err := export.WritePDF(ds, sel, out)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			case "svg":
				dir := out
				if dir == "" {
					dir = "."
				}
				paths, err := export.WriteSVGs(ds, sel, dir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), "wrote", p)
				}
			default:
				return fmt.Errorf("unsupported format %q (want pdf or svg)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "pdf", `output format: "pdf" or "svg"`)
	cmd.Flags().StringVarP(&out, "output", "o", "",
		"output path: the PDF file (default "+export.DefaultPDFName+") or the SVG directory (default .)")
	cmd.Flags().StringVar(&scope, "scope", "", "state code or US (default: national)")
	cmd.Flags().StringVar(&category, "category", "overview", "overview, program or benefit")
	cmd.Flags().IntVar(&year, "year", 0, "base year (default: newest available)")
	return cmd
}
