package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

// RenderComparisonTable draws the current-vs-prior table with lipgloss
// column styling. Returns "" when there are no rows.
func RenderComparisonTable(spec *scorecard.TableSpec, w int) string {
	if spec == nil || len(spec.Rows) == 0 {
		return ""
	}

	metricW := len(spec.Headers[0])
	for _, row := range spec.Rows {
		if len(row.Metric) > metricW {
			metricW = len(row.Metric)
		}
	}
	if metricW > 36 {
		metricW = 36
	}

	numW := func(header string, cell func(scorecard.TableRow) string) int {
		width := len(header)
		for _, row := range spec.Rows {
			if len(cell(row)) > width {
				width = len(cell(row))
			}
		}
		return width
	}
	currentW := numW(spec.Headers[1], func(r scorecard.TableRow) string { return r.Current })
	previousW := numW(spec.Headers[2], func(r scorecard.TableRow) string { return r.Previous })
	changeW := numW(spec.Headers[3], func(r scorecard.TableRow) string { return r.RelativeChange })

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(tableHeaderStyle.Width(metricW).Render(spec.Headers[0]))
	sb.WriteString("  ")
	sb.WriteString(tableHeaderStyle.Width(currentW).Align(lipgloss.Right).Render(spec.Headers[1]))
	sb.WriteString("  ")
	sb.WriteString(tableHeaderStyle.Width(previousW).Align(lipgloss.Right).Render(spec.Headers[2]))
	sb.WriteString("  ")
	sb.WriteString(tableHeaderStyle.Width(changeW).Align(lipgloss.Right).Render(spec.Headers[3]))
	sb.WriteString("\n")

	sb.WriteString("  " + chartAxisStyle.Render(strings.Repeat("─", metricW+currentW+previousW+changeW+6)) + "\n")

	cellStyle := func(v string) lipgloss.Style {
		if v == "NA" {
			return tableNAStyle
		}
		return tableCellStyle
	}
	for _, row := range spec.Rows {
		metric := row.Metric
		if len(metric) > metricW {
			metric = metric[:metricW-1] + "…"
		}
		sb.WriteString("  ")
		sb.WriteString(labelStyle.Width(metricW).Render(metric))
		sb.WriteString("  ")
		sb.WriteString(cellStyle(row.Current).Width(currentW).Align(lipgloss.Right).Render(row.Current))
		sb.WriteString("  ")
		sb.WriteString(cellStyle(row.Previous).Width(previousW).Align(lipgloss.Right).Render(row.Previous))
		sb.WriteString("  ")
		sb.WriteString(cellStyle(row.RelativeChange).Width(changeW).Align(lipgloss.Right).Render(row.RelativeChange))
		sb.WriteString("\n")
	}

	return sb.String()
}
