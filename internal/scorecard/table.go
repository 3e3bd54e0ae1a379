package scorecard

import (
	"fmt"
	"sort"
	"strconv"
)

// TableSpec is the declarative comparison-table description shared by the
// terminal view and the PDF report.
type TableSpec struct {
	BaseYear int
	Headers  [4]string
	Rows     []TableRow
}

// TableRow holds the already-formatted cells of one comparison line.
type TableRow struct {
	Metric         string
	Current        string
	Previous       string
	RelativeChange string
}

// BuildTable formats comparison rows for display: sorted by current value
// descending with absent values last, percentages rendered with a trailing
// "%", absent values as "NA", and positive relative changes with an
// explicit "+".
func BuildTable(rows []ComparisonRow, baseYear int) TableSpec {
	spec := TableSpec{
		BaseYear: baseYear,
		Headers: [4]string{
			"Metric",
			fmt.Sprintf("%% of Overpayments (%d PIIA)", baseYear),
			fmt.Sprintf("%% of Overpayments (%d PIIA)", baseYear-1),
			"Relative Change",
		},
	}

	sorted := append([]ComparisonRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Current, sorted[j].Current
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})

	for _, row := range sorted {
		spec.Rows = append(spec.Rows, TableRow{
			Metric:         row.Metric,
			Current:        FormatPercent(row.Current),
			Previous:       FormatPercent(row.Previous),
			RelativeChange: formatRelativeChange(row.RelativeChange),
		})
	}
	return spec
}

// FormatPercent renders a percentage value, or "NA" when absent.
func FormatPercent(v *float64) string {
	if v == nil {
		return "NA"
	}
	return trimFloat(*v) + "%"
}

func formatRelativeChange(v *float64) string {
	if v == nil {
		return "NA"
	}
	if *v > 0 {
		return "+" + trimFloat(*v) + "%"
	}
	return trimFloat(*v) + "%"
}

// trimFloat formats without trailing zeros: 12.5 -> "12.5", 40 -> "40".
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
