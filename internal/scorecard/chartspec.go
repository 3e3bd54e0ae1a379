package scorecard

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Point colors for threshold-graded values.
const (
	colorFavorable   = "#2a9d8f"
	colorUnfavorable = "#e63946"
)

// ChartKind distinguishes the two chart families.
type ChartKind string

const (
	ChartPie   ChartKind = "pie"
	ChartTrend ChartKind = "trend"
)

// ThresholdDirection states which side of the reference value is the
// unfavorable one.
type ThresholdDirection int

const (
	// BelowIsUnfavorable marks values under the threshold red; a value
	// exactly at the threshold meets the standard.
	BelowIsUnfavorable ThresholdDirection = iota
	// AboveIsUnfavorable marks values over the threshold red; a value
	// exactly at the threshold still meets the standard.
	AboveIsUnfavorable
)

// ThresholdRule parameterizes the dashed reference line and, when
// ColorPoints is set, the per-point favorable/unfavorable grading.
type ThresholdRule struct {
	Value       float64
	Label       string
	Direction   ThresholdDirection
	ColorPoints bool
}

// Favorable reports whether v meets the standard under this rule.
func (r ThresholdRule) Favorable(v float64) bool {
	if r.Direction == AboveIsUnfavorable {
		return v <= r.Value
	}
	return v >= r.Value
}

// Fixed regulatory thresholds (ALP) per chart kind.
var (
	timelinessRule  = ThresholdRule{Value: 87, Label: "ALP (87%)", Direction: BelowIsUnfavorable, ColorPoints: true}
	nonmonetaryRule = ThresholdRule{Value: 80, Label: "ALP (80%)", Direction: BelowIsUnfavorable, ColorPoints: true}
	improperRule    = ThresholdRule{Value: 10, Label: "ALP (10%)", Direction: AboveIsUnfavorable, ColorPoints: true}
	qualityRule     = ThresholdRule{Value: 50, Label: "Target (50%)", Direction: BelowIsUnfavorable}
)

// PieSegment is one slice of a categorical breakdown. Values are
// percentages as supplied; they are not required to sum to 100 and are
// never normalized.
type PieSegment struct {
	Name  string
	Value float64
	Color string
}

// TrendPoint is one plotted value. Value nil means the point is absent
// from the chart. Color carries the per-point grading when a coloring
// threshold applies, else the series color.
type TrendPoint struct {
	Value *float64
	Color string
}

// TrendSeries is one line of a trend chart.
type TrendSeries struct {
	Name   string
	Color  string
	Points []TrendPoint
}

// ChartSpec is a declarative chart description, independent of any
// rendering host. The same spec drives the terminal charts, the SVG
// snapshots and the PDF report.
type ChartSpec struct {
	ID        string // stable container identifier, the host contract
	Kind      ChartKind
	Title     string
	Years     []int // category axis for trend charts
	Segments  []PieSegment
	Series    []TrendSeries
	Threshold *ThresholdRule
	Static    bool // export mode: no animation, print-legible sizing
}

// Empty reports whether the spec has nothing drawable.
func (c ChartSpec) Empty() bool {
	if c.Kind == ChartPie {
		return len(c.Segments) == 0
	}
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.Value != nil {
				return false
			}
		}
	}
	return true
}

// chartDescriptor drives the single parametrized trend builder: which
// threshold applies and how legend labels are transformed.
type chartDescriptor struct {
	id        string
	title     string
	threshold *ThresholdRule
	labelFor  func(string) string
}

func buildPieSpec(id, title string, pie map[string]float64, static bool) ChartSpec {
	spec := ChartSpec{ID: id, Kind: ChartPie, Title: title, Static: static}
	for _, name := range sortedKeys(pie) {
		spec.Segments = append(spec.Segments, PieSegment{
			Name:  name,
			Value: pie[name],
			Color: MetricColor(name),
		})
	}
	return spec
}

func buildTrendSpec(desc chartDescriptor, g *SeriesGroup, window []int, static bool) ChartSpec {
	spec := ChartSpec{
		ID:        desc.id,
		Kind:      ChartTrend,
		Title:     desc.title,
		Years:     window,
		Threshold: desc.threshold,
		Static:    static,
	}

	aligned := AlignGroup(g, window)
	if aligned == nil {
		return spec
	}

	for _, s := range aligned.Series {
		name := s.Name
		if desc.labelFor != nil {
			name = desc.labelFor(s.Name)
		}
		series := TrendSeries{
			Name:   name,
			Color:  MetricColor(s.Name),
			Points: make([]TrendPoint, len(s.Values)),
		}
		for i, v := range s.Values {
			color := series.Color
			if v != nil && desc.threshold != nil && desc.threshold.ColorPoints {
				if desc.threshold.Favorable(*v) {
					color = colorFavorable
				} else {
					color = colorUnfavorable
				}
			}
			series.Points[i] = TrendPoint{Value: v, Color: color}
		}
		spec.Series = append(spec.Series, series)
	}
	return spec
}

// shortTimelinessLabel compacts the long series names for legends.
func shortTimelinessLabel(name string) string {
	return strings.Replace(name, "First Payment Timeliness", "FPT", 1)
}

// BuildCharts turns a resolved view into the ordered chart list for its
// category. Groups absent from the view produce no spec at all; present
// but empty groups produce an empty spec the renderers skip.
func BuildCharts(view *ResolvedView, static bool) []ChartSpec {
	if view == nil {
		return nil
	}
	window := Window(view.BaseYear)

	var charts []ChartSpec
	add := func(spec ChartSpec) {
		charts = append(charts, spec)
	}

	if view.Pie != nil {
		add(buildPieSpec("pie_chart", "Overpayment Causes", view.Pie, static))
	}
	if view.Bump != nil {
		add(buildTrendSpec(chartDescriptor{
			id:    "bump_chart",
			title: "Top Overpayment Causes Over Time",
		}, view.Bump, window, static))
	}
	if view.Timeliness != nil {
		add(buildTrendSpec(chartDescriptor{
			id:        "timeliness_chart",
			title:     "First Payment Timeliness",
			threshold: &timelinessRule,
			labelFor:  shortTimelinessLabel,
		}, view.Timeliness, window, static))
	}
	if view.Nonmonetary != nil {
		add(buildTrendSpec(chartDescriptor{
			id:        "nonmonetary_chart",
			title:     "Nonmonetary Determination Timeliness",
			threshold: &nonmonetaryRule,
		}, view.Nonmonetary, window, static))
	}
	if view.Improper != nil {
		add(buildTrendSpec(chartDescriptor{
			id:        "improper_chart",
			title:     "Improper Payment Rate",
			threshold: &improperRule,
		}, view.Improper, window, static))
	}
	if view.Fraud != nil {
		add(buildTrendSpec(chartDescriptor{
			id:        "fraud_chart",
			title:     "Fraud Rate",
			threshold: &improperRule,
		}, view.Fraud, window, static))
	}
	if view.QualitySep != nil {
		add(buildTrendSpec(chartDescriptor{
			id:        "quality_sep_chart",
			title:     "Separation Determination Quality",
			threshold: &qualityRule,
		}, view.QualitySep, window, static))
	}
	if view.QualityNonsep != nil {
		add(buildTrendSpec(chartDescriptor{
			id:        "quality_nonsep_chart",
			title:     "Nonseparation Determination Quality",
			threshold: &qualityRule,
		}, view.QualityNonsep, window, static))
	}

	return charts
}

func sortedKeys(m map[string]float64) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
