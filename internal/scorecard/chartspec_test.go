package scorecard

import "testing"

func TestThresholdRuleFavorable(t *testing.T) {
	tests := []struct {
		name string
		rule ThresholdRule
		v    float64
		want bool
	}{
		{"timeliness above", timelinessRule, 90, true},
		{"timeliness exactly at threshold", timelinessRule, 87, true},
		{"timeliness below", timelinessRule, 86.9, false},
		{"nonmonetary exactly at threshold", nonmonetaryRule, 80, true},
		{"nonmonetary below", nonmonetaryRule, 79, false},
		{"improper exactly at threshold", improperRule, 10, true},
		{"improper above", improperRule, 10.1, false},
		{"improper below", improperRule, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Favorable(tt.v); got != tt.want {
				t.Errorf("Favorable(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestBuildChartsPie(t *testing.T) {
	view, err := Resolve(testDataset(), "US", 2023, CategoryProgram)
	if err != nil {
		t.Fatal(err)
	}
	charts := BuildCharts(view, false)

	var pie *ChartSpec
	for i := range charts {
		if charts[i].Kind == ChartPie {
			pie = &charts[i]
		}
	}
	if pie == nil {
		t.Fatal("program category should yield a pie spec")
	}
	if pie.ID != "pie_chart" {
		t.Errorf("pie ID = %q, want pie_chart", pie.ID)
	}
	if len(pie.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(pie.Segments))
	}
	if pie.Threshold != nil {
		t.Error("pie charts never carry a threshold line")
	}

	// Percentages pass through exactly as supplied, no normalization.
	total := 0.0
	for _, seg := range pie.Segments {
		total += seg.Value
	}
	if total != 100 {
		t.Fatalf("test fixture should sum to 100, got %v", total)
	}
	view.Pie["Work Search"] = 70 // now sums to 130
	charts = BuildCharts(view, false)
	for _, c := range charts {
		if c.Kind != ChartPie {
			continue
		}
		sum := 0.0
		for _, seg := range c.Segments {
			sum += seg.Value
		}
		if sum != 130 {
			t.Errorf("segment sum = %v, want 130 (unnormalized)", sum)
		}
	}
}

func TestBuildChartsThresholdColoring(t *testing.T) {
	group := &SeriesGroup{
		Years: []int{2022, 2023},
		Series: []Series{
			{Name: "Improper Payment Rate", Values: []*float64{Float(10), Float(14)}},
		},
	}
	view := &ResolvedView{Scope: "US", BaseYear: 2023, Category: CategoryOverview, Improper: group}

	charts := BuildCharts(view, false)
	if len(charts) != 1 {
		t.Fatalf("chart count = %d, want 1", len(charts))
	}
	spec := charts[0]
	if spec.Threshold == nil || spec.Threshold.Value != 10 {
		t.Fatalf("improper chart threshold = %+v, want ALP 10", spec.Threshold)
	}

	points := spec.Series[0].Points
	if len(points) != WindowSize {
		t.Fatalf("point count = %d, want %d", len(points), WindowSize)
	}
	// 2022 value is exactly 10: favorable. 2023 value 14: unfavorable.
	if points[4].Color != colorFavorable {
		t.Errorf("value at threshold colored %q, want favorable", points[4].Color)
	}
	if points[5].Color != colorUnfavorable {
		t.Errorf("value above threshold colored %q, want unfavorable", points[5].Color)
	}
}

func TestBuildChartsTimelinessLegendAndColors(t *testing.T) {
	view, err := Resolve(testDataset(), "US", 2023, CategoryBenefit)
	if err != nil {
		t.Fatal(err)
	}
	charts := BuildCharts(view, false)

	var timeliness *ChartSpec
	for i := range charts {
		if charts[i].ID == "timeliness_chart" {
			timeliness = &charts[i]
		}
	}
	if timeliness == nil {
		t.Fatal("benefit category should yield a timeliness spec")
	}
	if got := timeliness.Series[0].Name; got != "FPT (14 days)" {
		t.Errorf("legend label = %q, want the compacted FPT form", got)
	}
	// Catalog color still keyed by the full metric name.
	if got := timeliness.Series[0].Color; got != "#2a9d8f" {
		t.Errorf("series color = %q, want catalog color", got)
	}
}

func TestChartSpecEmpty(t *testing.T) {
	if !(ChartSpec{Kind: ChartPie}).Empty() {
		t.Error("pie with no segments should be empty")
	}
	sparse := ChartSpec{Kind: ChartTrend, Series: []TrendSeries{{Points: []TrendPoint{{}, {}}}}}
	if !sparse.Empty() {
		t.Error("trend with only absent points should be empty")
	}
	sparse.Series[0].Points[1].Value = Float(0)
	if sparse.Empty() {
		t.Error("a zero value is drawable, not empty")
	}
}

func TestMetricColorFallback(t *testing.T) {
	if got := MetricColor("Fraud Rate"); got != "#ff7f0e" {
		t.Errorf("catalog color = %q", got)
	}
	if got := MetricColor("No Such Metric"); got != fallbackColor {
		t.Errorf("fallback color = %q, want %q", got, fallbackColor)
	}
}
