package datasource

import (
	"math"

	"github.com/samber/lo"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

const (
	demoFirstYear = 2019
	demoLastYear  = 2024
)

var demoScopes = []string{scorecard.ScopeNational, "CA", "FL", "NY", "TX", "VA", "WV"}

var demoCauses = []string{
	"Work Search",
	"Benefit Year Earnings",
	"Separation Issues",
	"Able + Available",
	"Base Period Wages",
	"All Other Causes",
}

// Demo returns a built-in dataset so the dashboard runs without a data
// file. Values are synthetic but deterministic, so the same selection
// always renders the same picture.
func Demo() scorecard.Dataset {
	ds := scorecard.Dataset{}
	for _, scope := range demoScopes {
		years := map[int]*scorecard.YearBundle{}
		for year := demoFirstYear; year <= demoLastYear; year++ {
			years[year] = demoBundle(scope, year)
		}
		ds[scope] = years
	}
	return ds
}

func demoBundle(scope string, baseYear int) *scorecard.YearBundle {
	span := demoSpan(baseYear)

	pie := map[string]float64{}
	for _, cause := range demoCauses {
		pie[cause] = demoShare(scope, cause, baseYear)
	}

	bump := &scorecard.SeriesGroup{Years: span}
	for _, cause := range demoCauses {
		values := make([]*float64, len(span))
		for i, y := range span {
			values[i] = scorecard.Float(demoShare(scope, cause, y))
		}
		bump.Series = append(bump.Series, scorecard.Series{Name: cause, Values: values})
	}

	b := &scorecard.YearBundle{
		Pie:  pie,
		Bump: bump,
		Timeliness: demoGroup(scope, span,
			"First Payment Timeliness (14 days)",
			"First Payment Timeliness (21 days)"),
		Nonmonetary:   demoGroup(scope, span, "Nonmonetary Determination"),
		Improper:      demoGroup(scope, span, "Improper Payment Rate"),
		Fraud:         demoGroup(scope, span, "Fraud Rate"),
		QualitySep:    demoGroup(scope, span, "Separation Determination Quality"),
		QualityNonsep: demoGroup(scope, span, "Nonseparation Determination Quality"),
	}

	for _, cause := range demoCauses {
		b.TableProgram = append(b.TableProgram, demoRow(scope, cause, baseYear, demoShare))
	}
	for _, metric := range []string{
		"First Payment Timeliness (14 days)",
		"First Payment Timeliness (21 days)",
		"Nonmonetary Determination",
	} {
		b.TableBenefit = append(b.TableBenefit, demoRow(scope, metric, baseYear, demoMetric))
	}
	return b
}

// demoSpan covers the six-year report window clipped to the demo range,
// so older base years come out sparse the way real data does.
func demoSpan(baseYear int) []int {
	first := baseYear - scorecard.WindowSize + 1
	if first < demoFirstYear {
		first = demoFirstYear
	}
	span := make([]int, 0, baseYear-first+1)
	for y := first; y <= baseYear; y++ {
		span = append(span, y)
	}
	return span
}

func demoGroup(scope string, span []int, names ...string) *scorecard.SeriesGroup {
	g := &scorecard.SeriesGroup{Years: span}
	for _, name := range names {
		values := make([]*float64, len(span))
		for i, y := range span {
			values[i] = scorecard.Float(demoMetric(scope, name, y))
		}
		g.Series = append(g.Series, scorecard.Series{Name: name, Values: values})
	}
	return g
}

func demoRow(scope, metric string, baseYear int, value func(string, string, int) float64) scorecard.ComparisonRow {
	current := value(scope, metric, baseYear)
	row := scorecard.ComparisonRow{
		Metric:  metric,
		Current: scorecard.Float(current),
	}
	if baseYear-1 >= demoFirstYear {
		previous := value(scope, metric, baseYear-1)
		row.Previous = scorecard.Float(previous)
		if previous != 0 {
			row.RelativeChange = scorecard.Float(round1((current - previous) / previous * 100))
		}
	}
	return row
}

// demoShare produces a pie share in percent. Shares for one scope and
// year intentionally do not sum to exactly 100; real filings do not
// either.
func demoShare(scope, cause string, year int) float64 {
	idx := lo.IndexOf(demoCauses, cause)
	if idx < 0 {
		idx = 0
	}
	base := []float64{28, 19, 16, 12, 11, 9}[idx]
	return round1(base + drift(scope, cause, year)*4)
}

// demoMetric produces a rate-style value whose range depends on the
// metric family, so thresholds land on both sides of the data.
func demoMetric(scope, metric string, year int) float64 {
	d := drift(scope, metric, year)
	switch metric {
	case "Improper Payment Rate":
		return round1(9.5 + d*3)
	case "Fraud Rate":
		return round1(3 + d*2)
	case "Separation Determination Quality", "Nonseparation Determination Quality":
		return round1(55 + d*12)
	default:
		// Timeliness family hovers around the 87/80 performance lines.
		return round1(85 + d*8)
	}
}

// drift is a deterministic pseudo-random wobble in [-1, 1].
func drift(scope, name string, year int) float64 {
	h := uint32(2166136261)
	for _, s := range []string{scope, name} {
		for i := 0; i < len(s); i++ {
			h = (h ^ uint32(s[i])) * 16777619
		}
	}
	h = (h ^ uint32(year)) * 16777619
	return math.Sin(float64(h % 1000))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
