package scorecard

import (
	"sort"

	"github.com/samber/lo"
)

// ScopeNational is the sentinel scope code for the nationwide aggregate.
const ScopeNational = "US"

// Category identifies one report section of the scorecard.
type Category string

const (
	CategoryOverview Category = "overview"
	CategoryProgram  Category = "program"
	CategoryBenefit  Category = "benefit"
)

var ValidCategories = []Category{
	CategoryOverview,
	CategoryProgram,
	CategoryBenefit,
}

func (c Category) Label() string {
	switch c {
	case CategoryProgram:
		return "Program Integrity Measures"
	case CategoryBenefit:
		return "Benefit Measures"
	default:
		return "Overview"
	}
}

func ParseCategory(s string) Category {
	for _, c := range ValidCategories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOverview
}

// NextCategory returns the next category in the cycle.
func NextCategory(current Category) Category {
	for i, c := range ValidCategories {
		if c == current {
			return ValidCategories[(i+1)%len(ValidCategories)]
		}
	}
	return ValidCategories[0]
}

// waitingWeekStates are the states where first payment timeliness is
// measured against the 21-day standard instead of 14-day.
var waitingWeekStates = []string{"CA", "VA", "WV"}

// IsWaitingWeekState reports whether the scope uses the 21-day standard.
func IsWaitingWeekState(scope string) bool {
	return lo.Contains(waitingWeekStates, scope)
}

// Series is one named metric with one value per observed year of its
// group. A nil entry means the value is missing for that year; zero is a
// valid observation and is never used as an absence marker.
type Series struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

// SeriesGroup holds a set of series sharing one observed-year axis.
// Years are assumed sorted but are not required to be contiguous, and
// different groups in the same bundle may cover different years.
type SeriesGroup struct {
	Years  []int    `json:"years"`
	Series []Series `json:"series"`
}

// ComparisonRow is one line of the current-vs-prior comparison table.
// Nil values render as "NA".
type ComparisonRow struct {
	Metric         string   `json:"Metric"`
	Current        *float64 `json:"Current"`
	Previous       *float64 `json:"Previous"`
	RelativeChange *float64 `json:"RelativeChange"`
}

// YearBundle is everything published for one (scope, base year) pair.
// Every field is optional; absence means that chart or table simply does
// not exist for the year.
type YearBundle struct {
	Pie           map[string]float64 `json:"pie,omitempty"`
	Bump          *SeriesGroup       `json:"bump,omitempty"`
	Timeliness    *SeriesGroup       `json:"timeliness,omitempty"`
	Nonmonetary   *SeriesGroup       `json:"nonmonetary,omitempty"`
	Improper      *SeriesGroup       `json:"improper,omitempty"`
	Fraud         *SeriesGroup       `json:"fraud,omitempty"`
	QualitySep    *SeriesGroup       `json:"quality_sep,omitempty"`
	QualityNonsep *SeriesGroup       `json:"quality_nonsep,omitempty"`
	TableProgram  []ComparisonRow    `json:"table_program,omitempty"`
	TableBenefit  []ComparisonRow    `json:"table_benefit,omitempty"`
}

// Dataset maps scope code -> base year -> bundle. It is supplied fully
// aggregated and treated as immutable after load.
type Dataset map[string]map[int]*YearBundle

// Scopes returns all scope codes present, national first, states sorted.
func (d Dataset) Scopes() []string {
	states := lo.Filter(lo.Keys(d), func(s string, _ int) bool {
		return s != ScopeNational
	})
	sort.Strings(states)
	if _, ok := d[ScopeNational]; ok {
		return append([]string{ScopeNational}, states...)
	}
	return states
}

// Years returns the base years available for a scope, newest first.
func (d Dataset) Years(scope string) []int {
	years := lo.Keys(d[scope])
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// LatestYear returns the newest base year for a scope, or 0 when the
// scope is absent or empty.
func (d Dataset) LatestYear(scope string) int {
	years := d.Years(scope)
	if len(years) == 0 {
		return 0
	}
	return years[0]
}

// Float returns a pointer to v, for building sparse value lists.
func Float(v float64) *float64 { return &v }
