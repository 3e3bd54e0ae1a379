package scorecard

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// ErrNotAvailable signals that the dataset has nothing for the requested
// (scope, year) pair. It is a non-fatal "nothing to render" condition:
// callers keep whatever they rendered last.
var ErrNotAvailable = errors.New("no data for requested scope and year")

// ResolvedView is the slice of a year bundle relevant to one category.
// Every field is optional; only what the bundle actually carries for the
// category is referenced here. The timeliness group already has the
// waiting-week rule applied.
type ResolvedView struct {
	Scope    string
	BaseYear int
	Category Category

	Pie           map[string]float64
	Bump          *SeriesGroup
	Timeliness    *SeriesGroup
	Nonmonetary   *SeriesGroup
	Improper      *SeriesGroup
	Fraud         *SeriesGroup
	QualitySep    *SeriesGroup
	QualityNonsep *SeriesGroup
	Table         []ComparisonRow
}

// Resolve looks up the bundle for (scope, baseYear) and selects the
// groups and table the category surfaces. Returns ErrNotAvailable when
// the scope is absent or has no bundle for the year.
func Resolve(ds Dataset, scope string, baseYear int, cat Category) (*ResolvedView, error) {
	years, ok := ds[scope]
	if !ok {
		return nil, ErrNotAvailable
	}
	bundle, ok := years[baseYear]
	if !ok || bundle == nil {
		return nil, ErrNotAvailable
	}

	view := &ResolvedView{Scope: scope, BaseYear: baseYear, Category: cat}

	switch cat {
	case CategoryProgram:
		view.Pie = bundle.Pie
		view.Bump = bundle.Bump
		view.Improper = bundle.Improper
		view.Fraud = bundle.Fraud
		view.Table = bundle.TableProgram
	case CategoryBenefit:
		view.Timeliness = filterTimeliness(bundle.Timeliness, scope)
		view.Nonmonetary = bundle.Nonmonetary
		view.Table = bundle.TableBenefit
	default: // overview is a superset summary when the bundle has one
		view.Timeliness = filterTimeliness(bundle.Timeliness, scope)
		view.Nonmonetary = bundle.Nonmonetary
		view.Improper = bundle.Improper
		view.Fraud = bundle.Fraud
		view.QualitySep = bundle.QualitySep
		view.QualityNonsep = bundle.QualityNonsep
		view.Table = bundle.TableBenefit
	}

	return view, nil
}

// filterTimeliness applies the waiting-week rule. National keeps every
// series; waiting-week states keep only the 21-day standard; all other
// states keep only the 14-day standard. This rule applies to the
// timeliness group only.
func filterTimeliness(g *SeriesGroup, scope string) *SeriesGroup {
	if g == nil || scope == ScopeNational {
		return g
	}

	marker := "14 days"
	if IsWaitingWeekState(scope) {
		marker = "21 days"
	}

	return &SeriesGroup{
		Years: g.Years,
		Series: lo.Filter(g.Series, func(s Series, _ int) bool {
			return strings.Contains(s.Name, marker)
		}),
	}
}
