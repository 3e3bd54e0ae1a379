// Package datasource loads scorecard datasets from JSON files or SQLite
// databases and watches the backing file for changes.
package datasource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

// ErrUnsupportedFormat is returned for paths whose extension maps to no
// known reader.
var ErrUnsupportedFormat = errors.New("datasource: unsupported file format")

// Load reads a dataset from path, dispatching on the file extension.
// The loaded dataset is validated before it is returned.
func Load(path string) (scorecard.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Validate checks the structural invariants every reader must deliver:
// the national scope exists with at least one year, and within every
// bundle each series carries exactly one value per group year.
func Validate(ds scorecard.Dataset) error {
	if len(ds) == 0 {
		return errors.New("datasource: dataset is empty")
	}
	national, ok := ds[scorecard.ScopeNational]
	if !ok || len(national) == 0 {
		return fmt.Errorf("datasource: national scope %q missing", scorecard.ScopeNational)
	}

	for scope, years := range ds {
		for year, bundle := range years {
			if bundle == nil {
				return fmt.Errorf("datasource: %s/%d: bundle is null", scope, year)
			}
			groups := map[string]*scorecard.SeriesGroup{
				"bump":           bundle.Bump,
				"timeliness":     bundle.Timeliness,
				"nonmonetary":    bundle.Nonmonetary,
				"improper":       bundle.Improper,
				"fraud":          bundle.Fraud,
				"quality_sep":    bundle.QualitySep,
				"quality_nonsep": bundle.QualityNonsep,
			}
			for chart, g := range groups {
				if g == nil {
					continue
				}
				for _, s := range g.Series {
					if len(s.Values) != len(g.Years) {
						return fmt.Errorf("datasource: %s/%d/%s: series %q has %d values for %d years",
							scope, year, chart, s.Name, len(s.Values), len(g.Years))
					}
				}
			}
		}
	}
	return nil
}
