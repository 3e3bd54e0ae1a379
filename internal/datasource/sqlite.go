package datasource

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

// Chart identifiers used in the series table. They mirror the JSON
// bundle keys so the two formats stay interchangeable.
const (
	chartBump          = "bump"
	chartTimeliness    = "timeliness"
	chartNonmonetary   = "nonmonetary"
	chartImproper      = "improper"
	chartFraud         = "fraud"
	chartQualitySep    = "quality_sep"
	chartQualityNonsep = "quality_nonsep"
)

// LoadSQLite reads a dataset from a SQLite database opened read-only.
//
// Schema:
//
//	bundles(scope, year, pie)                      pie is a JSON object
//	series(scope, year, chart, name, point_year, value)
//	table_rows(scope, year, category, metric, current, previous,
//	           relative_change, position)          category: program|benefit
func LoadSQLite(path string) (scorecard.Dataset, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("datasource: opening %s: %w", path, err)
	}
	defer db.Close()

	ds := scorecard.Dataset{}

	if err := loadBundles(db, ds); err != nil {
		return nil, err
	}
	if err := loadSeries(db, ds); err != nil {
		return nil, err
	}
	if err := loadTableRows(db, ds); err != nil {
		return nil, err
	}

	if err := Validate(ds); err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return ds, nil
}

func bundleAt(ds scorecard.Dataset, scope string, year int) *scorecard.YearBundle {
	years, ok := ds[scope]
	if !ok {
		years = map[int]*scorecard.YearBundle{}
		ds[scope] = years
	}
	b, ok := years[year]
	if !ok {
		b = &scorecard.YearBundle{}
		years[year] = b
	}
	return b
}

func loadBundles(db *sql.DB, ds scorecard.Dataset) error {
	rows, err := db.Query(`SELECT scope, year, pie FROM bundles`)
	if err != nil {
		return fmt.Errorf("datasource: query bundles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scope string
		var year int
		var pieJSON sql.NullString
		if err := rows.Scan(&scope, &year, &pieJSON); err != nil {
			return fmt.Errorf("datasource: scan bundle: %w", err)
		}
		b := bundleAt(ds, scope, year)
		if pieJSON.Valid && pieJSON.String != "" && pieJSON.String != "null" {
			var pie map[string]float64
			if err := json.Unmarshal([]byte(pieJSON.String), &pie); err != nil {
				return fmt.Errorf("datasource: %s/%d: parsing pie: %w", scope, year, err)
			}
			b.Pie = pie
		}
	}
	return rows.Err()
}

func loadSeries(db *sql.DB, ds scorecard.Dataset) error {
	rows, err := db.Query(`
		SELECT scope, year, chart, name, point_year, value
		FROM series
		ORDER BY scope, year, chart, name, point_year
	`)
	if err != nil {
		return fmt.Errorf("datasource: query series: %w", err)
	}
	defer rows.Close()

	type groupKey struct {
		scope string
		year  int
		chart string
	}
	type point struct {
		year  int
		value *float64
	}
	points := map[groupKey]map[string][]point{}
	order := map[groupKey][]string{}

	for rows.Next() {
		var k groupKey
		var name string
		var pointYear int
		var value sql.NullFloat64
		if err := rows.Scan(&k.scope, &k.year, &k.chart, &name, &pointYear, &value); err != nil {
			return fmt.Errorf("datasource: scan series: %w", err)
		}
		var v *float64
		if value.Valid {
			v = scorecard.Float(value.Float64)
		}
		if _, ok := points[k]; !ok {
			points[k] = map[string][]point{}
		}
		if _, ok := points[k][name]; !ok {
			order[k] = append(order[k], name)
		}
		points[k][name] = append(points[k][name], point{year: pointYear, value: v})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for k, byName := range points {
		// The union of point years, ascending, defines the group axis.
		seen := map[int]bool{}
		var years []int
		for _, name := range order[k] {
			for _, p := range byName[name] {
				if !seen[p.year] {
					seen[p.year] = true
					years = append(years, p.year)
				}
			}
		}
		sort.Ints(years)

		index := map[int]int{}
		for i, y := range years {
			index[y] = i
		}

		g := &scorecard.SeriesGroup{Years: years}
		for _, name := range order[k] {
			values := make([]*float64, len(years))
			for _, p := range byName[name] {
				values[index[p.year]] = p.value
			}
			g.Series = append(g.Series, scorecard.Series{Name: name, Values: values})
		}

		b := bundleAt(ds, k.scope, k.year)
		switch k.chart {
		case chartBump:
			b.Bump = g
		case chartTimeliness:
			b.Timeliness = g
		case chartNonmonetary:
			b.Nonmonetary = g
		case chartImproper:
			b.Improper = g
		case chartFraud:
			b.Fraud = g
		case chartQualitySep:
			b.QualitySep = g
		case chartQualityNonsep:
			b.QualityNonsep = g
		default:
			return fmt.Errorf("datasource: %s/%d: unknown chart %q", k.scope, k.year, k.chart)
		}
	}
	return nil
}

func loadTableRows(db *sql.DB, ds scorecard.Dataset) error {
	rows, err := db.Query(`
		SELECT scope, year, category, metric, current, previous, relative_change
		FROM table_rows
		ORDER BY scope, year, category, position
	`)
	if err != nil {
		return fmt.Errorf("datasource: query table_rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scope, category, metric string
		var year int
		var current, previous, change sql.NullFloat64
		if err := rows.Scan(&scope, &year, &category, &metric, &current, &previous, &change); err != nil {
			return fmt.Errorf("datasource: scan table row: %w", err)
		}

		row := scorecard.ComparisonRow{Metric: metric}
		if current.Valid {
			row.Current = scorecard.Float(current.Float64)
		}
		if previous.Valid {
			row.Previous = scorecard.Float(previous.Float64)
		}
		if change.Valid {
			row.RelativeChange = scorecard.Float(change.Float64)
		}

		b := bundleAt(ds, scope, year)
		switch category {
		case "program":
			b.TableProgram = append(b.TableProgram, row)
		case "benefit":
			b.TableBenefit = append(b.TableBenefit, row)
		default:
			return fmt.Errorf("datasource: %s/%d: unknown table category %q", scope, year, category)
		}
	}
	return rows.Err()
}
