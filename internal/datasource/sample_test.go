package datasource

import (
	"testing"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

func TestDemoValidates(t *testing.T) {
	if err := Validate(Demo()); err != nil {
		t.Fatalf("demo dataset failed validation: %v", err)
	}
}

func TestDemoShape(t *testing.T) {
	ds := Demo()

	if _, ok := ds[scorecard.ScopeNational]; !ok {
		t.Fatal("demo dataset must include the national scope")
	}
	if got := ds.LatestYear(scorecard.ScopeNational); got != demoLastYear {
		t.Errorf("latest year = %d, want %d", got, demoLastYear)
	}

	// Every scope covers the full year range.
	for _, scope := range ds.Scopes() {
		if got := len(ds[scope]); got != demoLastYear-demoFirstYear+1 {
			t.Errorf("scope %s has %d years", scope, got)
		}
	}

	// Waiting-week states must be present so the 21-day rule is
	// exercised out of the box.
	for _, scope := range []string{"CA", "VA", "WV"} {
		if _, ok := ds[scope]; !ok {
			t.Errorf("waiting-week state %s missing from demo data", scope)
		}
	}
}

func TestDemoDeterministic(t *testing.T) {
	a := Demo()["CA"][2023]
	b := Demo()["CA"][2023]
	if a.Pie["Work Search"] != b.Pie["Work Search"] {
		t.Error("demo values must be deterministic across calls")
	}
}

func TestDemoSpanClipsToRange(t *testing.T) {
	// A 2020 report window reaches back to 2015, but demo data starts
	// at 2019: the group must be sparse, not padded.
	g := Demo()["US"][2020].Fraud
	if len(g.Years) != 2 {
		t.Fatalf("2020 group years = %v, want [2019 2020]", g.Years)
	}
	if g.Years[0] != demoFirstYear {
		t.Errorf("first year = %d, want %d", g.Years[0], demoFirstYear)
	}
}

func TestDemoResolvesEverywhere(t *testing.T) {
	ds := Demo()
	for _, scope := range ds.Scopes() {
		for _, year := range ds.Years(scope) {
			for _, cat := range scorecard.ValidCategories {
				if _, err := scorecard.Resolve(ds, scope, year, cat); err != nil {
					t.Errorf("Resolve(%s, %d, %s): %v", scope, year, cat, err)
				}
			}
		}
	}
}
