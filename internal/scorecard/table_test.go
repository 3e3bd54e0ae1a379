package scorecard

import "testing"

func TestBuildTableFormatting(t *testing.T) {
	rows := []ComparisonRow{
		{Metric: "X", Current: Float(12.5), Previous: nil, RelativeChange: nil},
		{Metric: "Y", Current: Float(40), Previous: Float(38), RelativeChange: Float(5.3)},
		{Metric: "Z", Current: nil, Previous: Float(2), RelativeChange: Float(-1.5)},
	}

	spec := BuildTable(rows, 2023)

	if spec.Headers[1] != "% of Overpayments (2023 PIIA)" {
		t.Errorf("current header = %q", spec.Headers[1])
	}
	if spec.Headers[2] != "% of Overpayments (2022 PIIA)" {
		t.Errorf("previous header = %q", spec.Headers[2])
	}

	// Sorted by current descending, absent current last.
	wantOrder := []string{"Y", "X", "Z"}
	for i, want := range wantOrder {
		if spec.Rows[i].Metric != want {
			t.Fatalf("row %d = %q, want %q", i, spec.Rows[i].Metric, want)
		}
	}

	tests := []struct {
		row  TableRow
		want TableRow
	}{
		{spec.Rows[0], TableRow{Metric: "Y", Current: "40%", Previous: "38%", RelativeChange: "+5.3%"}},
		{spec.Rows[1], TableRow{Metric: "X", Current: "12.5%", Previous: "NA", RelativeChange: "NA"}},
		{spec.Rows[2], TableRow{Metric: "Z", Current: "NA", Previous: "2%", RelativeChange: "-1.5%"}},
	}
	for _, tt := range tests {
		if tt.row != tt.want {
			t.Errorf("row = %+v, want %+v", tt.row, tt.want)
		}
	}
}

func TestBuildTableDoesNotMutateInput(t *testing.T) {
	rows := []ComparisonRow{
		{Metric: "B", Current: Float(1)},
		{Metric: "A", Current: Float(9)},
	}
	BuildTable(rows, 2023)
	if rows[0].Metric != "B" {
		t.Error("BuildTable must sort a copy, not the caller's slice")
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		v    *float64
		want string
	}{
		{Float(12.5), "12.5%"},
		{Float(40), "40%"},
		{Float(0), "0%"},
		{nil, "NA"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.v); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", fmtPtr(tt.v), got, tt.want)
		}
	}
}
