package scorecard

import "testing"

func TestWindow(t *testing.T) {
	got := Window(2023)
	want := []int{2018, 2019, 2020, 2021, 2022, 2023}
	if len(got) != WindowSize {
		t.Fatalf("Window(2023) length = %d, want %d", len(got), WindowSize)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Window(2023)[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestAlignValues(t *testing.T) {
	window := Window(2023)

	tests := []struct {
		name     string
		srcYears []int
		values   []*float64
		want     []*float64
	}{
		{
			name:     "full coverage",
			srcYears: []int{2018, 2019, 2020, 2021, 2022, 2023},
			values:   []*float64{Float(1), Float(2), Float(3), Float(4), Float(5), Float(6)},
			want:     []*float64{Float(1), Float(2), Float(3), Float(4), Float(5), Float(6)},
		},
		{
			name:     "sparse source",
			srcYears: []int{2019, 2022},
			values:   []*float64{Float(7), Float(9)},
			want:     []*float64{nil, Float(7), nil, nil, Float(9), nil},
		},
		{
			name:     "empty source",
			srcYears: nil,
			values:   nil,
			want:     []*float64{nil, nil, nil, nil, nil, nil},
		},
		{
			name:     "years outside window ignored",
			srcYears: []int{2010, 2023, 2030},
			values:   []*float64{Float(1), Float(2), Float(3)},
			want:     []*float64{nil, nil, nil, nil, nil, Float(2)},
		},
		{
			name:     "zero is a value, not a gap",
			srcYears: []int{2023},
			values:   []*float64{Float(0)},
			want:     []*float64{nil, nil, nil, nil, nil, Float(0)},
		},
		{
			name:     "duplicate source year takes first match",
			srcYears: []int{2023, 2023},
			values:   []*float64{Float(11), Float(22)},
			want:     []*float64{nil, nil, nil, nil, nil, Float(11)},
		},
		{
			name:     "missing marker in source survives",
			srcYears: []int{2022, 2023},
			values:   []*float64{nil, Float(5)},
			want:     []*float64{nil, nil, nil, nil, nil, Float(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignValues(tt.srcYears, tt.values, window)
			if len(got) != WindowSize {
				t.Fatalf("aligned length = %d, want %d", len(got), WindowSize)
			}
			for i := range got {
				if (got[i] == nil) != (tt.want[i] == nil) {
					t.Errorf("position %d: got %v, want %v", i, fmtPtr(got[i]), fmtPtr(tt.want[i]))
					continue
				}
				if got[i] != nil && *got[i] != *tt.want[i] {
					t.Errorf("position %d = %v, want %v", i, *got[i], *tt.want[i])
				}
			}
		})
	}
}

func TestAlignGroup(t *testing.T) {
	g := &SeriesGroup{
		Years: []int{2021, 2023},
		Series: []Series{
			{Name: "Fraud Rate", Values: []*float64{Float(8), Float(12)}},
			{Name: "Improper Payment Rate", Values: []*float64{Float(10), nil}},
		},
	}

	aligned := AlignGroup(g, Window(2023))
	if len(aligned.Years) != WindowSize {
		t.Fatalf("aligned years = %d, want %d", len(aligned.Years), WindowSize)
	}
	if len(aligned.Series) != 2 {
		t.Fatalf("aligned series count = %d, want 2", len(aligned.Series))
	}
	for _, s := range aligned.Series {
		if len(s.Values) != WindowSize {
			t.Errorf("series %q length = %d, want %d", s.Name, len(s.Values), WindowSize)
		}
	}
	if v := aligned.Series[0].Values[3]; v == nil || *v != 8 {
		t.Errorf("2021 value = %v, want 8", fmtPtr(v))
	}
	if v := aligned.Series[1].Values[5]; v != nil {
		t.Errorf("nil source value should stay nil, got %v", *v)
	}

	if AlignGroup(nil, Window(2023)) != nil {
		t.Error("aligning a nil group should return nil")
	}
}

func fmtPtr(v *float64) interface{} {
	if v == nil {
		return "nil"
	}
	return *v
}
