package scorecard

// WindowSize is the fixed number of years shown on every trend chart.
const WindowSize = 6

// Window returns the contiguous display window ending at baseYear:
// [baseYear-5 .. baseYear]. It is derived per render and never stored.
func Window(baseYear int) []int {
	years := make([]int, 0, WindowSize)
	for y := baseYear - (WindowSize - 1); y <= baseYear; y++ {
		years = append(years, y)
	}
	return years
}

// AlignValues re-indexes a sparse year-keyed value list onto the display
// window. The result always has exactly len(window) entries: the value at
// the first srcYears index matching the window year, or nil when the
// source does not cover that year. An empty source yields an all-nil
// result. Zero values pass through untouched; only nil marks absence.
func AlignValues(srcYears []int, values []*float64, window []int) []*float64 {
	aligned := make([]*float64, len(window))
	for i, year := range window {
		for j, srcYear := range srcYears {
			if srcYear != year {
				continue
			}
			if j < len(values) {
				aligned[i] = values[j]
			}
			break
		}
	}
	return aligned
}

// AlignGroup aligns every series of a group onto the window, producing a
// dense group whose year axis is the window itself.
func AlignGroup(g *SeriesGroup, window []int) *SeriesGroup {
	if g == nil {
		return nil
	}
	aligned := &SeriesGroup{
		Years:  append([]int(nil), window...),
		Series: make([]Series, 0, len(g.Series)),
	}
	for _, s := range g.Series {
		aligned.Series = append(aligned.Series, Series{
			Name:   s.Name,
			Values: AlignValues(g.Years, s.Values, window),
		})
	}
	return aligned
}
