package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ajstarks/svgo"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

const (
	svgWidth  = 720
	svgHeight = 360

	svgInk   = "#2c3e50"
	svgMuted = "#7f8c8d"
	svgGrid  = "#dcdcdc"
	svgBG    = "#f9fafb"
)

// WriteSVGs renders one SVG per drawable chart of the selection into dir.
// Charts are rendered into a staging directory first and moved into place
// once every one of them succeeded, so a failed export never leaves
// partial output behind. The staging directory is removed on every exit
// path, including when the selection resolves to zero drawable charts.
func WriteSVGs(ds scorecard.Dataset, sel scorecard.Selection, dir string) ([]string, error) {
	view, err := scorecard.Resolve(ds, sel.Scope, sel.Year, sel.Category)
	if err != nil {
		return nil, err
	}
	charts := scorecard.BuildCharts(view, true)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: creating %s: %w", dir, err)
	}
	staging, err := os.MkdirTemp(dir, ".svg-staging-")
	if err != nil {
		return nil, fmt.Errorf("export: creating staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	var names []string
	for _, spec := range charts {
		if spec.Empty() {
			continue
		}
		name := spec.ID + ".svg"
		if err := writeChartSVG(filepath.Join(staging, name), spec); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	var out []string
	for _, name := range names {
		dst := filepath.Join(dir, name)
		if err := os.Rename(filepath.Join(staging, name), dst); err != nil {
			return nil, fmt.Errorf("export: moving %s into place: %w", name, err)
		}
		out = append(out, dst)
	}
	return out, nil
}

func writeChartSVG(path string, spec scorecard.ChartSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer file.Close()

	canvas := svg.New(file)
	canvas.Start(svgWidth, svgHeight)
	canvas.Rect(0, 0, svgWidth, svgHeight, "fill:"+svgBG)
	canvas.Text(24, 32, spec.Title, "fill:"+svgInk+";font-size:18px;font-family:sans-serif;font-weight:bold")

	if spec.Kind == scorecard.ChartPie {
		drawBreakdownBarsSVG(canvas, spec)
	} else {
		drawTrendChartSVG(canvas, spec)
	}

	canvas.End()
	return nil
}

func drawBreakdownBarsSVG(canvas *svg.SVG, spec scorecard.ChartSpec) {
	segments := append([]scorecard.PieSegment(nil), spec.Segments...)
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Value > segments[j].Value })

	maxVal := 0.0
	for _, s := range segments {
		if s.Value > maxVal {
			maxVal = s.Value
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	labelX := 24
	barX := 240
	barMax := svgWidth - barX - 80
	rowH := (svgHeight - 80) / len(segments)
	if rowH > 40 {
		rowH = 40
	}

	for i, s := range segments {
		rowY := 60 + i*rowH

		canvas.Text(labelX, rowY+rowH/2+5, s.Name,
			"fill:"+svgInk+";font-size:13px;font-family:sans-serif")

		barW := int((s.Value / maxVal) * float64(barMax))
		if barW < 1 {
			barW = 1
		}
		canvas.Rect(barX, rowY+rowH/4, barW, rowH/2, "fill:"+s.Color)

		canvas.Text(barX+barW+8, rowY+rowH/2+5, scorecard.FormatPercent(&segments[i].Value),
			"fill:"+svgMuted+";font-size:12px;font-family:sans-serif")
	}
}

func drawTrendChartSVG(canvas *svg.SVG, spec scorecard.ChartSpec) {
	plotX := 70
	plotY := 56
	plotW := svgWidth - plotX - 30
	plotH := svgHeight - plotY - 80

	maxVal := 0.0
	for _, s := range spec.Series {
		for _, p := range s.Points {
			if p.Value != nil && *p.Value > maxVal {
				maxVal = *p.Value
			}
		}
	}
	if spec.Threshold != nil && spec.Threshold.Value > maxVal {
		maxVal = spec.Threshold.Value
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	maxVal *= 1.1

	yFor := func(v float64) int {
		return plotY + plotH - int((v/maxVal)*float64(plotH))
	}
	n := len(spec.Years)
	xFor := func(i int) int {
		if n <= 1 {
			return plotX + plotW/2
		}
		return plotX + int((float64(i)/float64(n-1))*float64(plotW))
	}

	// Grid and value axis.
	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		val := (float64(i) / float64(gridLines)) * maxVal
		gy := yFor(val)
		canvas.Line(plotX, gy, plotX+plotW, gy, "stroke:"+svgGrid+";stroke-width:1")
		canvas.Text(plotX-10, gy+4, fmt.Sprintf("%.0f", val),
			"fill:"+svgMuted+";font-size:11px;font-family:sans-serif;text-anchor:end")
	}

	// Year axis.
	for i, year := range spec.Years {
		canvas.Text(xFor(i), plotY+plotH+20, strconv.Itoa(year),
			"fill:"+svgMuted+";font-size:12px;font-family:sans-serif;text-anchor:middle")
	}

	if spec.Threshold != nil {
		thY := yFor(spec.Threshold.Value)
		canvas.Line(plotX, thY, plotX+plotW, thY,
			"stroke:"+svgMuted+";stroke-width:1;stroke-dasharray:6,4")
		canvas.Text(plotX+plotW, thY-6, spec.Threshold.Label,
			"fill:"+svgMuted+";font-size:11px;font-family:sans-serif;text-anchor:end")
	}

	for _, series := range spec.Series {
		// Segments between consecutive present points; data gaps break
		// the line.
		for i := 1; i < len(series.Points) && i < n; i++ {
			prev, cur := series.Points[i-1], series.Points[i]
			if prev.Value == nil || cur.Value == nil {
				continue
			}
			canvas.Line(xFor(i-1), yFor(*prev.Value), xFor(i), yFor(*cur.Value),
				"stroke:"+series.Color+";stroke-width:2")
		}
		for i, p := range series.Points {
			if p.Value == nil || i >= n {
				continue
			}
			canvas.Circle(xFor(i), yFor(*p.Value), 4, "fill:"+p.Color)
		}
	}

	// Legend row along the bottom edge.
	legendX := plotX
	legendY := svgHeight - 24
	for _, series := range spec.Series {
		canvas.Rect(legendX, legendY-10, 12, 12, "fill:"+series.Color)
		canvas.Text(legendX+18, legendY, series.Name,
			"fill:"+svgInk+";font-size:12px;font-family:sans-serif")
		legendX += 18 + 8*len(series.Name) + 24
	}
}
