package tui

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

var brailleDots = [4][2]rune{
	{0x01, 0x08}, // top
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80}, // bottom
}

// brailleCanvas plots into a 2x4 subpixel grid per character cell. Each
// pixel stores an index into a color list (-1 = empty).
type brailleCanvas struct {
	cw, ch int   // character dimensions
	pw, ph int   // pixel dimensions (cw*2, ch*4)
	grid   []int // flat [ph*pw]
}

func newBrailleCanvas(cw, ch int) *brailleCanvas {
	pw, ph := cw*2, ch*4
	grid := make([]int, pw*ph)
	for i := range grid {
		grid[i] = -1
	}
	return &brailleCanvas{cw: cw, ch: ch, pw: pw, ph: ph, grid: grid}
}

func (c *brailleCanvas) set(px, py, colorIdx int) {
	if px >= 0 && px < c.pw && py >= 0 && py < c.ph {
		c.grid[py*c.pw+px] = colorIdx
	}
}

func (c *brailleCanvas) drawLine(x0, y0, x1, y1, colorIdx int) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	steps := math.Abs(dx)
	if math.Abs(dy) > steps {
		steps = math.Abs(dy)
	}
	if steps == 0 {
		c.set(x0, y0, colorIdx)
		return
	}
	xInc := dx / steps
	yInc := dy / steps
	x, y := float64(x0), float64(y0)
	for i := 0; i <= int(steps); i++ {
		px := int(math.Round(x))
		py := int(math.Round(y))
		c.set(px, py, colorIdx)
		c.set(px, py-1, colorIdx)
		c.set(px, py+1, colorIdx)
		x += xInc
		y += yInc
	}
}

// drawDashedRow marks a horizontal reference line with gaps, so it reads
// as distinct from data lines.
func (c *brailleCanvas) drawDashedRow(py, colorIdx int) {
	if py < 0 || py >= c.ph {
		return
	}
	for px := 0; px < c.pw; px++ {
		if (px/3)%2 == 0 {
			if c.grid[py*c.pw+px] < 0 {
				c.grid[py*c.pw+px] = colorIdx
			}
		}
	}
}

func (c *brailleCanvas) render(colors []lipgloss.Color) []string {
	lines := make([]string, c.ch)
	for cy := 0; cy < c.ch; cy++ {
		var sb strings.Builder
		for cx := 0; cx < c.cw; cx++ {
			pattern := rune(0x2800)
			counts := make(map[int]int)

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					py := cy*4 + dy
					px := cx*2 + dx
					ci := c.grid[py*c.pw+px]
					if ci >= 0 {
						pattern |= brailleDots[dy][dx]
						counts[ci]++
					}
				}
			}

			if pattern == 0x2800 {
				sb.WriteRune(' ')
			} else {
				bestCi, bestCnt := 0, 0
				for ci, cnt := range counts {
					if cnt > bestCnt {
						bestCi = ci
						bestCnt = cnt
					}
				}
				color := colorSubtext
				if bestCi < len(colors) {
					color = colors[bestCi]
				}
				sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(pattern)))
			}
		}
		lines[cy] = sb.String()
	}
	return lines
}

// RenderTrendChart draws a trend spec as a braille line chart with year
// axis, optional dashed threshold row and a legend. Returns "" when the
// spec is empty or the region is too small to plot.
func RenderTrendChart(spec scorecard.ChartSpec, w, h int) string {
	if spec.Kind != scorecard.ChartTrend || spec.Empty() {
		return ""
	}
	if w < 30 || h < 5 {
		return ""
	}

	maxY := 0.0
	for _, s := range spec.Series {
		for _, p := range s.Points {
			if p.Value != nil && *p.Value > maxY {
				maxY = *p.Value
			}
		}
	}
	if spec.Threshold != nil && spec.Threshold.Value > maxY {
		maxY = spec.Threshold.Value
	}
	if maxY == 0 {
		maxY = 1
	}
	maxY *= 1.1

	yAxisW := 7
	plotW := w - yAxisW - 4
	if plotW < 20 {
		plotW = 20
	}
	plotH := h

	canvas := newBrailleCanvas(plotW, plotH)
	var colors []lipgloss.Color
	colorIdxFor := func(hex string) int {
		c := metricColor(hex)
		for i, existing := range colors {
			if existing == c {
				return i
			}
		}
		colors = append(colors, c)
		return len(colors) - 1
	}

	numYears := len(spec.Years)
	xFor := func(i int) int {
		if numYears <= 1 {
			return 0
		}
		return int(float64(i) / float64(numYears-1) * float64(canvas.pw-1))
	}
	yFor := func(v float64) int {
		py := (canvas.ph - 1) - int(v/maxY*float64(canvas.ph-1))
		if py < 0 {
			py = 0
		}
		if py >= canvas.ph {
			py = canvas.ph - 1
		}
		return py
	}

	if spec.Threshold != nil {
		canvas.drawDashedRow(yFor(spec.Threshold.Value), colorIdxFor(string(colorDim)))
	}

	for _, s := range spec.Series {
		prevPX, prevPY, prevIdx := 0, 0, -1
		for i, p := range s.Points {
			if p.Value == nil {
				continue
			}
			px := xFor(i)
			py := yFor(*p.Value)
			ci := colorIdxFor(p.Color)

			canvas.set(px, py, ci)
			// Connect adjacent years only; a missing year leaves a gap
			// in the line, matching the exported charts. The segment
			// into a point carries the point's grading color.
			if prevIdx == i-1 {
				canvas.drawLine(prevPX, prevPY, px, py, ci)
			}
			prevPX, prevPY, prevIdx = px, py, i
		}
	}

	plotLines := canvas.render(colors)

	var sb strings.Builder
	sb.WriteString("  " + chartTitleStyle.Render(spec.Title) + "\n")

	numTicks := 5
	if plotH < 6 {
		numTicks = 3
	}
	tickRows := make(map[int]float64, numTicks)
	for t := 0; t < numTicks; t++ {
		row := t * (plotH - 1) / (numTicks - 1)
		val := maxY / 1.1 * float64(numTicks-1-t) / float64(numTicks-1)
		tickRows[row] = val
	}

	for row := 0; row < plotH; row++ {
		label := ""
		if val, ok := tickRows[row]; ok {
			label = formatAxisValue(val)
		}
		sb.WriteString(fmt.Sprintf("  %*s %s%s\n",
			yAxisW-2, dimStyle.Render(label),
			chartAxisStyle.Render("┤"),
			plotLines[row]))
	}

	sb.WriteString(fmt.Sprintf("  %*s %s%s\n", yAxisW-2, "",
		chartAxisStyle.Render("└"),
		chartAxisStyle.Render(strings.Repeat("─", plotW))))

	yearLine := make([]byte, plotW)
	for i := range yearLine {
		yearLine[i] = ' '
	}
	for i, year := range spec.Years {
		label := strconv.Itoa(year)
		x := 0
		if numYears > 1 {
			x = int(float64(i) / float64(numYears-1) * float64(plotW-1))
		}
		start := x - len(label)/2
		if start < 0 {
			start = 0
		}
		if start+len(label) > plotW {
			start = plotW - len(label)
		}
		for j := 0; j < len(label) && start+j < plotW; j++ {
			yearLine[start+j] = label[j]
		}
	}
	sb.WriteString(fmt.Sprintf("  %*s  %s\n", yAxisW-2, "", dimStyle.Render(string(yearLine))))

	sb.WriteString(renderTrendLegend(spec))
	return sb.String()
}

func renderTrendLegend(spec scorecard.ChartSpec) string {
	markers := []string{"●", "◆", "■", "▲", "★"}

	var sb strings.Builder
	sb.WriteString("  ")
	for i, s := range spec.Series {
		if i > 0 {
			sb.WriteString("   ")
		}
		mk := markers[i%len(markers)]
		sb.WriteString(lipgloss.NewStyle().Foreground(metricColor(s.Color)).Render(mk))
		sb.WriteString(" " + dimStyle.Render(s.Name))
	}
	if spec.Threshold != nil {
		sb.WriteString("   ")
		sb.WriteString(dimStyle.Render("┄ " + spec.Threshold.Label))
	}
	sb.WriteString("\n")
	return sb.String()
}

// RenderBarBreakdown draws a pie spec as a horizontal bar list, largest
// share first.
func RenderBarBreakdown(spec scorecard.ChartSpec, w int) string {
	if spec.Kind != scorecard.ChartPie || spec.Empty() {
		return ""
	}

	labelW := 0
	maxVal := 0.0
	for _, seg := range spec.Segments {
		if len(seg.Name) > labelW {
			labelW = len(seg.Name)
		}
		if seg.Value > maxVal {
			maxVal = seg.Value
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}
	if labelW > 32 {
		labelW = 32
	}

	barW := w - labelW - 14
	if barW < 8 {
		barW = 8
	}
	if barW > 48 {
		barW = 48
	}

	segments := append([]scorecard.PieSegment(nil), spec.Segments...)
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].Value > segments[j].Value
	})

	var sb strings.Builder
	sb.WriteString("  " + chartTitleStyle.Render(spec.Title) + "\n")
	for _, seg := range segments {
		label := seg.Name
		if len(label) > labelW {
			label = label[:labelW-1] + "…"
		}

		barLen := int(seg.Value / maxVal * float64(barW))
		if barLen < 1 && seg.Value > 0 {
			barLen = 1
		}

		color := metricColor(seg.Color)
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", barLen))
		track := chartAxisStyle.Render(strings.Repeat("░", barW-barLen))
		value := lipgloss.NewStyle().Foreground(color).Bold(true).Render(scorecard.FormatPercent(scorecard.Float(seg.Value)))

		sb.WriteString(fmt.Sprintf("  %s %s%s  %s\n",
			labelStyle.Width(labelW).Render(label), bar, track, value))
	}
	return sb.String()
}

func formatAxisValue(v float64) string {
	if v >= 100 {
		return fmt.Sprintf("%.0f", v)
	}
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
