package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/statboard/uiscorecard/internal/scorecard"
)

// DefaultPDFName is the fixed report filename.
const DefaultPDFName = "UI_Overpayments_Report.pdf"

var (
	pdfPrimary  = [3]int{30, 58, 95}
	pdfInk      = [3]int{44, 62, 80}
	pdfMuted    = [3]int{127, 140, 141}
	pdfGrid     = [3]int{220, 220, 220}
	pdfTableAlt = [3]int{241, 245, 249}
)

// WritePDF renders the current selection into a paginated report file.
// An empty path falls back to DefaultPDFName in the working directory.
func WritePDF(ds scorecard.Dataset, sel scorecard.Selection, path string) (string, error) {
	if path == "" {
		path = DefaultPDFName
	}
	data, err := BuildPDF(ds, sel, time.Now())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: writing %s: %w", path, err)
	}
	return path, nil
}

// PDFExporter adapts WritePDF to the dashboard's export hook, fixing the
// output path up front.
func PDFExporter(path string) func(sel scorecard.Selection, ds scorecard.Dataset) (string, error) {
	return func(sel scorecard.Selection, ds scorecard.Dataset) (string, error) {
		return WritePDF(ds, sel, path)
	}
}

// BuildPDF runs the render pipeline off-screen and produces the report
// bytes. Charts with nothing drawable are skipped; they never abort the
// document.
func BuildPDF(ds scorecard.Dataset, sel scorecard.Selection, generatedAt time.Time) ([]byte, error) {
	view, err := scorecard.Resolve(ds, sel.Scope, sel.Year, sel.Category)
	if err != nil {
		return nil, err
	}
	charts := scorecard.BuildCharts(view, true)
	table := scorecard.BuildTable(view.Table, sel.Year)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeCoverPage(pdf, tr, sel, generatedAt)
	writeChartSection(pdf, tr, sel, charts)
	writeTablePage(pdf, tr, table)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCoverPage(pdf *fpdf.Fpdf, tr func(string) string, sel scorecard.Selection, generatedAt time.Time) {
	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetFillColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.Rect(0, 0, pageWidth, 8, "F")

	pdf.SetY(70)
	pdf.SetFont("Arial", "B", 28)
	pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
	pdf.CellFormat(0, 12, "UI Overpayments Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.CellFormat(0, 10, strconv.Itoa(sel.Year), "", 1, "C", false, 0, "")

	pdf.SetY(120)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
	pdf.CellFormat(0, 7, "SCOPE / CATEGORY", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 14)
	pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
	subtitle := fmt.Sprintf("%s, %s", scorecard.ScopeLabel(sel.Scope), sel.Category.Label())
	pdf.CellFormat(0, 9, tr(subtitle), "", 1, "C", false, 0, "")

	pdf.SetY(pageHeight - 45)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format("January 2, 2006 at 15:04 MST")), "", 1, "C", false, 0, "")

	pdf.SetFillColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.Rect(0, pageHeight-8, pageWidth, 8, "F")
}

func addPageHeader(pdf *fpdf.Fpdf, tr func(string) string, sel scorecard.Selection) {
	pageWidth, _ := pdf.GetPageSize()

	pdf.SetDrawColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(20, 15, pageWidth-20, 15)

	pdf.SetY(18)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
	pdf.CellFormat(0, 5, "UI OVERPAYMENTS REPORT", "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
	right := fmt.Sprintf("%s / %d", scorecard.ScopeLabel(sel.Scope), sel.Year)
	pdf.CellFormat(0, 5, tr(right), "", 1, "R", false, 0, "")

	pdf.SetY(28)
}

// writeChartSection prints the category section header once, then one
// header plus vector chart per drawable spec, breaking the page whenever
// the next chart would overflow.
func writeChartSection(pdf *fpdf.Fpdf, tr func(string) string, sel scorecard.Selection, charts []scorecard.ChartSpec) {
	drawable := charts[:0:0]
	for _, spec := range charts {
		if !spec.Empty() {
			drawable = append(drawable, spec)
		}
	}
	if len(drawable) == 0 {
		return
	}

	pdf.AddPage()
	addPageHeader(pdf, tr, sel)

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
	pdf.CellFormat(0, 10, tr(sel.Category.Label()), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	chartWidth := 170.0
	chartHeight := 55.0

	for _, spec := range drawable {
		if pdf.GetY() > 195 {
			pdf.AddPage()
			addPageHeader(pdf, tr, sel)
			pdf.Ln(5)
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
		pdf.CellFormat(0, 7, tr(spec.Title), "", 1, "L", false, 0, "")

		chartX := 20.0
		chartY := pdf.GetY()

		if spec.Kind == scorecard.ChartPie {
			used := drawBreakdownBars(pdf, tr, spec, chartX, chartY, chartWidth)
			pdf.SetY(chartY + used + 10)
		} else {
			drawTrendChart(pdf, spec, chartX, chartY, chartWidth, chartHeight)
			pdf.SetY(chartY + chartHeight + 14)
		}
	}
}

// drawBreakdownBars renders the categorical breakdown as horizontal bars,
// largest share first. Returns the vertical space consumed.
func drawBreakdownBars(pdf *fpdf.Fpdf, tr func(string) string, spec scorecard.ChartSpec, x, y, width float64) float64 {
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

	labelW := 60.0
	valueW := 16.0
	barMax := width - labelW - valueW - 4
	rowH := 7.0

	for i, s := range segments {
		rowY := y + float64(i)*rowH

		pdf.SetXY(x, rowY)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
		pdf.CellFormat(labelW, rowH, tr(s.Name), "", 0, "L", false, 0, "")

		r, g, b := hexRGB(s.Color)
		pdf.SetFillColor(r, g, b)
		barW := (s.Value / maxVal) * barMax
		if barW < 0.5 {
			barW = 0.5
		}
		pdf.Rect(x+labelW, rowY+1.2, barW, rowH-2.4, "F")

		pdf.SetXY(x+labelW+barW+2, rowY)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
		pdf.CellFormat(valueW, rowH, scorecard.FormatPercent(&segments[i].Value), "", 0, "L", false, 0, "")
	}

	return float64(len(segments)) * rowH
}

// drawTrendChart renders a trend spec as grid, per-series polylines with
// graded point markers and an optional dashed threshold line.
func drawTrendChart(pdf *fpdf.Fpdf, spec scorecard.ChartSpec, x, y, width, height float64) {
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(pdfGrid[0], pdfGrid[1], pdfGrid[2])
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, width, height, "FD")

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

	yFor := func(v float64) float64 {
		return y + height - 3 - (v/maxVal)*(height-6)
	}

	// Horizontal grid with value labels.
	pdf.SetFont("Arial", "", 7)
	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		val := (float64(i) / float64(gridLines)) * maxVal
		gridY := yFor(val)

		pdf.SetDrawColor(pdfGrid[0], pdfGrid[1], pdfGrid[2])
		pdf.SetLineWidth(0.1)
		pdf.Line(x, gridY, x+width, gridY)

		pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
		pdf.SetXY(x-15, gridY-2)
		pdf.CellFormat(12, 5, fmt.Sprintf("%.0f", val), "", 0, "R", false, 0, "")
	}

	n := len(spec.Years)
	xFor := func(i int) float64 {
		if n <= 1 {
			return x + width/2
		}
		return x + 6 + (float64(i)/float64(n-1))*(width-12)
	}

	if spec.Threshold != nil {
		thY := yFor(spec.Threshold.Value)
		pdf.SetDrawColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
		pdf.SetLineWidth(0.3)
		pdf.SetDashPattern([]float64{2, 2}, 0)
		pdf.Line(x, thY, x+width, thY)
		pdf.SetDashPattern([]float64{}, 0)

		pdf.SetFont("Arial", "", 7)
		pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
		pdf.SetXY(x+width-30, thY-4)
		pdf.CellFormat(28, 4, spec.Threshold.Label, "", 0, "R", false, 0, "")
	}

	for _, series := range spec.Series {
		lr, lg, lb := hexRGB(series.Color)
		pdf.SetDrawColor(lr, lg, lb)
		pdf.SetLineWidth(0.6)

		// Connect consecutive present points only; a gap in the data is a
		// gap in the line.
		for i := 1; i < len(series.Points) && i < n; i++ {
			prev, cur := series.Points[i-1], series.Points[i]
			if prev.Value == nil || cur.Value == nil {
				continue
			}
			pdf.Line(xFor(i-1), yFor(*prev.Value), xFor(i), yFor(*cur.Value))
		}

		for i, p := range series.Points {
			if p.Value == nil || i >= n {
				continue
			}
			pr, pg, pb := hexRGB(p.Color)
			pdf.SetFillColor(pr, pg, pb)
			pdf.Circle(xFor(i), yFor(*p.Value), 1.1, "F")
		}
	}

	// Year axis.
	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
	for i, year := range spec.Years {
		pdf.SetXY(xFor(i)-6, y+height+1)
		pdf.CellFormat(12, 4, strconv.Itoa(year), "", 0, "C", false, 0, "")
	}

	// Legend under the axis when more than one line shares the chart.
	if len(spec.Series) > 1 {
		pdf.SetXY(x, y+height+6)
		pdf.SetFont("Arial", "", 7)
		for _, series := range spec.Series {
			lr, lg, lb := hexRGB(series.Color)
			pdf.SetFillColor(lr, lg, lb)
			pdf.Rect(pdf.GetX(), pdf.GetY()+1, 2.5, 2.5, "F")
			pdf.SetX(pdf.GetX() + 3.5)
			pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
			pdf.CellFormat(pdf.GetStringWidth(series.Name)+4, 4.5, series.Name, "", 0, "L", false, 0, "")
		}
	}
}

// writeTablePage renders the comparison table on its own page.
func writeTablePage(pdf *fpdf.Fpdf, tr func(string) string, table scorecard.TableSpec) {
	if len(table.Rows) == 0 {
		return
	}

	pdf.AddPage()
	pdf.SetY(20)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
	pdf.CellFormat(0, 10, fmt.Sprintf("Comparison Table (%d)", table.BaseYear), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	colW := [4]float64{62, 42, 42, 24}

	writeHeader := func() {
		pdf.SetFillColor(pdfPrimary[0], pdfPrimary[1], pdfPrimary[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 8)
		for i, h := range table.Headers {
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(colW[i], 8, tr(h), "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Arial", "", 9)
	fill := false
	for _, row := range table.Rows {
		if pdf.GetY() > 260 {
			pdf.AddPage()
			pdf.SetY(20)
			writeHeader()
			pdf.SetFont("Arial", "", 9)
			fill = false
		}

		if fill {
			pdf.SetFillColor(pdfTableAlt[0], pdfTableAlt[1], pdfTableAlt[2])
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		cells := [4]string{row.Metric, row.Current, row.Previous, row.RelativeChange}
		for i, cell := range cells {
			if cell == "NA" {
				pdf.SetTextColor(pdfMuted[0], pdfMuted[1], pdfMuted[2])
			} else {
				pdf.SetTextColor(pdfInk[0], pdfInk[1], pdfInk[2])
			}
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(colW[i], 7, tr(cell), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}
}

// hexRGB parses a "#rrggbb" color, falling back to a neutral gray.
func hexRGB(s string) (int, int, int) {
	if len(s) != 7 || s[0] != '#' {
		return 153, 153, 153
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 153, 153, 153
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
