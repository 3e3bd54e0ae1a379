package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/statboard/uiscorecard/internal/datasource"
	"github.com/statboard/uiscorecard/internal/scorecard"
)

func demoSelection() scorecard.Selection {
	return scorecard.Selection{
		Year:     2024,
		Category: scorecard.CategoryOverview,
		Scope:    scorecard.ScopeNational,
		View:     scorecard.ViewCharts,
	}
}

func TestBuildPDF(t *testing.T) {
	data, err := BuildPDF(datasource.Demo(), demoSelection(), time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if len(data) < 1000 {
		t.Fatalf("document suspiciously small: %d bytes", len(data))
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("missing PDF magic header, got %q", data[:8])
	}
}

func TestBuildPDFUnknownScope(t *testing.T) {
	sel := demoSelection()
	sel.Scope = "ZZ"
	if _, err := BuildPDF(datasource.Demo(), sel, time.Now()); !errors.Is(err, scorecard.ErrNotAvailable) {
		t.Errorf("err = %v, want ErrNotAvailable", err)
	}
}

func TestBuildPDFSparseBundle(t *testing.T) {
	// A bundle with a lone breakdown must still produce a document; the
	// absent charts are skipped, not fatal.
	ds := scorecard.Dataset{
		scorecard.ScopeNational: {
			2023: &scorecard.YearBundle{
				Pie: map[string]float64{"Work Search": 60, "All Other Causes": 40},
			},
		},
	}
	sel := scorecard.Selection{Year: 2023, Category: scorecard.CategoryProgram, Scope: scorecard.ScopeNational}

	data, err := BuildPDF(ds, sel, time.Now())
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("missing PDF magic header")
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPDFName)
	written, err := WritePDF(datasource.Demo(), demoSelection(), path)
	if err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if written != path {
		t.Errorf("returned path = %q, want %q", written, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("wrote an empty file")
	}
}

func TestPDFExporterMatchesWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	fn := PDFExporter(path)

	written, err := fn(demoSelection(), datasource.Demo())
	if err != nil {
		t.Fatalf("exporter: %v", err)
	}
	if written != path {
		t.Errorf("returned path = %q, want %q", written, path)
	}
}
