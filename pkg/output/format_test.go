package output

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/Qiqian1999/sement/internal/blend"
	"github.com/Qiqian1999/sement/internal/config"
	"github.com/Qiqian1999/sement/internal/optimizer"
)

func sampleResult() *optimizer.Result {
	return &optimizer.Result{
		Materials: []string{"A", "B"},
		Prices:    []float64{10, 2},
		Reference: blend.Blend{0.5, 0.5},
		Optimal:   blend.Blend{0, 1},
		Comparison: blend.Comparison{
			ReferenceCost:      6,
			OptimalCost:        2,
			Savings:            4,
			ReferenceBreakdown: []float64{5, 1},
			OptimalBreakdown:   []float64{0, 2},
		},
		Quality: config.QualityConfig{StrengthTarget: 15, FinenessTarget: 20},
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to open pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	out := captureStdout(t, func() {
		PrettyFormat(sampleResult())
	})

	if !strings.Contains(out, "--- Blend cost comparison ---") {
		t.Errorf("PrettyFormat missing header")
	}
	if !strings.Contains(out, "50.00%") {
		t.Errorf("PrettyFormat missing reference percentage")
	}
	if !strings.Contains(out, "100.00%") {
		t.Errorf("PrettyFormat missing optimized percentage")
	}
	if !strings.Contains(out, "Reference cost: ¥6.00/t") {
		t.Errorf("PrettyFormat missing reference cost line, got %q", out)
	}
	if !strings.Contains(out, "Optimized cost: ¥2.00/t") {
		t.Errorf("PrettyFormat missing optimized cost line")
	}
	if !strings.Contains(out, "Savings: ¥4.00/t") {
		t.Errorf("PrettyFormat missing savings line")
	}
	if !strings.Contains(out, "Quality targets (informational)") {
		t.Errorf("PrettyFormat missing quality target line")
	}
}

func TestPrettyFormatWithoutQualityTargets(t *testing.T) {
	result := sampleResult()
	result.Quality = config.QualityConfig{}

	out := captureStdout(t, func() {
		PrettyFormat(result)
	})

	if strings.Contains(out, "Quality targets") {
		t.Errorf("PrettyFormat printed quality targets for an empty quality config")
	}
}

func TestCsvString(t *testing.T) {
	csv := CsvString(sampleResult())

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, two materials, and a total row, got %d lines", len(lines))
	}
	if lines[0] != `"material","reference ratio","optimized ratio","price","reference cost","optimized cost"` {
		t.Errorf("unexpected CSV header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], `"A","0.500000","0.000000","10.00"`) {
		t.Errorf("unexpected first material row %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], `"total","1.000000","1.000000"`) {
		t.Errorf("unexpected total row %q", lines[3])
	}
	if !strings.Contains(lines[3], `"6.00","2.00"`) {
		t.Errorf("total row missing blend costs, got %q", lines[3])
	}
}

func TestCsvFormatPrintsCsvString(t *testing.T) {
	result := sampleResult()

	out := captureStdout(t, func() {
		CsvFormat(result)
	})

	if out != CsvString(result) {
		t.Errorf("CsvFormat output differs from CsvString")
	}
}
