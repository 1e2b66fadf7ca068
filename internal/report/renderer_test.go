package report

import (
	"strings"
	"testing"
	"time"

	"portfolio-dashboard/internal/store"
	"portfolio-dashboard/internal/types"
)

func analysisFixture(ticker string, positionValue, gainPercent float64, redFlags int) types.StockAnalysis {
	a := types.StockAnalysis{
		Ticker:        ticker,
		CurrentPrice:  100,
		PositionValue: positionValue,
		GainPercent:   gainPercent,
		RecentNews:    []string{"item"},
		LynchScore:    types.LynchScore{Recommendation: "BUY", Reasoning: "steady"},
	}
	for i := 0; i < redFlags; i++ {
		a.RedFlags = append(a.RedFlags, "flag")
	}
	return a
}

func rowOrder(html string) []string {
	var order []string
	for _, line := range strings.Split(html, "\n") {
		if strings.Contains(line, "onclick=\"toggleDetails(") {
			start := strings.Index(line, "toggleDetails('") + len("toggleDetails('")
			end := strings.Index(line[start:], "'")
			order = append(order, line[start:start+end])
		}
	}
	return order
}

func TestRenderTotals(t *testing.T) {
	r := NewRenderer(store.DefaultConfig())

	analyses := []types.StockAnalysis{
		analysisFixture("AAPL", 2000, 33.3, 2),
		analysisFixture("MSFT", 3000, -5, 1),
	}

	html, err := r.Render(analyses, time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "$5,000.00") {
		t.Error("Expected total portfolio value $5,000.00 in document")
	}
	if !strings.Contains(html, ">3 &#128680;<") {
		t.Error("Expected 3 total alerts in document")
	}
	if !strings.Contains(html, "2026-08-26 08:00:00 UTC") {
		t.Error("Expected timestamp in document")
	}
}

func TestRenderPremarketColumn(t *testing.T) {
	// include_premarket defaults to true; the column must render with the
	// attached snapshot value.
	r := NewRenderer(store.DefaultConfig())

	a := analysisFixture("AAPL", 2000, 33.3, 0)
	a.PremarketPercent = 1.7

	html, err := r.Render([]types.StockAnalysis{a}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "<th>Pre-market</th>") {
		t.Error("Expected Pre-market column header")
	}
	if !strings.Contains(html, ">1.7%<") {
		t.Error("Expected pre-market percent cell with snapshot value")
	}
	if !strings.Contains(html, `colspan="8"`) {
		t.Error("Expected detail rows to span the pre-market column")
	}
}

func TestRenderPremarketColumnDisabled(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Analysis.IncludePremarket = false
	r := NewRenderer(cfg)

	a := analysisFixture("AAPL", 2000, 33.3, 0)
	a.PremarketPercent = 1.7

	html, err := r.Render([]types.StockAnalysis{a}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "Pre-market") {
		t.Error("Expected no Pre-market column when disabled")
	}
	if strings.Contains(html, ">1.7%<") {
		t.Error("Expected no pre-market cell when disabled")
	}
	if !strings.Contains(html, `colspan="7"`) {
		t.Error("Expected detail rows to span seven columns when disabled")
	}
}

func TestRenderSortByAlerts(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Display.SortBy = "alerts"
	r := NewRenderer(cfg)

	html, err := r.Render([]types.StockAnalysis{
		analysisFixture("ONE", 5000, 1, 1),
		analysisFixture("THREE", 2000, 2, 3),
	}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	order := rowOrder(html)
	if len(order) != 2 || order[0] != "THREE" || order[1] != "ONE" {
		t.Errorf("row order = %v, want [THREE ONE]", order)
	}
}

func TestRenderSortByWeight(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Display.SortBy = "weight"
	r := NewRenderer(cfg)

	html, err := r.Render([]types.StockAnalysis{
		analysisFixture("SMALL", 1500, 1, 0),
		analysisFixture("BIG", 9000, 1, 0),
	}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	order := rowOrder(html)
	if len(order) != 2 || order[0] != "BIG" {
		t.Errorf("row order = %v, want BIG first", order)
	}
}

func TestRenderUnknownSortKeepsOrder(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Display.SortBy = ""
	r := NewRenderer(cfg)

	html, err := r.Render([]types.StockAnalysis{
		analysisFixture("B", 100, 0, 0),
		analysisFixture("A", 200, 0, 0),
	}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	order := rowOrder(html)
	if len(order) != 2 || order[0] != "B" {
		t.Errorf("row order = %v, want input order [B A]", order)
	}
}

func TestRenderFiltersSmallPositions(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Display.ShowSmallPositions = false
	r := NewRenderer(cfg)

	html, err := r.Render([]types.StockAnalysis{
		analysisFixture("BIG", 5000, 1, 1),
		analysisFixture("TINY", 500, 1, 1),
	}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	order := rowOrder(html)
	if len(order) != 1 || order[0] != "BIG" {
		t.Errorf("rows = %v, want only BIG", order)
	}

	// Totals still cover the filtered-out position.
	if !strings.Contains(html, "$5,500.00") {
		t.Error("Expected totals computed before the filter")
	}
}

func TestRenderDefensiveDefaults(t *testing.T) {
	r := NewRenderer(store.DefaultConfig())

	html, err := r.Render([]types.StockAnalysis{{}}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "N/A") {
		t.Error("Expected N/A ticker placeholder")
	}
	if !strings.Contains(html, ">HOLD<") {
		t.Error("Expected HOLD recommendation placeholder")
	}
}

func TestRenderAlertRowClasses(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Display.AlertThresholdGain = 100
	cfg.Display.AlertThresholdLoss = -20
	r := NewRenderer(cfg)

	html, err := r.Render([]types.StockAnalysis{
		analysisFixture("UP", 1000, 150, 0),
		analysisFixture("DOWN", 1000, -30, 0),
		analysisFixture("FLAT", 1000, 5, 0),
	}, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(html, "stock-row alert-gain") {
		t.Error("Expected alert-gain class for large gain")
	}
	if !strings.Contains(html, "stock-row alert-loss") {
		t.Error("Expected alert-loss class for large loss")
	}
}

func TestRenderIdempotent(t *testing.T) {
	r := NewRenderer(store.DefaultConfig())
	analyses := []types.StockAnalysis{analysisFixture("AAPL", 2000, 33.3, 1)}
	at := time.Date(2026, 8, 26, 8, 0, 0, 0, time.UTC)

	first, err := r.Render(analyses, at)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := r.Render(analyses, at)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if first != second {
		t.Error("Expected byte-identical documents for identical inputs")
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-950.25, "-$950.25"},
		{999, "$999.00"},
	}
	for _, tt := range tests {
		if got := formatMoney(tt.in); got != tt.want {
			t.Errorf("formatMoney(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
