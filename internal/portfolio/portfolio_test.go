package portfolio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"portfolio-dashboard/internal/types"
)

func writeTempPortfolio(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio_tickers.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSkipsCommentsAndBlanks(t *testing.T) {
	path := writeTempPortfolio(t, `
# my holdings
AAPL,10,150.00

  # indented comment
MSFT
`)

	positions, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(positions))
	}

	if positions[0].Ticker != "AAPL" {
		t.Errorf("Expected ticker AAPL, got %s", positions[0].Ticker)
	}
	if positions[0].Shares == nil || *positions[0].Shares != 10 {
		t.Errorf("Expected 10 shares, got %v", positions[0].Shares)
	}
	if positions[0].CostBasis == nil || *positions[0].CostBasis != 150.00 {
		t.Errorf("Expected cost basis 150.00, got %v", positions[0].CostBasis)
	}

	if positions[1].Ticker != "MSFT" {
		t.Errorf("Expected ticker MSFT, got %s", positions[1].Ticker)
	}
	if positions[1].Shares != nil {
		t.Errorf("Expected nil shares for ticker-only line, got %v", *positions[1].Shares)
	}
	if positions[1].CostBasis != nil {
		t.Errorf("Expected nil cost basis for ticker-only line, got %v", *positions[1].CostBasis)
	}
}

func TestLoadNormalizesTickerCase(t *testing.T) {
	path := writeTempPortfolio(t, "aapl , 5\n")

	positions, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if positions[0].Ticker != "AAPL" {
		t.Errorf("Expected uppercased ticker AAPL, got %s", positions[0].Ticker)
	}
	if positions[0].Shares == nil || *positions[0].Shares != 5 {
		t.Errorf("Expected trimmed share count 5, got %v", positions[0].Shares)
	}
}

func TestLoadBlankMiddleField(t *testing.T) {
	path := writeTempPortfolio(t, "NVDA,,500.25\n")

	positions, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if positions[0].Shares != nil {
		t.Errorf("Expected nil shares for blank field, got %v", *positions[0].Shares)
	}
	if positions[0].CostBasis == nil || *positions[0].CostBasis != 500.25 {
		t.Errorf("Expected cost basis 500.25, got %v", positions[0].CostBasis)
	}
}

func TestLoadMalformedNumberFails(t *testing.T) {
	path := writeTempPortfolio(t, "AAPL,ten\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for malformed share count")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("Expected error for missing portfolio file")
	}
}

func TestMetrics(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		pos       types.PortfolioPosition
		price     float64
		wantValue float64
		wantGain  float64
	}{
		{
			name:      "full position",
			pos:       types.PortfolioPosition{Ticker: "AAPL", Shares: f(10), CostBasis: f(150)},
			price:     200,
			wantValue: 2000,
			wantGain:  33.333333,
		},
		{
			name:      "ticker only",
			pos:       types.PortfolioPosition{Ticker: "MSFT"},
			price:     400,
			wantValue: 0,
			wantGain:  0,
		},
		{
			name:      "shares without cost basis",
			pos:       types.PortfolioPosition{Ticker: "NVDA", Shares: f(3)},
			price:     100,
			wantValue: 0,
			wantGain:  0,
		},
		{
			name:      "zero cost basis guards division",
			pos:       types.PortfolioPosition{Ticker: "BAD", Shares: f(10), CostBasis: f(0)},
			price:     50,
			wantValue: 500,
			wantGain:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, gain := Metrics(tt.pos, tt.price)
			if math.Abs(value-tt.wantValue) > 1e-9 {
				t.Errorf("position value = %f, want %f", value, tt.wantValue)
			}
			if math.Abs(gain-tt.wantGain) > 1e-4 {
				t.Errorf("gain percent = %f, want %f", gain, tt.wantGain)
			}
		})
	}
}
