package marketdata

import (
	"context"
	"math/rand"

	"portfolio-dashboard/internal/types"
)

// MockProvider generates deterministic snapshots for testing and dry runs.
// Values are seeded from the ticker so repeated runs render identical rows.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Snapshot(ctx context.Context, ticker string) (*types.StockSnapshot, error) {
	seed := int64(0)
	for _, c := range ticker {
		seed = seed*31 + int64(c)
	}
	r := rand.New(rand.NewSource(seed))

	currentPrice := 20 + r.Float64()*480
	prevClose := currentPrice * (0.97 + r.Float64()*0.06)

	regularChange := currentPrice - prevClose
	regularPercent := 0.0
	if prevClose != 0 {
		regularPercent = regularChange / prevClose * 100
	}

	pe := 8 + r.Float64()*40
	peg := 0.5 + r.Float64()*3
	dte := r.Float64() * 150
	revGrowth := -0.1 + r.Float64()*0.5
	earnGrowth := -0.2 + r.Float64()*0.8

	return &types.StockSnapshot{
		Ticker:         ticker,
		CompanyName:    ticker + " Inc.",
		CurrentPrice:   currentPrice,
		RegularChange:  regularChange,
		RegularPercent: regularPercent,
		Volume:         float64(100000 + r.Intn(5000000)),
		MarketCap:      currentPrice * float64(10000000+r.Intn(990000000)),
		PERatio:        &pe,
		PEGRatio:       &peg,
		DebtToEquity:   &dte,
		RevenueGrowth:  &revGrowth,
		EarningsGrowth: &earnGrowth,
		Sector:         "Technology",
		Industry:       "Software",
	}, nil
}
