package marketdata

import (
	"context"
	"fmt"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/types"
)

// KiteProvider serves NSE/BSE tickers through the Kite quote API. Kite
// carries no fundamentals, so every fundamental field keeps its Unknown or
// nil default and only price, change, and volume are populated.
type KiteProvider struct {
	kc       *kiteconnect.Client
	exchange string
}

func NewKiteProvider(apiKey, accessToken, exchange string) *KiteProvider {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	if exchange == "" {
		exchange = "NSE"
	}
	return &KiteProvider{kc: kc, exchange: exchange}
}

func (p *KiteProvider) Snapshot(ctx context.Context, ticker string) (*types.StockSnapshot, error) {
	instrument := fmt.Sprintf("%s:%s", p.exchange, ticker)

	// The Kite SDK manages its own request lifecycle; ctx only gates entry.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quotes, err := p.kc.GetQuote(instrument)
	if err != nil {
		return nil, fmt.Errorf("kite quote for %s: %w", instrument, err)
	}

	q, ok := quotes[instrument]
	if !ok {
		logger.Warn(ctx, "No quote data", "instrument", instrument)
		return nil, nil
	}

	currentPrice := q.LastPrice
	prevClose := q.OHLC.Close
	if prevClose == 0 {
		prevClose = currentPrice
	}

	regularChange := currentPrice - prevClose
	regularPercent := 0.0
	if prevClose != 0 {
		regularPercent = regularChange / prevClose * 100
	}

	return &types.StockSnapshot{
		Ticker:         ticker,
		CompanyName:    ticker,
		CurrentPrice:   currentPrice,
		RegularChange:  regularChange,
		RegularPercent: regularPercent,
		Volume:         float64(q.Volume),
		Sector:         Unknown,
		Industry:       Unknown,
	}, nil
}
