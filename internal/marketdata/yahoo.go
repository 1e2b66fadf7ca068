package marketdata

import (
	"context"
	"fmt"
	"time"

	"portfolio-dashboard/internal/api"
	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/types"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// quoteSummary modules fetched in a single call.
var yahooModules = "price,summaryDetail,defaultKeyStatistics,financialData,assetProfile"

// YahooProvider reads price history from the v8 chart endpoint and
// fundamentals from the v10 quoteSummary endpoint.
type YahooProvider struct {
	client *api.Client
}

func NewYahooProvider() *YahooProvider {
	return newYahooProvider(yahooBaseURL)
}

func newYahooProvider(baseURL string) *YahooProvider {
	return &YahooProvider{
		client: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(30*time.Second),
			api.WithLogging(true),
		),
	}
}

type yahooNum struct {
	Raw float64 `json:"raw"`
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

type yahooQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName       string    `json:"longName"`
				ShortName      string    `json:"shortName"`
				MarketCap      *yahooNum `json:"marketCap"`
				PreMarketPrice *yahooNum `json:"preMarketPrice"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE *yahooNum `json:"trailingPE"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PegRatio *yahooNum `json:"pegRatio"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				DebtToEquity   *yahooNum `json:"debtToEquity"`
				RevenueGrowth  *yahooNum `json:"revenueGrowth"`
				EarningsGrowth *yahooNum `json:"earningsGrowth"`
			} `json:"financialData"`
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

func (p *YahooProvider) Snapshot(ctx context.Context, ticker string) (*types.StockSnapshot, error) {
	closes, volume, err := p.fetchHistory(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch price history for %s: %w", ticker, err)
	}
	if len(closes) == 0 {
		logger.Warn(ctx, "No price history", "ticker", ticker)
		return nil, nil
	}

	currentPrice := closes[len(closes)-1]
	prevClose := currentPrice
	if len(closes) > 1 {
		prevClose = closes[len(closes)-2]
	}

	regularChange := currentPrice - prevClose
	regularPercent := 0.0
	if prevClose != 0 {
		regularPercent = regularChange / prevClose * 100
	}

	snap := &types.StockSnapshot{
		Ticker:         ticker,
		CompanyName:    ticker,
		CurrentPrice:   currentPrice,
		RegularChange:  regularChange,
		RegularPercent: regularPercent,
		Volume:         volume,
		Sector:         Unknown,
		Industry:       Unknown,
	}

	// Fundamentals and pre-market are best-effort: a quoteSummary failure
	// degrades to Unknown sentinels instead of skipping the ticker.
	if err := p.fillFundamentals(ctx, ticker, snap); err != nil {
		logger.Warn(ctx, "Fundamentals unavailable", "ticker", ticker, "error", err)
	}

	return snap, nil
}

// fetchHistory returns up to five days of daily closes plus the latest volume.
// Yahoo pads the arrays with nulls on holidays; those entries are dropped.
func (p *YahooProvider) fetchHistory(ctx context.Context, ticker string) ([]float64, float64, error) {
	url := fmt.Sprintf("/v8/finance/chart/%s?interval=1d&range=5d", ticker)
	resp, err := p.client.GET(ctx, url, api.YahooFinanceHeaders())
	if err != nil {
		return nil, 0, err
	}

	var chart yahooChartResponse
	if err := resp.ParseJSON(&chart); err != nil {
		return nil, 0, err
	}

	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, 0, nil
	}
	quote := chart.Chart.Result[0].Indicators.Quote[0]

	var closes []float64
	var volume float64
	for i, c := range quote.Close {
		if c == nil {
			continue
		}
		closes = append(closes, *c)
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}
	}
	return closes, volume, nil
}

func (p *YahooProvider) fillFundamentals(ctx context.Context, ticker string, snap *types.StockSnapshot) error {
	url := fmt.Sprintf("/v10/finance/quoteSummary/%s?modules=%s", ticker, yahooModules)
	resp, err := p.client.GET(ctx, url, api.YahooFinanceHeaders())
	if err != nil {
		return err
	}

	var summary yahooQuoteSummaryResponse
	if err := resp.ParseJSON(&summary); err != nil {
		return err
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return fmt.Errorf("empty quoteSummary result for %s", ticker)
	}
	result := summary.QuoteSummary.Result[0]

	if result.Price.LongName != "" {
		snap.CompanyName = result.Price.LongName
	} else if result.Price.ShortName != "" {
		snap.CompanyName = result.Price.ShortName
	}
	if result.Price.MarketCap != nil {
		snap.MarketCap = result.Price.MarketCap.Raw
	}
	if result.SummaryDetail.TrailingPE != nil {
		snap.PERatio = &result.SummaryDetail.TrailingPE.Raw
	}
	if result.DefaultKeyStatistics.PegRatio != nil {
		snap.PEGRatio = &result.DefaultKeyStatistics.PegRatio.Raw
	}
	if result.FinancialData.DebtToEquity != nil {
		snap.DebtToEquity = &result.FinancialData.DebtToEquity.Raw
	}
	if result.FinancialData.RevenueGrowth != nil {
		snap.RevenueGrowth = &result.FinancialData.RevenueGrowth.Raw
	}
	if result.FinancialData.EarningsGrowth != nil {
		snap.EarningsGrowth = &result.FinancialData.EarningsGrowth.Raw
	}
	if result.AssetProfile.Sector != "" {
		snap.Sector = result.AssetProfile.Sector
	}
	if result.AssetProfile.Industry != "" {
		snap.Industry = result.AssetProfile.Industry
	}

	// Pre-market availability depends on the provider and time of day;
	// absence leaves both fields zero.
	if result.Price.PreMarketPrice != nil && snap.CurrentPrice != 0 {
		snap.PremarketChange = result.Price.PreMarketPrice.Raw - snap.CurrentPrice
		snap.PremarketPercent = snap.PremarketChange / snap.CurrentPrice * 100
	}

	return nil
}
