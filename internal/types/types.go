package types

// PortfolioPosition is one line of the portfolio file. Shares and CostBasis
// are nil when the line only carries a ticker.
type PortfolioPosition struct {
	Ticker    string
	Shares    *float64
	CostBasis *float64
}

// StockSnapshot is a point-in-time read of a ticker's price and fundamentals.
// Pointer fields are nil when the provider omits them.
type StockSnapshot struct {
	Ticker           string
	CompanyName      string
	CurrentPrice     float64
	RegularChange    float64
	RegularPercent   float64
	PremarketChange  float64
	PremarketPercent float64
	Volume           float64
	MarketCap        float64
	PERatio          *float64
	PEGRatio         *float64
	DebtToEquity     *float64
	RevenueGrowth    *float64
	EarningsGrowth   *float64
	Sector           string
	Industry         string
}

type FundamentalHealth struct {
	RevenueTrend        string `json:"revenue_trend"`
	EarningsTrend       string `json:"earnings_trend"`
	DebtSituation       string `json:"debt_situation"`
	CompetitivePosition string `json:"competitive_position"`
}

type Catalyst struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

type InsiderActivity struct {
	RecentBuying  string `json:"recent_buying"`
	RecentSelling string `json:"recent_selling"`
	NetSentiment  string `json:"net_sentiment"`
}

type PEGAnalysis struct {
	CurrentPEG *float64 `json:"current_peg"`
	Assessment string   `json:"assessment"`
	Reasoning  string   `json:"reasoning"`
}

type LynchScore struct {
	Recommendation string `json:"recommendation"`
	Reasoning      string `json:"reasoning"`
	PriceTarget    string `json:"price_target"`
	RiskLevel      string `json:"risk_level"`
}

// StockAnalysis is the model's parsed response merged with locally computed
// position metrics. Every field is populated on both the success and the
// fallback path so the renderer never needs null checks.
type StockAnalysis struct {
	RecentNews        []string          `json:"recent_news"`
	FundamentalHealth FundamentalHealth `json:"fundamental_health"`
	RedFlags          []string          `json:"red_flags"`
	GreenFlags        []string          `json:"green_flags"`
	UpcomingCatalysts []Catalyst        `json:"upcoming_catalysts"`
	InsiderActivity   InsiderActivity   `json:"insider_activity"`
	Competitors       []string          `json:"competitors"`
	PEGAnalysis       PEGAnalysis       `json:"peg_analysis"`
	LynchScore        LynchScore        `json:"lynch_score"`

	// Computed locally, never trusted from the model.
	PositionValue float64 `json:"position_value"`
	GainPercent   float64 `json:"gain_percent"`
	WeightPercent float64 `json:"weight_percent"`

	// Attached by the orchestrator after analysis.
	Ticker           string  `json:"ticker"`
	CurrentPrice     float64 `json:"current_price"`
	RegularPercent   float64 `json:"regular_percent"`
	PremarketPercent float64 `json:"premarket_percent"`
}

// Headline is a scraped news headline embedded into the analysis prompt.
type Headline struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Symbol      string `json:"symbol"`
}
