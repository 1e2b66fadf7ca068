package claude

import (
	"fmt"
	"sort"
	"strings"

	"portfolio-dashboard/internal/store"
	"portfolio-dashboard/internal/types"
)

// analysisSchema is the JSON shape the model must return. The key names and
// nesting are part of the contract with ParseAnalysis; the current_peg
// placeholder is filled with the snapshot's PEG ratio or null.
const analysisSchema = `{
    "recent_news": ["List of 3-5 recent news items affecting the stock"],
    "fundamental_health": {
        "revenue_trend": "improving/declining/stable",
        "earnings_trend": "improving/declining/stable",
        "debt_situation": "healthy/concerning/critical",
        "competitive_position": "strong/average/weak"
    },
    "red_flags": ["List any Peter Lynch red flags"],
    "green_flags": ["List any Peter Lynch positive signals"],
    "upcoming_catalysts": [
        {"date": "YYYY-MM-DD", "event": "Description of catalyst"},
        {"date": "YYYY-MM-DD", "event": "Description of catalyst"}
    ],
    "insider_activity": {
        "recent_buying": "amount or none",
        "recent_selling": "amount or none",
        "net_sentiment": "bullish/bearish/neutral"
    },
    "competitors": ["List 2-3 main competitors in same space"],
    "peg_analysis": {
        "current_peg": %s,
        "assessment": "undervalued/fairly_valued/overvalued",
        "reasoning": "Brief explanation"
    },
    "lynch_score": {
        "recommendation": "BUY/HOLD/TRIM/SELL",
        "reasoning": "Peter Lynch style explanation",
        "price_target": "estimated fair value",
        "risk_level": "low/medium/high"
    }
}`

// BuildPrompt serializes the snapshot, position metrics, and scraped
// headlines into the analysis request for the model.
func BuildPrompt(snap *types.StockSnapshot, pos types.PortfolioPosition, positionValue, gainPercent float64, headlines []types.Headline, cfg *store.Config) string {
	var b strings.Builder

	b.WriteString("Analyze this stock using Peter Lynch's investment principles. Provide a comprehensive analysis including:\n\n")

	b.WriteString("STOCK DATA:\n")
	fmt.Fprintf(&b, "- Ticker: %s\n", snap.Ticker)
	fmt.Fprintf(&b, "- Company: %s\n", snap.CompanyName)
	fmt.Fprintf(&b, "- Current Price: $%.2f\n", snap.CurrentPrice)
	fmt.Fprintf(&b, "- Daily Change: %.2f%%\n", snap.RegularPercent)
	if cfg.Analysis.IncludePremarket {
		fmt.Fprintf(&b, "- Pre-market Change: %.2f%%\n", snap.PremarketPercent)
	}
	fmt.Fprintf(&b, "- Sector: %s\n", snap.Sector)
	fmt.Fprintf(&b, "- Industry: %s\n", snap.Industry)
	fmt.Fprintf(&b, "- Market Cap: $%.0f\n", snap.MarketCap)
	fmt.Fprintf(&b, "- P/E Ratio: %s\n", fmtOptional(snap.PERatio))
	fmt.Fprintf(&b, "- PEG Ratio: %s\n", fmtOptional(snap.PEGRatio))
	fmt.Fprintf(&b, "- Debt/Equity: %s\n", fmtOptional(snap.DebtToEquity))
	fmt.Fprintf(&b, "- Revenue Growth: %s\n", fmtOptional(snap.RevenueGrowth))
	fmt.Fprintf(&b, "- Earnings Growth: %s\n", fmtOptional(snap.EarningsGrowth))

	if len(headlines) > 0 {
		b.WriteString("\nRECENT HEADLINES:\n")
		for _, h := range headlines {
			if h.PublishedAt != "" {
				fmt.Fprintf(&b, "- [%s, %s] %s\n", h.Source, h.PublishedAt, h.Title)
			} else {
				fmt.Fprintf(&b, "- [%s] %s\n", h.Source, h.Title)
			}
		}
	}

	b.WriteString("\nPOSITION DATA:\n")
	fmt.Fprintf(&b, "- Shares Owned: %s\n", fmtOptional(pos.Shares))
	fmt.Fprintf(&b, "- Cost Basis: %s\n", fmtOptionalMoney(pos.CostBasis))
	fmt.Fprintf(&b, "- Current Value: $%.2f\n", positionValue)
	fmt.Fprintf(&b, "- Gain/Loss: %.1f%%\n", gainPercent)

	if len(cfg.Analysis.LynchWeights) > 0 {
		b.WriteString("\nANALYST FACTOR PREFERENCES (weights; do not compute a score from them, weigh them qualitatively):\n")
		keys := make([]string, 0, len(cfg.Analysis.LynchWeights))
		for k := range cfg.Analysis.LynchWeights {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %.2f\n", k, cfg.Analysis.LynchWeights[k])
		}
	}

	b.WriteString("\nPlease provide analysis in this JSON format:\n")
	fmt.Fprintf(&b, analysisSchema, fmtJSONNumber(snap.PEGRatio))
	b.WriteString("\n\n")

	b.WriteString("Focus on finding REAL catalysts (product launches, contracts, partnerships, regulatory approvals) not just earnings dates.\n")
	fmt.Fprintf(&b, "Search for recent news from the past %d days.\n", cfg.Analysis.MaxNewsDays)
	fmt.Fprintf(&b, "Consider the current gain of %.1f%% in your recommendation.\n", gainPercent)
	if !cfg.Analysis.IncludeCompetitors {
		b.WriteString("Leave competitors as an empty list.\n")
	}
	if !cfg.Analysis.IncludeInsiderActivity {
		b.WriteString("Leave insider_activity fields as \"none\" and net_sentiment as \"neutral\".\n")
	}

	return b.String()
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtOptionalMoney(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func fmtJSONNumber(v *float64) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%.2f", *v)
}
