// Package claude requests a qualitative stock analysis from the Anthropic
// messages API. Every request resolves to a StockAnalysis: either the parsed
// model output or a fixed fallback. No error from this package reaches the
// orchestrator loop.
package claude

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"portfolio-dashboard/internal/api"
	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/portfolio"
	"portfolio-dashboard/internal/store"
	"portfolio-dashboard/internal/trace"
	"portfolio-dashboard/internal/types"
)

const defaultEndpoint = "https://api.anthropic.com/v1/messages"

// Analyzer sends analysis prompts to the model endpoint.
type Analyzer struct {
	cfg      *store.Config
	client   *api.Client
	endpoint string
}

// NewAnalyzer validates the API key and builds the client. A missing
// CLAUDE_API_KEY is fatal for the run. Set CLAUDE_API_ENDPOINT to point at
// a proxy or a test server.
func NewAnalyzer(cfg *store.Config) (*Analyzer, error) {
	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("CLAUDE_API_KEY environment variable not set")
	}

	endpoint := defaultEndpoint
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}

	return &Analyzer{
		cfg: cfg,
		client: api.NewClient(
			// Long generations need headroom beyond the default timeout.
			api.WithTimeout(120*time.Second),
			api.WithLogging(true),
			api.WithHeader("x-api-key", apiKey),
			api.WithHeader("anthropic-version", "2023-06-01"),
		),
		endpoint: endpoint,
	}, nil
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Analyze runs the full per-ticker pipeline: compute position metrics, build
// the prompt, call the model, parse the embedded JSON, and merge the computed
// metrics over whatever the model supplied. Any HTTP or parse failure
// resolves to the fallback analysis.
func (a *Analyzer) Analyze(ctx context.Context, snap *types.StockSnapshot, pos types.PortfolioPosition, headlines []types.Headline) types.StockAnalysis {
	ctx, span := trace.StartSpan(ctx, "claude-analyze")
	defer span.End()

	positionValue, gainPercent := portfolio.Metrics(pos, snap.CurrentPrice)
	prompt := BuildPrompt(snap, pos, positionValue, gainPercent, headlines, a.cfg)

	body := messagesRequest{
		Model:     a.cfg.API.Model,
		MaxTokens: a.cfg.API.MaxTokensPerStock,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	req := api.NewRequest(http.MethodPost, a.endpoint).WithContext(ctx).WithBody(body)

	var resp *api.Response
	var err error
	if a.cfg.API.RetryFailedStocks && a.cfg.API.MaxRetries > 0 {
		resp, err = a.client.DoWithRetry(req, &api.RetryConfig{
			MaxAttempts: a.cfg.API.MaxRetries + 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
		})
	} else {
		resp, err = a.client.Do(req)
	}
	if err != nil {
		logger.ErrorWithErr(ctx, "Model request failed", err, "ticker", snap.Ticker)
		return Fallback(snap, positionValue, gainPercent)
	}

	var msg messagesResponse
	if err := resp.ParseJSON(&msg); err != nil || len(msg.Content) == 0 {
		logger.Warn(ctx, "Unexpected model response shape", "ticker", snap.Ticker)
		return Fallback(snap, positionValue, gainPercent)
	}

	analysis, err := ParseAnalysis(msg.Content[0].Text)
	if err != nil {
		logger.Warn(ctx, "Failed to parse analysis JSON", "ticker", snap.Ticker, "error", err)
		return Fallback(snap, positionValue, gainPercent)
	}

	// Computed metrics always overwrite model-supplied values.
	analysis.PositionValue = positionValue
	analysis.GainPercent = gainPercent
	analysis.WeightPercent = 0

	return analysis
}

// ParseAnalysis extracts the JSON object embedded in the model's text output
// and unmarshals it, normalizing the recommendation afterwards.
func ParseAnalysis(text string) (types.StockAnalysis, error) {
	var analysis types.StockAnalysis

	jsonStr, err := ExtractJSONObject(text)
	if err != nil {
		return analysis, err
	}
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		return analysis, err
	}

	normalize(&analysis)
	return analysis, nil
}

func normalize(a *types.StockAnalysis) {
	a.LynchScore.Recommendation = strings.ToUpper(strings.TrimSpace(a.LynchScore.Recommendation))
	switch a.LynchScore.Recommendation {
	case "BUY", "HOLD", "TRIM", "SELL":
	default:
		a.LynchScore.Recommendation = "HOLD"
	}
}

// Fallback is the analysis substituted when the model call or parse fails.
// Every key the renderer reads is populated; the recommendation is HOLD.
func Fallback(snap *types.StockSnapshot, positionValue, gainPercent float64) types.StockAnalysis {
	return types.StockAnalysis{
		RecentNews: []string{"API error - unable to fetch recent news"},
		FundamentalHealth: types.FundamentalHealth{
			RevenueTrend:        "unknown",
			EarningsTrend:       "unknown",
			DebtSituation:       "unknown",
			CompetitivePosition: "unknown",
		},
		RedFlags:          []string{},
		GreenFlags:        []string{},
		UpcomingCatalysts: []types.Catalyst{},
		InsiderActivity: types.InsiderActivity{
			RecentBuying:  "unknown",
			RecentSelling: "unknown",
			NetSentiment:  "unknown",
		},
		Competitors: []string{},
		PEGAnalysis: types.PEGAnalysis{
			CurrentPEG: snap.PEGRatio,
			Assessment: "unknown",
			Reasoning:  "API error",
		},
		LynchScore: types.LynchScore{
			Recommendation: "HOLD",
			Reasoning:      "Unable to analyze due to API error",
			PriceTarget:    "unknown",
			RiskLevel:      "unknown",
		},
		PositionValue: positionValue,
		GainPercent:   gainPercent,
		WeightPercent: 0,
	}
}
