// Package dashboard orchestrates a full report run: load the portfolio,
// snapshot each ticker, analyze it, then render and deliver the dashboard.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/marketdata"
	"portfolio-dashboard/internal/portfolio"
	"portfolio-dashboard/internal/report"
	"portfolio-dashboard/internal/store"
	"portfolio-dashboard/internal/types"
)

// Analyzer produces a StockAnalysis for a snapshot. It always resolves to a
// usable analysis; model failures surface as a fallback row, not an error.
type Analyzer interface {
	Analyze(ctx context.Context, snap *types.StockSnapshot, pos types.PortfolioPosition, headlines []types.Headline) types.StockAnalysis
}

// HeadlineFetcher supplies recent headlines for a symbol, best effort.
type HeadlineFetcher interface {
	Headlines(ctx context.Context, symbol string, limit int) []types.Headline
}

// Sender delivers the rendered dashboard.
type Sender interface {
	Send(ctx context.Context, html string) error
}

// Runner wires the pipeline stages together for a single report run.
type Runner struct {
	cfg      *store.Config
	provider marketdata.Provider
	analyzer Analyzer
	scraper  HeadlineFetcher
	renderer *report.Renderer
	mailer   Sender

	// sleep is swappable in tests to avoid real rate-limit delays.
	sleep func(time.Duration)
	now   func() time.Time
}

func NewRunner(cfg *store.Config, provider marketdata.Provider, analyzer Analyzer, scraper HeadlineFetcher, renderer *report.Renderer, mailer Sender) *Runner {
	return &Runner{
		cfg:      cfg,
		provider: provider,
		analyzer: analyzer,
		scraper:  scraper,
		renderer: renderer,
		mailer:   mailer,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Run executes one complete report cycle. A missing or unreadable portfolio
// file fails the run; per-ticker data and analysis failures only cost that
// ticker its row or its model insight.
func (r *Runner) Run(ctx context.Context) error {
	ctx, span := logger.StartSpan(ctx, "dashboard.run")
	defer span.End()

	timer := logger.StartOperation(ctx, "dashboard_run")

	positions, err := portfolio.Load(r.cfg.Portfolio.File)
	if err != nil {
		timer.EndWithError(err)
		return fmt.Errorf("load portfolio: %w", err)
	}
	logger.Info(ctx, "Portfolio loaded", "positions", len(positions), "file", r.cfg.Portfolio.File)

	analyses := r.analyzePositions(ctx, positions)
	if len(analyses) == 0 {
		// An empty dashboard still replaces yesterday's file so a stale
		// report is never mistaken for a fresh one.
		logger.Warn(ctx, "No tickers produced data, report will be empty")
	}

	applyWeights(analyses)

	html, err := r.renderer.Render(analyses, r.now())
	if err != nil {
		timer.EndWithError(err)
		return fmt.Errorf("render dashboard: %w", err)
	}

	if r.cfg.Output.DashboardEnabled {
		if err := r.renderer.SaveReport(html); err != nil {
			timer.EndWithError(err)
			return fmt.Errorf("save dashboard: %w", err)
		}
		logger.Info(ctx, "Dashboard written", "file", r.cfg.Output.DashboardFilename)
	}

	if r.cfg.Email.Recipient != "" && r.mailer != nil {
		if err := r.mailer.Send(ctx, html); err != nil {
			timer.EndWithError(err)
			return fmt.Errorf("deliver dashboard: %w", err)
		}
	}

	timer.End("analyzed", len(analyses))
	return nil
}

// analyzePositions walks the portfolio sequentially, pausing between tickers
// to respect the model API's rate limits. Tickers whose market data cannot be
// fetched are skipped entirely.
func (r *Runner) analyzePositions(ctx context.Context, positions []types.PortfolioPosition) []types.StockAnalysis {
	analyses := make([]types.StockAnalysis, 0, len(positions))

	for i, pos := range positions {
		if i > 0 && r.cfg.API.RateLimitDelaySeconds > 0 {
			r.sleep(time.Duration(r.cfg.API.RateLimitDelaySeconds * float64(time.Second)))
		}

		snap, err := r.provider.Snapshot(ctx, pos.Ticker)
		if err != nil {
			logger.ErrorWithErr(ctx, "Market data fetch failed, skipping ticker", err, "ticker", pos.Ticker)
			continue
		}
		if snap == nil {
			logger.Warn(ctx, "No market data for ticker, skipping", "ticker", pos.Ticker)
			continue
		}

		var headlines []types.Headline
		if r.scraper != nil {
			headlines = r.scraper.Headlines(ctx, pos.Ticker, r.cfg.Analysis.MaxHeadlines)
		}

		analysis := r.analyzer.Analyze(ctx, snap, pos, headlines)
		analysis.Ticker = snap.Ticker
		analysis.CurrentPrice = snap.CurrentPrice
		analysis.RegularPercent = snap.RegularPercent
		analysis.PremarketPercent = snap.PremarketPercent
		analyses = append(analyses, analysis)

		logger.Info(ctx, "Ticker analyzed",
			"ticker", snap.Ticker,
			"price", snap.CurrentPrice,
			"recommendation", analysis.LynchScore.Recommendation)
	}

	return analyses
}

// applyWeights computes each position's share of total portfolio value.
// Needs a second pass since the total is only known after every position
// has been valued.
func applyWeights(analyses []types.StockAnalysis) {
	var total float64
	for i := range analyses {
		total += analyses[i].PositionValue
	}
	if total == 0 {
		return
	}
	for i := range analyses {
		analyses[i].WeightPercent = analyses[i].PositionValue / total * 100
	}
}
