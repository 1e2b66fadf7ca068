// Package report renders the portfolio analyses into a single self-contained
// HTML document and writes it to disk.
package report

import (
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"
	"time"

	"portfolio-dashboard/internal/store"
	"portfolio-dashboard/internal/types"
)

// Renderer turns a slice of analyses into the dashboard document.
type Renderer struct {
	cfg *store.Config
	tpl *template.Template
}

func NewRenderer(cfg *store.Config) *Renderer {
	return &Renderer{
		cfg: cfg,
		tpl: template.Must(template.New("dashboard").Funcs(template.FuncMap{
			"money":   formatMoney,
			"percent": formatPercent,
		}).Parse(dashboardTemplate)),
	}
}

type reportData struct {
	Timestamp        string
	TotalValue       float64
	TotalAlerts      int
	IncludePremarket bool
	Rows             []row
}

type row struct {
	types.StockAnalysis
	DisplayTicker  string
	Recommendation string
	AlertCount     int
	RowClass       string
	CurrentPEG     string
}

// Render computes portfolio totals, applies the configured sort and
// visibility filter, and produces the HTML document. Totals are computed
// over all analyses before the small-position filter so the summary matches
// the full portfolio.
func (r *Renderer) Render(analyses []types.StockAnalysis, generatedAt time.Time) (string, error) {
	totalValue := 0.0
	totalAlerts := 0
	for _, a := range analyses {
		totalValue += a.PositionValue
		totalAlerts += len(a.RedFlags)
	}

	sorted := make([]types.StockAnalysis, len(analyses))
	copy(sorted, analyses)
	sortAnalyses(sorted, r.cfg.Display.SortBy)

	if !r.cfg.Display.ShowSmallPositions {
		kept := sorted[:0]
		for _, a := range sorted {
			if a.PositionValue >= r.cfg.Display.MinPositionValue {
				kept = append(kept, a)
			}
		}
		sorted = kept
	}

	data := reportData{
		Timestamp:        generatedAt.Format("2006-01-02 15:04:05 MST"),
		TotalValue:       totalValue,
		TotalAlerts:      totalAlerts,
		IncludePremarket: r.cfg.Analysis.IncludePremarket,
		Rows:             make([]row, 0, len(sorted)),
	}
	for _, a := range sorted {
		data.Rows = append(data.Rows, newRow(a, r.cfg))
	}

	var b strings.Builder
	if err := r.tpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}
	return b.String(), nil
}

// SaveReport writes the document, replacing the previous run's file.
func (r *Renderer) SaveReport(html string) error {
	if err := os.WriteFile(r.cfg.Output.DashboardFilename, []byte(html), 0644); err != nil {
		return fmt.Errorf("save dashboard to %s: %w", r.cfg.Output.DashboardFilename, err)
	}
	return nil
}

func sortAnalyses(analyses []types.StockAnalysis, sortBy string) {
	switch sortBy {
	case "weight":
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].PositionValue > analyses[j].PositionValue
		})
	case "gain_percent":
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].GainPercent > analyses[j].GainPercent
		})
	case "alerts":
		sort.SliceStable(analyses, func(i, j int) bool {
			return len(analyses[i].RedFlags) > len(analyses[j].RedFlags)
		})
	case "ticker":
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].Ticker < analyses[j].Ticker
		})
	}
	// Any other value keeps input order.
}

// newRow applies defensive display defaults. The fallback analysis already
// guarantees presence of every field, but rendering must not depend on that.
func newRow(a types.StockAnalysis, cfg *store.Config) row {
	r := row{
		StockAnalysis:  a,
		DisplayTicker:  a.Ticker,
		Recommendation: a.LynchScore.Recommendation,
		AlertCount:     len(a.RedFlags),
		CurrentPEG:     "N/A",
	}
	if r.DisplayTicker == "" {
		r.DisplayTicker = "N/A"
	}
	if r.Recommendation == "" {
		r.Recommendation = "HOLD"
	}
	if a.PEGAnalysis.CurrentPEG != nil {
		r.CurrentPEG = fmt.Sprintf("%.2f", *a.PEGAnalysis.CurrentPEG)
	}

	switch {
	case a.GainPercent >= cfg.Display.AlertThresholdGain:
		r.RowClass = "alert-gain"
	case a.GainPercent <= cfg.Display.AlertThresholdLoss:
		r.RowClass = "alert-loss"
	}
	return r
}

func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var out []string
	for len(intPart) > 3 {
		out = append([]string{intPart[len(intPart)-3:]}, out...)
		intPart = intPart[:len(intPart)-3]
	}
	out = append([]string{intPart}, out...)

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, strings.Join(out, ","), parts[1])
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
