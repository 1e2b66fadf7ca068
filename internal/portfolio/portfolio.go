// Package portfolio loads the position file and computes position metrics.
//
// File format, one position per line:
//
//	TICKER[,SHARES[,COST_BASIS]]
//
// Blank lines and lines starting with '#' are skipped.
package portfolio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"portfolio-dashboard/internal/types"
)

// Load reads the portfolio file and returns positions in file order.
// A missing file is a fatal error for the run. A malformed numeric field
// aborts the whole load: a partially read portfolio would silently drop
// positions from the report.
func Load(path string) ([]types.PortfolioPosition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("portfolio file %s: %w", path, err)
	}

	var positions []types.PortfolioPosition
	for i, raw := range strings.Split(string(b), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		ticker := strings.ToUpper(strings.TrimSpace(parts[0]))
		if ticker == "" {
			return nil, fmt.Errorf("portfolio file %s line %d: empty ticker", path, i+1)
		}

		pos := types.PortfolioPosition{Ticker: ticker}

		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			shares, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("portfolio file %s line %d: invalid share count %q: %w", path, i+1, parts[1], err)
			}
			pos.Shares = &shares
		}
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			cost, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if err != nil {
				return nil, fmt.Errorf("portfolio file %s line %d: invalid cost basis %q: %w", path, i+1, parts[2], err)
			}
			pos.CostBasis = &cost
		}

		positions = append(positions, pos)
	}

	return positions, nil
}

// Metrics computes position value and gain percent from the current price.
// Without both a share count and a cost basis there is nothing to measure,
// so both values are zero. A zero total cost yields zero gain rather than
// an infinity; it only occurs with a malformed zero cost basis.
func Metrics(pos types.PortfolioPosition, currentPrice float64) (positionValue, gainPercent float64) {
	if pos.Shares == nil || pos.CostBasis == nil {
		return 0, 0
	}
	positionValue = *pos.Shares * currentPrice
	totalCost := *pos.Shares * *pos.CostBasis
	if totalCost == 0 {
		return positionValue, 0
	}
	gainPercent = (positionValue - totalCost) / totalCost * 100
	return positionValue, gainPercent
}
