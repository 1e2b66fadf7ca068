// Package marketdata fetches per-ticker price and fundamental snapshots.
package marketdata

import (
	"context"
	"errors"
	"fmt"
	"os"

	"portfolio-dashboard/internal/store"
	"portfolio-dashboard/internal/types"
)

// Unknown is the sentinel for categorical fields the provider omitted.
const Unknown = "Unknown"

// Provider returns a snapshot for a ticker. A (nil, nil) return means the
// provider has no price history for the ticker; the caller skips it without
// treating the run as failed. Numeric fundamentals stay nil and categorical
// fields hold Unknown when the provider omits them.
type Provider interface {
	Snapshot(ctx context.Context, ticker string) (*types.StockSnapshot, error)
}

// NewProvider builds the provider selected by data.source.
func NewProvider(cfg *store.Config) (Provider, error) {
	switch cfg.Data.Source {
	case "YAHOO":
		return NewYahooProvider(), nil
	case "KITE":
		apiKey := os.Getenv("KITE_API_KEY")
		accessToken := os.Getenv("KITE_ACCESS_TOKEN")
		if apiKey == "" || accessToken == "" {
			return nil, errors.New("KITE_API_KEY and KITE_ACCESS_TOKEN must be set for the KITE data source")
		}
		return NewKiteProvider(apiKey, accessToken, cfg.Data.Exchange), nil
	case "MOCK":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}
