package marketdata

import (
	"context"
	"testing"

	"portfolio-dashboard/internal/store"
)

func TestNewProvider(t *testing.T) {
	cfg := store.DefaultConfig()

	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if _, ok := p.(*YahooProvider); !ok {
		t.Errorf("Expected YahooProvider for default source, got %T", p)
	}

	cfg.Data.Source = "MOCK"
	p, err = NewProvider(cfg)
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	if _, ok := p.(*MockProvider); !ok {
		t.Errorf("Expected MockProvider, got %T", p)
	}

	cfg.Data.Source = "KITE"
	t.Setenv("KITE_API_KEY", "")
	t.Setenv("KITE_ACCESS_TOKEN", "")
	if _, err := NewProvider(cfg); err == nil {
		t.Error("Expected error for KITE source without credentials")
	}
}

func TestMockProviderDeterministic(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	first, err := p.Snapshot(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	second, err := p.Snapshot(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if first.CurrentPrice != second.CurrentPrice {
		t.Errorf("Mock snapshots differ across runs: %f vs %f", first.CurrentPrice, second.CurrentPrice)
	}

	other, err := p.Snapshot(ctx, "MSFT")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if other.CurrentPrice == first.CurrentPrice {
		t.Error("Expected different tickers to produce different mock prices")
	}
}
