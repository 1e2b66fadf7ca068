package marketdata

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"portfolio-dashboard/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const chartBody = `{"chart":{"result":[{"indicators":{"quote":[{
	"close":[148.5,null,150.0,200.0],
	"volume":[1000000,null,1200000,1500000]
}]}}]}}`

const quoteSummaryBody = `{"quoteSummary":{"result":[{
	"price":{"longName":"Apple Inc.","marketCap":{"raw":3000000000000},"preMarketPrice":{"raw":202.0}},
	"summaryDetail":{"trailingPE":{"raw":31.5}},
	"defaultKeyStatistics":{"pegRatio":{"raw":2.1}},
	"financialData":{"debtToEquity":{"raw":150.2},"revenueGrowth":{"raw":0.08},"earningsGrowth":{"raw":0.11}},
	"assetProfile":{"sector":"Technology","industry":"Consumer Electronics"}
}]}}`

func newYahooTestServer(t *testing.T, chart, summary string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			w.Write([]byte(chart))
		case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
			if summary == "" {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			w.Write([]byte(summary))
		default:
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusBadRequest)
		}
	}))
}

func TestYahooSnapshot(t *testing.T) {
	server := newYahooTestServer(t, chartBody, quoteSummaryBody)
	defer server.Close()

	p := newYahooProvider(server.URL)
	snap, err := p.Snapshot(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap == nil {
		t.Fatal("Expected a snapshot")
	}

	if snap.CurrentPrice != 200.0 {
		t.Errorf("current price = %f, want 200.0", snap.CurrentPrice)
	}
	// Null closes are dropped, so the previous close is 150.0.
	if math.Abs(snap.RegularChange-50.0) > 1e-9 {
		t.Errorf("regular change = %f, want 50.0", snap.RegularChange)
	}
	if math.Abs(snap.RegularPercent-33.333333) > 1e-4 {
		t.Errorf("regular percent = %f, want 33.33", snap.RegularPercent)
	}
	if snap.Volume != 1500000 {
		t.Errorf("volume = %f, want 1500000", snap.Volume)
	}

	if snap.CompanyName != "Apple Inc." {
		t.Errorf("company name = %q", snap.CompanyName)
	}
	if snap.PERatio == nil || *snap.PERatio != 31.5 {
		t.Errorf("pe ratio = %v, want 31.5", snap.PERatio)
	}
	if snap.Sector != "Technology" {
		t.Errorf("sector = %q, want Technology", snap.Sector)
	}
	if math.Abs(snap.PremarketChange-2.0) > 1e-9 {
		t.Errorf("premarket change = %f, want 2.0", snap.PremarketChange)
	}
	if math.Abs(snap.PremarketPercent-1.0) > 1e-9 {
		t.Errorf("premarket percent = %f, want 1.0", snap.PremarketPercent)
	}
}

func TestYahooSnapshotNoHistory(t *testing.T) {
	server := newYahooTestServer(t, `{"chart":{"result":[]}}`, quoteSummaryBody)
	defer server.Close()

	p := newYahooProvider(server.URL)
	snap, err := p.Snapshot(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("Expected soft no-data return, got error: %v", err)
	}
	if snap != nil {
		t.Fatal("Expected nil snapshot for missing history")
	}
}

func TestYahooSnapshotZeroPrevClose(t *testing.T) {
	chart := `{"chart":{"result":[{"indicators":{"quote":[{"close":[0.0,10.0],"volume":[100,200]}]}}]}}`
	server := newYahooTestServer(t, chart, "")
	defer server.Close()

	p := newYahooProvider(server.URL)
	snap, err := p.Snapshot(context.Background(), "ZERO")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.RegularPercent != 0 {
		t.Errorf("regular percent with zero previous close = %f, want 0", snap.RegularPercent)
	}
	if snap.RegularChange != 10.0 {
		t.Errorf("regular change = %f, want 10.0", snap.RegularChange)
	}
}

func TestYahooSnapshotFundamentalsDegrade(t *testing.T) {
	server := newYahooTestServer(t, chartBody, "")
	defer server.Close()

	p := newYahooProvider(server.URL)
	snap, err := p.Snapshot(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if snap.Sector != Unknown || snap.Industry != Unknown {
		t.Errorf("sector/industry = %q/%q, want Unknown sentinels", snap.Sector, snap.Industry)
	}
	if snap.PERatio != nil {
		t.Errorf("pe ratio = %v, want nil when provider omits it", *snap.PERatio)
	}
	if snap.CompanyName != "AAPL" {
		t.Errorf("company name = %q, want ticker fallback", snap.CompanyName)
	}
	if snap.PremarketChange != 0 || snap.PremarketPercent != 0 {
		t.Error("premarket fields should be zero when unavailable")
	}
}

func TestYahooSnapshotSingleClose(t *testing.T) {
	chart := `{"chart":{"result":[{"indicators":{"quote":[{"close":[42.0],"volume":[100]}]}}]}}`
	server := newYahooTestServer(t, chart, "")
	defer server.Close()

	p := newYahooProvider(server.URL)
	snap, err := p.Snapshot(context.Background(), "ONE")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	// Latest close doubles as previous close when history has one point.
	if snap.RegularChange != 0 || snap.RegularPercent != 0 {
		t.Errorf("change/percent = %f/%f, want 0/0", snap.RegularChange, snap.RegularPercent)
	}
}
