package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"portfolio-dashboard/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "text"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const newsPage = `<html><body>
<table class="fullview-news-outer">
<tr><td align="right">Aug-26-26 08:00AM</td><td><a class="tab-link-news" href="/news/1">Apple unveils new chip</a></td></tr>
<tr><td align="right">Aug-25-26 03:10PM</td><td><a class="tab-link-news" href="https://example.com/2">Supplier contract signed</a></td></tr>
<tr><td align="right">Aug-25-26 09:00AM</td><td><a class="tab-link-news" href="/news/3">Analyst upgrade</a></td></tr>
</table>
</body></html>`

func testSource(baseURL string) Source {
	return Source{
		Name:      "TestSource",
		BaseURL:   baseURL,
		QuotePath: "/quote.ashx?t={symbol}",
		Selectors: HeadlineSelectors{
			Container:   "table.fullview-news-outer tr",
			Title:       "a.tab-link-news",
			URL:         "a.tab-link-news",
			PublishedAt: "td[align=right]",
		},
	}
}

func TestHeadlines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsPage))
	}))
	defer server.Close()

	s := &Scraper{
		sources: []Source{testSource(server.URL)},
		timeout: 5 * time.Second,
	}

	headlines := s.Headlines(context.Background(), "aapl", 2)
	if len(headlines) != 2 {
		t.Fatalf("Expected 2 headlines, got %d", len(headlines))
	}

	if headlines[0].Title != "Apple unveils new chip" {
		t.Errorf("title = %q", headlines[0].Title)
	}
	if headlines[0].URL != server.URL+"/news/1" {
		t.Errorf("Expected relative URL made absolute, got %q", headlines[0].URL)
	}
	if headlines[0].PublishedAt != "Aug-26-26 08:00AM" {
		t.Errorf("published at = %q", headlines[0].PublishedAt)
	}
	if headlines[1].URL != "https://example.com/2" {
		t.Errorf("Expected absolute URL kept, got %q", headlines[1].URL)
	}
	if headlines[0].Symbol != "aapl" {
		t.Errorf("symbol = %q", headlines[0].Symbol)
	}
}

func TestHeadlinesUnreachableSource(t *testing.T) {
	s := &Scraper{
		sources: []Source{testSource("http://127.0.0.1:1")},
		timeout: 1 * time.Second,
	}

	headlines := s.Headlines(context.Background(), "AAPL", 5)
	if len(headlines) != 0 {
		t.Fatalf("Expected no headlines from unreachable source, got %d", len(headlines))
	}
}

func TestHeadlinesZeroLimit(t *testing.T) {
	s := NewScraper(time.Second)
	if got := s.Headlines(context.Background(), "AAPL", 0); got != nil {
		t.Fatalf("Expected nil for zero limit, got %v", got)
	}
}
