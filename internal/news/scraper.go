// Package news scrapes recent headlines per ticker. Headlines are embedded
// into the analysis prompt so the model has concrete recent items to ground
// its news section on. Scraping is best-effort: any failure yields an empty
// slice, never an error.
package news

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"portfolio-dashboard/internal/logger"
	"portfolio-dashboard/internal/types"
)

// Scraper collects headlines from a fixed set of financial news sources.
type Scraper struct {
	sources []Source
	timeout time.Duration
}

// Source defines one news source and the CSS selectors that locate headlines.
type Source struct {
	Name      string
	BaseURL   string
	QuotePath string // path with {symbol} placeholder
	Selectors HeadlineSelectors
	RateLimit time.Duration
}

// HeadlineSelectors are the CSS selectors for extracting headline data.
type HeadlineSelectors struct {
	Container   string
	Title       string
	URL         string
	PublishedAt string
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:      "Finviz",
			BaseURL:   "https://finviz.com",
			QuotePath: "/quote.ashx?t={symbol}",
			Selectors: HeadlineSelectors{
				Container:   "table.fullview-news-outer tr",
				Title:       "a.tab-link-news",
				URL:         "a.tab-link-news",
				PublishedAt: "td[align=right]",
			},
			RateLimit: 1 * time.Second,
		},
		{
			Name:      "YahooFinance",
			BaseURL:   "https://finance.yahoo.com",
			QuotePath: "/quote/{symbol}/news",
			Selectors: HeadlineSelectors{
				Container: "li.stream-item",
				Title:     "h3",
				URL:       "a",
			},
			RateLimit: 1 * time.Second,
		},
	}
}

// Headlines returns up to limit headlines for the symbol, spread across the
// configured sources. It never returns an error.
func (s *Scraper) Headlines(ctx context.Context, symbol string, limit int) []types.Headline {
	if limit <= 0 {
		return nil
	}

	perSource := limit / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	var all []types.Headline
	for _, source := range s.sources {
		headlines, err := s.scrapeSource(ctx, source, symbol, perSource)
		if err != nil {
			logger.Warn(ctx, "Headline scrape failed", "source", source.Name, "symbol", symbol, "error", err)
			continue
		}
		all = append(all, headlines...)
		if len(all) >= limit {
			all = all[:limit]
			break
		}

		time.Sleep(source.RateLimit)
	}

	logger.Info(ctx, "Headlines scraped", "symbol", symbol, "count", len(all))
	return all
}

func (s *Scraper) scrapeSource(ctx context.Context, source Source, symbol string, max int) ([]types.Headline, error) {
	var headlines []types.Headline

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(source.Selectors.Container, func(e *colly.HTMLElement) {
		if len(headlines) >= max {
			return
		}

		title := strings.TrimSpace(e.ChildText(source.Selectors.Title))
		if title == "" {
			return
		}

		headlineURL := e.ChildAttr(source.Selectors.URL, "href")
		if headlineURL != "" && !strings.HasPrefix(headlineURL, "http") {
			headlineURL = source.BaseURL + headlineURL
		}

		headlines = append(headlines, types.Headline{
			Title:       title,
			URL:         headlineURL,
			Source:      source.Name,
			PublishedAt: publishedAt(e.DOM, source.Selectors.PublishedAt),
			Symbol:      symbol,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Warn(ctx, "Scrape error", "source", source.Name, "url", r.Request.URL.String(), "error", err)
	})

	quoteURL := source.BaseURL + strings.ReplaceAll(source.QuotePath, "{symbol}", strings.ToUpper(symbol))
	if err := c.Visit(quoteURL); err != nil {
		return nil, err
	}
	c.Wait()

	return headlines, nil
}

// publishedAt pulls the timestamp cell when the source has one. Sources list
// headlines newest-first, so a missing timestamp is left blank rather than
// guessed.
func publishedAt(sel *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(sel.Find(selector).First().Text())
}
