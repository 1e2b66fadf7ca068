package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Schedule for daemon mode, standard 5-field cron spec. Empty disables.
	ScheduleCron string `yaml:"schedule_cron"`

	Email struct {
		Recipient string `yaml:"recipient"`
		Subject   string `yaml:"subject"`
		From      string `yaml:"from"`
		FromName  string `yaml:"from_name"`
		SMTPHost  string `yaml:"smtp_host"`
		SMTPPort  int    `yaml:"smtp_port"`
	} `yaml:"email"`

	Analysis struct {
		Depth                  string             `yaml:"depth"`
		IncludePremarket       bool               `yaml:"include_premarket"`
		IncludeCompetitors     bool               `yaml:"include_competitors"`
		IncludeInsiderActivity bool               `yaml:"include_insider_activity"`
		MaxNewsDays            int                `yaml:"max_news_days"`
		MaxHeadlines           int                `yaml:"max_headlines"`
		LynchWeights           map[string]float64 `yaml:"lynch_weights"`
	} `yaml:"analysis"`

	Portfolio struct {
		File             string `yaml:"file"`
		PositionTracking bool   `yaml:"position_tracking"`
	} `yaml:"portfolio"`

	Display struct {
		SortBy             string  `yaml:"sort_by"`
		ShowSmallPositions bool    `yaml:"show_small_positions"`
		MinPositionValue   float64 `yaml:"min_position_value"`
		AlertThresholdGain float64 `yaml:"alert_threshold_gain"`
		AlertThresholdLoss float64 `yaml:"alert_threshold_loss"`
	} `yaml:"display"`

	API struct {
		Model                 string  `yaml:"model"`
		MaxTokensPerStock     int     `yaml:"max_tokens_per_stock"`
		RateLimitDelaySeconds float64 `yaml:"rate_limit_delay_seconds"`
		RetryFailedStocks     bool    `yaml:"retry_failed_stocks"`
		MaxRetries            int     `yaml:"max_retries"`
	} `yaml:"api"`

	Output struct {
		DashboardEnabled  bool   `yaml:"dashboard_enabled"`
		DashboardFilename string `yaml:"dashboard_filename"`
	} `yaml:"output"`

	Data struct {
		Source   string `yaml:"source"`
		Exchange string `yaml:"exchange"`
	} `yaml:"data"`

	DebugMode bool `yaml:"debug_mode"`
}

// DefaultConfig returns a config with every default applied. LoadConfig
// unmarshals on top of it, so keys absent from the file keep their defaults
// and explicit false values still win.
func DefaultConfig() *Config {
	c := &Config{}
	c.Email.Subject = "Daily Portfolio Analysis - Peter Lynch Style"
	c.Email.FromName = "Portfolio Dashboard"
	c.Email.SMTPHost = "smtp.gmail.com"
	c.Email.SMTPPort = 587
	c.Analysis.Depth = "comprehensive"
	c.Analysis.IncludePremarket = true
	c.Analysis.IncludeCompetitors = true
	c.Analysis.IncludeInsiderActivity = true
	c.Analysis.MaxNewsDays = 3
	c.Analysis.MaxHeadlines = 5
	c.Portfolio.File = "portfolio_tickers.txt"
	c.Portfolio.PositionTracking = true
	c.Display.SortBy = "weight"
	c.Display.ShowSmallPositions = true
	c.Display.MinPositionValue = 1000
	c.Display.AlertThresholdGain = 1000
	c.Display.AlertThresholdLoss = -20
	c.API.Model = "claude-3-5-sonnet-20241022"
	c.API.MaxTokensPerStock = 4000
	c.API.RateLimitDelaySeconds = 1
	c.API.RetryFailedStocks = true
	c.API.MaxRetries = 2
	c.Output.DashboardEnabled = true
	c.Output.DashboardFilename = "index.html"
	c.Data.Source = "YAHOO"
	c.Data.Exchange = "NSE"
	return c
}

func (c *Config) Validate() error {
	switch c.Data.Source {
	case "YAHOO", "KITE", "MOCK":
	default:
		return fmt.Errorf("invalid data.source '%s': must be 'YAHOO', 'KITE', or 'MOCK'", c.Data.Source)
	}
	switch c.Display.SortBy {
	case "weight", "gain_percent", "alerts", "ticker", "":
	default:
		return fmt.Errorf("invalid display.sort_by '%s': must be 'weight', 'gain_percent', 'alerts', or 'ticker'", c.Display.SortBy)
	}
	if c.API.MaxTokensPerStock <= 0 {
		return fmt.Errorf("api.max_tokens_per_stock must be positive, got %d", c.API.MaxTokensPerStock)
	}
	if c.API.RateLimitDelaySeconds < 0 {
		return fmt.Errorf("api.rate_limit_delay_seconds cannot be negative, got %.2f", c.API.RateLimitDelaySeconds)
	}
	if c.Portfolio.File == "" {
		return fmt.Errorf("portfolio.file cannot be empty")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}
