package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"saveticker-sync/internal/refdata"
	"saveticker-sync/internal/types"
)

type Config struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		PageSize       int    `yaml:"page_size"`
		PageDelayMS    int    `yaml:"page_delay_ms"`
		Sort           string `yaml:"sort"`
	} `yaml:"api"`
	Dataset struct {
		Path        string `yaml:"path"`
		OpinionPath string `yaml:"opinion_path"`
	} `yaml:"dataset"`
	Watch struct {
		Schedule string `yaml:"schedule"`
	} `yaml:"watch"`
	Chart struct {
		QuoteBaseURL string `yaml:"quote_base_url"`
		OutDir       string `yaml:"out_dir"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"chart"`
	Tickers  []string     `yaml:"tickers"`
	Banks    []types.Bank `yaml:"banks"`
	Keywords struct {
		Opinion   []string `yaml:"opinion"`
		Upgrade   []string `yaml:"upgrade"`
		Downgrade []string `yaml:"downgrade"`
	} `yaml:"keywords"`
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url cannot be empty")
	}
	if c.API.PageSize < 1 || c.API.PageSize > 200 {
		return fmt.Errorf("api.page_size must be between 1-200, got %d", c.API.PageSize)
	}
	if c.API.PageDelayMS < 0 {
		return fmt.Errorf("api.page_delay_ms must not be negative, got %d", c.API.PageDelayMS)
	}
	for _, p := range []string{c.Dataset.Path, c.Dataset.OpinionPath} {
		switch ext := strings.ToLower(filepath.Ext(p)); ext {
		case ".csv", ".xlsx":
		default:
			return fmt.Errorf("dataset path %q must end in .csv or .xlsx", p)
		}
	}
	if c.Chart.LookbackDays < 1 {
		return fmt.Errorf("chart.lookback_days must be positive, got %d", c.Chart.LookbackDays)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// DefaultConfig returns a fully-defaulted configuration, used when no
// config file is present.
func DefaultConfig() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.saveticker.com"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 10
	}
	if c.API.PageSize == 0 {
		c.API.PageSize = 50
	}
	if c.API.PageDelayMS == 0 {
		c.API.PageDelayMS = 100
	}
	if c.API.Sort == "" {
		c.API.Sort = "created_at_desc"
	}
	if c.Dataset.Path == "" {
		c.Dataset.Path = "save_db_001.xlsx"
	}
	if c.Dataset.OpinionPath == "" {
		c.Dataset.OpinionPath = "opinion_db_001.xlsx"
	}
	if c.Chart.QuoteBaseURL == "" {
		c.Chart.QuoteBaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Chart.OutDir == "" {
		c.Chart.OutDir = "charts"
	}
	if c.Chart.LookbackDays == 0 {
		c.Chart.LookbackDays = 90
	}
	if len(c.Tickers) == 0 {
		c.Tickers = refdata.Tickers()
	}
	if len(c.Banks) == 0 {
		c.Banks = refdata.Banks()
	}
	if len(c.Keywords.Opinion) == 0 {
		c.Keywords.Opinion = refdata.OpinionKeywords()
	}
	if len(c.Keywords.Upgrade) == 0 {
		c.Keywords.Upgrade = refdata.UpgradeKeywords()
	}
	if len(c.Keywords.Downgrade) == 0 {
		c.Keywords.Downgrade = refdata.DowngradeKeywords()
	}
}
