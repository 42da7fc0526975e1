// Package quotes fetches daily closing prices for the chart layer.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"saveticker-sync/internal/api"
	"saveticker-sync/internal/datefmt"
	"saveticker-sync/internal/types"
)

// ErrNoPrices means the source answered but carried no usable series.
var ErrNoPrices = errors.New("no price data for symbol")

// Client fetches daily candles from a Yahoo-style chart endpoint.
type Client struct {
	api *api.Client
}

// NewClient creates a quote client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...api.ClientOption) *Client {
	base := []api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
	}
	for k, v := range api.YahooFinanceHeaders() {
		base = append(base, api.WithHeader(k, v))
	}
	return &Client{api: api.NewClient(append(base, opts...)...)}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// Daily returns the daily close series for symbol between start and end,
// both in the "2006-01-02" form the source expects.
func (c *Client) Daily(ctx context.Context, symbol, start, end string) ([]types.Candle, error) {
	from, err := time.Parse(datefmt.QuoteDate, start)
	if err != nil {
		return nil, fmt.Errorf("bad start date %q: %w", start, err)
	}
	to, err := time.Parse(datefmt.QuoteDate, end)
	if err != nil {
		return nil, fmt.Errorf("bad end date %q: %w", end, err)
	}

	resp, err := c.api.GET(ctx, "/v8/finance/chart/"+symbol, map[string]string{
		"period1":  strconv.FormatInt(from.Unix(), 10),
		"period2":  strconv.FormatInt(to.Unix(), 10),
		"interval": "1d",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch prices for %s: %w", symbol, err)
	}

	var out chartResponse
	if err := resp.ParseJSON(&out); err != nil {
		return nil, err
	}
	if len(out.Chart.Result) == 0 {
		return nil, ErrNoPrices
	}
	result := out.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, ErrNoPrices
	}
	closes := result.Indicators.Quote[0].Close

	candles := make([]types.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == 0 {
			continue
		}
		candles = append(candles, types.Candle{Ts: ts, Close: closes[i]})
	}
	if len(candles) == 0 {
		return nil, ErrNoPrices
	}
	return candles, nil
}
