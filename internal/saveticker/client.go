// Package saveticker is the client for the SaveTicker JSON API: the tag
// catalogue and the paginated news list.
package saveticker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"saveticker-sync/internal/api"
	"saveticker-sync/internal/types"
)

// ErrBadResponse marks a response body that could not be parsed into the
// expected schema. Distinguishable from transport errors and from an
// empty, valid page.
var ErrBadResponse = errors.New("malformed API response")

// Client wraps the shared HTTP client for the SaveTicker endpoints.
type Client struct {
	api   *api.Client
	retry *api.RetryConfig
}

// NewClient creates a SaveTicker client. Extra options are applied after
// the defaults, so tests can inject an httptest transport.
func NewClient(baseURL string, timeout time.Duration, opts ...api.ClientOption) *Client {
	base := []api.ClientOption{
		api.WithBaseURL(baseURL),
		api.WithTimeout(timeout),
		api.WithLogging(true),
	}
	for k, v := range api.DefaultHeaders() {
		base = append(base, api.WithHeader(k, v))
	}
	return &Client{
		api:   api.NewClient(append(base, opts...)...),
		retry: api.DefaultRetryConfig(),
	}
}

type tagListResponse struct {
	Tags []types.Tag `json:"tags"`
}

// Tags fetches the full tag catalogue.
func (c *Client) Tags(ctx context.Context) ([]types.Tag, error) {
	resp, err := c.api.DoWithRetry(api.NewRequest("/api/tags/list").WithContext(ctx), c.retry)
	if err != nil {
		return nil, fmt.Errorf("fetch tags: %w", err)
	}
	var out tagListResponse
	if err := resp.ParseJSON(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return out.Tags, nil
}

// TickerTags filters the catalogue down to ticker tags.
func TickerTags(tags []types.Tag) []types.Tag {
	return filterTags(tags, func(t types.Tag) bool { return t.IsTicker })
}

// CategoryTags filters the catalogue down to non-ticker tags.
func CategoryTags(tags []types.Tag) []types.Tag {
	return filterTags(tags, func(t types.Tag) bool { return !t.IsTicker })
}

// RequiredTags filters the catalogue down to required tags.
func RequiredTags(tags []types.Tag) []types.Tag {
	return filterTags(tags, func(t types.Tag) bool { return t.IsRequired })
}

func filterTags(tags []types.Tag, keep func(types.Tag) bool) []types.Tag {
	var out []types.Tag
	for _, t := range tags {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TagStats summarizes the tag catalogue.
type TagStats struct {
	Total    int `json:"total_tags"`
	Ticker   int `json:"ticker_tags"`
	Category int `json:"category_tags"`
	Required int `json:"required_tags"`
	Optional int `json:"optional_tags"`
}

// AnalyzeTags computes counts over the catalogue.
func AnalyzeTags(tags []types.Tag) TagStats {
	s := TagStats{Total: len(tags)}
	for _, t := range tags {
		if t.IsTicker {
			s.Ticker++
		}
		if t.IsRequired {
			s.Required++
		}
	}
	s.Category = s.Total - s.Ticker
	s.Optional = s.Total - s.Required
	return s
}

// NewsPage is one page of the news list. TotalCount is only meaningful on
// the first page.
type NewsPage struct {
	TotalCount int              `json:"total_count"`
	News       []types.NewsItem `json:"news_list"`
}

// FetchNewsPage fetches a single page of the news list.
func (c *Client) FetchNewsPage(ctx context.Context, page, pageSize int, sort string) (*NewsPage, error) {
	req := api.NewRequest("/api/news/list").
		WithContext(ctx).
		WithParam("page", fmt.Sprintf("%d", page)).
		WithParam("page_size", fmt.Sprintf("%d", pageSize)).
		WithParam("sort", sort)
	resp, err := c.api.DoWithRetry(req, c.retry)
	if err != nil {
		return nil, fmt.Errorf("fetch news page %d: %w", page, err)
	}
	var out NewsPage
	if err := resp.ParseJSON(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &out, nil
}

// FetchOptions controls a full news traversal.
type FetchOptions struct {
	PageSize int
	Sort     string
	// Delay is the minimum spacing between page requests.
	Delay time.Duration
	// Progress, when set, is called after each page with the traversal
	// context. Reporting is injected here so the traversal itself stays
	// free of output.
	Progress func(ctx context.Context, page, fetched, totalCount int)
}

// FetchStats describes how a traversal ended. Err is set when a page
// fetch failed and the stream was cut short; items from earlier pages
// were already delivered. Stopped is set when the consumer ended the
// stream early.
type FetchStats struct {
	TotalCount int
	Pages      int
	Fetched    int
	Stopped    bool
	Err        error
}

// Complete reports whether the traversal saw every available item.
func (s *FetchStats) Complete() bool {
	return s.Err == nil && !s.Stopped
}

// EachNews walks the news list page by page starting at page 1, calling
// fn for every item in API order (newest first). The walk advances while
// pages come back full; a short page signals end of data. fn returning
// false stops the walk. Each call restarts from page 1.
func (c *Client) EachNews(ctx context.Context, opts FetchOptions, fn func(types.NewsItem) bool) *FetchStats {
	stats := &FetchStats{}

	var limiter *rate.Limiter
	if opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}

	for page := 1; ; page++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				stats.Err = err
				return stats
			}
		}

		p, err := c.FetchNewsPage(ctx, page, opts.PageSize, opts.Sort)
		if err != nil {
			stats.Err = err
			return stats
		}
		if page == 1 {
			stats.TotalCount = p.TotalCount
		}
		if len(p.News) == 0 {
			return stats
		}
		stats.Pages++

		for _, item := range p.News {
			stats.Fetched++
			if !fn(item) {
				stats.Stopped = true
				return stats
			}
		}

		if opts.Progress != nil {
			opts.Progress(ctx, page, stats.Fetched, stats.TotalCount)
		}
		if len(p.News) < opts.PageSize {
			return stats
		}
	}
}
