// Package sync implements the incremental merge between the remote news
// feed and the local dataset, plus the derived opinion dataset and the
// opinion-to-ticker linking pass.
package sync

import (
	"context"
	"sort"
	"strconv"
	"time"

	"saveticker-sync/internal/dataset"
	"saveticker-sync/internal/datefmt"
	"saveticker-sync/internal/logger"
	"saveticker-sync/internal/opinion"
	"saveticker-sync/internal/saveticker"
	"saveticker-sync/internal/types"
)

// Fetcher is the slice of the SaveTicker client the engine needs.
type Fetcher interface {
	EachNews(ctx context.Context, opts saveticker.FetchOptions, fn func(types.NewsItem) bool) *saveticker.FetchStats
}

// Engine ties the fetcher, the two dataset files, and the matcher
// together. One Engine per run; tickers built here are run-scoped.
type Engine struct {
	Fetcher     Fetcher
	DatasetPath string
	OpinionPath string
	Matcher     *opinion.Matcher
	Tickers     []string

	PageSize int
	Sort     string
	Delay    time.Duration
	// Progress, when set, receives per-page fetch reports with the
	// traversal context, so reports carry the update span.
	Progress func(ctx context.Context, page, fetched, totalCount int)
}

// Outcome classifies how an update ended.
type Outcome string

const (
	// OutcomeUpdated means new rows were merged and persisted.
	OutcomeUpdated Outcome = "UPDATED"
	// OutcomeUpToDate means the first fetched item already matched the
	// newest persisted row.
	OutcomeUpToDate Outcome = "UP_TO_DATE"
	// OutcomeNoData means the fetch produced nothing new and no overlap
	// with the prior dataset was seen.
	OutcomeNoData Outcome = "NO_DATA"
)

// UpdateResult reports an update run. PartialFetch means the fetch
// stream ended on an error; whatever was collected before the failure
// was still merged and persisted.
type UpdateResult struct {
	Outcome       Outcome
	NewItems      int
	TotalRows     int
	BoundaryFound bool
	PartialFetch  bool
	FetchErr      error
	Duration      time.Duration
}

// Update fetches news newest-first until it reaches the newest already
// persisted ID, merges the new items into the dataset, and rewrites it.
func (e *Engine) Update(ctx context.Context) (*UpdateResult, error) {
	ctx, span := logger.StartSpan(ctx, "sync.update")
	defer span.End()

	start := time.Now()
	res := &UpdateResult{}

	prior, err := dataset.Load(e.DatasetPath)
	if err != nil {
		// Unreadable prior data degrades to a fresh start; it must never
		// fabricate rows or abort the sync.
		logger.Warn(ctx, "prior dataset unreadable, starting from empty",
			"path", e.DatasetPath, "error", err)
		prior = nil
	}

	latestKnownID := ""
	if len(prior) > 0 {
		latestKnownID = prior[0].ID
	}

	var newRecs []dataset.Record
	stats := e.Fetcher.EachNews(ctx, saveticker.FetchOptions{
		PageSize: e.PageSize,
		Sort:     e.Sort,
		Delay:    e.Delay,
		Progress: e.Progress,
	}, func(item types.NewsItem) bool {
		if latestKnownID != "" && strconv.FormatInt(item.ID, 10) == latestKnownID {
			res.BoundaryFound = true
			return false
		}
		rec := dataset.FromNewsItem(item)
		rec.CreatedAt = datefmt.Normalize(rec.CreatedAt)
		newRecs = append(newRecs, rec)
		return true
	})
	if stats.Err != nil {
		res.PartialFetch = true
		res.FetchErr = stats.Err
		logger.Warn(ctx, "fetch ended early, keeping collected items",
			"fetched", stats.Fetched, "error", stats.Err)
	}

	res.NewItems = len(newRecs)
	if len(newRecs) == 0 {
		if res.BoundaryFound {
			res.Outcome = OutcomeUpToDate
		} else {
			res.Outcome = OutcomeNoData
		}
		res.TotalRows = len(prior)
		res.Duration = time.Since(start)
		return res, nil
	}

	if latestKnownID != "" && !res.BoundaryFound {
		// The fetch ran past the prior dataset without meeting its newest
		// ID, e.g. after a long outage. All fetched items are treated as
		// new; de-dup below still guards against resurrected rows.
		logger.Warn(ctx, "known latest ID never seen in fetch, treating all fetched items as new",
			"latest_known_id", latestKnownID, "fetched", len(newRecs))
	}

	combined := append(newRecs, prior...)
	for i := range combined {
		combined[i].CreatedAt = datefmt.Normalize(combined[i].CreatedAt)
	}
	combined = dedupeByID(combined)
	sortNewestFirst(combined)

	if err := dataset.Write(e.DatasetPath, combined); err != nil {
		res.Duration = time.Since(start)
		return res, err
	}

	res.Outcome = OutcomeUpdated
	res.TotalRows = len(combined)
	res.Duration = time.Since(start)
	return res, nil
}

// FilterResult reports an opinion dataset rewrite.
type FilterResult struct {
	Matched   int
	NewRows   int
	TotalRows int
}

// FilterOpinions rebuilds the secondary dataset: rows of the primary
// dataset whose title hits an opinion keyword or a bank nickname, merged
// with the prior opinion dataset and de-duplicated by the id field,
// keeping the first (newer) occurrence.
func (e *Engine) FilterOpinions(ctx context.Context) (*FilterResult, error) {
	ctx, span := logger.StartSpan(ctx, "sync.filter_opinions")
	defer span.End()

	primary, err := dataset.Load(e.DatasetPath)
	if err != nil {
		return nil, err
	}

	var matched []dataset.Record
	for _, rec := range primary {
		if e.Matcher.Matches(rec.Title) {
			matched = append(matched, rec)
		}
	}

	prior, err := dataset.Load(e.OpinionPath)
	if err != nil {
		logger.Warn(ctx, "prior opinion dataset unreadable, starting from empty",
			"path", e.OpinionPath, "error", err)
		prior = nil
	}
	priorIDs := make(map[string]bool, len(prior))
	for _, rec := range prior {
		priorIDs[rec.ID] = true
	}

	combined := dedupeByID(append(matched, prior...))
	sortNewestFirst(combined)

	res := &FilterResult{Matched: len(matched), TotalRows: len(combined)}
	for _, rec := range combined {
		if !priorIDs[rec.ID] {
			res.NewRows++
		}
	}

	if err := dataset.Write(e.OpinionPath, combined); err != nil {
		return res, err
	}
	return res, nil
}

// LinkOpinions loads the primary dataset and attaches derived opinions
// to a fresh, run-scoped ticker collection.
func (e *Engine) LinkOpinions(ctx context.Context) ([]*types.Ticker, int, error) {
	ctx, span := logger.StartSpan(ctx, "sync.link_opinions")
	defer span.End()

	recs, err := dataset.Load(e.DatasetPath)
	if err != nil {
		return nil, 0, err
	}

	items := make([]types.NewsItem, 0, len(recs))
	for _, rec := range recs {
		id, _ := strconv.ParseInt(rec.ID, 10, 64)
		items = append(items, types.NewsItem{
			ID:        id,
			Title:     rec.Title,
			CreatedAt: rec.CreatedAt,
		})
	}

	tickers := make([]*types.Ticker, 0, len(e.Tickers))
	for _, sym := range e.Tickers {
		tickers = append(tickers, &types.Ticker{Symbol: sym})
	}

	n := e.Matcher.Link(items, tickers)
	logger.Info(ctx, "opinion linking completed", "news", len(items), "opinions", n)
	return tickers, n, nil
}

// dedupeByID keeps the first occurrence of each ID. New rows come before
// prior rows in the input, so the newer copy survives. Under correct
// boundary detection duplicates cannot occur; this is the safety net.
func dedupeByID(recs []dataset.Record) []dataset.Record {
	seen := make(map[string]bool, len(recs))
	out := recs[:0]
	for _, rec := range recs {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		out = append(out, rec)
	}
	return out
}

// sortNewestFirst sorts by the canonical timestamp, descending. The
// canonical layout is fixed-width, so string comparison orders by time.
func sortNewestFirst(recs []dataset.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt > recs[j].CreatedAt
	})
}
