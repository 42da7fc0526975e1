package sync

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"saveticker-sync/internal/dataset"
	"saveticker-sync/internal/opinion"
	"saveticker-sync/internal/saveticker"
	"saveticker-sync/internal/types"
)

// fakeFetcher replays a fixed item stream, honoring the consumer's stop
// signal and optionally failing after failAfter items.
type fakeFetcher struct {
	items     []types.NewsItem
	failAfter int
	err       error
}

func (f *fakeFetcher) EachNews(ctx context.Context, opts saveticker.FetchOptions, fn func(types.NewsItem) bool) *saveticker.FetchStats {
	stats := &saveticker.FetchStats{TotalCount: len(f.items)}
	for i, item := range f.items {
		if f.err != nil && i == f.failAfter {
			stats.Err = f.err
			return stats
		}
		if !fn(item) {
			stats.Stopped = true
			return stats
		}
		stats.Fetched++
	}
	return stats
}

func item(id int64, created string) types.NewsItem {
	return types.NewsItem{ID: id, Title: "news", CreatedAt: created}
}

func newTestEngine(t *testing.T, f Fetcher) *Engine {
	t.Helper()
	dir := t.TempDir()
	return &Engine{
		Fetcher:     f,
		DatasetPath: filepath.Join(dir, "news.csv"),
		OpinionPath: filepath.Join(dir, "opinions.csv"),
		Matcher: opinion.NewMatcher(
			[]string{"목표가"},
			[]string{"상향"},
			[]string{"하향"},
			[]types.Bank{{Name: "Goldman Sachs", NickNames: []string{"Goldman"}}},
		),
		Tickers:  []string{"AAPL", "MSFT"},
		PageSize: 2,
	}
}

func ids(recs []dataset.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestUpdateFromEmpty(t *testing.T) {
	f := &fakeFetcher{items: []types.NewsItem{
		item(9, "2024-01-05T10:00:00Z"),
		item(8, "2024-01-04T09:00:00Z"),
		item(5, "2024-01-02T10:00:00Z"),
	}}
	e := newTestEngine(t, f)

	res, err := e.Update(context.Background())
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if res.Outcome != OutcomeUpdated {
		t.Errorf("Expected UPDATED, got %s", res.Outcome)
	}
	if res.NewItems != 3 || res.TotalRows != 3 {
		t.Errorf("Expected 3 new / 3 total, got %d / %d", res.NewItems, res.TotalRows)
	}
	if res.BoundaryFound {
		t.Error("Expected no boundary on empty prior dataset")
	}

	recs, err := dataset.Load(e.DatasetPath)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"9", "8", "5"}, ids(recs)); diff != "" {
		t.Errorf("Dataset order mismatch (-want +got):\n%s", diff)
	}
	// Timestamps are normalized on the way in.
	if recs[0].CreatedAt != "2024.01.05 10:00:00" {
		t.Errorf("Expected canonical timestamp, got %q", recs[0].CreatedAt)
	}
}

func TestUpdateStopsAtKnownID(t *testing.T) {
	f := &fakeFetcher{items: []types.NewsItem{
		item(9, "2024-01-05T10:00:00Z"),
		item(8, "2024-01-04T09:00:00Z"),
		item(5, "2024-01-02T10:00:00Z"),
		item(3, "2024-01-01T08:00:00Z"),
	}}
	e := newTestEngine(t, f)

	prior := []dataset.Record{
		{ID: "5", Title: "old", CreatedAt: "2024.01.02 10:00:00", TagNames: "[]"},
	}
	if err := dataset.Write(e.DatasetPath, prior); err != nil {
		t.Fatal(err)
	}

	res, err := e.Update(context.Background())
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !res.BoundaryFound {
		t.Error("Expected boundary to be found")
	}
	if res.NewItems != 2 {
		t.Errorf("Expected 2 new items, got %d", res.NewItems)
	}

	recs, err := dataset.Load(e.DatasetPath)
	if err != nil {
		t.Fatal(err)
	}
	// Items at and below the boundary are never consumed: id 5 keeps its
	// prior row and id 3 never enters the dataset.
	if diff := cmp.Diff([]string{"9", "8", "5"}, ids(recs)); diff != "" {
		t.Errorf("Dataset mismatch (-want +got):\n%s", diff)
	}
	if recs[2].Title != "old" {
		t.Errorf("Expected prior row to survive, got title %q", recs[2].Title)
	}
}

func TestUpdateUpToDate(t *testing.T) {
	f := &fakeFetcher{items: []types.NewsItem{
		item(5, "2024-01-02T10:00:00Z"),
	}}
	e := newTestEngine(t, f)

	prior := []dataset.Record{
		{ID: "5", Title: "old", CreatedAt: "2024.01.02 10:00:00", TagNames: "[]"},
	}
	if err := dataset.Write(e.DatasetPath, prior); err != nil {
		t.Fatal(err)
	}

	res, err := e.Update(context.Background())
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if res.Outcome != OutcomeUpToDate {
		t.Errorf("Expected UP_TO_DATE, got %s", res.Outcome)
	}
	if res.NewItems != 0 {
		t.Errorf("Expected 0 new items, got %d", res.NewItems)
	}
	if res.TotalRows != 1 {
		t.Errorf("Expected total 1, got %d", res.TotalRows)
	}
}

func TestUpdateNoData(t *testing.T) {
	f := &fakeFetcher{}
	e := newTestEngine(t, f)

	res, err := e.Update(context.Background())
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if res.Outcome != OutcomeNoData {
		t.Errorf("Expected NO_DATA, got %s", res.Outcome)
	}
	if _, statErr := dataset.Load(e.DatasetPath); statErr != nil {
		t.Errorf("Load after NO_DATA returned error: %v", statErr)
	}
}

func TestUpdateIdempotent(t *testing.T) {
	f := &fakeFetcher{items: []types.NewsItem{
		item(9, "2024-01-05T10:00:00Z"),
		item(8, "2024-01-04T09:00:00Z"),
	}}
	e := newTestEngine(t, f)

	if _, err := e.Update(context.Background()); err != nil {
		t.Fatal(err)
	}
	first, err := dataset.Load(e.DatasetPath)
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Update(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeUpToDate {
		t.Errorf("Expected second run UP_TO_DATE, got %s", res.Outcome)
	}

	second, err := dataset.Load(e.DatasetPath)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Second run changed the dataset (-first +second):\n%s", diff)
	}
}

func TestUpdatePartialFetchPersists(t *testing.T) {
	f := &fakeFetcher{
		items: []types.NewsItem{
			item(9, "2024-01-05T10:00:00Z"),
			item(8, "2024-01-04T09:00:00Z"),
			item(5, "2024-01-02T10:00:00Z"),
		},
		failAfter: 2,
		err:       errors.New("connection reset"),
	}
	e := newTestEngine(t, f)

	res, err := e.Update(context.Background())
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !res.PartialFetch {
		t.Error("Expected partial fetch to be flagged")
	}
	if res.FetchErr == nil {
		t.Error("Expected fetch error to be reported")
	}
	if res.Outcome != OutcomeUpdated {
		t.Errorf("Expected collected items to be persisted, got %s", res.Outcome)
	}

	recs, err := dataset.Load(e.DatasetPath)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"9", "8"}, ids(recs)); diff != "" {
		t.Errorf("Dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateDedupesAndSorts(t *testing.T) {
	// Boundary missed (prior newest ID absent from the stream), and the
	// stream re-delivers id 8. The newer copy must win and the result must
	// stay in timestamp order.
	f := &fakeFetcher{items: []types.NewsItem{
		item(9, "2024-01-05T10:00:00Z"),
		{ID: 8, Title: "fresh copy", CreatedAt: "2024-01-04T09:00:00Z"},
	}}
	e := newTestEngine(t, f)

	prior := []dataset.Record{
		{ID: "6", Title: "deleted upstream", CreatedAt: "2024.01.04 10:00:00", TagNames: "[]"},
		{ID: "8", Title: "stale copy", CreatedAt: "2024.01.04 09:00:00", TagNames: "[]"},
		{ID: "2", Title: "ancient", CreatedAt: "2023.12.01 00:00:00", TagNames: "[]"},
	}
	if err := dataset.Write(e.DatasetPath, prior); err != nil {
		t.Fatal(err)
	}

	res, err := e.Update(context.Background())
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if res.BoundaryFound {
		t.Error("Expected boundary miss")
	}

	recs, err := dataset.Load(e.DatasetPath)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"9", "6", "8", "2"}, ids(recs)); diff != "" {
		t.Errorf("Dataset mismatch (-want +got):\n%s", diff)
	}
	if recs[2].Title != "fresh copy" {
		t.Errorf("Expected newer duplicate to win, got %q", recs[2].Title)
	}
}

func TestFilterOpinions(t *testing.T) {
	e := newTestEngine(t, &fakeFetcher{})

	primary := []dataset.Record{
		{ID: "9", Title: "Goldman, AAPL 목표가 상향", CreatedAt: "2024.01.05 10:00:00", TagNames: "[]"},
		{ID: "8", Title: "plain market wrap", CreatedAt: "2024.01.04 09:00:00", TagNames: "[]"},
		{ID: "5", Title: "MSFT 목표가 하향", CreatedAt: "2024.01.02 10:00:00", TagNames: "[]"},
	}
	if err := dataset.Write(e.DatasetPath, primary); err != nil {
		t.Fatal(err)
	}
	// Prior opinion dataset holds one row that fell out of the primary
	// window; it must survive the rewrite.
	priorOpinions := []dataset.Record{
		{ID: "1", Title: "Goldman 목표가 상향 (archived)", CreatedAt: "2023.11.01 00:00:00", TagNames: "[]"},
	}
	if err := dataset.Write(e.OpinionPath, priorOpinions); err != nil {
		t.Fatal(err)
	}

	res, err := e.FilterOpinions(context.Background())
	if err != nil {
		t.Fatalf("FilterOpinions returned error: %v", err)
	}
	if res.Matched != 2 {
		t.Errorf("Expected 2 matched rows, got %d", res.Matched)
	}
	if res.NewRows != 2 {
		t.Errorf("Expected 2 new rows, got %d", res.NewRows)
	}
	if res.TotalRows != 3 {
		t.Errorf("Expected 3 total rows, got %d", res.TotalRows)
	}

	recs, err := dataset.Load(e.OpinionPath)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"9", "5", "1"}, ids(recs)); diff != "" {
		t.Errorf("Opinion dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterOpinionsIdempotent(t *testing.T) {
	e := newTestEngine(t, &fakeFetcher{})

	primary := []dataset.Record{
		{ID: "9", Title: "AAPL 목표가 상향", CreatedAt: "2024.01.05 10:00:00", TagNames: "[]"},
	}
	if err := dataset.Write(e.DatasetPath, primary); err != nil {
		t.Fatal(err)
	}

	if _, err := e.FilterOpinions(context.Background()); err != nil {
		t.Fatal(err)
	}
	res, err := e.FilterOpinions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.NewRows != 0 {
		t.Errorf("Expected 0 new rows on rerun, got %d", res.NewRows)
	}
	if res.TotalRows != 1 {
		t.Errorf("Expected 1 total row, got %d", res.TotalRows)
	}
}

func TestLinkOpinions(t *testing.T) {
	e := newTestEngine(t, &fakeFetcher{})

	primary := []dataset.Record{
		{ID: "9", Title: "Goldman, AAPL 목표가 상향", CreatedAt: "2024.01.05 10:00:00", TagNames: "[]"},
		{ID: "8", Title: "MSFT 목표가 하향", CreatedAt: "2024.01.04 09:00:00", TagNames: "[]"},
		{ID: "7", Title: "AAPL rumor only", CreatedAt: "2024.01.03 09:00:00", TagNames: "[]"},
	}
	if err := dataset.Write(e.DatasetPath, primary); err != nil {
		t.Fatal(err)
	}

	tickers, n, err := e.LinkOpinions(context.Background())
	if err != nil {
		t.Fatalf("LinkOpinions returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("Expected 2 opinions, got %d", n)
	}
	if len(tickers) != 2 {
		t.Fatalf("Expected 2 tickers, got %d", len(tickers))
	}

	aapl := tickers[0]
	if len(aapl.Opinions) != 1 {
		t.Fatalf("Expected 1 AAPL opinion, got %d", len(aapl.Opinions))
	}
	op := aapl.Opinions[0]
	if op.Opinion != types.Upgrade {
		t.Errorf("Expected UPGRADE, got %s", op.Opinion)
	}
	if op.Bank != "Goldman Sachs" {
		t.Errorf("Expected Goldman Sachs, got %q", op.Bank)
	}
	if op.NewsID != 9 {
		t.Errorf("Expected news id 9, got %d", op.NewsID)
	}

	msft := tickers[1]
	if len(msft.Opinions) != 1 || msft.Opinions[0].Opinion != types.Downgrade {
		t.Errorf("Expected one MSFT downgrade, got %+v", msft.Opinions)
	}
}

func TestDedupeByID(t *testing.T) {
	in := []dataset.Record{
		{ID: "9", Title: "new"},
		{ID: "8"},
		{ID: "9", Title: "old"},
	}
	out := dedupeByID(in)
	if len(out) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(out))
	}
	if out[0].Title != "new" {
		t.Errorf("Expected first occurrence to win, got %q", out[0].Title)
	}
}
