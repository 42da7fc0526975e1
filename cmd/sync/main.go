package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"saveticker-sync/internal/logger"
	"saveticker-sync/internal/opinion"
	"saveticker-sync/internal/runlog"
	"saveticker-sync/internal/saveticker"
	"saveticker-sync/internal/store"
	syncer "saveticker-sync/internal/sync"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	watch := flag.Bool("watch", false, "keep running on the configured cron schedule")
	flag.Parse()

	must(logger.Init())

	cfg := loadConfig(*configPath)

	if v := os.Getenv("SYNC_LOG_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			_ = runlog.CompressOlder(n)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := newEngine(cfg)

	if !*watch {
		if ok := runOnce(ctx, eng); !ok {
			os.Exit(1)
		}
		_ = logger.Shutdown(ctx)
		return
	}

	schedule := cfg.Watch.Schedule
	if schedule == "" {
		schedule = "*/30 * * * *"
	}
	c := newCron()
	_, err := c.AddFunc(schedule, func() { runOnce(ctx, eng) })
	must(err)
	c.Start()
	logger.Info(ctx, "watch mode started", "schedule", schedule)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info(ctx, "shutting down")
	<-c.Stop().Done()
	_ = logger.Shutdown(ctx)
}

// newCron builds the watch-mode scheduler. Runs never overlap: a sync
// still in flight when the next trigger fires makes that trigger a no-op,
// keeping a single writer on the dataset files.
func newCron() *cron.Cron {
	return cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
}

func loadConfig(path string) *store.Config {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("no config at %s, using defaults", path)
			return store.DefaultConfig()
		}
		log.Fatal(err)
	}
	return cfg
}

func newEngine(cfg *store.Config) *syncer.Engine {
	client := saveticker.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	matcher := opinion.NewMatcher(cfg.Keywords.Opinion, cfg.Keywords.Upgrade, cfg.Keywords.Downgrade, cfg.Banks)
	return &syncer.Engine{
		Fetcher:     client,
		DatasetPath: cfg.Dataset.Path,
		OpinionPath: cfg.Dataset.OpinionPath,
		Matcher:     matcher,
		Tickers:     cfg.Tickers,
		PageSize:    cfg.API.PageSize,
		Sort:        cfg.API.Sort,
		Delay:       time.Duration(cfg.API.PageDelayMS) * time.Millisecond,
		Progress: func(ctx context.Context, page, fetched, total int) {
			logger.Info(ctx, "page fetched",
				"page", page, "fetched", fetched, "total_count", total)
		},
	}
}

// runOnce performs one full sync pass: merge, filter, link. Returns false
// only when the dataset could not be persisted.
func runOnce(ctx context.Context, eng *syncer.Engine) bool {
	res, err := eng.Update(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "dataset update failed", err)
		_ = runlog.Append(runlog.Entry{Outcome: "WRITE_FAILED", Error: err.Error()})
		return false
	}
	logger.Info(ctx, "dataset updated",
		"outcome", string(res.Outcome),
		"new_items", res.NewItems,
		"total", res.TotalRows,
		"boundary_found", res.BoundaryFound,
		"partial", res.PartialFetch,
		"duration", res.Duration)

	filt, err := eng.FilterOpinions(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "opinion dataset rewrite failed", err)
		_ = runlog.Append(runlog.Entry{Outcome: "FILTER_FAILED", Error: err.Error()})
		return false
	}
	logger.Info(ctx, "opinion dataset updated",
		"matched", filt.Matched, "new_rows", filt.NewRows, "total", filt.TotalRows)

	tickers, linked, err := eng.LinkOpinions(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "opinion linking failed", err)
		return false
	}
	for _, t := range tickers {
		if len(t.Opinions) == 0 {
			continue
		}
		b, _ := json.Marshal(t)
		fmt.Println(string(b))
	}

	entry := runlog.Entry{
		Outcome:  string(res.Outcome),
		NewItems: res.NewItems,
		Total:    res.TotalRows,
		Opinions: linked,
		Partial:  res.PartialFetch,
	}
	if res.FetchErr != nil {
		entry.Error = res.FetchErr.Error()
	}
	_ = runlog.Append(entry)
	return true
}
