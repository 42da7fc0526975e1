package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"saveticker-sync/internal/chart"
	"saveticker-sync/internal/datefmt"
	"saveticker-sync/internal/logger"
	"saveticker-sync/internal/opinion"
	"saveticker-sync/internal/quotes"
	"saveticker-sync/internal/store"
	syncer "saveticker-sync/internal/sync"
	"saveticker-sync/internal/types"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	symbol := flag.String("symbol", "", "render only this symbol (default: every symbol with opinions)")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal(err)
		}
		cfg = store.DefaultConfig()
	}

	ctx := context.Background()

	eng := &syncer.Engine{
		DatasetPath: cfg.Dataset.Path,
		Matcher:     opinion.NewMatcher(cfg.Keywords.Opinion, cfg.Keywords.Upgrade, cfg.Keywords.Downgrade, cfg.Banks),
		Tickers:     cfg.Tickers,
	}
	tickers, linked, err := eng.LinkOpinions(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "opinion linking failed", err)
		os.Exit(1)
	}
	logger.Info(ctx, "opinions linked", "count", linked)

	if err := os.MkdirAll(cfg.Chart.OutDir, 0o755); err != nil {
		log.Fatal(err)
	}

	qc := quotes.NewClient(cfg.Chart.QuoteBaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	end := time.Now()
	start := end.AddDate(0, 0, -cfg.Chart.LookbackDays)

	rendered := 0
	for _, t := range tickers {
		if len(t.Opinions) == 0 {
			continue
		}
		if *symbol != "" && !strings.EqualFold(t.Symbol, *symbol) {
			continue
		}
		if err := renderOne(ctx, qc, cfg.Chart.OutDir, t, start, end); err != nil {
			logger.ErrorWithErr(ctx, "chart render failed", err, "symbol", t.Symbol)
			continue
		}
		rendered++
	}
	logger.Info(ctx, "charts rendered", "count", rendered)
	if *symbol != "" && rendered == 0 {
		fmt.Fprintf(os.Stderr, "no opinions found for %s\n", *symbol)
		os.Exit(1)
	}
	_ = logger.Shutdown(ctx)
}

func renderOne(ctx context.Context, qc *quotes.Client, outDir string, t *types.Ticker, start, end time.Time) error {
	candles, err := qc.Daily(ctx, t.Symbol,
		start.Format(datefmt.QuoteDate), end.Format(datefmt.QuoteDate))
	if err != nil {
		return err
	}
	p := filepath.Join(outDir, t.Symbol+".png")
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := chart.Render(f, t.Symbol, candles, t.Opinions); err != nil {
		os.Remove(p)
		return err
	}
	logger.Info(ctx, "chart written", "symbol", t.Symbol, "path", p, "candles", len(candles))
	return nil
}
