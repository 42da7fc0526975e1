package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"saveticker-sync/internal/logger"
	"saveticker-sync/internal/saveticker"
	"saveticker-sync/internal/store"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	asJSON := flag.Bool("json", false, "emit the full tag catalogue as JSON")
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
	client := saveticker.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	tags, err := client.Tags(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "tag catalogue fetch failed", err)
		os.Exit(1)
	}

	if *asJSON {
		b, _ := json.MarshalIndent(tags, "", "  ")
		fmt.Println(string(b))
		return
	}

	stats := saveticker.AnalyzeTags(tags)
	fmt.Printf("total:    %d\n", stats.Total)
	fmt.Printf("ticker:   %d\n", stats.Ticker)
	fmt.Printf("category: %d\n", stats.Category)
	fmt.Printf("required: %d\n", stats.Required)
	fmt.Printf("optional: %d\n", stats.Optional)

	fmt.Println("\nrequired tags:")
	for _, t := range saveticker.RequiredTags(tags) {
		kind := "category"
		if t.IsTicker {
			kind = "ticker"
		}
		fmt.Printf("  %-20s %s\n", t.Name, kind)
	}
}
