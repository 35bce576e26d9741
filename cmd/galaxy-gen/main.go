package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/history"
	"galaxy-fx/internal/precompute"
	"galaxy-fx/internal/stream"
)

func main() {
	cfg := galaxy.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	configPath := flag.String("config", "", "YAML run configuration; explicit flags override it")
	verbose := flag.Bool("v", false, "log every frame")
	listHistory := flag.Bool("history", false, "list previous runs and exit")
	noHistory := flag.Bool("no-history", false, "do not record this run")
	flag.Parse()

	store, err := history.Open(history.AppName)
	if err != nil {
		log.Printf("[history] %v (runs will not be recorded)", err)
	}

	if *listHistory {
		printHistory(store)
		return
	}

	if *configPath != "" {
		fileCfg, err := galaxy.LoadFile(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		overrides := map[string]string{}
		flag.Visit(func(f *flag.Flag) { overrides[f.Name] = f.Value.String() })
		fileCfg.Apply(overrides)
		cfg = fileCfg
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := precompute.Options{}
	if *verbose {
		opts.Logger = log.Default()
	}

	start := time.Now()
	sum, err := precompute.GenerateFile(ctx, cfg, opts)
	if err != nil {
		if errors.Is(err, stream.ErrCapacityExceeded) {
			log.Fatalf("aborted: %v; reduce the grid size or screen area", err)
		}
		log.Fatal(err)
	}

	fmt.Printf("Generated %d frames to %s in %s\n", sum.Frames, cfg.Output, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  %d changes (peak %d at frame %d), %d bytes\n", sum.Changes, sum.PeakChanges, sum.PeakFrame, sum.Bytes)
	fmt.Printf("  sha256 %s\n", sum.Digest)

	if !*noHistory {
		if err := store.Save(history.NewRecord(cfg, sum, time.Now())); err != nil {
			log.Printf("[history] %v", err)
		}
	}
}

func printHistory(store *history.Store) {
	records, err := store.List()
	if err != nil {
		log.Fatal(err)
	}
	if len(records) == 0 {
		fmt.Println("No recorded runs.")
		return
	}
	for _, r := range records {
		fmt.Printf("%s  %s  n=%d %dx%d frames=%d changes=%d bytes=%d sha256=%s\n",
			r.ID, r.Config.Output, r.Config.N, r.Config.Width, r.Config.Height, r.Frames, r.Changes, r.Bytes, r.Digest)
	}
}
