package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/precompute"
	"galaxy-fx/internal/report"
)

func main() {
	cfg := galaxy.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	configPath := flag.String("config", "", "YAML run configuration used for -verify")
	verify := flag.Bool("verify", false, "regenerate the stream and compare digests")
	width := flag.Int("width", 60, "plot width in columns")
	flag.Parse()

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

	f, err := os.Open(cfg.Output)
	if err != nil {
		log.Fatal(err)
	}
	st, err := report.Analyze(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	params := cfg.Parameters()
	fmt.Print(report.Render(cfg.Output, st, &params, *width))

	if !*verify {
		return
	}
	cfg.Frames = st.Frames
	sum, err := precompute.Run(context.Background(), cfg, io.Discard, precompute.Options{})
	if err != nil {
		log.Fatal(err)
	}
	if sum.Digest != st.Digest {
		fmt.Printf("MISMATCH: regenerated sha256 %s\n", sum.Digest)
		os.Exit(1)
	}
	fmt.Println("OK: stream matches a fresh run with these parameters")
}
