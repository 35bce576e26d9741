package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"galaxy-fx/internal/export"
	"galaxy-fx/internal/galaxy"
)

func main() {
	cfg := galaxy.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	opts := export.DefaultOptions()
	flag.IntVar(&opts.Scale, "scale", opts.Scale, "pixel scale multiplier")
	flag.IntVar(&opts.FPS, "fps", opts.FPS, "video frames per second")
	flag.IntVar(&opts.Quality, "quality", opts.Quality, "JPEG quality for video frames")
	flag.IntVar(&opts.Frames, "limit", 0, "render at most this many frames (0 = all)")
	avi := flag.String("avi", "", "write an MJPEG AVI preview to this path")
	pngPath := flag.String("png", "", "write a PNG snapshot to this path")
	frame := flag.Int("frame", 0, "frame index for the PNG snapshot")
	flag.Parse()

	if *avi == "" && *pngPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -avi and/or -png")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *avi != "" {
		f, err := os.Open(cfg.Output)
		if err != nil {
			log.Fatal(err)
		}
		n, err := export.AVI(ctx, f, cfg.Size(), *avi, opts)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote %d frames to %s\n", n, *avi)
	}

	if *pngPath != "" {
		src, err := os.Open(cfg.Output)
		if err != nil {
			log.Fatal(err)
		}
		defer src.Close()
		dst, err := os.Create(*pngPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := export.PNG(dst, src, cfg.Size(), *frame, opts.Scale); err != nil {
			dst.Close()
			log.Fatal(err)
		}
		if err := dst.Close(); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote frame %d to %s\n", *frame, *pngPath)
	}
}
