package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/playback"
	"galaxy-fx/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := galaxy.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	fps := flag.Int("fps", 10, "stream frames per second")
	loop := flag.Bool("loop", true, "restart at end of stream")
	flag.Parse()

	f, err := os.Open(cfg.Output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	var opts []playback.Option
	if *loop {
		opts = append(opts, playback.WithLoop())
	}
	player := playback.New(f, cfg.Size(), opts...)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := term.NewView(screen, player, *fps).Run(ctx)
	screen.Fini()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "playback failed: %v\n", runErr)
		os.Exit(1)
	}
}
