//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"galaxy-fx/internal/app"
	"galaxy-fx/internal/galaxy"
	"galaxy-fx/internal/playback"
	"galaxy-fx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

const hudWidth = 220

func main() {
	cfg := galaxy.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	scale := flag.Int("scale", 3, "pixel scale multiplier")
	fps := flag.Int("fps", 10, "stream frames per second")
	loop := flag.Bool("loop", true, "restart at end of stream")
	hud := flag.Bool("hud", true, "show the parameter panel")
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

	width := 0
	if *hud {
		width = hudWidth
	}
	game := app.New(player, ui.NewHUD(filepath.Base(cfg.Output), cfg.Parameters(), width), *scale, *fps)

	ebiten.SetWindowTitle("galaxy-fx: " + filepath.Base(cfg.Output))
	ebiten.SetWindowSize(cfg.Width*(*scale)+width, cfg.Height*(*scale))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
