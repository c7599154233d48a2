//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"forestfire/internal/app"
	"forestfire/internal/core"
	_ "forestfire/internal/sims/forestfire"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "forestfire: %v\n", err)
		os.Exit(2)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		logger.Fatal("unknown sim", "sim", cfg.Sim, "known", core.Names())
	}
	sim, err := factory(cfg.SimConfig())
	if err != nil {
		logger.Fatal("bad settings", "err", err)
	}

	game := app.New(sim, cfg.Scale, cfg.Interval, cfg.Seed, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("forestfire: " + sim.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game loop", "err", err)
	}
}
