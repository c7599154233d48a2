package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"forestfire/internal/app"
	"forestfire/internal/core"
	_ "forestfire/internal/sims/forestfire"
	"forestfire/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logFile := flag.String("log-file", "", "write logs to this file (the terminal is taken by the board)")
	flag.Parse()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forestfire-tui: %v\n", err)
		os.Exit(2)
	}
	logger := log.New(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "forestfire-tui: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{Level: level, ReportTimestamp: true, Prefix: cfg.Sim})
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		fmt.Fprintf(os.Stderr, "forestfire-tui: unknown sim %q (known: %v)\n", cfg.Sim, core.Names())
		os.Exit(2)
	}
	sim, err := factory(cfg.SimConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "forestfire-tui: %v\n", err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "forestfire-tui: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "forestfire-tui: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	session := app.NewSession(sim, cfg.Interval, cfg.Seed, logger)
	err = tui.New(screen, session, logger).Run(ctx)
	screen.Fini()
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "forestfire-tui: %v\n", err)
		os.Exit(1)
	}
	if notice := session.Notice(); notice != "" {
		fmt.Println(notice)
	}
}
