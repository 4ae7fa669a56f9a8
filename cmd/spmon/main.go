package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spmon/internal/config"
	"spmon/internal/logger"
	"spmon/internal/loop"
	"spmon/internal/record"
	"spmon/internal/sampler"
	"spmon/internal/ui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rec, err := newRecorder(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(1)
	}
	defer rec.Close()

	l := loop.New(sampler.New(), rec, cfg.Interval, cfg.TopN, log)
	runErr := make(chan error, 1)
	go func() { runErr <- l.Run(ctx) }()

	switch cfg.Mode {
	case config.ModeOnce:
		if c, ok := <-l.Cycles(); ok {
			ui.Render(os.Stdout, c, cfg.LogPath, cfg.TopN)
		}
		cancel()
	case config.ModePlain:
		for c := range l.Cycles() {
			ui.Refresh(os.Stdout, c, cfg.LogPath, cfg.TopN)
		}
	default:
		if err := ui.RunTUI(l.Cycles(), cfg.LogPath, cfg.TopN, cancel); err != nil {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
			os.Exit(1)
		}
		cancel()
	}

	for range l.Cycles() {
		// Drain anything published between presenter exit and loop stop.
	}
	if err := <-runErr; err != nil {
		fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		os.Exit(1)
	}
	if cfg.Mode != config.ModeOnce {
		fmt.Println("\nSPM stopped by user. Exiting.")
	}
}

func newRecorder(cfg config.Config) (record.Recorder, error) {
	if cfg.Store == config.StoreSQLite {
		return record.NewSQLite(cfg.LogPath, cfg.TopN)
	}
	return record.NewCSV(cfg.LogPath, cfg.TopN), nil
}
