package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/config"
	"github.com/plus3/blockie/internal/logging"
	"github.com/plus3/blockie/internal/metrics"
	"github.com/plus3/blockie/internal/sound"
	"github.com/plus3/blockie/internal/term"
	"github.com/plus3/blockie/partition"
	"github.com/rs/zerolog"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "blockie-term: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags) error {
	cfg, err := flags.Load()
	if err != nil {
		return err
	}

	// The screen owns stdout and stderr; logs only go to a file.
	log := zerolog.Nop()
	if cfg.Log.File != "" {
		l, closer, err := logging.New(cfg.LogOptions())
		if err != nil {
			return err
		}
		defer closer.Close()
		log = l
	}

	engine, err := partition.New(cfg.Grid.Width, cfg.Grid.Height, partition.WithBounds(cfg.Bounds()))
	if err != nil {
		return err
	}

	provider := metrics.NewProvider("blockie-term", cfg.Metrics.Enabled)
	defer provider.Shutdown(context.Background())

	rec, err := metrics.New(provider.Meter())
	if err != nil {
		return err
	}

	player := sound.NewMuted()
	if cfg.Audio.Enabled {
		player = sound.New(cfg.Audio.SampleRate, log)
	}
	defer player.Close()

	b := board.New(engine,
		board.WithCellSize(term.CellColumns, term.CellRows),
		board.WithNoticeDuration(cfg.Display.Notice),
		board.WithSeed(cfg.Seed),
		board.WithLogger(log),
		board.WithMetrics(rec),
		board.WithCues(player),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Int("width", cfg.Grid.Width).Int("height", cfg.Grid.Height).Msg("Starting blockie-term")
	if err := term.New(screen, b, log).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	if totals, err := provider.Snapshot(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Failed to read metrics")
	} else if provider.Enabled() {
		log.Info().EmbedObject(totals).Msg("Session totals")
	}
	return nil
}
