package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/config"
	"github.com/plus3/blockie/internal/game"
	"github.com/plus3/blockie/internal/logging"
	"github.com/plus3/blockie/internal/metrics"
	"github.com/plus3/blockie/internal/sound"
	"github.com/plus3/blockie/partition"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	noOverlay := flag.Bool("no-overlay", false, "Disable the ImGui debug overlay.")
	flag.Parse()

	if err := run(flags, *noOverlay); err != nil {
		fmt.Fprintf(os.Stderr, "blockie: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags, noOverlay bool) error {
	cfg, err := flags.Load()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.LogOptions())
	if err != nil {
		return err
	}
	defer closer.Close()

	engine, err := partition.New(cfg.Grid.Width, cfg.Grid.Height, partition.WithBounds(cfg.Bounds()))
	if err != nil {
		return err
	}

	provider := metrics.NewProvider("blockie", cfg.Metrics.Enabled)
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
		board.WithCellSize(cfg.Display.CellSize, cfg.Display.CellSize),
		board.WithNoticeDuration(cfg.Display.Notice),
		board.WithSeed(cfg.Seed),
		board.WithLogger(log),
		board.WithMetrics(rec),
		board.WithCues(player),
	)

	log.Info().
		Int("width", cfg.Grid.Width).
		Int("height", cfg.Grid.Height).
		Stringer("bounds", engine.Bounds()).
		Bool("sound", player.Enabled()).
		Msg("Starting blockie")

	g := game.New(b, game.Options{
		Title:   cfg.Display.Title,
		Overlay: cfg.Display.Overlay && !noOverlay,
		Logger:  log,
		Metrics: provider,
	})
	if err := g.Run(); err != nil {
		log.Error().Err(err).Msg("Game exited with error")
		return err
	}

	if totals, err := provider.Snapshot(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Failed to read metrics")
	} else if provider.Enabled() {
		log.Info().EmbedObject(totals).Msg("Session totals")
	}
	return nil
}
