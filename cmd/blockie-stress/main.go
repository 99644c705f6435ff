// Command blockie-stress fills the grid with shots in random order, resets
// and repeats for a fixed duration, then prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockie/internal/config"
	"github.com/plus3/blockie/internal/logging"
	"github.com/plus3/blockie/internal/loop"
	"github.com/plus3/blockie/internal/metrics"
	"github.com/plus3/blockie/partition"
	"github.com/rs/zerolog"
)

// ShooterSystem places the next shot of a shuffled full-grid sequence each
// frame. When every cell has been shot the engine is reset and a new
// sequence is drawn.
type ShooterSystem struct {
	Engine  *partition.Engine
	Metrics *metrics.Recorder
	Rand    *rand.Rand
	Report  *Report

	cells []partition.Shot
	next  int
}

func (s *ShooterSystem) Execute(frame *loop.Frame) {
	if s.next == len(s.cells) {
		s.shuffle()
	}

	shot := s.cells[s.next]
	s.next++

	start := time.Now()
	placement, err := s.Engine.PlaceShot(shot.X, shot.Y)
	s.Report.ShotTime.Samples = append(s.Report.ShotTime.Samples, time.Since(start))
	if err != nil {
		s.Metrics.ShotRejected(context.Background())
		return
	}

	s.Report.TotalShots++
	s.Report.PeakRegions = max(s.Report.PeakRegions, s.Engine.Len())
	s.Metrics.ShotAccepted(context.Background(), len(placement.Removed), s.Engine.Len())
}

func (s *ShooterSystem) shuffle() {
	if s.cells == nil {
		for y := range s.Engine.Height() {
			for x := range s.Engine.Width() {
				s.cells = append(s.cells, partition.Shot{X: x, Y: y})
			}
		}
	} else {
		s.Engine.Reset()
		s.Metrics.Reset(context.Background(), s.Engine.Len())
		s.Report.Games++
	}
	s.Rand.Shuffle(len(s.cells), func(i, j int) {
		s.cells[i], s.cells[j] = s.cells[j], s.cells[i]
	})
	s.next = 0
}

// ProbeSystem times LargestRegion after every shot.
type ProbeSystem struct {
	Engine *partition.Engine
	Report *Report
}

func (s *ProbeSystem) Execute(frame *loop.Frame) {
	start := time.Now()
	_, _ = s.Engine.LargestRegion()
	s.Report.LargestTime.Samples = append(s.Report.LargestTime.Samples, time.Since(start))
}

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	flag.Parse()

	cfg, err := flags.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockie-stress: %v\n", err)
		os.Exit(2)
	}

	log, closer, err := logging.New(cfg.LogOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockie-stress: %v\n", err)
		os.Exit(2)
	}
	defer closer.Close()

	if err := run(cfg, *duration, log); err != nil {
		log.Error().Err(err).Msg("Stress test failed")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config, duration time.Duration, log zerolog.Logger) error {
	log.Info().Msg("Starting blockie stress test...")

	// Every game shoots each cell once.
	engine, err := partition.New(cfg.Grid.Width, cfg.Grid.Height,
		partition.WithBounds(cfg.Bounds()),
		partition.WithShotCapacity(cfg.Grid.Width*cfg.Grid.Height),
	)
	if err != nil {
		return err
	}

	provider := metrics.NewProvider("blockie-stress", cfg.Metrics.Enabled)
	defer provider.Shutdown(context.Background())

	rec, err := metrics.New(provider.Meter())
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	report := &Report{
		Duration: duration,
		Width:    cfg.Grid.Width,
		Height:   cfg.Grid.Height,
		Bounds:   engine.Bounds().String(),
		Seed:     seed,
	}

	scheduler := loop.NewScheduler()
	scheduler.Register(&ShooterSystem{
		Engine:  engine,
		Metrics: rec,
		Rand:    rand.New(rand.NewPCG(seed, seed)),
		Report:  report,
	})
	scheduler.Register(&ProbeSystem{Engine: engine, Report: report})

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Stringer("duration", duration).Uint64("seed", seed).Msg("Running stress loop")
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()
			scheduler.Once(deltaTime.Seconds())
		}
	}

	report.TotalTime = time.Since(startTime)
	report.ShotTime.Finalize()
	report.LargestTime.Finalize()
	for _, sys := range scheduler.Stats().Systems {
		report.Systems = append(report.Systems, SystemLine{
			Name:  sys.Name,
			Count: sys.ExecutionCount,
			Avg:   sys.AvgDuration,
			Max:   sys.MaxDuration,
		})
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Metrics, err = provider.Snapshot(context.Background())
	if err != nil {
		return err
	}
	report.MetricsEnabled = provider.Enabled()

	log.Info().Int64("shots", report.TotalShots).Int64("games", report.Games).Msg("Stress loop finished")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
