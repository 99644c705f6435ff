// Package board adapts a partition.Engine for interactive front ends. It maps
// pointer coordinates to cells, keeps the duplicate-shot notice, assigns debug
// colours to regions and reports every placement to logs, metrics and sound.
package board

import (
	"context"
	"errors"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockie/internal/metrics"
	"github.com/plus3/blockie/partition"
	"github.com/rs/zerolog"
)

// DuplicateNotice is shown when a shot lands on an occupied cell.
const DuplicateNotice = "No duplicate shots allowed."

// Cues receives placement outcomes for audio feedback.
type Cues interface {
	Accept()
	Reject()
}

type silentCues struct{}

func (silentCues) Accept() {}
func (silentCues) Reject() {}

// Option configures a Board.
type Option func(*Board)

// WithCellSize sets the pointer units per cell on each axis.
func WithCellSize(w, h float64) Option {
	return func(b *Board) {
		b.cellW, b.cellH = w, h
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Board) {
		b.log = log
	}
}

// WithMetrics reports placements to rec.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(b *Board) {
		b.metrics = rec
	}
}

// WithCues plays feedback for each placement.
func WithCues(c Cues) Option {
	return func(b *Board) {
		b.cues = c
	}
}

// WithNoticeDuration sets how long the duplicate notice stays visible.
func WithNoticeDuration(d time.Duration) Option {
	return func(b *Board) {
		b.noticeTTL = d
	}
}

// WithSeed fixes the debug colour sequence. Zero picks a random seed.
func WithSeed(seed uint64) Option {
	return func(b *Board) {
		b.seed = seed
	}
}

// WithClock replaces time.Now for notice expiry.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// Board owns an engine and its presentation state. Like the engine it must be
// used from one goroutine.
type Board struct {
	engine *partition.Engine

	cellW, cellH float64
	noticeTTL    time.Duration
	seed         uint64

	log     zerolog.Logger
	metrics *metrics.Recorder
	cues    Cues
	now     func() time.Time

	notice        string
	noticeExpires time.Time

	colors *intmap.Map[partition.RegionID, color.RGBA]
	rng    *rand.Rand
}

// New wraps engine. Defaults: 100 units per cell, a three second notice, no
// logging and no sound.
func New(engine *partition.Engine, opts ...Option) *Board {
	b := &Board{
		engine:    engine,
		cellW:     100,
		cellH:     100,
		noticeTTL: 3 * time.Second,
		log:       zerolog.Nop(),
		cues:      silentCues{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	seed := b.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	b.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b.resetColors()
	return b
}

// Engine returns the wrapped engine for read access.
func (b *Board) Engine() *partition.Engine {
	return b.engine
}

// CellSize returns the pointer units per cell.
func (b *Board) CellSize() (w, h float64) {
	return b.cellW, b.cellH
}

// CellAt converts pointer coordinates into a cell by flooring each axis.
func (b *Board) CellAt(px, py float64) (x, y int) {
	return int(math.Floor(px / b.cellW)), int(math.Floor(py / b.cellH))
}

// Click places a shot at the cell under the pointer.
func (b *Board) Click(px, py float64) (partition.Placement, error) {
	x, y := b.CellAt(px, py)
	return b.Place(x, y)
}

// Place places a shot on cell (x, y). A duplicate shot raises the notice and
// returns the engine's error.
func (b *Board) Place(x, y int) (partition.Placement, error) {
	ctx := context.Background()

	placement, err := b.engine.PlaceShot(x, y)
	if errors.Is(err, partition.ErrDuplicateShot) {
		b.notice = DuplicateNotice
		b.noticeExpires = b.now().Add(b.noticeTTL)
		b.cues.Reject()
		if b.metrics != nil {
			b.metrics.ShotRejected(ctx)
		}
		b.log.Warn().Int("x", x).Int("y", y).Msg("Duplicate shot rejected")
		return placement, err
	}
	if err != nil {
		return placement, err
	}

	for _, r := range placement.Removed {
		b.colors.Del(r.ID)
	}
	for _, r := range placement.Added {
		b.assignColor(r.ID)
	}

	b.cues.Accept()
	if b.metrics != nil {
		b.metrics.ShotAccepted(ctx, len(placement.Removed), b.engine.Len())
	}

	b.log.Info().
		Int("x", x).
		Int("y", y).
		Int("split", len(placement.Removed)).
		Int("added", len(placement.Added)).
		Int("regions", b.engine.Len()).
		Msg("Shot placed")
	for _, r := range placement.Added {
		b.log.Debug().Uint64("id", uint64(r.ID)).Stringer("rect", r.Rect).Msg("Region added")
	}

	return placement, nil
}

// Reset clears the engine and the notice.
func (b *Board) Reset() {
	b.engine.Reset()
	b.notice = ""
	b.noticeExpires = time.Time{}
	b.resetColors()
	if b.metrics != nil {
		b.metrics.Reset(context.Background(), b.engine.Len())
	}
	b.log.Info().Msg("Board reset")
}

// Notice returns the current notice while it is visible.
func (b *Board) Notice() (string, bool) {
	if b.notice == "" || !b.now().Before(b.noticeExpires) {
		return "", false
	}
	return b.notice, true
}

// Color returns the debug colour of a region.
func (b *Board) Color(id partition.RegionID) color.RGBA {
	if c, ok := b.colors.Get(id); ok {
		return c
	}
	return b.assignColor(id)
}

func (b *Board) assignColor(id partition.RegionID) color.RGBA {
	c := color.RGBA{
		R: uint8(b.rng.IntN(256)),
		G: uint8(b.rng.IntN(256)),
		B: uint8(b.rng.IntN(256)),
		A: 255,
	}
	b.colors.Put(id, c)
	return c
}

func (b *Board) resetColors() {
	b.colors = intmap.New[partition.RegionID, color.RGBA](64)
	for r := range b.engine.All() {
		b.assignColor(r.ID)
	}
}
