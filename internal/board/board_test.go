package board

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/blockie/internal/metrics"
	"github.com/plus3/blockie/partition"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCues struct {
	accepted, rejected int
}

func (c *countingCues) Accept() { c.accepted++ }
func (c *countingCues) Reject() { c.rejected++ }

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newBoard(t *testing.T, opts ...Option) *Board {
	t.Helper()
	engine, err := partition.New(10, 10)
	require.NoError(t, err)
	return New(engine, append([]Option{WithSeed(1)}, opts...)...)
}

func TestCellAt(t *testing.T) {
	b := newBoard(t)

	tests := []struct {
		px, py float64
		x, y   int
	}{
		{0, 0, 0, 0},
		{99.9, 99.9, 0, 0},
		{100, 250, 1, 2},
		{999, 999, 9, 9},
		{-1, -0.5, -1, -1},
		{-100, -101, -1, -2},
	}

	for _, tt := range tests {
		x, y := b.CellAt(tt.px, tt.py)
		assert.Equal(t, tt.x, x, "x for %v", tt.px)
		assert.Equal(t, tt.y, y, "y for %v", tt.py)
	}

	b = newBoard(t, WithCellSize(2, 1))
	x, y := b.CellAt(5, 5)
	assert.Equal(t, 2, x)
	assert.Equal(t, 5, y)
	w, h := b.CellSize()
	assert.Equal(t, 2.0, w)
	assert.Equal(t, 1.0, h)
}

func TestClick(t *testing.T) {
	cues := &countingCues{}
	b := newBoard(t, WithCues(cues))

	placement, err := b.Click(550, 520)
	require.NoError(t, err)
	assert.Equal(t, partition.Shot{X: 5, Y: 5}, placement.Shot)
	assert.Len(t, placement.Added, 4)
	assert.Equal(t, 4, b.Engine().Len())
	assert.Equal(t, 1, cues.accepted)

	_, ok := b.Notice()
	assert.False(t, ok)
}

func TestDuplicateNotice(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	cues := &countingCues{}
	b := newBoard(t, WithCues(cues), WithClock(clock.Now), WithNoticeDuration(2*time.Second))

	_, err := b.Place(3, 3)
	require.NoError(t, err)

	_, err = b.Place(3, 3)
	assert.ErrorIs(t, err, partition.ErrDuplicateShot)
	assert.Equal(t, 1, cues.rejected)

	notice, ok := b.Notice()
	assert.True(t, ok)
	assert.Equal(t, DuplicateNotice, notice)

	clock.t = clock.t.Add(1999 * time.Millisecond)
	_, ok = b.Notice()
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Millisecond)
	_, ok = b.Notice()
	assert.False(t, ok)
}

func TestColors(t *testing.T) {
	b := newBoard(t)
	first := b.Engine().Regions()[0]
	c := b.Color(first.ID)
	assert.Equal(t, uint8(255), c.A)
	assert.Equal(t, c, b.Color(first.ID))
	assert.Equal(t, 1, b.colors.Len())

	placement, err := b.Place(4, 4)
	require.NoError(t, err)

	// The split region's colour is dropped; each child gets one.
	assert.Equal(t, len(placement.Added), b.colors.Len())
	_, ok := b.colors.Get(first.ID)
	assert.False(t, ok)
	for _, r := range placement.Added {
		assert.Equal(t, b.Color(r.ID), b.Color(r.ID))
	}
}

func TestColorsFollowSeed(t *testing.T) {
	a := newBoard(t)
	b := newBoard(t)

	_, err := a.Place(2, 7)
	require.NoError(t, err)
	_, err = b.Place(2, 7)
	require.NoError(t, err)

	for _, r := range a.Engine().Regions() {
		assert.Equal(t, a.Color(r.ID), b.Color(r.ID))
	}
}

func TestReset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	b := newBoard(t, WithClock(clock.Now))

	_, err := b.Place(1, 1)
	require.NoError(t, err)
	_, err = b.Place(1, 1)
	require.Error(t, err)

	b.Reset()

	assert.Equal(t, 1, b.Engine().Len())
	assert.Empty(t, b.Engine().Shots())
	assert.Equal(t, 1, b.colors.Len())
	_, ok := b.Notice()
	assert.False(t, ok)
}

func TestLoggingAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	provider := metrics.NewProvider("board-test", true)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	rec, err := metrics.New(provider.Meter())
	require.NoError(t, err)

	b := newBoard(t,
		WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
		WithMetrics(rec))

	_, err = b.Place(5, 5)
	require.NoError(t, err)
	_, err = b.Place(5, 5)
	require.Error(t, err)

	totals, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, metrics.Totals{Accepted: 1, Rejected: 1, Splits: 1, Regions: 4}, totals)

	b.Reset()
	totals, err = provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Regions)

	out := buf.String()
	assert.Contains(t, out, `"message":"Shot placed"`)
	assert.Contains(t, out, `"regions":4`)
	assert.Contains(t, out, `"message":"Region added"`)
	assert.Contains(t, out, `"rect":"{0,0 10x5}"`)
	assert.Contains(t, out, `"message":"Duplicate shot rejected"`)
	assert.Contains(t, out, `"message":"Board reset"`)
}

func TestGeometry(t *testing.T) {
	b := newBoard(t)

	assert.Equal(t, Box{X: 300, Y: 700, W: 100, H: 100}, b.CellBox(3, 7))
	assert.Equal(t, Box{X: 0, Y: 600, W: 1000, H: 400}, b.RectBox(partition.Rect{X: 0, Y: 6, Width: 10, Height: 4}))
	assert.Equal(t, Box{X: 602, Y: 2, W: 395, H: 995}, b.OutlineBox(partition.Rect{X: 6, Y: 0, Width: 4, Height: 10}))

	w, h := b.Size()
	assert.Equal(t, 1000.0, w)
	assert.Equal(t, 1000.0, h)

	small := newBoard(t, WithCellSize(2, 1))
	assert.Equal(t, Box{X: 2, Y: 2, W: 0, H: 0}, small.OutlineBox(partition.Rect{Width: 1, Height: 1}))
}
