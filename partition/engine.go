package partition

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/kamstrup/intmap"
)

// Placement describes the effect of an accepted shot.
type Placement struct {
	Shot    Shot
	Removed []Region
	Added   []Region
}

// Option configures an Engine.
type Option func(*Engine)

// WithBounds selects the overlap rule used when splitting.
func WithBounds(b Bounds) Option {
	return func(e *Engine) {
		e.bounds = b
	}
}

// WithShotCapacity pre-sizes the shot index for n shots. Callers that know
// how many shots a game takes, such as a full-grid sweep, avoid rehashing.
// Values below one keep the default.
func WithShotCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.shotCapacity = n
		}
	}
}

// Engine maintains the regions of a fixed-size grid and the shots placed on
// it. An Engine is not safe for concurrent use; callers drive it from a single
// goroutine such as a game's update loop.
type Engine struct {
	width, height int
	bounds        Bounds
	shotCapacity  int

	regions []Region
	shots   []Shot
	// index maps packed shot coordinates to their position in shots.
	// Coordinates outside the int32 range are not indexed.
	index  *intmap.Map[uint64, int]
	nextID RegionID
}

// New creates an engine for a width x height grid holding a single region
// that covers the whole grid.
func New(width, height int, opts ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	e := &Engine{
		width:        width,
		height:       height,
		shotCapacity: 64,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.Reset()
	return e, nil
}

// Reset discards all shots and regions and restores the whole-grid region.
// Region IDs start again from 1.
func (e *Engine) Reset() {
	e.nextID = 0
	e.shots = nil
	e.index = intmap.New[uint64, int](e.shotCapacity)
	e.regions = []Region{e.newRegion(Rect{Width: e.width, Height: e.height})}
}

// Width returns the grid width in cells.
func (e *Engine) Width() int { return e.width }

// Height returns the grid height in cells.
func (e *Engine) Height() int { return e.height }

// Bounds returns the overlap rule in use.
func (e *Engine) Bounds() Bounds { return e.bounds }

// PlaceShot records a shot at (x, y) and splits every region it overlaps.
// Coordinates are not range checked; a shot off the grid is recorded and
// overlaps nothing. Placing a shot where one already exists returns an error
// wrapping ErrDuplicateShot and leaves the engine unchanged.
func (e *Engine) PlaceShot(x, y int) (Placement, error) {
	s := Shot{X: x, Y: y}
	if e.HasShot(x, y) {
		return Placement{Shot: s}, fmt.Errorf("%w at %s", ErrDuplicateShot, s)
	}

	if key, ok := shotKey(s); ok {
		e.index.Put(key, len(e.shots))
	}
	e.shots = append(e.shots, s)

	// Overlap is decided against the regions as they were before this shot,
	// so children created below are never split by the same shot.
	kept := make([]Region, 0, len(e.regions)+4)
	var removed []Region
	for _, r := range e.regions {
		if e.bounds.Overlaps(r.Rect, s) {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}

	// Overlapping regions are split from last to first, each appending its
	// children at the tail.
	var added []Region
	for i := len(removed) - 1; i >= 0; i-- {
		for _, child := range Split(removed[i].Rect, s) {
			added = append(added, e.newRegion(child))
		}
	}

	e.regions = append(kept, added...)
	return Placement{Shot: s, Removed: removed, Added: added}, nil
}

// HasShot reports whether a shot has been placed at (x, y).
func (e *Engine) HasShot(x, y int) bool {
	s := Shot{X: x, Y: y}
	if key, ok := shotKey(s); ok {
		_, found := e.index.Get(key)
		return found
	}
	return slices.Contains(e.shots, s)
}

// Regions returns a copy of the current regions in order.
func (e *Engine) Regions() []Region {
	return slices.Clone(e.regions)
}

// All iterates over the current regions in order. The engine must not be
// modified during iteration.
func (e *Engine) All() iter.Seq[Region] {
	return slices.Values(e.regions)
}

// Len returns the number of regions.
func (e *Engine) Len() int {
	return len(e.regions)
}

// Shots returns a copy of the placed shots in placement order.
func (e *Engine) Shots() []Shot {
	return slices.Clone(e.shots)
}

// LargestRegion returns the region with the greatest area. Ties go to the
// region that comes first. It returns ErrEmptyPartition once every region has
// been split away, which happens when a shot lands on the only cell of a 1x1
// region.
func (e *Engine) LargestRegion() (Region, error) {
	if len(e.regions) == 0 {
		return Region{}, ErrEmptyPartition
	}

	largest := e.regions[0]
	for _, r := range e.regions[1:] {
		if r.Area() > largest.Area() {
			largest = r
		}
	}
	return largest, nil
}

func (e *Engine) newRegion(r Rect) Region {
	e.nextID++
	return Region{ID: e.nextID, Rect: r}
}

// shotKey packs a shot into a single map key when both coordinates fit in 32
// bits.
func shotKey(s Shot) (uint64, bool) {
	if s.X < math.MinInt32 || s.X > math.MaxInt32 || s.Y < math.MinInt32 || s.Y > math.MaxInt32 {
		return 0, false
	}
	return uint64(uint32(int32(s.X)))<<32 | uint64(uint32(int32(s.Y))), true
}
