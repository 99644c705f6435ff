package partition

import "fmt"

// Bounds selects how a shot is tested against a region before splitting.
type Bounds int

const (
	// BoundsInclusive treats both edges as part of the region, so a shot one
	// cell past the right or bottom edge still splits it. This is the
	// default.
	BoundsInclusive Bounds = iota
	// BoundsStrict uses half-open bounds: only shots on a cell inside the
	// region split it.
	BoundsStrict
)

func (b Bounds) String() string {
	switch b {
	case BoundsInclusive:
		return "inclusive"
	case BoundsStrict:
		return "strict"
	default:
		return fmt.Sprintf("Bounds(%d)", int(b))
	}
}

// ParseBounds converts "inclusive" or "strict" into a Bounds value.
func ParseBounds(s string) (Bounds, error) {
	switch s {
	case "", "inclusive":
		return BoundsInclusive, nil
	case "strict":
		return BoundsStrict, nil
	default:
		return 0, fmt.Errorf("unknown bounds mode %q", s)
	}
}

// Overlaps reports whether shot s falls on r under the given bounds.
func (b Bounds) Overlaps(r Rect, s Shot) bool {
	if b == BoundsStrict {
		return r.ContainsCell(s.X, s.Y)
	}
	return s.X >= r.X && s.X <= r.Right() && s.Y >= r.Y && s.Y <= r.Bottom()
}

// Split returns the children of n around shot s in Top, Bottom, Left, Right
// order. Top and Left end just before the shot's row and column, Bottom and
// Right start just after them, and each child spans the full extent of n on
// the other axis, so siblings overlap. Children with no area are dropped:
// for a shot on n's last row or column the Bottom or Right child is empty.
//
// Split does not check that s overlaps n.
func Split(n Rect, s Shot) []Rect {
	children := make([]Rect, 0, 4)
	emit := func(r Rect) {
		if !r.Empty() {
			children = append(children, r)
		}
	}

	if s.Y > n.Y {
		emit(Rect{X: n.X, Y: n.Y, Width: n.Width, Height: s.Y - n.Y})
	}
	if s.Y < n.Bottom() {
		emit(Rect{X: n.X, Y: s.Y + 1, Width: n.Width, Height: n.Bottom() - s.Y - 1})
	}
	if s.X > n.X {
		emit(Rect{X: n.X, Y: n.Y, Width: s.X - n.X, Height: n.Height})
	}
	if s.X < n.Right() {
		emit(Rect{X: s.X + 1, Y: n.Y, Width: n.Right() - s.X - 1, Height: n.Height})
	}

	return children
}
