package partition

import "fmt"

// Rect is an axis-aligned rectangle in grid-cell units. X and Y name the
// top-left cell.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Area returns Width*Height.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// ContainsCell reports whether the cell (x, y) lies inside the rectangle,
// using half-open bounds.
func (r Rect) ContainsCell(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("{%d,%d %dx%d}", r.X, r.Y, r.Width, r.Height)
}

// RegionID identifies a region for the lifetime of an engine. IDs start at 1
// and are never reused until Reset.
type RegionID uint64

// Region is a rectangle owned by an Engine.
type Region struct {
	ID RegionID
	Rect
}

// Shot is a placed point on the grid.
type Shot struct {
	X, Y int
}

func (s Shot) String() string {
	return fmt.Sprintf("(%d,%d)", s.X, s.Y)
}
