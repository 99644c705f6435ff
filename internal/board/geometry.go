package board

import "github.com/plus3/blockie/partition"

// Outline insets in pointer units. The outline is pulled in by OutlineInset on
// the top-left and shrunk by OutlineShrink overall so that neighbouring
// regions stay distinguishable.
const (
	OutlineInset  = 2
	OutlineShrink = 5
)

// Box is an axis-aligned rectangle in pointer units.
type Box struct {
	X, Y, W, H float64
}

// CellBox returns the pointer-space box covering cell (x, y).
func (b *Board) CellBox(x, y int) Box {
	return Box{
		X: float64(x) * b.cellW,
		Y: float64(y) * b.cellH,
		W: b.cellW,
		H: b.cellH,
	}
}

// RectBox returns the pointer-space box covering r.
func (b *Board) RectBox(r partition.Rect) Box {
	return Box{
		X: float64(r.X) * b.cellW,
		Y: float64(r.Y) * b.cellH,
		W: float64(r.Width) * b.cellW,
		H: float64(r.Height) * b.cellH,
	}
}

// OutlineBox returns the inset outline drawn for r. Boxes too small to hold
// an outline come back with zero size.
func (b *Board) OutlineBox(r partition.Rect) Box {
	box := b.RectBox(r)
	box.X += OutlineInset
	box.Y += OutlineInset
	box.W = max(box.W-OutlineShrink, 0)
	box.H = max(box.H-OutlineShrink, 0)
	return box
}

// Size returns the pointer-space size of the whole grid.
func (b *Board) Size() (w, h float64) {
	return float64(b.engine.Width()) * b.cellW, float64(b.engine.Height()) * b.cellH
}
