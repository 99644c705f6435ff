package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/loop"
	"github.com/plus3/blockie/partition"
)

var (
	emptyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	shotStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	statusStyle  = tcell.StyleDefault
	noticeStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	largestTint  = tcell.NewRGBColor(80, 0, 0)
	shotGlyph    = []rune("██")
	emptyGlyph   = []rune("· ")
	controlsHint = "click: shoot  r: reset  q: quit"
)

// RenderSystem paints the board onto Screen.
type RenderSystem struct {
	Screen tcell.Screen
	Board  *board.Board

	largest partition.Rect
	tinted  bool
}

func (s *RenderSystem) Execute(frame *loop.Frame) {
	s.Screen.Clear()

	engine := s.Board.Engine()
	largest, err := engine.LargestRegion()
	s.largest, s.tinted = largest.Rect, err == nil

	for y := range engine.Height() {
		for x := range engine.Width() {
			s.putCell(x, y, emptyGlyph, emptyStyle)
		}
	}

	for r := range engine.All() {
		s.outline(r.Rect, colorOf(s.Board.Color(r.ID)))
	}

	for _, shot := range engine.Shots() {
		if shot.X < 0 || shot.Y < 0 || shot.X >= engine.Width() || shot.Y >= engine.Height() {
			continue
		}
		s.putCell(shot.X, shot.Y, shotGlyph, shotStyle)
	}

	row := engine.Height() + 1
	status := fmt.Sprintf("Shots: %d  Regions: %d", len(engine.Shots()), engine.Len())
	if s.tinted {
		status += fmt.Sprintf("  Largest: %s", largest.Rect)
	}
	s.text(0, row, status, statusStyle)
	s.text(0, row+1, controlsHint, statusStyle)
	if notice, ok := s.Board.Notice(); ok {
		s.text(0, row+2, notice, noticeStyle)
	}

	s.Screen.Show()
}

// outline draws the border of r with box-drawing runes. Single-row and
// single-cell regions collapse to a bar.
func (s *RenderSystem) outline(r partition.Rect, c tcell.Color) {
	if r.Empty() {
		return
	}
	style := tcell.StyleDefault.Foreground(c)
	x0, y0 := r.X*CellColumns, r.Y*CellRows
	x1, y1 := (r.X+r.Width)*CellColumns-1, (r.Y+r.Height)*CellRows-1

	if y0 == y1 {
		for x := x0; x <= x1; x++ {
			s.put(x, y0, '─', style)
		}
		s.put(x0, y0, '╶', style)
		s.put(x1, y0, '╴', style)
		return
	}

	for x := x0 + 1; x < x1; x++ {
		s.put(x, y0, '─', style)
		s.put(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		s.put(x0, y, '│', style)
		s.put(x1, y, '│', style)
	}
	s.put(x0, y0, '┌', style)
	s.put(x1, y0, '┐', style)
	s.put(x0, y1, '└', style)
	s.put(x1, y1, '┘', style)
}

func (s *RenderSystem) putCell(x, y int, glyph []rune, style tcell.Style) {
	for i, r := range glyph {
		s.put(x*CellColumns+i, y*CellRows, r, style)
	}
}

// put writes one rune, tinting the background inside the largest region.
func (s *RenderSystem) put(x, y int, r rune, style tcell.Style) {
	if s.tinted && s.inLargest(x, y) {
		style = style.Background(largestTint)
	}
	s.Screen.SetContent(x, y, r, nil, style)
}

func (s *RenderSystem) inLargest(x, y int) bool {
	return s.largest.ContainsCell(x/CellColumns, y/CellRows)
}

func (s *RenderSystem) text(x, y int, str string, style tcell.Style) {
	for i, r := range []rune(str) {
		s.Screen.SetContent(x+i, y, r, nil, style)
	}
}

func colorOf(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
