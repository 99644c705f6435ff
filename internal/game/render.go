package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/loop"
)

var (
	backgroundColor = color.RGBA{240, 240, 240, 255}
	gridColor       = color.RGBA{0, 0, 0, 255}
	shotColor       = color.RGBA{255, 0, 0, 255}
	largestColor    = color.RGBA{50, 0, 0, 50}
	noticeColor     = color.RGBA{0, 0, 0, 200}
)

// RenderSystem draws the lattice, the shots, one outline per region and the
// largest region onto Screen.
type RenderSystem struct {
	Board  *board.Board
	Screen *ebiten.Image
}

func (s *RenderSystem) Execute(frame *loop.Frame) {
	if s.Screen == nil {
		return
	}
	screen := s.Screen
	screen.Fill(backgroundColor)

	s.drawLattice(screen)

	engine := s.Board.Engine()
	for _, shot := range engine.Shots() {
		box := s.Board.CellBox(shot.X, shot.Y)
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), shotColor, false)
	}

	for r := range engine.All() {
		box := s.Board.OutlineBox(r.Rect)
		if box.W == 0 || box.H == 0 {
			continue
		}
		vector.StrokeRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), 1, s.Board.Color(r.ID), false)
	}

	if largest, err := engine.LargestRegion(); err == nil {
		box := s.Board.RectBox(largest.Rect)
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), largestColor, false)
	}

	if notice, ok := s.Board.Notice(); ok {
		w, h := s.Board.Size()
		x, y := int(w)/2-len(notice)*3, int(h)/2-8
		vector.DrawFilledRect(screen, float32(x-8), float32(y-4), float32(len(notice)*6+16), 24, noticeColor, false)
		ebitenutil.DebugPrintAt(screen, notice, x, y)
	}
}

func (s *RenderSystem) drawLattice(screen *ebiten.Image) {
	engine := s.Board.Engine()
	w, h := s.Board.Size()
	cw, ch := s.Board.CellSize()

	for i := 0; i <= engine.Width(); i++ {
		x := float32(float64(i) * cw)
		vector.StrokeLine(screen, x, 0, x, float32(h), 1, gridColor, false)
	}
	for i := 0; i <= engine.Height(); i++ {
		y := float32(float64(i) * ch)
		vector.StrokeLine(screen, 0, y, float32(w), y, 1, gridColor, false)
	}
}
