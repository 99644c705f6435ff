package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/loop"
	"github.com/rs/zerolog"
)

// InputSystem turns mouse clicks into shots and handles the game keys.
type InputSystem struct {
	Board *board.Board
	Log   zerolog.Logger

	// Captured reports whether the overlay owns the mouse this frame.
	Captured func() bool

	ShowOverlay bool
	Quit        bool
}

func (s *InputSystem) Execute(frame *loop.Frame) {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Quit = true
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.ShowOverlay = !s.ShowOverlay
		s.Log.Debug().Bool("overlay", s.ShowOverlay).Msg("Overlay toggled")
	}

	// Deferred so later systems in the frame see the board they started with.
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		frame.Commands.Defer(s.Board.Reset)
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	if s.Captured != nil && s.Captured() {
		return
	}

	px, py := ebiten.CursorPosition()
	// Duplicates are reported through the board's notice.
	_, _ = s.Board.Click(float64(px), float64(py))
}
