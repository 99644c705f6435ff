// Package term is the terminal front end. Each grid cell is two columns wide
// and one row high; the left mouse button places shots.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/loop"
	"github.com/rs/zerolog"
)

// Cell size in terminal columns and rows. Boards driven by this package must
// be built with board.WithCellSize(CellColumns, CellRows).
const (
	CellColumns = 2
	CellRows    = 1
)

const frameInterval = 50 * time.Millisecond

// UI drives a board from a tcell screen.
type UI struct {
	screen tcell.Screen
	board  *board.Board
	log    zerolog.Logger

	scheduler *loop.Scheduler
	render    *RenderSystem

	pressed  bool
	lastDraw time.Time
}

// New wraps an initialised screen. Mouse reporting is switched on here.
func New(screen tcell.Screen, b *board.Board, log zerolog.Logger) *UI {
	screen.EnableMouse()
	screen.HideCursor()

	u := &UI{
		screen:    screen,
		board:     b,
		log:       log,
		scheduler: loop.NewScheduler(),
		render:    &RenderSystem{Screen: screen, Board: b},
	}
	u.scheduler.Register(u.render)
	return u
}

// Run redraws on every event and on a short tick so the notice can expire.
// It returns when the player quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	u.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !u.HandleEvent(ev) {
				return nil
			}
			u.Draw()
		case <-ticker.C:
			u.Draw()
		}
	}
}

// HandleEvent applies one event. It returns false when the player quits.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		x, y := ev.Position()
		u.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		w, h := ev.Size()
		u.log.Debug().Int("cols", w).Int("rows", h).Msg("Terminal resized")
		u.screen.Sync()
	}
	return true
}

func (u *UI) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'r', 'R':
			u.board.Reset()
		}
	}
	return true
}

// handleMouse places a shot on the press edge of the left button only, so a
// held button or a drag does not repeat the shot.
func (u *UI) handleMouse(x, y int, buttons tcell.ButtonMask) {
	down := buttons&tcell.Button1 != 0
	if down && !u.pressed {
		w, h := u.board.Size()
		if float64(x) < w && float64(y) < h {
			_, _ = u.board.Click(float64(x), float64(y))
		}
	}
	u.pressed = down
}

// Draw renders one frame.
func (u *UI) Draw() {
	now := time.Now()
	dt := 0.0
	if !u.lastDraw.IsZero() {
		dt = now.Sub(u.lastDraw).Seconds()
	}
	u.lastDraw = now
	u.scheduler.Once(dt)
}
