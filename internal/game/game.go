// Package game is the windowed front end. It draws the board with ebiten and
// runs a Dear ImGui debug overlay on top of it.
package game

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/loop"
	"github.com/plus3/blockie/internal/metrics"
	"github.com/rs/zerolog"
)

// Options configures the window.
type Options struct {
	Title   string
	Overlay bool
	Logger  zerolog.Logger
	// Metrics, when set and enabled, is read back by the overlay.
	Metrics *metrics.Provider
}

// Game implements ebiten.Game. Update runs the input and overlay systems,
// Draw runs the render system.
type Game struct {
	board *board.Board
	log   zerolog.Logger

	imgui *ebitenbackend.EbitenBackend

	update *loop.Scheduler
	draw   *loop.Scheduler

	input   *InputSystem
	render  *RenderSystem
	overlay *OverlaySystem
}

// New builds the game around b and opens its window. The window is sized to
// fit the whole grid.
func New(b *board.Board, opts Options) *Game {
	g := &Game{
		board:  b,
		log:    opts.Logger,
		update: loop.NewScheduler(),
		draw:   loop.NewScheduler(),
	}

	w, h := b.Size()
	if opts.Overlay {
		g.imgui = ebitenbackend.NewEbitenBackend()
		g.imgui.CreateWindow(opts.Title, int(w), int(h))
		imgui.CurrentIO().SetIniFilename("")
	} else {
		ebiten.SetWindowSize(int(w), int(h))
		ebiten.SetWindowTitle(opts.Title)
	}

	g.input = &InputSystem{
		Board:       b,
		Log:         opts.Logger,
		ShowOverlay: opts.Overlay,
	}
	if g.imgui != nil {
		g.input.Captured = func() bool {
			return g.input.ShowOverlay && imgui.CurrentIO().WantCaptureMouse()
		}
	}
	g.update.Register(g.input)

	g.render = &RenderSystem{Board: b}
	g.draw.Register(g.render)

	if g.imgui != nil {
		g.overlay = &OverlaySystem{
			Board:   b,
			Input:   g.input,
			Sources: []StatsSource{{Name: "update", Scheduler: g.update}, {Name: "draw", Scheduler: g.draw}},
			Metrics: opts.Metrics,
			Log:     opts.Logger,
		}
		g.update.Register(g.overlay)
	}

	return g
}

// Run blocks until the window is closed or the player quits.
func (g *Game) Run() error {
	g.log.Info().Msg("Window opened")
	err := ebiten.RunGame(g)
	g.log.Info().Msg("Window closed")
	return err
}

func (g *Game) Update() error {
	if g.imgui != nil {
		g.imgui.BeginFrame()
	}

	g.update.Once(1.0 / float64(ebiten.TPS()))

	if g.imgui != nil {
		g.imgui.EndFrame()
	}

	if g.input.Quit {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Screen = screen
	g.draw.Once(0)

	if g.imgui != nil && g.input.ShowOverlay {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
