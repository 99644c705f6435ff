package game

import (
	"context"
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockie/internal/board"
	"github.com/plus3/blockie/internal/loop"
	"github.com/plus3/blockie/internal/metrics"
	"github.com/rs/zerolog"
)

// maxTableRows caps the region table; partitions grow quickly.
const maxTableRows = 256

// StatsSource names a scheduler whose timings are shown in the overlay.
type StatsSource struct {
	Name      string
	Scheduler *loop.Scheduler
}

// OverlaySystem queues the ImGui debug window. Widgets are submitted in a
// deferred command so they see the state left by every other system.
type OverlaySystem struct {
	Board   *board.Board
	Input   *InputSystem
	Sources []StatsSource
	Metrics *metrics.Provider
	Log     zerolog.Logger
}

func (s *OverlaySystem) Execute(frame *loop.Frame) {
	if !s.Input.ShowOverlay {
		return
	}
	frame.Commands.Defer(s.render)
}

func (s *OverlaySystem) render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)

	if !imgui.BeginV("Blockie", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	engine := s.Board.Engine()
	imgui.Text(fmt.Sprintf("Grid: %dx%d (%s)", engine.Width(), engine.Height(), engine.Bounds()))
	imgui.Text(fmt.Sprintf("Shots: %d", len(engine.Shots())))
	imgui.Text(fmt.Sprintf("Regions: %d", engine.Len()))
	if largest, err := engine.LargestRegion(); err == nil {
		imgui.Text(fmt.Sprintf("Largest: #%d %s area %d", largest.ID, largest.Rect, largest.Area()))
	} else {
		imgui.Text("Largest: none")
	}

	if imgui.TreeNodeStr("Regions") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("RegionTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Rect")
			imgui.TableSetupColumn("Area")
			imgui.TableHeadersRow()

			n := 0
			for r := range engine.All() {
				if n == maxTableRows {
					break
				}
				n++
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", r.ID))
				imgui.TableNextColumn()
				imgui.Text(r.Rect.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", r.Area()))
			}

			imgui.EndTable()
		}
		if engine.Len() > maxTableRows {
			imgui.Text(fmt.Sprintf("... %d more", engine.Len()-maxTableRows))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Systems") {
		for _, src := range s.Sources {
			stats := src.Scheduler.Stats()
			for _, sys := range stats.Systems {
				imgui.BulletText(fmt.Sprintf("%s/%s: last %s avg %s max %s",
					src.Name, sys.Name, sys.LastDuration, sys.AvgDuration, sys.MaxDuration))
			}
		}
		imgui.TreePop()
	}

	if s.Metrics != nil && s.Metrics.Enabled() && imgui.TreeNodeStr("Metrics") {
		totals, err := s.Metrics.Snapshot(context.Background())
		if err != nil {
			s.Log.Warn().Err(err).Msg("Failed to read metrics")
		}
		imgui.Text(fmt.Sprintf("Accepted: %d", totals.Accepted))
		imgui.Text(fmt.Sprintf("Rejected: %d", totals.Rejected))
		imgui.Text(fmt.Sprintf("Splits: %d", totals.Splits))
		imgui.Text(fmt.Sprintf("Regions: %d", totals.Regions))
		imgui.TreePop()
	}

	imgui.Separator()
	imgui.Text("R reset, F1 overlay, Q quit")

	imgui.End()
}
