package game

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarms/config"
	"github.com/pthm-cable/swarms/region"
	"github.com/pthm-cable/swarms/renderer"
	"github.com/pthm-cable/swarms/ui"
)

const windowControls = "[Space] Pause  [R] Reseed  [S] Save  [H] HUD  [F11] Fullscreen"

// RunWindow opens a raylib window and runs until it is closed or MaxFrames
// is reached.
func RunWindow(opts Options) error {
	cfg := config.Cfg()

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Swarms")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	// The canvas keeps logical resolution and is scaled to the window.
	scale := rl.GetWindowScaleDPI()
	canvas := renderer.NewCanvas(
		int32(float32(cfg.Screen.Width)*scale.X),
		int32(float32(cfg.Screen.Height)*scale.Y),
	)
	defer canvas.Unload()

	g, err := NewGameWithOptions(opts, &scaledSurface{Surface: canvas, sx: float64(scale.X), sy: float64(scale.Y)})
	if err != nil {
		return err
	}
	defer g.Unload()

	hud := ui.NewHUD(10, 10, 320)

	for !rl.WindowShouldClose() && !g.Done() {
		g.handleInput(hud)

		canvas.Begin()
		g.Step()
		canvas.End()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		canvas.Present()
		switch hud.Draw(g.hudData()) {
		case ui.ActionTogglePause:
			g.TogglePause()
		case ui.ActionReseed:
			g.Reseed()
		case ui.ActionSave:
			g.SaveSnapshot()
		}
		if hud.Visible() {
			hud.DrawControls(int32(rl.GetScreenHeight()), windowControls)
		}
		rl.EndDrawing()

		g.driver.Perf().RecordPresent()
	}

	if opts.FrameOut != "" {
		canvas.Export(opts.FrameOut)
	}
	return nil
}

// handleInput processes keyboard input.
func (g *Game) handleInput(hud *ui.HUD) {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Reseed()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.SaveSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		hud.Toggle()
	}
}

func (g *Game) hudData() ui.HUDData {
	d := g.driver
	data := ui.HUDData{
		State:     d.State().String(),
		Paused:    g.paused,
		Frames:    d.Frames(),
		Particles: d.Particles(),
		FPS:       rl.GetFPS(),
		Perf:      d.Perf().Stats(),
	}
	for i, s := range d.Current() {
		if !s.Visible {
			continue
		}
		data.Regions = append(data.Regions, ui.RegionRow{
			Slot:   i,
			Motion: s.Motion.String(),
			Count:  s.Count,
			Frame:  d.Frame(i),
			Color:  s.Color,
		})
	}
	return data
}

// scaledSurface maps logical coordinates onto a surface with a different
// pixel density.
type scaledSurface struct {
	region.Surface
	sx, sy float64
}

func (s *scaledSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	s.Surface.FillRect(x*s.sx, y*s.sy, w*s.sx, h*s.sy, c)
}

func (s *scaledSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	s.Surface.FillCircle(cx*s.sx, cy*s.sy, r*(s.sx+s.sy)/2, c)
}
