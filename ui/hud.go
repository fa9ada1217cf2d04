package ui

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swarms/telemetry"
)

// Action is a HUD button press.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionReseed
	ActionSave
)

// RegionRow is one line of the region list.
type RegionRow struct {
	Slot   int
	Motion string
	Count  int
	Frame  uint64
	Color  color.RGBA
}

// HUDData holds everything the HUD shows for one frame.
type HUDData struct {
	State     string
	Paused    bool
	Frames    uint64
	Particles int
	FPS       int32
	Regions   []RegionRow
	Perf      telemetry.PerfStats
}

// HUD renders the status panel and control buttons.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle shows or hides the HUD.
func (h *HUD) Toggle() { h.visible = !h.visible }

// Visible reports whether the HUD is drawn.
func (h *HUD) Visible() bool { return h.visible }

// Draw renders the HUD and returns the button pressed this frame, if any.
func (h *HUD) Draw(data HUDData) Action {
	if !h.visible {
		return ActionNone
	}
	r := h.renderer
	t := r.Theme
	lines := int32(6 + len(data.Regions) + len(telemetry.Phases))
	height := t.Padding*2 + lines*t.LineHeight + 40
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + t.Padding
	y := h.y + t.Padding

	y = r.DrawSectionHeader(x, y, "Swarms")
	status := data.State
	if data.Paused {
		status = "paused"
	}
	y = r.DrawLabelValue(x, y, "State", status)
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", data.Frames))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))

	for _, phase := range telemetry.Phases {
		y = r.DrawBar(x, y, phase, data.Perf.PhasePct[phase], h.width-2*t.Padding)
	}

	if len(data.Regions) > 0 {
		y = r.DrawSectionHeader(x, y+4, "Regions")
		for _, row := range data.Regions {
			r.DrawSwatch(x, y, row.Color)
			rl.DrawText(
				fmt.Sprintf("%2d %-20s %5d  f%d", row.Slot, row.Motion, row.Count, row.Frame),
				x+t.FontSize+6, y, t.FontSize, t.LabelColor,
			)
			y += t.LineHeight
		}
	}

	// Buttons
	y += 6
	bw := float32(h.width-2*t.Padding-20) / 3
	action := ActionNone
	pauseText := "Pause"
	if data.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: bw, Height: 24}, pauseText) {
		action = ActionTogglePause
	}
	if gui.Button(rl.Rectangle{X: float32(x) + bw + 10, Y: float32(y), Width: bw, Height: 24}, "Reseed") {
		action = ActionReseed
	}
	if gui.Button(rl.Rectangle{X: float32(x) + 2*(bw+10), Y: float32(y), Width: bw, Height: 24}, "Save") {
		action = ActionSave
	}
	return action
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
