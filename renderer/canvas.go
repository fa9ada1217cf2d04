package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Canvas is a persistent raylib render target. Regions paint into it with
// partial erases, so it is never cleared between frames.
type Canvas struct {
	target        rl.RenderTexture2D
	width, height int32
	active        bool
}

// NewCanvas creates a width x height render target. The raylib window must
// already be open.
func NewCanvas(width, height int32) *Canvas {
	c := &Canvas{
		target: rl.LoadRenderTexture(width, height),
		width:  width,
		height: height,
	}
	return c
}

// Begin redirects drawing into the canvas until End.
func (c *Canvas) Begin() {
	rl.BeginTextureMode(c.target)
	c.active = true
}

// End restores drawing to the window.
func (c *Canvas) End() {
	rl.EndTextureMode()
	c.active = false
}

// paint runs fn with the canvas as target, opening texture mode if the
// caller has not.
func (c *Canvas) paint(fn func()) {
	if c.active {
		fn()
		return
	}
	rl.BeginTextureMode(c.target)
	fn()
	rl.EndTextureMode()
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.RGBA) {
	c.paint(func() { rl.ClearBackground(col) })
}

// FillRect alpha-blends col over the rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	c.paint(func() {
		rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), col)
	})
}

// FillCircle alpha-blends a filled disc of col.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	if r <= 0 {
		return
	}
	c.paint(func() {
		rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(r), col)
	})
}

// Present draws the canvas stretched over the window's render area. Must be
// called between rl.BeginDrawing and rl.EndDrawing.
func (c *Canvas) Present() {
	// Render textures are stored bottom-up
	src := rl.NewRectangle(0, 0, float32(c.width), -float32(c.height))
	dst := rl.NewRectangle(0, 0, float32(rl.GetRenderWidth()), float32(rl.GetRenderHeight()))
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Export writes the canvas to a PNG file.
func (c *Canvas) Export(path string) bool {
	img := rl.LoadImageFromTexture(c.target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	return rl.ExportImage(*img, path)
}

// Unload releases the render target.
func (c *Canvas) Unload() {
	rl.UnloadRenderTexture(c.target)
}
