package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four arcs approximate a circle.
const kappa = 0.5522847498

// Image is an in-memory canvas for headless runs. Circles are rasterized
// with anti-aliasing.
type Image struct {
	img  *image.RGBA
	z    *vector.Rasterizer
	mask *image.Alpha
}

// NewImage creates a width x height canvas.
func NewImage(width, height int) *Image {
	return &Image{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(1, 1),
	}
}

// RGBA returns the backing image.
func (m *Image) RGBA() *image.RGBA { return m.img }

// Clear fills the whole canvas with c.
func (m *Image) Clear(c color.RGBA) {
	draw.Draw(m.img, m.img.Bounds(), image.NewUniform(nrgba(c)), image.Point{}, draw.Src)
}

// FillRect alpha-blends c over the rectangle, snapped to whole pixels.
func (m *Image) FillRect(x, y, w, h float64, c color.RGBA) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	draw.Draw(m.img, r, image.NewUniform(nrgba(c)), image.Point{}, draw.Over)
}

// FillCircle alpha-blends an anti-aliased disc of c.
func (m *Image) FillCircle(cx, cy, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	// Clip to the canvas in float space so the work never exceeds its size.
	canvas := m.img.Bounds()
	fx0 := math.Max(math.Floor(cx-r), float64(canvas.Min.X))
	fy0 := math.Max(math.Floor(cy-r), float64(canvas.Min.Y))
	fx1 := math.Min(math.Ceil(cx+r), float64(canvas.Max.X))
	fy1 := math.Min(math.Ceil(cy+r), float64(canvas.Max.Y))
	if fx1 <= fx0 || fy1 <= fy0 {
		return
	}
	bounds := image.Rect(int(fx0), int(fy0), int(fx1), int(fy1))
	w, h := bounds.Dx(), bounds.Dy()

	// Rasterize in the clipped frame, then composite through the mask.
	lx, ly := float32(cx-fx0), float32(cy-fy0)
	rr := float32(r)
	k := float32(kappa) * rr

	m.z.Reset(w, h)
	m.z.DrawOp = draw.Src
	m.z.MoveTo(lx+rr, ly)
	m.z.CubeTo(lx+rr, ly+k, lx+k, ly+rr, lx, ly+rr)
	m.z.CubeTo(lx-k, ly+rr, lx-rr, ly+k, lx-rr, ly)
	m.z.CubeTo(lx-rr, ly-k, lx-k, ly-rr, lx, ly-rr)
	m.z.CubeTo(lx+k, ly-rr, lx+rr, ly-k, lx+rr, ly)
	m.z.ClosePath()

	if m.mask == nil || m.mask.Rect.Dx() < w || m.mask.Rect.Dy() < h {
		m.mask = image.NewAlpha(image.Rect(0, 0, max(w, 16), max(h, 16)))
	}
	local := image.Rect(0, 0, w, h)
	m.z.Draw(m.mask, local, image.Opaque, image.Point{})

	draw.DrawMask(m.img, bounds, image.NewUniform(nrgba(c)), image.Point{}, m.mask, image.Point{}, draw.Over)
}

// WritePNG encodes the canvas to path.
func (m *Image) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}
	if err := png.Encode(f, m.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding frame: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing frame file: %w", err)
	}
	return nil
}

// nrgba reinterprets c as non-premultiplied, which is how region colours
// are specified.
func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
