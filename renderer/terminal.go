package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// halfBlock paints the top half of a cell in the foreground colour and the
// bottom half in the background colour, giving two pixels per cell.
const halfBlock = '▀'

// Terminal maps a logical canvas onto terminal cells. Each cell holds two
// vertically stacked pixels.
type Terminal struct {
	screen        tcell.Screen
	width, height float64 // logical canvas size

	cols, rows int
	pix        []colorful.Color // cols x rows*2
}

// NewTerminal creates a terminal canvas for a width x height logical surface.
func NewTerminal(screen tcell.Screen, width, height float64) *Terminal {
	t := &Terminal{screen: screen, width: width, height: height}
	t.Resize()
	return t
}

// Resize re-reads the screen size. The pixel buffer is reset to black.
func (t *Terminal) Resize() {
	t.cols, t.rows = t.screen.Size()
	t.pix = make([]colorful.Color, t.cols*t.rows*2)
}

func (t *Terminal) scale() (sx, sy float64) {
	if t.width <= 0 || t.height <= 0 {
		return 0, 0
	}
	return float64(t.cols) / t.width, float64(t.rows*2) / t.height
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// blend mixes c over pixel (px, py) with weight a in [0, 1].
func (t *Terminal) blend(px, py int, c colorful.Color, a float64) {
	if px < 0 || py < 0 || px >= t.cols || py >= t.rows*2 || a <= 0 {
		return
	}
	i := py*t.cols + px
	t.pix[i] = t.pix[i].BlendRgb(c, math.Min(a, 1))
}

// Clear fills every pixel with c.
func (t *Terminal) Clear(c color.RGBA) {
	col := toColorful(c)
	for i := range t.pix {
		t.pix[i] = col
	}
}

// FillRect blends c over the pixels whose centres fall inside the
// rectangle.
func (t *Terminal) FillRect(x, y, w, h float64, c color.RGBA) {
	sx, sy := t.scale()
	x0 := int(math.Round(x * sx))
	y0 := int(math.Round(y * sy))
	x1 := int(math.Round((x + w) * sx))
	y1 := int(math.Round((y + h) * sy))
	col, a := toColorful(c), float64(c.A)/255
	for py := max(y0, 0); py < min(y1, t.rows*2); py++ {
		for px := max(x0, 0); px < min(x1, t.cols); px++ {
			t.blend(px, py, col, a)
		}
	}
}

// FillCircle blends a disc of c. A disc smaller than one pixel tints the
// pixel under its centre in proportion to the area it covers.
func (t *Terminal) FillCircle(cx, cy, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	sx, sy := t.scale()
	px, py := cx*sx, cy*sy
	rx, ry := r*sx, r*sy
	col, a := toColorful(c), float64(c.A)/255

	if rx < 0.5 && ry < 0.5 {
		t.blend(int(px), int(py), col, a*math.Pi*rx*ry)
		return
	}
	ys := int(math.Max(math.Floor(py-ry), 0))
	ye := int(math.Min(math.Ceil(py+ry), float64(t.rows*2-1)))
	xs := int(math.Max(math.Floor(px-rx), 0))
	xe := int(math.Min(math.Ceil(px+rx), float64(t.cols-1)))
	for y := ys; y <= ye; y++ {
		for x := xs; x <= xe; x++ {
			dx := (float64(x) + 0.5 - px) / rx
			dy := (float64(y) + 0.5 - py) / ry
			if dx*dx+dy*dy <= 1 {
				t.blend(x, y, col, a)
			}
		}
	}
}

// Flush pushes the pixel buffer to the screen.
func (t *Terminal) Flush() {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			top := t.pix[(row*2)*t.cols+col]
			bottom := t.pix[(row*2+1)*t.cols+col]
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
