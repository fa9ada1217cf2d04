package renderer

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestImage_ClearAndCircle(t *testing.T) {
	m := NewImage(32, 32)
	m.Clear(black)
	m.FillCircle(16, 16, 5, white)

	img := m.RGBA()
	if got := img.RGBAAt(16, 16); got.R < 250 || got.A != 255 {
		t.Errorf("expected white centre, got %v", got)
	}
	if got := img.RGBAAt(2, 2); got != black {
		t.Errorf("expected black corner, got %v", got)
	}
	if got := img.RGBAAt(16, 16+8); got != black {
		t.Errorf("expected black outside the disc, got %v", got)
	}
}

func TestImage_CircleClippedAtEdge(t *testing.T) {
	m := NewImage(16, 16)
	m.Clear(black)
	m.FillCircle(0, 0, 4, white)
	m.FillCircle(-100, -100, 4, white)

	if got := m.RGBA().RGBAAt(0, 0); got.R < 250 {
		t.Errorf("expected corner pixel covered, got %v", got)
	}
	if got := m.RGBA().RGBAAt(1, 1); got.R < 250 {
		t.Errorf("expected clipped disc drawn with the correct offset, got %v", got)
	}
}

func TestImage_HugeCircleClipsToCanvas(t *testing.T) {
	m := NewImage(16, 16)
	m.Clear(black)
	m.FillCircle(8, 8, 5000, white)

	if m.mask.Rect.Dx() > 16 || m.mask.Rect.Dy() > 16 {
		t.Errorf("expected mask bounded by the canvas, got %v", m.mask.Rect)
	}
	for _, p := range [][2]int{{0, 0}, {15, 15}, {8, 8}} {
		if got := m.RGBA().RGBAAt(p[0], p[1]); got.R < 250 {
			t.Errorf("expected pixel %v covered, got %v", p, got)
		}
	}
}

func TestImage_FillRectBlends(t *testing.T) {
	m := NewImage(8, 8)
	m.Clear(white)
	m.FillRect(0, 0, 4, 8, color.RGBA{A: 128})

	left := m.RGBA().RGBAAt(1, 1)
	right := m.RGBA().RGBAAt(6, 1)
	if left.R < 120 || left.R > 135 || left.A != 255 {
		t.Errorf("expected half-faded opaque pixel, got %v", left)
	}
	if right != white {
		t.Errorf("expected untouched pixel, got %v", right)
	}
}

func TestImage_TrailFadesOldFrames(t *testing.T) {
	m := NewImage(8, 8)
	m.Clear(black)
	m.FillCircle(4, 4, 2, white)
	for i := 0; i < 30; i++ {
		m.FillRect(0, 0, 8, 8, color.RGBA{A: 94})
	}
	if got := m.RGBA().RGBAAt(4, 4); got.R > 5 {
		t.Errorf("expected faded pixel, got %v", got)
	}
}

func TestImage_WritePNG(t *testing.T) {
	m := NewImage(10, 6)
	m.Clear(black)
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := m.WritePNG(path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
		t.Errorf("expected 10x6, got %v", b)
	}
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func TestTerminal_HalfBlocks(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	term := NewTerminal(s, 100, 100)
	term.Clear(black)
	// Top pixel of the first cell only: logical y in [0, 10)
	term.FillRect(0, 0, 10, 10, white)
	term.Flush()

	r, _, style, _ := s.GetContent(0, 0)
	if r != halfBlock {
		t.Fatalf("expected half block, got %q", r)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) {
		t.Errorf("expected white top half, got %v", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("expected black bottom half, got %v", bg)
	}
}

func TestTerminal_SmallCircleTints(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	term := NewTerminal(s, 1000, 1000)
	term.Clear(black)
	term.FillCircle(55, 55, 1, white)

	p := term.pix[0]
	if p.R <= 0 || p.R >= 1 {
		t.Errorf("expected partial tint, got %v", p)
	}
	term.FillCircle(-50, -50, 1, white)
}

func TestTerminal_HugeCircleClipsToScreen(t *testing.T) {
	s := newSimScreen(t, 10, 5)
	term := NewTerminal(s, 100, 100)
	term.Clear(black)
	term.FillCircle(50, 50, 1e9, white)

	for i, p := range term.pix {
		if p.R < 0.99 {
			t.Fatalf("expected pixel %d covered, got %v", i, p)
		}
	}
}
