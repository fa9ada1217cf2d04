package settings

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// White is the fallback particle colour.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

var namedColors = map[string]color.RGBA{
	"white": White,
	"black": {A: 255},
}

// ParseColor reads "rgba(r, g, b, a)", "rgb(r, g, b)", "#rrggbb" or a colour
// name. Channels are 0-255 and alpha is 0-1.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parsing colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}

	var body string
	var want int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body, want = s[5:len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body, want = s[4:len(s)-1], 3
	default:
		return color.RGBA{}, fmt.Errorf("parsing colour %q: unknown format", s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != want {
		return color.RGBA{}, fmt.Errorf("parsing colour %q: expected %d channels, got %d", s, want, len(parts))
	}

	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) {
			return color.RGBA{}, fmt.Errorf("parsing colour %q: channel %d", s, i)
		}
		ch[i] = v
	}

	return color.RGBA{
		R: channel(ch[0]),
		G: channel(ch[1]),
		B: channel(ch[2]),
		A: channel(ch[3] * 255),
	}, nil
}

// FormatColor writes c in the rgba() form ParseColor reads.
func FormatColor(c color.RGBA) string {
	a := strconv.FormatFloat(float64(c.A)/255, 'f', -1, 64)
	if c.A == 255 {
		a = "1"
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, a)
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
