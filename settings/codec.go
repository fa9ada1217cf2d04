package settings

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pthm-cable/swarms/motion"
)

// wireSettings is the JSON form of RegionSettings. Field names match the
// control panel's settings files. Every field is decoded loosely so a bad
// value in one field never rejects the whole entry.
type wireSettings struct {
	Visible any `json:"visible"`
	TLX     any `json:"tlx"`
	TLY     any `json:"tly"`
	SizeW   any `json:"sizew"`
	SizeH   any `json:"sizeh"`
	Radius  any `json:"radius"`
	Count   any `json:"count"`
	PosFn   any `json:"posFn"`
	DirX    any `json:"dirx"`
	DirY    any `json:"diry"`
	Color   any `json:"color"`
	Tail    any `json:"tail"`
}

// outSettings is what Save writes.
type outSettings struct {
	Visible bool    `json:"visible"`
	TLX     float64 `json:"tlx"`
	TLY     float64 `json:"tly"`
	SizeW   float64 `json:"sizew"`
	SizeH   float64 `json:"sizeh"`
	Radius  float64 `json:"radius"`
	Count   int     `json:"count"`
	PosFn   string  `json:"posFn"`
	DirX    float64 `json:"dirx"`
	DirY    float64 `json:"diry"`
	Color   string  `json:"color"`
	Tail    float64 `json:"tail"`
}

// coercer substitutes defaults and logs each substitution.
type coercer struct {
	d    Defaults
	slot int
}

func (c coercer) fallback(field string, raw any) {
	slog.Debug("settings field coerced to default", "slot", c.slot, "field", field, "value", raw)
}

// number reads a finite float from a JSON number or numeric string.
func number(raw any) (float64, bool) {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func (c coercer) finite(field string, raw any, def float64) float64 {
	v, ok := number(raw)
	if !ok {
		if raw != nil {
			c.fallback(field, raw)
		}
		return def
	}
	return v
}

func (c coercer) nonNegative(field string, raw any, def float64) float64 {
	v, ok := number(raw)
	if !ok || v < 0 {
		c.fallback(field, raw)
		return def
	}
	return v
}

func (c coercer) visible(raw any) bool {
	switch x := raw.(type) {
	case bool:
		return x
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err == nil {
			return b
		}
	}
	if raw != nil {
		c.fallback("visible", raw)
	}
	return false
}

func (c coercer) count(raw any) int {
	v, ok := number(raw)
	if !ok || v < 0 {
		c.fallback("count", raw)
		return c.d.Count
	}
	if v > MaxCount {
		return MaxCount
	}
	return int(v)
}

func (c coercer) trail(raw any) float64 {
	v, ok := number(raw)
	if !ok {
		c.fallback("tail", raw)
		return c.d.Trail
	}
	return math.Max(0, math.Min(100, v))
}

func (c coercer) rule(raw any) motion.Kind {
	id, ok := raw.(string)
	if !ok {
		c.fallback("posFn", raw)
		return c.d.Motion
	}
	k, ok := motion.ParseKind(id)
	if !ok {
		c.fallback("posFn", raw)
		return c.d.Motion
	}
	return k
}

func (c coercer) rgba(raw any) color.RGBA {
	s, ok := raw.(string)
	if !ok {
		c.fallback("color", raw)
		return c.d.Color
	}
	col, err := ParseColor(s)
	if err != nil {
		c.fallback("color", raw)
		return c.d.Color
	}
	return col
}

func (w wireSettings) coerce(slot int, d Defaults) RegionSettings {
	c := coercer{d: d, slot: slot}
	return RegionSettings{
		Visible: c.visible(w.Visible),
		X:       c.finite("tlx", w.TLX, 0),
		Y:       c.finite("tly", w.TLY, 0),
		Width:   c.nonNegative("sizew", w.SizeW, d.Width),
		Height:  c.nonNegative("sizeh", w.SizeH, d.Height),
		Radius:  math.Min(c.nonNegative("radius", w.Radius, d.Radius), MaxRadius),
		Count:   c.count(w.Count),
		Motion:  c.rule(w.PosFn),
		DirX:    c.finite("dirx", w.DirX, d.DirX),
		DirY:    c.finite("diry", w.DirY, d.DirY),
		Color:   c.rgba(w.Color),
		Trail:   c.trail(w.Tail),
	}
}

// Decode parses a JSON array of region settings, coercing malformed fields.
// Only a document that is not an array of objects is an error. Entries
// beyond MaxRegions are dropped.
func Decode(data []byte, d Defaults) (Snapshot, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if len(raw) > MaxRegions {
		slog.Warn("settings snapshot truncated", "entries", len(raw), "max", MaxRegions)
		raw = raw[:MaxRegions]
	}

	snap := make(Snapshot, len(raw))
	for i, entry := range raw {
		var w wireSettings
		if err := json.Unmarshal(entry, &w); err != nil {
			// Not an object: the whole slot degrades to an invisible default.
			slog.Debug("settings entry malformed", "slot", i, "error", err)
			snap[i] = d.Settings()
			continue
		}
		snap[i] = w.coerce(i, d)
	}
	return snap, nil
}

// Encode renders s as an indented JSON array.
func Encode(s Snapshot) ([]byte, error) {
	out := make([]outSettings, len(s))
	for i, r := range s {
		out[i] = outSettings{
			Visible: r.Visible,
			TLX:     r.X,
			TLY:     r.Y,
			SizeW:   r.Width,
			SizeH:   r.Height,
			Radius:  r.Radius,
			Count:   r.Count,
			PosFn:   r.Motion.String(),
			DirX:    r.DirX,
			DirY:    r.DirY,
			Color:   FormatColor(r.Color),
			Tail:    r.Trail,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}

// Load reads a snapshot from a JSON file.
func Load(path string, d Defaults) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	return Decode(data, d)
}

// Save writes s to path as JSON.
func Save(path string, s Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// Stream reads one JSON array per line from r and passes each decoded
// snapshot to submit. Undecodable lines are logged and skipped. It returns
// when r is exhausted or ctx is done.
func Stream(ctx context.Context, r io.Reader, d Defaults, submit func(Snapshot)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		snap, err := Decode(line, d)
		if err != nil {
			slog.Warn("skipping settings line", "error", err)
			continue
		}
		submit(snap)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading settings stream: %w", err)
	}
	return nil
}
