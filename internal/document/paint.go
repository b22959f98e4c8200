package document

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	ColorWhite = "#ffffff"
	ColorBlack = "#000000"
)

var namedColors = map[string]string{
	"white": ColorWhite,
	"black": ColorBlack,
	"red":   "#ff0000",
	"green": "#00ff00",
	"blue":  "#0000ff",
	"gray":  "#808080",
}

// NormalizeColor returns the canonical #rrggbb form of a colour. An empty
// string or "none" means no paint and normalises to "".
func NormalizeColor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" || s == "transparent" {
		return "", nil
	}
	if hex, ok := namedColors[s]; ok {
		return hex, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("parse color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// ParseColor resolves a normalised colour for rasterisation. ok is false for
// "no paint".
func ParseColor(s string) (c colorful.Color, ok bool) {
	hex, err := NormalizeColor(s)
	if err != nil || hex == "" {
		return colorful.Color{}, false
	}
	c, err = colorful.Hex(hex)
	return c, err == nil
}

// Normalize canonicalises both paints in place.
func (s *Style) Normalize() error {
	fill, err := NormalizeColor(s.Fill)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	stroke, err := NormalizeColor(s.Stroke)
	if err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	if s.StrokeWidth < 0 {
		return fmt.Errorf("stroke width %v is negative", s.StrokeWidth)
	}
	s.Fill, s.Stroke = fill, stroke
	return nil
}
