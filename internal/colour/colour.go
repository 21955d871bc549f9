// Package colour provides the colour-science primitives used by the palette
// optimiser: sRGB and linear-RGB conversion, perceptual distance, WCAG
// contrast and colour-vision-deficiency simulation.
package colour

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB-encoded colour with float32 channels nominally in [0, 1].
// Channels may leave that range during intermediate linear-space maths but
// anything stored in palette state is clamped first.
type Color struct {
	R float32
	G float32
	B float32
}

// LinearColor is a Color with the sRGB transfer function removed.
type LinearColor struct {
	R float32
	G float32
	B float32
}

// New returns a colour from its three sRGB channels.
func New(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses a "#rrggbb" or "#rgb" string. The leading hash is optional.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) == 4 {
		hex = "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
	}
	if len(hex) != 7 {
		return Color{}, fmt.Errorf("invalid hex colour %q: expected #rrggbb or #rgb", s)
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// MustParseHex is like ParseHex but panics on malformed input. It is meant for
// literal colour tables.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the colour as a lowercase "#rrggbb" string, clamping first.
func (c Color) Hex() string {
	return c.Clamped().toColorful().Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// RGB255 returns the clamped colour as 8-bit channels.
func (c Color) RGB255() (r, g, b uint8) {
	return c.Clamped().toColorful().RGB255()
}

// MarshalText encodes the colour as its hex string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes a hex string.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Clamped returns the colour with every channel clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// InGamut reports whether every channel lies within [0, 1].
func (c Color) InGamut() bool {
	return inUnit(c.R) && inUnit(c.G) && inUnit(c.B)
}

// Linear removes the sRGB transfer function.
func (c Color) Linear() LinearColor {
	r, g, b := c.toColorful().LinearRgb()
	return LinearColor{R: float32(r), G: float32(g), B: float32(b)}
}

// Encode applies the sRGB transfer function. Out-of-range input is not clamped.
func (l LinearColor) Encode() Color {
	return fromColorful(colorful.LinearRgb(float64(l.R), float64(l.G), float64(l.B)))
}

func (c Color) channels() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func fromChannels(ch [3]float32) Color {
	return Color{R: ch[0], G: ch[1], B: ch[2]}
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

func inUnit(v float32) bool {
	return v >= 0 && v <= 1
}

// HexList formats colours as hex strings.
func HexList(colors []Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}
