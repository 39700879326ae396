// Package core provides the colour and face value types shared by the
// renderer packages. It has no dependencies on the other renderer packages
// so that the registry, the coalescer and the backends can all import it.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is either the terminal/canvas default colour or an explicit
// 8-bit-per-channel RGB triple.
type Color struct {
	R, G, B uint8
	// Default indicates this is the renderer's default colour.
	// R, G and B are always zero when Default is set.
	Default bool
}

// ColorDefault represents the renderer's default colour.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0}
	ColorYellow  = Color{R: 255, G: 255, B: 0}
	ColorMagenta = Color{R: 255, G: 0, B: 255}
	ColorGray    = Color{R: 150, G: 150, B: 150}
)

// ColorFromRGB creates an explicit colour from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex creates a colour from a hex string.
// Supports formats: "#RGB", "#RRGGBB", "RGB", "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// ParseColor parses a theme colour value: "default" (or the empty string)
// selects the default colour, anything else must be a hex triple.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "default") {
		return ColorDefault, nil
	}
	return ColorFromHex(s)
}

// IsDefault returns true if this is the default colour.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Face is a foreground/background colour pair describing how a character
// should be drawn. Faces are values; equality is structural.
type Face struct {
	Foreground Color
	Background Color
}

// DefaultFace draws with the renderer's default colours.
var DefaultFace = Face{Foreground: ColorDefault, Background: ColorDefault}

// NewFace creates a face from a foreground and background colour.
func NewFace(fg, bg Color) Face {
	return Face{Foreground: fg, Background: bg}
}

// Fg creates a face with an explicit foreground on the default background.
func Fg(fg Color) Face {
	return Face{Foreground: fg, Background: ColorDefault}
}

// IsDefault returns true if both colours are the default colour.
func (f Face) IsDefault() bool {
	return f.Foreground.Default && f.Background.Default
}

// String returns a string representation of the face.
func (f Face) String() string {
	return f.Foreground.String() + "/" + f.Background.String()
}
