package swen

import "image/color"

// Color is an 8-bit-per-channel RGBA color.
// Alpha 255 is fully opaque.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// IsOpaque reports whether the color has full alpha.
func (c Color) IsOpaque() bool {
	return c.A == 255
}

// NRGBA converts the color to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
