package imaging

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHexColor is returned by ParseHexColor for malformed input.
var ErrInvalidHexColor = errors.New("invalid hex color")

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component is carried through every operation but never takes
// part in color comparisons:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// EqualWithTolerance reports whether a and b are the same color within
// tolerance.
//
// Each of the R, G and B channels is compared independently; the colors are
// equal when every channel's absolute difference is at most tolerance. Alpha
// is ignored, so a template with transparent marker pixels still matches an
// opaque target.
//
// A tolerance of 0 requires identical RGB channels; 255 accepts any pair.
func EqualWithTolerance(a, b RGBAColor, tolerance uint8) bool {
	t := int(tolerance)
	return channelDelta(a.R, b.R) <= t &&
		channelDelta(a.G, b.G) <= t &&
		channelDelta(a.B, b.B) <= t
}

// channelDelta widens both channels before subtracting so 0-255 never wraps.
func channelDelta(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// Hex returns the color as "#RRGGBB" (alpha excluded).
func (c RGBAColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGBAColor) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// NRGBA converts c to the standard library's non-premultiplied color type.
func (c RGBAColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color to 8-bit non-premultiplied components.
func FromColor(c color.Color) RGBAColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBAColor{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional. Alpha defaults to 255 when not given.
func ParseHexColor(s string) (RGBAColor, error) {
	body := strings.TrimPrefix(strings.TrimSpace(s), "#")

	alpha := uint8(255)
	switch len(body) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(body[6:], 16, 8)
		if err != nil {
			return RGBAColor{}, fmt.Errorf("%w: %q", ErrInvalidHexColor, s)
		}
		alpha = uint8(a)
		body = body[:6]
	default:
		return RGBAColor{}, fmt.Errorf("%w: %q has bad length", ErrInvalidHexColor, s)
	}

	// Sscanf inside colorful.Hex stops early on some non-hex runes, so the
	// digits are checked up front.
	if _, err := strconv.ParseUint(body, 16, 32); err != nil {
		return RGBAColor{}, fmt.Errorf("%w: %q", ErrInvalidHexColor, s)
	}

	c, err := colorful.Hex("#" + body)
	if err != nil {
		return RGBAColor{}, fmt.Errorf("%w: %q: %v", ErrInvalidHexColor, s, err)
	}
	r, g, b := c.RGB255()
	return RGBAColor{R: r, G: g, B: b, A: alpha}, nil
}
