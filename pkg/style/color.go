package style

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Brightness range used to shade the locations of one type.
const (
	minValue = 0.6
	maxValue = 1.0
)

// ValidHex reports whether s is a "#rrggbb" color: a '#' followed by
// exactly six hex digits.
func ValidHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	return strings.IndexFunc(s[1:], func(r rune) bool {
		return !('0' <= r && r <= '9' || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F')
	}) < 0
}

// NormalizeHex lower-cases a hex color.
func NormalizeHex(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Shade returns the color for the i-th of n locations of a type whose base
// color is base. Hue and saturation come from base; brightness rises
// linearly from 60% at i=0 to 100% at i=n-1. A single location gets 60%.
// An unparsable base is returned unchanged.
func Shade(base string, i, n int) string {
	c, err := colorful.Hex(base)
	if err != nil {
		return base
	}
	h, s, _ := c.Hsv()
	span := max(1, n-1)
	v := minValue + (maxValue-minValue)*float64(i)/float64(span)
	return colorful.Hsv(h, s, v).Clamped().Hex()
}
