package timeblock

import (
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RandomColor returns a saturated mid-lightness color with a random hue, as a
// hex string.
func RandomColor() string {
	hue := float64(rand.IntN(360))
	return colorful.Hsl(hue, 0.7, 0.5).Hex()
}

// NormalizeColor converts any hex color to lowercase #rrggbb form. Values
// that do not parse are returned unchanged.
func NormalizeColor(s string) string {
	c, err := colorful.Hex(s)
	if err != nil {
		return s
	}
	return c.Hex()
}
