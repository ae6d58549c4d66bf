package colour

import (
	"fmt"
	"math"
)

// HSL is a colour in integer HSL form: hue in degrees [0,360),
// saturation and lightness in percent [0,100].
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String returns the HSL value in CSS notation.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// HexToHSL converts a hex colour to rounded HSL.
// Malformed input converts as black (see HexToRGB).
func HexToHSL(hex string) HSL {
	return RGBToHSL(HexToRGB(hex))
}

// RGBToHSL converts RGB to rounded HSL. Achromatic colours have hue 0.
func RGBToHSL(rgb RGB) HSL {
	h, s, l := rgbToHSL(rgb)
	hue := int(math.Round(h)) % 360
	return HSL{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// rgbToHSL converts RGB to HSL colour space.
// Returns hue (0-360), saturation (0-1), lightness (0-1).
func rgbToHSL(rgb RGB) (h, s, l float64) {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l = (maxVal + minVal) / 2.0

	if delta == 0 {
		return 0, 0, l
	}

	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	h *= 60
	return h, s, l
}

// HSLToHex converts HSL to a lowercase #rrggbb string.
// h is in degrees and may be any real value; s and l are percentages.
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// HSLToRGB converts HSL to RGB using the chroma form of the transform,
// f(n) = l - a*max(-1, min(k-3, 9-k, 1)) with k = (n + h/30) mod 12.
func HSLToRGB(h, s, l float64) RGB {
	l = clamp01(l / 100)
	s = clamp01(s / 100)
	a := s * math.Min(l, 1-l)

	channel := func(n float64) uint8 {
		k := math.Mod(n+h/30, 12)
		if k < 0 {
			k += 12
		}
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return uint8(math.Round(255 * clamp01(v)))
	}

	return RGB{R: channel(0), G: channel(8), B: channel(4)}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
