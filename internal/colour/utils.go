package colour

import "math"

// HoverShade is the fraction by which brand colours are darkened for their
// hover and active states.
const HoverShade = 0.10

// Luminance calculates the relative luminance of a hex colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(hex string) float64 {
	rgb := HexToRGB(hex)

	rf := gammaCorrect(float64(rgb.R) / 255.0)
	gf := gammaCorrect(float64(rgb.G) / 255.0)
	bf := gammaCorrect(float64(rgb.B) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Darken multiplies each channel by (1-amount), flooring and clamping to [0,255].
// An amount of 0 returns the colour unchanged and 1 returns black.
func Darken(hex string, amount float64) string {
	rgb := HexToRGB(hex)
	scale := func(c uint8) uint8 {
		v := math.Floor(float64(c) * (1 - amount))
		return uint8(math.Max(0, math.Min(255, v)))
	}
	return RGB{R: scale(rgb.R), G: scale(rgb.G), B: scale(rgb.B)}.Hex()
}
