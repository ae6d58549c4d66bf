// Package colour provides the colour-space conversions behind the palette engine:
// hex parsing, RGB/HSL conversion, WCAG luminance and hover-shade darkening.
package colour

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// hexPattern is the permissive 6-digit form accepted by HexToRGB (hash optional).
	hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

	// validHexPattern gates every string before it is treated as a colour.
	validHexPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// String returns the RGB colour as "r, g, b", the form Bootstrap expects
// in its --bs-*-rgb companion properties.
func (rgb RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", rgb.R, rgb.G, rgb.B)
}

// ColorFormatError reports a string that is not a hex colour.
type ColorFormatError struct {
	Value string
}

func (e *ColorFormatError) Error() string {
	return fmt.Sprintf("invalid hex colour %q (expected #rgb or #rrggbb)", e.Value)
}

// HexToRGB converts a 6-digit hex colour to RGB. The leading '#' is optional.
// Anything else, shorthand included, yields black rather than an error; use
// ParseHex when malformed input must be reported.
func HexToRGB(hex string) RGB {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}
	}
	return RGB{R: parseByte(m[1]), G: parseByte(m[2]), B: parseByte(m[3])}
}

// ParseHex strictly parses "#rgb", "#rrggbb", "rgb" or "rrggbb".
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	canonical, ok := Canonical(s)
	if !ok {
		return RGB{}, &ColorFormatError{Value: hex}
	}
	return HexToRGB(canonical), nil
}

// IsValidHex reports whether s is a 3- or 6-digit hex colour with a leading '#'.
func IsValidHex(s string) bool {
	return validHexPattern.MatchString(s)
}

// Canonical returns s in #rrggbb lowercase form, expanding #rgb shorthand.
// The second return value is false when s is not a valid hex colour.
func Canonical(s string) (string, bool) {
	if !IsValidHex(s) {
		return "", false
	}
	digits := strings.ToLower(s[1:])
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	return "#" + digits, true
}

// RGBString returns the "r, g, b" companion value of a hex colour.
func RGBString(hex string) string {
	return HexToRGB(hex).String()
}

// parseByte converts a two-character hex string to a byte.
// Callers only pass strings already matched by hexPattern.
func parseByte(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8) //nolint:errcheck
	return uint8(v)
}
