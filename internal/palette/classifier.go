package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/bstheme/internal/colour"
)

// ErrNoValidColors is returned when an import contains no usable hex colour.
var ErrNoValidColors = errors.New("no valid hex codes found")

// ParseError reports import text that looked like a JSON array but could not
// be decoded as one.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid format, use a JSON array or comma-separated hex codes: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var listSeparator = regexp.MustCompile(`[\n,]+`)

// ParseImport extracts hex colours from pasted text. Text starting with '['
// is decoded as a JSON array of strings; anything else is split on commas and
// newlines. Tokens missing a leading '#' get one, invalid tokens are dropped,
// and survivors are returned as canonical lowercase #rrggbb in input order.
func ParseImport(raw string) ([]string, error) {
	var tokens []string
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
			return nil, &ParseError{Err: err}
		}
	} else {
		for _, t := range listSeparator.Split(raw, -1) {
			if t = strings.TrimSpace(t); t != "" {
				tokens = append(tokens, t)
			}
		}
	}

	return Normalise(tokens)
}

// Normalise prefixes, validates, and canonicalises candidate tokens. It fails
// with ErrNoValidColors when nothing survives.
func Normalise(tokens []string) ([]string, error) {
	valid := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		if hex, ok := colour.Canonical(t); ok {
			valid = append(valid, hex)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoValidColors
	}
	return valid, nil
}

// HueRange is an inclusive band of hue degrees. A wrapping range crosses 0,
// so Wrapping(330, 20) holds 330..359 and 0..20.
type HueRange struct {
	Min, Max int
	Wraps    bool
}

// Normal returns a range with min <= max.
func Normal(minHue, maxHue int) HueRange {
	return HueRange{Min: minHue, Max: maxHue}
}

// Wrapping returns a range that crosses 0 degrees.
func Wrapping(minHue, maxHue int) HueRange {
	return HueRange{Min: minHue, Max: maxHue, Wraps: true}
}

// Contains reports whether hue falls inside the range.
func (r HueRange) Contains(hue int) bool {
	if r.Wraps {
		return hue >= r.Min || hue <= r.Max
	}
	return hue >= r.Min && hue <= r.Max
}

// Rule maps a hue range to the role it fills.
type Rule struct {
	Role  Role
	Range HueRange
}

// Rules are the semantic assignment rules in priority order. Ranges overlap at
// their edges; earlier rules win.
var Rules = []Rule{
	{Role: RoleDanger, Range: Wrapping(330, 20)},
	{Role: RoleSuccess, Range: Normal(70, 160)},
	{Role: RoleWarning, Range: Normal(30, 70)},
	{Role: RoleInfo, Range: Normal(180, 240)},
}

type candidate struct {
	hex string
	hsl colour.HSL
}

// Assign distributes hex colours over the brand roles of current. Each rule
// takes the first unused candidate in its hue range; leftovers fill primary
// and then secondary. Locked roles and neutral roles are never changed.
func Assign(hexes []string, current Palette, locked LockSet) Palette {
	candidates := make([]candidate, len(hexes))
	for i, h := range hexes {
		candidates[i] = candidate{hex: h, hsl: colour.HexToHSL(h)}
	}

	next := current
	used := make([]bool, len(candidates))

	for _, rule := range Rules {
		if locked.Locked(rule.Role) {
			continue
		}
		for i, c := range candidates {
			if used[i] || !rule.Range.Contains(c.hsl.H) {
				continue
			}
			next = next.With(rule.Role, c.hex)
			used[i] = true
			break
		}
	}

	var remaining []string
	for i, c := range candidates {
		if !used[i] {
			remaining = append(remaining, c.hex)
		}
	}
	if len(remaining) > 0 && !locked.Locked(RolePrimary) {
		next.Primary = remaining[0]
	}
	if len(remaining) > 1 && !locked.Locked(RoleSecondary) {
		next.Secondary = remaining[1]
	}

	return next
}

// Classify parses raw import text and assigns the colours to current. On
// error the returned palette is the zero value and current is unaffected.
func Classify(raw string, current Palette, locked LockSet) (Palette, error) {
	hexes, err := ParseImport(raw)
	if err != nil {
		return Palette{}, err
	}
	return Assign(hexes, current, locked), nil
}
