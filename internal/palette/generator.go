package palette

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"

	"github.com/jmylchreest/bstheme/internal/colour"
)

// complementChance is the probability that secondary sits opposite the base
// hue rather than at the split-complementary offset.
const complementChance = 0.4

// Generator produces colour-theory guided palettes from a random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *mathrand.Rand
}

// NewGenerator creates a Generator drawing from rng.
func NewGenerator(rng *mathrand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeededGenerator creates a reproducible Generator: the same seed always
// yields the same sequence of palettes.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(SeededRand(seed))
}

// SeededRand returns a ChaCha8-backed source whose sequence depends only on seed.
func SeededRand(seed uint64) *mathrand.Rand {
	var seedArray [32]byte
	binary.LittleEndian.PutUint64(seedArray[:8], seed)
	return mathrand.New(mathrand.NewChaCha8(seedArray))
}

// RandomSeed returns a seed from crypto/rand, falling back to 0 if the
// system source is unavailable.
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Generate returns a new palette. Locked roles are copied from current; every
// other role is resampled around a base hue taken from the locked primary or
// drawn at random.
func (g *Generator) Generate(current Palette, locked LockSet) Palette {
	next := current

	var base int
	if locked.Locked(RolePrimary) {
		base = colour.HexToHSL(current.Canonical().Primary).H
	} else {
		base = g.rng.IntN(360)
		next.Primary = g.hsl(base, g.between(60, 90), g.between(45, 60))
	}

	if !locked.Locked(RoleSecondary) {
		shift := 210
		if g.rng.Float64() < complementChance {
			shift = 180
		}
		next.Secondary = g.hsl((base+shift)%360, g.between(10, 30), g.between(50, 70))
	}

	if !locked.Locked(RoleInfo) {
		next.Info = g.hsl(g.between(180, 220), g.between(70, 90), g.between(50, 60))
	}

	if !locked.Locked(RoleSuccess) {
		next.Success = g.hsl(g.between(130, 160), g.between(60, 85), g.between(40, 50))
	}

	if !locked.Locked(RoleWarning) {
		next.Warning = g.hsl(g.between(35, 55), g.between(80, 100), g.between(50, 60))
	}

	if !locked.Locked(RoleDanger) {
		h := g.between(345, 375)
		if h > 360 {
			h -= 360
		}
		next.Danger = g.hsl(h, g.between(70, 90), g.between(50, 60))
	}

	if !locked.Locked(RoleLight) {
		next.Light = g.hsl(base, g.between(5, 20), g.between(94, 98))
	}

	if !locked.Locked(RoleDark) {
		next.Dark = g.hsl(base, g.between(10, 25), g.between(15, 25))
	}

	if !locked.Locked(RoleBodyBg) {
		next.BodyBg = "#ffffff"
	}

	if !locked.Locked(RoleBodyColor) {
		next.BodyColor = g.hsl(base, g.between(5, 15), g.between(15, 25))
	}

	return next
}

// between draws a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) hsl(h, s, l int) string {
	return colour.HSLToHex(float64(h), float64(s), float64(l))
}
