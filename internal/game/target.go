package game

import (
	"math"
	"math/rand"
)

// TargetKind decides a bottle's toughness and score.
type TargetKind int

const (
	KindNormal TargetKind = iota
	KindReinforced
	KindArmored
)

func (k TargetKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindReinforced:
		return "reinforced"
	case KindArmored:
		return "armored"
	}
	return "unknown"
}

// Health is the number of hits needed to break a bottle of this kind.
func (k TargetKind) Health() int {
	switch k {
	case KindReinforced:
		return 2
	case KindArmored:
		return 3
	}
	return 1
}

// Value is the score awarded when a bottle of this kind breaks.
func (k TargetKind) Value() int {
	return 10 * k.Health()
}

// Tint is the cosmetic colour of a bottle.
type Tint int

const (
	TintGreen Tint = iota
	TintBlue
	TintRed
	TintGold
	tintCount
)

// Wobble is a purely visual sway; it never moves the hit box.
type Wobble struct {
	Angle     float64
	Speed     float64
	Amplitude float64
	Rotation  float64
}

const sparkleLife = 50

// Sparkle is a glint drifting up a standing bottle, relative to its top-left.
type Sparkle struct {
	X, Y float64
	Size float64
	Life int
}

// Target is a breakable bottle. Health > 0 exactly when Broken is false.
type Target struct {
	X, Y     float64
	W, H     float64
	Kind     TargetKind
	Tint     Tint
	Health   int
	Broken   bool
	Wobble   Wobble
	Sparkles []Sparkle
}

// NewTarget creates a standing bottle with full health for its kind.
func NewTarget(x, y, w, h float64, kind TargetKind, tint Tint) Target {
	return Target{
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
		Kind:   kind,
		Tint:   tint,
		Health: kind.Health(),
		Wobble: Wobble{Speed: 0.02, Amplitude: 0.1},
	}
}

// ApplyHit takes one point of health. It returns true only on the hit that
// breaks the bottle, so scoring and bursts fire once per target.
func (t *Target) ApplyHit() bool {
	if t.Broken {
		return false
	}
	if t.Health > 0 {
		t.Health--
	}
	if t.Health <= 0 {
		t.Health = 0
		t.Broken = true
		t.Sparkles = nil
		return true
	}
	return false
}

func (t *Target) IsBroken() bool { return t.Broken }

// Center returns the middle of the hit box.
func (t *Target) Center() Point {
	return Point{X: t.X + t.W/2, Y: t.Y + t.H/2}
}

// Update advances the cosmetic wobble and sparkles of a standing bottle.
func (t *Target) Update(rng *rand.Rand, sparkleChance float64) {
	if t.Broken {
		return
	}
	t.Wobble.Angle += t.Wobble.Speed
	t.Wobble.Rotation = math.Sin(t.Wobble.Angle) * t.Wobble.Amplitude

	if rng != nil && rng.Float64() < sparkleChance {
		t.Sparkles = append(t.Sparkles, Sparkle{
			X:    rng.Float64() * t.W,
			Y:    rng.Float64() * t.H,
			Size: rng.Float64()*2 + 1,
			Life: sparkleLife,
		})
	}

	kept := t.Sparkles[:0]
	for _, s := range t.Sparkles {
		s.Life--
		s.Y -= 0.5
		if s.Life > 0 {
			kept = append(kept, s)
		}
	}
	t.Sparkles = kept
}
