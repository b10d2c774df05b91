package game

import "math/rand"

// levelPick is one entry of the per-level kind table.
type levelPick struct {
	kind TargetKind
	tint Tint
}

var (
	earlyPicks = []levelPick{
		{KindNormal, TintGreen},
		{KindNormal, TintBlue},
		{KindReinforced, TintRed},
	}
	latePicks = []levelPick{
		{KindNormal, TintGreen},
		{KindNormal, TintBlue},
		{KindReinforced, TintRed},
		{KindArmored, TintGold},
	}
)

// armoredFromLevel is the first level where armored bottles appear.
const armoredFromLevel = 4

// TargetCount returns how many bottles a level starts with. Never less than one.
func TargetCount(cfg Config, level int) int {
	n := cfg.BaseTargets + level
	if n < 1 {
		n = 1
	}
	return n
}

// ShotsForLevel returns the shots granted when a level starts.
func ShotsForLevel(cfg Config, level int) int {
	if level <= 1 {
		return cfg.InitialShots
	}
	return cfg.ShotsBase + level
}

// GenerateLevel lays out a fresh row of bottles. Bottles alternate between two
// heights; spacing is fixed unless the row would run off the right edge, in
// which case it tightens so the last bottle still fits.
func GenerateLevel(cfg Config, level int, rng *rand.Rand) []Target {
	n := TargetCount(cfg, level)
	picks := earlyPicks
	if level >= armoredFromLevel {
		picks = latePicks
	}

	spacing := cfg.TargetSpacing
	if n > 1 {
		room := float64(cfg.Width) - cfg.TargetWidth - cfg.TargetStartX
		if fit := room / float64(n-1); fit < spacing && fit > 0 {
			spacing = fit
		}
	}

	baseY := float64(cfg.Height) - cfg.TargetRowOffset
	out := make([]Target, 0, n)
	for i := 0; i < n; i++ {
		pick := picks[rng.Intn(len(picks))]
		x := cfg.TargetStartX + float64(i)*spacing
		y := baseY + float64(i%2)*cfg.TargetRowStagger
		out = append(out, NewTarget(x, y, cfg.TargetWidth, cfg.TargetHeight, pick.kind, pick.tint))
	}
	return out
}
