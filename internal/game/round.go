package game

import "fmt"

// Phase is the round-level state. PhaseLevelCleared only exists inside a
// tick: Evaluate regenerates the level and returns to PhaseInProgress before
// the tick ends.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseLevelCleared
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in_progress"
	case PhaseLevelCleared:
		return "level_cleared"
	case PhaseGameOver:
		return "game_over"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Outcome is what Evaluate decided at the end of a tick.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLevelCleared
	OutcomeGameOver
)

// Round is the single source of truth for scoring and progression.
// Charging with Power is a sub-state of PhaseInProgress.
type Round struct {
	Score    int
	Level    int
	Shots    int
	Power    int
	Charging bool
	Phase    Phase
	Pointer  Point // last known pointer position
}

// NewRound returns the documented initial state.
func NewRound(cfg Config) Round {
	return Round{
		Level:   1,
		Shots:   ShotsForLevel(cfg, 1),
		Phase:   PhaseInProgress,
		Pointer: Point{X: cfg.LaunchX, Y: cfg.LaunchY},
	}
}

// GameOver reports whether the round reached its terminal state.
func (r *Round) GameOver() bool { return r.Phase == PhaseGameOver }

// PointerDown starts charging when a shot is available.
func (r *Round) PointerDown(p Point) bool {
	r.Pointer = p
	if r.GameOver() || r.Shots <= 0 {
		return false
	}
	r.Charging = true
	r.Power = 0
	return true
}

// PointerMove tracks the aim.
func (r *Round) PointerMove(p Point) {
	r.Pointer = p
}

// Charge adds one tick of power while charging, capped at cfg.MaxPower.
func (r *Round) Charge(cfg Config) {
	if !r.Charging {
		return
	}
	r.Power += cfg.PowerStep
	if r.Power > cfg.MaxPower {
		r.Power = cfg.MaxPower
	}
}

// PointerUp releases a charged shot. It returns the accumulated power and true
// when a projectile should be launched. Power always resets on release.
func (r *Round) PointerUp(p Point) (int, bool) {
	r.Pointer = p
	if !r.Charging || r.GameOver() {
		return 0, false
	}
	power := r.Power
	r.Charging = false
	r.Power = 0
	if r.Shots <= 0 {
		r.Shots = 0
		return 0, false
	}
	r.Shots--
	return power, true
}

// AddScore adds a positive amount; the score never goes down within a round.
func (r *Round) AddScore(v int) {
	if v > 0 {
		r.Score += v
	}
}

// Evaluate applies the end-of-tick transitions. A cleared level advances and
// regenerates w.Targets; running dry with bottles standing ends the game.
// The level check comes first, so the last shot breaking the last bottle
// always counts as a clear.
func (r *Round) Evaluate(cfg Config, w *World, regen func(level int) []Target) Outcome {
	if r.GameOver() {
		return OutcomeNone
	}
	if w.AllBroken() {
		r.Phase = PhaseLevelCleared
		r.Level++
		r.Shots = ShotsForLevel(cfg, r.Level)
		w.Targets = regen(r.Level)
		r.Phase = PhaseInProgress
		return OutcomeLevelCleared
	}
	if r.Shots <= 0 && len(w.Projectiles) == 0 {
		r.Shots = 0
		r.Charging = false
		r.Power = 0
		r.Phase = PhaseGameOver
		return OutcomeGameOver
	}
	return OutcomeNone
}
