package game

// Cue is an audio trigger emitted by the simulation.
type Cue int

const (
	CueCharge Cue = iota
	CueLaunch
	CueHit
	CueBreak
	CueLevelUp
	CueGameOver
	CueCount
)

func (c Cue) String() string {
	switch c {
	case CueCharge:
		return "charge"
	case CueLaunch:
		return "launch"
	case CueHit:
		return "hit"
	case CueBreak:
		return "break"
	case CueLevelUp:
		return "level_up"
	case CueGameOver:
		return "game_over"
	}
	return "unknown"
}

// CueSink receives audio triggers. Power is only meaningful for CueCharge and
// CueLaunch.
type CueSink interface {
	Play(c Cue, power int)
}

type nopSink struct{}

func (nopSink) Play(Cue, int) {}
