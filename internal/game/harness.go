package game

import (
	"fmt"
	"log/slog"
)

// TestSim is a headless harness around a Driver, used by tests and the
// headless report. It supports deterministic seeding, hand-placed bottles and
// scripted shots.
type TestSim struct {
	Driver *Driver
	Log    *EventLog
	Cues   *CueRecorder

	cfg     Config
	targets []Target
	shots   int
	level   int
	score   int
	muted   bool
	logger  *slog.Logger
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // config, seed, verbose: applied before the driver exists
	simOptState                       // targets, shots, level, score: applied to the built driver
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Seed = seed
	}}
}

// WithConfig edits the configuration before the driver is built.
func WithConfig(edit func(*Config)) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		edit(&ts.cfg)
	}}
}

// WithVerbose enables per-tick charge logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.Log = NewEventLog(v)
	}}
}

// WithSimMuted starts the driver muted.
func WithSimMuted(m bool) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.muted = m
	}}
}

// WithSimLogger attaches a structured logger to the driver.
func WithSimLogger(l *slog.Logger) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.logger = l
	}}
}

// WithTargets replaces the generated level 1 batch.
func WithTargets(targets ...Target) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.targets = append([]Target(nil), targets...)
	}}
}

// WithShots overrides the shots remaining.
func WithShots(n int) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.shots = n
	}}
}

// WithLevel overrides the current level.
func WithLevel(level int) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.level = level
	}}
}

// WithScore overrides the starting score.
func WithScore(score int) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.score = score
	}}
}

// NewTestSim constructs a TestSim from the given options in two passes:
//  1. Configuration (config edits, seed, verbose, logger)
//  2. Build the driver, then apply state overrides
//
// It panics if the resulting configuration is invalid.
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := DefaultConfig()
	cfg.Seed = 1
	ts := &TestSim{
		cfg:   cfg,
		Log:   NewEventLog(false),
		Cues:  &CueRecorder{},
		shots: -1,
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(ts)
		}
	}
	d, err := NewDriver(ts.cfg,
		WithEventLog(ts.Log),
		WithCueSink(ts.Cues),
		WithMuted(ts.muted),
		WithLogger(ts.logger))
	if err != nil {
		panic(fmt.Sprintf("testsim: %v", err))
	}
	ts.Driver = d
	for _, o := range opts {
		if o.kind == simOptState {
			o.fn(ts)
		}
	}
	st := &d.st
	if ts.targets != nil {
		st.world.Targets = ts.targets
	}
	if ts.level > 0 {
		st.round.Level = ts.level
	}
	if ts.shots >= 0 {
		st.round.Shots = ts.shots
	}
	if ts.score > 0 {
		st.round.Score = ts.score
	}
	d.frame = composeFrame(d.cfg, &st.round, &st.world, &st.feed)
	return ts
}

// World exposes the live collections for assertions and setup.
func (ts *TestSim) World() *World { return &ts.Driver.st.world }

// Round exposes the live round state for assertions and setup.
func (ts *TestSim) Round() *Round { return &ts.Driver.st.round }

// RunTicks advances the simulation n ticks and returns how many ran.
func (ts *TestSim) RunTicks(n int) int {
	return ts.Driver.RunTicks(n)
}

// RunUntil advances up to maxTicks, stopping early if predicate returns true.
// Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		more := ts.Driver.Tick()
		if predicate(ts) {
			return ts.Driver.TickCount()
		}
		if !more {
			return -1
		}
	}
	return -1
}

// Shoot presses at pointer, holds until power has accumulated and queues the
// release for the next tick. It returns the number of ticks spent charging.
func (ts *TestSim) Shoot(pointer Point, power int) int {
	step := ts.cfg.PowerStep
	if step <= 0 {
		step = 1
	}
	hold := power / step
	in := ts.Driver.Input()
	in.Down(pointer.X, pointer.Y)
	if hold == 0 {
		in.Up(pointer.X, pointer.Y)
		return 0
	}
	ran := ts.Driver.RunTicks(hold)
	in.Up(pointer.X, pointer.Y)
	return ran
}

// Fire executes a planned shot and runs until it lands or the budget runs
// out. It returns the number of ticks run after the release.
func (ts *TestSim) Fire(s Shot) int {
	ts.Shoot(s.Pointer, s.Power)
	return ts.Driver.RunTicks(s.Ticks + 1)
}

// CueRecorder is a CueSink that remembers every cue in order.
type CueRecorder struct {
	Played []Cue
}

// Play records c.
func (r *CueRecorder) Play(c Cue, _ int) {
	r.Played = append(r.Played, c)
}

// Count returns how many times c was played.
func (r *CueRecorder) Count(c Cue) int {
	n := 0
	for _, p := range r.Played {
		if p == c {
			n++
		}
	}
	return n
}
