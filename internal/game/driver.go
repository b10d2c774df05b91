package game

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// chargeCueStep is how much power accumulates between charge cues.
const chargeCueStep = 20

// Scheduler is the host's per-frame callback, e.g. an animation-frame hook.
// RequestFrame must call fn once, later, on the game-loop goroutine.
type Scheduler interface {
	RequestFrame(fn func())
}

// HUD is a read-only snapshot for the host's overlay.
type HUD struct {
	Score    int
	Level    int
	Shots    int
	Power    int
	Charging bool
	GameOver bool
	Muted    bool
	Standing int
	Phase    Phase
}

// session is everything a reset throws away.
type session struct {
	round Round
	world World
	input InputQueue
	feed  Feed
}

// Driver runs the simulation one tick at a time. It owns all mutable state
// and is not safe for concurrent use; the host calls it from one goroutine.
type Driver struct {
	cfg    Config
	st     session
	rng    *rand.Rand
	events *EventLog
	sink   CueSink
	log    *slog.Logger
	muted  bool
	tick   int
	frame  []Intent

	sched  Scheduler
	epoch  uint64
	halted bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithCueSink routes audio triggers to s.
func WithCueSink(s CueSink) Option {
	return func(d *Driver) {
		if s != nil {
			d.sink = s
		}
	}
}

// WithEventLog records gameplay events into el.
func WithEventLog(el *EventLog) Option {
	return func(d *Driver) {
		if el != nil {
			d.events = el
		}
	}
}

// WithMuted sets the initial mute state.
func WithMuted(m bool) Option {
	return func(d *Driver) { d.muted = m }
}

// NewDriver validates cfg and builds a driver holding level 1.
func NewDriver(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)), // #nosec G404 -- game only
		events: NewEventLog(false),
		sink:   nopSink{},
		log:    slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(d)
	}
	d.st = d.newSession()
	d.frame = composeFrame(d.cfg, &d.st.round, &d.st.world, &d.st.feed)
	return d, nil
}

func (d *Driver) newSession() session {
	return session{
		round: NewRound(d.cfg),
		world: World{Targets: GenerateLevel(d.cfg, 1, d.rng)},
	}
}

// Config returns the driver's settings.
func (d *Driver) Config() Config { return d.cfg }

// Input returns the queue the host pushes pointer events into.
func (d *Driver) Input() *InputQueue { return &d.st.input }

// Events returns the gameplay event log.
func (d *Driver) Events() *EventLog { return d.events }

// Frame returns the draw intents produced by the last tick.
func (d *Driver) Frame() []Intent { return d.frame }

// TickCount returns the number of ticks run since the driver was created.
func (d *Driver) TickCount() int { return d.tick }

// Round returns a copy of the round state.
func (d *Driver) Round() Round { return d.st.round }

// Targets returns a copy of the current bottle batch.
func (d *Driver) Targets() []Target {
	out := make([]Target, len(d.st.world.Targets))
	copy(out, d.st.world.Targets)
	return out
}

// Snapshot returns the values the HUD shows.
func (d *Driver) Snapshot() HUD {
	r := &d.st.round
	return HUD{
		Score:    r.Score,
		Level:    r.Level,
		Shots:    r.Shots,
		Power:    r.Power,
		Charging: r.Charging,
		GameOver: r.GameOver(),
		Muted:    d.muted,
		Standing: d.st.world.Standing(),
		Phase:    r.Phase,
	}
}

// SetMuted gates audio cues. It never affects the simulation.
func (d *Driver) SetMuted(m bool) { d.muted = m }

// Muted reports whether cues are suppressed.
func (d *Driver) Muted() bool { return d.muted }

// Tick advances the simulation one step and reports whether another tick
// should be scheduled. A finished game does nothing until Reset.
func (d *Driver) Tick() bool {
	if d.st.round.GameOver() {
		d.st.input.Drain()
		return false
	}
	d.tick++
	cfg := d.cfg
	st := &d.st

	// 1. INPUT: buffered pointer events, then one tick of charge.
	d.applyInput()
	before := st.round.Power
	st.round.Charge(cfg)
	if st.round.Charging && st.round.Power/chargeCueStep != before/chargeCueStep {
		d.cue(CueCharge, st.round.Power)
	}
	if st.round.Charging {
		d.events.AddVerbose(d.tick, CatShot, "charge", fmt.Sprintf("power=%d", st.round.Power), float64(st.round.Power))
	}

	// 2. PHYSICS.
	st.world.Advance(cfg, d.rng)

	// 3. COLLISIONS.
	d.resolveHits()

	// 4. PRUNE.
	st.world.Prune(float64(cfg.Width), float64(cfg.Height))
	st.feed.Age()

	// 5. DRAW.
	d.frame = composeFrame(cfg, &st.round, &st.world, &st.feed)

	// 6. ROUND STATE.
	switch st.round.Evaluate(cfg, &st.world, d.regen) {
	case OutcomeLevelCleared:
		d.events.Add(d.tick, CatRound, "level", fmt.Sprintf("level %d shots %d", st.round.Level, st.round.Shots), float64(st.round.Level))
		d.log.Info("level cleared", "level", st.round.Level, "score", st.round.Score, "shots", st.round.Shots)
		st.feed.Add(fmt.Sprintf("LEVEL %d", st.round.Level), float64(cfg.Width)/2-24, float64(cfg.Height)/3)
		d.cue(CueLevelUp, 0)
	case OutcomeGameOver:
		d.events.Add(d.tick, CatRound, "gameover", fmt.Sprintf("score %d level %d", st.round.Score, st.round.Level), float64(st.round.Score))
		d.log.Info("game over", "level", st.round.Level, "score", st.round.Score, "standing", st.world.Standing())
		d.cue(CueGameOver, 0)
	}

	// 7. SCHEDULE.
	return !st.round.GameOver()
}

// RunTicks calls Tick up to n times, stopping early when the game ends.
// It returns the number of ticks actually run.
func (d *Driver) RunTicks(n int) int {
	start := d.tick
	for i := 0; i < n; i++ {
		if !d.Tick() {
			break
		}
	}
	return d.tick - start
}

func (d *Driver) applyInput() {
	st := &d.st
	w, h := float64(d.cfg.Width), float64(d.cfg.Height)
	for _, ev := range st.input.Drain() {
		p := Sanitize(ev.X, ev.Y, w, h)
		switch ev.Kind {
		case PointerDown:
			st.round.PointerDown(p)
		case PointerMove:
			st.round.PointerMove(p)
		case PointerUp:
			power, ok := st.round.PointerUp(p)
			if !ok {
				continue
			}
			proj := Launch(d.cfg, power, p)
			st.world.Projectiles = append(st.world.Projectiles, proj)
			d.events.Add(d.tick, CatShot, "launch",
				fmt.Sprintf("power=%d aim=(%.0f,%.0f) shots_left=%d", power, p.X, p.Y, st.round.Shots), float64(power))
			d.log.Debug("launch", "power", power, "x", p.X, "y", p.Y, "shots", st.round.Shots)
			d.cue(CueLaunch, power)
		}
	}
}

func (d *Driver) resolveHits() {
	st := &d.st
	kept, hits := ResolveHits(st.world.Projectiles, st.world.Targets)
	st.world.Projectiles = kept
	for _, h := range hits {
		t := &st.world.Targets[h.Target]
		if !h.JustBroken {
			d.events.Add(d.tick, CatHit, "damage", fmt.Sprintf("%s #%d health=%d", t.Kind, h.Target, t.Health), float64(t.Health))
			d.cue(CueHit, 0)
			continue
		}
		value := t.Kind.Value()
		st.round.AddScore(value)
		c := t.Center()
		burst := SpawnBurst(d.rng, c.X, c.Y, tintColors[t.Tint%tintCount][0], d.cfg.BurstCount, d.cfg.BurstSpeed)
		st.world.Particles = append(st.world.Particles, burst...)
		st.feed.Add(fmt.Sprintf("+%d", value), c.X-8, t.Y)
		d.events.Add(d.tick, CatHit, "break", fmt.Sprintf("%s #%d +%d", t.Kind, h.Target, value), float64(value))
		d.log.Debug("bottle broken", "kind", t.Kind.String(), "index", h.Target, "value", value, "score", st.round.Score)
		d.cue(CueBreak, 0)
	}
}

func (d *Driver) regen(level int) []Target {
	return GenerateLevel(d.cfg, level, d.rng)
}

func (d *Driver) cue(c Cue, power int) {
	if d.muted {
		return
	}
	d.sink.Play(c, power)
}

// Reset discards the round and every entity and starts again at level 1.
// Frames scheduled before the reset become no-ops.
func (d *Driver) Reset() {
	prev := d.st.round
	d.epoch++
	d.st = d.newSession()
	d.frame = composeFrame(d.cfg, &d.st.round, &d.st.world, &d.st.feed)
	d.events.Add(d.tick, CatRound, "reset", fmt.Sprintf("from level %d score %d", prev.Level, prev.Score), float64(prev.Score))
	d.log.Info("reset", "prev_level", prev.Level, "prev_score", prev.Score)
	if d.sched != nil {
		d.schedule()
	}
}

// Run hands the loop to the host scheduler. Each frame runs one tick and
// requests the next until the game ends; Reset restarts it.
func (d *Driver) Run(s Scheduler) {
	d.sched = s
	d.schedule()
}

// Halted reports whether the loop stopped scheduling because the game ended.
func (d *Driver) Halted() bool { return d.halted }

func (d *Driver) schedule() {
	epoch := d.epoch
	d.halted = false
	d.sched.RequestFrame(func() {
		if epoch != d.epoch {
			return
		}
		if d.Tick() {
			d.schedule()
			return
		}
		d.halted = true
	})
}
