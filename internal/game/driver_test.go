package game

import (
	"errors"
	"math"
	"testing"
)

// farTarget is a bottle well away from any test trajectory.
func farTarget() Target {
	return NewTarget(900, 20, 40, 80, KindNormal, TintGreen)
}

// dropInto places a motionless ball so that one tick of gravity leaves it
// inside tg.
func dropInto(tg Target) Projectile {
	return Projectile{Body: Body{X: tg.X + tg.W/2, Y: tg.Y + tg.H/2}, Radius: 5}
}

func TestNewDriver_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	if _, err := NewDriver(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.LaunchX = -1
	if _, err := NewDriver(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for launch point, got %v", err)
	}
}

func TestDriver_FortyFiveDegreeScenario(t *testing.T) {
	ts := NewTestSim(WithTargets(farTarget()))
	ts.Shoot(Point{X: 150, Y: 500}, 100)
	if r := ts.Round(); !r.Charging || r.Power != 100 {
		t.Fatalf("expected full charge before release, got %+v", *r)
	}
	ts.RunTicks(1)

	w := ts.World()
	if len(w.Projectiles) != 1 {
		t.Fatalf("expected one projectile, got %d", len(w.Projectiles))
	}
	p := w.Projectiles[0]
	wantVY := -50*math.Sin(math.Pi/4) + 0.5
	if math.Abs(p.VY-wantVY) > 1e-6 {
		t.Fatalf("vy=%.9f, want %.9f", p.VY, wantVY)
	}
	if math.Abs(p.X-(50+50*math.Cos(math.Pi/4))) > 1e-6 || math.Abs(p.Y-(550+wantVY)) > 1e-6 {
		t.Fatalf("pos=(%.9f,%.9f)", p.X, p.Y)
	}
	if r := ts.Round(); r.Shots != 9 || r.Power != 0 || r.Charging {
		t.Fatalf("after release: %+v", *r)
	}
	if !ts.Log.HasEntry(CatShot, "launch", "power=100") {
		t.Fatalf("launch not logged:\n%s", ts.Log.Dump())
	}
}

func TestDriver_VelocityYAccumulatesUntilRemoval(t *testing.T) {
	ts := NewTestSim(WithTargets(farTarget()))
	ts.Shoot(Point{X: 300, Y: 200}, 60)
	ts.RunTicks(1)
	prev := ts.World().Projectiles[0].VY
	for i := 0; i < 400 && len(ts.World().Projectiles) > 0; i++ {
		ts.RunTicks(1)
		if len(ts.World().Projectiles) == 0 {
			break
		}
		vy := ts.World().Projectiles[0].VY
		if math.Abs(vy-prev-0.5) > 1e-9 {
			t.Fatalf("tick %d: vy moved by %v", i, vy-prev)
		}
		prev = vy
	}
	if len(ts.World().Projectiles) != 0 {
		t.Fatal("projectile never left the field")
	}
}

func TestDriver_ReinforcedScoresOnce(t *testing.T) {
	bottle := NewTarget(300, 300, 40, 80, KindReinforced, TintRed)
	ts := NewTestSim(WithTargets(bottle, farTarget()), WithShots(5))
	w := ts.World()

	w.Projectiles = append(w.Projectiles, dropInto(bottle))
	ts.RunTicks(1)
	if w.Targets[0].Broken || w.Targets[0].Health != 1 || ts.Round().Score != 0 {
		t.Fatalf("after first hit: %+v score=%d", w.Targets[0], ts.Round().Score)
	}
	if len(w.Projectiles) != 0 {
		t.Fatal("the ball should be consumed by the hit")
	}

	w.Projectiles = append(w.Projectiles, dropInto(bottle))
	ts.RunTicks(1)
	if !w.Targets[0].Broken || ts.Round().Score != 20 {
		t.Fatalf("after second hit: broken=%v score=%d", w.Targets[0].Broken, ts.Round().Score)
	}
	if len(w.Particles) != ts.Driver.Config().BurstCount {
		t.Fatalf("expected one burst of %d particles, got %d", ts.Driver.Config().BurstCount, len(w.Particles))
	}

	w.Projectiles = append(w.Projectiles, dropInto(bottle))
	ts.RunTicks(1)
	if ts.Round().Score != 20 {
		t.Fatalf("broken bottle scored again: %d", ts.Round().Score)
	}
	if ts.Cues.Count(CueBreak) != 1 || ts.Cues.Count(CueHit) != 1 {
		t.Fatalf("cues: break=%d hit=%d", ts.Cues.Count(CueBreak), ts.Cues.Count(CueHit))
	}
	if ts.Log.CountCategory(CatHit, "break") != 1 {
		t.Fatalf("break events=%d", ts.Log.CountCategory(CatHit, "break"))
	}
}

func TestDriver_AtMostOneHitPerProjectilePerTick(t *testing.T) {
	a := NewTarget(300, 300, 40, 80, KindArmored, TintGold)
	b := NewTarget(310, 300, 40, 80, KindArmored, TintGold)
	ts := NewTestSim(WithTargets(a, b), WithShots(5))
	w := ts.World()
	w.Projectiles = append(w.Projectiles, Projectile{Body: Body{X: 330, Y: 340}})
	ts.RunTicks(1)
	lost := (3 - w.Targets[0].Health) + (3 - w.Targets[1].Health)
	if lost != 1 {
		t.Fatalf("one ball took %d health in one tick", lost)
	}
	if w.Targets[0].Health != 2 {
		t.Fatal("first bottle in iteration order should take the hit")
	}
}

func TestDriver_LevelTransition(t *testing.T) {
	ts := NewTestSim(WithLevel(2), WithShots(1))
	w := ts.World()
	for i := range w.Targets {
		w.Targets[i].ApplyHit()
		w.Targets[i].ApplyHit()
		w.Targets[i].ApplyHit()
	}
	ts.RunTicks(1)
	cfg := ts.Driver.Config()
	r := ts.Round()
	if r.Level != 3 {
		t.Fatalf("level=%d, want 3", r.Level)
	}
	if len(w.Targets) != cfg.BaseTargets+3 {
		t.Fatalf("targets=%d, want %d", len(w.Targets), cfg.BaseTargets+3)
	}
	if w.Standing() != len(w.Targets) {
		t.Fatal("fresh batch has broken bottles")
	}
	if r.Shots != cfg.ShotsBase+3 {
		t.Fatalf("shots=%d, want %d", r.Shots, cfg.ShotsBase+3)
	}
	if r.Phase != PhaseInProgress {
		t.Fatalf("phase=%v", r.Phase)
	}
	if ts.Cues.Count(CueLevelUp) != 1 {
		t.Fatal("expected a level-up cue")
	}
}

func TestDriver_GameOverFreezesState(t *testing.T) {
	bottle := NewTarget(300, 300, 40, 80, KindReinforced, TintRed)
	ts := NewTestSim(WithTargets(bottle), WithShots(0), WithScore(40))
	if ts.Driver.Tick() {
		t.Fatal("tick should report the loop must stop")
	}
	if !ts.Driver.Snapshot().GameOver {
		t.Fatal("expected game over")
	}

	w := ts.World()
	w.Projectiles = append(w.Projectiles, dropInto(bottle))
	ts.Driver.Input().Down(200, 200)
	before := ts.Driver.TickCount()
	for i := 0; i < 10; i++ {
		if ts.Driver.Tick() {
			t.Fatal("a finished game must not resume by itself")
		}
	}
	if ts.Driver.TickCount() != before {
		t.Fatal("ticks ran after game over")
	}
	if w.Targets[0].Health != 2 || ts.Round().Score != 40 || ts.Round().Charging {
		t.Fatalf("state mutated after game over: health=%d score=%d charging=%v",
			w.Targets[0].Health, ts.Round().Score, ts.Round().Charging)
	}
	if ts.Driver.Input().Len() != 0 {
		t.Fatal("input should be discarded while game over")
	}
	if ts.Cues.Count(CueGameOver) != 1 {
		t.Fatalf("game over cue count=%d", ts.Cues.Count(CueGameOver))
	}
}

func TestDriver_ResetRestoresInitialState(t *testing.T) {
	ts := NewTestSim(WithScore(150), WithLevel(3), WithShots(4))
	w := ts.World()
	w.Projectiles = append(w.Projectiles, Projectile{Body: Body{X: 100, Y: 100}})
	w.Particles = append(w.Particles, Particle{Life: 1})
	ts.Driver.Input().Down(300, 300)
	ts.RunTicks(3)
	ts.Driver.SetMuted(true)

	ts.Driver.Reset()
	cfg := ts.Driver.Config()
	if got, want := ts.Driver.Round(), NewRound(cfg); got != want {
		t.Fatalf("round after reset=%+v, want %+v", got, want)
	}
	hud := ts.Driver.Snapshot()
	if hud.Score != 0 || hud.Level != 1 || hud.Shots != 10 || hud.Power != 0 || hud.GameOver {
		t.Fatalf("hud after reset: %+v", hud)
	}
	w = ts.World()
	if len(w.Projectiles) != 0 || len(w.Particles) != 0 {
		t.Fatalf("collections not emptied: %d projectiles %d particles", len(w.Projectiles), len(w.Particles))
	}
	if len(w.Targets) != TargetCount(cfg, 1) || w.Standing() != len(w.Targets) {
		t.Fatalf("level 1 batch not regenerated: %d", len(w.Targets))
	}
	if !hud.Muted {
		t.Fatal("mute is a host preference and survives reset")
	}
	if !ts.Log.HasEntry(CatRound, "reset", "score 150") {
		t.Fatalf("reset not logged:\n%s", ts.Log.Dump())
	}
}

func TestDriver_MuteOnlyGatesCues(t *testing.T) {
	run := func(muted bool) (*TestSim, HUD) {
		ts := NewTestSim(WithSeed(21), WithSimMuted(muted))
		for i := 0; i < 3; i++ {
			shot, ok := PlanShot(ts.Driver.Config(), ts.World().Targets)
			if !ok {
				t.Fatal("planner found no shot")
			}
			ts.Fire(shot)
		}
		return ts, ts.Driver.Snapshot()
	}
	loud, a := run(false)
	quiet, b := run(true)
	a.Muted, b.Muted = false, false
	if a != b {
		t.Fatalf("mute changed the simulation: %+v vs %+v", a, b)
	}
	if len(loud.Cues.Played) == 0 {
		t.Fatal("expected cues when not muted")
	}
	if len(quiet.Cues.Played) != 0 {
		t.Fatalf("muted driver played %d cues", len(quiet.Cues.Played))
	}
}

func TestDriver_MalformedPointerNeverPoisonsPhysics(t *testing.T) {
	ts := NewTestSim(WithTargets(farTarget()))
	in := ts.Driver.Input()
	in.Down(math.NaN(), math.NaN())
	ts.RunTicks(10)
	in.Move(math.Inf(1), math.NaN())
	in.Up(math.NaN(), math.Inf(-1))
	ts.RunTicks(1)
	w := ts.World()
	if len(w.Projectiles) != 1 {
		t.Fatalf("expected a launch, got %d projectiles", len(w.Projectiles))
	}
	if !w.Projectiles[0].Finite() {
		t.Fatalf("non-finite projectile: %+v", w.Projectiles[0].Body)
	}
}

func TestDriver_EventsWaitForTheNextTick(t *testing.T) {
	ts := NewTestSim()
	ts.Driver.Input().Down(400, 300)
	if ts.Round().Charging {
		t.Fatal("input must not apply before the next tick")
	}
	ts.RunTicks(1)
	if !ts.Round().Charging || ts.Round().Power != 2 {
		t.Fatalf("after one tick: %+v", *ts.Round())
	}
}

// fakeScheduler queues frame callbacks like a host animation loop.
type fakeScheduler struct {
	pending []func()
}

func (f *fakeScheduler) RequestFrame(fn func()) { f.pending = append(f.pending, fn) }

// pump runs the callbacks queued before the call, like one host frame.
func (f *fakeScheduler) pump() {
	batch := f.pending
	f.pending = nil
	for _, fn := range batch {
		fn()
	}
}

func TestDriver_RunSchedulesOneTickPerFrame(t *testing.T) {
	ts := NewTestSim()
	s := &fakeScheduler{}
	ts.Driver.Run(s)
	for i := 0; i < 5; i++ {
		if len(s.pending) != 1 {
			t.Fatalf("frame %d: %d pending callbacks, want 1", i, len(s.pending))
		}
		s.pump()
	}
	if ts.Driver.TickCount() != 5 {
		t.Fatalf("ticks=%d, want 5", ts.Driver.TickCount())
	}
}

func TestDriver_StaleFrameAfterResetIsNoop(t *testing.T) {
	ts := NewTestSim()
	s := &fakeScheduler{}
	ts.Driver.Run(s)
	ts.Driver.Reset()
	if len(s.pending) != 2 {
		t.Fatalf("expected stale + fresh callbacks, got %d", len(s.pending))
	}
	s.pump()
	if ts.Driver.TickCount() != 1 {
		t.Fatalf("stale frame ran a tick: ticks=%d", ts.Driver.TickCount())
	}
	if len(s.pending) != 1 {
		t.Fatalf("only the live frame should reschedule, pending=%d", len(s.pending))
	}
}

func TestDriver_HaltsOnGameOverAndResetRestarts(t *testing.T) {
	ts := NewTestSim(WithShots(0))
	s := &fakeScheduler{}
	ts.Driver.Run(s)
	s.pump()
	if !ts.Driver.Halted() || len(s.pending) != 0 {
		t.Fatalf("loop should halt on game over: halted=%v pending=%d", ts.Driver.Halted(), len(s.pending))
	}
	ts.Driver.Reset()
	if ts.Driver.Halted() || len(s.pending) != 1 {
		t.Fatalf("reset should restart the loop: halted=%v pending=%d", ts.Driver.Halted(), len(s.pending))
	}
	s.pump()
	if ts.Driver.Snapshot().GameOver {
		t.Fatal("fresh round should be in progress")
	}
}

func TestDriver_InvariantsHoldOverAutoplay(t *testing.T) {
	ts := NewTestSim(WithSeed(77))
	cfg := ts.Driver.Config()
	prevScore := 0
	prevLevel := 1
	check := func(label string) {
		t.Helper()
		r := ts.Round()
		if r.Shots < 0 || r.Score < prevScore || r.Power < 0 || r.Power > cfg.MaxPower {
			t.Fatalf("%s: bad round %+v (prev score %d)", label, *r, prevScore)
		}
		if r.Level < prevLevel {
			t.Fatalf("%s: level went down", label)
		}
		for i, tg := range ts.World().Targets {
			if tg.Health < 0 || tg.Broken != (tg.Health <= 0) {
				t.Fatalf("%s: target %d health=%d broken=%v", label, i, tg.Health, tg.Broken)
			}
		}
		prevScore, prevLevel = r.Score, r.Level
	}
	for shot := 0; shot < 80 && !ts.Driver.Snapshot().GameOver; shot++ {
		plan, ok := PlanShot(cfg, ts.World().Targets)
		if !ok {
			plan = Shot{Pointer: Point{X: 500, Y: 100}, Power: 40, Ticks: 200}
		}
		// Waste every fourth shot so the run eventually ends.
		if shot%4 == 3 {
			plan.Power = 0
		}
		ts.Shoot(plan.Pointer, plan.Power)
		for i := 0; i < plan.Ticks+2; i++ {
			ts.RunTicks(1)
			check("autoplay")
		}
	}
	if ts.Round().Score == 0 {
		t.Fatal("planned shots never scored")
	}
}

func TestTestSim_RunUntil(t *testing.T) {
	ts := NewTestSim(WithTargets(farTarget()))
	ts.Driver.Input().Down(400, 300)
	got := ts.RunUntil(func(s *TestSim) bool { return s.Round().Power >= 10 }, 100)
	if got != 5 {
		t.Fatalf("predicate met at tick %d, want 5", got)
	}
	over := NewTestSim(WithShots(0))
	if got := over.RunUntil(func(s *TestSim) bool { return false }, 100); got != -1 {
		t.Fatalf("finished game should stop the search, got %d", got)
	}
	if over.Driver.TickCount() != 1 {
		t.Fatalf("ticks=%d, want 1", over.Driver.TickCount())
	}
}
