package game

import "math/rand"

// World owns the live entity collections. Targets are only ever replaced as a
// whole batch; projectiles and particles come and go every tick.
type World struct {
	Projectiles []Projectile
	Targets     []Target
	Particles   []Particle
}

// Advance integrates every projectile and particle one tick and updates the
// cosmetic state of standing targets.
func (w *World) Advance(cfg Config, rng *rand.Rand) {
	for i := range w.Projectiles {
		w.Projectiles[i].Step(cfg.Gravity, cfg.Wind, cfg.TrailLength)
	}
	for i := range w.Particles {
		w.Particles[i].Step(cfg.ParticleGravity, cfg.ParticleDecay)
	}
	for i := range w.Targets {
		w.Targets[i].Update(rng, cfg.SparkleChance)
	}
}

// Prune removes projectiles that left the playfield (or hold non-finite
// state) and particles whose life ran out. It filters in place, so removing
// neighbouring entities in one pass never skips one. Pruning is idempotent.
func (w *World) Prune(width, height float64) {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Finite() || p.OutOfBounds(width, height) {
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept

	live := w.Particles[:0]
	for _, p := range w.Particles {
		if p.Dead() || !p.Finite() {
			continue
		}
		live = append(live, p)
	}
	clear(w.Particles[len(live):])
	w.Particles = live
}

// Standing counts unbroken targets.
func (w *World) Standing() int {
	n := 0
	for i := range w.Targets {
		if !w.Targets[i].Broken {
			n++
		}
	}
	return n
}

// AllBroken reports whether no target is standing. An empty batch counts as
// cleared.
func (w *World) AllBroken() bool {
	return w.Standing() == 0
}

// Clear drops every entity.
func (w *World) Clear() {
	*w = World{}
}
