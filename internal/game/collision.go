package game

// Intersects reports whether the projectile's centre lies strictly inside the
// target's box. The ball is treated as a point.
func Intersects(p *Projectile, t *Target) bool {
	return p.X > t.X && p.X < t.X+t.W &&
		p.Y > t.Y && p.Y < t.Y+t.H
}

// Hit records one projectile striking one target during a tick.
type Hit struct {
	Target     int // index into the targets slice
	Projectile Projectile
	JustBroken bool
}

// ResolveHits tests every projectile against every standing target. A
// projectile is consumed by the first target it intersects, in target order,
// and is never tested against later targets in the same tick. Surviving
// projectiles are returned in their original order, reusing the input's
// backing array.
func ResolveHits(projectiles []Projectile, targets []Target) ([]Projectile, []Hit) {
	var hits []Hit
	kept := projectiles[:0]
	for _, p := range projectiles {
		hitIdx := -1
		for i := range targets {
			if targets[i].Broken {
				continue
			}
			if Intersects(&p, &targets[i]) {
				hitIdx = i
				break
			}
		}
		if hitIdx < 0 {
			kept = append(kept, p)
			continue
		}
		broke := targets[hitIdx].ApplyHit()
		hits = append(hits, Hit{Target: hitIdx, Projectile: p, JustBroken: broke})
	}
	clear(projectiles[len(kept):])
	return kept, hits
}
