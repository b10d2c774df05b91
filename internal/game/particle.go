package game

import (
	"image/color"
	"math/rand"
)

// Particle is a decorative shard. Life runs from 1 down to 0 and doubles as
// the draw alpha.
type Particle struct {
	Body
	Radius float64
	Life   float64
	Color  color.RGBA
}

// SpawnBurst creates count particles at (x, y) with velocities uniform in
// ±speed on each axis and radii uniform in [1, 3].
func SpawnBurst(rng *rand.Rand, x, y float64, col color.RGBA, count int, speed float64) []Particle {
	if count <= 0 {
		return nil
	}
	out := make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, Particle{
			Body: Body{
				X:  x,
				Y:  y,
				VX: (rng.Float64()*2 - 1) * speed,
				VY: (rng.Float64()*2 - 1) * speed,
			},
			Radius: 1 + rng.Float64()*2,
			Life:   1,
			Color:  col,
		})
	}
	return out
}

// Step integrates position under gravity and decays life. The two are
// independent: a particle keeps moving until it is pruned.
func (p *Particle) Step(gravity, decay float64) {
	p.Body = Integrate(p.Body, gravity)
	p.Life -= decay
}

// Dead reports whether the particle should be removed on the next prune.
func (p *Particle) Dead() bool { return p.Life <= 0 }
