package game

import "math"

// Projectile is a player-launched ball. Trail holds recent positions, oldest
// first, and is only used for rendering.
type Projectile struct {
	Body
	Radius float64
	Trail  []Point
}

// LaunchAngle returns the launch direction toward the pointer, measured
// counter-clockwise from the +x axis with the y axis pointing up.
func LaunchAngle(cfg Config, pointer Point) float64 {
	return math.Atan2(float64(cfg.Height)-pointer.Y, pointer.X-cfg.LaunchX)
}

// Launch creates a projectile at the launch point aimed at pointer with a speed
// proportional to power.
func Launch(cfg Config, power int, pointer Point) Projectile {
	angle := LaunchAngle(cfg, pointer)
	speed := float64(power) * cfg.SpeedPerPower
	return NewProjectile(cfg, angle, speed)
}

// NewProjectile creates a projectile at the launch point with the given angle
// (radians) and speed (px/tick).
func NewProjectile(cfg Config, angle, speed float64) Projectile {
	return Projectile{
		Body: Body{
			X:  cfg.LaunchX,
			Y:  cfg.LaunchY,
			VX: math.Cos(angle) * speed,
			VY: -math.Sin(angle) * speed,
		},
		Radius: cfg.ProjectileRadius,
		Trail:  make([]Point, 0, cfg.TrailLength),
	}
}

// Step records the current position in the trail and integrates one tick.
func (p *Projectile) Step(gravity, wind float64, trailCap int) {
	if trailCap > 0 {
		if len(p.Trail) >= trailCap {
			// Shift in place so the backing array is reused.
			copy(p.Trail, p.Trail[len(p.Trail)-trailCap+1:])
			p.Trail = p.Trail[:trailCap-1]
		}
		p.Trail = append(p.Trail, p.Pos())
	}
	p.VX += wind
	p.Body = Integrate(p.Body, gravity)
}

// OutOfBounds reports whether the projectile left the playfield. Leaving
// through the top is allowed; gravity brings it back.
func (p *Projectile) OutOfBounds(w, h float64) bool {
	return p.Y > h || p.X < 0 || p.X > w
}
