package game

import "math"

const (
	aimMinDeg   = 5
	aimMaxDeg   = 80
	aimRadius   = 100 // distance of the virtual pointer from the launch column
	aimMaxTicks = 600
)

// Shot is a planned launch: hold until Power, release at Pointer.
type Shot struct {
	Pointer Point
	Power   int
	Target  int // index of the first bottle the flight path strikes
	Ticks   int // ticks from release to impact
}

// PointerForAngle returns an in-field pointer position that produces a launch
// at angle deg.
func PointerForAngle(cfg Config, deg float64) Point {
	a := deg * math.Pi / 180
	return Point{
		X: cfg.LaunchX + math.Cos(a)*aimRadius,
		Y: float64(cfg.Height) - math.Sin(a)*aimRadius,
	}
}

// TraceShot flies a projectile against targets without mutating them and
// returns the index of the first standing target it would strike and the
// ticks taken, or -1 if it leaves the field first.
func TraceShot(cfg Config, power int, pointer Point, targets []Target) (int, int) {
	p := Launch(cfg, power, pointer)
	p.Trail = nil
	w, h := float64(cfg.Width), float64(cfg.Height)
	for tick := 1; tick <= aimMaxTicks; tick++ {
		p.Step(cfg.Gravity, cfg.Wind, 0)
		for i := range targets {
			if !targets[i].Broken && Intersects(&p, &targets[i]) {
				return i, tick
			}
		}
		if p.OutOfBounds(w, h) {
			return -1, tick
		}
	}
	return -1, aimMaxTicks
}

// PlanShot searches launch angles and power levels for a release that hits a
// standing bottle. Bottles earlier in the slice are preferred. ok is false
// when no tested combination connects.
func PlanShot(cfg Config, targets []Target) (Shot, bool) {
	first := -1
	for i := range targets {
		if !targets[i].Broken {
			first = i
			break
		}
	}
	best := Shot{Target: -1}
	if first < 0 {
		return best, false
	}
	for deg := aimMinDeg; deg <= aimMaxDeg; deg++ {
		ptr := PointerForAngle(cfg, float64(deg))
		for power := cfg.PowerStep; power <= cfg.MaxPower; power += cfg.PowerStep {
			idx, ticks := TraceShot(cfg, power, ptr, targets)
			if idx < 0 {
				continue
			}
			if best.Target < 0 || idx < best.Target || (idx == best.Target && ticks < best.Ticks) {
				best = Shot{Pointer: ptr, Power: power, Target: idx, Ticks: ticks}
			}
			break
		}
		if best.Target == first {
			break
		}
	}
	return best, best.Target >= 0
}
