package game

import (
	"math"
	"testing"
)

const eps = 1e-6

func TestProjectile_FortyFiveDegreeLaunch(t *testing.T) {
	cfg := DefaultConfig()
	speed := 100 * cfg.SpeedPerPower // 50 px/tick
	p := NewProjectile(cfg, math.Pi/4, speed)
	p.Step(cfg.Gravity, 0, cfg.TrailLength)

	wantVY := -50*math.Sin(math.Pi/4) + 0.5
	wantX := 50 + 50*math.Cos(math.Pi/4)
	wantY := 550 + wantVY
	if math.Abs(p.VY-wantVY) > eps {
		t.Fatalf("vy=%.9f, want %.9f", p.VY, wantVY)
	}
	if math.Abs(p.X-wantX) > eps || math.Abs(p.Y-wantY) > eps {
		t.Fatalf("pos=(%.9f,%.9f), want (%.9f,%.9f)", p.X, p.Y, wantX, wantY)
	}
}

func TestLaunch_AngleFromPointer(t *testing.T) {
	cfg := DefaultConfig()
	// (150,500) is 100px right of the launch column and 100px below the top of
	// the reference height, so the launch angle is exactly 45 degrees.
	ptr := Point{X: 150, Y: 500}
	if a := LaunchAngle(cfg, ptr); math.Abs(a-math.Pi/4) > eps {
		t.Fatalf("angle=%v, want pi/4", a)
	}
	p := Launch(cfg, 100, ptr)
	if math.Abs(p.VX-50*math.Cos(math.Pi/4)) > eps {
		t.Fatalf("vx=%v", p.VX)
	}
	if math.Abs(p.VY+50*math.Sin(math.Pi/4)) > eps {
		t.Fatalf("vy=%v (expected upward launch)", p.VY)
	}
	if p.X != cfg.LaunchX || p.Y != cfg.LaunchY {
		t.Fatalf("projectile should start at the launch point, got (%v,%v)", p.X, p.Y)
	}
}

func TestLaunch_ZeroPowerHasNoSpeed(t *testing.T) {
	cfg := DefaultConfig()
	p := Launch(cfg, 0, Point{X: 500, Y: 100})
	if p.VX != 0 || p.VY != 0 {
		t.Fatalf("expected zero velocity, got (%v,%v)", p.VX, p.VY)
	}
}

func TestProjectile_TrailIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	p := NewProjectile(cfg, math.Pi/3, 20)
	var last Point
	for i := 0; i < 25; i++ {
		last = p.Pos()
		p.Step(cfg.Gravity, 0, cfg.TrailLength)
	}
	if len(p.Trail) != cfg.TrailLength {
		t.Fatalf("trail length=%d, want %d", len(p.Trail), cfg.TrailLength)
	}
	if p.Trail[len(p.Trail)-1] != last {
		t.Fatalf("newest trail point=%v, want %v", p.Trail[len(p.Trail)-1], last)
	}
	for i := 1; i < len(p.Trail); i++ {
		if p.Trail[i].X <= p.Trail[i-1].X {
			t.Fatalf("trail not ordered oldest→newest at %d: %v", i, p.Trail)
		}
	}
}

func TestProjectile_WindPushesSideways(t *testing.T) {
	cfg := DefaultConfig()
	p := NewProjectile(cfg, math.Pi/2, 10)
	p.Step(cfg.Gravity, 0.25, 0)
	if math.Abs(p.VX-0.25) > eps {
		t.Fatalf("vx=%v, want 0.25", p.VX)
	}
	if len(p.Trail) != 0 {
		t.Fatalf("zero trail cap should record nothing, got %d", len(p.Trail))
	}
}

func TestProjectile_OutOfBounds(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 500, 300, false},
		{"above top", 500, -200, false},
		{"below bottom", 500, 601, true},
		{"left", -0.1, 300, true},
		{"right", 1000.1, 300, true},
		{"on right edge", 1000, 300, false},
	}
	for _, c := range cases {
		p := Projectile{Body: Body{X: c.x, Y: c.y}}
		if got := p.OutOfBounds(1000, 600); got != c.want {
			t.Errorf("%s: OutOfBounds=%v, want %v", c.name, got, c.want)
		}
	}
}
