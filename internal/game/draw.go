package game

import (
	"fmt"
	"image/color"
)

// Op is a drawing primitive.
type Op int

const (
	OpClear Op = iota
	OpRect
	OpCircle
	OpLine
	OpText
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpRect:
		return "rect"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Font names the text style a surface should use.
type Font int

const (
	FontSmall Font = iota
	FontLarge
)

// Intent is one drawing instruction. Which fields matter depends on Op:
// rect uses X,Y,W,H; circle uses X,Y,R,Alpha; line uses X,Y,X2,Y2; text uses
// Text,X,Y,Font. Color applies to all but clear.
type Intent struct {
	Op     Op
	X, Y   float64
	X2, Y2 float64
	W, H   float64
	R      float64
	Alpha  float64
	Color  color.RGBA
	Text   string
	Font   Font
}

// Surface is a drawing target owned by the host.
type Surface interface {
	Clear()
	Rect(x, y, w, h float64, c color.RGBA)
	Circle(x, y, r float64, c color.RGBA, alpha float64)
	Line(x1, y1, x2, y2 float64, c color.RGBA)
	Text(s string, x, y float64, f Font, c color.RGBA)
}

// Replay sends intents to s in order.
func Replay(s Surface, intents []Intent) {
	for _, in := range intents {
		switch in.Op {
		case OpClear:
			s.Clear()
		case OpRect:
			s.Rect(in.X, in.Y, in.W, in.H, in.Color)
		case OpCircle:
			s.Circle(in.X, in.Y, in.R, in.Color, in.Alpha)
		case OpLine:
			s.Line(in.X, in.Y, in.X2, in.Y2, in.Color)
		case OpText:
			s.Text(in.Text, in.X, in.Y, in.Font, in.Color)
		}
	}
}

// Recorder is a Surface that keeps every call as an Intent.
type Recorder struct {
	Intents []Intent
}

func (r *Recorder) Clear() { r.Intents = append(r.Intents, Intent{Op: OpClear}) }

func (r *Recorder) Rect(x, y, w, h float64, c color.RGBA) {
	r.Intents = append(r.Intents, Intent{Op: OpRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) Circle(x, y, rad float64, c color.RGBA, alpha float64) {
	r.Intents = append(r.Intents, Intent{Op: OpCircle, X: x, Y: y, R: rad, Color: c, Alpha: alpha})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, c color.RGBA) {
	r.Intents = append(r.Intents, Intent{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Color: c})
}

func (r *Recorder) Text(s string, x, y float64, f Font, c color.RGBA) {
	r.Intents = append(r.Intents, Intent{Op: OpText, Text: s, X: x, Y: y, Font: f, Color: c})
}

// Count returns how many recorded intents use op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, in := range r.Intents {
		if in.Op == op {
			n++
		}
	}
	return n
}

// composeFrame emits the scene in back-to-front order.
func composeFrame(cfg Config, r *Round, w *World, feed *Feed) []Intent {
	var fb Recorder
	fb.Intents = make([]Intent, 0, 64+len(w.Particles)+len(w.Projectiles)*(cfg.TrailLength+1))
	width, height := float64(cfg.Width), float64(cfg.Height)

	fb.Clear()
	fb.Rect(0, 0, width, height/2, skyTop)
	fb.Rect(0, height/2, width, height/2, skyBottom)
	groundY := height - cfg.TargetRowOffset + cfg.TargetHeight + cfg.TargetRowStagger
	if groundY < height {
		fb.Rect(0, groundY, width, height-groundY, groundColor)
	}

	for i := range w.Targets {
		drawTarget(&fb, &w.Targets[i])
	}

	// Launcher.
	fb.Circle(cfg.LaunchX, cfg.LaunchY, cfg.ProjectileRadius*2, launcherCol, 1)

	for i := range w.Projectiles {
		p := &w.Projectiles[i]
		n := len(p.Trail)
		for j, tp := range p.Trail {
			alpha := float64(j+1) / float64(n+1) * 0.5
			fb.Circle(tp.X, tp.Y, p.Radius*0.6, ballColor, alpha)
		}
		fb.Circle(p.X, p.Y, p.Radius, ballColor, 1)
	}

	for i := range w.Particles {
		pt := &w.Particles[i]
		fb.Circle(pt.X, pt.Y, pt.Radius, pt.Color, clamp01(pt.Life))
	}

	if r.Charging {
		fb.Line(cfg.LaunchX, cfg.LaunchY, r.Pointer.X, r.Pointer.Y, aimColor)
	}

	if feed != nil {
		for _, m := range feed.Active() {
			fb.Text(m.Text, m.X, m.Y-float64(m.Age)*feedRise, FontSmall, feedColor)
		}
	}
	return fb.Intents
}

// drawTarget draws a standing bottle: body, neck, then its sparkles. The
// wobble shifts the neck sideways; the hit box never moves.
func drawTarget(fb *Recorder, t *Target) {
	if t.Broken {
		return
	}
	cols := tintColors[TintGreen]
	if t.Tint >= 0 && t.Tint < tintCount {
		cols = tintColors[t.Tint]
	}
	sway := t.Wobble.Rotation * t.H / 2
	fb.Rect(t.X+t.W*0.125, t.Y+t.H*0.25, t.W*0.75, t.H*0.6875, cols[0])
	fb.Rect(t.X+t.W*0.375+sway, t.Y+t.H*0.0625, t.W*0.25, t.H*0.25, cols[1])
	for _, s := range t.Sparkles {
		fb.Circle(t.X+s.X, t.Y+s.Y, s.Size, sparkleTint, float64(s.Life)/sparkleLife)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
