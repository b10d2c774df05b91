package screen

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/Garsondee/Bottle-Shot/internal/game"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	drv, err := game.NewDriver(cfg)
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	return New(drv)
}

func TestNew_SchedulesFirstFrame(t *testing.T) {
	g := newTestGame(t)
	if g.frames.size() != 1 {
		t.Fatalf("pending frames=%d, want 1", g.frames.size())
	}
	for i := 0; i < 3; i++ {
		if ran := g.frames.run(); ran != 1 {
			t.Fatalf("frame %d ran %d callbacks", i, ran)
		}
	}
	if g.drv.TickCount() != 3 {
		t.Fatalf("ticks=%d, want 3", g.drv.TickCount())
	}
}

func TestFrameQueue_DefersNestedRequests(t *testing.T) {
	var q frameQueue
	calls := 0
	var loop func()
	loop = func() {
		calls++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)
	q.run()
	q.run()
	if calls != 2 {
		t.Fatalf("calls=%d, want 2", calls)
	}
	if q.size() != 1 {
		t.Fatalf("pending=%d, want 1", q.size())
	}
}

func TestLayout_UsesPlayfield(t *testing.T) {
	g := newTestGame(t)
	w, h := g.Layout(1920, 1080)
	if w != 1000 || h != 600 {
		t.Fatalf("layout=%dx%d", w, h)
	}
}

func TestHUDLines(t *testing.T) {
	lines := hudLines(game.HUD{Score: 30, Level: 2, Shots: 7})
	want := []string{"Score: 30", "Level: 2", "Shots: 7"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines=%q", lines)
	}
	if muted := hudLines(game.HUD{Muted: true}); muted[len(muted)-1] != "Muted" {
		t.Fatalf("muted lines=%q", muted)
	}
}

func TestPowerFill(t *testing.T) {
	cases := []struct {
		power, maxPower int
		want       float64
	}{
		{0, 100, 0},
		{50, 100, barW / 2},
		{100, 100, barW},
		{140, 100, barW},
		{10, 0, 0},
	}
	for _, tc := range cases {
		if got := powerFill(tc.power, tc.maxPower); got != tc.want {
			t.Errorf("powerFill(%d,%d)=%v, want %v", tc.power, tc.maxPower, got, tc.want)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if withAlpha(c, 1) != c {
		t.Fatal("full alpha changed the colour")
	}
	if withAlpha(c, 0) != (color.RGBA{}) {
		t.Fatal("zero alpha should be transparent")
	}
	half := withAlpha(c, 0.5)
	if half.R != 100 || half.G != 50 || half.B != 25 || half.A != 127 {
		t.Fatalf("half alpha=%+v", half)
	}
}

func TestCopySummary(t *testing.T) {
	g := newTestGame(t)
	var copied string
	g.copyText = func(s string) error {
		copied = s
		return nil
	}
	g.copySummary()
	if !strings.Contains(copied, "score 0, level 1, shots left 10") {
		t.Fatalf("summary=%q", copied)
	}
	if g.status != "summary copied" {
		t.Fatalf("status=%q", g.status)
	}

	g.copyText = func(string) error { return errors.New("no clipboard") }
	g.copySummary()
	if g.status != "copy failed" {
		t.Fatalf("status after failure=%q", g.status)
	}
}

func TestSummary_CountsEvents(t *testing.T) {
	el := game.NewEventLog(false)
	el.Add(1, game.CatShot, "launch", "", 0)
	el.Add(5, game.CatHit, "damage", "", 0)
	el.Add(9, game.CatHit, "break", "", 0)
	s := Summary(game.HUD{Score: 20, Level: 1, Shots: 9, GameOver: true}, el)
	for _, want := range []string{"(game over)", "launched 1", "hits 2", "broken 1", "levels cleared 0"} {
		if !strings.Contains(s, want) {
			t.Fatalf("summary %q missing %q", s, want)
		}
	}
}
