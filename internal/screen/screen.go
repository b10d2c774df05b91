// Package screen hosts the simulation inside an ebiten window.
package screen

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Bottle-Shot/internal/game"
)

// Game adapts a game.Driver to ebiten.Game.
type Game struct {
	drv    *game.Driver
	frames frameQueue
	surf   *surface
	log    *slog.Logger
	debug  bool

	prevKeys   map[ebiten.Key]bool
	lastCursor game.Point
	mouseDown  bool
	touchID    ebiten.TouchID
	touching   bool
	touchIDs   []ebiten.TouchID

	copyText func(string) error
	status   string
	statusT  int
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the host logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithDebug shows the tick counter and event tail.
func WithDebug(on bool) Option {
	return func(g *Game) { g.debug = on }
}

// New wires drv to ebiten and starts its frame loop.
func New(drv *game.Driver, opts ...Option) *Game {
	g := &Game{
		drv:      drv,
		surf:     newSurface(),
		log:      slog.New(slog.DiscardHandler),
		prevKeys: make(map[ebiten.Key]bool),
		copyText: clipboard.WriteAll,
	}
	for _, o := range opts {
		o(g)
	}
	drv.Run(&g.frames)
	return g
}

// Update captures input, then runs the frames the driver requested.
func (g *Game) Update() error {
	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handlePointer()
	g.frames.run()
	if g.statusT > 0 {
		g.statusT--
	}
	return nil
}

// Draw replays the last composed frame and overlays the HUD.
func (g *Game) Draw(dst *ebiten.Image) {
	g.surf.bind(dst)
	game.Replay(g.surf, g.drv.Frame())
	g.drawHUD(g.drv.Snapshot())
	if g.debug {
		g.drawDebug(dst)
	}
}

// Layout keeps the playfield at its configured size; ebiten scales the window.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.drv.Config()
	return cfg.Width, cfg.Height
}

// handleKeys processes control keys (edge-triggered).
func (g *Game) handleKeys() error {
	current := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		current[k] = ebiten.IsKeyPressed(k)
		return current[k] && !g.prevKeys[k]
	}
	defer func() { g.prevKeys = current }()

	if pressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if pressed(ebiten.KeyR) {
		g.drv.Reset()
		g.setStatus("restarted")
	}
	if pressed(ebiten.KeyM) {
		g.drv.SetMuted(!g.drv.Muted())
		g.log.Info("mute toggled", "muted", g.drv.Muted())
	}
	if pressed(ebiten.KeyC) {
		g.copySummary()
	}
	return nil
}

// handlePointer turns mouse and the first active touch into pointer events.
func (g *Game) handlePointer() {
	in := g.drv.Input()

	mx, my := ebiten.CursorPosition()
	cur := game.Point{X: float64(mx), Y: float64(my)}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.mouseDown = true
		in.Down(cur.X, cur.Y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.mouseDown:
		g.mouseDown = false
		in.Up(cur.X, cur.Y)
	case cur != g.lastCursor:
		in.Move(cur.X, cur.Y)
	}
	g.lastCursor = cur

	if !g.touching {
		g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
		if len(g.touchIDs) > 0 {
			g.touchID = g.touchIDs[0]
			g.touching = true
			tx, ty := ebiten.TouchPosition(g.touchID)
			in.Down(float64(tx), float64(ty))
		}
		return
	}
	if inpututil.IsTouchJustReleased(g.touchID) {
		tx, ty := inpututil.TouchPositionInPreviousTick(g.touchID)
		in.Up(float64(tx), float64(ty))
		g.touching = false
		return
	}
	tx, ty := ebiten.TouchPosition(g.touchID)
	in.Move(float64(tx), float64(ty))
}

func (g *Game) copySummary() {
	s := Summary(g.drv.Snapshot(), g.drv.Events())
	if err := g.copyText(s); err != nil {
		g.setStatus("copy failed")
		g.log.Warn("clipboard copy failed", "err", err)
		return
	}
	g.setStatus("summary copied")
}

// statusTicks is how long a status line stays on screen.
const statusTicks = 120

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusT = statusTicks
}
