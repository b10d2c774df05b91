package screen

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Bottle-Shot/internal/game"
)

const (
	hudMargin = 12
	hudLineH  = 16
	barW      = 160
	barH      = 10
)

var (
	hudText    = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	hudDim     = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	barEmpty   = color.RGBA{R: 40, G: 40, B: 48, A: 200}
	barFull    = color.RGBA{R: 230, G: 90, B: 40, A: 255}
	barEdge    = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	bannerBack = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	bannerText = color.RGBA{R: 255, G: 90, B: 80, A: 255}
)

// hudLines returns the status lines shown in the top-left corner.
func hudLines(h game.HUD) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", h.Score),
		fmt.Sprintf("Level: %d", h.Level),
		fmt.Sprintf("Shots: %d", h.Shots),
	}
	if h.Muted {
		lines = append(lines, "Muted")
	}
	return lines
}

// powerFill returns the filled width of the power bar.
func powerFill(power, maxPower int) float64 {
	if maxPower <= 0 || power <= 0 {
		return 0
	}
	if power >= maxPower {
		return barW
	}
	return barW * float64(power) / float64(maxPower)
}

func (g *Game) drawHUD(h game.HUD) {
	s := g.surf
	y := float64(hudMargin)
	for _, line := range hudLines(h) {
		s.Text(line, hudMargin, y, game.FontSmall, hudText)
		y += hudLineH
	}

	cfg := g.drv.Config()
	if h.Charging {
		bx, by := float32(hudMargin), float32(y+4)
		vector.FillRect(s.dst, bx, by, barW, barH, barEmpty, false)
		vector.FillRect(s.dst, bx, by, float32(powerFill(h.Power, cfg.MaxPower)), barH, barFull, false)
		vector.StrokeRect(s.dst, bx, by, barW, barH, 1, barEdge, false)
	}

	if g.statusT > 0 && g.status != "" {
		s.Text(g.status, hudMargin, float64(cfg.Height-hudMargin-hudLineH), game.FontSmall, hudDim)
	}

	if h.GameOver {
		w, hh := float64(cfg.Width), float64(cfg.Height)
		s.Rect(0, hh/2-70, w, 140, bannerBack)
		title := "GAME OVER"
		s.Text(title, (w-s.textWidth(title, game.FontLarge))/2, hh/2-55, game.FontLarge, bannerText)
		sub := fmt.Sprintf("Final score %d on level %d. Press R to play again.", h.Score, h.Level)
		s.Text(sub, (w-s.textWidth(sub, game.FontSmall))/2, hh/2+25, game.FontSmall, hudText)
	}
}

// debugTail is how many recent events the debug overlay lists.
const debugTail = 6

func (g *Game) drawDebug(dst *ebiten.Image) {
	cfg := g.drv.Config()
	h := g.drv.Snapshot()
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("tick %d  standing %d  phase %s  fps %.0f",
		g.drv.TickCount(), h.Standing, h.Phase, ebiten.ActualFPS()), cfg.Width-340, hudMargin)
	entries := g.drv.Events().Entries()
	if len(entries) > debugTail {
		entries = entries[len(entries)-debugTail:]
	}
	for i, e := range entries {
		ebitenutil.DebugPrintAt(dst, e.String(), cfg.Width-340, hudMargin+(i+1)*hudLineH)
	}
}

// Summary is the text the C key copies: the HUD values and the event tally.
func Summary(h game.HUD, events *game.EventLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bottle Shot: score %d, level %d, shots left %d", h.Score, h.Level, h.Shots)
	if h.GameOver {
		b.WriteString(" (game over)")
	}
	b.WriteByte('\n')
	if events != nil {
		fmt.Fprintf(&b, "launched %d, hits %d, broken %d, levels cleared %d\n",
			events.CountCategory(game.CatShot, "launch"),
			events.CountCategory(game.CatHit, ""),
			events.CountCategory(game.CatHit, "break"),
			events.CountCategory(game.CatRound, "level"))
	}
	return b.String()
}
