package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Bottle-Shot/internal/game"
)

// largeScale is the upscale applied to FontLarge text.
const largeScale = 3

var backdrop = color.RGBA{R: 8, G: 10, B: 16, A: 255}

// surface draws simulation intents onto an ebiten image.
type surface struct {
	dst  *ebiten.Image
	face text.Face
}

func newSurface() *surface {
	return &surface{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (s *surface) bind(dst *ebiten.Image) { s.dst = dst }

func (s *surface) Clear() { s.dst.Fill(backdrop) }

func (s *surface) Rect(x, y, w, h float64, c color.RGBA) {
	vector.FillRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *surface) Circle(x, y, r float64, c color.RGBA, alpha float64) {
	if alpha <= 0 || r <= 0 {
		return
	}
	vector.FillCircle(s.dst, float32(x), float32(y), float32(r), withAlpha(c, alpha), true)
}

func (s *surface) Line(x1, y1, x2, y2 float64, c color.RGBA) {
	vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), 2, c, true)
}

func (s *surface) Text(str string, x, y float64, f game.Font, c color.RGBA) {
	op := &text.DrawOptions{}
	if f == game.FontLarge {
		op.GeoM.Scale(largeScale, largeScale)
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, s.face, op)
}

// textWidth returns the advance of str in f.
func (s *surface) textWidth(str string, f game.Font) float64 {
	w, _ := text.Measure(str, s.face, 0)
	if f == game.FontLarge {
		w *= largeScale
	}
	return w
}

// withAlpha fades a premultiplied colour by a in [0,1].
func withAlpha(c color.RGBA, a float64) color.RGBA {
	switch {
	case a >= 1:
		return c
	case a <= 0:
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
