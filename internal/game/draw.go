package game

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/sortsound/internal/config"
)

var (
	barColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	highlightColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	g.drawBars(screen)
	g.drawScope(screen)
	g.drawStatus(screen)
}

func (g *Game) drawBars(screen *ebiten.Image) {
	highlight := g.seq.Highlight()
	for i, v := range g.seq.Bars() {
		r := g.layout.Rect(i, v)
		clr := barColor
		if slices.Contains(highlight, i) {
			clr = highlightColor
		}
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
	}
}

// drawScope draws the tail of what the speaker just played in the top
// right corner.
func (g *Game) drawScope(screen *ebiten.Image) {
	samples := g.player.Snapshot(config.ScopeSamples)
	if len(samples) < 2 {
		return
	}

	x0 := float64(g.cfg.Window.Width - config.ScopeWidth - 12)
	y0 := 12.0
	w, h := float64(config.ScopeWidth), float64(config.ScopeHeight)

	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(w), float32(h), color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(w), float32(h), 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	// Tones are quiet; scale by the volume so a full-scale tone fills the box.
	gain := 1.0
	if g.cfg.Audio.Volume > 0 {
		gain = 1 / g.cfg.Audio.Volume
	}
	r, gv, b := hsvToRgb(g.colorPhase*360, 0.8, 0.9)
	lineColor := color.RGBA{R: r, G: gv, B: b, A: 255}

	step := w / float64(len(samples)-1)
	prevY := y0 + h*(1-clamp01((samples[0][0]*gain+1)/2))
	for i := 1; i < len(samples); i++ {
		y := y0 + h*(1-clamp01((samples[i][0]*gain+1)/2))
		vector.StrokeLine(screen,
			float32(x0+float64(i-1)*step), float32(prevY),
			float32(x0+float64(i)*step), float32(y),
			1, lineColor, false)
		prevY = y
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := fmt.Sprintf("%s sort | step %d | %s", g.seq.Algorithm(), g.seq.Steps(), formatDuration(g.sortTime()))
	if g.paused {
		status += " | paused"
	}
	if g.player.Muted() {
		status += " | muted"
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen, "Space: pause  N: next  M: mute  Esc/Q: quit", 12, 28)
}
