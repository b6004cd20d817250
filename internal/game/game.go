// Package game shows a visualizer.Sequencer in an ebiten window and plays
// each step through an audio.Player.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/sortsound/internal/config"
	"github.com/iburimskiy/sortsound/internal/visualizer"
)

// TonePlayer is the part of audio.Player the game drives.
type TonePlayer interface {
	Tone(freq float64)
	SetMuted(muted bool)
	Muted() bool
	Snapshot(n int) [][2]float64
}

type Game struct {
	cfg    *config.Config
	log    *zap.Logger
	seq    *visualizer.Sequencer
	player TonePlayer
	layout visualizer.Layout

	// viz
	colorPhase float64
	started    time.Time

	// input edge detection
	prevKey map[ebiten.Key]bool

	paused bool
}

func New(cfg *config.Config, log *zap.Logger, seq *visualizer.Sequencer, player TonePlayer) *Game {
	return &Game{
		cfg:    cfg,
		log:    log,
		seq:    seq,
		player: player,
		layout: visualizer.Layout{
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			BarWidth: cfg.Bars.Width,
			Gap:      cfg.Bars.Gap,
		},
		prevKey: map[ebiten.Key]bool{},
	}
}

// Update runs one sort step per tick; the TPS is the step rate.
func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if justPressed(ebiten.KeyM) {
		g.player.SetMuted(!g.player.Muted())
		g.log.Debug("Toggled mute", zap.Bool("muted", g.player.Muted()))
	}
	if justPressed(ebiten.KeyN) {
		g.log.Info("Skipping sort", zap.String("algorithm", g.seq.Algorithm()), zap.Int("steps", g.seq.Steps()))
		g.seq.Skip()
	}

	g.step()
	return nil
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.log.Debug("Toggled pause", zap.Bool("paused", g.paused))
}

// step advances the sequence by one tick unless paused and sounds the
// step it lands on.
func (g *Game) step() {
	if g.paused {
		return
	}
	g.colorPhase += config.ColorShiftSpeed

	tick := g.seq.Advance()
	switch {
	case tick.Started:
		g.started = time.Now()
		g.log.Info("Sort started", zap.String("algorithm", tick.Algorithm), zap.Int("bars", len(g.seq.Bars())))
	case tick.Finished:
		g.log.Info("Sort finished",
			zap.String("algorithm", tick.Algorithm),
			zap.Int("steps", g.seq.Steps()),
			zap.Duration("elapsed", time.Since(g.started)))
	}
	if tick.Sounding {
		g.player.Tone(g.cfg.Audio.BaseFrequency + float64(tick.Step.Sound))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// sortTime is the playing time of the running sort at the configured rate.
func (g *Game) sortTime() time.Duration {
	return time.Duration(g.seq.Steps()) * g.cfg.StepDuration()
}
