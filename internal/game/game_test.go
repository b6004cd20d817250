package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iburimskiy/sortsound/internal/config"
	"github.com/iburimskiy/sortsound/internal/sorting"
	"github.com/iburimskiy/sortsound/internal/visualizer"
)

type fakePlayer struct {
	tones []float64
	muted bool
}

func (p *fakePlayer) Tone(freq float64)           { p.tones = append(p.tones, freq) }
func (p *fakePlayer) SetMuted(muted bool)         { p.muted = muted }
func (p *fakePlayer) Muted() bool                 { return p.muted }
func (p *fakePlayer) Snapshot(n int) [][2]float64 { return make([][2]float64, n) }

func newTestGame(t *testing.T, names ...string) (*Game, *fakePlayer) {
	t.Helper()
	cfg := config.DefaultConfig()
	algos, err := sorting.LookupAll(names)
	require.NoError(t, err)
	seq, err := visualizer.New(visualizer.Options{
		Bars:       sorting.NewBars(cfg.BarCount(), cfg.Bars.Width),
		Algorithms: algos,
		RestSteps:  2,
		Seed:       5,
	})
	require.NoError(t, err)
	t.Cleanup(seq.Close)

	player := &fakePlayer{}
	return New(cfg, zap.NewNop(), seq, player), player
}

func TestGame_StepPlaysBarPitch(t *testing.T) {
	g, player := newTestGame(t, "counting")

	g.step()
	require.Len(t, player.tones, 1)
	// Counting sort's first pass leaves the bars in place.
	i := g.seq.Highlight()[0]
	assert.Equal(t, 440+float64(g.seq.Bars()[i]), player.tones[0])
	assert.Equal(t, 1, g.seq.Steps())
	assert.Equal(t, config.ColorShiftSpeed, g.colorPhase)
}

func TestGame_PauseHoldsSequence(t *testing.T) {
	g, player := newTestGame(t, "comb")

	g.step()
	g.togglePause()
	for range 5 {
		g.step()
	}
	assert.Len(t, player.tones, 1)
	assert.Equal(t, 1, g.seq.Steps())

	g.togglePause()
	g.step()
	assert.Len(t, player.tones, 2)
	assert.Equal(t, 2, g.seq.Steps())
}

func TestGame_SilentWhileResting(t *testing.T) {
	g, player := newTestGame(t, "counting")

	// 100 bars: 200 steps, the finishing tick, then two resting ticks.
	for range 200 + 1 + 2 {
		g.step()
	}
	assert.Len(t, player.tones, 200)
	assert.Equal(t, 1, g.seq.Completed())

	g.step()
	assert.Len(t, player.tones, 201, "next sort starts sounding after the rest")
}

func TestGame_Layout(t *testing.T) {
	g, _ := newTestGame(t, "comb")
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, 100, g.layout.Count())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(0))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
}
