package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sortsound/internal/oscillator"
	"github.com/iburimskiy/sortsound/internal/sorting"
	"github.com/iburimskiy/sortsound/internal/visualizer"
)

func setup(t *testing.T, names ...string) (*visualizer.Sequencer, *oscillator.Oscillator) {
	t.Helper()
	algos, err := sorting.LookupAll(names)
	require.NoError(t, err)
	seq, err := visualizer.New(visualizer.Options{
		Bars:       sorting.NewBars(8, 6),
		Algorithms: algos,
		RestSteps:  3,
		Seed:       11,
	})
	require.NoError(t, err)
	t.Cleanup(seq.Close)

	voice, err := oscillator.New(8000, 10*time.Millisecond, oscillator.Sine(64))
	require.NoError(t, err)
	return seq, voice
}

func TestRender_WAV(t *testing.T) {
	seq, voice := setup(t, "counting")
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	stats, err := Render(context.Background(), f, seq, Options{
		Voice:         voice,
		BaseFrequency: 440,
		Volume:        0.1,
		Sorts:         2,
	})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// Two counting sorts of 8 bars: 16 tones, one finish tick each, and the
	// rest between them.
	assert.Equal(t, 2, stats.Sorts)
	assert.Equal(t, 32, stats.Tones)
	assert.Equal(t, 32+2+3, stats.Ticks)
	assert.Equal(t, stats.Ticks*voice.Len(), stats.Samples)

	in, err := os.Open(path)
	require.NoError(t, err)
	defer in.Close()
	s, format, err := wav.Decode(in)
	require.NoError(t, err)
	assert.Equal(t, voice.SampleRate(), format.SampleRate)
	assert.Equal(t, stats.Samples, s.Len())
}

func TestRender_Cancelled(t *testing.T) {
	seq, voice := setup(t, "comb")
	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer f.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Render(ctx, f, seq, Options{Voice: voice, Sorts: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender_MaxSteps(t *testing.T) {
	seq, voice := setup(t, "cocktail")
	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer f.Close()

	stats, err := Render(context.Background(), f, seq, Options{Voice: voice, Sorts: 1, MaxSteps: 3})
	assert.ErrorContains(t, err, "gave up after 3 steps")
	assert.Equal(t, 3, stats.Ticks)
}

func TestRender_InvalidOptions(t *testing.T) {
	seq, voice := setup(t, "comb")
	_, err := Render(context.Background(), nil, seq, Options{Sorts: 1})
	assert.Error(t, err)
	_, err = Render(context.Background(), nil, seq, Options{Voice: voice})
	assert.Error(t, err)
}

func TestTickStreamer_AdvancesOnDemand(t *testing.T) {
	seq, voice := setup(t, "cocktail")
	ticks := &tickStreamer{
		ctx:  context.Background(),
		seq:  seq,
		opts: Options{Voice: voice, BaseFrequency: 440, Sorts: 1, MaxSteps: DefaultMaxSteps},
	}
	require.Equal(t, 80, voice.Len())

	buf := make([][2]float64, 100)
	n, ok := ticks.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 100, n)
	assert.Equal(t, 2, ticks.stats.Ticks, "only the ticks needed for 100 samples are generated")

	n, ok = ticks.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 100, n)
	assert.Equal(t, 3, ticks.stats.Ticks)
	assert.Equal(t, 200, ticks.stats.Samples)
	assert.NoError(t, ticks.Err())
}
