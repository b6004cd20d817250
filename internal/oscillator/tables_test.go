package oscillator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveforms(t *testing.T) {
	tests := []struct {
		name string
		want []float64
	}{
		{"sine", []float64{0, 1, 0, -1}},
		{"square", []float64{1, 1, -1, -1}},
		{"triangle", []float64{0, 1, 0, -1}},
		{"sawtooth", []float64{-1, -0.5, 0, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByName(tt.name, 4)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestByName_Errors(t *testing.T) {
	_, err := ByName("noise", 64)
	assert.ErrorContains(t, err, "unknown waveform")

	_, err = ByName("sine", 1)
	assert.ErrorContains(t, err, "at least 2")
}

func TestResample(t *testing.T) {
	got := Resample(diamond, 8)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5}, got, 1e-12)

	assert.Equal(t, []float64{0, 0}, Resample(nil, 2))
}

func TestNormalize(t *testing.T) {
	table := []float64{0, 0.25, -0.5}
	Normalize(table)
	assert.Equal(t, []float64{0, 0.5, -1}, table)

	silent := []float64{0, 0}
	Normalize(silent)
	assert.Equal(t, []float64{0, 0}, silent)
}

func TestLoad_WAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.wav")
	writeCycle(t, path, []float64{0, 0.25, 0.5, 0.25, 0, -0.25, -0.5, -0.25})

	table, err := Load(path, 8)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5}, table, 1e-3)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.wav"), 8)
	assert.Error(t, err)

	ogg := filepath.Join(dir, "cycle.ogg")
	require.NoError(t, os.WriteFile(ogg, []byte("OggS"), 0644))
	_, err = Load(ogg, 8)
	assert.ErrorContains(t, err, "unsupported file type")

	bogus := filepath.Join(dir, "bogus.wav")
	require.NoError(t, os.WriteFile(bogus, []byte("not a wave file"), 0644))
	_, err = Load(bogus, 8)
	assert.ErrorContains(t, err, "decode")
}

func writeCycle(t *testing.T, path string, cycle []float64) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	pos := 0
	s := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(cycle) {
			return 0, false
		}
		n := 0
		for n < len(samples) && pos < len(cycle) {
			samples[n] = [2]float64{cycle[pos], cycle[pos]}
			n++
			pos++
		}
		return n, true
	})

	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, s, format))
}
