package oscillator

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// maxSourceSamples caps how much of a wavetable file is read.
const maxSourceSamples = 1 << 16

func Sine(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = math.Sin(2 * math.Pi * float64(i) / float64(n))
	}
	return t
}

func Square(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		if i < n/2 {
			t[i] = 1
		} else {
			t[i] = -1
		}
	}
	return t
}

func Triangle(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		phase := float64(i) / float64(n)
		switch {
		case phase < 0.25:
			t[i] = 4 * phase
		case phase < 0.75:
			t[i] = 2 - 4*phase
		default:
			t[i] = 4*phase - 4
		}
	}
	return t
}

func Sawtooth(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = 2*float64(i)/float64(n) - 1
	}
	return t
}

// ByName builds one of the named waveforms.
func ByName(name string, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("table size must be at least 2, got %d", n)
	}
	switch name {
	case "sine":
		return Sine(n), nil
	case "square":
		return Square(n), nil
	case "triangle":
		return Triangle(n), nil
	case "sawtooth":
		return Sawtooth(n), nil
	default:
		return nil, fmt.Errorf("unknown waveform: %s", name)
	}
}

// Resample stretches src to n points by linear interpolation, treating src
// as one full cycle.
func Resample(src []float64, n int) []float64 {
	out := make([]float64, n)
	if len(src) == 0 {
		return out
	}
	step := float64(len(src)) / float64(n)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		w := pos - float64(j)
		out[i] = (1-w)*src[j] + w*src[(j+1)%len(src)]
	}
	return out
}

// Normalize scales t in place so its peak magnitude is 1. Silent tables
// are left as they are.
func Normalize(t []float64) {
	var peak float64
	for _, v := range t {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return
	}
	for i := range t {
		t[i] /= peak
	}
}

// Load decodes an audio file holding a single waveform cycle and turns it
// into an n-point normalized table. WAV, MP3 and FLAC are supported.
func Load(path string, n int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var streamer beep.StreamSeekCloser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, _, err = wav.Decode(f)
	case ".mp3":
		streamer, _, err = mp3.Decode(f)
	case ".flac":
		streamer, _, err = flac.Decode(f)
	default:
		return nil, errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	src, err := readMono(streamer, maxSourceSamples)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("%s holds no samples", path)
	}

	table := Resample(src, n)
	Normalize(table)
	return table, nil
}

func readMono(s beep.Streamer, limit int) ([]float64, error) {
	var (
		out []float64
		buf = make([][2]float64, 512)
	)
	for len(out) < limit {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, (frame[0]+frame[1])*0.5)
		}
		if !ok {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, s.Err()
}
