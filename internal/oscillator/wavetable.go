// Package oscillator generates the short tones played for every sort step.
//
// An Oscillator loops over one precomputed cycle of a waveform, linearly
// interpolating between table points, and shapes its output with a
// fade-in/fade-out envelope so tones start and stop without clicks.
package oscillator

import (
	"errors"
	"math"
	"time"

	"github.com/faiface/beep"
)

// Oscillator is a wavetable oscillator. It implements beep.Streamer and
// ends after its duration has been played.
type Oscillator struct {
	sampleRate beep.SampleRate
	table      []float64

	index     float64
	increment float64

	total   float64
	fadeIn  float64
	fadeOut float64

	played int
	length int
}

// New creates an oscillator playing table for duration. The table is one
// cycle of the waveform and is never modified.
func New(sampleRate beep.SampleRate, duration time.Duration, table []float64) (*Oscillator, error) {
	if len(table) == 0 {
		return nil, errors.New("oscillator: empty wave table")
	}
	if sampleRate <= 0 {
		return nil, errors.New("oscillator: sample rate must be positive")
	}
	if duration <= 0 {
		return nil, errors.New("oscillator: duration must be positive")
	}
	total := duration.Seconds()
	return &Oscillator{
		sampleRate: sampleRate,
		table:      table,
		total:      total,
		fadeIn:     total / 3,
		fadeOut:    total / 2,
		length:     sampleRate.N(duration),
	}, nil
}

// SetFrequency sets the pitch in Hz. A negative frequency plays the
// table backwards.
func (o *Oscillator) SetFrequency(freq float64) {
	o.increment = freq * float64(len(o.table)) / float64(o.sampleRate)
}

// Tone returns a fresh voice at freq, starting from the beginning of the
// table and of the envelope. The receiver is left untouched.
func (o *Oscillator) Tone(freq float64) *Oscillator {
	v := *o
	v.index = 0
	v.played = 0
	v.SetFrequency(freq)
	return &v
}

func (o *Oscillator) SampleRate() beep.SampleRate { return o.sampleRate }

// Len is the number of samples a tone lasts.
func (o *Oscillator) Len() int { return o.length }

// Amplitude is the envelope value t seconds into the tone, before clamping.
func (o *Oscillator) Amplitude(t float64) float64 {
	switch {
	case t < o.fadeIn:
		return t / o.fadeIn
	case t >= o.total-o.fadeOut:
		start := o.total - o.fadeOut
		return 1 - (t-start)/o.fadeOut
	default:
		return 1
	}
}

func (o *Oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.played >= o.length {
		return 0, false
	}
	for i := range samples {
		if o.played >= o.length {
			return i, true
		}
		s := o.next()
		samples[i] = [2]float64{s, s}
	}
	return len(samples), true
}

func (o *Oscillator) Err() error { return nil }

func (o *Oscillator) next() float64 {
	t := float64(o.played) / float64(o.sampleRate)
	s := o.lerp() * clamp01(o.Amplitude(t))

	o.played++
	size := float64(len(o.table))
	o.index = math.Mod(o.index+o.increment, size)
	if o.index < 0 {
		o.index += size
	}
	if o.index >= size {
		// -tiny + size rounds up to size.
		o.index = 0
	}
	return s
}

func (o *Oscillator) lerp() float64 {
	i := int(o.index)
	next := (i + 1) % len(o.table)

	w := o.index - float64(i)
	return (1-w)*o.table[i] + w*o.table[next]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
