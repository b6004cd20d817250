// Package render plays a sort sequence offline and writes the tones to a
// WAV file instead of the speaker.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/sortsound/internal/oscillator"
	"github.com/iburimskiy/sortsound/internal/visualizer"
)

// DefaultMaxSteps bounds a render when Options.MaxSteps is zero.
const DefaultMaxSteps = 1_000_000

type Options struct {
	Voice *oscillator.Oscillator
	// BaseFrequency is added to the sounded value to get the pitch.
	BaseFrequency float64
	Volume        float64
	// Sorts is how many sorts to run to completion.
	Sorts int
	// MaxSteps caps the number of ticks rendered.
	MaxSteps int
}

type Stats struct {
	Ticks   int
	Tones   int
	Sorts   int
	Samples int
}

// Render advances seq until opts.Sorts sorts have finished and encodes one
// step worth of audio per tick (a tone for sounding ticks, silence
// otherwise) as 16-bit stereo WAV to w. Ticks are generated while the
// encoder pulls samples, so memory use does not grow with the length.
func Render(ctx context.Context, w io.WriteSeeker, seq *visualizer.Sequencer, opts Options) (Stats, error) {
	if opts.Voice == nil {
		return Stats{}, errors.New("render: no voice")
	}
	if opts.Sorts <= 0 {
		return Stats{}, errors.New("render: sorts must be positive")
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}

	format := beep.Format{
		SampleRate:  opts.Voice.SampleRate(),
		NumChannels: 2,
		Precision:   2,
	}
	ticks := &tickStreamer{
		ctx:   ctx,
		seq:   seq,
		opts:  opts,
		start: seq.Completed(),
	}
	out := &effects.Gain{Streamer: ticks, Gain: opts.Volume - 1}
	if err := wav.Encode(w, out, format); err != nil {
		return ticks.stats, fmt.Errorf("render: encode wav: %w", err)
	}
	return ticks.stats, ticks.err
}

// tickStreamer turns sequencer ticks into audio on demand.
type tickStreamer struct {
	ctx   context.Context
	seq   *visualizer.Sequencer
	opts  Options
	start int

	cur   beep.Streamer
	stats Stats
	err   error
}

func (s *tickStreamer) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) {
		if s.cur == nil && !s.advance() {
			break
		}
		k, ok := s.cur.Stream(samples[n:])
		n += k
		if !ok {
			s.cur = nil
		}
	}
	s.stats.Samples += n
	return n, n > 0
}

func (s *tickStreamer) Err() error { return s.err }

// advance loads the audio of the next tick. It reports false once the
// requested sorts are done or the render has to stop.
func (s *tickStreamer) advance() bool {
	if s.err != nil || s.seq.Completed()-s.start >= s.opts.Sorts {
		return false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return false
	}
	if s.stats.Ticks >= s.opts.MaxSteps {
		s.err = fmt.Errorf("render: gave up after %d steps with %d of %d sorts done",
			s.stats.Ticks, s.stats.Sorts, s.opts.Sorts)
		return false
	}

	tick := s.seq.Advance()
	s.stats.Ticks++
	if tick.Finished {
		s.stats.Sorts++
	}
	if tick.Sounding {
		s.cur = s.opts.Voice.Tone(s.opts.BaseFrequency + float64(tick.Step.Sound))
		s.stats.Tones++
	} else {
		s.cur = beep.Silence(s.opts.Voice.Len())
	}
	return true
}
