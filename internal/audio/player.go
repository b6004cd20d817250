// Package audio turns sort steps into sound. A Player keeps exactly one
// voice sounding at a time and exposes the mix as a beep.Streamer, so it
// can be handed to the speaker or pulled from directly.
package audio

import (
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"

	"github.com/iburimskiy/sortsound/internal/oscillator"
)

// Player chains voice mixer -> volume -> mute control -> visual tap.
type Player struct {
	voice *oscillator.Oscillator

	mu    sync.Mutex
	mixer *beep.Mixer
	ctrl  *beep.Ctrl
	tap   *VisualTap
}

// NewPlayer plays tones of voice at volume (0..1) and remembers the last
// ringSize samples for Snapshot.
func NewPlayer(voice *oscillator.Oscillator, volume float64, ringSize int) *Player {
	mixer := &beep.Mixer{}
	gain := &effects.Gain{Streamer: mixer, Gain: volume - 1}
	ctrl := &beep.Ctrl{Streamer: gain}
	return &Player{
		voice: voice,
		mixer: mixer,
		ctrl:  ctrl,
		tap:   NewVisualTap(ctrl, ringSize),
	}
}

// Tone cuts whatever is playing and starts a fresh tone at freq.
func (p *Player) Tone(freq float64) {
	v := p.voice.Tone(freq)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.mixer.Clear()
	p.mixer.Add(v)
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ctrl.Paused = muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Paused
}

func (p *Player) SampleRate() beep.SampleRate { return p.voice.SampleRate() }

// Stream never ends; silence is produced between tones.
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tap.Stream(samples)
}

func (p *Player) Err() error { return nil }

// Snapshot returns the last n samples that went out, oldest first.
func (p *Player) Snapshot(n int) [][2]float64 {
	return p.tap.Snapshot(n)
}
