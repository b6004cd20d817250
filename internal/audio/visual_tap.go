package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// VisualTap passes a stream through unchanged while keeping the most recent
// samples in a ring buffer, so the renderer can draw what was just heard.
type VisualTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func NewVisualTap(src beep.Streamer, ringSize int) *VisualTap {
	return &VisualTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *VisualTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for _, s := range samples[:n] {
			t.buffer[t.nextIndex] = s
			t.nextIndex = (t.nextIndex + 1) % len(t.buffer)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *VisualTap) Err() error { return t.Source.Err() }

// Snapshot returns the last n samples, oldest first.
func (t *VisualTap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, len(t.buffer))
	out := make([][2]float64, n)
	start := t.nextIndex - n
	if start < 0 {
		start += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[(start+i)%len(t.buffer)]
	}
	return out
}
