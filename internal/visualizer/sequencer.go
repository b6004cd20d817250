// Package visualizer drives the shuffle, sort, rest cycle one tick at a
// time and knows where each bar goes on screen. It has no window or audio
// dependency so the same sequence can be shown live or rendered offline.
package visualizer

import (
	"errors"
	"iter"
	"math/rand/v2"

	"github.com/iburimskiy/sortsound/internal/sorting"
)

// Tick is the outcome of one Advance call.
type Tick struct {
	Algorithm string
	Step      sorting.Step

	// Sounding is set when Step should be drawn and heard.
	Sounding bool
	// Started is set on the first tick of a new sort, right after the shuffle.
	Started bool
	// Finished is set on the tick where the current sort ran out of steps.
	Finished bool
	// Resting is set while waiting between two sorts.
	Resting bool
}

type Options struct {
	Bars       []int
	Algorithms []sorting.Algorithm
	// RestSteps is the number of silent ticks after each sort.
	RestSteps int
	// Seed for the shuffle; 0 picks a random one.
	Seed uint64
}

// Sequencer cycles through the algorithms forever: shuffle, sort step by
// step, rest, move to the next algorithm.
type Sequencer struct {
	bars      []int
	algos     []sorting.Algorithm
	rng       *rand.Rand
	restSteps int

	current   int
	done      bool
	next      func() (sorting.Step, bool)
	stop      func()
	rest      int
	highlight []int
	steps     int
	completed int
}

func New(opts Options) (*Sequencer, error) {
	if len(opts.Algorithms) == 0 {
		return nil, errors.New("visualizer: no algorithms")
	}
	if len(opts.Bars) == 0 {
		return nil, errors.New("visualizer: no bars")
	}
	if opts.RestSteps < 0 {
		return nil, errors.New("visualizer: negative rest")
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Sequencer{
		bars:      opts.Bars,
		algos:     opts.Algorithms,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		restSteps: opts.RestSteps,
	}, nil
}

// Advance moves the sequence forward by one tick.
func (s *Sequencer) Advance() Tick {
	tick := Tick{}
	if s.next == nil && s.rest == 0 {
		s.begin()
		tick.Started = true
	}
	tick.Algorithm = s.Algorithm()

	if s.rest > 0 {
		s.rest--
		tick.Resting = true
		return tick
	}

	step, ok := s.next()
	if !ok {
		s.finish()
		tick.Finished = true
		return tick
	}
	s.steps++
	s.highlight = step.Highlight
	tick.Step = step
	tick.Sounding = true
	return tick
}

// Skip abandons the running sort and starts the next algorithm on the
// following tick.
func (s *Sequencer) Skip() {
	s.rest = 0
	if s.next == nil && s.done {
		return
	}
	s.release()
	s.highlight = nil
	s.done = true
}

// Close releases the running sort, if any.
func (s *Sequencer) Close() {
	s.release()
}

// Bars is the live slice being sorted; callers must not modify it.
func (s *Sequencer) Bars() []int { return s.bars }

func (s *Sequencer) Highlight() []int { return s.highlight }

// Algorithm names the running sort, or the one that just finished.
func (s *Sequencer) Algorithm() string { return s.algos[s.current].Name }

// Steps counts the steps of the running sort.
func (s *Sequencer) Steps() int { return s.steps }

// Completed counts the sorts run to the end.
func (s *Sequencer) Completed() int { return s.completed }

func (s *Sequencer) begin() {
	if s.done {
		s.current = (s.current + 1) % len(s.algos)
		s.done = false
	}
	sorting.Shuffle(s.bars, s.rng)
	s.steps = 0
	s.highlight = nil
	s.next, s.stop = iter.Pull(s.algos[s.current].Sort(s.bars))
}

func (s *Sequencer) finish() {
	s.release()
	s.completed++
	s.highlight = nil
	s.rest = s.restSteps
	s.done = true
}

func (s *Sequencer) release() {
	if s.stop != nil {
		s.stop()
	}
	s.next, s.stop = nil, nil
}
