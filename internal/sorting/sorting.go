// Package sorting implements the animated sorting algorithms as iterators.
// Each algorithm sorts a slice in place and yields a Step whenever it
// touches the slice, so a caller can redraw and sound one step per frame.
package sorting

import (
	"fmt"
	"iter"
	"math/rand/v2"
)

// Step describes one visible moment of a sort.
type Step struct {
	// Highlight holds the indices the algorithm is looking at.
	Highlight []int
	// Sound is the value whose pitch is played for this step.
	Sound int
}

// Algorithm is a named sort. Sort returns an iterator that mutates bars
// between yields; stopping the iteration early leaves bars partially sorted.
type Algorithm struct {
	Name string
	Sort func(bars []int) iter.Seq[Step]
}

var registry = []Algorithm{
	{Name: "counting", Sort: Counting},
	{Name: "comb", Sort: Comb},
	{Name: "cocktail", Sort: Cocktail},
}

// All returns every registered algorithm in its default order.
func All() []Algorithm {
	return append([]Algorithm(nil), registry...)
}

func Names() []string {
	names := make([]string, len(registry))
	for i, a := range registry {
		names[i] = a.Name
	}
	return names
}

func Lookup(name string) (Algorithm, error) {
	for _, a := range registry {
		if a.Name == name {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("unknown algorithm: %s (valid: %v)", name, Names())
}

// LookupAll resolves names in order.
func LookupAll(names []string) ([]Algorithm, error) {
	algos := make([]Algorithm, 0, len(names))
	for _, name := range names {
		a, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		algos = append(algos, a)
	}
	return algos, nil
}

// NewBars returns count bar heights: unit, 2*unit, ..., count*unit.
func NewBars(count, unit int) []int {
	bars := make([]int, count)
	for i := range bars {
		bars[i] = (i + 1) * unit
	}
	return bars
}

func Shuffle(bars []int, rng *rand.Rand) {
	rng.Shuffle(len(bars), func(i, j int) {
		bars[i], bars[j] = bars[j], bars[i]
	})
}
