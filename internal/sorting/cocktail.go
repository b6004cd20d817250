package sorting

import "iter"

// Cocktail is the bidirectional bubble sort: a forward pass bubbles the
// largest value up, a backward pass sinks the smallest, and the bounds
// close in until a pass makes no swap.
func Cocktail(bars []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		if len(bars) < 2 {
			return
		}
		start, end := 0, len(bars)-1

		// compare yields the pair and swaps it if out of order. It reports
		// whether the iteration should go on.
		swapped := false
		compare := func(i int) bool {
			if !yield(Step{Highlight: []int{i, i + 1}, Sound: bars[i+1]}) {
				return false
			}
			if bars[i] > bars[i+1] {
				bars[i], bars[i+1] = bars[i+1], bars[i]
				swapped = true
			}
			return true
		}

		for {
			swapped = false
			for i := start; i < end; i++ {
				if !compare(i) {
					return
				}
			}
			if !swapped {
				return
			}
			end--

			swapped = false
			for i := end - 1; i >= start; i-- {
				if !compare(i) {
					return
				}
			}
			if !swapped {
				return
			}
			start++
		}
	}
}
