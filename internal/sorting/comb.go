package sorting

import "iter"

// Comb is comb sort with the usual 1.3 shrink factor.
func Comb(bars []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		gap := len(bars)
		swapped := true

		for gap > 1 || swapped {
			gap = gap * 10 / 13
			if gap < 1 {
				gap = 1
			}
			swapped = false

			for i := 0; i+gap < len(bars); i++ {
				if !yield(Step{Highlight: []int{i, i + gap}, Sound: bars[i+gap]}) {
					return
				}
				if bars[i] > bars[i+gap] {
					bars[i], bars[i+gap] = bars[i+gap], bars[i]
					swapped = true
				}
			}
		}
	}
}
