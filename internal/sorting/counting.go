package sorting

import (
	"iter"
	"slices"
)

// maxCountingSpan bounds the count array. Wider value ranges are counted by
// rank among the distinct values instead, which visits the same steps.
const maxCountingSpan = 1 << 16

// Counting is a stable counting sort. The first pass walks the input from
// the end while filling an output buffer; the second pass copies the
// buffer back, so every index is shown twice.
func Counting(bars []int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		if len(bars) < 2 {
			return
		}
		key, buckets := countingKeys(bars)

		count := make([]int, buckets)
		for _, v := range bars {
			count[key(v)]++
		}
		for i := 1; i < len(count); i++ {
			count[i] += count[i-1]
		}

		output := make([]int, len(bars))
		for i := len(bars) - 1; i >= 0; i-- {
			v := bars[i]
			k := key(v)
			count[k]--
			output[count[k]] = v
			if !yield(Step{Highlight: []int{i}, Sound: v}) {
				return
			}
		}

		for i := range bars {
			bars[i] = output[i]
			if !yield(Step{Highlight: []int{i}, Sound: bars[i]}) {
				return
			}
		}
	}
}

// countingKeys maps values to count buckets: v-min when the range is small,
// otherwise the position of v among the sorted distinct values.
func countingKeys(bars []int) (key func(int) int, buckets int) {
	lo, hi := slices.Min(bars), slices.Max(bars)
	if span := hi - lo; span >= 0 && span < maxCountingSpan {
		return func(v int) int { return v - lo }, span + 1
	}

	distinct := slices.Compact(slices.Sorted(slices.Values(bars)))
	return func(v int) int {
		i, _ := slices.BinarySearch(distinct, v)
		return i
	}, len(distinct)
}
