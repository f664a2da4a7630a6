package shotlist

import "math"

// apportion splits target across weights using largest-remainder
// apportionment. The returned counts always sum to target exactly.
// Ties on remainder resolve to the lower index, which keeps the result
// stable for a fixed weight order. Zero or negative total weight splits
// evenly instead.
func apportion(target int, weights []float64) []int {
	counts := make([]int, len(weights))
	if target <= 0 || len(weights) == 0 {
		return counts
	}

	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		total = float64(len(weights))
		weights = make([]float64, len(counts))
		for i := range weights {
			weights[i] = 1
		}
	}

	remainders := make([]float64, len(weights))
	assigned := 0
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		exact := float64(target) * w / total
		counts[i] = int(math.Floor(exact))
		remainders[i] = exact - math.Floor(exact)
		assigned += counts[i]
	}

	for assigned < target {
		best := -1
		for i, r := range remainders {
			if best == -1 || r > remainders[best] {
				best = i
			}
		}
		counts[best]++
		remainders[best] = -1
		assigned++
	}

	return counts
}
