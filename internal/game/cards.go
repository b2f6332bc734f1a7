package game

import "math/rand"

// sampleCardOptions draws count distinct cells uniformly at random,
// excluding cells in used. When fewer than count unused cells remain the
// pool resets first, so a cell targeted just before the reset may be
// offered again immediately.
func sampleCardOptions(rng *rand.Rand, totalCells, count int, used map[int]bool) []int {
	if count > totalCells {
		count = totalCells
	}
	if totalCells-len(used) < count {
		clear(used)
	}

	picked := make(map[int]bool, count)
	options := make([]int, 0, count)
	for len(options) < count {
		idx := rng.Intn(totalCells)
		if used[idx] || picked[idx] {
			continue
		}
		picked[idx] = true
		options = append(options, idx)
	}
	return options
}
