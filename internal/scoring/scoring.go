package scoring

// Radius is one scoring tier: any guess within MaxDist cells of the target
// is worth Points. Tiers are kept sorted ascending by MaxDist.
type Radius struct {
	MaxDist int `json:"maxDist"`
	Points  int `json:"points"`
}

// DefaultRadii returns the standard three-tier scoring: bullseye 3,
// one ring out 2, two rings out 1.
func DefaultRadii() []Radius {
	return []Radius{
		{MaxDist: 0, Points: 3},
		{MaxDist: 1, Points: 2},
		{MaxDist: 2, Points: 1},
	}
}

// Distance returns the Chebyshev distance between two flattened cell
// indices on a board with the given column count.
func Distance(cellA, cellB, cols int) int {
	rowA, colA := cellA/cols, cellA%cols
	rowB, colB := cellB/cols, cellB%cols
	return max(abs(rowA-rowB), abs(colA-colB))
}

// PointsForDistance returns the points of the first tier whose MaxDist
// covers d, or 0 when the guess is outside every tier.
func PointsForDistance(d int, radii []Radius) int {
	for _, r := range radii {
		if d <= r.MaxDist {
			return r.Points
		}
	}
	return 0
}

// CueGiverScore counts how many of the submitted guesses landed within any
// scoring radius of the target. The cue giver is rewarded per guess in
// range, not by a points sum.
func CueGiverScore(guesses []int, targetCell, cols int, radii []Radius) int {
	count := 0
	for _, g := range guesses {
		if PointsForDistance(Distance(g, targetCell, cols), radii) > 0 {
			count++
		}
	}
	return count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
