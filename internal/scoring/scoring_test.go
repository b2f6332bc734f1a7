package scoring

import "testing"

func TestDistance_Known(t *testing.T) {
	cols := 30

	tests := []struct {
		a, b, want int
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 30, 1},   // one row down
		{0, 31, 1},   // diagonal neighbor
		{0, 62, 2},   // two rows, two cols
		{5, 95, 3},   // three rows straight down
		{29, 30, 29}, // end of row 0 to start of row 1
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b, cols); got != tt.want {
			t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	cols := 30
	cells := []int{0, 1, 29, 30, 59, 250, 479}
	for _, a := range cells {
		for _, b := range cells {
			if Distance(a, b, cols) != Distance(b, a, cols) {
				t.Errorf("Distance(%d, %d) != Distance(%d, %d)", a, b, b, a)
			}
		}
	}
}

func TestDistance_ZeroOnlyForSameCell(t *testing.T) {
	cols := 30
	for a := 0; a < 90; a++ {
		for b := 0; b < 90; b++ {
			d := Distance(a, b, cols)
			if (d == 0) != (a == b) {
				t.Errorf("Distance(%d, %d) = %d, zero should hold iff cells equal", a, b, d)
			}
		}
	}
}

func TestPointsForDistance(t *testing.T) {
	radii := DefaultRadii()

	tests := []struct {
		d, want int
	}{
		{0, 3},
		{1, 2},
		{2, 1},
		{3, 0},
		{10, 0},
	}
	for _, tt := range tests {
		if got := PointsForDistance(tt.d, radii); got != tt.want {
			t.Errorf("PointsForDistance(%d) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestPointsForDistance_FirstMatchingTierWins(t *testing.T) {
	radii := []Radius{{MaxDist: 2, Points: 5}, {MaxDist: 4, Points: 1}}
	if got := PointsForDistance(1, radii); got != 5 {
		t.Errorf("PointsForDistance(1) = %d, want 5", got)
	}
	if got := PointsForDistance(3, radii); got != 1 {
		t.Errorf("PointsForDistance(3) = %d, want 1", got)
	}
}

func TestCueGiverScore(t *testing.T) {
	cols := 30
	target := 65
	radii := DefaultRadii()

	// 65 itself, a neighbor, and two far misses
	guesses := []int{65, 66, 0, 300}
	if got := CueGiverScore(guesses, target, cols, radii); got != 2 {
		t.Errorf("CueGiverScore = %d, want 2", got)
	}
}

func TestCueGiverScore_NeverExceedsGuessCount(t *testing.T) {
	cols := 30
	radii := DefaultRadii()
	guesses := []int{10, 11, 12, 13, 14}
	for target := 0; target < 60; target++ {
		got := CueGiverScore(guesses, target, cols, radii)
		if got < 0 || got > len(guesses) {
			t.Fatalf("CueGiverScore(target=%d) = %d, out of [0, %d]", target, got, len(guesses))
		}
	}
}

func TestCueGiverScore_Empty(t *testing.T) {
	if got := CueGiverScore(nil, 0, 30, DefaultRadii()); got != 0 {
		t.Errorf("CueGiverScore(nil) = %d, want 0", got)
	}
}
