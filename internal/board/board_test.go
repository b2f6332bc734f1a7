package board

import (
	"regexp"
	"testing"
)

func TestGenerate_Size(t *testing.T) {
	cells := Generate(DefaultCols, DefaultRows)
	if len(cells) != DefaultCols*DefaultRows {
		t.Errorf("len = %d, want %d", len(cells), DefaultCols*DefaultRows)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(30, 16)
	b := Generate(30, 16)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerate_HexFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for i, c := range Generate(30, 16) {
		if !pattern.MatchString(c.Hex) {
			t.Fatalf("cell %d hex %q doesn't match #rrggbb", i, c.Hex)
		}
	}
}

func TestGenerate_HueVariesAcrossRow(t *testing.T) {
	cells := Generate(30, 16)
	seen := make(map[string]bool)
	for col := 0; col < 30; col++ {
		seen[cells[col].Hex] = true
	}
	if len(seen) < 25 {
		t.Errorf("row 0 has only %d distinct colors, expected near 30", len(seen))
	}
}

func TestGenerate_SingleRow(t *testing.T) {
	cells := Generate(5, 1)
	if len(cells) != 5 {
		t.Fatalf("len = %d, want 5", len(cells))
	}
	// rows == 1 must not divide by zero; saturation sits at the midpoint
	if cells[0].S != 1.0 {
		t.Errorf("single-row saturation = %v, want 1.0", cells[0].S)
	}
}
