// Package board generates the deterministic color grid. Cell colors are a
// pure function of position and board dimensions, so every client renders
// the identical palette without the server shipping pixel data per room.
package board

import (
	"fmt"
	"math"
)

const (
	DefaultCols = 30
	DefaultRows = 16
)

// Cell is one entry of the color grid.
type Cell struct {
	Hex string  `json:"hex"`
	H   float64 `json:"h"`
	S   float64 `json:"s"`
	L   float64 `json:"l"`
}

// Generate builds the color grid for a cols-by-rows board, indexed row-major.
// Hue tracks the column; saturation peaks at the vertical center and
// lightness falls from top to bottom.
func Generate(cols, rows int) []Cell {
	cells := make([]Cell, cols*rows)

	for row := 0; row < rows; row++ {
		t := 0.5
		if rows > 1 {
			t = float64(row) / float64(rows-1)
		}
		s := 0.3 + 0.7*(1-math.Pow(2*t-1, 2))
		l := 0.95 - 0.75*t

		for col := 0; col < cols; col++ {
			h := 360 * float64(col) / float64(cols)
			cells[row*cols+col] = Cell{Hex: hslToHex(h, s, l), H: h, S: s, L: l}
		}
	}

	return cells
}

func hslToHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	toByte := func(v float64) int {
		return int(math.Round((v + m) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", toByte(r), toByte(g), toByte(b))
}
