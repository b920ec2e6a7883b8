package render

import "strings"

// Braille patterns pack 2x4 dots per character cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var brailleDots = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot-matrix surface. Coordinates passed to Set
// and Line are sub-pixel coordinates: the drawable area is
// (Cols*2) x (Rows*4) dots. Each cell remembers the color slot of the
// last dot drawn into it; slot -1 means uncolored.
type Canvas struct {
	Cols, Rows int
	cells      [][]rune
	slots      [][]int
}

// NewCanvas returns a cleared canvas of cols x rows character cells.
func NewCanvas(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &Canvas{Cols: cols, Rows: rows}
	c.cells = make([][]rune, rows)
	c.slots = make([][]int, rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, cols)
		c.slots[i] = make([]int, cols)
		for j := range c.cells[i] {
			c.cells[i][j] = 0x2800
			c.slots[i][j] = -1
		}
	}
	return c
}

// DotWidth returns the drawable width in dots.
func (c *Canvas) DotWidth() int { return c.Cols * 2 }

// DotHeight returns the drawable height in dots.
func (c *Canvas) DotHeight() int { return c.Rows * 4 }

// Set turns on the dot at (x, y) with the given color slot.
// Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y, slot int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row][col] |= brailleDots[y%4][x%2]
	c.slots[row][col] = slot
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = 0x2800
			c.slots[i][j] = -1
		}
	}
}

// Line draws a line of dots from (x0, y0) to (x1, y1) using
// Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1, slot int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0, slot)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Blot fills a small square of dots centered at (x, y); r is the
// half-width in dots. Used for markers and arrow heads.
func (c *Canvas) Blot(x, y, r, slot int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy, slot)
		}
	}
}

// CellAt reports the braille rune and color slot of the character
// cell at (col, row).
func (c *Canvas) CellAt(col, row int) (rune, int) {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return 0x2800, -1
	}
	return c.cells[row][col], c.slots[row][col]
}

// DotSet reports whether the dot at (x, y) is on.
func (c *Canvas) DotSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return false
	}
	return c.cells[row][col]&brailleDots[y%4][x%2] != 0
}

// String renders the canvas without color, one line per cell row.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
