package core

import "time"

// RuntimeConfig contains configuration passed to the presentation shell.
// The world is mapped onto terminal cells at CellW x CellH world units per cell.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	CellW        int           // World units per column
	CellH        int           // World units per row
	TickInterval time.Duration // Wall time per clock tick; one tick is a tenth of a second of play
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      100,
		ScreenH:      30,
		CellW:        10,
		CellH:        25,
		TickInterval: 100 * time.Millisecond,
	}
}

// ToWorld converts a cell coordinate to the world position at the cell's center.
func (c RuntimeConfig) ToWorld(col, row int) Point {
	return Point{X: col*c.CellW + c.CellW/2, Y: row*c.CellH + c.CellH/2}
}

// ToCells converts a world rectangle to the cell rectangle that covers it.
func (c RuntimeConfig) ToCells(r Rect) Rect {
	x0 := r.X / c.CellW
	y0 := r.Y / c.CellH
	x1 := (r.Right() + c.CellW - 1) / c.CellW
	y1 := (r.Bottom() + c.CellH - 1) / c.CellH
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return NewRect(x0, y0, x1-x0, y1-y0)
}
