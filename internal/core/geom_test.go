package core

import "testing"

func TestRectIntersects(t *testing.T) {
	character := NewRect(450, 300, 90, 90)

	tests := []struct {
		name     string
		other    Rect
		expected bool
	}{
		{"door overlaps right side", NewRect(530, 300, 40, 100), true},
		{"door just past right edge", NewRect(540, 300, 40, 100), false},
		{"floor strip touching bottom", NewRect(0, 390, 1000, 10), false},
		{"wall touching top", NewRect(0, 290, 1000, 10), false},
		{"key under the character", NewRect(470, 320, 30, 20), true},
		{"corner overlap by one unit", NewRect(539, 389, 20, 20), true},
		{"unsized object", NewRect(480, 330, 0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := character.Intersects(tc.other); got != tc.expected {
				t.Errorf("Intersects(%v) = %v, expected %v", tc.other, got, tc.expected)
			}
			if got := tc.other.Intersects(character); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 90, 90)

	tests := []struct {
		name     string
		inner    Rect
		expected bool
	}{
		{"fully inside", NewRect(10, 10, 30, 30), true},
		{"same rect", NewRect(0, 0, 90, 90), true},
		{"touching right edge", NewRect(60, 0, 30, 30), true},
		{"poking out", NewRect(70, 0, 30, 30), false},
		{"disjoint", NewRect(200, 200, 10, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := outer.ContainsRect(tc.inner); got != tc.expected {
				t.Errorf("ContainsRect(%v) = %v, expected %v", tc.inner, got, tc.expected)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(500, 500, 90, 90).Translate(-10, 0)
	if r.X != 490 || r.Y != 500 || r.W != 90 || r.H != 90 {
		t.Errorf("Translate() = %+v, expected {490 500 90 90}", r)
	}

	moved := r.At(0, 0)
	if moved.X != 0 || moved.Y != 0 || moved.W != 90 {
		t.Errorf("At() = %+v, expected {0 0 90 90}", moved)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}
