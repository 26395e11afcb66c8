// Package layout holds the grid geometry shared by widgets and the
// dashboard renderer.
package layout

import (
	"fmt"
	"strconv"
)

// Grid is the number of cells along each axis of the dashboard.
const Grid = 32

// Rect is a rectangle in grid cells.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Full covers the whole grid.
var Full = Rect{X: 0, Y: 0, W: Grid, H: Grid}

// Clamp moves r inside the grid. Origins are pulled into [0, Grid), sizes
// into [1, Grid-origin]. It never rejects.
func Clamp(r Rect) Rect {
	r.X = clampInt(r.X, 0, Grid-1)
	r.Y = clampInt(r.Y, 0, Grid-1)
	r.W = clampInt(r.W, 1, Grid-r.X)
	r.H = clampInt(r.H, 1, Grid-r.Y)
	return r
}

// Valid reports whether r already satisfies the grid bounds.
func (r Rect) Valid() bool {
	return Clamp(r) == r
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	return r.W * r.H
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Item is the external grid format exchanged with the dashboard: the key
// is the widget's index written in decimal.
type Item struct {
	Key string `json:"i"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
	W   int    `json:"w"`
	H   int    `json:"h"`
}

// ItemFor converts a widget rectangle into its external item.
func ItemFor(index int, r Rect) Item {
	return Item{Key: strconv.Itoa(index), X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Index parses the widget index encoded in the item's key.
func (it Item) Index() (int, error) {
	idx, err := strconv.Atoi(it.Key)
	if err != nil {
		return 0, fmt.Errorf("invalid layout key %q: %w", it.Key, err)
	}
	if idx < 0 {
		return 0, fmt.Errorf("invalid layout key %q", it.Key)
	}
	return idx, nil
}

// Rect returns the item's clamped rectangle.
func (it Item) Rect() Rect {
	return Clamp(Rect{X: it.X, Y: it.Y, W: it.W, H: it.H})
}

// Split partitions r in two along its longer axis. Wide rectangles split
// left/right, everything else top/bottom. The first half gets the floor.
// ok is false when the axis is shorter than two cells.
func Split(r Rect) (first, second Rect, ok bool) {
	if r.W > r.H {
		left := r.W / 2
		return Rect{X: r.X, Y: r.Y, W: left, H: r.H},
			Rect{X: r.X + left, Y: r.Y, W: r.W - left, H: r.H}, true
	}
	if r.H < 2 {
		return r, Rect{}, false
	}
	top := r.H / 2
	return Rect{X: r.X, Y: r.Y, W: r.W, H: top},
		Rect{X: r.X, Y: r.Y + top, W: r.W, H: r.H - top}, true
}
