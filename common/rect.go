package common

// Rect is an axis-aligned rectangle in world pixels.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports whether two rects overlap. Rects that only share an edge
// do not intersect, so an entity resting on a tile is not inside it.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// ContainsPoint reports whether (x, y) lies inside the rect. The left and top
// edges are inclusive, the right and bottom edges exclusive.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }
