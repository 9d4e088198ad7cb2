package maze

// direction is a unit cardinal step.
type direction struct {
	dx, dy int
}

// cardinals in the order neighbors are enumerated: north, east, south, west.
var cardinals = [4]direction{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// rect is an inclusive cell rectangle.
type rect struct {
	x0, y0, x1, y1 int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x0 && x <= r.x1 && y >= r.y0 && y <= r.y1
}

func (r rect) grow(n int) rect {
	return rect{x0: r.x0 - n, y0: r.y0 - n, x1: r.x1 + n, y1: r.y1 + n}
}

func (r rect) intersects(o rect) bool {
	return r.x0 <= o.x1 && o.x0 <= r.x1 && r.y0 <= o.y1 && o.y0 <= r.y1
}

func (r rect) intersect(o rect) rect {
	return rect{
		x0: max(r.x0, o.x0),
		y0: max(r.y0, o.y0),
		x1: min(r.x1, o.x1),
		y1: min(r.y1, o.y1),
	}
}

// clamp returns the cell of r closest to (x, y).
func (r rect) clamp(x, y int) Position {
	return Position{X: min(max(x, r.x0), r.x1), Y: min(max(y, r.y0), r.y1)}
}

// span returns the rectangle covering a and b, grown by pad.
func span(a, b Position, pad int) rect {
	return rect{
		x0: min(a.X, b.X) - pad,
		y0: min(a.Y, b.Y) - pad,
		x1: max(a.X, b.X) + pad,
		y1: max(a.Y, b.Y) + pad,
	}
}
