package maze

import "math"

// placeKeyRoom reserves the key room in the quadrant diagonally opposite the
// start, marks it as floor and picks its entrances.
func (g *Generator) placeKeyRoom() {
	half := keyRoomSize / 2
	cx := g.roomAxis(g.width, g.start.X)
	cy := g.roomAxis(g.height, g.start.Y)
	interior := rect{x0: 1, y0: 1, x1: g.width - 2, y1: g.height - 2}

	g.roomSpot = Position{X: cx, Y: cy}
	g.room = rect{x0: cx - half, y0: cy - half, x1: cx + half, y1: cy + half}.intersect(interior)

	for y := g.room.y0; y <= g.room.y1; y++ {
		for x := g.room.x0; x <= g.room.x1; x++ {
			g.grid.clearFlags(x, y, flagWall)
			g.grid.addFlags(x, y, flagKeyRoom)
		}
	}

	sides := []entrance{
		{pos: Position{X: cx, Y: g.room.y0}, dir: cardinals[0]},
		{pos: Position{X: g.room.x1, Y: cy}, dir: cardinals[1]},
		{pos: Position{X: cx, Y: g.room.y1}, dir: cardinals[2]},
		{pos: Position{X: g.room.x0, Y: cy}, dir: cardinals[3]},
	}
	count := minEntrances + g.rng.IntN(maxEntrances-minEntrances+1)
	g.rng.Shuffle(len(sides), func(i, j int) { sides[i], sides[j] = sides[j], sides[i] })
	g.entrances = sides[:count]
}

// roomAxis returns the room center along one axis of the given size: three
// quarters of the way across, snapped onto the carving lattice through origin
// so entrance corridors line up with maze corridors, and kept inside the border.
func (g *Generator) roomAxis(size, origin int) int {
	half := keyRoomSize / 2
	lo, hi := 1+half, size-2-half
	target := size * 3 / 4
	if lo > hi {
		// The room cannot fit; it gets clipped to the interior.
		return size / 2
	}

	c := origin + int(math.Round(float64(target-origin)/float64(g.step)))*g.step
	for c > hi && c-g.step >= lo {
		c -= g.step
	}
	for c < lo && c+g.step <= hi {
		c += g.step
	}
	if c < lo || c > hi {
		c = min(max(target, lo), hi)
	}
	return c
}

// connectEntrances carves outward from every entrance until the leading edge
// of the corridor meets the border or floor that does not belong to the room.
func (g *Generator) connectEntrances() {
	for _, e := range g.entrances {
		p := Position{X: e.pos.X + e.dir.dx, Y: e.pos.Y + e.dir.dy}
		for {
			lead := Position{X: p.X + e.dir.dx*g.halfWidth, Y: p.Y + e.dir.dy*g.halfWidth}
			if lead.X < 1 || lead.X > g.width-2 || lead.Y < 1 || lead.Y > g.height-2 {
				break
			}
			c := g.grid.at(lead.X, lead.Y)
			if c&flagWall == 0 && c&flagKeyRoom == 0 {
				break
			}
			g.carveArea(p.X, p.Y)
			p = Position{X: p.X + e.dir.dx, Y: p.Y + e.dir.dy}
		}
	}
}
