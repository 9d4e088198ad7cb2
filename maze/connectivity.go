package maze

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/zyedidia/generic/mapset"
)

// floorPath implements paths.Pather over the floor cells of a grid, moving
// in the four cardinal directions.
type floorPath struct {
	grid *Grid
	nbs  paths.Neighbors
}

func (fp *floorPath) Neighbors(p gruid.Point) []gruid.Point {
	return fp.nbs.Cardinal(p, func(q gruid.Point) bool {
		return fp.grid.isFloor(q.X, q.Y)
	})
}

// floodFill returns the floor cells reachable from p in breadth-first order,
// p first. Callers hold the grid lock or own the grid.
func floodFill(g *Grid, p Position) []Position {
	if !g.isFloor(p.X, p.Y) {
		return nil
	}

	pr := paths.NewPathRange(gruid.NewRange(0, 0, g.width, g.height))
	nodes := pr.BreadthFirstMap(&floorPath{grid: g}, []gruid.Point{{X: p.X, Y: p.Y}}, g.width*g.height)

	order := make([]Position, 0, len(nodes)+1)
	order = append(order, p)
	for _, n := range nodes {
		if n.P.X == p.X && n.P.Y == p.Y {
			continue
		}
		order = append(order, Position{X: n.P.X, Y: n.P.Y})
	}
	return order
}

// Reachable returns the set of floor cells connected to from through cardinal
// moves. A wall or out of bounds origin yields an empty set.
func Reachable(g *Grid, from Position) mapset.Set[Position] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	reachable := mapset.New[Position]()
	for _, p := range floodFill(g, from) {
		reachable.Put(p)
	}
	return reachable
}

// roomReachable reports whether a cardinal flood fill from the start touches
// the key room.
func (g *Generator) roomReachable() bool {
	for _, p := range floodFill(g.grid, g.start) {
		if g.grid.at(p.X, p.Y)&flagKeyRoom != 0 {
			return true
		}
	}
	return false
}

// forceConnect carves an L-shaped corridor, horizontal then vertical, from
// the reachable floor cell closest to the room center to the nearest room
// edge cell.
func (g *Generator) forceConnect() {
	center := g.roomSpot
	closest := g.start
	bestDist := -1
	for _, p := range floodFill(g.grid, g.start) {
		dx, dy := p.X-center.X, p.Y-center.Y
		if d := dx*dx + dy*dy; bestDist < 0 || d < bestDist {
			closest, bestDist = p, d
		}
	}

	target := g.room.clamp(closest.X, closest.Y)
	g.logger.Printf("key room unreachable, carving from (%d,%d) to (%d,%d)",
		closest.X, closest.Y, target.X, target.Y)

	x, y := closest.X, closest.Y
	for ; x != target.X; x += sign(target.X - x) {
		g.carveArea(x, y)
	}
	for ; y != target.Y; y += sign(target.Y - y) {
		g.carveArea(x, y)
	}
	g.carveArea(x, y)
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
