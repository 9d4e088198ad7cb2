// Package pathfinding answers shortest-path queries over maze grids.
//
// Agents move in eight directions: cardinal steps cost 1 and diagonal steps
// cost √2. A diagonal step is only legal when both cardinal cells it cuts
// past are floor, so agents never squeeze between two touching wall corners.
package pathfinding

import (
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/zyedidia/generic/heap"
)

// Move costs.
const (
	CardinalCost = 1.0
	DiagonalCost = math.Sqrt2
)

// step is one of the eight moves, with the cost of taking it.
type step struct {
	dx, dy int
	cost   float64
}

// moves lists cardinal moves first, then diagonals.
var moves = [8]step{
	{0, -1, CardinalCost}, {1, 0, CardinalCost}, {0, 1, CardinalCost}, {-1, 0, CardinalCost},
	{1, -1, DiagonalCost}, {1, 1, DiagonalCost}, {-1, 1, DiagonalCost}, {-1, -1, DiagonalCost},
}

// node is an open set entry.
type node struct {
	idx int     // Flat grid index (y*width + x)
	g   float64 // Cost from the start
	f   float64 // g plus the heuristic
	seq int     // Discovery order, breaks ties between equal f scores
}

// Pathfinder runs A* queries over one grid. It keeps no state between calls
// and is safe for concurrent use.
type Pathfinder struct {
	grid *maze.Grid
}

// New creates a pathfinder over g. The pathfinder does not own g.
func New(g *maze.Grid) *Pathfinder {
	return &Pathfinder{grid: g}
}

// FindPath returns the cells of a cheapest route from start to goal, both
// included, or nil when no route exists.
func (pf *Pathfinder) FindPath(start, goal maze.Cell) []maze.Cell {
	from, to := start.Position(), goal.Position()
	width, height := pf.grid.Width(), pf.grid.Height()
	if !pf.grid.InBound(from.X, from.Y) || !pf.grid.InBound(to.X, to.Y) {
		return nil
	}

	passable := pf.grid.Passable()
	startIdx, goalIdx := from.Y*width+from.X, to.Y*width+to.X
	if !passable[startIdx] || !passable[goalIdx] {
		return nil
	}

	s := newSearch(width, height, passable)
	route := s.run(startIdx, goalIdx, to)
	if route == nil {
		return nil
	}

	cells := make([]maze.Cell, 0, len(route))
	for _, idx := range route {
		cells = append(cells, pf.grid.GetCell(idx%width, idx/width))
	}
	return cells
}

// search holds the transient state of one query.
type search struct {
	width    int
	height   int
	passable []bool
	gScore   []float64
	parent   []int
	closed   []bool
	open     *heap.Heap[node]
	seq      int
}

func newSearch(width, height int, passable []bool) *search {
	size := width * height
	s := &search{
		width:    width,
		height:   height,
		passable: passable,
		gScore:   make([]float64, size),
		parent:   make([]int, size),
		closed:   make([]bool, size),
		open: heap.New[node](func(a, b node) bool {
			if a.f != b.f {
				return a.f < b.f
			}
			return a.seq < b.seq
		}),
	}
	for i := range s.gScore {
		s.gScore[i] = math.Inf(1)
		s.parent[i] = -1
	}
	return s
}

func (s *search) push(idx int, g, f float64) {
	s.open.Push(node{idx: idx, g: g, f: f, seq: s.seq})
	s.seq++
}

// run expands nodes by lowest f until the goal is expanded or the open set
// drains. It returns the flat indices of the route.
func (s *search) run(startIdx, goalIdx int, goal maze.Position) []int {
	s.gScore[startIdx] = 0
	s.push(startIdx, 0, Octile(s.position(startIdx), goal))

	for s.open.Size() > 0 {
		cur, _ := s.open.Pop()
		if s.closed[cur.idx] || cur.g > s.gScore[cur.idx] {
			continue
		}
		if cur.idx == goalIdx {
			return s.reconstruct(goalIdx)
		}
		s.closed[cur.idx] = true

		x, y := cur.idx%s.width, cur.idx/s.width
		for _, m := range moves {
			nx, ny := x+m.dx, y+m.dy
			if !s.walkable(nx, ny) {
				continue
			}
			if m.dx != 0 && m.dy != 0 && (!s.walkable(x+m.dx, y) || !s.walkable(x, y+m.dy)) {
				continue
			}

			nIdx := ny*s.width + nx
			if s.closed[nIdx] {
				continue
			}
			tentative := cur.g + m.cost
			if tentative < s.gScore[nIdx] {
				s.gScore[nIdx] = tentative
				s.parent[nIdx] = cur.idx
				s.push(nIdx, tentative, tentative+Octile(maze.Position{X: nx, Y: ny}, goal))
			}
		}
	}
	return nil
}

func (s *search) walkable(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height && s.passable[y*s.width+x]
}

func (s *search) position(idx int) maze.Position {
	return maze.Position{X: idx % s.width, Y: idx / s.width}
}

// reconstruct walks parent links back from idx to the start.
func (s *search) reconstruct(idx int) []int {
	var route []int
	for ; idx != -1; idx = s.parent[idx] {
		route = append(route, idx)
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// Octile is the octile distance between a and b: min(dx,dy)·√2 + |dx-dy|.
// It never overestimates the cost of a route under these move costs.
func Octile(a, b maze.Position) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	return math.Min(dx, dy)*DiagonalCost + math.Abs(dx-dy)
}

// Cost returns the total move cost of a route.
func Cost(route []maze.Cell) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		if route[i].X != route[i-1].X && route[i].Y != route[i-1].Y {
			total += DiagonalCost
		} else {
			total += CardinalCost
		}
	}
	return total
}
