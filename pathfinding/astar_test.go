package pathfinding

import (
	"io"
	"log"
	"math"
	"sync"
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridFrom builds a grid from rows where '#' is wall and anything else floor.
func gridFrom(rows ...string) *maze.Grid {
	g := maze.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch != '#' {
				g.ClearWall(x, y)
			}
		}
	}
	return g
}

func cell(g *maze.Grid, x, y int) maze.Cell {
	return g.GetCell(x, y)
}

// dijkstra returns the optimal route cost between two cells under the same
// movement rules, or +Inf when the goal is unreachable.
func dijkstra(g *maze.Grid, from, to maze.Position) float64 {
	w, h := g.Width(), g.Height()
	passable := g.Passable()
	walkable := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h && passable[y*w+x]
	}

	dist := make([]float64, w*h)
	done := make([]bool, w*h)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[from.Y*w+from.X] = 0

	for {
		cur := -1
		for i := range dist {
			if !done[i] && !math.IsInf(dist[i], 1) && (cur < 0 || dist[i] < dist[cur]) {
				cur = i
			}
		}
		if cur < 0 {
			break
		}
		done[cur] = true
		x, y := cur%w, cur/w
		for _, m := range moves {
			nx, ny := x+m.dx, y+m.dy
			if !walkable(nx, ny) {
				continue
			}
			if m.dx != 0 && m.dy != 0 && (!walkable(x+m.dx, y) || !walkable(x, y+m.dy)) {
				continue
			}
			if d := dist[cur] + m.cost; d < dist[ny*w+nx] {
				dist[ny*w+nx] = d
			}
		}
	}
	return dist[to.Y*w+to.X]
}

// assertValidRoute checks endpoints, adjacency, passability and corner rules.
func assertValidRoute(t *testing.T, g *maze.Grid, route []maze.Cell, from, to maze.Position) {
	t.Helper()
	require.NotEmpty(t, route)
	assert.Equal(t, from, route[0].Position())
	assert.Equal(t, to, route[len(route)-1].Position())

	for i, c := range route {
		assert.False(t, c.IsWall, "route crosses wall at %v", c.Position())
		if i == 0 {
			continue
		}
		prev := route[i-1]
		dx, dy := c.X-prev.X, c.Y-prev.Y
		assert.True(t, abs(dx) <= 1 && abs(dy) <= 1 && (dx != 0 || dy != 0),
			"non adjacent step %v -> %v", prev.Position(), c.Position())
		if dx != 0 && dy != 0 {
			assert.False(t, g.GetCell(prev.X+dx, prev.Y).IsWall, "corner cut at %v", prev.Position())
			assert.False(t, g.GetCell(prev.X, prev.Y+dy).IsWall, "corner cut at %v", prev.Position())
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestFindPath(t *testing.T) {
	t.Run("Open field goes diagonal", func(t *testing.T) {
		g := gridFrom(
			".....",
			".....",
			".....",
			".....",
			".....",
		)
		route := New(g).FindPath(cell(g, 0, 0), cell(g, 4, 4))
		assertValidRoute(t, g, route, maze.Position{X: 0, Y: 0}, maze.Position{X: 4, Y: 4})
		assert.Len(t, route, 5)
		assert.InDelta(t, 4*math.Sqrt2, Cost(route), 1e-9)
	})

	t.Run("Around a wall column", func(t *testing.T) {
		g := gridFrom(
			".....",
			"..#..",
			"..#..",
			"..#..",
			".....",
		)
		from, to := maze.Position{X: 0, Y: 2}, maze.Position{X: 4, Y: 2}
		route := New(g).FindPath(cell(g, from.X, from.Y), cell(g, to.X, to.Y))
		assertValidRoute(t, g, route, from, to)
		assert.InDelta(t, dijkstra(g, from, to), Cost(route), 1e-9)
	})

	t.Run("Start equals goal", func(t *testing.T) {
		g := gridFrom("...", "...")
		route := New(g).FindPath(cell(g, 1, 1), cell(g, 1, 1))
		require.Len(t, route, 1)
		assert.Equal(t, maze.Position{X: 1, Y: 1}, route[0].Position())
		assert.Zero(t, Cost(route))
	})

	t.Run("Diagonal squeeze between walls is blocked", func(t *testing.T) {
		g := gridFrom(
			".#",
			"#.",
		)
		assert.Nil(t, New(g).FindPath(cell(g, 0, 0), cell(g, 1, 1)))
	})

	t.Run("Single blocked corner forces cardinal steps", func(t *testing.T) {
		g := gridFrom(
			"..",
			"#.",
		)
		route := New(g).FindPath(cell(g, 0, 0), cell(g, 1, 1))
		assertValidRoute(t, g, route, maze.Position{X: 0, Y: 0}, maze.Position{X: 1, Y: 1})
		assert.Len(t, route, 3)
		assert.InDelta(t, 2.0, Cost(route), 1e-9)
	})

	t.Run("Detour instead of cutting corners", func(t *testing.T) {
		g := gridFrom(
			"....",
			".#..",
			"..#.",
			"....",
		)
		from, to := maze.Position{X: 1, Y: 2}, maze.Position{X: 2, Y: 1}
		route := New(g).FindPath(cell(g, from.X, from.Y), cell(g, to.X, to.Y))
		assertValidRoute(t, g, route, from, to)
		assert.Greater(t, len(route), 2)
		assert.InDelta(t, dijkstra(g, from, to), Cost(route), 1e-9)
	})

	t.Run("Enclosed goal", func(t *testing.T) {
		g := gridFrom(
			".....",
			".###.",
			".#.#.",
			".###.",
			".....",
		)
		assert.Nil(t, New(g).FindPath(cell(g, 0, 0), cell(g, 2, 2)))
	})

	t.Run("Wall endpoints", func(t *testing.T) {
		g := gridFrom(
			"..#",
			"...",
		)
		pf := New(g)
		assert.Nil(t, pf.FindPath(cell(g, 0, 0), cell(g, 2, 0)))
		assert.Nil(t, pf.FindPath(cell(g, 2, 0), cell(g, 0, 0)))
	})

	t.Run("Out of bounds endpoints", func(t *testing.T) {
		g := gridFrom("...", "...")
		pf := New(g)
		assert.Nil(t, pf.FindPath(maze.Cell{X: -1, Y: 0}, cell(g, 1, 1)))
		assert.Nil(t, pf.FindPath(cell(g, 0, 0), maze.Cell{X: 3, Y: 1}))
	})

	t.Run("Cleared wall opens a route", func(t *testing.T) {
		g := gridFrom(
			"..#..",
		)
		pf := New(g)
		assert.Nil(t, pf.FindPath(cell(g, 0, 0), cell(g, 4, 0)))

		require.True(t, g.ClearWall(2, 0))
		route := pf.FindPath(cell(g, 0, 0), cell(g, 4, 0))
		assertValidRoute(t, g, route, maze.Position{X: 0, Y: 0}, maze.Position{X: 4, Y: 0})
		assert.Len(t, route, 5)
	})
}

func TestFindPathOnGeneratedMazes(t *testing.T) {
	params := []struct {
		width, height, corridor int
		branching               float64
	}{
		{21, 21, 1, 0}, {31, 25, 1, 0.5}, {41, 41, 3, 1}, {33, 45, 5, 0.3},
	}

	for _, p := range params {
		for seed := int64(1); seed <= 5; seed++ {
			s := seed
			g := maze.New(maze.Config{
				Width:           p.width,
				Height:          p.height,
				Seed:            &s,
				CorridorWidth:   p.corridor,
				BranchingFactor: p.branching,
				Logger:          log.New(io.Discard, "", 0),
			}).Generate()

			from, to := g.Start(), g.Exit()
			route := New(g).FindPath(cell(g, from.X, from.Y), cell(g, to.X, to.Y))
			assertValidRoute(t, g, route, from, to)
			assert.InDelta(t, dijkstra(g, from, to), Cost(route), 1e-9)
			assert.GreaterOrEqual(t, Cost(route), Octile(from, to)-1e-9)
		}
	}
}

func TestFindPathConcurrent(t *testing.T) {
	seed := int64(11)
	g := maze.New(maze.Config{
		Width:         41,
		Height:        41,
		Seed:          &seed,
		CorridorWidth: 1,
		Logger:        log.New(io.Discard, "", 0),
	}).Generate()
	pf := New(g)
	from, to := g.Start(), g.Exit()
	want := pf.FindPath(cell(g, from.X, from.Y), cell(g, to.X, to.Y))
	require.NotNil(t, want)

	var wg sync.WaitGroup
	results := make([][]maze.Cell, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = pf.FindPath(cell(g, from.X, from.Y), cell(g, to.X, to.Y))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestOctile(t *testing.T) {
	a := maze.Position{X: 0, Y: 0}
	assert.Zero(t, Octile(a, a))
	assert.InDelta(t, 3.0, Octile(a, maze.Position{X: 3, Y: 0}), 1e-9)
	assert.InDelta(t, 2*math.Sqrt2+1, Octile(a, maze.Position{X: 2, Y: 3}), 1e-9)
	assert.InDelta(t, Octile(a, maze.Position{X: 5, Y: 2}), Octile(maze.Position{X: 5, Y: 2}, a), 1e-9)
}
