package maze

import (
	"fmt"
	"log"
	"os"
	"slices"
)

const (
	minDimension  = 3 // Smallest grid holding a border and one floor cell.
	keyRoomSize   = 9 // Side of the square key room.
	minEntrances  = 2
	maxEntrances  = 4
	minCorridor   = 1
	minBranching  = 0.0
	maxBranching  = 1.0
	defaultPrefix = "generator: "
)

// Config holds the generation parameters.
type Config struct {
	Width  int // Width of the grid in cells
	Height int // Height of the grid in cells

	// Seed makes generation reproducible. Nil draws a seed from the clock.
	Seed *int64

	// CorridorWidth is the thickness of carved passages. Clamped to >= 1 and
	// rounded up to the next odd value.
	CorridorWidth int

	// BranchingFactor in [0, 1]: 0 grows one long winding corridor (newest
	// frontier cell first), 1 grows many short branches (random frontier cell).
	BranchingFactor float64

	// Rand overrides the seeded source when set.
	Rand Source

	// Logger receives repair notices. Defaults to stderr.
	Logger *log.Logger
}

// Generator carves mazes with the growing-tree algorithm.
type Generator struct {
	width           int
	height          int
	seed            int64
	corridorWidth   int
	halfWidth       int
	wallThickness   int
	step            int
	branchingFactor float64
	source          Source
	logger          *log.Logger

	// per-run state
	rng       Source
	grid      *Grid
	start     Position
	room      rect
	roomSpot  Position
	entrances []entrance
}

// entrance is a key room edge midpoint and the direction leading out of the room.
type entrance struct {
	pos Position
	dir direction
}

// New returns a generator for the normalized form of c.
func New(c Config) *Generator {
	corridor := max(c.CorridorWidth, minCorridor)
	if corridor%2 == 0 {
		corridor++
	}
	half := corridor / 2
	wall := max(1, half)

	seed := RandomSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}

	logger := c.Logger
	if logger == nil {
		logger = log.New(os.Stderr, defaultPrefix, log.LstdFlags)
	}

	return &Generator{
		width:           max(c.Width, minDimension),
		height:          max(c.Height, minDimension),
		seed:            seed,
		corridorWidth:   corridor,
		halfWidth:       half,
		wallThickness:   wall,
		step:            corridor + wall,
		branchingFactor: min(max(c.BranchingFactor, minBranching), maxBranching),
		source:          c.Rand,
		logger:          logger,
	}
}

// Width returns the normalized grid width.
func (g *Generator) Width() int { return g.width }

// Height returns the normalized grid height.
func (g *Generator) Height() int { return g.height }

// Seed returns the seed driving generation.
func (g *Generator) Seed() int64 { return g.seed }

// CorridorWidth returns the effective, odd corridor width.
func (g *Generator) CorridorWidth() int { return g.corridorWidth }

// BranchingFactor returns the clamped branching factor.
func (g *Generator) BranchingFactor() float64 { return g.branchingFactor }

// Generate builds a new grid. Without an injected source every call with the
// same parameters returns the same layout.
func (g *Generator) Generate() *Grid {
	g.rng = g.source
	if g.rng == nil {
		g.rng = NewSource(g.seed)
	}
	g.grid = NewGrid(g.width, g.height)
	g.start = Position{
		X: min(1+g.halfWidth, g.width-2),
		Y: min(1+g.halfWidth, g.height-2),
	}

	g.placeKeyRoom()
	g.carveTree()
	g.connectEntrances()

	g.grid.addFlags(g.start.X, g.start.Y, flagStart)
	g.grid.clearFlags(g.start.X, g.start.Y, flagWall)
	g.grid.start = g.start
	g.grid.addFlags(g.roomSpot.X, g.roomSpot.Y, flagExit)
	g.grid.exit = g.roomSpot

	if !g.roomReachable() {
		g.forceConnect()
	}

	grid := g.grid
	g.grid, g.rng, g.entrances = nil, nil, nil
	return grid
}

// carveTree runs the growing-tree carve from the start cell.
func (g *Generator) carveTree() {
	g.carveArea(g.start.X, g.start.Y)
	g.grid.addFlags(g.start.X, g.start.Y, flagVisited)
	active := []Position{g.start}

	for len(active) > 0 {
		i := g.selectActive(len(active))
		cur := active[i]

		options := g.carvableDirections(cur)
		if len(options) == 0 {
			active = slices.Delete(active, i, i+1)
			continue
		}

		d := options[g.rng.IntN(len(options))]
		for k := 1; k <= g.step; k++ {
			g.carveArea(cur.X+d.dx*k, cur.Y+d.dy*k)
		}
		next := Position{X: cur.X + d.dx*g.step, Y: cur.Y + d.dy*g.step}
		g.grid.addFlags(next.X, next.Y, flagVisited)
		active = append(active, next)
	}
}

// selectActive picks an index into an active list of size n.
func (g *Generator) selectActive(n int) int {
	if n == 1 {
		return 0
	}
	if g.rng.Float64() < g.branchingFactor {
		return g.rng.IntN(n)
	}
	return n - 1
}

// carvableDirections lists the lattice moves from cur that stay inside the
// border, keep clear of the key room buffer and reach an uncarved cell.
func (g *Generator) carvableDirections(cur Position) []direction {
	buffer := g.room.grow(g.wallThickness)
	options := make([]direction, 0, len(cardinals))
	for _, d := range cardinals {
		next := Position{X: cur.X + d.dx*g.step, Y: cur.Y + d.dy*g.step}
		if !g.insideMargin(next) {
			continue
		}
		if span(cur, next, g.halfWidth).intersects(buffer) {
			continue
		}
		c := g.grid.at(next.X, next.Y)
		if c&flagWall == 0 || c&flagVisited != 0 {
			continue
		}
		options = append(options, d)
	}
	return options
}

// insideMargin reports whether a full corridor square around p fits inside the border.
func (g *Generator) insideMargin(p Position) bool {
	return p.X-g.halfWidth >= 1 && p.X+g.halfWidth <= g.width-2 &&
		p.Y-g.halfWidth >= 1 && p.Y+g.halfWidth <= g.height-2
}

// carveArea opens a corridor-width square centered at (cx, cy), keeping the
// outer border intact.
func (g *Generator) carveArea(cx, cy int) {
	for y := cy - g.halfWidth; y <= cy+g.halfWidth; y++ {
		for x := cx - g.halfWidth; x <= cx+g.halfWidth; x++ {
			if x < 1 || x > g.width-2 || y < 1 || y > g.height-2 {
				continue
			}
			g.grid.clearFlags(x, y, flagWall)
		}
	}
}

func (g *Generator) String() string {
	return fmt.Sprintf("Generator{%dx%d seed=%d corridor=%d branching=%.2f}",
		g.width, g.height, g.seed, g.corridorWidth, g.branchingFactor)
}
