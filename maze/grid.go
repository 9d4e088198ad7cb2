/*
Package maze builds rectangular wall/floor mazes for top-down exploration.

A Grid is a dense array of cells that are either wall or floor, with role
flags for the start cell, the exit and the key room. The Generator carves a
Grid with a growing-tree algorithm over a corridor lattice, embeds a 9x9 key
room in the quadrant opposite the start and repairs the layout when the room
ended up unreachable, so every returned Grid connects the start to the room.

After generation a Grid is read-only except for ClearWall, which gameplay uses
to open single wall cells.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrFlagsSizeMismatch = errors.New("flags do not match grid dimensions")
)

// Grid is the 2D container of maze cells.
type Grid struct {
	width  int
	height int
	cells  rl.Grid
	start  Position
	exit   Position
	mu     sync.RWMutex
}

// NewGrid returns a grid of the given dimensions with every cell a wall.
func NewGrid(width, height int) *Grid {
	cells := rl.NewGrid(width, height)
	cells.Fill(flagWall)
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
		start:  Position{X: -1, Y: -1},
		exit:   Position{X: -1, Y: -1},
	}
}

// Restore rebuilds a grid from the flags produced by Flags.
func Restore(width, height int, flags []byte) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(flags) != width*height {
		return nil, fmt.Errorf("%w: got %d cells for %dx%d", ErrFlagsSizeMismatch, len(flags), width, height)
	}

	g := NewGrid(width, height)
	for i, f := range flags {
		x, y := i%width, i/width
		c := rl.Cell(f) & persistentFlags
		g.set(x, y, c)
		if c&flagStart != 0 {
			g.start = Position{X: x, Y: y}
		}
		if c&flagExit != 0 {
			g.exit = Position{X: x, Y: y}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBound reports whether (x, y) lies inside the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// GetCell returns a copy of the cell at (x, y).
// Out of bounds coordinates yield a wall cell.
func (g *Grid) GetCell(x, y int) Cell {
	if !g.InBound(x, y) {
		return Cell{X: x, Y: y, IsWall: true}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return cellFromFlags(x, y, g.at(x, y))
}

// Start returns the position of the start cell.
func (g *Grid) Start() Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.start
}

// Exit returns the position of the exit cell.
func (g *Grid) Exit() Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.exit
}

// ClearWall turns the wall at (x, y) into floor.
// It reports whether the cell changed.
func (g *Grid) ClearWall(x, y int) bool {
	if !g.InBound(x, y) {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	c := g.at(x, y)
	if c&flagWall == 0 {
		return false
	}
	g.set(x, y, c&^flagWall)
	return true
}

// Passable returns a row-major snapshot of the walkable cells.
func (g *Grid) Passable() []bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	passable := make([]bool, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			passable[y*g.width+x] = g.at(x, y)&flagWall == 0
		}
	}
	return passable
}

// Flags returns the row-major persistent flags of every cell, one byte each.
func (g *Grid) Flags() []byte {
	g.mu.RLock()
	defer g.mu.RUnlock()

	flags := make([]byte, g.width*g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			flags[y*g.width+x] = byte(g.at(x, y) & persistentFlags)
		}
	}
	return flags
}

// Rows renders the grid one string per row.
// Walls are '#', floor '.', the key room 'K', the start 'S' and the exit 'E'.
func (g *Grid) Rows() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rows := make([]string, 0, g.height)
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		sb.Reset()
		for x := 0; x < g.width; x++ {
			sb.WriteByte(glyph(g.at(x, y)))
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}

func glyph(c rl.Cell) byte {
	switch {
	case c&flagStart != 0:
		return 'S'
	case c&flagExit != 0:
		return 'E'
	case c&flagWall != 0:
		return '#'
	case c&flagKeyRoom != 0:
		return 'K'
	default:
		return '.'
	}
}

// at and set skip locking; callers hold the lock or own the grid.
func (g *Grid) at(x, y int) rl.Cell {
	return g.cells.At(gruid.Point{X: x, Y: y})
}

func (g *Grid) set(x, y int, c rl.Cell) {
	g.cells.Set(gruid.Point{X: x, Y: y}, c)
}

func (g *Grid) isFloor(x, y int) bool {
	return g.InBound(x, y) && g.at(x, y)&flagWall == 0
}

func (g *Grid) addFlags(x, y int, f rl.Cell) {
	g.set(x, y, g.at(x, y)|f)
}

func (g *Grid) clearFlags(x, y int, f rl.Cell) {
	g.set(x, y, g.at(x, y)&^f)
}
