package maze

import "codeberg.org/anaseto/gruid/rl"

// Cell flags as stored in the backing rl.Grid.
const (
	flagWall rl.Cell = 1 << iota
	flagVisited
	flagStart
	flagExit
	flagKeyRoom

	// persistentFlags are the flags that outlive generation.
	persistentFlags = flagWall | flagStart | flagExit | flagKeyRoom
)

// Cell represents a single cell in a maze grid.
// It is a copy of the grid state at the time it was read.
type Cell struct {
	X         int  // X is the column of the cell.
	Y         int  // Y is the row of the cell.
	IsWall    bool // IsWall indicates whether the cell blocks movement.
	IsVisited bool // IsVisited is set on lattice cells reached while carving.
	IsStart   bool // IsStart marks the player's start cell.
	IsExit    bool // IsExit marks the center of the key room.
	IsKeyRoom bool // IsKeyRoom marks cells belonging to the key room.
}

// Position returns the coordinates of the cell.
func (c Cell) Position() Position {
	return Position{X: c.X, Y: c.Y}
}

// Position represents the coordinates of a cell in the maze grid.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

func cellFromFlags(x, y int, f rl.Cell) Cell {
	return Cell{
		X:         x,
		Y:         y,
		IsWall:    f&flagWall != 0,
		IsVisited: f&flagVisited != 0,
		IsStart:   f&flagStart != 0,
		IsExit:    f&flagExit != 0,
		IsKeyRoom: f&flagKeyRoom != 0,
	}
}
