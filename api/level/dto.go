// Package levelapi exposes maze levels over HTTP.
package levelapi

import (
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
)

// GenerateRequest asks for a new level. Fields left out come from the named
// preset, or the default preset.
type GenerateRequest struct {
	Preset          string   `json:"preset"`
	Width           int      `json:"width" binding:"omitempty,min=1,max=1001"`
	Height          int      `json:"height" binding:"omitempty,min=1,max=1001"`
	Seed            *int64   `json:"seed"`
	CorridorWidth   int      `json:"corridorWidth" binding:"omitempty,min=1,max=99"`
	BranchingFactor *float64 `json:"branchingFactor"`
}

// LevelResponse describes a level.
type LevelResponse struct {
	ID              string          `json:"id"`
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	Seed            int64           `json:"seed"`
	CorridorWidth   int             `json:"corridorWidth"`
	BranchingFactor float64         `json:"branchingFactor"`
	Start           maze.Position   `json:"start"`
	Exit            maze.Position   `json:"exit"`
	Rows            []string        `json:"rows"`
	ClearedWalls    []maze.Position `json:"clearedWalls"`
	EditToken       string          `json:"editToken,omitempty"`
}

func newLevelResponse(l *game.Level, token string) *LevelResponse {
	cleared := l.ClearedWalls
	if cleared == nil {
		cleared = []maze.Position{}
	}
	return &LevelResponse{
		ID:              l.ID.String(),
		Width:           l.Params.Width,
		Height:          l.Params.Height,
		Seed:            l.Params.Seed,
		CorridorWidth:   l.Params.CorridorWidth,
		BranchingFactor: l.Params.BranchingFactor,
		Start:           l.Grid.Start(),
		Exit:            l.Grid.Exit(),
		Rows:            l.Grid.Rows(),
		ClearedWalls:    cleared,
		EditToken:       token,
	}
}

// PathRequest asks for a route between two cells.
type PathRequest struct {
	From *maze.Position `json:"from" binding:"required"`
	To   *maze.Position `json:"to" binding:"required"`
}

// PathResponse is an ordered route, both ends included.
type PathResponse struct {
	Path []maze.Position `json:"path"`
	Cost float64         `json:"cost"`
}

func newPathResponse(route []maze.Cell, cost float64) *PathResponse {
	path := make([]maze.Position, 0, len(route))
	for _, c := range route {
		path = append(path, c.Position())
	}
	return &PathResponse{Path: path, Cost: cost}
}

// WallRequest names a wall cell to clear.
type WallRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

// WallResponse reports whether the cell changed.
type WallResponse struct {
	Cleared bool `json:"cleared"`
}
