// Package game wraps generated mazes into levels that can be stored,
// rebuilt and edited after generation.
package game

import (
	"errors"
	"log"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

var ErrOutOfBounds = errors.New("position out of bounds")

// Params are the normalized generation parameters of a level, seed included,
// so that generating from them again yields the same layout.
type Params struct {
	Width           int     `json:"width" bson:"width"`
	Height          int     `json:"height" bson:"height"`
	Seed            int64   `json:"seed" bson:"seed"`
	CorridorWidth   int     `json:"corridorWidth" bson:"corridorWidth"`
	BranchingFactor float64 `json:"branchingFactor" bson:"branchingFactor"`
}

// Level is a generated maze together with everything needed to rebuild it.
type Level struct {
	ID           uuid.UUID
	Params       Params
	Grid         *maze.Grid
	ClearedWalls []maze.Position
	CreatedAt    time.Time
}

// NewLevel generates a fresh level. A nil seed draws one from the clock; the
// level records whichever seed was used.
func NewLevel(width, height int, seed *int64, corridorWidth int, branchingFactor float64, logger *log.Logger) *Level {
	gen := maze.New(maze.Config{
		Width:           width,
		Height:          height,
		Seed:            seed,
		CorridorWidth:   corridorWidth,
		BranchingFactor: branchingFactor,
		Logger:          logger,
	})

	return &Level{
		ID: uuid.New(),
		Params: Params{
			Width:           gen.Width(),
			Height:          gen.Height(),
			Seed:            gen.Seed(),
			CorridorWidth:   gen.CorridorWidth(),
			BranchingFactor: gen.BranchingFactor(),
		},
		Grid:      gen.Generate(),
		CreatedAt: time.Now().UTC(),
	}
}

// Record is the persisted description of a level. The grid itself is not
// stored; it is regenerated from Params.
type Record struct {
	ID           uuid.UUID       `bson:"_id"`
	Params       Params          `bson:"params"`
	ClearedWalls []maze.Position `bson:"clearedWalls"`
	CreatedAt    time.Time       `bson:"createdAt"`
}

// Record returns the persisted description of l.
func (l *Level) Record() Record {
	return Record{
		ID:           l.ID,
		Params:       l.Params,
		ClearedWalls: append([]maze.Position(nil), l.ClearedWalls...),
		CreatedAt:    l.CreatedAt,
	}
}

// Rebuild regenerates a level from its record and replays the walls cleared
// since generation.
func Rebuild(r Record, logger *log.Logger) *Level {
	seed := r.Params.Seed
	l := NewLevel(r.Params.Width, r.Params.Height, &seed, r.Params.CorridorWidth, r.Params.BranchingFactor, logger)
	l.ID = r.ID
	l.CreatedAt = r.CreatedAt
	for _, pos := range r.ClearedWalls {
		_, _ = l.ClearWall(pos)
	}
	return l
}

// ClearWall opens the wall at pos. It reports whether the cell changed and
// records changed cells in ClearedWalls.
func (l *Level) ClearWall(pos maze.Position) (bool, error) {
	if !l.Grid.InBound(pos.X, pos.Y) {
		return false, ErrOutOfBounds
	}
	if !l.Grid.ClearWall(pos.X, pos.Y) {
		return false, nil
	}
	l.ClearedWalls = append(l.ClearedWalls, pos)
	return true, nil
}
