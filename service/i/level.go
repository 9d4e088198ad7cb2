package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

var (
	// ErrCacheMiss is returned by a LevelCache that does not hold the level.
	ErrCacheMiss = errors.New("level not cached")

	// ErrRecordNotFound is returned by a LevelRepo without a record for the level.
	ErrRecordNotFound = errors.New("level record not found")
)

// GenerateParams are the caller supplied generation parameters.
type GenerateParams struct {
	Width           int
	Height          int
	Seed            *int64 // Nil draws a seed.
	CorridorWidth   int
	BranchingFactor float64
}

// LevelManager is the level use case boundary consumed by the HTTP layer.
type LevelManager interface {
	// Generate builds a new level and returns it with an edit token scoped to it.
	Generate(ctx context.Context, p GenerateParams) (*game.Level, string, error)

	// Level loads a level by ID.
	Level(ctx context.Context, id uuid.UUID) (*game.Level, error)

	// FindPath returns the cheapest route between two cells of a level and its cost.
	FindPath(ctx context.Context, id uuid.UUID, from, to maze.Position) ([]maze.Cell, float64, error)

	// ClearWall opens one wall cell and reports whether it changed.
	ClearWall(ctx context.Context, id uuid.UUID, pos maze.Position) (bool, error)
}

// LevelCache holds encoded levels for fast access.
type LevelCache interface {
	Get(ctx context.Context, id uuid.UUID) (*game.Level, error)
	Put(ctx context.Context, l *game.Level) error

	// Lock takes the level's mutation lock. The returned func releases it.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}

// LevelRepo persists level records.
type LevelRepo interface {
	// Save inserts or replaces the record.
	Save(ctx context.Context, r game.Record) error

	// ByID retrieves a record, or ErrRecordNotFound.
	ByID(ctx context.Context, id uuid.UUID) (*game.Record, error)

	// AppendClearedWall adds pos to the record's cleared walls.
	AppendClearedWall(ctx context.Context, id uuid.UUID, pos maze.Position) error
}

// LevelEncoder converts levels to and from bytes.
type LevelEncoder interface {
	MarshalLevel(l *game.Level) ([]byte, error)
	UnmarshalLevel(b []byte) (*game.Level, error)
}
