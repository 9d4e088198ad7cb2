package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/pathfinding"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultTokenTTL = 24 * time.Hour
	ClaimLevelID    = "levelID"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrNoPath        = errors.New("no path between cells")
	ErrOutOfBounds   = game.ErrOutOfBounds
)

// Options configures a LevelService.
type Options struct {
	TokenTTL        time.Duration // Lifetime of edit tokens
	Logger          *log.Logger   // Service logger
	GeneratorLogger *log.Logger   // Receives generator repair notices
}

// LevelService implements i.LevelManager on top of a cache and a repository.
type LevelService struct {
	cache     i.LevelCache
	repo      i.LevelRepo
	tokenizer i.Tokenizer
	tokenTTL  time.Duration
	logger    *log.Logger
	genLogger *log.Logger
}

func NewLevelService(cache i.LevelCache, repo i.LevelRepo, tokenizer i.Tokenizer, opts *Options) (i.LevelManager, error) {
	if cache == nil || repo == nil || tokenizer == nil {
		return nil, errors.New("level service requires a cache, a repository and a tokenizer")
	}
	if opts == nil {
		opts = &Options{}
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stdout, "[LEVEL-SERVICE] ", log.LstdFlags)
	}
	if opts.GeneratorLogger == nil {
		opts.GeneratorLogger = opts.Logger
	}

	return &LevelService{
		cache:     cache,
		repo:      repo,
		tokenizer: tokenizer,
		tokenTTL:  opts.TokenTTL,
		logger:    opts.Logger,
		genLogger: opts.GeneratorLogger,
	}, nil
}

// Generate implements i.LevelManager.
func (s *LevelService) Generate(ctx context.Context, p i.GenerateParams) (*game.Level, string, error) {
	seed := maze.RandomSeed()
	if p.Seed != nil {
		seed = *p.Seed
	}

	level := game.NewLevel(p.Width, p.Height, &seed, p.CorridorWidth, p.BranchingFactor, s.genLogger)
	if err := s.repo.Save(ctx, level.Record()); err != nil {
		s.logError("saving level %s: %v", level.ID, err)
		return nil, "", fmt.Errorf("saving level: %w", err)
	}
	s.cachePut(ctx, level)

	token, err := s.tokenizer.Generate(map[string]interface{}{
		ClaimLevelID: level.ID.String(),
	}, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing edit token: %w", err)
	}

	s.logInfo("generated level %s (%dx%d seed=%d corridor=%d branching=%.2f)",
		level.ID, level.Params.Width, level.Params.Height, level.Params.Seed,
		level.Params.CorridorWidth, level.Params.BranchingFactor)
	return level, token, nil
}

// Level implements i.LevelManager. A cache miss rebuilds the level from its
// record and caches it again.
func (s *LevelService) Level(ctx context.Context, id uuid.UUID) (*game.Level, error) {
	level, err := s.cache.Get(ctx, id)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, i.ErrCacheMiss) {
		s.logError("reading level %s from cache: %v", id, err)
	}

	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, i.ErrRecordNotFound) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("loading level record: %w", err)
	}

	level = game.Rebuild(*record, s.genLogger)
	s.logInfo("rebuilt level %s from its record (%d cleared walls)", id, len(record.ClearedWalls))
	s.cachePut(ctx, level)
	return level, nil
}

// FindPath implements i.LevelManager.
func (s *LevelService) FindPath(ctx context.Context, id uuid.UUID, from, to maze.Position) ([]maze.Cell, float64, error) {
	level, err := s.Level(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	grid := level.Grid
	if !grid.InBound(from.X, from.Y) || !grid.InBound(to.X, to.Y) {
		return nil, 0, ErrOutOfBounds
	}

	route := pathfinding.New(grid).FindPath(grid.GetCell(from.X, from.Y), grid.GetCell(to.X, to.Y))
	if route == nil {
		return nil, 0, ErrNoPath
	}
	return route, pathfinding.Cost(route), nil
}

// ClearWall implements i.LevelManager. Mutations of one level are serialized
// through the cache lock.
func (s *LevelService) ClearWall(ctx context.Context, id uuid.UUID, pos maze.Position) (bool, error) {
	unlock, err := s.cache.Lock(ctx, id)
	if err != nil {
		return false, fmt.Errorf("locking level: %w", err)
	}
	defer unlock()

	level, err := s.Level(ctx, id)
	if err != nil {
		return false, err
	}

	changed, err := level.ClearWall(pos)
	if err != nil || !changed {
		return false, err
	}

	if err := s.repo.AppendClearedWall(ctx, id, pos); err != nil {
		s.logError("recording cleared wall (%d,%d) on level %s: %v", pos.X, pos.Y, id, err)
		return false, fmt.Errorf("recording cleared wall: %w", err)
	}
	s.cachePut(ctx, level)

	s.logInfo("cleared wall (%d,%d) on level %s", pos.X, pos.Y, id)
	return true, nil
}

// cachePut stores the level, logging failures. The repository remains the
// source of truth.
func (s *LevelService) cachePut(ctx context.Context, level *game.Level) {
	if err := s.cache.Put(ctx, level); err != nil {
		s.logError("caching level %s: %v", level.ID, err)
	}
}

func (s *LevelService) logInfo(format string, args ...interface{}) {
	s.logger.Printf("%s[INFO]%s %s", config.LogInfoColor, config.LogColorReset, fmt.Sprintf(format, args...))
}

func (s *LevelService) logError(format string, args ...interface{}) {
	s.logger.Printf("%s[ERROR]%s %s", config.LogErrorColor, config.LogColorReset, fmt.Sprintf(format, args...))
}
