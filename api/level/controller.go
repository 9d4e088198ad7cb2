package levelapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/config/preset"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultPreset = "default"

// LevelController serves level generation, inspection, pathfinding and
// wall clearing.
type LevelController struct {
	levels  i.LevelManager
	presets preset.Set
}

// NewLevelController initializes a LevelController. A nil preset set uses
// the builtin presets.
func NewLevelController(levels i.LevelManager, presets preset.Set) (*LevelController, error) {
	if levels == nil {
		return nil, errors.New("level controller requires a level manager")
	}
	if presets == nil {
		presets = preset.Builtin()
	}
	return &LevelController{
		levels:  levels,
		presets: presets,
	}, nil
}

// RegisterPublic registers public routes.
func (lc *LevelController) RegisterPublic(route *gin.RouterGroup) {
	levels := route.Group("/levels")
	{
		levels.POST("", lc.generate)
		levels.GET("/:ID", lc.level)
		levels.POST("/:ID/path", lc.path)
	}
	route.GET("/presets", lc.listPresets)
}

// RegisterProtected registers routes that need an edit token.
func (lc *LevelController) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/levels/:ID/walls", lc.clearWall)
}

// generate handles level creation requests.
func (lc *LevelController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := lc.resolve(request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, token, err := lc.levels.Generate(ctx.Request.Context(), params)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while generating level"})
		return
	}
	ctx.JSON(http.StatusCreated, newLevelResponse(level, token))
}

// resolve merges the request over its preset.
func (lc *LevelController) resolve(r GenerateRequest) (i.GenerateParams, error) {
	name := r.Preset
	if name == "" {
		name = defaultPreset
	}
	p, err := lc.presets.Get(name)
	if err != nil {
		return i.GenerateParams{}, err
	}

	params := i.GenerateParams{
		Width:           p.Width,
		Height:          p.Height,
		Seed:            p.Seed,
		CorridorWidth:   p.CorridorWidth,
		BranchingFactor: p.Branching(),
	}
	if r.Width > 0 {
		params.Width = r.Width
	}
	if r.Height > 0 {
		params.Height = r.Height
	}
	if r.Seed != nil {
		params.Seed = r.Seed
	}
	if r.CorridorWidth > 0 {
		params.CorridorWidth = r.CorridorWidth
	}
	if r.BranchingFactor != nil {
		params.BranchingFactor = *r.BranchingFactor
	}
	return params, nil
}

// level returns a level by ID.
func (lc *LevelController) level(ctx *gin.Context) {
	id, ok := levelID(ctx)
	if !ok {
		return
	}

	level, err := lc.levels.Level(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newLevelResponse(level, ""))
}

// path answers a route query.
func (lc *LevelController) path(ctx *gin.Context) {
	id, ok := levelID(ctx)
	if !ok {
		return
	}

	var request PathRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, cost, err := lc.levels.FindPath(ctx.Request.Context(), id, *request.From, *request.To)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newPathResponse(route, cost))
}

// clearWall opens a wall on the level the edit token was issued for.
func (lc *LevelController) clearWall(ctx *gin.Context) {
	id, ok := levelID(ctx)
	if !ok {
		return
	}

	claims := identity.Claims(ctx)
	if claimed, _ := claims[service.ClaimLevelID].(string); claimed != id.String() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "token does not grant access to this level"})
		return
	}

	var request WallRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cleared, err := lc.levels.ClearWall(ctx.Request.Context(), id, maze.Position{X: *request.X, Y: *request.Y})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &WallResponse{Cleared: cleared})
}

// listPresets returns the available presets.
func (lc *LevelController) listPresets(ctx *gin.Context) {
	out := make(map[string]preset.Preset, len(lc.presets))
	for _, name := range lc.presets.Names() {
		p, _ := lc.presets.Get(name)
		out[name] = p
	}
	ctx.JSON(http.StatusOK, out)
}

func levelID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLevelNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoPath):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOutOfBounds):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
