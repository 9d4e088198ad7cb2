package repo

import (
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestLevelDocument(t *testing.T) {
	t.Run("BSON round trip to record", func(t *testing.T) {
		id := uuid.New()
		doc := levelDocument{
			ID:           id.String(),
			Params:       game.Params{Width: 21, Height: 19, Seed: -4, CorridorWidth: 3, BranchingFactor: 0.25},
			ClearedWalls: []maze.Position{{X: 0, Y: 3}, {X: 20, Y: 7}},
			CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}

		raw, err := bson.Marshal(doc)
		require.NoError(t, err)

		var decoded levelDocument
		require.NoError(t, bson.Unmarshal(raw, &decoded))

		rec, err := decoded.record()
		require.NoError(t, err)
		assert.Equal(t, id, rec.ID)
		assert.Equal(t, doc.Params, rec.Params)
		assert.Equal(t, doc.ClearedWalls, rec.ClearedWalls)
		assert.True(t, doc.CreatedAt.Equal(rec.CreatedAt))
	})

	t.Run("Stored field names", func(t *testing.T) {
		raw, err := bson.Marshal(levelDocument{ID: "abc", ClearedWalls: []maze.Position{{X: 1, Y: 2}}})
		require.NoError(t, err)

		var m bson.M
		require.NoError(t, bson.Unmarshal(raw, &m))
		assert.Equal(t, "abc", m["_id"])
		assert.Contains(t, m, "params")
		assert.Contains(t, m, "clearedWalls")
	})

	t.Run("Corrupt id", func(t *testing.T) {
		_, err := (&levelDocument{ID: "not-a-uuid"}).record()
		assert.Error(t, err)
	})
}
