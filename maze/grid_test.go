package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	t.Run("New grid is all walls", func(t *testing.T) {
		g := NewGrid(4, 3)
		assert.Equal(t, 4, g.Width())
		assert.Equal(t, 3, g.Height())
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				c := g.GetCell(x, y)
				assert.True(t, c.IsWall)
				assert.Equal(t, Position{X: x, Y: y}, c.Position())
			}
		}
	})

	t.Run("Bounds", func(t *testing.T) {
		g := NewGrid(4, 3)
		assert.True(t, g.InBound(0, 0))
		assert.True(t, g.InBound(3, 2))
		assert.False(t, g.InBound(4, 0))
		assert.False(t, g.InBound(0, 3))
		assert.False(t, g.InBound(-1, 1))

		c := g.GetCell(-1, 7)
		assert.True(t, c.IsWall)
		assert.Equal(t, -1, c.X)
		assert.Equal(t, 7, c.Y)
	})

	t.Run("Clear wall", func(t *testing.T) {
		g := NewGrid(3, 3)
		assert.True(t, g.ClearWall(1, 1))
		assert.False(t, g.GetCell(1, 1).IsWall)
		assert.False(t, g.ClearWall(1, 1), "floor stays floor")
		assert.False(t, g.ClearWall(3, 1), "out of bounds")
	})

	t.Run("Passable snapshot", func(t *testing.T) {
		g := NewGrid(3, 2)
		g.ClearWall(2, 1)
		passable := g.Passable()
		assert.Equal(t, []bool{false, false, false, false, false, true}, passable)

		g.ClearWall(0, 0)
		assert.False(t, passable[0], "snapshot is a copy")
	})

	t.Run("Rows and String", func(t *testing.T) {
		g := NewGrid(3, 2)
		g.ClearWall(1, 0)
		assert.Equal(t, []string{"#.#", "###"}, g.Rows())
		assert.Equal(t, "#.#\n###\n", g.String())
	})
}

func TestRestore(t *testing.T) {
	seed := int64(11)
	g := New(Config{Width: 21, Height: 15, Seed: &seed, Logger: discardLogger()}).Generate()

	t.Run("Round trip keeps layout and roles", func(t *testing.T) {
		restored, err := Restore(g.Width(), g.Height(), g.Flags())
		require.NoError(t, err)
		assert.Equal(t, g.Rows(), restored.Rows())
		assert.Equal(t, g.Start(), restored.Start())
		assert.Equal(t, g.Exit(), restored.Exit())
		assert.False(t, restored.GetCell(g.Start().X, g.Start().Y).IsVisited, "visited is generation state only")
	})

	t.Run("Size mismatch", func(t *testing.T) {
		_, err := Restore(3, 3, make([]byte, 8))
		assert.ErrorIs(t, err, ErrFlagsSizeMismatch)
	})

	t.Run("Invalid dimensions", func(t *testing.T) {
		_, err := Restore(0, 3, nil)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})
}
