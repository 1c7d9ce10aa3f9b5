package volumes

import (
	"testing"

	"github.com/aukilabs/brunnr/geom"
	"github.com/stretchr/testify/require"
)

func TestHeightCache(t *testing.T) {
	bounds := geom.NewBounds(
		geom.Vector3f{},
		geom.Vector3f{X: 8, Y: 2, Z: 4},
	)

	t.Run("lookup before prepare misses", func(t *testing.T) {
		c := NewHeightCache(4)

		_, ok := c.Lookup(geom.Vector3f{X: 1, Z: 1})
		require.False(t, ok)
	})

	t.Run("store before prepare is a no-op", func(t *testing.T) {
		c := NewHeightCache(4)
		c.Store(geom.Vector3f{X: 1, Z: 1}, 5)

		require.Zero(t, c.Len())
	})

	t.Run("points in the same cell share an entry", func(t *testing.T) {
		c := NewHeightCache(4)
		c.prepare(bounds)

		// cellSize = max(8, 4) / 4 = 2
		c.Store(geom.Vector3f{X: 1, Z: 1}, 5)

		height, ok := c.Lookup(geom.Vector3f{X: 1.9, Z: 1.9})
		require.True(t, ok)
		require.Equal(t, (float32)(5), height)
		require.Equal(t, 1, c.Len())
	})

	t.Run("points in different cells do not share an entry", func(t *testing.T) {
		c := NewHeightCache(4)
		c.prepare(bounds)
		c.Store(geom.Vector3f{X: 1, Z: 1}, 5)

		_, ok := c.Lookup(geom.Vector3f{X: 2.1, Z: 1})
		require.False(t, ok)
	})

	t.Run("prepare runs once per lifetime", func(t *testing.T) {
		c := NewHeightCache(4)
		c.prepare(bounds)
		c.Store(geom.Vector3f{X: 1, Z: 1}, 5)

		c.prepare(geom.NewBounds(
			geom.Vector3f{X: -100, Z: -100},
			geom.Vector3f{X: 100, Y: 2, Z: 100},
		))

		height, ok := c.Lookup(geom.Vector3f{X: 1.9, Z: 1.9})
		require.True(t, ok)
		require.Equal(t, (float32)(5), height)
	})

	t.Run("clear drops entries and captured bounds", func(t *testing.T) {
		c := NewHeightCache(4)
		c.prepare(bounds)
		c.Store(geom.Vector3f{X: 1, Z: 1}, 5)
		require.Equal(t, 1, c.Len())

		c.Clear()
		require.Zero(t, c.Len())

		_, ok := c.Lookup(geom.Vector3f{X: 1, Z: 1})
		require.False(t, ok)
	})

	t.Run("non-positive resolution is clamped", func(t *testing.T) {
		c := NewHeightCache(0)
		c.prepare(bounds)
		c.Store(geom.Vector3f{X: 1, Z: 1}, 5)

		height, ok := c.Lookup(geom.Vector3f{X: 7, Z: 3})
		require.True(t, ok)
		require.Equal(t, (float32)(5), height)
	})
}
