package scene

import (
	"path/filepath"
	"testing"

	"github.com/aukilabs/brunnr/geom"
	"github.com/stretchr/testify/require"
)

func TestSceneBounds(t *testing.T) {
	t.Run("Bounds: empty scene", func(t *testing.T) {
		var s Scene
		_, ok := s.Bounds()
		require.False(t, ok)
	})

	t.Run("Bounds: union of solids", func(t *testing.T) {
		var s Scene
		s.AddSolid("a", geom.Vector3f{X: 0, Y: 0, Z: 0}, geom.Vector3f{X: 1, Y: 1, Z: 1})
		s.AddSolid("b", geom.Vector3f{X: 4, Y: -2, Z: 0}, geom.Vector3f{X: 5, Y: 1, Z: 3})

		b, ok := s.Bounds()
		require.True(t, ok)
		require.True(t, b.Min.Equal(geom.Vector3f{X: 0, Y: -2, Z: 0}))
		require.True(t, b.Max.Equal(geom.Vector3f{X: 5, Y: 1, Z: 3}))
	})
}

func TestSceneRaycast(t *testing.T) {
	var s Scene
	s.AddSolid("near", geom.Vector3f{X: 2, Y: -1, Z: -1}, geom.Vector3f{X: 3, Y: 1, Z: 1})
	s.AddSolid("far", geom.Vector3f{X: 6, Y: -1, Z: -1}, geom.Vector3f{X: 7, Y: 1, Z: 1})

	t.Run("Raycast: nearest solid wins", func(t *testing.T) {
		hit, ok := s.Raycast(geom.Vector3f{}, geom.Vector3f{X: 1, Y: 0, Z: 0}, 20)
		require.True(t, ok)
		require.True(t, hit.Point.EqualWithEpsilon(geom.Vector3f{X: 2, Y: 0, Z: 0}, 0.0001))
		require.True(t, hit.Normal.Equal(geom.Vector3f{X: -1, Y: 0, Z: 0}))
		require.True(t, geom.EqualWithEpsilon(hit.Distance, 2, 0.001))
	})

	t.Run("Raycast: respects max distance", func(t *testing.T) {
		_, ok := s.Raycast(geom.Vector3f{}, geom.Vector3f{X: 1, Y: 0, Z: 0}, 1)
		require.False(t, ok)
	})

	t.Run("Raycast: no hit", func(t *testing.T) {
		_, ok := s.Raycast(geom.Vector3f{}, geom.Vector3f{X: -1, Y: 0, Z: 0}, 20)
		require.False(t, ok)
	})
}

func TestSceneRoom(t *testing.T) {
	var s Scene
	inner := geom.NewBounds(geom.Vector3f{X: 0, Y: 0, Z: 0}, geom.Vector3f{X: 4, Y: 3, Z: 4})
	s.AddRoom("room", inner, 0.5)
	require.Len(t, s.Solids, 6)

	center := inner.Center()

	// every axis direction hits a wall from the room center
	dirs := []geom.Vector3f{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	for _, dir := range dirs {
		_, ok := s.Raycast(center, dir, 50)
		require.True(t, ok)
	}
}

func TestSceneFileRoundTrip(t *testing.T) {
	var s Scene
	s.Name = "fixture"
	s.AddSolid("floor", geom.Vector3f{X: -5, Y: -1, Z: -5}, geom.Vector3f{X: 5, Y: 0, Z: 5})

	path := filepath.Join(t.TempDir(), "worlds", "fixture.yaml")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, s.Name, loaded.Name)
	require.Len(t, loaded.Solids, 1)
	require.True(t, loaded.Solids[0].Bounds.Min.Equal(s.Solids[0].Bounds.Min))
	require.True(t, loaded.Solids[0].Bounds.Max.Equal(s.Solids[0].Bounds.Max))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
