package volumes

import (
	"context"
	"testing"

	"github.com/aukilabs/brunnr/featureflag"
	"github.com/aukilabs/brunnr/geom"
	"github.com/aukilabs/brunnr/scene"
	"github.com/stretchr/testify/require"
)

// sealedBoxScene is a hollow 4x4x4 room with no openings.
func sealedBoxScene() *scene.Scene {
	world := &scene.Scene{}
	world.AddRoom("box", geom.NewBounds(
		geom.Vector3f{},
		geom.Vector3f{X: 4, Y: 4, Z: 4},
	), 0.5)
	return world
}

// lowDoorScene is a hollow 4x3x4 room with a floor-level doorway in the east
// wall and a large backstop wall further east, so rays leaving through the
// doorway land on distant geometry.
func lowDoorScene() *scene.Scene {
	world := &scene.Scene{}

	world.AddSolid("floor",
		geom.Vector3f{X: -0.5, Y: -0.5, Z: -0.5},
		geom.Vector3f{X: 4.5, Y: 0, Z: 4.5})
	world.AddSolid("ceiling",
		geom.Vector3f{X: -0.5, Y: 3, Z: -0.5},
		geom.Vector3f{X: 4.5, Y: 3.5, Z: 4.5})
	world.AddSolid("wall-west",
		geom.Vector3f{X: -0.5, Y: 0, Z: -0.5},
		geom.Vector3f{X: 0, Y: 3, Z: 4.5})
	world.AddSolid("wall-south",
		geom.Vector3f{X: 0, Y: 0, Z: -0.5},
		geom.Vector3f{X: 4, Y: 3, Z: 0})
	world.AddSolid("wall-north",
		geom.Vector3f{X: 0, Y: 0, Z: 4},
		geom.Vector3f{X: 4, Y: 3, Z: 4.5})

	// east wall with a doorway from the floor up to y=1.5 between z=1.5
	// and z=2.5
	world.AddSolid("wall-east-left",
		geom.Vector3f{X: 4, Y: 0, Z: -0.5},
		geom.Vector3f{X: 4.5, Y: 3, Z: 1.5})
	world.AddSolid("wall-east-right",
		geom.Vector3f{X: 4, Y: 0, Z: 2.5},
		geom.Vector3f{X: 4.5, Y: 3, Z: 4.5})
	world.AddSolid("wall-east-top",
		geom.Vector3f{X: 4, Y: 1.5, Z: 1.5},
		geom.Vector3f{X: 4.5, Y: 3, Z: 2.5})

	world.AddSolid("backstop",
		geom.Vector3f{X: 9, Y: -3, Z: -3},
		geom.Vector3f{X: 9.5, Y: 6, Z: 7})
	return world
}

// lowDoorConfig densifies the opening ray fan so enough rays pass through the
// doorway, and widens the grouping distance to match the hit spread on the
// distant backstop.
func lowDoorConfig() Config {
	conf := DefaultConfig()
	conf.OpeningRays = 512
	conf.OpeningElevationBands = 16
	conf.OpeningGroupDistance = 2.5
	return conf
}

func newTestDetector(world *scene.Scene, conf Config, flags ...featureflag.Flag) *Detector {
	names := make([]string, 0, len(flags))
	for _, flag := range flags {
		names = append(names, (string)(flag))
	}

	ff := featureflag.New(names)
	sampler := NewOccupancySampler(world, conf)
	analyzer := NewAnalyzer(world, sampler, conf)
	return NewDetector(world, sampler, analyzer, conf, ff)
}

func TestDetectEnclosedSpaces(t *testing.T) {
	t.Run("sealed box yields one filling space", func(t *testing.T) {
		d := newTestDetector(sealedBoxScene(), DefaultConfig())

		spaces := d.DetectEnclosedSpaces(context.Background())
		require.Len(t, spaces, 1)

		space := spaces[0]
		require.Empty(t, space.Openings)
		require.True(t, space.WillFill)
		require.False(t, space.WillDrain)
		require.Greater(t, space.Volume, (float32)(1))
		require.True(t, space.Center.EqualWithEpsilon(geom.Vector3f{X: 2, Y: 2, Z: 2}, 0.01))
	})

	t.Run("floor-level doorway yields one draining space", func(t *testing.T) {
		d := newTestDetector(lowDoorScene(), lowDoorConfig())

		spaces := d.DetectEnclosedSpaces(context.Background())
		require.Len(t, spaces, 1)

		space := spaces[0]
		require.Len(t, space.Openings, 1)
		require.True(t, space.WillDrain)
		require.False(t, space.WillFill)

		opening := space.Openings[0]
		require.True(t, opening.Valid())
		require.GreaterOrEqual(t, len(opening.Vertices), 3)
		require.Len(t, opening.UVs, len(opening.Vertices))

		// the doorway reaches the floor, so the lowest boundary hit must
		// sit at or below floor height
		require.InDelta(t, 0, space.LowestPoint, 1e-3)
		require.LessOrEqual(t, space.LowestOpening, space.LowestPoint+d.conf.DrainEpsilon)
		require.Equal(t, space.LowestOpening, opening.MinHeight())
		require.Equal(t, space.HighestOpening, opening.MaxHeight())
	})

	t.Run("no geometry yields no spaces", func(t *testing.T) {
		d := newTestDetector(&scene.Scene{}, DefaultConfig())
		require.Empty(t, d.DetectEnclosedSpaces(context.Background()))
	})

	t.Run("degenerate bounds yield no spaces", func(t *testing.T) {
		world := &scene.Scene{}
		world.AddSolid("sheet",
			geom.Vector3f{},
			geom.Vector3f{X: 5, Y: 0, Z: 5})

		d := newTestDetector(world, DefaultConfig())
		require.Empty(t, d.DetectEnclosedSpaces(context.Background()))
	})

	t.Run("no interior samples yield no spaces", func(t *testing.T) {
		// the slab is thinner than the grid spacing and sits below the first
		// sample layer; no sample lands inside a solid or gathers enough hits
		world := &scene.Scene{}
		world.AddSolid("slab",
			geom.Vector3f{},
			geom.Vector3f{X: 10, Y: 0.2, Z: 10})
		world.AddSolid("marker",
			geom.Vector3f{X: 20, Y: 5},
			geom.Vector3f{X: 20.2, Y: 5.2, Z: 0.2})

		d := newTestDetector(world, DefaultConfig())

		require.Empty(t, d.DetectEnclosedSpaces(context.Background()))
	})

	t.Run("cancelled context aborts sampling", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d := newTestDetector(sealedBoxScene(), DefaultConfig())
		require.Empty(t, d.DetectEnclosedSpaces(ctx))
	})
}

func TestDetectEnclosedSpacesFeatureFlags(t *testing.T) {
	t.Run("parallel sampling matches serial results", func(t *testing.T) {
		serial := newTestDetector(sealedBoxScene(), DefaultConfig())
		parallel := newTestDetector(sealedBoxScene(), DefaultConfig(),
			featureflag.FlagParallelSampling)

		want := serial.DetectEnclosedSpaces(context.Background())
		got := parallel.DetectEnclosedSpaces(context.Background())

		require.Len(t, got, len(want))
		for i := range want {
			require.Equal(t, want[i].Bounds, got[i].Bounds)
			require.Equal(t, want[i].WillFill, got[i].WillFill)
		}
	})

	t.Run("spatial hash clustering matches nested results", func(t *testing.T) {
		nested := newTestDetector(lowDoorScene(), lowDoorConfig())
		hashed := newTestDetector(lowDoorScene(), lowDoorConfig(),
			featureflag.FlagSpatialHashClustering)

		want := nested.DetectEnclosedSpaces(context.Background())
		got := hashed.DetectEnclosedSpaces(context.Background())

		require.Len(t, got, len(want))
		for i := range want {
			require.Equal(t, want[i].Bounds, got[i].Bounds)
			require.Len(t, got[i].Openings, len(want[i].Openings))
		}
	})
}
