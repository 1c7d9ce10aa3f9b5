package volumes

import (
	"context"

	"github.com/aukilabs/brunnr/featureflag"
	"github.com/aukilabs/brunnr/geom"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"golang.org/x/sync/errgroup"
)

const degenerateBoundsEpsilon = (float32)(0.001)

// Detector samples a 3D grid over the collision bounds and clusters the
// interior samples into candidate enclosed spaces.
type Detector struct {
	collider  Collider
	sampler   *OccupancySampler
	extractor *OpeningExtractor
	analyzer  *Analyzer
	conf      Config
	flags     featureflag.FeatureFlag
}

func NewDetector(collider Collider, sampler *OccupancySampler, analyzer *Analyzer, conf Config, flags featureflag.FeatureFlag) *Detector {
	return &Detector{
		collider:  collider,
		sampler:   sampler,
		extractor: NewOpeningExtractor(collider, conf, flags),
		analyzer:  analyzer,
		conf:      conf,
		flags:     flags,
	}
}

// DetectEnclosedSpaces runs a full detection pass. Missing or degenerate
// bounds abort the pass with an empty result and a diagnostic; they are
// never surfaced as errors.
func (d *Detector) DetectEnclosedSpaces(ctx context.Context) []*EnclosedSpace {
	bounds, ok := d.collider.Bounds()
	if !ok {
		logs.Warn("volume detection skipped, no collidable geometry")
		return nil
	}
	if bounds.IsDegenerate(degenerateBoundsEpsilon) {
		logs.WithTag("bounds_size", bounds.Size()).
			Warn("volume detection skipped, degenerate bounds")
		return nil
	}

	spacing := bounds.MinExtent() / (float32)(d.conf.DetectionSamples)
	samples := d.sampleGrid(ctx, bounds, spacing)

	var interior []geom.Vector3f
	for _, sample := range samples {
		if sample.Interior {
			interior = append(interior, sample.Position)
		}
	}

	if len(interior) == 0 {
		logs.WithTag("samples", len(samples)).
			WithTag("interior_points", 0).
			Info("no interior sample points")
		return nil
	}

	clusters := clusterPoints(interior, spacing*2, d.flags.IsSet(featureflag.FlagSpatialHashClustering))

	spaces := make([]*EnclosedSpace, 0, len(clusters))
	for _, cluster := range clusters {
		if len(cluster) < d.conf.MinClusterPoints {
			continue
		}

		clusterBounds, ok := geom.BoundsFromPoints(cluster)
		if !ok {
			continue
		}
		if clusterBounds.Volume() < d.conf.MinSpaceVolume {
			continue
		}

		space := newEnclosedSpace(clusterBounds)
		d.extractor.FindOpenings(space)
		d.analyzer.ClassifySpace(space)
		spaces = append(spaces, space)
	}

	logs.WithTag("interior_points", len(interior)).
		WithTag("clusters", len(clusters)).
		WithTag("spaces", len(spaces)).
		Info("volume detection finished")

	return spaces
}

// sampleGrid classifies a DetectionSamples^3 grid in a fixed order: outer x,
// then y, then z. The parallel variant writes by index, so worker scheduling
// cannot change the output.
func (d *Detector) sampleGrid(ctx context.Context, bounds geom.Bounds, spacing float32) []SampledPoint {
	n := d.conf.DetectionSamples
	samples := make([]SampledPoint, n*n*n)

	sampleSlab := func(ix int) {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < n; iz++ {
				p := geom.Vector3f{
					X: bounds.Min.X + spacing*((float32)(ix)+0.5),
					Y: bounds.Min.Y + spacing*((float32)(iy)+0.5),
					Z: bounds.Min.Z + spacing*((float32)(iz)+0.5),
				}
				samples[ix*n*n+iy*n+iz] = SampledPoint{
					Position: p,
					Interior: d.sampler.IsInterior(p),
				}
			}
		}
	}

	if d.flags.IsSet(featureflag.FlagParallelSampling) {
		var g errgroup.Group
		g.SetLimit(d.conf.SamplingWorkers)
		for ix := 0; ix < n; ix++ {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				sampleSlab(ix)
				return nil
			})
		}
		g.Wait()
		return samples
	}

	for ix := 0; ix < n; ix++ {
		if ctx.Err() != nil {
			break
		}
		sampleSlab(ix)
	}
	return samples
}
