package volumes

import (
	"math"

	"github.com/aukilabs/brunnr/featureflag"
	"github.com/aukilabs/brunnr/geom"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// OpeningExtractor finds the openings of a space by casting a structured ray
// fan from its center and grouping the boundary hits into vertex loops.
type OpeningExtractor struct {
	collider Collider
	conf     Config
	flags    featureflag.FeatureFlag
}

func NewOpeningExtractor(collider Collider, conf Config, flags featureflag.FeatureFlag) *OpeningExtractor {
	return &OpeningExtractor{
		collider: collider,
		conf:     conf,
		flags:    flags,
	}
}

// FindOpenings rebuilds space.Openings and the space's opening heights. A
// space that keeps zero openings is a valid, fully sealed volume.
func (e *OpeningExtractor) FindOpenings(space *EnclosedSpace) {
	space.Openings = nil

	halfDiagonal := (float32)(space.Bounds.Diagonal() / 2)
	maxDist := halfDiagonal * 4

	// Hits close to the center bounced off an interior wall; only hits past
	// half the bounding diagonal can belong to a ray that exited the volume.
	var boundary []geom.Vector3f
	for _, dir := range e.fanDirections() {
		instrumentRay(rayPurposeOpening)
		hit, ok := e.collider.Raycast(space.Center, dir, maxDist)
		if !ok {
			continue
		}
		if hit.Distance <= halfDiagonal {
			continue
		}
		boundary = append(boundary, hit.Point)
	}

	groups := clusterPoints(boundary, e.conf.OpeningGroupDistance,
		e.flags.IsSet(featureflag.FlagSpatialHashClustering))

	discarded := 0
	for _, group := range groups {
		if len(group) < 3 {
			discarded++
			continue
		}

		loop := NewVertexLoop(group, e.conf.VerticalNormalDot)
		if !loop.Valid() || loop.Area < e.conf.MinOpeningArea {
			discarded++
			continue
		}
		space.Openings = append(space.Openings, loop)
	}

	if discarded > 0 {
		logs.WithTag("space_id", space.ID).
			WithTag("discarded_groups", discarded).
			Debug("discarded degenerate opening candidates")
	}

	space.refreshOpeningHeights()
}

// fanDirections spans OpeningRays directions over a structured grid of
// azimuth and elevation bands.
func (e *OpeningExtractor) fanDirections() []geom.Vector3f {
	bands := e.conf.OpeningElevationBands
	if bands <= 0 {
		bands = 1
	}
	perBand := e.conf.OpeningRays / bands
	if perBand <= 0 {
		perBand = 1
	}

	dirs := make([]geom.Vector3f, 0, bands*perBand)
	for b := 0; b < bands; b++ {
		elevation := -math.Pi/2 + math.Pi*((float64)(b)+0.5)/(float64)(bands)
		for a := 0; a < perBand; a++ {
			azimuth := 2 * math.Pi * (float64)(a) / (float64)(perBand)
			dirs = append(dirs, geom.Vector3f{
				X: (float32)(math.Cos(elevation) * math.Cos(azimuth)),
				Y: (float32)(math.Sin(elevation)),
				Z: (float32)(math.Cos(elevation) * math.Sin(azimuth)),
			})
		}
	}
	return dirs
}
