package volumes

import "github.com/aukilabs/brunnr/geom"

// The six axis directions used by the interior vote.
var interiorRayDirs = [6]geom.Vector3f{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// OccupancySampler classifies world points against the collision backend.
// Interior classification is a majority vote over six axis rays, a heuristic
// that tolerates small holes in the surface. Height queries are memoized in
// an explicit HeightCache owned by the sampler.
type OccupancySampler struct {
	collider Collider
	conf     Config
	heights  *HeightCache
}

func NewOccupancySampler(collider Collider, conf Config) *OccupancySampler {
	return &OccupancySampler{
		collider: collider,
		conf:     conf,
		heights:  NewHeightCache(conf.HeightCacheResolution),
	}
}

// IsInterior reports whether at least InteriorHitVotes of the six axis rays
// hit a surface. A point with no hits in any direction is exterior.
func (s *OccupancySampler) IsInterior(p geom.Vector3f) bool {
	hits := 0
	for _, dir := range interiorRayDirs {
		instrumentRay(rayPurposeInterior)
		if _, ok := s.collider.Raycast(p, dir, s.conf.InteriorRayLength); ok {
			hits++
		}
	}
	return hits >= s.conf.InteriorHitVotes
}

// SampleHeight returns the surface height above or below the given position,
// found with a single top-down ray. When nothing is hit the position's own
// height is returned, assuming the point is already at or below the surface.
// Results are cached per horizontal grid cell until ClearHeightCache.
func (s *OccupancySampler) SampleHeight(p geom.Vector3f) float32 {
	if bounds, ok := s.collider.Bounds(); ok {
		s.heights.prepare(bounds)
	}

	if height, ok := s.heights.Lookup(p); ok {
		heightCacheHits.Inc()
		return height
	}
	heightCacheMisses.Inc()

	clearance := s.conf.HeightRayClearance
	origin := geom.Vector3f{X: p.X, Y: p.Y + clearance, Z: p.Z}

	instrumentRay(rayPurposeHeight)
	height := p.Y
	if hit, ok := s.collider.Raycast(origin, geom.Vector3f{Y: -1}, clearance*2); ok {
		height = hit.Point.Y
	}

	s.heights.Store(p, height)
	return height
}

// ClearHeightCache drops the memoized heights. Callers must invoke it after
// any geometry change; staleness is not detected automatically.
func (s *OccupancySampler) ClearHeightCache() {
	s.heights.Clear()
}
