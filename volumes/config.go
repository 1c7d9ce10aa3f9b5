package volumes

// Config holds the detection tunables. The interior vote count and the
// vertical normal threshold are deliberately configurable rather than
// hardcoded; their defaults come from the tuning of the original system.
type Config struct {
	// DetectionSamples is the per-axis grid resolution. A full pass
	// classifies DetectionSamples^3 points.
	DetectionSamples int

	// MinClusterPoints discards clusters too small to form a region.
	MinClusterPoints int

	// MinSpaceVolume discards clusters whose bounding box volume is below
	// this, in cubic world units.
	MinSpaceVolume float32

	// InteriorRayLength bounds the six classification rays.
	InteriorRayLength float32

	// InteriorHitVotes is the number of the six axis rays that must hit for
	// a point to classify as interior.
	InteriorHitVotes int

	// HeightRayClearance is how far above a query point the top-down height
	// ray starts; the ray extends the same distance below.
	HeightRayClearance float32

	// HeightCacheResolution subdivides the horizontal bounds into cache
	// cells: cellSize = max(sizeX, sizeZ) / resolution.
	HeightCacheResolution int

	// OpeningRays is the size of the structured azimuth/elevation ray fan
	// cast from a space center.
	OpeningRays int

	// OpeningElevationBands splits the fan into elevation bands between
	// -90 and +90 degrees.
	OpeningElevationBands int

	// OpeningGroupDistance is the proximity threshold when grouping boundary
	// hit points into openings.
	OpeningGroupDistance float32

	// MinOpeningArea discards vertex loops below this area.
	MinOpeningArea float32

	// VerticalNormalDot classifies a loop as vertical when
	// |dot(normal, up)| exceeds it.
	VerticalNormalDot float32

	// FloorSamples is the per-axis resolution of the downward floor-height
	// sampling inside a space.
	FloorSamples int

	// DrainEpsilon is the tolerance when comparing the lowest opening
	// against the floor height.
	DrainEpsilon float32

	// ConnectivityEpsilon pads a space's bounds when testing whether a
	// connectivity ray landed inside it.
	ConnectivityEpsilon float32

	// SamplingWorkers bounds the worker count when parallel sampling is
	// enabled.
	SamplingWorkers int
}

func DefaultConfig() Config {
	return Config{
		DetectionSamples:      10,
		MinClusterPoints:      3,
		MinSpaceVolume:        1,
		InteriorRayLength:     100,
		InteriorHitVotes:      4,
		HeightRayClearance:    500,
		HeightCacheResolution: 64,
		OpeningRays:           32,
		OpeningElevationBands: 4,
		OpeningGroupDistance:  0.5,
		MinOpeningArea:        0.05,
		VerticalNormalDot:     0.7,
		FloorSamples:          8,
		DrainEpsilon:          0.1,
		ConnectivityEpsilon:   1,
		SamplingWorkers:       4,
	}
}
