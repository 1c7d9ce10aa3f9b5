package featureflag

type Flag string

const (
	// FlagParallelSampling fans the detection grid sampling out over a
	// bounded worker pool. Off by default; a pass stays single-threaded.
	FlagParallelSampling Flag = "PARALLEL_SAMPLING"

	// FlagSpatialHashClustering switches the proximity clustering from the
	// nested-loop reference implementation to a spatial hash with identical
	// membership semantics.
	FlagSpatialHashClustering Flag = "SPATIAL_HASH_CLUSTERING"
)
