package volumes

import (
	"math"

	"github.com/aukilabs/brunnr/geom"
)

// clusterPoints partitions points into groups by transitive proximity: a
// point belongs to a cluster when it lies within threshold of any point
// already in it, repeated until no more points qualify. Two variants
// implement the same closure: a nested-loop reference version and a spatial
// hash keyed by the threshold. Membership is identical between them.
func clusterPoints(points []geom.Vector3f, threshold float32, useSpatialHash bool) [][]geom.Vector3f {
	if len(points) == 0 {
		return nil
	}
	if useSpatialHash {
		return clusterPointsHashed(points, threshold)
	}
	return clusterPointsNested(points, threshold)
}

func clusterPointsNested(points []geom.Vector3f, threshold float32) [][]geom.Vector3f {
	remaining := make([]geom.Vector3f, len(points))
	copy(remaining, points)

	var clusters [][]geom.Vector3f
	for len(remaining) > 0 {
		cluster := []geom.Vector3f{remaining[0]}
		remaining = remaining[1:]

		for grew := true; grew; {
			grew = false
			for i := 0; i < len(remaining); {
				if withinThresholdOfAny(cluster, remaining[i], threshold) {
					cluster = append(cluster, remaining[i])
					remaining[i] = remaining[len(remaining)-1]
					remaining = remaining[:len(remaining)-1]
					grew = true
				} else {
					i++
				}
			}
		}

		clusters = append(clusters, cluster)
	}
	return clusters
}

func withinThresholdOfAny(cluster []geom.Vector3f, p geom.Vector3f, threshold float32) bool {
	for _, member := range cluster {
		if geom.Distance(member, p) <= (float64)(threshold) {
			return true
		}
	}
	return false
}

type hashCell struct {
	X int
	Y int
	Z int
}

func clusterPointsHashed(points []geom.Vector3f, threshold float32) [][]geom.Vector3f {
	cells := make(map[hashCell][]int, len(points))
	cellOf := func(p geom.Vector3f) hashCell {
		return hashCell{
			X: (int)(math.Floor((float64)(p.X / threshold))),
			Y: (int)(math.Floor((float64)(p.Y / threshold))),
			Z: (int)(math.Floor((float64)(p.Z / threshold))),
		}
	}
	for i, p := range points {
		c := cellOf(p)
		cells[c] = append(cells[c], i)
	}

	assigned := make([]bool, len(points))
	var clusters [][]geom.Vector3f

	for seed := range points {
		if assigned[seed] {
			continue
		}

		assigned[seed] = true
		queue := []int{seed}
		var cluster []geom.Vector3f

		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			cluster = append(cluster, points[i])

			// candidates live at most one cell away on every axis
			c := cellOf(points[i])
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for dz := -1; dz <= 1; dz++ {
						neighbors := cells[hashCell{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}]
						for _, j := range neighbors {
							if assigned[j] {
								continue
							}
							if geom.Distance(points[i], points[j]) <= (float64)(threshold) {
								assigned[j] = true
								queue = append(queue, j)
							}
						}
					}
				}
			}
		}

		clusters = append(clusters, cluster)
	}
	return clusters
}
