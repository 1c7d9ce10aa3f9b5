package volumes

import (
	"math"

	"github.com/aukilabs/brunnr/geom"
)

// Analyzer classifies spaces as draining or filling and builds the
// inter-space connectivity graph along with the drain paths. Classification
// is static: a space's state only changes when detection runs again.
type Analyzer struct {
	collider Collider
	sampler  *OccupancySampler
	conf     Config
}

func NewAnalyzer(collider Collider, sampler *OccupancySampler, conf Config) *Analyzer {
	return &Analyzer{
		collider: collider,
		sampler:  sampler,
		conf:     conf,
	}
}

// ClassifySpace finds the space's floor height and decides willDrain /
// willFill against its lowest opening. The two flags are mutually exclusive;
// a space without openings always fills.
func (a *Analyzer) ClassifySpace(space *EnclosedSpace) {
	space.LowestPoint = a.floorHeight(space)
	space.refreshOpeningHeights()

	if len(space.Openings) == 0 {
		space.WillFill = true
		space.WillDrain = false
		return
	}

	space.WillDrain = space.LowestOpening <= space.LowestPoint+a.conf.DrainEpsilon
	space.WillFill = !space.WillDrain
}

// floorHeight samples a horizontal grid of interior points through the space
// and raycasts straight down from each, keeping the lowest hit. When no
// sample lands on solid ground the bounding box floor is used.
func (a *Analyzer) floorHeight(space *EnclosedSpace) float32 {
	n := a.conf.FloorSamples
	if n < 2 {
		n = 2
	}

	size := space.Bounds.Size()
	maxDrop := size.Y + a.conf.DrainEpsilon*2

	lowest := (float32)(math.Inf(1))
	found := false

	// rays start at the center height rather than the bounding box top,
	// which usually sits inside the ceiling geometry
	for ix := 0; ix < n; ix++ {
		for iz := 0; iz < n; iz++ {
			origin := geom.Vector3f{
				X: space.Bounds.Min.X + size.X*((float32)(ix)+0.5)/(float32)(n),
				Y: space.Center.Y,
				Z: space.Bounds.Min.Z + size.Z*((float32)(iz)+0.5)/(float32)(n),
			}

			instrumentRay(rayPurposeFloor)
			hit, ok := a.collider.Raycast(origin, geom.Vector3f{Y: -1}, maxDrop)
			if !ok {
				continue
			}

			found = true
			if hit.Point.Y < lowest {
				lowest = hit.Point.Y
			}
		}
	}

	if !found {
		return space.Bounds.Min.Y
	}
	return lowest
}

// AnalyzeConnectivity clears and rebuilds the connectivity graph and the
// drain paths for the given spaces. Edges are undirected and recorded
// symmetrically.
func (a *Analyzer) AnalyzeConnectivity(spaces []*EnclosedSpace) {
	for _, space := range spaces {
		space.ConnectedSpaces = nil
		space.DrainPath = nil
	}

	for i := 0; i < len(spaces); i++ {
		for j := i + 1; j < len(spaces); j++ {
			if a.connected(spaces[i], spaces[j]) || a.connected(spaces[j], spaces[i]) {
				spaces[i].ConnectedSpaces = append(spaces[i].ConnectedSpaces, spaces[j])
				spaces[j].ConnectedSpaces = append(spaces[j].ConnectedSpaces, spaces[i])
			}
		}
	}

	for _, space := range spaces {
		if space.WillDrain {
			space.DrainPath = a.buildDrainPath(space)
		}
	}
}

// connected tests whether any of from's openings sees into to: a ray from
// the opening centroid toward to's center must land inside to's padded
// bounds on a point the interior heuristic accepts. A ray that hits neither
// space, open air, or a third space is inconclusive and simply does not
// connect; another opening may still.
func (a *Analyzer) connected(from *EnclosedSpace, to *EnclosedSpace) bool {
	for _, loop := range from.Openings {
		if a.openingSees(loop, to) {
			return true
		}
	}
	return false
}

func (a *Analyzer) openingSees(loop *VertexLoop, to *EnclosedSpace) bool {
	toward := geom.Sub(to.Center, loop.Centroid)
	maxDist := (float32)(toward.Length()) + a.conf.ConnectivityEpsilon

	instrumentRay(rayPurposeConnectivity)
	hit, ok := a.collider.Raycast(loop.Centroid, toward, maxDist)
	if !ok {
		return false
	}

	if !to.Bounds.ContainsWithEpsilon(hit.Point, a.conf.ConnectivityEpsilon) {
		return false
	}
	return a.sampler.IsInterior(hit.Point)
}

// buildDrainPath walks greedily from space to space: at each step the
// not-yet-visited neighbor reachable through the lowest connecting opening
// is chosen, and the walk continues only while that neighbor itself drains.
// The visited set guarantees termination on cyclic graphs.
func (a *Analyzer) buildDrainPath(start *EnclosedSpace) []*EnclosedSpace {
	visited := map[*EnclosedSpace]bool{start: true}
	path := []*EnclosedSpace{start}
	current := start

	for {
		var next *EnclosedSpace
		lowest := (float32)(math.Inf(1))

		for _, neighbor := range current.ConnectedSpaces {
			if visited[neighbor] {
				continue
			}

			height, ok := a.connectingOpeningHeight(current, neighbor)
			if !ok {
				continue
			}
			if height < lowest {
				lowest = height
				next = neighbor
			}
		}

		if next == nil || !next.WillDrain {
			break
		}

		visited[next] = true
		path = append(path, next)
		current = next
	}

	return path
}

// connectingOpeningHeight re-queries which of from's openings connect toward
// to and returns the lowest vertical coordinate among them.
func (a *Analyzer) connectingOpeningHeight(from *EnclosedSpace, to *EnclosedSpace) (float32, bool) {
	height := (float32)(math.Inf(1))
	found := false

	for _, loop := range from.Openings {
		if !a.openingSees(loop, to) {
			continue
		}
		found = true
		if h := loop.MinHeight(); h < height {
			height = h
		}
	}

	if !found {
		// the edge was recorded from the other side; fall back to the
		// other space's openings
		for _, loop := range to.Openings {
			if !a.openingSees(loop, from) {
				continue
			}
			found = true
			if h := loop.MinHeight(); h < height {
				height = h
			}
		}
	}

	return height, found
}
