package volumes

import (
	"math"
	"sort"

	"github.com/aukilabs/brunnr/geom"
)

// VertexLoop is an ordered closed polygon approximating one opening. The
// ordering comes from an angle sort around the centroid, which is correct
// for convex and near-convex openings; concave openings may produce a
// self-intersecting loop. That is a known limitation of the sampling
// approach, not something this type corrects.
//
// UVs carry one auxiliary coordinate pair per vertex: U is the sort angle
// around the centroid, V the vertical drop relative to it.
type VertexLoop struct {
	Vertices []geom.Vector3f `json:"vertices"`
	UVs      []geom.Vector2f `json:"uvs"`

	// derived, recomputed in full whenever the vertex list changes
	Centroid   geom.Vector3f `json:"centroid"`
	Area       float32       `json:"area"`
	Normal     geom.Vector3f `json:"normal"`
	IsVertical bool          `json:"is_vertical"`
}

// NewVertexLoop orders the given boundary points into a polygon and derives
// the loop values. verticalNormalDot is the |dot(normal, up)| threshold for
// the vertical classification.
func NewVertexLoop(points []geom.Vector3f, verticalNormalDot float32) *VertexLoop {
	loop := &VertexLoop{
		Vertices: make([]geom.Vector3f, len(points)),
	}
	copy(loop.Vertices, points)
	loop.orderByAngle()
	loop.Recompute(verticalNormalDot)
	return loop
}

// Valid reports whether the loop may be registered as an opening.
func (l *VertexLoop) Valid() bool {
	return len(l.Vertices) >= 3 && l.Area > 0
}

func (l *VertexLoop) MinHeight() float32 {
	min := (float32)(math.Inf(1))
	for _, v := range l.Vertices {
		if v.Y < min {
			min = v.Y
		}
	}
	return min
}

func (l *VertexLoop) MaxHeight() float32 {
	max := (float32)(math.Inf(-1))
	for _, v := range l.Vertices {
		if v.Y > max {
			max = v.Y
		}
	}
	return max
}

// orderByAngle sorts the vertices by their atan2 angle around the centroid,
// projected onto the two axes the points spread across the most.
func (l *VertexLoop) orderByAngle() {
	if len(l.Vertices) < 3 {
		return
	}

	centroid := averagePoint(l.Vertices)
	u, v := projectionAxes(l.Vertices)

	sort.SliceStable(l.Vertices, func(i, j int) bool {
		return l.angleAround(centroid, u, v, l.Vertices[i]) <
			l.angleAround(centroid, u, v, l.Vertices[j])
	})
}

func (l *VertexLoop) angleAround(centroid geom.Vector3f, u, v geom.Vector3f, p geom.Vector3f) float64 {
	d := geom.Sub(p, centroid)
	return math.Atan2((float64)(d.Dot(v)), (float64)(d.Dot(u)))
}

// Recompute rebuilds every derived value from the vertex list. There is no
// incremental update path.
func (l *VertexLoop) Recompute(verticalNormalDot float32) {
	l.Centroid = averagePoint(l.Vertices)

	if len(l.Vertices) < 3 {
		l.UVs = nil
		l.Area = 0
		l.Normal = geom.Vector3f{}
		l.IsVertical = false
		return
	}

	u, v := projectionAxes(l.Vertices)
	l.UVs = make([]geom.Vector2f, len(l.Vertices))
	for i, vertex := range l.Vertices {
		l.UVs[i] = geom.Vector2f{
			U: (float32)(l.angleAround(l.Centroid, u, v, vertex)),
			V: vertex.Y - l.Centroid.Y,
		}
	}

	// area: half the magnitude of the summed cross products around the
	// centroid
	var crossSum geom.Vector3f
	for i := range l.Vertices {
		a := geom.Sub(l.Vertices[i], l.Centroid)
		b := geom.Sub(l.Vertices[(i+1)%len(l.Vertices)], l.Centroid)
		crossSum.Add(geom.Cross(a, b))
	}
	l.Area = (float32)(crossSum.Length()) / 2

	// normal: mean of the normalized consecutive edge cross products
	var normalSum geom.Vector3f
	for i := range l.Vertices {
		e1 := geom.Sub(l.Vertices[(i+1)%len(l.Vertices)], l.Vertices[i])
		e2 := geom.Sub(l.Vertices[(i+2)%len(l.Vertices)], l.Vertices[(i+1)%len(l.Vertices)])
		normalSum.Add(geom.Normalized(geom.Cross(e1, e2)))
	}
	l.Normal = geom.Normalized(geom.Mul(normalSum, 1/(float32)(len(l.Vertices))))

	l.IsVertical = math.Abs((float64)(l.Normal.Dot(geom.Up))) > (float64)(verticalNormalDot)
}

func averagePoint(points []geom.Vector3f) geom.Vector3f {
	if len(points) == 0 {
		return geom.Vector3f{}
	}

	var sum geom.Vector3f
	for _, p := range points {
		sum.Add(p)
	}
	return geom.Mul(sum, 1/(float32)(len(points)))
}

// projectionAxes returns the two world axes the points spread across the
// most. The remaining axis is the closest thing to the polygon normal the
// unordered points offer.
func projectionAxes(points []geom.Vector3f) (geom.Vector3f, geom.Vector3f) {
	bounds, ok := geom.BoundsFromPoints(points)
	if !ok {
		return geom.Vector3f{X: 1}, geom.Vector3f{Z: 1}
	}

	size := bounds.Size()
	switch {
	case size.Y <= size.X && size.Y <= size.Z:
		return geom.Vector3f{X: 1}, geom.Vector3f{Z: 1}
	case size.X <= size.Y && size.X <= size.Z:
		return geom.Vector3f{Z: 1}, geom.Vector3f{Y: 1}
	default:
		return geom.Vector3f{X: 1}, geom.Vector3f{Y: 1}
	}
}
