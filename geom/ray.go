package geom

import "math"

type Ray struct {
	From Vector3f
	To   Vector3f
}

// NewRay builds a ray from an origin, a direction and a maximum distance.
// The direction does not need to be normalized.
func NewRay(origin Vector3f, dir Vector3f, maxDist float32) Ray {
	return Ray{
		From: origin,
		To:   Add(origin, Mul(Normalized(dir), maxDist)),
	}
}

func (r *Ray) Dir() Vector3f {
	return Sub(r.To, r.From)
}

func (r *Ray) PointAt(t float32) Vector3f {
	return Add(r.From, Mul(r.Dir(), t))
}

// Hit is the nearest-surface result of a ray query.
type Hit struct {
	Point    Vector3f `json:"point"`
	Normal   Vector3f `json:"normal"`
	Distance float32  `json:"distance"`
}

// IntersectBounds intersects a ray with an axis-aligned box using the slab
// method. The returned t parameterizes From->To in [0..1]. A ray starting
// inside the box hits the exit face. The returned normal is the normal of
// the face that was hit.
func IntersectBounds(r Ray, b Bounds) (bool, float32, Vector3f) {
	dir := r.Dir()

	tMin := (float32)(math.Inf(-1))
	tMax := (float32)(math.Inf(1))
	axisMin := -1
	axisMax := -1

	origin := [3]float32{r.From.X, r.From.Y, r.From.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if d[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return false, -1, Vector3f{}
			}
			continue
		}

		t1 := (lo[axis] - origin[axis]) / d[axis]
		t2 := (hi[axis] - origin[axis]) / d[axis]
		if t1 > t2 {
			Swap(&t1, &t2)
		}
		if t1 > tMin {
			tMin = t1
			axisMin = axis
		}
		if t2 < tMax {
			tMax = t2
			axisMax = axis
		}
	}

	if tMin > tMax || tMax < 0 {
		return false, -1, Vector3f{}
	}

	t := tMin
	axis := axisMin
	entering := true
	if t < 0 {
		// ray starts inside the box
		t = tMax
		axis = axisMax
		entering = false
	}
	if t > 1 || axis < 0 {
		return false, -1, Vector3f{}
	}

	var normal Vector3f
	switch axis {
	case 0:
		normal = Vector3f{1, 0, 0}
	case 1:
		normal = Vector3f{0, 1, 0}
	case 2:
		normal = Vector3f{0, 0, 1}
	}
	if (d[axis] > 0) == entering {
		normal = Mul(normal, -1)
	}

	return true, t, normal
}
