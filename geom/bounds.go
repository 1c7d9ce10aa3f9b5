package geom

import "math"

// Bounds is a world-space axis-aligned box.
type Bounds struct {
	Min Vector3f `json:"min" yaml:"min"`
	Max Vector3f `json:"max" yaml:"max"`
}

func NewBounds(min Vector3f, max Vector3f) Bounds {
	for _, p := range [...]struct{ a, b *float32 }{
		{&min.X, &max.X}, {&min.Y, &max.Y}, {&min.Z, &max.Z},
	} {
		if *p.a > *p.b {
			Swap(p.a, p.b)
		}
	}
	return Bounds{Min: min, Max: max}
}

// BoundsFromPoints returns the tightest bounds containing every given point.
// The second return is false when the point list is empty.
func BoundsFromPoints(points []Vector3f) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.ExpandToFitPoint(p)
	}
	return b, true
}

func (b *Bounds) ExpandToFitPoint(p Vector3f) {
	b.Min.X = (float32)(math.Min((float64)(b.Min.X), (float64)(p.X)))
	b.Min.Y = (float32)(math.Min((float64)(b.Min.Y), (float64)(p.Y)))
	b.Min.Z = (float32)(math.Min((float64)(b.Min.Z), (float64)(p.Z)))
	b.Max.X = (float32)(math.Max((float64)(b.Max.X), (float64)(p.X)))
	b.Max.Y = (float32)(math.Max((float64)(b.Max.Y), (float64)(p.Y)))
	b.Max.Z = (float32)(math.Max((float64)(b.Max.Z), (float64)(p.Z)))
}

func Union(a Bounds, b Bounds) Bounds {
	result := a
	result.ExpandToFitPoint(b.Min)
	result.ExpandToFitPoint(b.Max)
	return result
}

func (b *Bounds) Center() Vector3f {
	return Mul(Add(b.Min, b.Max), 0.5)
}

func (b *Bounds) Size() Vector3f {
	return Sub(b.Max, b.Min)
}

// MinExtent is the smallest of the three axis sizes.
func (b *Bounds) MinExtent() float32 {
	s := b.Size()
	return (float32)(math.Min((float64)(s.X), math.Min((float64)(s.Y), (float64)(s.Z))))
}

// Volume is the box volume. Degenerate boxes report 0.
func (b *Bounds) Volume() float32 {
	s := b.Size()
	if s.X < 0 || s.Y < 0 || s.Z < 0 {
		return 0
	}
	return s.X * s.Y * s.Z
}

// Diagonal is the length of the box diagonal.
func (b *Bounds) Diagonal() float64 {
	s := b.Size()
	return s.Length()
}

func (b *Bounds) Contains(p Vector3f) bool {
	return p.GreaterOrEqualThan(b.Min) && p.LesserOrEqualThan(b.Max)
}

func (b *Bounds) ContainsWithEpsilon(p Vector3f, epsilon float32) bool {
	return InRangeWithEpsilon(p.X, b.Min.X, b.Max.X, epsilon) &&
		InRangeWithEpsilon(p.Y, b.Min.Y, b.Max.Y, epsilon) &&
		InRangeWithEpsilon(p.Z, b.Min.Z, b.Max.Z, epsilon)
}

// IsDegenerate reports whether any axis extent collapsed below epsilon.
func (b *Bounds) IsDegenerate(epsilon float32) bool {
	s := b.Size()
	return s.X <= epsilon || s.Y <= epsilon || s.Z <= epsilon
}
