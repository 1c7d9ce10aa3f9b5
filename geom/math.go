package geom

import "math"

func Swap(a *float32, b *float32) {
	*a, *b = *b, *a
}

func EqualWithEpsilon(a float32, b float32, epsilon float64) bool {
	return math.Abs((float64)(a-b)) <= epsilon
}

func InRangeWithEpsilon(value float32, min float32, max float32, epsilon float32) bool {
	return value+epsilon >= min && value-epsilon <= max
}

type Vector2f struct {
	U float32 `json:"u" yaml:"u"`
	V float32 `json:"v" yaml:"v"`
}

type Vector3f struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

func NewVector3f(x, y, z float32) Vector3f {
	return Vector3f{x, y, z}
}

// Up is the world up axis. Vertical classification is expressed as a dot
// product against it.
var Up = Vector3f{0, 1, 0}

func (v1 Vector3f) EqualWithEpsilon(v2 Vector3f, epsilon float64) bool {
	return math.Abs((float64)(v1.X-v2.X)) <= epsilon &&
		math.Abs((float64)(v1.Y-v2.Y)) <= epsilon &&
		math.Abs((float64)(v1.Z-v2.Z)) <= epsilon
}

func (v1 Vector3f) Equal(v2 Vector3f) bool {
	return v1.X == v2.X && v1.Y == v2.Y && v1.Z == v2.Z
}

func (v1 Vector3f) GreaterOrEqualThan(v2 Vector3f) bool {
	return v1.X >= v2.X && v1.Y >= v2.Y && v1.Z >= v2.Z
}

func (v1 Vector3f) LesserOrEqualThan(v2 Vector3f) bool {
	return v1.X <= v2.X && v1.Y <= v2.Y && v1.Z <= v2.Z
}

func (v1 *Vector3f) Add(v2 Vector3f) {
	v1.X += v2.X
	v1.Y += v2.Y
	v1.Z += v2.Z
}

func Add(a Vector3f, b Vector3f) Vector3f {
	return Vector3f{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a Vector3f, b Vector3f) Vector3f {
	return Vector3f{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Mul(a Vector3f, s float32) Vector3f {
	return Vector3f{a.X * s, a.Y * s, a.Z * s}
}

func (a *Vector3f) Length() float64 {
	return math.Sqrt((float64)(a.X*a.X + a.Y*a.Y + a.Z*a.Z))
}

func (a *Vector3f) NormalizeInPlace() {
	lenght := (float32)(a.Length())
	if lenght != 0 {
		a.X /= lenght
		a.Y /= lenght
		a.Z /= lenght
	}
}

func Normalized(a Vector3f) Vector3f {
	lenght := (float32)(a.Length())
	result := a
	if lenght != 0 {
		result.X /= lenght
		result.Y /= lenght
		result.Z /= lenght
	}
	return result
}

func (a *Vector3f) Dot(b Vector3f) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a Vector3f, b Vector3f) Vector3f {
	return Vector3f{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}

func Distance(a Vector3f, b Vector3f) float64 {
	d := Sub(a, b)
	return d.Length()
}
