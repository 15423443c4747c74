package common

import (
	"fmt"
	"math"
)

// Vec3 is a world-space vector. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

var (
	Up      = Vec3{Y: 1}
	Forward = Vec3{Z: 1}
)

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

func (v Vec3) IsZero() bool {
	return v.LenSq() < epsilon*epsilon
}

// Normalize returns the unit vector of v, or the zero vector when v has no
// length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Len()
}

// ApproxEqual reports whether v and o differ by at most tol on every axis.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

// WithinAxes reports whether o lies inside the axis-aligned cube of half
// extent r around v.
func (v Vec3) WithinAxes(o Vec3, r float64) bool {
	return math.Abs(v.X-o.X) <= r && math.Abs(v.Y-o.Y) <= r && math.Abs(v.Z-o.Z) <= r
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// Angle returns the unsigned angle between a and b in radians. Zero vectors
// yield 0.
func Angle(a, b Vec3) float64 {
	a = a.Normalize()
	b = b.Normalize()
	if a.IsZero() || b.IsZero() {
		return 0
	}
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}
