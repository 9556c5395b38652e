package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a 3-component vector (value type) backed by gonum's r3.Vec.
type Vec3 r3.Vec

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(a), r3.Vec(b)))
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(r3.Scale(s, r3.Vec(v)))
}

func (a Vec3) Dot(b Vec3) float64 {
	return r3.Dot(r3.Vec(a), r3.Vec(b))
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3(r3.Cross(r3.Vec(a), r3.Vec(b)))
}

func (v Vec3) Len() float64 {
	return r3.Norm(r3.Vec(v))
}

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to have a direction.
func (v Vec3) Normalize() Vec3 {
	if v.Len() < 1e-12 {
		return Vec3{}
	}
	return Vec3(r3.Unit(r3.Vec(v)))
}

// RotatePair rotates the coordinate pair (a, b) by angle radians in its own plane.
func RotatePair(a, b, angle float64) (float64, float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	return a*c - b*s, a*s + b*c
}

// RotateX rotates around the X axis. Angle in radians.
func (v Vec3) RotateX(angle float64) Vec3 {
	v.Y, v.Z = RotatePair(v.Y, v.Z, angle)
	return v
}

// RotateY rotates around the Y axis.
func (v Vec3) RotateY(angle float64) Vec3 {
	v.X, v.Z = RotatePair(v.X, v.Z, angle)
	return v
}

// RotateZ rotates around the Z axis.
func (v Vec3) RotateZ(angle float64) Vec3 {
	v.X, v.Y = RotatePair(v.X, v.Y, angle)
	return v
}

// Basis returns unit vectors u, v spanning the plane normal to dir,
// such that (u, v, dir) is right-handed. dir must be a unit vector.
func Basis(dir Vec3) (u, v Vec3) {
	ref := Vec3{1, 0, 0}
	if math.Abs(dir.X) > 0.9 {
		ref = Vec3{0, 1, 0}
	}
	u = dir.Cross(ref).Normalize()
	v = dir.Cross(u).Normalize()
	return u, v
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
