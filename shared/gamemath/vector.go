package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Epsilon is the magnitude below which a vector counts as zero.
const Epsilon = 1e-9

// Up is the unit up vector in screen space (y grows downward).
var Up = dmath.Vec2{X: 0, Y: -1}

// Vec constructs a vector.
func Vec(x, y float64) dmath.Vec2 {
	return dmath.Vec2{X: x, Y: y}
}

func Add(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

func Sub(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

func Scale(v dmath.Vec2, s float64) dmath.Vec2 {
	return dmath.Vec2{X: v.X * s, Y: v.Y * s}
}

func Dot(a, b dmath.Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Length returns the Euclidean magnitude of v.
func Length(v dmath.Vec2) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b dmath.Vec2) float64 {
	return Length(Sub(a, b))
}

// IsZero reports whether v has no usable direction.
func IsZero(v dmath.Vec2) bool {
	return Length(v) < Epsilon
}

// Normalize returns v scaled to unit length, or the zero vector when v is zero.
func Normalize(v dmath.Vec2) dmath.Vec2 {
	l := Length(v)
	if l < Epsilon {
		return dmath.Vec2{}
	}
	return dmath.Vec2{X: v.X / l, Y: v.Y / l}
}

// Lerp blends a toward b by t, with t clamped to [0, 1].
func Lerp(a, b dmath.Vec2, t float64) dmath.Vec2 {
	t = Clamp(t, 0, 1)
	return dmath.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Reflect mirrors d about the unit normal n.
func Reflect(d, n dmath.Vec2) dmath.Vec2 {
	return Sub(d, Scale(n, 2*Dot(d, n)))
}

// Perpendicular returns v rotated a quarter turn counter-clockwise on screen
// (y-down), so a heading of (1, 0) yields (0, -1).
func Perpendicular(v dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: v.Y, Y: -v.X}
}

// Angle returns the heading of v in radians.
func Angle(v dmath.Vec2) float64 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle returns the unit vector for a heading in radians.
func FromAngle(rad float64) dmath.Vec2 {
	return dmath.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// ClosestPointOnRect returns the point of the axis-aligned box (x, y, w, h)
// nearest to p. Points inside the box are returned unchanged.
func ClosestPointOnRect(p dmath.Vec2, x, y, w, h float64) dmath.Vec2 {
	return dmath.Vec2{
		X: Clamp(p.X, x, x+w),
		Y: Clamp(p.Y, y, y+h),
	}
}

// RectsOverlap reports whether two axis-aligned boxes intersect with a
// non-empty area.
func RectsOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

// CircleOverlapsRect reports whether the circle at c with radius r touches
// the box (x, y, w, h).
func CircleOverlapsRect(c dmath.Vec2, r, x, y, w, h float64) bool {
	return Distance(c, ClosestPointOnRect(c, x, y, w, h)) <= r
}
