package core

import "math"

// Vec2 is a 2D world position or direction in pixels
type Vec2 struct{ X, Y float64 }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Len() float64         { return math.Hypot(a.X, a.Y) }

// DistanceTo returns euclidean distance to another point
func (a Vec2) DistanceTo(b Vec2) float64 { return b.Sub(a).Len() }

// AngleTo returns the angle from this point to another (0 = east)
func (a Vec2) AngleTo(b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Normalize returns the unit vector, or the zero vector for zero input
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// FromAngle returns the unit vector pointing along angle
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WrapAngle maps an angle into (-pi, pi]
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Rect is an axis-aligned rectangle given by two opposite corners in any order
type Rect struct {
	A, B Vec2
}

// Contains reports whether p lies inside the rectangle (edges inclusive)
func (r Rect) Contains(p Vec2) bool {
	minX, maxX := math.Min(r.A.X, r.B.X), math.Max(r.A.X, r.B.X)
	minY, maxY := math.Min(r.A.Y, r.B.Y), math.Max(r.A.Y, r.B.Y)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}
