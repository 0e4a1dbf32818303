// Package vmath provides the small float32 vector type shared by the simulation.
package vmath

import "math"

// Vec2 is a 2-D vector in world units.
type Vec2 struct {
	X, Y float32
}

// V returns Vec2{x, y}.
func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

// FromAngle returns the unit vector pointing at angle radians.
func FromAngle(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: float32(c), Y: float32(s)}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float32 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) DistSq(o Vec2) float32 { return v.Sub(o).LenSq() }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Len returns the Euclidean length.
func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float32 {
	return v.Sub(o).Len()
}

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Limit caps the length of v at max.
func (v Vec2) Limit(max float32) Vec2 {
	lsq := v.LenSq()
	if lsq <= max*max {
		return v
	}
	return v.Normalize().Scale(max)
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Vec2
}

// CenteredRect returns a w×h rectangle centered on the origin.
func CenteredRect(w, h float32) Rect {
	return Rect{Min: Vec2{-w / 2, -h / 2}, Max: Vec2{w / 2, h / 2}}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Inset shrinks the rectangle by m on every side. Negative m grows it.
func (r Rect) Inset(m float32) Rect {
	return Rect{Min: Vec2{r.Min.X + m, r.Min.Y + m}, Max: Vec2{r.Max.X - m, r.Max.Y - m}}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Wrap folds p back into r toroidally.
func (r Rect) Wrap(p Vec2) Vec2 {
	return Vec2{
		X: wrap(p.X, r.Min.X, r.Width()),
		Y: wrap(p.Y, r.Min.Y, r.Height()),
	}
}

func wrap(v, lo, size float32) float32 {
	if size <= 0 {
		return v
	}
	m := float32(math.Mod(float64(v-lo), float64(size)))
	if m < 0 {
		m += size
	}
	return lo + m
}
