package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundOverlap is the tri-state result of testing a bound against a culling volume.
type BoundOverlap int

const (
	// BoundOverlapNo means the bound lies entirely outside the volume.
	BoundOverlapNo BoundOverlap = iota

	// BoundOverlapYes means the bound lies entirely inside the volume.
	BoundOverlapYes

	// BoundOverlapPartial means the bound straddles at least one plane of the volume.
	BoundOverlapPartial
)

// String returns a short name for the overlap state.
func (o BoundOverlap) String() string {
	switch o {
	case BoundOverlapNo:
		return "no"
	case BoundOverlapYes:
		return "yes"
	case BoundOverlapPartial:
		return "partial"
	}
	return "unknown"
}

// AABB is an axis-aligned bounding box described by its minimum and maximum corners.
// An AABB whose Min exceeds its Max on any axis is empty.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyAABB returns an AABB that contains nothing. Unioning anything with it yields that thing.
//
// Returns:
//   - AABB: the empty box
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// NewAABB creates an AABB from two opposite corners in any order.
//
// Parameters:
//   - a: the first corner
//   - b: the opposite corner
//
// Returns:
//   - AABB: the box spanning both corners
func NewAABB(a, b mgl32.Vec3) AABB {
	return AABB{
		Min: mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		Max: mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
	}
}

// AABBFromPoints computes the tightest AABB around a set of points.
// Returns an empty AABB when points is empty.
//
// Parameters:
//   - points: the points to enclose
//
// Returns:
//   - AABB: the enclosing box
func AABBFromPoints(points []mgl32.Vec3) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend returns the box grown to include p.
func (b AABB) Extend(p mgl32.Vec3) AABB {
	return AABB{
		Min: mgl32.Vec3{min(b.Min[0], p[0]), min(b.Min[1], p[1]), min(b.Min[2], p[2])},
		Max: mgl32.Vec3{max(b.Max[0], p[0]), max(b.Max[1], p[1]), max(b.Max[2], p[2])},
	}
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return AABB{
		Min: mgl32.Vec3{min(b.Min[0], o.Min[0]), min(b.Min[1], o.Min[1]), min(b.Min[2], o.Min[2])},
		Max: mgl32.Vec3{max(b.Max[0], o.Max[0]), max(b.Max[1], o.Max[1]), max(b.Max[2], o.Max[2])},
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfSize returns the half extents of the box along each axis.
func (b AABB) HalfSize() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Corners returns the eight corners of the box. Bit 0 of the index selects Max.X,
// bit 1 Max.Y and bit 2 Max.Z.
func (b AABB) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		out[i] = mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			out[i][0] = b.Max[0]
		}
		if i&2 != 0 {
			out[i][1] = b.Max[1]
		}
		if i&4 != 0 {
			out[i][2] = b.Max[2]
		}
	}
	return out
}

// Contains reports whether p lies inside or on the surface of the box.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Intersects reports whether the two boxes share at least one point.
func (b AABB) Intersects(o AABB) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

// Transform returns the axis-aligned box enclosing b after applying m to all eight corners.
// An empty box stays empty.
//
// Parameters:
//   - m: the affine transform to apply (column-major)
//
// Returns:
//   - AABB: the transformed, re-aligned box
func (b AABB) Transform(m mgl32.Mat4) AABB {
	if b.IsEmpty() {
		return b
	}
	out := EmptyAABB()
	for _, c := range b.Corners() {
		out = out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// OBB is an oriented bounding box with a center, three unit axes and half extents along them.
type OBB struct {
	Center  mgl32.Vec3
	Axes    [3]mgl32.Vec3
	Extents mgl32.Vec3
}

// OBBFromAABB builds the oriented box obtained by applying m to b without re-aligning it.
// Scale in m is folded into the extents so the axes stay unit length.
//
// Parameters:
//   - b: the source box in object space
//   - m: the object-to-world transform
//
// Returns:
//   - OBB: the oriented box in world space
func OBBFromAABB(b AABB, m mgl32.Mat4) OBB {
	half := b.HalfSize()
	o := OBB{Center: mgl32.TransformCoordinate(b.Center(), m)}
	for i := 0; i < 3; i++ {
		axis := m.Col(i).Vec3()
		l := axis.Len()
		if l > 0 {
			axis = axis.Mul(1 / l)
		}
		o.Axes[i] = axis
		o.Extents[i] = half[i] * l
	}
	return o
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// SphereFromAABB returns the sphere circumscribing b.
func SphereFromAABB(b AABB) Sphere {
	return Sphere{Center: b.Center(), Radius: b.HalfSize().Len()}
}
