package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns the distance from p to the plane, positive on the normal side.
func (p Plane) SignedDistance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling together with
// its eight world-space corners.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes  [6]Plane // Left, Right, Bottom, Top, Near, Far
	Corners [8]mgl32.Vec3
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts frustum planes from a view-projection matrix using the
// Gribb/Hartmann method, and recovers the corners by unprojecting the clip-space cube.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	var f Frustum

	r0, r1, r2, r3 := viewProj.Rows()
	f.Planes[FrustumLeft] = planeFromRow(r3.Add(r0))
	f.Planes[FrustumRight] = planeFromRow(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFromRow(r3.Add(r1))
	f.Planes[FrustumTop] = planeFromRow(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFromRow(r3.Add(r2))
	f.Planes[FrustumFar] = planeFromRow(r3.Sub(r2))

	if viewProj.Det() != 0 {
		inv := viewProj.Inv()
		ndc := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
		for i, c := range ndc.Corners() {
			f.Corners[i] = mgl32.TransformCoordinate(c, inv)
		}
	}

	return f
}

// planeFromRow builds a normalized plane from a combined matrix row.
func planeFromRow(row mgl32.Vec4) Plane {
	p := Plane{Normal: row.Vec3(), Distance: row[3]}
	if length := p.Normal.Len(); length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
	return p
}

// IntersectAABB classifies an axis-aligned box against the frustum using the
// positive/negative vertex test.
//
// Parameters:
//   - b: the world-space box
//
// Returns:
//   - BoundOverlap: No when outside any plane, Yes when inside all planes, Partial otherwise
func (f Frustum) IntersectAABB(b AABB) BoundOverlap {
	if b.IsEmpty() {
		return BoundOverlapNo
	}
	result := BoundOverlapYes
	for _, p := range f.Planes {
		var pv, nv mgl32.Vec3
		for i := 0; i < 3; i++ {
			if p.Normal[i] >= 0 {
				pv[i], nv[i] = b.Max[i], b.Min[i]
			} else {
				pv[i], nv[i] = b.Min[i], b.Max[i]
			}
		}
		if p.SignedDistance(pv) < 0 {
			return BoundOverlapNo
		}
		if p.SignedDistance(nv) < 0 {
			result = BoundOverlapPartial
		}
	}
	return result
}

// IntersectOBB classifies an oriented box against the frustum by projecting its
// extents onto each plane normal.
//
// Parameters:
//   - o: the world-space oriented box
//
// Returns:
//   - BoundOverlap: the overlap classification
func (f Frustum) IntersectOBB(o OBB) BoundOverlap {
	result := BoundOverlapYes
	for _, p := range f.Planes {
		r := mgl32.Abs(p.Normal.Dot(o.Axes[0]))*o.Extents[0] +
			mgl32.Abs(p.Normal.Dot(o.Axes[1]))*o.Extents[1] +
			mgl32.Abs(p.Normal.Dot(o.Axes[2]))*o.Extents[2]
		d := p.SignedDistance(o.Center)
		if d < -r {
			return BoundOverlapNo
		}
		if d < r {
			result = BoundOverlapPartial
		}
	}
	return result
}

// IntersectSphere classifies a sphere against the frustum.
//
// Parameters:
//   - s: the world-space sphere
//
// Returns:
//   - BoundOverlap: the overlap classification
func (f Frustum) IntersectSphere(s Sphere) BoundOverlap {
	result := BoundOverlapYes
	for _, p := range f.Planes {
		d := p.SignedDistance(s.Center)
		if d < -s.Radius {
			return BoundOverlapNo
		}
		if d < s.Radius {
			result = BoundOverlapPartial
		}
	}
	return result
}

// IntersectFrustum classifies another frustum against this one using the other's corners.
// The test is conservative: two frusta that miss each other diagonally may report Partial.
//
// Parameters:
//   - o: the frustum to classify
//
// Returns:
//   - BoundOverlap: the overlap classification
func (f Frustum) IntersectFrustum(o Frustum) BoundOverlap {
	result := BoundOverlapYes
	for _, p := range f.Planes {
		inside := 0
		for _, c := range o.Corners {
			if p.SignedDistance(c) >= 0 {
				inside++
			}
		}
		if inside == 0 {
			return BoundOverlapNo
		}
		if inside < len(o.Corners) {
			result = BoundOverlapPartial
		}
	}
	return result
}
