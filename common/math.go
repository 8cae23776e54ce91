package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// BuildModelMatrix constructs a model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll), applied after scaling.
//
// Parameters:
//   - pos: translation in parent space
//   - rot: rotation angles in radians around X, Y and Z
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: translation * rotation * scale
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rot[1]).
		Mul4(mgl32.HomogRotate3DX(rot[0])).
		Mul4(mgl32.HomogRotate3DZ(rot[2]))
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(r).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// ProjectedArea estimates the fraction of the viewport covered by a world-space box.
// The eight corners are projected to normalized device coordinates and the area of
// their 2D extent, clamped to the viewport, is divided by the viewport area.
// The estimate is not meaningful when any corner lies behind the eye; ok is false then.
//
// Parameters:
//   - b: the world-space box
//   - viewProj: the camera view-projection matrix
//
// Returns:
//   - float32: covered fraction in [0, 1]
//   - bool: false if the estimate could not be made
func ProjectedArea(b AABB, viewProj mgl32.Mat4) (float32, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	minX, minY := float32(1), float32(1)
	maxX, maxY := float32(-1), float32(-1)
	for _, c := range b.Corners() {
		clip := viewProj.Mul4x1(c.Vec4(1))
		if clip[3] <= 0 {
			return 0, false
		}
		x, y := clip[0]/clip[3], clip[1]/clip[3]
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	minX, maxX = mgl32.Clamp(minX, -1, 1), mgl32.Clamp(maxX, -1, 1)
	minY, maxY = mgl32.Clamp(minY, -1, 1), mgl32.Clamp(maxY, -1, 1)
	if maxX <= minX || maxY <= minY {
		return 0, true
	}
	return (maxX - minX) * (maxY - minY) / 4, true
}
