package renderable

import (
	"github.com/go-gl/mathgl/mgl32"
)

// cubeIndices lists the twelve triangles of a box whose corners are indexed with
// bit 0 = +X, bit 1 = +Y, bit 2 = +Z.
var cubeIndices = []uint32{
	0, 2, 1, 1, 2, 3, // -Z
	4, 5, 6, 5, 7, 6, // +Z
	0, 1, 4, 1, 5, 4, // -Y
	2, 6, 3, 3, 6, 7, // +Y
	0, 4, 2, 2, 4, 6, // -X
	1, 3, 5, 3, 7, 5, // +X
}

// NewCube creates an indexed box mesh centered on the origin.
//
// Parameters:
//   - half: half the edge length
//   - options: further options applied after the geometry
//
// Returns:
//   - Mesh: the box mesh
func NewCube(half float32, options ...MeshBuilderOption) Mesh {
	positions := make([]mgl32.Vec3, 8)
	for i := range positions {
		positions[i] = mgl32.Vec3{-half, -half, -half}
		if i&1 != 0 {
			positions[i][0] = half
		}
		if i&2 != 0 {
			positions[i][1] = half
		}
		if i&4 != 0 {
			positions[i][2] = half
		}
	}
	opts := append([]MeshBuilderOption{WithPositions(positions), WithIndices(cubeIndices)}, options...)
	return NewMesh(opts...)
}
