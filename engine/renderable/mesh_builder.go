package renderable

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithName is an option builder that sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithTechnique is an option builder that sets the technique key used for batching.
//
// Parameters:
//   - technique: the technique key
//
// Returns:
//   - MeshBuilderOption: a function that applies the technique option to a mesh
func WithTechnique(technique string) MeshBuilderOption {
	return func(m *mesh) {
		m.technique = technique
	}
}

// WithPositions is an option builder that sets the vertex positions.
//
// Parameters:
//   - positions: the vertex positions
//
// Returns:
//   - MeshBuilderOption: a function that applies the positions option to a mesh
func WithPositions(positions []mgl32.Vec3) MeshBuilderOption {
	return func(m *mesh) {
		m.positions = positions
	}
}

// WithIndices is an option builder that sets the triangle indices.
//
// Parameters:
//   - indices: the triangle indices
//
// Returns:
//   - MeshBuilderOption: a function that applies the indices option to a mesh
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *mesh) {
		m.indices = indices
	}
}

// WithBound is an option builder that overrides the computed object-space bound.
//
// Parameters:
//   - bound: the object-space bound
//
// Returns:
//   - MeshBuilderOption: a function that applies the bound option to a mesh
func WithBound(bound common.AABB) MeshBuilderOption {
	return func(m *mesh) {
		m.bound = bound
		m.hasBound = true
	}
}

// WithSubrenderables is an option builder that sets the parts of a composite mesh.
//
// Parameters:
//   - subs: the parts
//
// Returns:
//   - MeshBuilderOption: a function that applies the parts option to a mesh
func WithSubrenderables(subs ...Renderable) MeshBuilderOption {
	return func(m *mesh) {
		m.subs = append(m.subs, subs...)
	}
}

// WithHWResourceReady is an option builder that sets the initial hardware readiness.
//
// Parameters:
//   - ready: true if the mesh can be submitted immediately
//
// Returns:
//   - MeshBuilderOption: a function that applies the readiness option to a mesh
func WithHWResourceReady(ready bool) MeshBuilderOption {
	return func(m *mesh) {
		m.hwReady = ready
	}
}

// WithTransparency is an option builder that sets the transparent back and front face flags.
//
// Parameters:
//   - backFace: draw back faces in the transparent pass
//   - frontFace: draw front faces in the transparent pass
//
// Returns:
//   - MeshBuilderOption: a function that applies the transparency option to a mesh
func WithTransparency(backFace, frontFace bool) MeshBuilderOption {
	return func(m *mesh) {
		m.transparencyBackFace = backFace
		m.transparencyFrontFace = frontFace
	}
}

// WithSSS is an option builder that enables subsurface scattering.
//
// Parameters:
//   - sss: true to enable
//
// Returns:
//   - MeshBuilderOption: a function that applies the SSS option to a mesh
func WithSSS(sss bool) MeshBuilderOption {
	return func(m *mesh) {
		m.sss = sss
	}
}

// WithReflection is an option builder that marks the mesh as reflective.
//
// Parameters:
//   - reflection: true to enable
//
// Returns:
//   - MeshBuilderOption: a function that applies the reflection option to a mesh
func WithReflection(reflection bool) MeshBuilderOption {
	return func(m *mesh) {
		m.reflection = reflection
	}
}

// WithSimpleForward is an option builder that routes the mesh through the simple forward path.
//
// Parameters:
//   - simpleForward: true to enable
//
// Returns:
//   - MeshBuilderOption: a function that applies the simple forward option to a mesh
func WithSimpleForward(simpleForward bool) MeshBuilderOption {
	return func(m *mesh) {
		m.simpleForward = simpleForward
	}
}

// WithVDM is an option builder that enables view-dependent materials.
//
// Parameters:
//   - vdm: true to enable
//
// Returns:
//   - MeshBuilderOption: a function that applies the VDM option to a mesh
func WithVDM(vdm bool) MeshBuilderOption {
	return func(m *mesh) {
		m.vdm = vdm
	}
}
