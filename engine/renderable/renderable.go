package renderable

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// PassType identifies the kind of render pass a drawable is being prepared for.
type PassType int

const (
	// PassTypeForward is the regular shaded forward pass.
	PassTypeForward PassType = iota

	// PassTypeGBuffer writes geometry attributes for deferred shading.
	PassTypeGBuffer

	// PassTypeShadowMap renders depth from a light's point of view.
	PassTypeShadowMap

	// PassTypeReflection renders into a reflection target.
	PassTypeReflection

	// PassTypeSelect renders object IDs for picking.
	PassTypeSelect
)

// IsShadowPass reports whether the pass renders a shadow map.
func (p PassType) IsShadowPass() bool {
	return p == PassTypeShadowMap
}

// Renderable is the capability a scene node needs from a drawable payload.
// Implementations own their geometry and GPU resources; the scene graph only reads
// bounds, pushes world matrices and forwards selection and pass state.
type Renderable interface {
	// Name returns the drawable's identifier.
	//
	// Returns:
	//   - string: the name
	Name() string

	// PosBound returns the object-space bounding box of the drawable's positions.
	//
	// Returns:
	//   - common.AABB: the object-space bound, empty if the drawable has no geometry
	PosBound() common.AABB

	// NumSubrenderables returns how many sub-drawables this drawable expands into.
	// A composite model returns one sub-drawable per mesh part.
	//
	// Returns:
	//   - int: the number of sub-drawables
	NumSubrenderables() int

	// Subrenderable returns the sub-drawable at index i. Panics when i is out of range.
	//
	// Parameters:
	//   - i: the sub-drawable index
	//
	// Returns:
	//   - Renderable: the sub-drawable
	Subrenderable(i int) Renderable

	// HWResourceReady reports whether GPU-side resources have finished loading.
	//
	// Returns:
	//   - bool: true once the drawable can be submitted
	HWResourceReady() bool

	// ModelMatrix returns the most recent world matrix pushed by the scene graph.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	ModelMatrix() mgl32.Mat4

	// SetModelMatrix stores the world matrix used when the drawable is submitted.
	//
	// Parameters:
	//   - m: the world matrix
	SetModelMatrix(m mgl32.Mat4)

	// TransparencyBackFace reports whether back faces are drawn in the transparent pass.
	TransparencyBackFace() bool

	// TransparencyFrontFace reports whether front faces are drawn in the transparent pass.
	TransparencyFrontFace() bool

	// SSS reports whether the drawable uses subsurface scattering.
	SSS() bool

	// Reflection reports whether the drawable is reflective.
	Reflection() bool

	// SimpleForward reports whether the drawable bypasses deferred shading.
	SimpleForward() bool

	// VDM reports whether the drawable uses view-dependent materials.
	VDM() bool

	// Technique returns the key of the shading technique the drawable is drawn with.
	// Drawables sharing a key are batched together.
	//
	// Returns:
	//   - string: the technique key
	Technique() string

	// ObjectID returns the picking identifier.
	ObjectID() uint32

	// SetObjectID sets the picking identifier written during select passes.
	//
	// Parameters:
	//   - id: the picking identifier
	SetObjectID(id uint32)

	// SelectMode reports whether the drawable renders in selection mode.
	SelectMode() bool

	// SetSelectMode toggles selection mode.
	//
	// Parameters:
	//   - on: true to render object IDs instead of shading
	SetSelectMode(on bool)

	// Pass returns the pass the drawable is currently prepared for.
	Pass() PassType

	// SetPass prepares the drawable for the given pass.
	//
	// Parameters:
	//   - pass: the pass type
	SetPass(pass PassType)

	// NumVertices returns the vertex count submitted per draw.
	NumVertices() uint32

	// NumPrimitives returns the primitive count submitted per draw.
	NumPrimitives() uint32
}

// ComputeRenderable is a drawable submitted as a compute dispatch rather than a draw.
type ComputeRenderable interface {
	Renderable

	// WorkgroupCount returns the dispatch dimensions.
	//
	// Returns:
	//   - [3]uint32: workgroup counts along X, Y and Z
	WorkgroupCount() [3]uint32
}
