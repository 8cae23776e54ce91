package renderable

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	mu *sync.RWMutex

	name      string
	technique string

	positions []mgl32.Vec3
	indices   []uint32
	bound     common.AABB
	hasBound  bool

	subs []Renderable

	hwReady bool
	gpu     *GPUBuffers

	modelMatrix mgl32.Mat4

	transparencyBackFace  bool
	transparencyFrontFace bool
	sss                   bool
	reflection            bool
	simpleForward         bool
	vdm                   bool

	objectID   uint32
	selectMode bool
	pass       PassType
}

// Mesh is a CPU-side triangle mesh that implements Renderable.
// A Mesh may also act as a composite model: parts added with AddSubrenderable are
// expanded into child scene nodes when the mesh is attached to a node.
// Thread-safe for concurrent access.
type Mesh interface {
	Renderable

	// Positions returns the vertex positions.
	//
	// Returns:
	//   - []mgl32.Vec3: the positions (shared, do not modify)
	Positions() []mgl32.Vec3

	// Indices returns the triangle indices, or nil for a non-indexed mesh.
	//
	// Returns:
	//   - []uint32: the indices (shared, do not modify)
	Indices() []uint32

	// VertexData returns the positions as raw bytes for GPU upload.
	//
	// Returns:
	//   - []byte: byte view of the positions
	VertexData() []byte

	// IndexData returns the indices as raw bytes for GPU upload.
	//
	// Returns:
	//   - []byte: byte view of the indices
	IndexData() []byte

	// GPUBuffers returns the attached device buffers, or nil if none are attached.
	//
	// Returns:
	//   - *GPUBuffers: the device buffers or nil
	GPUBuffers() *GPUBuffers

	// SetGPUBuffers attaches device buffers and marks the mesh hardware-ready.
	// Passing nil detaches them and marks the mesh pending again.
	//
	// Parameters:
	//   - g: the device buffers
	SetGPUBuffers(g *GPUBuffers)

	// SetHWResourceReady overrides the hardware readiness flag.
	//
	// Parameters:
	//   - ready: the new readiness state
	SetHWResourceReady(ready bool)

	// AddSubrenderable appends a part to the composite.
	//
	// Parameters:
	//   - r: the part to append
	AddSubrenderable(r Renderable)
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh with the given options applied. Without WithBound the
// object-space bound is computed from the positions.
//
// Parameters:
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the newly created mesh
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := newMesh(options...)
	return m
}

func newMesh(options ...MeshBuilderOption) *mesh {
	m := &mesh{
		mu:          &sync.RWMutex{},
		modelMatrix: mgl32.Ident4(),
		pass:        PassTypeForward,
	}
	for _, option := range options {
		option(m)
	}
	if !m.hasBound {
		m.bound = common.AABBFromPoints(m.positions)
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Technique() string {
	return m.technique
}

func (m *mesh) Positions() []mgl32.Vec3 {
	return m.positions
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) VertexData() []byte {
	return common.SliceToBytes(m.positions)
}

func (m *mesh) IndexData() []byte {
	return common.SliceToBytes(m.indices)
}

func (m *mesh) PosBound() common.AABB {
	return m.bound
}

func (m *mesh) NumSubrenderables() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

func (m *mesh) Subrenderable(i int) Renderable {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.subs) {
		panic(fmt.Sprintf("renderable: Subrenderable index %d out of range [0, %d)", i, len(m.subs)))
	}
	return m.subs[i]
}

func (m *mesh) AddSubrenderable(r Renderable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, r)
}

func (m *mesh) HWResourceReady() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hwReady
}

func (m *mesh) SetHWResourceReady(ready bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hwReady = ready
}

func (m *mesh) GPUBuffers() *GPUBuffers {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gpu
}

func (m *mesh) SetGPUBuffers(g *GPUBuffers) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gpu = g
	m.hwReady = g != nil
}

func (m *mesh) ModelMatrix() mgl32.Mat4 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modelMatrix
}

func (m *mesh) SetModelMatrix(mat mgl32.Mat4) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modelMatrix = mat
}

func (m *mesh) TransparencyBackFace() bool {
	return m.transparencyBackFace
}

func (m *mesh) TransparencyFrontFace() bool {
	return m.transparencyFrontFace
}

func (m *mesh) SSS() bool {
	return m.sss
}

func (m *mesh) Reflection() bool {
	return m.reflection
}

func (m *mesh) SimpleForward() bool {
	return m.simpleForward
}

func (m *mesh) VDM() bool {
	return m.vdm
}

func (m *mesh) ObjectID() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objectID
}

func (m *mesh) SetObjectID(id uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objectID = id
}

func (m *mesh) SelectMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selectMode
}

func (m *mesh) SetSelectMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectMode = on
}

func (m *mesh) Pass() PassType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pass
}

func (m *mesh) SetPass(pass PassType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pass = pass
}

func (m *mesh) NumVertices() uint32 {
	return uint32(len(m.positions))
}

func (m *mesh) NumPrimitives() uint32 {
	if len(m.indices) > 0 {
		return uint32(len(m.indices) / 3)
	}
	return uint32(len(m.positions) / 3)
}

// computeMesh is a mesh submitted as a compute dispatch.
type computeMesh struct {
	*mesh
	groups [3]uint32
}

var _ ComputeRenderable = &computeMesh{}

// NewComputeMesh creates a drawable that is dispatched with the given workgroup counts
// instead of drawn. Bound and geometry options apply as for NewMesh; the positions are
// only used for culling.
//
// Parameters:
//   - groups: workgroup counts along X, Y and Z
//   - options: functional options to configure the underlying mesh
//
// Returns:
//   - ComputeRenderable: the newly created compute drawable
func NewComputeMesh(groups [3]uint32, options ...MeshBuilderOption) ComputeRenderable {
	return &computeMesh{mesh: newMesh(options...), groups: groups}
}

func (c *computeMesh) WorkgroupCount() [3]uint32 {
	return c.groups
}
